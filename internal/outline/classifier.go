package outline

import "github.com/codemapper/rubyoutline/internal/syntax"

type recognitionKind int

const (
	recognizeNone recognitionKind = iota
	recognizeTest
	recognizeCallback
	recognizeAccessor
)

// recognition is the classifier's verdict on one call site.
type recognition struct {
	kind  recognitionKind
	macro string

	// nameArg is the first positional argument of a test declaration,
	// nil when the call has none.
	nameArg *syntax.Node

	args  []*syntax.Node
	block *syntax.Node
}

// classify decides whether a call is a test declaration, a lifecycle
// callback macro, an attribute accessor, or ordinary code. superclass is
// the enclosing scope's declared superclass name ("" outside any class).
// Test recognition outranks callback recognition when a name is in both
// tables.
func (r *Registry) classify(call *syntax.Node, superclass string) recognition {
	// The DSL is made of bare calls; an explicit receiver means ordinary code.
	if call.Receiver != nil || call.Name == "" {
		return recognition{kind: recognizeNone}
	}

	if r.isTestAlias(call.Name) && r.isTestBase(superclass) {
		rec := recognition{kind: recognizeTest, macro: call.Name, block: call.Block}
		if len(call.Args) > 0 {
			rec.nameArg = call.Args[0]
		}
		return rec
	}

	if r.isCallback(call.Name) {
		return recognition{
			kind:  recognizeCallback,
			macro: call.Name,
			args:  call.Args,
			block: call.Block,
		}
	}

	if r.isAccessor(call.Name) {
		return recognition{kind: recognizeAccessor, macro: call.Name, args: call.Args}
	}

	return recognition{kind: recognizeNone}
}
