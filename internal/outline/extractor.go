// Package outline extracts a hierarchical document outline from a Ruby
// syntax tree, recognizing the Rails/Minitest DSL (test declarations,
// lifecycle callback macros, attribute accessors) on top of plain
// class/module/method declarations.
//
// Extraction is a pure function of the input tree: no I/O, no state across
// calls. Two extractions may run concurrently on separate trees.
package outline

import (
	"fmt"

	"github.com/codemapper/rubyoutline/internal/syntax"
)

// scope is one open class/module container during traversal.
type scope struct {
	sym        *Symbol
	superclass string
}

type walker struct {
	reg   *Registry
	stack []scope
	roots []*Symbol
}

// Extract walks root and returns the document's symbols in source order.
// It is total: for any tree, including partial trees from a failed parse,
// it returns a (possibly empty) outline and never fails.
func Extract(root *syntax.Node, reg *Registry) []*Symbol {
	if root == nil {
		return nil
	}
	if reg == nil {
		reg = NewRegistry()
	}

	w := &walker{reg: reg}
	w.visit(root)
	return w.roots
}

func (w *walker) visit(n *syntax.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case syntax.KindClassDecl, syntax.KindModuleDecl:
		w.visitContainer(n)

	case syntax.KindMethodDecl:
		// Method definitions attach to the enclosing container but do not
		// open a scope; a def nested in a def is a plain sibling child.
		// Top-level defs outside any container are not represented.
		if n.Name != "" && len(w.stack) > 0 {
			w.attach(&Symbol{
				Name:           n.Name,
				Kind:           SymbolMethod,
				Range:          n.Range,
				SelectionRange: n.NameRange,
			})
		}
		w.visitChildren(n)

	case syntax.KindCall:
		rec := w.reg.classify(n, w.currentSuperclass())
		if rec.kind == recognizeNone {
			// Ordinary code: keep looking for class/module declarations
			// nested in the call's arguments and block.
			w.visitChildren(n)
			return
		}
		// Recognized DSL calls are leaves; their block bodies are opaque
		// to the outline. Sibling statements are unaffected.
		w.emit(n, rec)

	default:
		w.visitChildren(n)
	}
}

func (w *walker) visitContainer(n *syntax.Node) {
	kind := SymbolClass
	if n.Kind == syntax.KindModuleDecl {
		kind = SymbolNamespace
	}

	name := n.Name
	if name == "" {
		// Error node in place of the name; keep a placeholder so the
		// body's symbols still have a parent.
		name = anonymousName
	}

	sym := &Symbol{
		Name:           name,
		Kind:           kind,
		Range:          n.Range,
		SelectionRange: n.NameRange,
	}
	w.attach(sym)

	w.stack = append(w.stack, scope{sym: sym, superclass: n.Superclass})
	w.visitChildren(n)
	w.stack = w.stack[:len(w.stack)-1]
}

func (w *walker) visitChildren(n *syntax.Node) {
	for _, child := range n.Children {
		w.visit(child)
	}
}

// emit synthesizes the symbols for a recognized DSL call.
func (w *walker) emit(call *syntax.Node, rec recognition) {
	// Leaf symbols need a named container; bare top-level DSL calls are
	// not represented.
	if len(w.stack) == 0 {
		return
	}

	switch rec.kind {
	case recognizeTest:
		// An unnameable test declaration is dropped entirely, not even an
		// anonymous placeholder.
		name, ok := nameOf(rec.nameArg)
		if !ok {
			return
		}
		w.attach(&Symbol{
			Name:           name,
			Kind:           SymbolMethod,
			Range:          call.Range,
			SelectionRange: rec.nameArg.Range,
		})

	case recognizeCallback:
		for _, arg := range rec.args {
			name, ok := nameOf(arg)
			if !ok {
				continue
			}
			w.attach(&Symbol{
				Name:           fmt.Sprintf("%s(%s)", rec.macro, name),
				Kind:           SymbolMethod,
				Range:          call.Range,
				SelectionRange: arg.Range,
			})
		}
		// A block-only callback registers a single anonymous handler. The
		// block is ignored whenever positional arguments are present.
		if len(rec.args) == 0 && rec.block != nil {
			w.attach(&Symbol{
				Name:           fmt.Sprintf("%s(%s)", rec.macro, anonymousName),
				Kind:           SymbolMethod,
				Range:          call.Range,
				SelectionRange: call.NameRange,
			})
		}

	case recognizeAccessor:
		for _, arg := range rec.args {
			if arg.Kind != syntax.KindSymbolLiteral {
				continue
			}
			name, ok := nameOf(arg)
			if !ok {
				continue
			}
			w.attach(&Symbol{
				Name:           name,
				Kind:           SymbolField,
				Range:          arg.Range,
				SelectionRange: arg.Range,
			})
		}
	}
}

// attach appends sym to the current top-of-stack container, or records it
// as a root when no container is open.
func (w *walker) attach(sym *Symbol) {
	if len(w.stack) == 0 {
		w.roots = append(w.roots, sym)
		return
	}
	parent := w.stack[len(w.stack)-1].sym
	parent.Children = append(parent.Children, sym)
}

func (w *walker) currentSuperclass() string {
	if len(w.stack) == 0 {
		return ""
	}
	return w.stack[len(w.stack)-1].superclass
}
