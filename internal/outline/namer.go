package outline

import "github.com/codemapper/rubyoutline/internal/syntax"

// anonymousName stands in for handlers that have no static name (blocks
// and lambda literals).
const anonymousName = "<anonymous>"

// nameOf maps one argument node to a display name. ok is false when the
// node cannot yield a statically known name and the argument must be
// dropped rather than defaulted.
func nameOf(n *syntax.Node) (name string, ok bool) {
	if n == nil {
		return "", false
	}

	switch n.Kind {
	case syntax.KindStringLiteral:
		// Interpolated names are not statically knowable; empty names
		// carry no information.
		if n.Interpolated || n.Value == "" {
			return "", false
		}
		return n.Value, true

	case syntax.KindSymbolLiteral:
		if n.Interpolated || n.Value == "" {
			return "", false
		}
		return n.Value, true

	case syntax.KindConstantRef, syntax.KindConstantPath:
		return n.Name, true

	case syntax.KindCall:
		// A constructor-style argument (FooClass.new(...)) names its
		// receiver; the invoked method and its arguments are ignored.
		return constantName(n.Receiver)

	case syntax.KindLambda:
		return anonymousName, true

	default:
		return "", false
	}
}

// constantName resolves a node using the constant rules only.
func constantName(n *syntax.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	if n.Kind == syntax.KindConstantRef || n.Kind == syntax.KindConstantPath {
		return n.Name, true
	}
	return "", false
}
