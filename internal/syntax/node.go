package syntax

// NodeKind identifies the variant of a Node. The set is closed: consumers
// switch over it exhaustively, so adding a kind is a compile-visible change.
type NodeKind int

const (
	// KindOther covers every construct the outline does not interpret
	// directly (control flow, assignments, parse-error placeholders).
	// Its children are still traversable.
	KindOther NodeKind = iota
	KindClassDecl
	KindModuleDecl
	KindMethodDecl
	KindCall
	KindStringLiteral
	KindSymbolLiteral
	KindConstantRef
	KindConstantPath
	KindLambda
	KindBlock
)

// String returns a debug name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindClassDecl:
		return "class"
	case KindModuleDecl:
		return "module"
	case KindMethodDecl:
		return "method"
	case KindCall:
		return "call"
	case KindStringLiteral:
		return "string"
	case KindSymbolLiteral:
		return "symbol"
	case KindConstantRef:
		return "constant"
	case KindConstantPath:
		return "constant_path"
	case KindLambda:
		return "lambda"
	case KindBlock:
		return "block"
	default:
		return "other"
	}
}

// Position is a zero-based line/character pair, following the LSP convention.
type Position struct {
	Line      uint32
	Character uint32
}

// Range is a half-open source span from Start up to End.
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether r fully encloses other.
func (r Range) Contains(other Range) bool {
	return !positionBefore(other.Start, r.Start) && !positionBefore(r.End, other.End)
}

func positionBefore(a, b Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}

// Node is one node of the simplified Ruby syntax tree the outline engine
// consumes. Only the fields relevant to the node's Kind are populated:
//
//	ClassDecl:     Name, Superclass (declared name, verbatim), Children (body)
//	ModuleDecl:    Name, Children (body)
//	MethodDecl:    Name, Children (body)
//	Call:          Name (method), Receiver, Args, KwArgs, Block, Children
//	StringLiteral: Value, Interpolated
//	SymbolLiteral: Value, Interpolated
//	ConstantRef:   Name
//	ConstantPath:  Name (qualified text, segments joined verbatim)
//	Lambda:        Children (body)
//	Block, Other:  Children
type Node struct {
	Kind  NodeKind
	Range Range

	// NameRange spans just the declared name of a class/module/method,
	// or the whole node when no narrower span applies.
	NameRange Range

	Name       string
	Superclass string

	Receiver *Node
	Args     []*Node
	KwArgs   []*Node
	Block    *Node

	Value        string
	Interpolated bool

	Children []*Node
}
