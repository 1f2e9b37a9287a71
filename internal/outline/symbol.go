package outline

import "github.com/codemapper/rubyoutline/internal/syntax"

// SymbolKind categorizes an outline symbol.
type SymbolKind int

const (
	SymbolOther SymbolKind = iota
	SymbolNamespace
	SymbolClass
	SymbolMethod
	SymbolField
)

// String returns a display name for the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case SymbolNamespace:
		return "namespace"
	case SymbolClass:
		return "class"
	case SymbolMethod:
		return "method"
	case SymbolField:
		return "field"
	default:
		return "other"
	}
}

// Symbol is one node of the document outline. Children are kept in source
// order and a symbol's range always encloses its children's ranges.
type Symbol struct {
	Name string
	Kind SymbolKind

	// Range spans the whole construct, including an attached block.
	Range syntax.Range

	// SelectionRange spans the name (or name argument) alone.
	SelectionRange syntax.Range

	Children []*Symbol
}
