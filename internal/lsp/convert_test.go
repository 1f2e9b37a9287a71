package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/codemapper/rubyoutline/internal/outline"
	"github.com/codemapper/rubyoutline/internal/syntax"
)

// Test Plan for DocumentSymbol conversion:
// - Symbol kinds map to the LSP numeric codes
// - Ranges and selection ranges carry over
// - Children nest recursively and an empty outline stays an empty slice

func TestToSymbolKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, protocol.SymbolKindNamespace, toSymbolKind(outline.SymbolNamespace))
	assert.Equal(t, protocol.SymbolKindClass, toSymbolKind(outline.SymbolClass))
	assert.Equal(t, protocol.SymbolKindMethod, toSymbolKind(outline.SymbolMethod))
	assert.Equal(t, protocol.SymbolKindField, toSymbolKind(outline.SymbolField))
	assert.Equal(t, protocol.SymbolKindObject, toSymbolKind(outline.SymbolOther))
}

func TestToDocumentSymbols(t *testing.T) {
	t.Parallel()

	symbols := []*outline.Symbol{
		{
			Name: "UserTest",
			Kind: outline.SymbolClass,
			Range: syntax.Range{
				Start: syntax.Position{Line: 0},
				End:   syntax.Position{Line: 8, Character: 3},
			},
			SelectionRange: syntax.Range{
				Start: syntax.Position{Line: 0, Character: 6},
				End:   syntax.Position{Line: 0, Character: 14},
			},
			Children: []*outline.Symbol{
				{
					Name: "an example",
					Kind: outline.SymbolMethod,
					Range: syntax.Range{
						Start: syntax.Position{Line: 1, Character: 2},
						End:   syntax.Position{Line: 2, Character: 5},
					},
				},
			},
		},
	}

	converted := toDocumentSymbols(symbols)
	require.Len(t, converted, 1)

	root := converted[0]
	assert.Equal(t, "UserTest", root.Name)
	assert.Equal(t, protocol.SymbolKindClass, root.Kind)
	assert.Equal(t, uint32(0), root.Range.Start.Line)
	assert.Equal(t, uint32(8), root.Range.End.Line)
	assert.Equal(t, uint32(6), root.SelectionRange.Start.Character)

	require.Len(t, root.Children, 1)
	child := root.Children[0]
	assert.Equal(t, "an example", child.Name)
	assert.Equal(t, protocol.SymbolKindMethod, child.Kind)
	assert.Equal(t, uint32(1), child.Range.Start.Line)

	assert.NotNil(t, toDocumentSymbols(nil))
	assert.Empty(t, toDocumentSymbols(nil))
}
