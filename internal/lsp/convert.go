package lsp

import (
	"go.lsp.dev/protocol"

	"github.com/codemapper/rubyoutline/internal/outline"
	"github.com/codemapper/rubyoutline/internal/syntax"
)

// toDocumentSymbols serializes an outline into the LSP DocumentSymbol shape.
func toDocumentSymbols(symbols []*outline.Symbol) []protocol.DocumentSymbol {
	result := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		result = append(result, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           toSymbolKind(sym.Kind),
			Range:          toProtocolRange(sym.Range),
			SelectionRange: toProtocolRange(sym.SelectionRange),
			Children:       toDocumentSymbols(sym.Children),
		})
	}
	return result
}

func toSymbolKind(kind outline.SymbolKind) protocol.SymbolKind {
	switch kind {
	case outline.SymbolNamespace:
		return protocol.SymbolKindNamespace
	case outline.SymbolClass:
		return protocol.SymbolKindClass
	case outline.SymbolMethod:
		return protocol.SymbolKindMethod
	case outline.SymbolField:
		return protocol.SymbolKindField
	default:
		return protocol.SymbolKindObject
	}
}

func toProtocolRange(r syntax.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: r.Start.Line, Character: r.Start.Character},
		End:   protocol.Position{Line: r.End.Line, Character: r.End.Character},
	}
}
