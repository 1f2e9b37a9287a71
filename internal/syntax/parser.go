package syntax

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

// Parser turns Ruby source text into the simplified Node tree. It is the
// syntax-tree provider boundary: everything downstream of Parse is pure and
// never sees tree-sitter types.
type Parser struct {
	language *sitter.Language
}

// NewParser creates a Ruby parser.
func NewParser() *Parser {
	return &Parser{language: sitter.NewLanguage(ruby.Language())}
}

// Parse parses source and returns the root Node, or nil when tree-sitter
// cannot produce a tree at all. Parse errors inside the tree degrade to
// Other nodes whose children remain traversable, so callers always get a
// best-effort tree for partially valid source.
func (p *Parser) Parse(source []byte) *Node {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	return convert(tree.RootNode(), source)
}

func convert(n *sitter.Node, source []byte) *Node {
	if n == nil {
		return nil
	}

	switch n.Kind() {
	case "class":
		return convertClass(n, source)
	case "module":
		return convertModule(n, source)
	case "method":
		return convertMethod(n, source)
	case "singleton_method":
		return convertSingletonMethod(n, source)
	case "call":
		return convertCall(n, source)
	case "string":
		value, interpolated := stringParts(n, source)
		return &Node{
			Kind:         KindStringLiteral,
			Range:        rangeOf(n),
			NameRange:    rangeOf(n),
			Value:        value,
			Interpolated: interpolated,
		}
	case "chained_string":
		return convertChainedString(n, source)
	case "simple_symbol":
		return &Node{
			Kind:      KindSymbolLiteral,
			Range:     rangeOf(n),
			NameRange: rangeOf(n),
			Value:     strings.TrimPrefix(nodeText(n, source), ":"),
		}
	case "delimited_symbol":
		value, interpolated := stringParts(n, source)
		return &Node{
			Kind:         KindSymbolLiteral,
			Range:        rangeOf(n),
			NameRange:    rangeOf(n),
			Value:        value,
			Interpolated: interpolated,
		}
	case "constant":
		return &Node{
			Kind:      KindConstantRef,
			Range:     rangeOf(n),
			NameRange: rangeOf(n),
			Name:      nodeText(n, source),
		}
	case "scope_resolution":
		return &Node{
			Kind:      KindConstantPath,
			Range:     rangeOf(n),
			NameRange: rangeOf(n),
			Name:      nodeText(n, source),
		}
	case "lambda":
		return &Node{
			Kind:      KindLambda,
			Range:     rangeOf(n),
			NameRange: rangeOf(n),
			Children:  convertNamedChildren(n, source),
		}
	case "do_block", "block":
		return &Node{
			Kind:      KindBlock,
			Range:     rangeOf(n),
			NameRange: rangeOf(n),
			Children:  convertNamedChildren(n, source),
		}
	case "comment":
		return nil
	default:
		return &Node{
			Kind:      KindOther,
			Range:     rangeOf(n),
			NameRange: rangeOf(n),
			Children:  convertNamedChildren(n, source),
		}
	}
}

func convertClass(n *sitter.Node, source []byte) *Node {
	nameNode := n.ChildByFieldName("name")

	node := &Node{
		Kind:      KindClassDecl,
		Range:     rangeOf(n),
		NameRange: rangeOrDefault(nameNode, n),
		Name:      nodeText(nameNode, source),
		Children:  convertBody(n, source),
	}

	// The declared superclass name is taken verbatim; no resolution.
	if superNode := n.ChildByFieldName("superclass"); superNode != nil {
		if expr := firstNamedChild(superNode); expr != nil {
			node.Superclass = nodeText(expr, source)
		}
	}

	return node
}

func convertModule(n *sitter.Node, source []byte) *Node {
	nameNode := n.ChildByFieldName("name")
	return &Node{
		Kind:      KindModuleDecl,
		Range:     rangeOf(n),
		NameRange: rangeOrDefault(nameNode, n),
		Name:      nodeText(nameNode, source),
		Children:  convertBody(n, source),
	}
}

func convertMethod(n *sitter.Node, source []byte) *Node {
	nameNode := n.ChildByFieldName("name")
	return &Node{
		Kind:      KindMethodDecl,
		Range:     rangeOf(n),
		NameRange: rangeOrDefault(nameNode, n),
		Name:      nodeText(nameNode, source),
		Children:  convertBody(n, source),
	}
}

func convertSingletonMethod(n *sitter.Node, source []byte) *Node {
	nameNode := n.ChildByFieldName("name")
	objectNode := n.ChildByFieldName("object")

	name := nodeText(nameNode, source)
	if objectNode != nil {
		name = nodeText(objectNode, source) + "." + name
	}

	return &Node{
		Kind:      KindMethodDecl,
		Range:     rangeOf(n),
		NameRange: rangeOrDefault(nameNode, n),
		Name:      name,
		Children:  convertBody(n, source),
	}
}

func convertCall(n *sitter.Node, source []byte) *Node {
	node := &Node{
		Kind:      KindCall,
		Range:     rangeOf(n),
		NameRange: rangeOf(n),
	}

	if methodNode := n.ChildByFieldName("method"); methodNode != nil {
		node.Name = nodeText(methodNode, source)
		node.NameRange = rangeOf(methodNode)
	}

	if receiverNode := n.ChildByFieldName("receiver"); receiverNode != nil {
		node.Receiver = convert(receiverNode, source)
	}

	if argsNode := n.ChildByFieldName("arguments"); argsNode != nil {
		for i := uint(0); i < argsNode.NamedChildCount(); i++ {
			arg := argsNode.NamedChild(i)
			converted := convert(arg, source)
			if converted == nil {
				continue
			}
			switch arg.Kind() {
			case "pair":
				node.KwArgs = append(node.KwArgs, converted)
			default:
				node.Args = append(node.Args, converted)
			}
		}
	}

	if blockNode := n.ChildByFieldName("block"); blockNode != nil {
		node.Block = convert(blockNode, source)
	}

	// Generic traversal order: receiver, arguments, block.
	if node.Receiver != nil {
		node.Children = append(node.Children, node.Receiver)
	}
	node.Children = append(node.Children, node.Args...)
	node.Children = append(node.Children, node.KwArgs...)
	if node.Block != nil {
		node.Children = append(node.Children, node.Block)
	}

	return node
}

// convertChainedString folds adjacent string fragments ("a" "b", or split
// across lines with a trailing backslash) into a single literal.
func convertChainedString(n *sitter.Node, source []byte) *Node {
	node := &Node{
		Kind:      KindStringLiteral,
		Range:     rangeOf(n),
		NameRange: rangeOf(n),
	}

	var parts []string
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() != "string" {
			continue
		}
		value, interpolated := stringParts(child, source)
		parts = append(parts, value)
		if interpolated {
			node.Interpolated = true
		}
	}
	node.Value = strings.Join(parts, "")

	return node
}

// stringParts concatenates the literal content of a string-like node and
// reports whether it contains an interpolation placeholder.
func stringParts(n *sitter.Node, source []byte) (string, bool) {
	var sb strings.Builder
	interpolated := false

	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		switch child.Kind() {
		case "string_content", "escape_sequence":
			sb.WriteString(nodeText(child, source))
		case "interpolation":
			interpolated = true
		}
	}

	return sb.String(), interpolated
}

// convertBody converts the statements of a class/module/method body.
func convertBody(n *sitter.Node, source []byte) []*Node {
	body := findChildByKind(n, "body_statement")
	if body == nil {
		return nil
	}
	return convertNamedChildren(body, source)
}

func convertNamedChildren(n *sitter.Node, source []byte) []*Node {
	var children []*Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if child := convert(n.NamedChild(i), source); child != nil {
			children = append(children, child)
		}
	}
	return children
}

func findChildByKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child.Kind() == kind {
			return child
		}
	}
	return nil
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	if n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}

func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

func rangeOf(n *sitter.Node) Range {
	start := n.StartPosition()
	end := n.EndPosition()
	return Range{
		Start: Position{Line: uint32(start.Row), Character: uint32(start.Column)},
		End:   Position{Line: uint32(end.Row), Character: uint32(end.Column)},
	}
}

func rangeOrDefault(n, fallback *sitter.Node) Range {
	if n == nil {
		return rangeOf(fallback)
	}
	return rangeOf(n)
}
