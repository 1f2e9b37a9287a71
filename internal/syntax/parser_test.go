package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Parser:
// - Class declarations carry name and verbatim superclass
// - Modules, methods, and singleton methods convert with names
// - Calls carry method name, receiver, positional/keyword args, and block
// - Plain, chained, and interpolated strings convert correctly
// - Symbols, constants, and constant paths convert to their variants
// - Unknown constructs become Other but keep their children
// - Broken source still yields a traversable tree

func parse(t *testing.T, source string) *Node {
	t.Helper()
	root := NewParser().Parse([]byte(source))
	require.NotNil(t, root)
	return root
}

// findKind returns the first node of the given kind, depth first.
func findKind(n *Node, kind NodeKind) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == kind {
		return n
	}
	for _, child := range n.Children {
		if found := findKind(child, kind); found != nil {
			return found
		}
	}
	return nil
}

func TestParser_ClassWithSuperclass(t *testing.T) {
	t.Parallel()

	root := parse(t, "class UserTest < ActiveSupport::TestCase\nend\n")
	class := findKind(root, KindClassDecl)
	require.NotNil(t, class)
	assert.Equal(t, "UserTest", class.Name)
	assert.Equal(t, "ActiveSupport::TestCase", class.Superclass)
}

func TestParser_ClassWithoutSuperclass(t *testing.T) {
	t.Parallel()

	root := parse(t, "class User\nend\n")
	class := findKind(root, KindClassDecl)
	require.NotNil(t, class)
	assert.Equal(t, "User", class.Name)
	assert.Empty(t, class.Superclass)
}

func TestParser_ModuleAndMethods(t *testing.T) {
	t.Parallel()

	root := parse(t, `
module Admin
  def promote
  end

  def self.lookup
  end
end
`)
	mod := findKind(root, KindModuleDecl)
	require.NotNil(t, mod)
	assert.Equal(t, "Admin", mod.Name)

	require.Len(t, mod.Children, 2)
	assert.Equal(t, KindMethodDecl, mod.Children[0].Kind)
	assert.Equal(t, "promote", mod.Children[0].Name)
	assert.Equal(t, KindMethodDecl, mod.Children[1].Kind)
	assert.Equal(t, "self.lookup", mod.Children[1].Name)
}

func TestParser_CallShapes(t *testing.T) {
	t.Parallel()

	root := parse(t, `before_action :require_login, only: [:destroy] do
  authenticate!
end
`)
	c := findKind(root, KindCall)
	require.NotNil(t, c)
	assert.Equal(t, "before_action", c.Name)
	assert.Nil(t, c.Receiver)
	require.Len(t, c.Args, 1)
	assert.Equal(t, KindSymbolLiteral, c.Args[0].Kind)
	assert.Equal(t, "require_login", c.Args[0].Value)
	require.Len(t, c.KwArgs, 1)
	require.NotNil(t, c.Block)
	assert.Equal(t, KindBlock, c.Block.Kind)
}

func TestParser_CallWithReceiver(t *testing.T) {
	t.Parallel()

	root := parse(t, "FooClass.new(x)\n")
	c := findKind(root, KindCall)
	require.NotNil(t, c)
	assert.Equal(t, "new", c.Name)
	require.NotNil(t, c.Receiver)
	assert.Equal(t, KindConstantRef, c.Receiver.Kind)
	assert.Equal(t, "FooClass", c.Receiver.Name)
}

func TestParser_Strings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		source       string
		value        string
		interpolated bool
	}{
		{"plain", `x("an example")`, "an example", false},
		{"chained", `x("a" "b")`, "ab", false},
		{"interpolated", `x("y#{1 + 1}")`, "y", true},
		{"empty", `x("")`, "", false},
		{"escape", `x("a\nb")`, `a\nb`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := parse(t, tt.source+"\n")
			str := findKind(root, KindStringLiteral)
			require.NotNil(t, str)
			assert.Equal(t, tt.value, str.Value)
			assert.Equal(t, tt.interpolated, str.Interpolated)
		})
	}
}

func TestParser_SymbolsAndConstants(t *testing.T) {
	t.Parallel()

	root := parse(t, "x(:sym, Foo, Foo::Bar::Baz)\n")
	c := findKind(root, KindCall)
	require.NotNil(t, c)
	require.Len(t, c.Args, 3)

	assert.Equal(t, KindSymbolLiteral, c.Args[0].Kind)
	assert.Equal(t, "sym", c.Args[0].Value)

	assert.Equal(t, KindConstantRef, c.Args[1].Kind)
	assert.Equal(t, "Foo", c.Args[1].Name)

	assert.Equal(t, KindConstantPath, c.Args[2].Kind)
	assert.Equal(t, "Foo::Bar::Baz", c.Args[2].Name)
}

func TestParser_Lambda(t *testing.T) {
	t.Parallel()

	root := parse(t, "x(-> { 1 })\n")
	lambda := findKind(root, KindLambda)
	require.NotNil(t, lambda)
}

func TestParser_RangesAreOrdered(t *testing.T) {
	t.Parallel()

	root := parse(t, "class User\n  def a\n  end\nend\n")
	class := findKind(root, KindClassDecl)
	require.NotNil(t, class)

	assert.Equal(t, uint32(0), class.Range.Start.Line)
	assert.Equal(t, uint32(3), class.Range.End.Line)
	method := findKind(class, KindMethodDecl)
	require.NotNil(t, method)
	assert.True(t, class.Range.Contains(method.Range))
	assert.True(t, class.NameRange.Start.Line == 0 && class.NameRange.Start.Character >= 6)
}

func TestParser_BrokenSourceStillYieldsTree(t *testing.T) {
	t.Parallel()

	root := parse(t, "class User\n  def a(\nend\n")
	require.NotNil(t, root)
	// Whatever the error recovery produced, the tree stays walkable.
	assert.NotPanics(t, func() {
		var walk func(*Node)
		walk = func(n *Node) {
			for _, child := range n.Children {
				walk(child)
			}
		}
		walk(root)
	})
}

func TestRange_Contains(t *testing.T) {
	t.Parallel()

	outer := Range{Start: Position{Line: 1}, End: Position{Line: 10}}
	inner := Range{Start: Position{Line: 2, Character: 4}, End: Position{Line: 3}}
	assert.True(t, outer.Contains(inner))
	assert.True(t, outer.Contains(outer))
	assert.False(t, inner.Contains(outer))

	sameLine := Range{Start: Position{Line: 1, Character: 2}, End: Position{Line: 1, Character: 8}}
	assert.False(t, sameLine.Contains(Range{Start: Position{Line: 1}, End: Position{Line: 1, Character: 4}}))
	assert.True(t, sameLine.Contains(Range{Start: Position{Line: 1, Character: 3}, End: Position{Line: 1, Character: 5}}))
}
