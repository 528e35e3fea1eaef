package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(ctx context.Context, src string) *Builder {
	return NewBuilder(ctx, Tokenize([]byte(src), ""), nil)
}

func build(t *testing.T, b *Builder, src string) *Node {
	t.Helper()
	root, _ := b.Build()
	require.NotNil(t, root)
	require.Equal(t, src, root.Text(), "tree must reproduce the input")
	require.Zero(t, b.Unbalanced())
	return root
}

func TestBuilderComplete(t *testing.T) {
	src := "a b"
	b := newTestBuilder(context.Background(), src)
	root := b.Mark()
	m := b.Mark()
	b.Advance()
	m.Complete(KindIdentifier)
	b.Advance()
	root.Complete(KindFragment)

	assert.Equal(t, "Fragment(Identifier)", shape(build(t, b, src)))
}

func TestBuilderLookAhead(t *testing.T) {
	b := newTestBuilder(context.Background(), "a /* c */ b")
	assert.Equal(t, TokenIdent, b.LookAhead(1))
	assert.Equal(t, "b", b.TextAt(1))
	assert.Equal(t, TokenWhitespace, b.RawLookup(1))
	assert.Equal(t, TokenComment, b.RawLookup(2))
	assert.Equal(t, TokenEOF, b.LookAhead(2))
	assert.Equal(t, TokenEOF, b.LookAhead(100))
}

func TestBuilderRollback(t *testing.T) {
	src := "a b"
	b := newTestBuilder(context.Background(), src)
	root := b.Mark()

	m := b.Mark()
	inner := b.Mark()
	b.Advance()
	inner.Complete(KindIdentifier)
	b.Advance()
	b.Error(msgExpectedExpression)
	m.Rollback()
	assert.Zero(t, b.Pos())

	b.Advance()
	b.Advance()
	root.Complete(KindFragment)

	tree := build(t, b, src)
	assert.Equal(t, "Fragment", shape(tree))
	assert.Empty(t, tree.Errors())
}

func TestBuilderDrop(t *testing.T) {
	t.Run("last event", func(t *testing.T) {
		src := "a"
		b := newTestBuilder(context.Background(), src)
		root := b.Mark()
		m := b.Mark()
		m.Drop()
		b.Advance()
		root.Complete(KindFragment)
		assert.Equal(t, "Fragment", shape(build(t, b, src)))
	})
	t.Run("with children", func(t *testing.T) {
		src := "a"
		b := newTestBuilder(context.Background(), src)
		root := b.Mark()
		m := b.Mark()
		inner := b.Mark()
		b.Advance()
		inner.Complete(KindIdentifier)
		m.Drop()
		root.Complete(KindFragment)
		assert.Equal(t, "Fragment(Identifier)", shape(build(t, b, src)))
	})
}

func TestBuilderPrecede(t *testing.T) {
	src := "a + b"
	b := newTestBuilder(context.Background(), src)
	root := b.Mark()
	lhs := b.Mark()
	b.Advance()
	left := lhs.Complete(KindIdentifier)

	bin := left.Precede()
	b.Advance()
	rhs := b.Mark()
	b.Advance()
	rhs.Complete(KindIdentifier)
	bin.Complete(KindBinaryExpr)
	root.Complete(KindFragment)

	assert.Equal(t, "Fragment(BinaryExpr(Identifier Identifier))", shape(build(t, b, src)))
}

func TestBuilderRollbackPrecededMarker(t *testing.T) {
	src := "a + b"
	b := newTestBuilder(context.Background(), src)
	root := b.Mark()
	lhs := b.Mark()
	b.Advance()
	left := lhs.Complete(KindIdentifier)
	outer := left.Precede()
	b.Advance()
	outer.Rollback()

	// the preceded node goes with its parent
	assert.Zero(t, b.Pos())
	for !b.EOF() {
		b.Advance()
	}
	root.Complete(KindFragment)
	assert.Equal(t, "Fragment", shape(build(t, b, src)))
}

func TestBuilderAdvanceComposite(t *testing.T) {
	src := "a >> b"
	b := newTestBuilder(context.Background(), src)
	root := b.Mark()
	b.Advance()
	require.Equal(t, TokenGT, b.Kind())
	require.Equal(t, TokenGT, b.LookAhead(1))
	b.AdvanceComposite(TokenShr, 2)
	assert.Equal(t, TokenIdent, b.Kind())
	b.Advance()
	root.Complete(KindFragment)

	tree := build(t, b, src)
	tok := tree.FirstToken(TokenShr)
	require.NotNil(t, tok)
	assert.Equal(t, ">>", tok.Literal)
	assert.Nil(t, tree.FirstToken(TokenGT))
}

func TestBuilderLimits(t *testing.T) {
	b := newTestBuilder(context.Background(), "{ a } b")
	b.PushLimit(2)
	b.Advance()
	b.Advance()
	assert.True(t, b.EOF())
	// advancing at a limit is a no-op
	b.Advance()
	assert.Equal(t, 2, b.Pos())
	b.PopLimit()
	assert.Equal(t, TokenRBrace, b.Kind())
}

func TestBuilderErrors(t *testing.T) {
	src := "a"
	b := newTestBuilder(context.Background(), src)
	root := b.Mark()
	m := b.Mark()
	assert.False(t, b.HasErrorsSince(m))
	b.Advance()
	b.Error(msgExpectedToken, quote(TokenSemicolon))
	assert.True(t, b.HasErrorsSince(m))
	m.Complete(KindExprStmt)
	root.Complete(KindFragment)

	tree, incomplete := b.Build()
	assert.True(t, incomplete, "an error at the end of input makes the tree incomplete")
	errs := tree.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "';' expected", errs[0].Error.Message)
	assert.Equal(t, 1, errs[0].Span.Start.Offset)
}

func TestBuilderCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := newTestBuilder(ctx, strings.Repeat("a ", 600))
	n := 0
	for !b.EOF() {
		b.Advance()
		n++
	}
	assert.True(t, b.Canceled())
	assert.Equal(t, 256, n)
}

// Without a root marker every token lands in a synthesized fragment.
func TestBuilderWithoutRoot(t *testing.T) {
	src := "a b"
	b := newTestBuilder(context.Background(), src)
	b.Advance()
	b.Advance()
	tree := build(t, b, src)
	assert.Equal(t, KindFragment, tree.Kind)
}
