package parser

import (
	"context"
	"strings"
)

type eventKind uint8

const (
	eventProcessed eventKind = iota
	eventStart
	eventFinish
	eventToken
	eventError
)

// kindNone marks a start event whose marker was dropped.
const kindNone NodeKind = -1

// event is one entry of the builder's append-only log. The tree is only
// materialised by Build, so rolling back is a truncation of the log.
type event struct {
	kind eventKind
	node NodeKind
	// offset to the start event of the marker created by Precede
	forwardParent int
	// significant token index at which the event was recorded
	pos   int
	count int
	remap TokenKind
	err   *Error
	at    Position
	atEOF bool
}

// Builder is the token cursor shared by every grammar component. It exposes
// lookahead over significant tokens and checkpoints (markers) that are either
// completed into nodes, rolled back or dropped.
type Builder struct {
	ctx      context.Context
	tokens   []Token
	sig      []int
	pos      int
	limits   []int
	events   []event
	messages Messages
	steps    int
	canceled bool

	unbalanced int
}

func NewBuilder(ctx context.Context, tokens []Token, messages Messages) *Builder {
	if ctx == nil {
		ctx = context.Background()
	}
	if messages == nil {
		messages = DefaultMessages()
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		var end Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Span.End
		}
		tokens = append(tokens, Token{Kind: TokenEOF, Span: Span{Start: end, End: end}})
	}
	b := &Builder{
		ctx:      ctx,
		tokens:   tokens,
		messages: messages,
		events:   make([]event, 0, len(tokens)),
	}
	for i, tok := range tokens {
		if !tok.Kind.IsTrivia() {
			b.sig = append(b.sig, i)
		}
	}
	return b
}

func (b *Builder) eofIndex() int {
	return len(b.sig) - 1
}

func (b *Builder) limit() int {
	if len(b.limits) > 0 {
		return b.limits[len(b.limits)-1]
	}
	return b.eofIndex()
}

// PushLimit makes the significant token at index end look like EOF until
// PopLimit is called. It bounds recovery inside brace-matched regions.
func (b *Builder) PushLimit(end int) {
	if end > b.limit() {
		end = b.limit()
	}
	b.limits = append(b.limits, end)
}

func (b *Builder) PopLimit() {
	b.limits = b.limits[:len(b.limits)-1]
}

// Pos returns the index of the current significant token.
func (b *Builder) Pos() int {
	return b.pos
}

// LookAhead returns the kind of the n-th significant token after the current
// one, skipping whitespace and comments.
func (b *Builder) LookAhead(n int) TokenKind {
	if b.canceled || b.pos+n >= b.limit() {
		return TokenEOF
	}
	return b.tokens[b.sig[b.pos+n]].Kind
}

func (b *Builder) Kind() TokenKind {
	return b.LookAhead(0)
}

// TextAt returns the text of the n-th significant token ahead.
func (b *Builder) TextAt(n int) string {
	if b.canceled || b.pos+n >= b.limit() {
		return ""
	}
	return b.tokens[b.sig[b.pos+n]].Literal
}

func (b *Builder) Text() string {
	return b.TextAt(0)
}

// Token returns the current significant token.
func (b *Builder) Token() Token {
	return b.TokenAt(0)
}

func (b *Builder) TokenAt(n int) Token {
	i := b.pos + n
	if i >= b.limit() {
		i = b.limit()
	}
	return b.tokens[b.sig[i]]
}

// RawLookup returns the kind of the n-th raw token after the current
// significant token, without skipping trivia.
func (b *Builder) RawLookup(n int) TokenKind {
	if b.canceled || b.pos >= b.limit() {
		return TokenEOF
	}
	i := b.sig[b.pos] + n
	if i >= len(b.tokens) || i > b.sig[b.limit()] {
		return TokenEOF
	}
	return b.tokens[i].Kind
}

func (b *Builder) rawText(n int) string {
	if b.pos >= b.limit() {
		return ""
	}
	i := b.sig[b.pos] + n
	if i >= len(b.tokens) {
		return ""
	}
	return b.tokens[i].Literal
}

func (b *Builder) EOF() bool {
	return b.Kind() == TokenEOF
}

// Canceled reports whether the context passed to NewBuilder is done. Once
// canceled the builder reports EOF so every grammar loop terminates.
func (b *Builder) Canceled() bool {
	return b.canceled
}

func (b *Builder) checkCanceled() {
	b.steps++
	if b.steps&0xff == 0 && b.ctx.Err() != nil {
		b.canceled = true
	}
}

// Advance consumes the current significant token.
func (b *Builder) Advance() {
	b.AdvanceComposite(-1, 1)
}

// AdvanceComposite consumes n adjacent tokens as a single leaf of the given
// kind. A negative kind keeps the kind of the current token.
func (b *Builder) AdvanceComposite(kind TokenKind, n int) {
	if b.EOF() {
		return
	}
	b.checkCanceled()
	if b.pos+n > b.limit() {
		n = b.limit() - b.pos
	}
	b.events = append(b.events, event{kind: eventToken, pos: b.pos, count: n, remap: kind})
	b.pos += n
}

// Error records a zero-width error right after the last consumed token.
func (b *Builder) Error(key string, args ...any) {
	b.events = append(b.events, event{
		kind:  eventError,
		pos:   b.pos,
		err:   b.newError(key, args...),
		at:    b.prevEnd(),
		atEOF: b.pos >= b.eofIndex(),
	})
}

func (b *Builder) newError(key string, args ...any) *Error {
	return &Error{Key: key, Message: b.messages.Text(key, args...)}
}

func (b *Builder) prevEnd() Position {
	if b.pos == 0 {
		return b.tokens[b.sig[0]].Span.Start
	}
	return b.tokens[b.sig[b.pos-1]].Span.End
}

// Mark opens a checkpoint at the current position.
func (b *Builder) Mark() Marker {
	idx := len(b.events)
	b.events = append(b.events, event{kind: eventStart, node: kindNone, pos: b.pos})
	return Marker{b: b, event: idx, origin: idx, pos: b.pos}
}

// HasErrorsSince reports whether any error was recorded after m was opened.
func (b *Builder) HasErrorsSince(m Marker) bool {
	for _, ev := range b.events[m.event+1:] {
		if ev.kind == eventError || (ev.kind == eventStart && ev.node == KindError) {
			return true
		}
	}
	return false
}

// Marker is an open checkpoint. It must end in exactly one of Complete,
// CompleteError, Rollback or Drop.
type Marker struct {
	b      *Builder
	event  int
	origin int
	pos    int
}

func (m Marker) Complete(kind NodeKind) CompletedMarker {
	m.b.events[m.event].node = kind
	m.b.events = append(m.b.events, event{kind: eventFinish, pos: m.b.pos})
	return CompletedMarker{b: m.b, event: m.event, origin: m.origin, pos: m.pos, kind: kind}
}

// CompleteError completes the marker as an error node wrapping everything
// consumed since it was opened.
func (m Marker) CompleteError(key string, args ...any) CompletedMarker {
	m.b.events[m.event].err = m.b.newError(key, args...)
	return m.Complete(KindError)
}

// Rollback restores the cursor to the marker position and discards every
// event recorded since, nested markers and errors included.
func (m Marker) Rollback() {
	m.b.events = m.b.events[:m.origin]
	m.b.pos = m.pos
}

// Drop removes the marker; whatever it covered merges into the parent.
func (m Marker) Drop() {
	if m.event == len(m.b.events)-1 && m.b.events[m.event].forwardParent == 0 && m.origin == m.event {
		m.b.events = m.b.events[:m.event]
		return
	}
	m.b.events[m.event].node = kindNone
}

// Precede opens a marker that will become the parent of m.
func (m Marker) Precede() Marker {
	return m.b.precede(m.event, m.origin, m.pos)
}

// CompletedMarker refers to a node that has been completed but not yet
// materialised. Its zero value means "no node".
type CompletedMarker struct {
	b      *Builder
	event  int
	origin int
	pos    int
	kind   NodeKind
}

func (c CompletedMarker) Ok() bool {
	return c.b != nil
}

func (c CompletedMarker) Kind() NodeKind {
	return c.kind
}

// Precede opens a marker before this node, for wrapping it retroactively.
func (c CompletedMarker) Precede() Marker {
	return c.b.precede(c.event, c.origin, c.pos)
}

func (b *Builder) precede(inner, origin, pos int) Marker {
	idx := len(b.events)
	b.events = append(b.events, event{kind: eventStart, node: kindNone, pos: pos})
	b.events[inner].forwardParent = idx - inner
	return Marker{b: b, event: idx, origin: origin, pos: pos}
}

// Build materialises the event log into a tree. The root must be the first
// marker opened. Tokens the grammar never consumed end up in the root, so
// the tree always reproduces the input.
func (b *Builder) Build() (root *Node, incomplete bool) {
	events := make([]event, len(b.events))
	copy(events, b.events)

	var stack []*Node
	raw := 0

	leaf := func(i int) *Node {
		tok := b.tokens[i]
		return &Node{Kind: KindToken, Span: tok.Span, Token: &tok}
	}
	flush := func(limit int) {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		for ; raw < limit && raw < len(b.tokens); raw++ {
			top.AddChild(leaf(raw))
		}
	}
	closeTop := func() {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(n.Children) > 0 {
			n.Span = Span{Start: n.Children[0].Span.Start, End: n.Children[len(n.Children)-1].Span.End}
		}
		if len(stack) == 0 {
			root = n
			return
		}
		stack[len(stack)-1].AddChild(n)
	}

	var chain []*event
	for i := range events {
		ev := events[i]
		switch ev.kind {
		case eventStart:
			chain = chain[:0]
			for j := i; ; {
				e := &events[j]
				chain = append(chain, &event{node: e.node, err: e.err})
				fp := e.forwardParent
				e.kind = eventProcessed
				if fp == 0 {
					break
				}
				j += fp
			}
			if ev.pos < len(b.sig) {
				flush(b.sig[ev.pos])
			}
			start := b.tokens[b.sig[min(ev.pos, len(b.sig)-1)]].Span.Start
			for k := len(chain) - 1; k >= 0; k-- {
				if chain[k].node == kindNone {
					continue
				}
				stack = append(stack, &Node{Kind: chain[k].node, Error: chain[k].err, Span: Span{Start: start, End: start}})
			}
		case eventFinish:
			if len(stack) == 1 {
				flush(len(b.tokens))
			}
			if len(stack) > 0 {
				closeTop()
			}
		case eventToken:
			first := b.sig[ev.pos]
			flush(first)
			if len(stack) == 0 {
				continue
			}
			last := b.sig[ev.pos+ev.count-1]
			n := leaf(first)
			if ev.count > 1 || ev.remap >= 0 {
				var sb strings.Builder
				for r := first; r <= last; r++ {
					sb.WriteString(b.tokens[r].Literal)
				}
				n.Token.Literal = sb.String()
				n.Token.Span.End = b.tokens[last].Span.End
				n.Span = n.Token.Span
				if ev.remap >= 0 {
					n.Token.Kind = ev.remap
				}
			}
			stack[len(stack)-1].AddChild(n)
			raw = last + 1
		case eventError:
			if ev.atEOF {
				incomplete = true
			}
			if len(stack) == 0 {
				continue
			}
			stack[len(stack)-1].AddChild(&Node{Kind: KindError, Error: ev.err, Span: Span{Start: ev.at, End: ev.at}})
		}
	}

	if len(stack) > 0 {
		b.unbalanced = len(stack)
		log.Warningf("%d markers left open", len(stack))
		flush(len(b.tokens))
		for len(stack) > 0 {
			closeTop()
		}
	}
	if root == nil {
		root = &Node{Kind: KindFragment}
		stack = append(stack, root)
		flush(len(b.tokens))
		root = nil
		closeTop()
	}
	return root, incomplete
}

// Unbalanced returns how many markers Build had to close because the
// grammar left them open.
func (b *Builder) Unbalanced() int {
	return b.unbalanced
}
