// Package javadoc parses Java documentation comments, both the classic
// /** ... */ form and the Markdown /// form.
package javadoc

import "github.com/dhamidi/jsyn/java/parser"

// Node is implemented by every element of a parsed doc comment.
type Node interface {
	node()
}

// DocComment is a parsed documentation comment: the main description
// followed by block tags.
type DocComment struct {
	Markdown bool
	Body     []Node
	Tags     []Node
}

// Text is a run of plain text.
type Text struct {
	Content string
}

// Code is {@code ...}.
type Code struct {
	Content string
}

// Literal is {@literal ...}.
type Literal struct {
	Content string
}

// Link is {@link ...} or {@linkplain ...}. Ref is nil when Target is not a
// well-formed reference.
type Link struct {
	Target string
	Ref    *Reference
	Label  []Node
	Plain  bool
}

// Value is {@value} with an optional reference to a constant.
type Value struct {
	Target string
	Ref    *Reference
}

// Snippet is {@snippet attributes : body}.
type Snippet struct {
	Attributes []Attribute
	Body       string
}

// InlineTag is any other inline tag: {@summary}, {@return}, {@index},
// {@inheritDoc}, {@docRoot}, {@systemProperty} and unknown ones.
type InlineTag struct {
	Name    string
	Content []Node
}

// Param is @param name or @param <T>.
type Param struct {
	Name        string
	TypeParam   bool
	Description []Node
}

// Throws is @throws or @exception.
type Throws struct {
	Target      string
	Ref         *Reference
	Description []Node
}

// See is @see. Exactly one of Ref, Quoted or Description carries the
// target: a program element, a string, or an HTML link.
type See struct {
	Target      string
	Ref         *Reference
	Quoted      string
	Description []Node
}

// BlockTag is any other block tag. Arg holds the leading word of tags that
// take one (@provides, @uses, @spec, @serialField).
type BlockTag struct {
	Name        string
	Arg         string
	Description []Node
}

// StartElement is an HTML start tag.
type StartElement struct {
	Name       string
	Attributes []Attribute
	SelfClose  bool
}

// EndElement is an HTML end tag.
type EndElement struct {
	Name string
}

type Attribute struct {
	Name  string
	Value string
}

// Entity is an HTML character reference without its & and ;.
type Entity struct {
	Name string
}

// CodeFence is a fenced Markdown code block.
type CodeFence struct {
	Fence string
	Info  string
	Body  string
}

// CodeSpan is Markdown `code`.
type CodeSpan struct {
	Content string
}

// RefLink is a Markdown reference link, [label][ref] or [ref], whose
// reference names a program element.
type RefLink struct {
	Label []Node
	Ref   *Reference
}

// Erroneous is text that looked like markup but could not be parsed.
type Erroneous struct {
	Content string
	Message string
}

func (Text) node()         {}
func (Code) node()         {}
func (Literal) node()      {}
func (Link) node()         {}
func (Value) node()        {}
func (Snippet) node()      {}
func (InlineTag) node()    {}
func (Param) node()        {}
func (Throws) node()       {}
func (See) node()          {}
func (BlockTag) node()     {}
func (StartElement) node() {}
func (EndElement) node()   {}
func (Entity) node()       {}
func (CodeFence) node()    {}
func (CodeSpan) node()     {}
func (RefLink) node()      {}
func (Erroneous) node()    {}

// Reference is a parsed see-reference: module/package.Type#member(P1, P2).
type Reference struct {
	Module string
	// Type is the parsed type part, nil for "#member" references.
	Type *parser.Node
	// TypeName is the source text of Type.
	TypeName string
	Member   string
	// HasParams distinguishes "#m()" from "#m".
	HasParams bool
	Params    []*parser.Node
}
