package javadoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// References compare by their rendered form; the parsed type trees are
// covered by the parser package.
var docOpts = cmp.Options{
	cmpopts.EquateEmpty(),
	cmp.Transformer("Reference", func(r *Reference) string {
		if r == nil {
			return "<nil>"
		}
		return r.String()
	}),
}

func ref(t *testing.T, text string) *Reference {
	t.Helper()
	r, err := ParseReference(text)
	if err != nil {
		t.Fatalf("ParseReference(%q): %v", text, err)
	}
	return r
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Node
	}{
		{
			"plain text",
			"/** Simple text. */",
			[]Node{Text{"Simple text."}},
		},
		{
			"no delimiters",
			"Simple.",
			[]Node{Text{"Simple."}},
		},
		{
			"leading asterisks",
			"/**\n * First line.\n *   indented\n */",
			[]Node{Text{"First line.\n  indented"}},
		},
		{
			"code with generics",
			"/** Use {@code Map<String, List<Integer>>} for this. */",
			[]Node{Text{"Use "}, Code{"Map<String, List<Integer>>"}, Text{" for this."}},
		},
		{
			"code with braces",
			"/** Use {@code class Foo { int x; }} here. */",
			[]Node{Text{"Use "}, Code{"class Foo { int x; }"}, Text{" here."}},
		},
		{
			"literal",
			"/** {@literal a<b} */",
			[]Node{Literal{"a<b"}},
		},
		{
			"unterminated code",
			"/** {@code abc */",
			[]Node{Erroneous{Content: "{@code abc", Message: "unterminated inline tag"}},
		},
		{
			"unknown inline tag",
			"/** {@foo bar} */",
			[]Node{InlineTag{Name: "foo", Content: []Node{Text{"bar"}}}},
		},
		{
			"inheritDoc",
			"/** {@inheritDoc} */",
			[]Node{InlineTag{Name: "inheritDoc"}},
		},
		{
			"at sign mid-line",
			"/** mail me@host.com */",
			[]Node{Text{"mail me@host.com"}},
		},
		{
			"html and entities",
			"/** a &lt; b<br/>c */",
			[]Node{Text{"a "}, Entity{"lt"}, Text{" b"}, StartElement{Name: "br", SelfClose: true}, Text{"c"}},
		},
		{
			"html attributes",
			`/** <a href="x.html" target=_top>X</a> */`,
			[]Node{
				StartElement{Name: "a", Attributes: []Attribute{{"href", "x.html"}, {"target", "_top"}}},
				Text{"X"},
				EndElement{Name: "a"},
			},
		},
		{
			"markup lookalikes",
			"/** a < b & c */",
			[]Node{Text{"a < b & c"}},
		},
		{
			"html comment",
			"/** a<!-- hidden -->b */",
			[]Node{Text{"ab"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.input)
			if diff := cmp.Diff(tt.want, doc.Body, docOpts); diff != "" {
				t.Errorf("body (-want +got):\n%s", diff)
			}
			if len(doc.Tags) != 0 {
				t.Errorf("unexpected tags %+v", doc.Tags)
			}
		})
	}
}

func TestParseLinks(t *testing.T) {
	doc := Parse("/** See {@link java.util.List#add(int, Object) the add method}, {@link String} and {@linkplain #size() size}. */")
	want := []Node{
		Text{"See "},
		Link{
			Target: "java.util.List#add(int, Object)",
			Ref:    ref(t, "java.util.List#add(int, Object)"),
			Label:  []Node{Text{"the add method"}},
		},
		Text{", "},
		Link{Target: "String", Ref: ref(t, "String")},
		Text{" and "},
		Link{Target: "#size()", Ref: ref(t, "#size()"), Label: []Node{Text{"size"}}, Plain: true},
		Text{"."},
	}
	if diff := cmp.Diff(want, doc.Body, docOpts); diff != "" {
		t.Errorf("body (-want +got):\n%s", diff)
	}
}

func TestParseBrokenLink(t *testing.T) {
	doc := Parse("/** {@link 123} */")
	link, ok := doc.Body[0].(Link)
	if !ok {
		t.Fatalf("got %T, want Link", doc.Body[0])
	}
	if link.Target != "123" || link.Ref != nil {
		t.Errorf("link = %+v", link)
	}
}

func TestParseValue(t *testing.T) {
	doc := Parse("/** Default {@value #MAX} or {@value}. */")
	want := []Node{
		Text{"Default "},
		Value{Target: "#MAX", Ref: ref(t, "#MAX")},
		Text{" or "},
		Value{},
		Text{"."},
	}
	if diff := cmp.Diff(want, doc.Body, docOpts); diff != "" {
		t.Errorf("body (-want +got):\n%s", diff)
	}
}

func TestParseSnippet(t *testing.T) {
	doc := Parse("/**\n * {@snippet lang=java id=\"ex\" :\n *   int x = 1;\n * }\n */")
	want := []Node{Snippet{
		Attributes: []Attribute{{"lang", "java"}, {"id", "ex"}},
		Body:       "  int x = 1;\n",
	}}
	if diff := cmp.Diff(want, doc.Body, docOpts); diff != "" {
		t.Errorf("body (-want +got):\n%s", diff)
	}
}

func TestParseBlockTags(t *testing.T) {
	doc := Parse(`/**
 * Adds.
 * @param count the number
 *   of items
 * @param <T> the type
 * @return the {@code sum}
 * @throws IOException if it fails
 * @exception IllegalStateException
 * @see "The Book"
 * @see <a href="x">X</a>
 * @see List#add(Object) adding
 * @since 1.8
 * @spec https://example.org/spec Title
 */`)
	if diff := cmp.Diff([]Node{Text{"Adds."}}, doc.Body, docOpts); diff != "" {
		t.Errorf("body (-want +got):\n%s", diff)
	}
	want := []Node{
		Param{Name: "count", Description: []Node{Text{"the number\n  of items"}}},
		Param{Name: "T", TypeParam: true, Description: []Node{Text{"the type"}}},
		BlockTag{Name: "return", Description: []Node{Text{"the "}, Code{"sum"}}},
		Throws{Target: "IOException", Ref: ref(t, "IOException"), Description: []Node{Text{"if it fails"}}},
		Throws{Target: "IllegalStateException", Ref: ref(t, "IllegalStateException")},
		See{Quoted: "The Book"},
		See{Description: []Node{StartElement{Name: "a", Attributes: []Attribute{{"href", "x"}}}, Text{"X"}, EndElement{Name: "a"}}},
		See{Target: "List#add(Object)", Ref: ref(t, "List#add(Object)"), Description: []Node{Text{"adding"}}},
		BlockTag{Name: "since", Description: []Node{Text{"1.8"}}},
		BlockTag{Name: "spec", Arg: "https://example.org/spec", Description: []Node{Text{"Title"}}},
	}
	if diff := cmp.Diff(want, doc.Tags, docOpts); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
}

func TestParseOnlyTags(t *testing.T) {
	doc := Parse("/** @deprecated use something else */")
	if len(doc.Body) != 0 {
		t.Errorf("body = %+v", doc.Body)
	}
	want := []Node{BlockTag{Name: "deprecated", Description: []Node{Text{"use something else"}}}}
	if diff := cmp.Diff(want, doc.Tags, docOpts); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
}

func TestParseMarkdown(t *testing.T) {
	doc := ParseMarkdown("/// Returns the `size`.\n///\n/// ```java\n/// int n = list.size();\n/// ```\n/// @return the size")
	if !doc.Markdown {
		t.Error("not marked as Markdown")
	}
	wantBody := []Node{
		Text{"Returns the "},
		CodeSpan{"size"},
		Text{".\n\n"},
		CodeFence{Fence: "```", Info: "java", Body: "int n = list.size();\n"},
	}
	if diff := cmp.Diff(wantBody, doc.Body, docOpts); diff != "" {
		t.Errorf("body (-want +got):\n%s", diff)
	}
	wantTags := []Node{BlockTag{Name: "return", Description: []Node{Text{"the size"}}}}
	if diff := cmp.Diff(wantTags, doc.Tags, docOpts); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
}

func TestParseMarkdownInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Node
	}{
		{"double backticks", "/// ``a`b``", []Node{CodeSpan{"a`b"}}},
		{"padded span", "/// `` `x` ``", []Node{CodeSpan{"`x`"}}},
		{"unclosed span", "/// `x", []Node{Text{"`x"}}},
		{"tilde fence unclosed", "/// ~~~\n/// code", []Node{CodeFence{Fence: "~~~", Body: "code"}}},
		{"longer closing fence", "/// ````\n/// ```\n/// `````", []Node{CodeFence{Fence: "````", Body: "```\n"}}},
		{"fence hides tags", "/// ```\n/// @param x\n/// ```", []Node{CodeFence{Fence: "```", Body: "@param x\n"}}},
		{"short reference", "/// See [List].", []Node{Text{"See "}, RefLink{Ref: ref(t, "List")}, Text{"."}}},
		{
			"full reference",
			"/// See [the list][java.util.List].",
			[]Node{Text{"See "}, RefLink{Label: []Node{Text{"the list"}}, Ref: ref(t, "java.util.List")}, Text{"."}},
		},
		{
			"collapsed reference",
			"/// [Map#get(Object)][]",
			[]Node{RefLink{Label: []Node{Text{"Map#get(Object)"}}, Ref: ref(t, "Map#get(Object)")}},
		},
		{"balanced brackets", "/// [String[]]", []Node{RefLink{Ref: ref(t, "String[]")}}},
		{"inline link", "/// [docs](http://x)", []Node{Text{"[docs](http://x)"}}},
		{"not a reference", "/// [1, 2]", []Node{Text{"[1, 2]"}}},
		{"escaped brackets", `/// \[List\]`, []Node{Text{"[List]"}}},
		{"inline tags still work", "/// {@code x}", []Node{Code{"x"}}},
		{"common indentation", "///   a\n///     b", []Node{Text{"a\n  b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseMarkdown(tt.input)
			if diff := cmp.Diff(tt.want, doc.Body, docOpts); diff != "" {
				t.Errorf("body (-want +got):\n%s", diff)
			}
		})
	}
}
