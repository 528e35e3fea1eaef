package parser

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// parseWith runs one grammar production over src inside a fragment root.
func parseWith(t *testing.T, src string, fn func(g *grammar)) (*Node, *grammar) {
	t.Helper()
	b := NewBuilder(context.Background(), Tokenize([]byte(src), ""), nil)
	g := newGrammar(b, nil)
	m := b.Mark()
	fn(g)
	m.Complete(KindFragment)
	root, _ := b.Build()
	if root.Text() != src {
		t.Fatalf("tree text %q, want %q", root.Text(), src)
	}
	return root, g
}

func TestParseTypeFlags(t *testing.T) {
	tests := []struct {
		input string
		flags TypeFlags
		shape string
	}{
		{"A | B", UnionTypes, "Fragment(UnionType(Type Type))"},
		{"A & B & C", IntersectionTypes, "Fragment(IntersectionType(Type Type Type))"},
		{"A | B", 0, "Fragment(Type)"},
		{"? super T", Wildcard, "Fragment(Wildcard(Type))"},
		{"?", Wildcard, "Fragment(Wildcard)"},
		{"Outer<String>.Inner<Integer>", 0, "Fragment(Type(TypeArguments(Type) TypeArguments(Type)))"},
		{"@NonNull String @A []", 0, "Fragment(ArrayType(Type(Annotation(QualifiedName)) Annotation(QualifiedName)))"},
		{"int[][]", 0, "Fragment(ArrayType(ArrayType(Type)))"},
		{"String...", Ellipsis, "Fragment(VarargType(Type))"},
		{"var", VarType, "Fragment(Type)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, _ := parseWith(t, tt.input, func(g *grammar) {
				if g.refs.ParseType(tt.flags) == nil {
					t.Errorf("ParseType(%v) returned nil", tt.flags)
				}
			})
			wantNoErrors(t, root)
			if got := shape(root); got != tt.shape {
				t.Errorf("shape = %s\nwant    %s", got, tt.shape)
			}
		})
	}
}

func TestParseTypeNotApplicable(t *testing.T) {
	for _, src := range []string{"void", "123", "(", "?", "@A"} {
		t.Run(src, func(t *testing.T) {
			parseWith(t, src, func(g *grammar) {
				if info := g.refs.ParseType(0); info != nil {
					t.Errorf("ParseType parsed %q", src)
				}
				if g.b.Pos() != 0 {
					t.Errorf("ParseType consumed %d tokens", g.b.Pos())
				}
			})
		})
	}
}

func TestParseTypeIncompleteAnnotations(t *testing.T) {
	root, _ := parseWith(t, "@A", func(g *grammar) {
		info := g.refs.ParseType(IncompleteAnnotations)
		if info == nil || !info.HasErrors {
			t.Errorf("info = %+v", info)
		}
	})
	if diff := cmp.Diff([]string{"Type expected"}, errorMessages(root)); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}
}

func TestTypeInfo(t *testing.T) {
	tests := []struct {
		input string
		want  TypeInfo
	}{
		{"int", TypeInfo{Primitive: true}},
		{"int[]", TypeInfo{Primitive: true, Array: true}},
		{"List<String>", TypeInfo{Parameterized: true}},
		{"Object...", TypeInfo{Vararg: true}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parseWith(t, tt.input, func(g *grammar) {
				info := g.refs.ParseType(Ellipsis)
				if info == nil {
					t.Fatal("no type")
				}
				got := *info
				got.Marker = CompletedMarker{}
				if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(CompletedMarker{})); diff != "" {
					t.Errorf("info (-want +got):\n%s", diff)
				}
			})
		})
	}
}

func TestTypeParametersAndArguments(t *testing.T) {
	root, _ := parseWith(t, "<T extends A & B, U>", func(g *grammar) {
		g.refs.ParseTypeParameters()
	})
	wantNoErrors(t, root)
	if got := shape(root); got != "Fragment(TypeParameters(TypeParameter(Type Type) TypeParameter))" {
		t.Errorf("shape = %s", got)
	}

	root, _ = parseWith(t, "<>", func(g *grammar) { g.refs.ParseTypeArguments(true) })
	wantNoErrors(t, root)

	root, _ = parseWith(t, "<>", func(g *grammar) { g.refs.ParseTypeArguments(false) })
	if diff := cmp.Diff([]string{"Type expected"}, errorMessages(root)); diff != "" {
		t.Errorf("diamond outside new (-want +got):\n%s", diff)
	}
}

func TestQualifiedNames(t *testing.T) {
	root, _ := parseWith(t, "a.b.c", func(g *grammar) {
		if _, ok := g.refs.ParseQualifiedName(false); !ok {
			t.Error("not a name")
		}
	})
	if name := root.FirstChildOfKind(KindQualifiedName); name == nil || name.Text() != "a.b.c" {
		t.Errorf("name = %v", name)
	}

	root, _ = parseWith(t, "a.b.", func(g *grammar) { g.refs.ParseQualifiedName(true) })
	if diff := cmp.Diff([]string{"Identifier expected"}, errorMessages(root)); diff != "" {
		t.Errorf("dangling dot (-want +got):\n%s", diff)
	}

	parseWith(t, "java.io.*", func(g *grammar) {
		g.refs.ParseQualifiedName(false)
		if g.b.Kind() != TokenDot {
			t.Errorf("stopped at %v, want '.'", g.b.Kind())
		}
		for !g.b.EOF() {
			g.b.Advance()
		}
	})
}
