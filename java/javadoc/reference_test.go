package javadoc

import (
	"errors"
	"testing"

	"github.com/dhamidi/jsyn/java/parser"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		input     string
		module    string
		typeName  string
		member    string
		hasParams bool
		params    int
		rendered  string
	}{
		{"String", "", "String", "", false, 0, "String"},
		{"java.base/java.util.List", "java.base", "java.util.List", "", false, 0, "java.base/java.util.List"},
		{"java.base/", "java.base", "", "", false, 0, "java.base/"},
		{"#equals(Object)", "", "", "equals", true, 1, "#equals(Object)"},
		{"Map.Entry#getKey()", "", "Map.Entry", "getKey", true, 0, "Map.Entry#getKey()"},
		{"#MAX_VALUE", "", "", "MAX_VALUE", false, 0, "#MAX_VALUE"},
		{"Arrays#sort(int[], int, int)", "", "Arrays", "sort", true, 3, "Arrays#sort(int[], int, int)"},
		{"Collections#max(Collection<? extends T> coll)", "", "Collections", "max", true, 1, "Collections#max(Collection<? extends T>)"},
		{"String#format(String, Object...)", "", "String", "format", true, 2, "String#format(String, Object...)"},
		{" List ", "", "List", "", false, 0, "List"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := ParseReference(tt.input)
			if err != nil {
				t.Fatalf("ParseReference: %v", err)
			}
			if r.Module != tt.module || r.TypeName != tt.typeName || r.Member != tt.member || r.HasParams != tt.hasParams {
				t.Errorf("got %+v", r)
			}
			if len(r.Params) != tt.params {
				t.Errorf("params = %d, want %d", len(r.Params), tt.params)
			}
			if (r.Type != nil) != (tt.typeName != "") {
				t.Errorf("type node = %v", r.Type)
			}
			if got := r.String(); got != tt.rendered {
				t.Errorf("String() = %q, want %q", got, tt.rendered)
			}
		})
	}
}

func TestParseReferenceTypeTrees(t *testing.T) {
	r, err := ParseReference("Arrays#sort(int[], Object...)")
	if err != nil {
		t.Fatal(err)
	}
	if r.Type.Kind != parser.KindType {
		t.Errorf("type kind = %v", r.Type.Kind)
	}
	if r.Params[0].Kind != parser.KindArrayType {
		t.Errorf("param 0 kind = %v", r.Params[0].Kind)
	}
	if r.Params[1].Kind != parser.KindVarargType {
		t.Errorf("param 1 kind = %v", r.Params[1].Kind)
	}
}

func TestParseReferenceInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"a b",
		"#",
		"List#add(int",
		"1abc",
		"bad-module/x.Y",
		"#m(int,)",
		"List#1x",
	} {
		t.Run(input, func(t *testing.T) {
			r, err := ParseReference(input)
			if err == nil {
				t.Fatalf("parsed %q as %+v", input, r)
			}
			if !errors.Is(err, ErrInvalidReference) {
				t.Errorf("error %v does not wrap ErrInvalidReference", err)
			}
		})
	}
}

func TestStripParamName(t *testing.T) {
	tests := map[string]string{
		"int count":         "int",
		"Map<K, V> m":       "Map<K, V>",
		"Map<K, V>":         "Map<K, V>",
		"String... args":    "String...",
		"int[] xs":          "int[]",
		"java.util.List":    "java.util.List",
		"final":             "final",
	}
	for in, want := range tests {
		if got := stripParamName(in); got != want {
			t.Errorf("stripParamName(%q) = %q, want %q", in, got, want)
		}
	}
}
