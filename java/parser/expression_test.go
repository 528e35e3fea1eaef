package parser

import (
	"strings"
	"testing"
)

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		input string
		shape string
	}{
		{"42", "Literal"},
		{"x", "Identifier"},
		{"-x", "UnaryExpr(Identifier)"},
		{"!!x", "UnaryExpr(UnaryExpr(Identifier))"},
		{"x++", "PostfixExpr(Identifier)"},
		{"a + b * c", "BinaryExpr(Identifier BinaryExpr(Identifier Identifier))"},
		{"a * b + c", "BinaryExpr(BinaryExpr(Identifier Identifier) Identifier)"},
		{"a + b + c", "PolyadicExpr(Identifier Identifier Identifier)"},
		{"a - b + c", "PolyadicExpr(Identifier Identifier Identifier)"},
		{"a && b || c", "BinaryExpr(BinaryExpr(Identifier Identifier) Identifier)"},
		{"a = b = c", "AssignExpr(Identifier AssignExpr(Identifier Identifier))"},
		{"a += 1", "AssignExpr(Identifier Literal)"},
		{"a ? b : c ? d : e", "ConditionalExpr(Identifier Identifier ConditionalExpr(Identifier Identifier Identifier))"},
		{"a < b", "BinaryExpr(Identifier Identifier)"},
		{"a == b != c", "PolyadicExpr(Identifier Identifier Identifier)"},
		{"x instanceof String", "InstanceofExpr(Identifier Type)"},
		{"a instanceof Foo f && g", "BinaryExpr(InstanceofExpr(Identifier TypeTestPattern(Type)) Identifier)"},
		{"o instanceof final Foo f", "InstanceofExpr(Identifier TypeTestPattern(Modifiers Type))"},
		{"o instanceof Point(int x, var y)", "InstanceofExpr(Identifier DeconstructionPattern(Type DeconstructionList(TypeTestPattern(Type) TypeTestPattern(Type))))"},
		{"(a)", "ParenExpr(Identifier)"},
		{"(a) + b", "BinaryExpr(ParenExpr(Identifier) Identifier)"},
		{"(String) o", "CastExpr(Type Identifier)"},
		{"(int) -x", "CastExpr(Type UnaryExpr(Identifier))"},
		{"(List<String>) o", "CastExpr(Type(TypeArguments(Type)) Identifier)"},
		{"(Runnable & Serializable) () -> {}", "CastExpr(IntersectionType(Type Type) LambdaExpr(LambdaParameters Block))"},
		{"x -> x * 2", "LambdaExpr(LambdaParameters(Parameter) BinaryExpr(Identifier Literal))"},
		{"(a, b) -> a + b", "LambdaExpr(LambdaParameters(Parameter Parameter) BinaryExpr(Identifier Identifier))"},
		{"() -> {}", "LambdaExpr(LambdaParameters Block)"},
		{"(int a, String b) -> a", "LambdaExpr(LambdaParameters(Parameter(Type) Parameter(Type)) Identifier)"},
		{"(var a, var b) -> a", "LambdaExpr(LambdaParameters(Parameter(Type) Parameter(Type)) Identifier)"},
		{"a.b.c", "FieldAccess(FieldAccess(Identifier))"},
		{"this.x = 1", "AssignExpr(FieldAccess(This) Literal)"},
		{"foo(1, 2)", "CallExpr(Identifier Arguments(Literal Literal))"},
		{"foo.bar(1)[0]", "ArrayAccess(CallExpr(Identifier Arguments(Literal)) Literal)"},
		{"Collections.<String>emptyList()", "CallExpr(Identifier TypeArguments(Type) Arguments)"},
		{"String::valueOf", "MethodRef(Identifier)"},
		{"List<String>::new", "MethodRef(Type(TypeArguments(Type)))"},
		{"int[]::new", "MethodRef(ArrayType(Type))"},
		{"int.class", "ClassLiteral(Type)"},
		{"Foo[].class", "ClassLiteral(ArrayType(Type))"},
		{"Outer.this", "This(Identifier)"},
		{"new int[3]", "NewExpr(Type Literal)"},
		{"new int[] {1, 2,}", "NewExpr(Type ArrayInit(Literal Literal))"},
		{"new Foo<>(x)", "NewExpr(Type(TypeArguments) Arguments(Identifier))"},
		{"new Foo() { }", "NewExpr(Type Arguments AnonymousClass)"},
		{"outer.new Inner()", "NewExpr(Identifier Type Arguments)"},
		{"switch (x) { case 1 -> 2; default -> 3; }", "SwitchExpr(Identifier SwitchRule(CaseLabelList(Literal) Literal) SwitchRule(DefaultCaseLabel Literal))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpr(t, tt.input)
			wantNoErrors(t, expr)
			if got := shape(expr); got != tt.shape {
				t.Errorf("shape = %s\nwant    %s", got, tt.shape)
			}
		})
	}
}

func TestShiftOperatorsAreMerged(t *testing.T) {
	tests := []struct {
		input string
		op    TokenKind
		kind  NodeKind
	}{
		{"a >> 2", TokenShr, KindBinaryExpr},
		{"a >>> 2", TokenUShr, KindBinaryExpr},
		{"a >= b", TokenGE, KindBinaryExpr},
		{"a >>= 1", TokenShrAssign, KindAssignExpr},
		{"a >>>= 1", TokenUShrAssign, KindAssignExpr},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpr(t, tt.input)
			wantNoErrors(t, expr)
			if expr.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", expr.Kind, tt.kind)
			}
			if expr.FirstToken(tt.op) == nil {
				t.Errorf("no merged %v token in\n%s", tt.op, expr)
			}
		})
	}
}

func TestSplitGreaterThanIsNotAShift(t *testing.T) {
	// "> >" with a space stays two tokens, which is not an operator
	root := checkTree(t, ParseExpression(strings.NewReader("a > > b")), "a > > b")
	if len(root.Errors()) == 0 {
		t.Errorf("expected an error for a split shift operator:\n%s", root)
	}
}

func TestNestedGenericsCloseOneAtATime(t *testing.T) {
	expr := parseExpr(t, "(Map<String, List<List<Integer>>>) o")
	wantNoErrors(t, expr)
	if expr.Kind != KindCastExpr {
		t.Errorf("kind = %v\n%s", expr.Kind, expr)
	}
	if n := count(expr, KindTypeArguments); n != 3 {
		t.Errorf("got %d type argument lists, want 3", n)
	}
}

func TestParenthesizedListIsNotALambda(t *testing.T) {
	root := checkTree(t, ParseExpression(strings.NewReader("(a, b)")), "(a, b)")
	if find(root, KindLambdaExpr) != nil {
		t.Errorf("(a, b) parsed as a lambda:\n%s", root)
	}
	if len(root.Errors()) == 0 {
		t.Errorf("(a, b) should not parse cleanly:\n%s", root)
	}
}

func TestLambdaInsideCaseLabelIsNotALambda(t *testing.T) {
	expr := parseExpr(t, "switch (o) { case X -> y; }")
	wantNoErrors(t, expr)
	if find(expr, KindLambdaExpr) != nil {
		t.Errorf("case label parsed as a lambda:\n%s", expr)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		input  string
		errors []string
	}{
		{"1 +", []string{"Expression expected"}},
		{"foo(1,", []string{"Expression expected", "')' expected"}},
		{"a ? b", []string{"':' expected", "Expression expected"}},
		{"new Foo", []string{"'(' expected"}},
		{"new int[]", []string{"Array dimension or initializer expected"}},
		{"a.", []string{"Identifier expected"}},
		{"int", []string{"'.' expected"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root := checkTree(t, ParseExpression(strings.NewReader(tt.input)), tt.input)
			got := errorMessages(root)
			if strings.Join(got, "|") != strings.Join(tt.errors, "|") {
				t.Errorf("errors = %q, want %q\n%s", got, tt.errors, root)
			}
		})
	}
}

func TestLanguageLevelGating(t *testing.T) {
	tests := []struct {
		input string
		level LanguageLevel
		error string
	}{
		{"\"\"\"\n  hi\n  \"\"\"", 11, "Text blocks are not supported at this language level"},
		{"o instanceof String s", 11, "Patterns in instanceof are not supported at this language level"},
		{"switch (x) { default -> 1; }", 11, "Switch expressions are not supported at this language level"},
		{"STR.\"a \\{b}\"", LatestLevel, "String templates are not supported at this language level"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpr(t, tt.input, WithLanguageLevel(tt.level))
			got := errorMessages(expr)
			if len(got) != 1 || got[0] != tt.error {
				t.Errorf("errors = %q, want [%q]", got, tt.error)
			}
		})
	}
}

func TestStringTemplatesOverride(t *testing.T) {
	features := NewLevelFeatures(21)
	features.Set(FeatureStringTemplates, true)
	expr := parseExpr(t, "STR.\"a \\{b}\"", WithFeatures(features))
	wantNoErrors(t, expr)
	if expr.Kind != KindTemplateExpr {
		t.Errorf("kind = %v", expr.Kind)
	}
}
