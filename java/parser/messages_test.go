package parser

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

type upperMessages struct{}

func (upperMessages) Text(key string, args ...any) string {
	return strings.ToUpper(fmt.Sprintf(englishMessages[key], args...))
}

func TestMessages(t *testing.T) {
	m := DefaultMessages()
	if got := m.Text(msgExpectedToken, quote(TokenSemicolon)); got != "';' expected" {
		t.Errorf("got %q", got)
	}
	if got := m.Text(msgFeatureUnsupported, "Records"); got != "Records are not supported at this language level" {
		t.Errorf("got %q", got)
	}

	// no German catalog: English is the fallback
	for _, tag := range []language.Tag{language.German, language.French, language.BritishEnglish, language.Und} {
		m := NewMessages(tag)
		if got := m.Text(msgExpectedStatement); got != "Statement expected" {
			t.Errorf("%s: got %q", tag, got)
		}
		if got := m.Text(msgExpectedToken, quote(TokenRParen)); got != "')' expected" {
			t.Errorf("%s: got %q", tag, got)
		}
	}
}

func TestEveryKeyHasText(t *testing.T) {
	keys := []string{
		msgExpectedToken, msgExpectedExpression, msgExpectedIdentifier, msgExpectedType,
		msgExpectedStatement, msgExpectedDeclaration, msgExpectedBodyOrSemi, msgExpectedCatchOrFinally,
		msgExpectedColonOrArrow, msgExpectedCaseLabel, msgExpectedValue, msgExpectedDirective,
		msgExpectedParameter, msgExpectedPattern, msgExpectedArrayDimension, msgUnexpectedToken,
		msgElseWithoutIf, msgCatchWithoutTry, msgFinallyWithoutTry, msgCaseOutsideSwitch,
		msgFeatureUnsupported,
	}
	for _, key := range keys {
		if englishMessages[key] == "" {
			t.Errorf("no text for %s", key)
		}
	}
}

func TestWithMessages(t *testing.T) {
	root := ParseStatement(strings.NewReader("x = ;"), WithMessages(upperMessages{})).Finish()
	errs := root.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors", len(errs))
	}
	if errs[0].Error.Message != "EXPRESSION EXPECTED" || errs[0].Error.Key != msgExpectedExpression {
		t.Errorf("error = %+v", errs[0].Error)
	}
}
