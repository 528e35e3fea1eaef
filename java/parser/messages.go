package parser

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Diagnostic keys. Their English texts live in englishMessages.
const (
	msgExpectedToken          = "expected.token"
	msgExpectedExpression     = "expected.expression"
	msgExpectedIdentifier     = "expected.identifier"
	msgExpectedType           = "expected.type"
	msgExpectedStatement      = "expected.statement"
	msgExpectedDeclaration    = "expected.declaration"
	msgExpectedBodyOrSemi     = "expected.body.or.semicolon"
	msgExpectedCatchOrFinally = "expected.catch.or.finally"
	msgExpectedColonOrArrow   = "expected.colon.or.arrow"
	msgExpectedCaseLabel      = "expected.case.label"
	msgExpectedValue          = "expected.value"
	msgExpectedDirective      = "expected.module.directive"
	msgExpectedParameter      = "expected.parameter"
	msgExpectedPattern        = "expected.pattern"
	msgExpectedArrayDimension = "expected.array.dimension"
	msgUnexpectedToken        = "unexpected.token"
	msgElseWithoutIf          = "else.without.if"
	msgCatchWithoutTry        = "catch.without.try"
	msgFinallyWithoutTry      = "finally.without.try"
	msgCaseOutsideSwitch      = "case.outside.switch"
	msgFeatureUnsupported     = "feature.unsupported"
)

var englishMessages = map[string]string{
	msgExpectedToken:          "%s expected",
	msgExpectedExpression:     "Expression expected",
	msgExpectedIdentifier:     "Identifier expected",
	msgExpectedType:           "Type expected",
	msgExpectedStatement:      "Statement expected",
	msgExpectedDeclaration:    "Class or interface expected",
	msgExpectedBodyOrSemi:     "'{' or ';' expected",
	msgExpectedCatchOrFinally: "'catch' or 'finally' expected",
	msgExpectedColonOrArrow:   "':' or '->' expected",
	msgExpectedCaseLabel:      "Case label expected",
	msgExpectedValue:          "Annotation attribute value expected",
	msgExpectedDirective:      "Module directive expected",
	msgExpectedParameter:      "Parameter expected",
	msgExpectedPattern:        "Pattern expected",
	msgExpectedArrayDimension: "Array dimension or initializer expected",
	msgUnexpectedToken:        "Unexpected token",
	msgElseWithoutIf:          "'else' without 'if'",
	msgCatchWithoutTry:        "'catch' without 'try'",
	msgFinallyWithoutTry:      "'finally' without 'try'",
	msgCaseOutsideSwitch:      "Case statement outside switch",
	msgFeatureUnsupported:     "%s are not supported at this language level",
}

// Messages maps a diagnostic key to user-facing text.
type Messages interface {
	Text(key string, args ...any) string
}

type catalogMessages struct {
	printer *message.Printer
}

// NewMessages returns a message lookup for the given locale backed by an
// x/text catalog. Unknown locales fall back to English.
func NewMessages(tag language.Tag) Messages {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range englishMessages {
		if err := b.SetString(language.English, key, text); err != nil {
			log.Errorf("register message %s: %s", key, err)
		}
	}
	// The printer does not consult the fallback itself, so the locale is
	// matched against the catalog's languages first.
	langs := b.Languages()
	_, index, _ := language.NewMatcher(langs).Match(tag)
	return &catalogMessages{printer: message.NewPrinter(langs[index], message.Catalog(b))}
}

func (m *catalogMessages) Text(key string, args ...any) string {
	return m.printer.Sprintf(key, args...)
}

var (
	defaultMessagesOnce sync.Once
	defaultMessages     Messages
)

func DefaultMessages() Messages {
	defaultMessagesOnce.Do(func() {
		defaultMessages = NewMessages(language.English)
	})
	return defaultMessages
}

func quote(kind TokenKind) string {
	return "'" + kind.String() + "'"
}
