package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment
	TokenDocComment
	TokenMarkdownDocComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenStringTemplate
	TokenTextBlockTemplate
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords
	TokenAbstract
	TokenAssert
	TokenBoolean
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenClass
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenImplements
	TokenImport
	TokenInstanceof
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenThis
	TokenThrow
	TokenThrows
	TokenTransient
	TokenTry
	TokenVoid
	TokenVolatile
	TokenWhile

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon

	TokenAssign
	TokenGT
	TokenLT
	TokenNot
	TokenBitNot
	TokenQuestion
	TokenColon
	TokenArrow
	TokenEQ
	TokenLE
	TokenNE
	TokenAnd
	TokenOr
	TokenIncrement
	TokenDecrement
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenPercent
	TokenShl
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenPercentAssign
	TokenShlAssign

	// Synthesized by the expression parser from adjacent '>' and '='
	// tokens. The lexer never produces these.
	TokenGE
	TokenShr
	TokenUShr
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:                "EOF",
	TokenError:              "Error",
	TokenWhitespace:         "Whitespace",
	TokenComment:            "Comment",
	TokenLineComment:        "LineComment",
	TokenDocComment:         "DocComment",
	TokenMarkdownDocComment: "MarkdownDocComment",
	TokenIdent:              "Ident",
	TokenIntLiteral:         "IntLiteral",
	TokenFloatLiteral:       "FloatLiteral",
	TokenCharLiteral:        "CharLiteral",
	TokenStringLiteral:      "StringLiteral",
	TokenTextBlock:          "TextBlock",
	TokenStringTemplate:     "StringTemplate",
	TokenTextBlockTemplate:  "TextBlockTemplate",
	TokenTrue:               "true",
	TokenFalse:              "false",
	TokenNull:               "null",
	TokenAbstract:           "abstract",
	TokenAssert:             "assert",
	TokenBoolean:            "boolean",
	TokenBreak:              "break",
	TokenByte:               "byte",
	TokenCase:               "case",
	TokenCatch:              "catch",
	TokenChar:               "char",
	TokenClass:              "class",
	TokenConst:              "const",
	TokenContinue:           "continue",
	TokenDefault:            "default",
	TokenDo:                 "do",
	TokenDouble:             "double",
	TokenElse:               "else",
	TokenEnum:               "enum",
	TokenExtends:            "extends",
	TokenFinal:              "final",
	TokenFinally:            "finally",
	TokenFloat:              "float",
	TokenFor:                "for",
	TokenGoto:               "goto",
	TokenIf:                 "if",
	TokenImplements:         "implements",
	TokenImport:             "import",
	TokenInstanceof:         "instanceof",
	TokenInt:                "int",
	TokenInterface:          "interface",
	TokenLong:               "long",
	TokenNative:             "native",
	TokenNew:                "new",
	TokenPackage:            "package",
	TokenPrivate:            "private",
	TokenProtected:          "protected",
	TokenPublic:             "public",
	TokenReturn:             "return",
	TokenShort:              "short",
	TokenStatic:             "static",
	TokenStrictfp:           "strictfp",
	TokenSuper:              "super",
	TokenSwitch:             "switch",
	TokenSynchronized:       "synchronized",
	TokenThis:               "this",
	TokenThrow:              "throw",
	TokenThrows:             "throws",
	TokenTransient:          "transient",
	TokenTry:                "try",
	TokenVoid:               "void",
	TokenVolatile:           "volatile",
	TokenWhile:              "while",
	TokenLParen:             "(",
	TokenRParen:             ")",
	TokenLBrace:             "{",
	TokenRBrace:             "}",
	TokenLBracket:           "[",
	TokenRBracket:           "]",
	TokenSemicolon:          ";",
	TokenComma:              ",",
	TokenDot:                ".",
	TokenEllipsis:           "...",
	TokenAt:                 "@",
	TokenColonColon:         "::",
	TokenAssign:             "=",
	TokenGT:                 ">",
	TokenLT:                 "<",
	TokenNot:                "!",
	TokenBitNot:             "~",
	TokenQuestion:           "?",
	TokenColon:              ":",
	TokenArrow:              "->",
	TokenEQ:                 "==",
	TokenLE:                 "<=",
	TokenNE:                 "!=",
	TokenAnd:                "&&",
	TokenOr:                 "||",
	TokenIncrement:          "++",
	TokenDecrement:          "--",
	TokenPlus:               "+",
	TokenMinus:              "-",
	TokenStar:               "*",
	TokenSlash:              "/",
	TokenBitAnd:             "&",
	TokenBitOr:              "|",
	TokenBitXor:             "^",
	TokenPercent:            "%",
	TokenShl:                "<<",
	TokenPlusAssign:         "+=",
	TokenMinusAssign:        "-=",
	TokenStarAssign:         "*=",
	TokenSlashAssign:        "/=",
	TokenAndAssign:          "&=",
	TokenOrAssign:           "|=",
	TokenXorAssign:          "^=",
	TokenPercentAssign:      "%=",
	TokenShlAssign:          "<<=",
	TokenGE:                 ">=",
	TokenShr:                ">>",
	TokenUShr:               ">>>",
	TokenShrAssign:          ">>=",
	TokenUShrAssign:         ">>>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// IsTrivia reports whether tokens of this kind are skipped by lookahead.
func (k TokenKind) IsTrivia() bool {
	switch k {
	case TokenWhitespace, TokenComment, TokenLineComment, TokenDocComment, TokenMarkdownDocComment:
		return true
	}
	return false
}

func (k TokenKind) IsPrimitive() bool {
	switch k {
	case TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble:
		return true
	}
	return false
}

func (k TokenKind) IsLiteral() bool {
	switch k {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral, TokenTextBlock,
		TokenStringTemplate, TokenTextBlockTemplate, TokenTrue, TokenFalse, TokenNull:
		return true
	}
	return false
}

func (k TokenKind) IsModifier() bool {
	switch k {
	case TokenPublic, TokenProtected, TokenPrivate, TokenStatic, TokenAbstract, TokenFinal,
		TokenNative, TokenSynchronized, TokenTransient, TokenVolatile, TokenStrictfp, TokenDefault:
		return true
	}
	return false
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
}

// Reserved words only. Contextual keywords such as var, record or module
// stay identifiers and are recognised by the grammar.
var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"assert":       TokenAssert,
	"boolean":      TokenBoolean,
	"break":        TokenBreak,
	"byte":         TokenByte,
	"case":         TokenCase,
	"catch":        TokenCatch,
	"char":         TokenChar,
	"class":        TokenClass,
	"const":        TokenConst,
	"continue":     TokenContinue,
	"default":      TokenDefault,
	"do":           TokenDo,
	"double":       TokenDouble,
	"else":         TokenElse,
	"enum":         TokenEnum,
	"extends":      TokenExtends,
	"final":        TokenFinal,
	"finally":      TokenFinally,
	"float":        TokenFloat,
	"for":          TokenFor,
	"goto":         TokenGoto,
	"if":           TokenIf,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"instanceof":   TokenInstanceof,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"new":          TokenNew,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"return":       TokenReturn,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"super":        TokenSuper,
	"switch":       TokenSwitch,
	"synchronized": TokenSynchronized,
	"this":         TokenThis,
	"throw":        TokenThrow,
	"throws":       TokenThrows,
	"transient":    TokenTransient,
	"try":          TokenTry,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,
	"while":        TokenWhile,
	"true":         TokenTrue,
	"false":        TokenFalse,
	"null":         TokenNull,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
