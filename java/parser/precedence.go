package parser

type precedence int

const (
	precNone precedence = iota
	precAssign
	precConditional
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

type operatorInfo struct {
	level      precedence
	rightAssoc bool
	// polyadic operators collapse same-level chains into one node
	polyadic bool
}

var operators = map[TokenKind]operatorInfo{
	TokenAssign:        {precAssign, true, false},
	TokenPlusAssign:    {precAssign, true, false},
	TokenMinusAssign:   {precAssign, true, false},
	TokenStarAssign:    {precAssign, true, false},
	TokenSlashAssign:   {precAssign, true, false},
	TokenPercentAssign: {precAssign, true, false},
	TokenAndAssign:     {precAssign, true, false},
	TokenOrAssign:      {precAssign, true, false},
	TokenXorAssign:     {precAssign, true, false},
	TokenShlAssign:     {precAssign, true, false},
	TokenShrAssign:     {precAssign, true, false},
	TokenUShrAssign:    {precAssign, true, false},

	TokenQuestion: {precConditional, true, false},

	TokenOr:     {precOr, false, true},
	TokenAnd:    {precAnd, false, true},
	TokenBitOr:  {precBitOr, false, true},
	TokenBitXor: {precBitXor, false, true},
	TokenBitAnd: {precBitAnd, false, true},

	TokenEQ: {precEquality, false, true},
	TokenNE: {precEquality, false, true},

	TokenLT:         {precRelational, false, true},
	TokenGT:         {precRelational, false, true},
	TokenLE:         {precRelational, false, true},
	TokenGE:         {precRelational, false, true},
	TokenInstanceof: {precRelational, false, false},

	TokenShl:  {precShift, false, true},
	TokenShr:  {precShift, false, true},
	TokenUShr: {precShift, false, true},

	TokenPlus:  {precAdditive, false, true},
	TokenMinus: {precAdditive, false, true},

	TokenStar:    {precMultiplicative, false, true},
	TokenSlash:   {precMultiplicative, false, true},
	TokenPercent: {precMultiplicative, false, true},
}

// lookupOperator returns the binary operator at the cursor. Runs of adjacent
// '>' and '=' tokens are merged into the shift and comparison operators the
// lexer never produces; width is the number of tokens making up the operator.
func lookupOperator(b *Builder) (op TokenKind, width int, info operatorInfo, ok bool) {
	op, width = b.Kind(), 1
	if op == TokenGT {
		switch {
		case b.RawLookup(1) == TokenGT && b.RawLookup(2) == TokenGT && b.RawLookup(3) == TokenAssign:
			op, width = TokenUShrAssign, 4
		case b.RawLookup(1) == TokenGT && b.RawLookup(2) == TokenGT:
			op, width = TokenUShr, 3
		case b.RawLookup(1) == TokenGT && b.RawLookup(2) == TokenAssign:
			op, width = TokenShrAssign, 3
		case b.RawLookup(1) == TokenGT:
			op, width = TokenShr, 2
		case b.RawLookup(1) == TokenAssign:
			op, width = TokenGE, 2
		}
	}
	info, ok = operators[op]
	return op, width, info, ok
}

func advanceOperator(b *Builder, op TokenKind, width int) {
	if width == 1 {
		b.Advance()
		return
	}
	b.AdvanceComposite(op, width)
}
