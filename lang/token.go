package lang

//go:generate go tool stringer --linecomment --type TokenType,OpCode,Kind --output lang_string.go

import "strconv"

// TokenType classifies a [Token] and fixes its binding precedence.
type TokenType int

const (
	TokenNumber   TokenType = iota // Number
	TokenWord                      // Word
	TokenDice                      // Dice
	TokenHighestN                  // HighestN
	TokenLowestN                   // LowestN
	TokenHighest                   // Highest
	TokenLowest                    // Lowest
	TokenPrevious                  // Previous
	TokenFudge                     // Fudge
	TokenAs                        // As
	TokenPush                      // Push
	TokenPop                       // Pop
	TokenLParen                    // LParen
	TokenRParen                    // RParen
	TokenLBracket                  // LBracket
	TokenRBracket                  // RBracket
	TokenLBrace                    // LBrace
	TokenRBrace                    // RBrace
	TokenDollar                    // Dollar
	TokenMinus                     // Minus
	TokenPlus                      // Plus
	TokenAppend                    // Append
	TokenColon                     // Colon
	TokenComma                     // Comma
	TokenBang                      // Bang
	TokenEqual                     // Equal
	TokenLess                      // Less
	TokenGreater                   // Greater
	TokenRange                     // Range
)

const tokenTypeCount = TokenRange + 1

// Binding precedences, higher binds tighter.
const (
	precNone    = -1 // never continues an expression
	precLoosest = 0  // label, bind, count, compare
	precLiteral = 1
	precPop     = 4
	precKeep    = 5
	precPush    = 6
	precAdd     = 7
	precSub     = 8
	precDice    = 9
	precRange   = 10
	precGroup   = 11
	precVar     = 12
)

// Precedence returns the binding precedence of t.
//
// Literal tokens report precLiteral, which orders them in the table. When one
// appears in operator position the parser juxtaposes it at precLoosest
// instead, so a following value sequences after the whole expression.
func (t TokenType) Precedence() int {
	switch t {
	case TokenDollar:
		return precVar
	case TokenLParen, TokenLBracket, TokenLBrace:
		return precGroup
	case TokenRange:
		return precRange
	case TokenDice:
		return precDice
	case TokenMinus:
		return precSub
	case TokenPlus, TokenAppend:
		return precAdd
	case TokenPush:
		return precPush
	case TokenHighestN, TokenLowestN:
		return precKeep
	case TokenPop:
		return precPop
	case TokenNumber, TokenWord,
		TokenHighest, TokenLowest, TokenPrevious, TokenFudge:
		return precLiteral
	case TokenColon, TokenAs, TokenBang,
		TokenEqual, TokenLess, TokenGreater:
		return precLoosest
	default:
		return precNone
	}
}

// closes reports whether t ends a group, list, or list element.
func (t TokenType) closes() bool {
	switch t {
	case TokenRParen, TokenRBracket, TokenRBrace, TokenComma:
		return true
	default:
		return false
	}
}

// keywords maps reserved identifier runs to their token types.
var keywords = map[string]TokenType{
	"d":    TokenDice,
	"h":    TokenHighestN,
	"K":    TokenHighestN,
	"l":    TokenLowestN,
	"k":    TokenLowestN,
	"H":    TokenHighest,
	"L":    TokenLowest,
	"P":    TokenPrevious,
	"F":    TokenFudge,
	"as":   TokenAs,
	"push": TokenPush,
	"pop":  TokenPop,
}

// Keywords returns the reserved identifiers in a stable order.
func Keywords() []string {
	return []string{"F", "H", "K", "L", "P", "as", "d", "h", "k", "l", "pop", "push"}
}

// Token is a lexeme of source text.
//
// Text is a slice of the source except for quoted words, where it holds the
// unescaped interior.
type Token struct {
	Text  string
	Type  TokenType
	Start int // byte offset of the first character
	End   int // byte offset just past the last character
}

func (t Token) String() string {
	return t.Type.String() + "(" + strconv.Quote(t.Text) + ")"
}
