package lang

import (
	"errors"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer splits source text into tokens on demand.
//
// Once Next returns an error (including io.EOF) every later call returns the
// same error; tokenizing again requires a new Tokenizer.
type Tokenizer struct {
	err error
	src string
	pos int
}

// NewTokenizer returns a Tokenizer over src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// Next returns the next token, or io.EOF when the source is exhausted.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}

	tok, err := t.scan()
	if err != nil {
		t.err = err
	}

	return tok, err
}

// All returns an iterator over the remaining tokens. Iteration stops after
// the first error, which is yielded with a zero Token.
func (t *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := t.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize returns every token of src.
func Tokenize(src string) ([]Token, error) {
	var toks []Token

	for tok, err := range NewTokenizer(src).All() {
		if err != nil {
			return toks, err
		}

		toks = append(toks, tok)
	}

	return toks, nil
}

func (t *Tokenizer) scan() (Token, error) {
	t.skipSpace()

	if t.pos >= len(t.src) {
		return Token{}, io.EOF
	}

	start := t.pos
	r, size := utf8.DecodeRuneInString(t.src[t.pos:])

	switch {
	case isDigit(r):
		return t.number(start)
	case r == '"':
		return t.quoted(start)
	case isIdent(r):
		return t.ident(start)
	}

	t.pos += size

	switch r {
	case '(':
		return t.token(TokenLParen, start), nil
	case ')':
		return t.token(TokenRParen, start), nil
	case '[':
		return t.token(TokenLBracket, start), nil
	case ']':
		return t.token(TokenRBracket, start), nil
	case '{':
		return t.token(TokenLBrace, start), nil
	case '}':
		return t.token(TokenRBrace, start), nil
	case '$':
		return t.token(TokenDollar, start), nil
	case '-':
		return t.token(TokenMinus, start), nil
	case ':':
		return t.token(TokenColon, start), nil
	case ',':
		return t.token(TokenComma, start), nil
	case '!':
		return t.token(TokenBang, start), nil
	case '<':
		return t.token(TokenLess, start), nil
	case '>':
		return t.token(TokenGreater, start), nil

	case '+':
		if t.accept('+') {
			return t.token(TokenAppend, start), nil
		}

		return t.token(TokenPlus, start), nil

	case '=':
		if t.accept('=') {
			return t.token(TokenEqual, start), nil
		}

		return Token{}, t.fail(start, "expected '=' after '='")

	case '.':
		if t.accept('.') {
			return t.token(TokenRange, start), nil
		}

		return Token{}, t.fail(start, "expected '.' after '.'")
	}

	return Token{}, t.fail(start, "unexpected character "+strconv.QuoteRune(r))
}

func (t *Tokenizer) token(typ TokenType, start int) Token {
	return Token{
		Text:  t.src[start:t.pos],
		Type:  typ,
		Start: start,
		End:   t.pos,
	}
}

func (t *Tokenizer) fail(offset int, msg string) error {
	return ErrLex.
		With(slog.Int("offset", offset)).
		Wrap(errors.New(msg))
}

func (t *Tokenizer) accept(b byte) bool {
	if t.pos < len(t.src) && t.src[t.pos] == b {
		t.pos++

		return true
	}

	return false
}

func (t *Tokenizer) skipSpace() {
	for t.pos < len(t.src) {
		r, size := utf8.DecodeRuneInString(t.src[t.pos:])
		if !unicode.IsSpace(r) {
			return
		}

		t.pos += size
	}
}

func (t *Tokenizer) number(start int) (Token, error) {
	for t.pos < len(t.src) && isDigit(rune(t.src[t.pos])) {
		t.pos++
	}

	if t.pos == start {
		return Token{}, t.fail(start, "expected digits")
	}

	tok := t.token(TokenNumber, start)

	if _, err := strconv.Atoi(tok.Text); err != nil {
		return Token{}, t.fail(start, "number out of range: "+tok.Text)
	}

	return tok, nil
}

func (t *Tokenizer) quoted(start int) (Token, error) {
	t.pos++ // opening quote

	var sb strings.Builder

	for {
		if t.pos >= len(t.src) {
			return Token{}, t.fail(start, "unterminated quote")
		}

		c := t.src[t.pos]
		t.pos++

		switch c {
		case '"':
			return Token{
				Text:  sb.String(),
				Type:  TokenWord,
				Start: start,
				End:   t.pos,
			}, nil

		case '\\':
			if t.pos >= len(t.src) {
				return Token{}, t.fail(start, "unterminated quote")
			}

			sb.WriteByte(t.src[t.pos])
			t.pos++

		default:
			sb.WriteByte(c)
		}
	}
}

func (t *Tokenizer) ident(start int) (Token, error) {
	for t.pos < len(t.src) {
		r, size := utf8.DecodeRuneInString(t.src[t.pos:])
		if !isIdent(r) {
			break
		}

		t.pos += size
	}

	text := t.src[start:t.pos]

	if typ, ok := keywords[text]; ok {
		return t.token(typ, start), nil
	}

	// "dF" is the fudge die, not a word.
	if text == "dF" {
		t.pos = start + 1

		return t.token(TokenDice, start), nil
	}

	return t.token(TokenWord, start), nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdent(r rune) bool { return r == '_' || unicode.IsLetter(r) }
