package lang

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
)

// infix maps two-operand operator tokens to the instruction they emit.
var infix = map[TokenType]OpCode{
	TokenPlus:     OpAdd,
	TokenMinus:    OpSub,
	TokenDice:     OpDice,
	TokenRange:    OpRange,
	TokenColon:    OpLabel,
	TokenAs:       OpAs,
	TokenEqual:    OpEqual,
	TokenLess:     OpLess,
	TokenGreater:  OpGreater,
	TokenAppend:   OpAppend,
	TokenPush:     OpPush,
	TokenHighestN: OpHighestN,
	TokenLowestN:  OpLowestN,
}

// postfix maps operator tokens without a right operand to their instruction.
var postfix = map[TokenType]OpCode{
	TokenBang: OpCount,
	TokenPop:  OpPop,
}

// juxtaposes reports whether a value-starting token in operator position
// sequences a new value after the current one.
func juxtaposes(t TokenType) bool {
	switch t {
	case TokenNumber, TokenWord, TokenDollar,
		TokenHighest, TokenLowest, TokenPrevious, TokenFudge:
		return true
	default:
		return false
	}
}

// parser is a precedence-climbing compiler from tokens to a [Program].
//
// lookahead is the single peek slot: peek fills it without consuming, and
// advance always empties it.
type parser struct {
	tokens    *Tokenizer
	lookahead *Token
}

// Parse compiles source into a [Program]. The whole source must form one
// expression.
func Parse(source string) (Program, error) {
	p := &parser{tokens: NewTokenizer(source)}

	prog, err := p.expr(precLoosest)
	if err != nil {
		return nil, err
	}

	tok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if ok {
		return nil, p.fail("expected operator", tok)
	}

	return prog, nil
}

func (p *parser) peek() (Token, bool, error) {
	if p.lookahead != nil {
		return *p.lookahead, true, nil
	}

	tok, err := p.tokens.Next()
	if errors.Is(err, io.EOF) {
		return Token{}, false, nil
	}

	if err != nil {
		return Token{}, false, err
	}

	p.lookahead = &tok

	return tok, true, nil
}

func (p *parser) advance() (Token, bool, error) {
	tok, ok, err := p.peek()
	p.lookahead = nil

	return tok, ok, err
}

func (p *parser) fail(msg string, tok Token) error {
	return p.failAt(msg+", found "+tok.Type.String(), tok)
}

// failAt reports msg as is, recording the offset of tok.
func (p *parser) failAt(msg string, tok Token) error {
	return ErrParse.
		With(slog.Int("offset", tok.Start)).
		Wrap(errors.New(msg))
}

func (p *parser) failEOF(msg string) error {
	return ErrParse.Wrap(errors.New(msg))
}

// expr parses a unary value followed by every operator binding at least as
// tightly as minPrec.
func (p *parser) expr(minPrec int) (Program, error) {
	prog, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if !ok || tok.Type.closes() {
			return prog, nil
		}

		switch tok.Type {
		case TokenLParen, TokenLBracket, TokenLBrace:
			return prog, nil
		}

		prec := tok.Type.Precedence()
		if juxtaposes(tok.Type) {
			prec = precLoosest
		}

		if prec < minPrec {
			return prog, nil
		}

		tail, err := p.binary(tok, prec)
		if err != nil {
			return nil, err
		}

		prog = append(prog, tail...)
	}
}

// binary parses the continuation introduced by tok, which has already been
// peeked, and returns the instructions that follow the left operand.
func (p *parser) binary(tok Token, prec int) (Program, error) {
	if juxtaposes(tok.Type) {
		rhs, err := p.expr(prec + 1)
		if err != nil {
			return nil, err
		}

		return append(rhs, Code(OpReplace)), nil
	}

	if code, ok := postfix[tok.Type]; ok {
		_, _, _ = p.advance()

		return Program{Code(code)}, nil
	}

	code, ok := infix[tok.Type]
	if !ok {
		return nil, p.fail("expected operator", tok)
	}

	_, _, _ = p.advance()

	rhs, err := p.expr(prec + 1)
	if err != nil {
		return nil, err
	}

	return append(rhs, Code(code)), nil
}

// unary parses one value: a literal, a prefix operator applied to its
// operand, a group, or a list.
func (p *parser) unary() (Program, error) {
	tok, ok, err := p.advance()
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, p.failEOF("expected value, found end of input")
	}

	switch tok.Type {
	case TokenNumber:
		n, err := strconv.Atoi(tok.Text)
		if err != nil {
			return nil, p.fail("invalid number", tok)
		}

		return Program{PushNum(n)}, nil

	case TokenWord:
		return Program{PushWord(tok.Text)}, nil

	case TokenHighest:
		return Program{Code(OpHighest)}, nil

	case TokenLowest:
		return Program{Code(OpLowest)}, nil

	case TokenPrevious:
		return Program{Code(OpPrevious)}, nil

	case TokenFudge:
		return Program{Code(OpFudge)}, nil

	case TokenDice:
		rhs, err := p.expr(precDice + 1)
		if err != nil {
			return nil, err
		}

		prog := append(Program{PushNum(1)}, rhs...)

		return append(prog, Code(OpDice)), nil

	case TokenMinus:
		return p.prefix(precSub+1, OpNeg)

	case TokenPlus:
		return p.prefix(precAdd+1, OpSum)

	case TokenDollar:
		name, err := p.unary()
		if err != nil {
			return nil, err
		}

		return append(name, Code(OpVar)), nil

	case TokenLParen:
		inner, err := p.expr(precLoosest)
		if err != nil {
			return nil, err
		}

		end, ok, err := p.advance()
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, p.failEOF("missing closing paren")
		}

		if end.Type != TokenRParen {
			return nil, p.failAt("missing closing paren", end)
		}

		return inner, nil

	case TokenLBracket:
		return p.list(TokenRBracket)

	case TokenLBrace:
		return p.list(TokenRBrace)

	default:
		return nil, p.fail("expected value", tok)
	}
}

func (p *parser) prefix(prec int, code OpCode) (Program, error) {
	rhs, err := p.expr(prec)
	if err != nil {
		return nil, err
	}

	return append(rhs, Code(code)), nil
}

// list parses comma or whitespace separated elements up to closer and emits
// a List instruction counting them. Each element is a single unary value, so
// [2d6] holds 2 and d6; an expression element needs a group, as in [(2d6)].
func (p *parser) list(closer TokenType) (Program, error) {
	var (
		prog Program
		n    int
	)

	for {
		tok, ok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, p.failEOF("unclosed list")
		}

		switch tok.Type {
		case closer:
			_, _, _ = p.advance()

			return append(prog, MakeList(n)), nil

		case TokenComma:
			_, _, _ = p.advance()

			continue
		}

		elem, err := p.unary()
		if err != nil {
			return nil, err
		}

		prog = append(prog, elem...)
		n++
	}
}
