//
// lexer.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package compiler

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/markkurossi/qsim/compiler/utils"
)

// TokenType specifies input token types.
type TokenType int

// Input token types.
const (
	TEOF TokenType = iota
	TVariable
	TConstant
	TAssign
	TQuestion
	TColon
	TOr
	TAnd
	TBitOr
	TBitXor
	TBitAnd
	TEq
	TNeq
	TLt
	TLe
	TGt
	TGe
	TPlus
	TMinus
	TMult
	TDiv
	TMod
	TPower
	TBitNot
	TNot
	TLParen
	TRParen
)

var tokenTypes = map[TokenType]string{
	TEOF:      "end of input",
	TVariable: "variable",
	TConstant: "constant",
	TAssign:   "=",
	TQuestion: "?",
	TColon:    ":",
	TOr:       "||",
	TAnd:      "&&",
	TBitOr:    "|",
	TBitXor:   "^",
	TBitAnd:   "&",
	TEq:       "==",
	TNeq:      "!=",
	TLt:       "<",
	TLe:       "<=",
	TGt:       ">",
	TGe:       ">=",
	TPlus:     "+",
	TMinus:    "-",
	TMult:     "*",
	TDiv:      "/",
	TMod:      "%",
	TPower:    "**",
	TBitNot:   "~",
	TNot:      "!",
	TLParen:   "(",
	TRParen:   ")",
}

func (t TokenType) String() string {
	name, ok := tokenTypes[t]
	if ok {
		return name
	}
	return fmt.Sprintf("{TokenType %d}", t)
}

// Primary tests if the token type starts a primary expression.
func (t TokenType) Primary() bool {
	return t == TVariable || t == TConstant || t == TLParen
}

// Token specifies an input token.
type Token struct {
	Type     TokenType
	From     utils.Point
	StrVal   string
	ConstVal int32
}

func (t *Token) String() string {
	if len(t.StrVal) > 0 {
		return t.StrVal
	}
	return t.Type.String()
}

// Lexer tokenizes one function definition.
type Lexer struct {
	loc   utils.Point
	input []rune
	pos   int
	start int
	ungot *Token
}

// NewLexer creates a new lexer for the input text. The token
// positions are relative to loc.
func NewLexer(loc utils.Point, text string) *Lexer {
	return &Lexer{
		loc:   loc,
		input: []rune(text),
	}
}

// Point returns the current input position.
func (l *Lexer) Point() utils.Point {
	return l.loc.Advance(l.pos)
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

// accept consumes the next rune if it is r.
func (l *Lexer) accept(r rune) bool {
	next, ok := l.peek()
	if !ok || next != r {
		return false
	}
	l.pos++
	return true
}

// Get returns the next token. At the end of input, Get returns a TEOF
// token.
func (l *Lexer) Get() (*Token, error) {
	if l.ungot != nil {
		token := l.ungot
		l.ungot = nil
		return token, nil
	}
	for {
		l.start = l.pos
		r, ok := l.peek()
		if !ok {
			return l.Token(TEOF), nil
		}
		l.pos++
		if unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '=':
			if l.accept('=') {
				return l.Token(TEq), nil
			}
			return l.Token(TAssign), nil
		case '!':
			if l.accept('=') {
				return l.Token(TNeq), nil
			}
			return l.Token(TNot), nil
		case '<':
			if l.accept('=') {
				return l.Token(TLe), nil
			}
			return l.Token(TLt), nil
		case '>':
			if l.accept('=') {
				return l.Token(TGe), nil
			}
			return l.Token(TGt), nil
		case '|':
			if l.accept('|') {
				return l.Token(TOr), nil
			}
			return l.Token(TBitOr), nil
		case '&':
			if l.accept('&') {
				return l.Token(TAnd), nil
			}
			return l.Token(TBitAnd), nil
		case '*':
			if l.accept('*') {
				return l.Token(TPower), nil
			}
			return l.Token(TMult), nil
		case '?':
			return l.Token(TQuestion), nil
		case ':':
			return l.Token(TColon), nil
		case '^':
			return l.Token(TBitXor), nil
		case '+':
			return l.Token(TPlus), nil
		case '-':
			return l.Token(TMinus), nil
		case '/':
			return l.Token(TDiv), nil
		case '%':
			return l.Token(TMod), nil
		case '~':
			return l.Token(TBitNot), nil
		case '(':
			return l.Token(TLParen), nil
		case ')':
			return l.Token(TRParen), nil

		default:
			if r >= 'a' && r <= 'z' {
				token := l.Token(TVariable)
				token.StrVal = string(r)
				return token, nil
			}
			if r >= '0' && r <= '9' {
				return l.number(r)
			}
			return nil, utils.Errorf(utils.StructuralError, l.loc.Advance(l.start),
				"unknown symbol '%c'", r)
		}
	}
}

// number reads an integer literal. Literals starting with 0x are
// hexadecimal and other literals starting with 0 are octal.
func (l *Lexer) number(first rune) (*Token, error) {
	digit := func(r rune) bool {
		return r >= '0' && r <= '9'
	}
	if first == '0' {
		next, _ := l.peek()
		if (next == 'x' || next == 'X') && l.pos+1 < len(l.input) &&
			isHex(l.input[l.pos+1]) {
			l.pos++
			digit = isHex
		} else {
			digit = func(r rune) bool {
				return r >= '0' && r <= '7'
			}
		}
	}
	for {
		r, ok := l.peek()
		if !ok || !digit(r) {
			break
		}
		l.pos++
	}
	token := l.Token(TConstant)
	token.StrVal = string(l.input[l.start:l.pos])

	v, err := strconv.ParseInt(token.StrVal, 0, 32)
	if err != nil {
		return nil, utils.Wrapf(utils.StructuralError, token.From, err,
			"invalid integer %s", token.StrVal)
	}
	token.ConstVal = int32(v)
	return token, nil
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') ||
		(r >= 'A' && r <= 'F')
}

// Unget returns the token t back to the lexer.
func (l *Lexer) Unget(t *Token) {
	l.ungot = t
}

// Token creates a new token of type t starting at the current token
// start position.
func (l *Lexer) Token(t TokenType) *Token {
	return &Token{
		Type: t,
		From: l.loc.Advance(l.start),
	}
}
