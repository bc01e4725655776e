//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package compiler

import (
	"github.com/markkurossi/qsim/compiler/utils"
)

// MaxArgs specifies the maximum number of function arguments. One
// qubit is always left for the oracle target.
const MaxArgs = utils.NumQubits - 1

// Parser implements the oracle function parser. The parser emits a
// flat operation list in evaluation order.
type Parser struct {
	lexer *Lexer
	code  *Code
}

// NewParser creates a new parser for the function definition text.
// The error positions are relative to loc.
func NewParser(loc utils.Point, text string) *Parser {
	return &Parser{
		lexer: NewLexer(loc, text),
		code:  new(Code),
	}
}

// Parse parses a function definition of the form name = expression.
func (p *Parser) Parse() (*Function, error) {
	t, err := p.lexer.Get()
	if err != nil {
		return nil, err
	}
	if t.Type != TVariable || t.StrVal[0] >= 'a'+utils.NumFuncs {
		return nil, p.errf(t.From, "bad function name '%s'", t)
	}
	f := &Function{
		Name:  t.StrVal[0],
		Point: t.From,
		Code:  p.code,
	}
	_, err = p.needToken(TAssign)
	if err != nil {
		return nil, err
	}
	_, err = p.parseExpr()
	if err != nil {
		return nil, err
	}
	t, err = p.lexer.Get()
	if err != nil {
		return nil, err
	}
	switch t.Type {
	case TEOF:
		return f, nil
	case TRParen:
		return nil, p.errf(t.From, "stray closing parenthesis")
	default:
		return nil, p.errf(t.From, "unexpected symbol '%s'", t)
	}
}

func (p *Parser) errf(loc utils.Point, format string, a ...interface{}) error {
	return utils.Errorf(utils.StructuralError, loc, format, a...)
}

func (p *Parser) errUnexpected(offending *Token, expected TokenType) error {
	return p.errf(offending.From, "unexpected token '%s': expected '%s'",
		offending, expected)
}

func (p *Parser) needToken(tt TokenType) (*Token, error) {
	token, err := p.lexer.Get()
	if err != nil {
		return nil, err
	}
	if token.Type != tt {
		p.lexer.Unget(token)
		return nil, p.errUnexpected(token, tt)
	}
	return token, nil
}

// emit appends the operation op and returns its index.
func (p *Parser) emit(op Op) (int, error) {
	if len(p.code.Ops) >= utils.MaxFuncOps {
		return 0, p.errf(op.Point, "function too big: more than %d operations",
			utils.MaxFuncOps)
	}
	p.code.Ops = append(p.code.Ops, op)
	return len(p.code.Ops) - 1, nil
}

func (p *Parser) parseExpr() (int, error) {
	return p.parseExprSelect()
}

// parseExprSelect parses the conditional operator. The operator is
// right associative.
func (p *Parser) parseExprSelect() (int, error) {
	cond, err := p.parseExprBinary(0)
	if err != nil {
		return 0, err
	}
	t, err := p.lexer.Get()
	if err != nil {
		return 0, err
	}
	if t.Type != TQuestion {
		p.lexer.Unget(t)
		return cond, nil
	}
	t1, err := p.parseExprSelect()
	if err != nil {
		return 0, err
	}
	_, err = p.needToken(TColon)
	if err != nil {
		return 0, err
	}
	f1, err := p.parseExprSelect()
	if err != nil {
		return 0, err
	}
	return p.emit(Op{
		Type:  OpSelect,
		Args:  [3]int{cond, t1, f1},
		Point: t.From,
	})
}

// binaryLevels lists the left associative binary operators from the
// lowest to the highest precedence.
var binaryLevels = []map[TokenType]OpType{
	{TOr: OpOr},
	{TAnd: OpAnd},
	{TBitOr: OpBitOr},
	{TBitXor: OpBitXor},
	{TBitAnd: OpBitAnd},
	{TEq: OpEq, TNeq: OpNeq},
	{TLt: OpLt, TLe: OpLe, TGt: OpGt, TGe: OpGe},
	{TPlus: OpAdd, TMinus: OpSub},
}

func (p *Parser) parseExprBinary(level int) (int, error) {
	if level >= len(binaryLevels) {
		return p.parseExprMultiplicative()
	}
	left, err := p.parseExprBinary(level + 1)
	if err != nil {
		return 0, err
	}
	for {
		t, err := p.lexer.Get()
		if err != nil {
			return 0, err
		}
		opType, ok := binaryLevels[level][t.Type]
		if !ok {
			p.lexer.Unget(t)
			return left, nil
		}
		right, err := p.parseExprBinary(level + 1)
		if err != nil {
			return 0, err
		}
		left, err = p.emit(Op{
			Type:  opType,
			Args:  [3]int{left, right},
			Point: t.From,
		})
		if err != nil {
			return 0, err
		}
	}
}

// parseExprMultiplicative parses multiplicative operators. A primary
// expression following an operand multiplies it.
func (p *Parser) parseExprMultiplicative() (int, error) {
	left, err := p.parseExprUnary()
	if err != nil {
		return 0, err
	}
	for {
		t, err := p.lexer.Get()
		if err != nil {
			return 0, err
		}
		var opType OpType
		switch t.Type {
		case TMult:
			opType = OpMult
		case TDiv:
			opType = OpDiv
		case TMod:
			opType = OpMod
		default:
			p.lexer.Unget(t)
			if !t.Type.Primary() {
				return left, nil
			}
			opType = OpMult
		}
		right, err := p.parseExprUnary()
		if err != nil {
			return 0, err
		}
		left, err = p.emit(Op{
			Type:  opType,
			Args:  [3]int{left, right},
			Point: t.From,
		})
		if err != nil {
			return 0, err
		}
	}
}

func (p *Parser) parseExprUnary() (int, error) {
	t, err := p.lexer.Get()
	if err != nil {
		return 0, err
	}
	var opType OpType
	switch t.Type {
	case TMinus:
		opType = OpNeg
	case TBitNot:
		opType = OpBitNot
	case TNot:
		opType = OpNot
	default:
		p.lexer.Unget(t)
		return p.parseExprPower()
	}
	expr, err := p.parseExprUnary()
	if err != nil {
		return 0, err
	}
	return p.emit(Op{
		Type:  opType,
		Args:  [3]int{expr},
		Point: t.From,
	})
}

// parseExprPower parses the exponentiation operator. The operator is
// left associative.
func (p *Parser) parseExprPower() (int, error) {
	left, err := p.parseExprPrimary()
	if err != nil {
		return 0, err
	}
	for {
		t, err := p.lexer.Get()
		if err != nil {
			return 0, err
		}
		if t.Type != TPower {
			p.lexer.Unget(t)
			return left, nil
		}
		right, err := p.parseExprPrimary()
		if err != nil {
			return 0, err
		}
		left, err = p.emit(Op{
			Type:  OpPow,
			Args:  [3]int{left, right},
			Point: t.From,
		})
		if err != nil {
			return 0, err
		}
	}
}

func (p *Parser) parseExprPrimary() (int, error) {
	t, err := p.lexer.Get()
	if err != nil {
		return 0, err
	}
	switch t.Type {
	case TVariable:
		v := int(t.StrVal[0] - 'a')
		if v >= MaxArgs {
			return 0, p.errf(t.From,
				"invalid variable '%s': valid variables are 'a'...'%c'",
				t, 'a'+MaxArgs-1)
		}
		if v+1 > p.code.Argc {
			p.code.Argc = v + 1
		}
		return p.emit(Op{
			Type:  OpVar,
			Value: int32(v),
			Point: t.From,
		})

	case TConstant:
		return p.emit(Op{
			Type:  OpConst,
			Value: t.ConstVal,
			Point: t.From,
		})

	case TLParen:
		expr, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		_, err = p.needToken(TRParen)
		if err != nil {
			return 0, err
		}
		return expr, nil

	case TEOF:
		return 0, p.errf(t.From, "unexpected end of input")

	default:
		return 0, p.errf(t.From, "unexpected symbol '%s'", t)
	}
}
