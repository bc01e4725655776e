//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markkurossi/qsim/compiler/utils"
)

// ErrDivisionByZero is the cause of arithmetic errors from division
// and modulo by zero.
var ErrDivisionByZero = errors.New("division by zero")

// OpType specifies the operation types.
type OpType uint8

// Operation types.
const (
	OpVar OpType = iota
	OpConst
	OpPow
	OpNeg
	OpBitNot
	OpNot
	OpMult
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNeq
	OpBitAnd
	OpBitXor
	OpBitOr
	OpAnd
	OpOr
	OpSelect
)

var opTypes = map[OpType]string{
	OpVar:    "var",
	OpConst:  "const",
	OpPow:    "**",
	OpNeg:    "-",
	OpBitNot: "~",
	OpNot:    "!",
	OpMult:   "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpAdd:    "+",
	OpSub:    "-",
	OpLt:     "<",
	OpLe:     "<=",
	OpGt:     ">",
	OpGe:     ">=",
	OpEq:     "==",
	OpNeq:    "!=",
	OpBitAnd: "&",
	OpBitXor: "^",
	OpBitOr:  "|",
	OpAnd:    "&&",
	OpOr:     "||",
	OpSelect: "?:",
}

func (t OpType) String() string {
	name, ok := opTypes[t]
	if ok {
		return name
	}
	return fmt.Sprintf("{OpType %d}", t)
}

// Arity returns the number of operands of the operation type.
func (t OpType) Arity() int {
	switch t {
	case OpVar, OpConst:
		return 0
	case OpNeg, OpBitNot, OpNot:
		return 1
	case OpSelect:
		return 3
	default:
		return 2
	}
}

// Op is an operation of the flat operation list. The operands refer
// to the results of earlier operations by their index. The OpVar
// operation holds its variable index and the OpConst operation its
// value in Value.
type Op struct {
	Type  OpType
	Args  [3]int
	Value int32
	Point utils.Point
}

func (op Op) String() string {
	switch op.Type {
	case OpVar:
		return fmt.Sprintf("var %c", 'a'+op.Value)
	case OpConst:
		return fmt.Sprintf("const %d", op.Value)
	}
	var args []string
	for i := 0; i < op.Type.Arity(); i++ {
		args = append(args, fmt.Sprintf("$%d", op.Args[i]))
	}
	return fmt.Sprintf("%s %s", op.Type, strings.Join(args, " "))
}

// Code is a compiled expression. The value of the expression is the
// result of the last operation.
type Code struct {
	Ops  []Op
	Argc int
}

// Eval evaluates the code for the argument pattern. The variable v
// takes its value from the bit argc-1-v of the pattern so that
// variable 'a' is the most significant argument bit.
func (c *Code) Eval(pattern int) (int32, error) {
	values := make([]int32, len(c.Ops))
	for i, op := range c.Ops {
		var a, b int32
		switch op.Type.Arity() {
		case 1:
			a = values[op.Args[0]]
		case 2, 3:
			a = values[op.Args[0]]
			b = values[op.Args[1]]
		}
		var r int32

		switch op.Type {
		case OpVar:
			r = int32(pattern>>(c.Argc-1-int(op.Value))) & 1
		case OpConst:
			r = op.Value
		case OpPow:
			r = intpow(a, b)
		case OpNeg:
			r = -a
		case OpBitNot:
			r = ^a
		case OpNot:
			r = bool2int(a == 0)
		case OpMult:
			r = a * b
		case OpDiv, OpMod:
			if b == 0 {
				return 0, utils.Wrapf(utils.ArithmeticError, op.Point,
					ErrDivisionByZero, "division by zero")
			}
			if op.Type == OpDiv {
				r = a / b
			} else {
				r = a % b
			}
		case OpAdd:
			r = a + b
		case OpSub:
			r = a - b
		case OpLt:
			r = bool2int(a < b)
		case OpLe:
			r = bool2int(a <= b)
		case OpGt:
			r = bool2int(a > b)
		case OpGe:
			r = bool2int(a >= b)
		case OpEq:
			r = bool2int(a == b)
		case OpNeq:
			r = bool2int(a != b)
		case OpBitAnd:
			r = a & b
		case OpBitXor:
			r = a ^ b
		case OpBitOr:
			r = a | b
		case OpAnd:
			r = bool2int(a != 0 && b != 0)
		case OpOr:
			r = bool2int(a != 0 || b != 0)
		case OpSelect:
			if a != 0 {
				r = b
			} else {
				r = values[op.Args[2]]
			}
		default:
			return 0, utils.Errorf(utils.InvariantViolation, op.Point,
				"invalid operation %s", op.Type)
		}
		values[i] = r
	}
	if len(values) == 0 {
		return 0, nil
	}
	return values[len(values)-1], nil
}

// intpow computes a**b with wrapping multiplication. Non-positive
// exponents give 1.
func intpow(a, b int32) int32 {
	var result int32 = 1
	for ; b > 0; b >>= 1 {
		if b&1 != 0 {
			result *= a
		}
		a *= a
	}
	return result
}

func bool2int(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
