//
// lexer_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package compiler

import (
	"testing"

	"github.com/markkurossi/qsim/compiler/utils"
)

func TestLexer(t *testing.T) {
	input := "f = 0x1f**2 <= a!=b || !c ? -~d : e%1"
	expected := []TokenType{
		TVariable, TAssign, TConstant, TPower, TConstant, TLe, TVariable,
		TNeq, TVariable, TOr, TNot, TVariable, TQuestion, TMinus, TBitNot,
		TVariable, TColon, TVariable, TMod, TConstant, TEOF,
	}
	lexer := NewLexer(utils.Point{Line: 1}, input)
	for idx, tt := range expected {
		token, err := lexer.Get()
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if token.Type != tt {
			t.Fatalf("token %d: got %s, expected %s", idx, token.Type, tt)
		}
		if idx == 2 && token.ConstVal != 31 {
			t.Errorf("constant %s: got %d, expected 31", token,
				token.ConstVal)
		}
	}
}

func TestLexerPoint(t *testing.T) {
	lexer := NewLexer(utils.Point{Source: "c.q", Line: 7, Col: 0}, "  a == 1")
	token, err := lexer.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if token.From.Col != 2 || token.From.Line != 7 {
		t.Errorf("unexpected position %s", token.From)
	}
	token, err = lexer.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if token.Type != TEq || token.From.Col != 4 {
		t.Errorf("unexpected token %s at %s", token, token.From)
	}
	lexer.Unget(token)
	again, err := lexer.Get()
	if err != nil || again != token {
		t.Errorf("Unget failed")
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		value int32
	}{
		{"0", 0},
		{"42", 42},
		{"0x7fffffff", 2147483647},
		{"017", 15},
		{"0X10", 16},
	}
	for _, test := range tests {
		lexer := NewLexer(utils.Point{Line: 1}, test.input)
		token, err := lexer.Get()
		if err != nil {
			t.Fatalf("%s: %v", test.input, err)
		}
		if token.Type != TConstant || token.ConstVal != test.value {
			t.Errorf("%s: got %d, expected %d", test.input, token.ConstVal,
				test.value)
		}
	}
}
