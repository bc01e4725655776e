//
// parser_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/markkurossi/qsim/compiler/utils"
	"github.com/markkurossi/qsim/state"
)

func parse(t *testing.T, data string) *Program {
	prog := NewProgram(utils.MaxGates)
	err := Parse("test.q", strings.NewReader(data), prog)
	if err != nil {
		t.Fatalf("Parse failed: %s", err)
	}
	return prog
}

var deutsch = `# Deutsch algorithm with a balanced function.
f = a   # identity

X 1
H 0..1
Uf 0 1
H 0
M 0
state
prob 0 1
pfunc f
draw
`

func TestParse(t *testing.T) {
	prog := parse(t, deutsch)

	expected := []string{
		"X 1", "H 0", "H 1", "Uf 0 1", "H 0", "M 0", "state", "prob 0 1",
		"pfunc f", "draw",
	}
	if len(prog.Gates) != len(expected) {
		t.Fatalf("got %d gates, expected %d", len(prog.Gates), len(expected))
	}
	for idx, g := range prog.Gates {
		if g.String() != expected[idx] {
			t.Errorf("gate %d: got '%s', expected '%s'", idx, g, expected[idx])
		}
	}
	if prog.Funcs.Lookup('f') == nil {
		t.Errorf("function f not defined")
	}
	if prog.Gates[0].Point.Line != 4 || prog.Gates[0].Point.Source != "test.q" {
		t.Errorf("unexpected gate position %s", prog.Gates[0].Point)
	}
	if prog.Gates[6].Ctrl != state.All {
		t.Errorf("state selects %s", prog.Gates[6].Ctrl)
	}
	if prog.Gates[7].Ctrl != state.Bit(0)|state.Bit(1) {
		t.Errorf("prob selects %s", prog.Gates[7].Ctrl)
	}
}

func TestParseControls(t *testing.T) {
	prog := parse(t, "X 3 : 0..2\nW 4 8 : 9\nZ 1 2 : 0")

	if prog.Gates[0].Ctrl != state.Bit(0)|state.Bit(1)|state.Bit(2) {
		t.Errorf("X controls: %s", prog.Gates[0].Ctrl)
	}
	if g := prog.Gates[1]; g.Op != Swap || g.Ctrl != state.Bit(9) ||
		g.Bits[0] != 4 || g.Bits[1] != 8 {
		t.Errorf("unexpected SWAP %s", g)
	}
	if len(prog.Gates) != 4 {
		t.Fatalf("Z was not expanded: %d gates", len(prog.Gates))
	}
	for _, g := range prog.Gates[2:] {
		if g.Op != Z || g.Ctrl != state.Bit(0) || len(g.Bits) != 1 {
			t.Errorf("unexpected Z gate %s", g)
		}
	}
}

type barrierTest struct {
	data   string
	op     []Op
	end    []int
	repeat []int
}

var barrierTests = []barrierTest{
	{
		data:   "-a\nX 0\n-a 3\n",
		op:     []Op{BarrierBegin, X, BarrierEnd},
		end:    []int{2, 0, 0},
		repeat: []int{3, 0, 0},
	},
	{
		data:   "---\nX 0\n---\n",
		op:     []Op{BarrierBegin, X, BarrierEnd},
		end:    []int{2, 0, 0},
		repeat: []int{1, 0, 0},
	},
	{
		data:   "---a\nX 0\n---a 2\nX 1\n---a 3\n",
		op:     []Op{BarrierBegin, X, BarrierEnd, X, BarrierEnd},
		end:    []int{2, 0, 4, 0, 0},
		repeat: []int{2, 0, 3, 0, 0},
	},
	{
		data:   "-a\n-b\nX 0\n-b 2\n-a 3\n",
		op:     []Op{BarrierBegin, BarrierBegin, X, BarrierEnd, BarrierEnd},
		end:    []int{4, 3, 0, 0, 0},
		repeat: []int{3, 2, 0, 0, 0},
	},
	{
		data:   "-a\n-b\nX 0\n-a 2\n",
		op:     []Op{BarrierBegin, BarrierBegin, X, BarrierEnd},
		end:    []int{3, 0, 0, 0},
		repeat: []int{2, 0, 0, 0},
	},
	{
		data:   "-a # comment\nX 0\n-a 0x10\n",
		op:     []Op{BarrierBegin, X, BarrierEnd},
		end:    []int{2, 0, 0},
		repeat: []int{16, 0, 0},
	},
}

func TestParseBarriers(t *testing.T) {
	for _, test := range barrierTests {
		prog := parse(t, test.data)
		if len(prog.Gates) != len(test.op) {
			t.Fatalf("%q: got %d gates, expected %d", test.data,
				len(prog.Gates), len(test.op))
		}
		for idx, g := range prog.Gates {
			if g.Op != test.op[idx] || g.End != test.end[idx] ||
				g.Repeat != test.repeat[idx] {
				t.Errorf("%q: gate %d: got %s/%d/%d, expected %s/%d/%d",
					test.data, idx, g.Op, g.End, g.Repeat,
					test.op[idx], test.end[idx], test.repeat[idx])
			}
		}
	}
}

type parseErrorTest struct {
	data string
	kind utils.ErrorKind
	line int
	col  int
}

var parseErrorTests = []parseErrorTest{
	{"Q 0", utils.StructuralError, 1, 0},
	{"X", utils.StructuralError, 1, 1},
	{"X 0 0", utils.StructuralError, 1, 4},
	{"X 0 : 0", utils.StructuralError, 1, 6},
	{"X 1 : 0 0", utils.StructuralError, 1, 8},
	{"X 0 ?", utils.StructuralError, 1, 4},
	{"X 3..1", utils.StructuralError, 1, 5},
	{"X 1..", utils.StructuralError, 1, 5},
	{"W 0", utils.StructuralError, 1, 3},
	{"W 0 1 2", utils.StructuralError, 1, 7},
	{"Uf 0 1", utils.StructuralError, 1, 1},
	{"U 0 1", utils.StructuralError, 1, 1},
	{"f = a\nUf 0", utils.StructuralError, 2, 4},
	{"M 0 : 1", utils.StructuralError, 1, 0},
	{"-a 3", utils.StructuralError, 1, 0},
	{"-ab", utils.StructuralError, 1, 2},
	{"- x3", utils.StructuralError, 1, 2},
	{"-a 3x", utils.StructuralError, 1, 3},
	{"-a 99999999999", utils.StructuralError, 1, 3},
	{"-a\n-a 2 X", utils.StructuralError, 2, 5},
	{"foo", utils.StructuralError, 1, 0},
	{"pfunc g", utils.StructuralError, 1, 6},
	{"pfunc", utils.StructuralError, 1, 5},
	{"state 0 0", utils.StructuralError, 1, 8},
	{"state 0 x", utils.StructuralError, 1, 8},
	{"f = 1 / 0", utils.ArithmeticError, 1, 6},
	{"\n\n  g = a $", utils.StructuralError, 3, 10},
	{"f = a\nf = b", utils.StructuralError, 2, 0},
}

func TestParseErrors(t *testing.T) {
	for _, test := range parseErrorTests {
		prog := NewProgram(utils.MaxGates)
		err := Parse("test.q", strings.NewReader(test.data), prog)
		if err == nil {
			t.Errorf("%q: parse succeeded", test.data)
			continue
		}
		if !utils.IsKind(err, test.kind) {
			t.Errorf("%q: got %v, expected %s", test.data, err, test.kind)
		}
		var e *utils.Error
		if !errors.As(err, &e) {
			t.Fatalf("%q: unexpected error %T", test.data, err)
		}
		if e.Point.Line != test.line || e.Point.Col != test.col {
			t.Errorf("%q: error at %s, expected %d:%d: %v", test.data,
				e.Point, test.line, test.col, err)
		}
	}
}

func TestParseCapacity(t *testing.T) {
	prog := NewProgram(2)
	err := Parse("test.q", strings.NewReader("X 0..2"), prog)
	if !utils.IsKind(err, utils.StructuralError) {
		t.Errorf("expected capacity error, got %v", err)
	}
}

func TestParseReport(t *testing.T) {
	var buf bytes.Buffer
	logger := utils.NewLogger(&buf)

	prog := NewProgram(utils.MaxGates)
	err := NewParser("test.q", logger, strings.NewReader("H 0\nX 0 0\n")).
		Parse(prog)
	if err == nil {
		t.Fatalf("parse succeeded")
	}
	expected := "test.q:2:4: structural error: duplicate qubit '0'\nX 0 0\n    ^\n"
	if buf.String() != expected {
		t.Errorf("unexpected report:\n%s\nexpected:\n%s", buf.String(),
			expected)
	}
}
