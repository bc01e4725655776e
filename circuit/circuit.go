//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements quantum circuit programs and their
// execution engine.
package circuit

import (
	"fmt"
	"strings"

	"github.com/markkurossi/qsim/compiler"
	"github.com/markkurossi/qsim/compiler/utils"
	"github.com/markkurossi/qsim/state"
)

// Op specifies gate operation.
type Op byte

// Gate operations.
const (
	X Op = iota
	H
	Z
	Uf
	Swap
	Measure
	BarrierBegin
	BarrierEnd
	Pause
	Draw
	PrintState
	PrintProbabilities
	PrintFunction
	numOps
)

var opNames = map[Op]string{
	X:                  "X",
	H:                  "H",
	Z:                  "Z",
	Uf:                 "U",
	Swap:               "W",
	Measure:            "M",
	BarrierBegin:       "barrier",
	BarrierEnd:         "end",
	Pause:              "pause",
	Draw:               "draw",
	PrintState:         "state",
	PrintProbabilities: "prob",
	PrintFunction:      "pfunc",
}

func (op Op) String() string {
	name, ok := opNames[op]
	if ok {
		return name
	}
	return fmt.Sprintf("{Op %d}", op)
}

// Quantum tests if the operation modifies the state vector.
func (op Op) Quantum() bool {
	return op <= Measure
}

// Outcome specifies measurement outcome.
type Outcome byte

// Measurement outcomes.
const (
	Unknown Outcome = iota
	Zero
	One
)

func (o Outcome) String() string {
	switch o {
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "?"
	}
}

// Gate describes a circuit operation.
type Gate struct {
	Op Op
	// Ctrl holds the control qubits of quantum gates and the selected
	// qubits of the state and probability printers.
	Ctrl state.Mask
	// Bits holds the target qubits. The oracle gate has its arguments
	// first and the target last.
	Bits    []int
	Func    *compiler.Function
	Outcome Outcome
	// Name is the barrier name or 0 for unnamed barriers.
	Name byte
	// End is the index of the barrier closing this barrier's block
	// or 0 if the barrier does not open a block.
	End    int
	Repeat int
	// Count counts how many times the gate has been executed.
	Count int
	Point utils.Point
}

// Location implements the utils.Locator interface.
func (g *Gate) Location() utils.Point {
	return g.Point
}

func (g *Gate) String() string {
	var sb strings.Builder

	switch g.Op {
	case BarrierBegin, BarrierEnd:
		sb.WriteString("---")
		if g.Name != 0 {
			sb.WriteByte(g.Name)
		}
		if g.End != 0 {
			fmt.Fprintf(&sb, " →%d×%d", g.End, g.Repeat)
		}
		return sb.String()

	case Uf:
		fmt.Fprintf(&sb, "%s%c", g.Op, g.Func.Name)

	case PrintFunction:
		return fmt.Sprintf("%s %c", g.Op, g.Func.Name)

	case PrintState, PrintProbabilities:
		sb.WriteString(g.Op.String())
		if g.Ctrl != state.All {
			for _, q := range g.Ctrl.Qubits() {
				fmt.Fprintf(&sb, " %d", q)
			}
		}
		return sb.String()

	default:
		sb.WriteString(g.Op.String())
	}
	for _, b := range g.Bits {
		fmt.Fprintf(&sb, " %d", b)
	}
	if g.Ctrl != 0 {
		sb.WriteString(" :")
		for _, q := range g.Ctrl.Qubits() {
			fmt.Fprintf(&sb, " %d", q)
		}
	}
	if g.Op == Measure && g.Outcome != Unknown {
		fmt.Fprintf(&sb, " = %s", g.Outcome)
	}
	return sb.String()
}

// Program is a parsed circuit.
type Program struct {
	Gates    []*Gate
	Funcs    *compiler.Registry
	MaxGates int
}

// NewProgram creates a new empty program with the capacity of
// maxGates gates.
func NewProgram(maxGates int) *Program {
	return &Program{
		Funcs:    compiler.NewRegistry(),
		MaxGates: maxGates,
	}
}

// Add adds the gate g to the program.
func (p *Program) Add(g *Gate) error {
	if len(p.Gates) >= p.MaxGates {
		return utils.Errorf(utils.StructuralError, g.Point,
			"circuit is too large: the limit is %d gates", p.MaxGates)
	}
	p.Gates = append(p.Gates, g)
	return nil
}

// Reset clears the measurement outcomes and execution counts.
func (p *Program) Reset() {
	for _, g := range p.Gates {
		g.Outcome = Unknown
		g.Count = 0
	}
}
