//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"io"
	"time"

	"github.com/markkurossi/qsim/compiler/utils"
	"github.com/markkurossi/qsim/state"
)

// Display implements the non-quantum operations of the circuit. The
// display must not modify the machine state.
type Display interface {
	Pause(m *Machine, g *Gate) error
	Draw(m *Machine, g *Gate) error
	PrintState(m *Machine, g *Gate) error
	PrintProbabilities(m *Machine, g *Gate) error
	PrintFunction(m *Machine, g *Gate) error
}

// Stats holds the per-operation execution statistics.
type Stats struct {
	Count [numOps]uint64
	Time  [numOps]time.Duration
}

// Gates returns the total number of executed gates.
func (s *Stats) Gates() uint64 {
	var result uint64
	for _, c := range s.Count {
		result += c
	}
	return result
}

// Machine executes circuit programs.
type Machine struct {
	Params  *utils.Params
	Logger  *utils.Logger
	Program *Program
	State   *state.State
	Display Display
	Stats   Stats
}

// NewMachine creates a new machine for the program. The measurements
// use a PRG seeded from params.Seed.
func NewMachine(params *utils.Params, logger *utils.Logger, prog *Program,
	display Display) (*Machine, error) {

	prg, err := state.NewPRG(params.Seed)
	if err != nil {
		return nil, err
	}
	return NewMachineWithRand(params, logger, prog, display, prg), nil
}

// NewMachineWithRand creates a new machine that draws its measurement
// randomness from rand.
func NewMachineWithRand(params *utils.Params, logger *utils.Logger,
	prog *Program, display Display, rand io.Reader) *Machine {

	return &Machine{
		Params:  params,
		Logger:  logger,
		Program: prog,
		State:   state.New(rand),
		Display: display,
	}
}

// Execute runs the machine's program from the beginning.
func (m *Machine) Execute() error {
	return m.Run(m.Program.Gates, 0)
}

// Run executes gates from the index start until the end of gates or
// until the first barrier that closes a repeat block.
func (m *Machine) Run(gates []*Gate, start int) error {
	for i := start; i < len(gates); i++ {
		g := gates[i]
		g.Count++

		if g.Op == BarrierEnd {
			m.Stats.Count[g.Op]++
			return nil
		}
		if g.Op == BarrierBegin {
			m.Stats.Count[g.Op]++
			for gates[i].End != 0 {
				for r := 0; r < gates[i].Repeat; r++ {
					if err := m.Run(gates, i+1); err != nil {
						return err
					}
				}
				i = gates[i].End
			}
			continue
		}

		t0 := time.Now()
		if err := m.execute(g); err != nil {
			return utils.Locate(err, g.Point)
		}
		m.Stats.Count[g.Op]++
		m.Stats.Time[g.Op] += time.Since(t0)
	}
	return nil
}

func (m *Machine) execute(g *Gate) error {
	s := m.State

	switch g.Op {
	case X:
		return s.X(g.Bits[0], g.Ctrl)
	case H:
		return s.H(g.Bits[0], g.Ctrl)
	case Z:
		return s.Z(g.Bits[0], g.Ctrl)
	case Swap:
		return s.Swap(g.Bits[0], g.Bits[1], g.Ctrl)
	case Uf:
		argc := len(g.Bits) - 1
		return s.Uf(g.Bits[argc], g.Bits[:argc], g.Func.Table, g.Ctrl)

	case Measure:
		r, err := s.Measure(g.Bits[0])
		if err != nil {
			return err
		}
		if r.One {
			g.Outcome = One
		} else {
			g.Outcome = Zero
		}
		if !r.Exact && m.Logger != nil {
			m.Logger.Warningf(g,
				"inexact collapse of qubit %d: P(1)=%s",
				g.Bits[0], r.P1)
		}
		if m.Logger != nil {
			m.Logger.Printf("M %d: %s\n", g.Bits[0], g.Outcome)
		}
		return nil

	case Pause:
		return m.Display.Pause(m, g)
	case Draw:
		return m.Display.Draw(m, g)
	case PrintState:
		return m.Display.PrintState(m, g)
	case PrintProbabilities:
		return m.Display.PrintProbabilities(m, g)
	case PrintFunction:
		return m.Display.PrintFunction(m, g)

	default:
		return utils.Errorf(utils.InvariantViolation, g.Point,
			"invalid operation %s", g.Op)
	}
}
