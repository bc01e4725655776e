//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package state implements the exact state vector and the quantum
// gates operating on it.
package state

import (
	"fmt"
	"io"
	"strings"

	"github.com/markkurossi/qsim/amp"
	"github.com/markkurossi/qsim/compiler/utils"
)

const (
	// NumQubits specifies the number of simulated qubits.
	NumQubits = utils.NumQubits
	// NumAmps specifies the number of basis states.
	NumAmps = 1 << NumQubits
)

// Mask is a set of qubits, one bit per qubit. Qubit 0 is the most
// significant bit.
type Mask uint32

// All contains all qubits.
const All Mask = NumAmps - 1

// Bit returns the mask of the qubit q.
func Bit(q int) Mask {
	return 1 << (NumQubits - 1 - q)
}

// after returns the mask of the qubits following qubit q.
func after(q int) Mask {
	return Bit(q) - 1
}

// Qubits returns the qubits of the mask in ascending order.
func (m Mask) Qubits() []int {
	var result []int
	for q := 0; q < NumQubits; q++ {
		if m&Bit(q) != 0 {
			result = append(result, q)
		}
	}
	return result
}

func (m Mask) String() string {
	var parts []string
	for _, q := range m.Qubits() {
		parts = append(parts, fmt.Sprintf("%d", q))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// State is the state vector of NumAmps amplitudes, indexed by the
// basis state.
type State struct {
	amps    []amp.Amp
	scratch []amp.Amp
	rand    io.Reader
}

// New creates a new state in the basis state |0...0>. The measurements
// draw their random numbers from rand.
func New(rand io.Reader) *State {
	s := &State{
		amps:    make([]amp.Amp, NumAmps),
		scratch: make([]amp.Amp, NumAmps/2),
		rand:    rand,
	}
	s.Reset()
	return s
}

// Reset resets the state into the basis state |0...0>.
func (s *State) Reset() {
	for i := range s.amps {
		s.amps[i] = amp.Zero
	}
	s.amps[0] = amp.One
}

// At returns the amplitude of the basis state idx.
func (s *State) At(idx int) amp.Amp {
	return s.amps[idx]
}

// Amps returns a copy of the amplitudes.
func (s *State) Amps() []amp.Amp {
	result := make([]amp.Amp, len(s.amps))
	copy(result, s.amps)
	return result
}

// Norm returns the sum of squared amplitudes. It equals amp.One for
// normalized states.
func (s *State) Norm() amp.Amp {
	var sum amp.Amp
	for _, a := range s.amps {
		sum = sum.Add(a.Mul(a))
	}
	return sum
}

// Marginal returns a snapshot of the state where all qubits outside
// mask are folded into their zero half. If probs is true, the snapshot
// is taken over the squared amplitudes.
func (s *State) Marginal(mask Mask, probs bool) []amp.Amp {
	snap := s.Amps()
	if probs {
		for i, a := range snap {
			snap[i] = a.Mul(a)
		}
	}
	size := NumAmps
	for q := 0; q < NumQubits; q++ {
		half := size >> 1
		if mask&Bit(q) == 0 {
			for j := 0; j < NumAmps; j += size {
				for k := 0; k < half; k++ {
					snap[j+k] = snap[j+k].Add(snap[j+k+half])
				}
			}
		}
		size = half
	}
	return snap
}

// exchange swaps n amplitudes at a with n amplitudes at b.
func (s *State) exchange(a, b, n int) {
	tmp := s.scratch[:n]
	copy(tmp, s.amps[a:a+n])
	copy(s.amps[a:a+n], s.amps[b:b+n])
	copy(s.amps[b:b+n], tmp)
}

func (s *State) swap(a, b int) {
	s.amps[a], s.amps[b] = s.amps[b], s.amps[a]
}

// check verifies that the target qubits are valid and distinct and
// that they do not overlap the control mask.
func check(ctrl Mask, bits ...int) error {
	if ctrl&^All != 0 {
		return utils.Errorf(utils.InvariantViolation, utils.Point{},
			"invalid control mask %x", uint32(ctrl))
	}
	var seen Mask
	for _, b := range bits {
		if b < 0 || b >= NumQubits {
			return utils.Errorf(utils.InvariantViolation, utils.Point{},
				"invalid qubit %d", b)
		}
		if seen&Bit(b) != 0 {
			return utils.Errorf(utils.InvariantViolation, utils.Point{},
				"duplicate qubit %d", b)
		}
		if ctrl&Bit(b) != 0 {
			return utils.Errorf(utils.InvariantViolation, utils.Point{},
				"qubit %d used as target and control", b)
		}
		seen |= Bit(b)
	}
	return nil
}
