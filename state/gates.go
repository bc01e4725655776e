//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package state

import (
	"github.com/markkurossi/qsim/amp"
	"github.com/markkurossi/qsim/compiler/utils"
)

// X applies the bit flip gate to qubit bit, controlled by ctrl.
func (s *State) X(bit int, ctrl Mask) error {
	if err := check(ctrl, bit); err != nil {
		return err
	}
	p := Split(bit, ctrl)
	if p.Bulk() {
		p.Blocks(func(base int) {
			s.exchange(base, base+p.Half, p.Half)
		})
		return nil
	}
	p.Pairs(s.swap)
	return nil
}

// H applies the Hadamard gate to qubit bit, controlled by ctrl.
func (s *State) H(bit int, ctrl Mask) error {
	if err := check(ctrl, bit); err != nil {
		return err
	}
	Split(bit, ctrl).Pairs(func(lo, hi int) {
		a := s.amps[lo].Mul(amp.InvRoot2)
		b := s.amps[hi].Mul(amp.InvRoot2)
		s.amps[lo] = a.Add(b)
		s.amps[hi] = a.Sub(b)
	})
	return nil
}

// Z applies the phase flip gate to qubit bit, controlled by ctrl.
func (s *State) Z(bit int, ctrl Mask) error {
	if err := check(ctrl, bit); err != nil {
		return err
	}
	Split(bit, ctrl).Pairs(func(lo, hi int) {
		s.amps[hi] = s.amps[hi].Neg()
	})
	return nil
}

// Swap swaps qubits a and b, controlled by ctrl.
func (s *State) Swap(a, b int, ctrl Mask) error {
	if err := check(ctrl, a, b); err != nil {
		return err
	}
	if b < a {
		a, b = b, a
	}
	p := SplitSwap(a, b, ctrl)
	if p.Bulk() {
		p.Ranges(func(lo, hi int) {
			s.exchange(lo, hi, p.B.Half)
		})
		return nil
	}
	p.Pairs(s.swap)
	return nil
}

// Uf applies the oracle gate: the qubit target is flipped when the
// low bit of table[pattern] is set. The pattern is formed from the
// values of the args qubits, the first argument being the most
// significant bit. The gate is controlled by ctrl.
func (s *State) Uf(target int, args []int, table []int32, ctrl Mask) error {
	bits := append([]int{target}, args...)
	if err := check(ctrl, bits...); err != nil {
		return err
	}
	if len(table) != 1<<len(args) {
		return utils.Errorf(utils.InvariantViolation, utils.Point{},
			"oracle takes %d arguments, got %d",
			log2(len(table)), len(args))
	}
	Split(target, ctrl).Pairs(func(lo, hi int) {
		if table[Pattern(lo, args)]&1 == 0 {
			return
		}
		s.swap(lo, hi)
	})
	return nil
}

// Pattern extracts the values of the qubits args from the basis state
// idx. The first argument is the most significant bit of the result.
func Pattern(idx int, args []int) int {
	var pattern int
	for _, arg := range args {
		pattern <<= 1
		if Mask(idx)&Bit(arg) != 0 {
			pattern |= 1
		}
	}
	return pattern
}

func log2(n int) int {
	var result int
	for n > 1 {
		n >>= 1
		result++
	}
	return result
}
