//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package state

import (
	"encoding/binary"
	"io"
	"math"
	"math/bits"

	"github.com/markkurossi/qsim/amp"
	"github.com/markkurossi/qsim/compiler/utils"
)

// Measurement describes the result of a measurement.
type Measurement struct {
	// One is the observed outcome.
	One bool
	// P1 is the probability of outcome 1 before the collapse.
	P1 amp.Amp
	// Exact reports if the collapse renormalized the state exactly.
	// The collapse is exact when the probability of the observed
	// outcome is a power of two without a √2 component.
	Exact bool
}

// Prob1 returns the probability of measuring 1 on qubit bit.
func (s *State) Prob1(bit int) amp.Amp {
	var prob amp.Amp
	Split(bit, 0).Pairs(func(lo, hi int) {
		prob = prob.Add(s.amps[hi].Mul(s.amps[hi]))
	})
	return prob
}

// Measure measures qubit bit and collapses the state into the
// observed outcome.
func (s *State) Measure(bit int) (*Measurement, error) {
	if err := check(0, bit); err != nil {
		return nil, err
	}
	p1 := s.Prob1(bit)

	r, err := s.draw()
	if err != nil {
		return nil, err
	}
	var one bool
	if p1.Root2s == 0 {
		one = int64(r) < int64(p1.Ones)
	} else {
		one = float64(r)/amp.Denominator < p1.Float64()
	}

	prob := p1
	if !one {
		prob = amp.One.Sub(p1)
	}

	m := &Measurement{
		One: one,
		P1:  p1,
	}
	if prob.Root2s == 0 && prob.Ones > 0 && prob.Ones&(prob.Ones-1) == 0 {
		s.collapseExact(bit, one, prob.Ones)
		m.Exact = true
	} else {
		if err := s.collapseScaled(bit, one, prob); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// draw returns a uniform random number in the range [0, Denominator).
func (s *State) draw() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(s.rand, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]) & (amp.Denominator - 1), nil
}

// collapseExact renormalizes the state with the power of two
// probability prob. The survivors are multiplied with
// 1/√prob = 2^((DenominatorBits-tz)/2).
func (s *State) collapseExact(bit int, one bool, prob int32) {
	tz := bits.TrailingZeros32(uint32(prob))
	scale := uint(amp.DenominatorBits/2 - tz/2)

	s.collapse(bit, one, func(a amp.Amp) amp.Amp {
		a = a.Shl(scale)
		if tz&1 != 0 {
			a = a.Mul(amp.InvRoot2)
		}
		return a
	})
}

// collapseScaled renormalizes the state with the probability prob that
// has no exact square root. The survivors are scaled with the rounded
// value of 1/√prob.
func (s *State) collapseScaled(bit int, one bool, prob amp.Amp) error {
	p := prob.Float64()
	if p <= 0 {
		return utils.Errorf(utils.InvariantViolation, utils.Point{},
			"measured outcome of qubit %d has probability %s", bit, prob)
	}
	factor := 1 / math.Sqrt(p)

	s.collapse(bit, one, func(a amp.Amp) amp.Amp {
		return amp.Amp{
			Ones:   int32(math.Round(float64(a.Ones) * factor)),
			Root2s: int32(math.Round(float64(a.Root2s) * factor)),
		}
	})
	return nil
}

// collapse rescales the amplitudes consistent with the outcome and
// zeroes the rest.
func (s *State) collapse(bit int, one bool, rescale func(a amp.Amp) amp.Amp) {
	Split(bit, 0).Pairs(func(lo, hi int) {
		keep, drop := lo, hi
		if one {
			keep, drop = hi, lo
		}
		s.amps[keep] = rescale(s.amps[keep])
		s.amps[drop] = amp.Zero
	})
}
