//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package amp implements exact amplitudes of the form
// ones/D + root2s·√2/D over the fixed denominator D = 2^30.
package amp

import (
	"math"
)

// Fixed-point parameters.
const (
	DenominatorBits = 30
	Denominator     = 1 << DenominatorBits

	// mulShift pre-scales multiplication operands so that the product
	// of two D-scaled values is again D-scaled and fits 32 bits.
	mulShift = DenominatorBits / 2
)

// Amp is an exact real amplitude Ones/D + Root2s·√2/D.
type Amp struct {
	Ones   int32
	Root2s int32
}

// Constants.
var (
	Zero     = Amp{}
	One      = Amp{Ones: Denominator}
	InvRoot2 = Amp{Root2s: Denominator >> 1}
)

// Add returns a+b.
func (a Amp) Add(b Amp) Amp {
	return Amp{
		Ones:   a.Ones + b.Ones,
		Root2s: a.Root2s + b.Root2s,
	}
}

// Sub returns a-b.
func (a Amp) Sub(b Amp) Amp {
	return a.Add(b.Neg())
}

// Neg returns -a.
func (a Amp) Neg() Amp {
	return Amp{
		Ones:   -a.Ones,
		Root2s: -a.Root2s,
	}
}

// Mul returns a·b. Both operands are shifted right by half of the
// denominator bits before multiplying so the low bits of the
// operands are lost.
func (a Amp) Mul(b Amp) Amp {
	a1 := a.Ones >> mulShift
	a2 := a.Root2s >> mulShift
	b1 := b.Ones >> mulShift
	b2 := b.Root2s >> mulShift
	return Amp{
		Ones:   a1*b1 + a2*b2*2,
		Root2s: a1*b2 + a2*b1,
	}
}

// Shl returns a shifted left by n bits.
func (a Amp) Shl(n uint) Amp {
	return Amp{
		Ones:   a.Ones << n,
		Root2s: a.Root2s << n,
	}
}

// IsZero tests if the amplitude is zero.
func (a Amp) IsZero() bool {
	return a.Ones == 0 && a.Root2s == 0
}

// Float64 returns the amplitude as a floating point approximation.
func (a Amp) Float64() float64 {
	return (float64(a.Ones) + float64(a.Root2s)*math.Sqrt2) / Denominator
}
