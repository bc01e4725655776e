//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package amp

import (
	"fmt"
	"math/bits"
)

// Fraction is a value num/den reduced to lowest terms. Since the
// denominator is a power of two, den is a power of two as well.
type Fraction struct {
	Num int32
	Den int32
}

// Reduce reduces v/D into lowest terms.
func Reduce(v int32) Fraction {
	if v == 0 {
		return Fraction{Num: 0, Den: 1}
	}
	tz := bits.TrailingZeros32(uint32(v))
	if tz > DenominatorBits {
		tz = DenominatorBits
	}
	return Fraction{
		Num: v >> tz,
		Den: 1 << (DenominatorBits - tz),
	}
}

func (f Fraction) String() string {
	if f.Den == 1 {
		return fmt.Sprintf("%d", f.Num)
	}
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// String formats the amplitude as an exact fraction, for example
// "1/2 + √2/4" or "-√2/2".
func (a Amp) String() string {
	ones := Reduce(a.Ones)
	root2s := Reduce(a.Root2s)

	if a.Root2s == 0 {
		return ones.String()
	}

	var result string
	num := root2s.Num
	if a.Ones != 0 {
		result = ones.String()
		if num < 0 {
			result += " - "
			num = -num
		} else {
			result += " + "
		}
	}
	switch num {
	case 1:
		result += "√2"
	case -1:
		result += "-√2"
	default:
		result += fmt.Sprintf("%d√2", num)
	}
	if root2s.Den != 1 {
		result += fmt.Sprintf("/%d", root2s.Den)
	}
	return result
}
