//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package amp

import (
	"testing"
)

func TestMul(t *testing.T) {
	tests := []struct {
		a, b   Amp
		result Amp
	}{
		{One, One, One},
		{InvRoot2, InvRoot2, Amp{Ones: Denominator >> 1}},
		{One, InvRoot2, InvRoot2},
		{One.Neg(), InvRoot2, InvRoot2.Neg()},
		{
			// (1/2 + √2/4)^2 = 3/8 + √2/4
			Amp{Ones: Denominator >> 1, Root2s: Denominator >> 2},
			Amp{Ones: Denominator >> 1, Root2s: Denominator >> 2},
			Amp{Ones: 3 * (Denominator >> 3), Root2s: Denominator >> 2},
		},
	}
	for idx, test := range tests {
		r := test.a.Mul(test.b)
		if r != test.result {
			t.Errorf("test %d: %v*%v=%v, expected %v",
				idx, test.a, test.b, r, test.result)
		}
	}
}

func TestAddNeg(t *testing.T) {
	a := Amp{Ones: 5, Root2s: -7}
	if !a.Add(a.Neg()).IsZero() {
		t.Errorf("a+(-a) != 0")
	}
	if a.Sub(a) != Zero {
		t.Errorf("a-a != 0")
	}
	if a.Shl(2) != (Amp{Ones: 20, Root2s: -28}) {
		t.Errorf("Shl failed: %v", a.Shl(2))
	}
}

func TestFloat64(t *testing.T) {
	f := InvRoot2.Float64()
	if f < 0.7071 || f > 0.7072 {
		t.Errorf("1/√2=%v", f)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		a   Amp
		str string
	}{
		{Zero, "0"},
		{One, "1"},
		{One.Neg(), "-1"},
		{Amp{Ones: Denominator >> 1}, "1/2"},
		{InvRoot2, "√2/2"},
		{InvRoot2.Neg(), "-√2/2"},
		{Amp{Ones: Denominator >> 1, Root2s: Denominator >> 2}, "1/2 + √2/4"},
		{Amp{Ones: Denominator >> 1, Root2s: -(Denominator >> 2)},
			"1/2 - √2/4"},
		{Amp{Ones: 3 * (Denominator >> 3)}, "3/8"},
		{Amp{Root2s: 3 * (Denominator >> 3)}, "3√2/8"},
		{Amp{Root2s: Denominator}, "√2"},
	}
	for _, test := range tests {
		str := test.a.String()
		if str != test.str {
			t.Errorf("%#v: got %q, expected %q", test.a, str, test.str)
		}
	}
}
