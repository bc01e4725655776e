//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package state

// Partition splits the basis index space around a target qubit. The
// index space consists of blocks of Size amplitudes; inside each block
// the first Half amplitudes have the target qubit 0 and the second
// Half have it 1. Control bits of qubits before the target are
// constant within a block and they are tested once per block (Outer).
// Control bits of qubits after the target vary inside the block and
// they are tested per offset (Inner).
type Partition struct {
	Size  int
	Half  int
	Outer Mask
	Inner Mask
}

// Split creates the partition for the target qubit bit and control
// mask ctrl.
func Split(bit int, ctrl Mask) Partition {
	inner := ctrl & after(bit)
	size := NumAmps >> bit
	return Partition{
		Size:  size,
		Half:  size >> 1,
		Outer: ctrl &^ inner,
		Inner: inner,
	}
}

// Bulk tests if the partition halves can be processed as contiguous
// ranges.
func (p Partition) Bulk() bool {
	return p.Inner == 0
}

// Blocks calls fn for the start index of each block whose outer
// control bits are set.
func (p Partition) Blocks(fn func(base int)) {
	for i := 0; i < NumAmps; i += p.Size {
		if Mask(i)&p.Outer != p.Outer {
			continue
		}
		fn(i)
	}
}

// Pairs calls fn for each eligible index pair. The index lo has the
// target qubit 0 and hi = lo + Half has it 1.
func (p Partition) Pairs(fn func(lo, hi int)) {
	p.Blocks(func(base int) {
		for j := 0; j < p.Half; j++ {
			if Mask(j)&p.Inner != p.Inner {
				continue
			}
			fn(base+j, base+p.Half+j)
		}
	})
}

// SwapPartition splits the index space around two qubits a < b. The
// outer level is the partition of a, the middle level steps over the
// b-blocks inside the lower half of a, and the inner level covers the
// offsets inside the b-half-blocks.
type SwapPartition struct {
	A      Partition
	B      Partition
	Middle Mask
}

// SplitSwap creates the swap partition for qubits a and b, a < b, and
// control mask ctrl.
func SplitSwap(a, b int, ctrl Mask) SwapPartition {
	bp := Split(b, ctrl)
	ap := Split(a, ctrl&^bp.Inner)
	return SwapPartition{
		A:      ap,
		B:      bp,
		Middle: ap.Inner,
	}
}

// Bulk tests if the swapped ranges are contiguous b-half-blocks.
func (p SwapPartition) Bulk() bool {
	return p.B.Inner == 0
}

// Ranges calls fn for each eligible pair of b-half-blocks. The range
// starting at lo has a=0, b=1 and the range starting at hi has a=1,
// b=0. Both ranges are B.Half amplitudes long.
func (p SwapPartition) Ranges(fn func(lo, hi int)) {
	p.A.Blocks(func(base int) {
		for j := p.B.Half; j < p.A.Half; j += p.B.Size {
			if Mask(j)&p.Middle != p.Middle {
				continue
			}
			fn(base+j, base+p.A.Half+j-p.B.Half)
		}
	})
}

// Pairs calls fn for each eligible pair of indices to exchange.
func (p SwapPartition) Pairs(fn func(lo, hi int)) {
	p.Ranges(func(lo, hi int) {
		for k := 0; k < p.B.Half; k++ {
			if Mask(k)&p.B.Inner != p.B.Inner {
				continue
			}
			fn(lo+k, hi+k)
		}
	})
}
