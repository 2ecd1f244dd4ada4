// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package sparse implements an Elias-Fano encoded bit vector
// with rank and select support.
//
// A Vector represents a bit vector of length n with m set bits,
// stored in roughly m*(2 + log2(n/m)) bits. It is immutable
// after construction and safe for concurrent readers.
package sparse

import (
	"math/bits"

	"github.com/alancleary/FRAS/bitpack"
	"github.com/alancleary/FRAS/ints"
)

// Vector is a static bit vector of length n supporting
// Rank1 and Select1 over its set bits.
type Vector struct {
	n, m     uint64
	lowWidth int
	low      []byte   // m fields of lowWidth bits
	high     []uint64 // unary-coded high parts
	highLen  uint64   // bits used in high
	onesCum  []uint32 // ones in high[:i], per word
}

// New builds a Vector of length universe from the
// strictly-increasing positions of its set bits.
// Every position must be < universe.
func New(universe uint64, pos []uint64) *Vector {
	v := &Vector{n: universe, m: uint64(len(pos))}
	if v.m > 0 && universe/v.m >= 2 {
		v.lowWidth = bits.Len64(universe/v.m) - 1
	}
	v.highLen = v.m + (universe >> v.lowWidth) + 1
	v.high = make([]uint64, (v.highLen+63)/64)
	if v.lowWidth > 0 {
		lows := make([]uint64, len(pos))
		mask := uint64(1)<<v.lowWidth - 1
		for i, p := range pos {
			lows[i] = p & mask
		}
		v.low = make([]byte, bitpack.Size(v.lowWidth, len(pos)))
		bitpack.Pack(v.low, v.lowWidth, lows)
	}
	for i, p := range pos {
		ints.SetBit(v.high, (p>>v.lowWidth)+uint64(i))
	}
	v.onesCum = make([]uint32, len(v.high)+1)
	for i, w := range v.high {
		v.onesCum[i+1] = v.onesCum[i] + uint32(bits.OnesCount64(w))
	}
	return v
}

// Len returns the length of the bit vector.
func (v *Vector) Len() uint64 { return v.n }

// Ones returns the number of set bits.
func (v *Vector) Ones() uint64 { return v.m }

// MemSize returns the live byte footprint of the vector.
func (v *Vector) MemSize() uint64 {
	return uint64(len(v.low)) + uint64(len(v.high))*8 + uint64(len(v.onesCum))*4
}

// Test reports whether bit i is set.
func (v *Vector) Test(i uint64) bool {
	return v.Rank1(i+1)-v.Rank1(i) == 1
}

// Rank1 returns the number of set bits in [0, i).
// i may be at most Len().
func (v *Vector) Rank1(i uint64) uint64 {
	if v.m == 0 {
		return 0
	}
	hb := i >> v.lowWidth
	// count elements whose high part is < hb, i.e. the
	// ones preceding the hb-th zero in the unary coding
	var count, at uint64
	if hb > 0 {
		z := v.select0(hb)
		count = z - (hb - 1)
		at = z + 1
	}
	// walk the run of elements sharing high part hb
	ilow := i & (uint64(1)<<v.lowWidth - 1)
	for at < v.highLen && ints.TestBit(v.high, at) {
		if bitpack.Unpack[uint64](v.low, v.lowWidth, int(count)) >= ilow {
			break
		}
		count++
		at++
	}
	return count
}

// Select1 returns the position of the k-th set bit;
// k is 1-based and must be in [1, Ones()].
func (v *Vector) Select1(k uint64) uint64 {
	p := v.selectBit(k, true)
	hb := p - (k - 1)
	if v.lowWidth == 0 {
		return hb
	}
	return hb<<v.lowWidth | bitpack.Unpack[uint64](v.low, v.lowWidth, int(k-1))
}

// select0 returns the position of the k-th zero bit
// in the unary coding; k is 1-based.
func (v *Vector) select0(k uint64) uint64 {
	return v.selectBit(k, false)
}

func (v *Vector) selectBit(k uint64, ones bool) uint64 {
	// binary search for the word holding the k-th matching bit
	lo, hi := 0, len(v.high)
	for lo < hi {
		mid := (lo + hi) / 2
		var before uint64
		if ones {
			before = uint64(v.onesCum[mid])
		} else {
			end := uint64(mid) * 64
			if end > v.highLen {
				end = v.highLen
			}
			before = end - uint64(v.onesCum[mid])
		}
		if before < k {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	word := lo - 1
	var before uint64
	if ones {
		before = uint64(v.onesCum[word])
	} else {
		before = uint64(word)*64 - uint64(v.onesCum[word])
	}
	w := v.high[word]
	if !ones {
		w = ^w
	}
	rem := int(k - before)
	for {
		t := bits.TrailingZeros64(w)
		rem--
		if rem == 0 {
			return uint64(word)*64 + uint64(t)
		}
		w &= w - 1
	}
}
