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

// Package bitpack stores fixed-width unsigned integers
// contiguously in byte slices.
//
// Fields are big-endian: bit 0 of a field is the most
// significant bit, and field i begins at bit i*width of
// the destination, counting from the most significant
// bit of dst[0]. Fields may straddle byte boundaries.
package bitpack

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Msb returns the number of significant bits in v,
// i.e. the smallest width that Pack can store v in.
// Msb(0) is 0.
func Msb[T constraints.Unsigned](v T) int {
	return bits.Len64(uint64(v))
}

// Size returns the number of bytes needed to hold
// n fields of the given width.
func Size(width, n int) int {
	return (width*n + 7) / 8
}

// Pack writes values into dst as width-bit fields.
// dst must hold at least Size(width, len(values)) bytes,
// all zero; width must be in [1, 64] and every value must
// fit in width bits. Violations are programmer errors: a
// short dst panics via slice bounds, while bits of a value
// above width are dropped and a non-zero dst is OR'd into
// without any check.
func Pack[T constraints.Unsigned](dst []byte, width int, values []T) {
	for i, v := range values {
		bit := i * width
		j := bit / 8
		off := bit % 8
		rem := width
		val := uint64(v)
		for rem > 0 {
			free := 8 - off
			take := rem
			if take > free {
				take = free
			}
			// bits [rem-take, rem) of val land at
			// offset off of dst[j]
			chunk := byte(val>>(rem-take)) & (byte(1)<<take - 1)
			dst[j] |= chunk << (free - take)
			rem -= take
			off += take
			if off == 8 {
				off = 0
				j++
			}
		}
	}
}

// Unpack reads the i-th width-bit field from src.
// An i beyond the data packed into src is a programmer
// error; it panics once the field runs past the end of src,
// and a field inside the trailing padding bits of the last
// byte is read without a check.
func Unpack[T constraints.Unsigned](src []byte, width, i int) T {
	bit := i * width
	j := bit / 8
	off := bit % 8
	rem := width
	var val uint64
	for rem > 0 {
		free := 8 - off
		take := rem
		if take > free {
			take = free
		}
		chunk := (src[j] >> (free - take)) & (byte(1)<<take - 1)
		val = val<<take | uint64(chunk)
		rem -= take
		off += take
		if off == 8 {
			off = 0
			j++
		}
	}
	return T(val)
}
