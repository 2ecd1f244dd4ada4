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

package bitpack

import (
	"math/rand"
	"testing"
)

func TestMsb(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{255, 8},
		{256, 9},
		{1 << 31, 32},
		{^uint64(0), 64},
	}
	for _, c := range cases {
		if got := Msb(c.v); got != c.want {
			t.Errorf("Msb(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestPackUnpack(t *testing.T) {
	for width := 1; width <= 64; width++ {
		rng := rand.New(rand.NewSource(int64(width)))
		values := make([]uint64, 100)
		var max uint64 = ^uint64(0)
		if width < 64 {
			max = uint64(1)<<width - 1
		}
		for i := range values {
			values[i] = rng.Uint64() & max
		}
		dst := make([]byte, Size(width, len(values)))
		Pack(dst, width, values)
		for i, want := range values {
			if got := Unpack[uint64](dst, width, i); got != want {
				t.Fatalf("width %d: field %d = %d, want %d", width, i, got, want)
			}
		}
	}
}

func TestPackBigEndian(t *testing.T) {
	// 4-bit fields: 0xA, 0xB, 0xC pack to 0xAB, 0xC0
	dst := make([]byte, Size(4, 3))
	Pack(dst, 4, []uint8{0xA, 0xB, 0xC})
	if dst[0] != 0xAB || dst[1] != 0xC0 {
		t.Fatalf("got % x, want ab c0", dst)
	}
	// 3-bit fields straddling a byte boundary:
	// 0b101, 0b110, 0b011 -> 10111001 1...
	dst = make([]byte, Size(3, 3))
	Pack(dst, 3, []uint8{0b101, 0b110, 0b011})
	if dst[0] != 0b10111001 || dst[1] != 0b10000000 {
		t.Fatalf("got %08b %08b", dst[0], dst[1])
	}
}

func TestSize(t *testing.T) {
	if n := Size(3, 3); n != 2 {
		t.Errorf("Size(3, 3) = %d, want 2", n)
	}
	if n := Size(8, 5); n != 5 {
		t.Errorf("Size(8, 5) = %d, want 5", n)
	}
	if n := Size(64, 1); n != 8 {
		t.Errorf("Size(64, 1) = %d, want 8", n)
	}
}
