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

package jagged

import (
	"math/rand"
	"testing"
)

var encodings = []Encoding{Plain, BpIndex, BpOpt, BpMono}

// fill populates slots [first, n) the way the grammar loader
// does: ascending, ending at the last slot, with every value
// in slot r below r (the BpIndex contract).
func fill(rng *rand.Rand, first, n int) [][]uint32 {
	slots := make([][]uint32, n)
	for r := first; r < n; r++ {
		values := make([]uint32, 2+rng.Intn(6))
		for i := range values {
			values[i] = uint32(rng.Intn(r))
		}
		slots[r] = values
	}
	return slots
}

func TestEncodings(t *testing.T) {
	const first, n = 256, 300
	rng := rand.New(rand.NewSource(1))
	slots := fill(rng, first, n)
	for _, enc := range encodings {
		t.Run(enc.String(), func(t *testing.T) {
			a := New(enc, n)
			for r := first; r < n; r++ {
				a.Set(r, slots[r])
			}
			for r := first; r < n; r++ {
				if got := a.Len(r); got != len(slots[r]) {
					t.Fatalf("Len(%d) = %d, want %d", r, got, len(slots[r]))
				}
				for i, want := range slots[r] {
					if got := a.Get(r, i); got != want {
						t.Fatalf("Get(%d, %d) = %d, want %d", r, i, got, want)
					}
				}
			}
			if a.MemSize() == 0 {
				t.Fatal("MemSize() = 0")
			}
		})
	}
}

func TestSetAliasing(t *testing.T) {
	for _, enc := range encodings {
		a := New(enc, 257)
		values := []uint32{3, 5, 7}
		a.Set(256, values)
		values[0] = 99
		if got := a.Get(256, 0); got != 3 {
			t.Errorf("%s: stored slot aliases caller slice: Get = %d", enc, got)
		}
	}
}

func TestClear(t *testing.T) {
	for _, enc := range encodings {
		a := New(enc, 257)
		a.Set(256, []uint32{1, 2})
		before := a.MemSize()
		a.Clear(256)
		if a.Len(256) != 0 {
			t.Errorf("%s: Len after Clear = %d", enc, a.Len(256))
		}
		if a.MemSize() >= before {
			t.Errorf("%s: MemSize did not shrink after Clear", enc)
		}
	}
}

func TestBitPackedSmaller(t *testing.T) {
	// with small values in high slots, every bit-packed
	// variant should beat the plain encoding
	const first, n = 256, 1024
	rng := rand.New(rand.NewSource(2))
	slots := fill(rng, first, n)
	plain := New(Plain, n)
	for r := first; r < n; r++ {
		plain.Set(r, slots[r])
	}
	for _, enc := range []Encoding{BpIndex, BpOpt, BpMono} {
		a := New(enc, n)
		for r := first; r < n; r++ {
			a.Set(r, slots[r])
		}
		if a.MemSize() >= plain.MemSize() {
			t.Errorf("%s: MemSize %d not below plain %d", enc, a.MemSize(), plain.MemSize())
		}
	}
}

func TestParseEncoding(t *testing.T) {
	for _, enc := range encodings {
		got, err := ParseEncoding(enc.String())
		if err != nil {
			t.Fatalf("ParseEncoding(%q): %s", enc.String(), err)
		}
		if got != enc {
			t.Fatalf("ParseEncoding(%q) = %v", enc.String(), got)
		}
	}
	if _, err := ParseEncoding("zip"); err == nil {
		t.Fatal("ParseEncoding(\"zip\") should fail")
	}
}

func TestMonoWidthsAfterFinalize(t *testing.T) {
	// widths must keep resolving correctly once the side
	// table is rank-compressed, including slots far from a
	// width change
	const first, n = 256, 2048
	a := New(BpMono, n)
	slots := make([][]uint32, n)
	for r := first; r < n; r++ {
		// values near r force the width to grow with r
		slots[r] = []uint32{uint32(r - 1), uint32(r / 2)}
		a.Set(r, slots[r])
	}
	for r := first; r < n; r++ {
		for i, want := range slots[r] {
			if got := a.Get(r, i); got != want {
				t.Fatalf("Get(%d, %d) = %d, want %d", r, i, got, want)
			}
		}
	}
}
