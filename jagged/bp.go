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

import "github.com/alancleary/FRAS/bitpack"

// bp holds the storage shared by the bit-packed encodings:
// one packed byte slice per slot plus the element counts.
// The per-slot pack width policy lives in the embedding type.
type bp struct {
	arrays [][]byte
	counts []uint32
}

func (b *bp) init(n int) {
	b.arrays = make([][]byte, n)
	b.counts = make([]uint32, n)
}

func (b *bp) set(index, width int, values []uint32) {
	buf := make([]byte, bitpack.Size(width, len(values)))
	bitpack.Pack(buf, width, values)
	b.arrays[index] = buf
	b.counts[index] = uint32(len(values))
}

func (b *bp) Clear(index int) {
	b.arrays[index] = nil
	b.counts[index] = 0
}

func (b *bp) get(index, width, i int) uint32 {
	return bitpack.Unpack[uint32](b.arrays[index], width, i)
}

func (b *bp) Len(index int) int {
	return int(b.counts[index])
}

func (b *bp) memSize() uint64 {
	size := uint64(len(b.counts)) * 4
	for i := range b.arrays {
		size += uint64(len(b.arrays[i]))
	}
	return size
}

// maxWidth returns the smallest pack width covering
// every value, at least 1.
func maxWidth(values []uint32) int {
	width := 1
	for _, v := range values {
		if w := bitpack.Msb(v); w > width {
			width = w
		}
	}
	return width
}
