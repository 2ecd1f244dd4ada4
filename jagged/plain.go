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

import "golang.org/x/exp/slices"

// plainArray is the baseline encoding: one []uint32 per slot.
type plainArray struct {
	arrays [][]uint32
}

func newPlain(n int) *plainArray {
	return &plainArray{arrays: make([][]uint32, n)}
}

func (p *plainArray) Set(index int, values []uint32) {
	p.arrays[index] = slices.Clone(values)
}

func (p *plainArray) Clear(index int) {
	p.arrays[index] = nil
}

func (p *plainArray) Get(index, i int) uint32 {
	return p.arrays[index][i]
}

func (p *plainArray) Len(index int) int {
	return len(p.arrays[index])
}

func (p *plainArray) MemSize() uint64 {
	var size uint64
	for i := range p.arrays {
		size += uint64(len(p.arrays[i])) * 4
	}
	return size
}
