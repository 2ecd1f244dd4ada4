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

import "github.com/alancleary/FRAS/sparse"

// bpMonoArray packs each slot at the smallest width covering
// its largest value or the preceding slot's width, whichever
// is larger. Widths are then non-decreasing, so the side
// table shrinks to the distinct widths plus a sparse bit
// vector marking the slots where the width changes. Slots
// must be populated in ascending order ending at the last
// slot.
type bpMonoArray struct {
	bp
	widths   []byte // build-time widths, nil once indexed
	distinct []byte
	changes  *sparse.Vector
}

func newBpMono(n int) *bpMonoArray {
	a := &bpMonoArray{widths: make([]byte, n)}
	a.init(n)
	return a
}

func (a *bpMonoArray) width(index int) int {
	if a.widths != nil {
		return int(a.widths[index])
	}
	return int(a.distinct[a.changes.Rank1(uint64(index)+1)])
}

func (a *bpMonoArray) Set(index int, values []uint32) {
	w := maxWidth(values)
	if index > 0 && int(a.widths[index-1]) > w {
		w = int(a.widths[index-1])
	}
	a.widths[index] = byte(w)
	a.set(index, w, values)
	if index == len(a.arrays)-1 {
		a.indexWidths()
	}
}

// indexWidths replaces the byte-per-slot width table with
// the distinct widths and a rank structure over the change
// positions.
func (a *bpMonoArray) indexWidths() {
	var pos []uint64
	a.distinct = append(a.distinct[:0], a.widths[0])
	for i := 1; i < len(a.widths); i++ {
		if a.widths[i] != a.widths[i-1] {
			pos = append(pos, uint64(i))
			a.distinct = append(a.distinct, a.widths[i])
		}
	}
	a.changes = sparse.New(uint64(len(a.widths)), pos)
	a.widths = nil
}

func (a *bpMonoArray) Get(index, i int) uint32 {
	return a.get(index, a.width(index), i)
}

func (a *bpMonoArray) MemSize() uint64 {
	size := a.memSize() + uint64(len(a.widths)) + uint64(len(a.distinct))
	if a.changes != nil {
		size += a.changes.MemSize()
	}
	return size
}
