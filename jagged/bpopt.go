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

// bpOptArray packs each slot at the smallest width covering
// its largest value. The widths themselves live in a side
// table; once the final slot is set, the table is bit-packed
// at the width of the largest entry. Slots must therefore be
// populated in ascending order ending at the last slot.
type bpOptArray struct {
	bp
	widths []byte // build-time widths, nil once packed
	packed []byte
	// width of the packed side table entries
	tableWidth int
}

func newBpOpt(n int) *bpOptArray {
	a := &bpOptArray{widths: make([]byte, n)}
	a.init(n)
	return a
}

func (a *bpOptArray) width(index int) int {
	if a.widths != nil {
		return int(a.widths[index])
	}
	return int(bitpack.Unpack[uint8](a.packed, a.tableWidth, index))
}

func (a *bpOptArray) Set(index int, values []uint32) {
	w := maxWidth(values)
	a.widths[index] = byte(w)
	a.set(index, w, values)
	if index == len(a.arrays)-1 {
		a.packTable()
	}
}

// packTable replaces the byte-per-slot width table with a
// bit-packed one.
func (a *bpOptArray) packTable() {
	a.tableWidth = 1
	for _, w := range a.widths {
		if n := bitpack.Msb(w); n > a.tableWidth {
			a.tableWidth = n
		}
	}
	a.packed = make([]byte, bitpack.Size(a.tableWidth, len(a.widths)))
	bitpack.Pack(a.packed, a.tableWidth, a.widths)
	a.widths = nil
}

func (a *bpOptArray) Get(index, i int) uint32 {
	return a.get(index, a.width(index), i)
}

func (a *bpOptArray) MemSize() uint64 {
	return a.memSize() + uint64(len(a.widths)) + uint64(len(a.packed))
}
