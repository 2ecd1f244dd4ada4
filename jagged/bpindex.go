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

// bpIndexArray derives each slot's pack width from the slot
// number alone: every value stored in slot r must be < r, so
// msb(r-1) bits always suffice and no width table is needed.
type bpIndexArray struct {
	bp
}

func newBpIndex(n int) *bpIndexArray {
	a := &bpIndexArray{}
	a.init(n)
	return a
}

func (a *bpIndexArray) width(index int) int {
	return bitpack.Msb(uint32(index - 1))
}

func (a *bpIndexArray) Set(index int, values []uint32) {
	a.set(index, a.width(index), values)
}

func (a *bpIndexArray) Get(index, i int) uint32 {
	return a.get(index, a.width(index), i)
}

func (a *bpIndexArray) MemSize() uint64 {
	return a.memSize()
}
