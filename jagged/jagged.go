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

// Package jagged provides indexed collections of variable-length
// integer sequences with interchangeable physical encodings.
package jagged

import "fmt"

// Array is an indexed collection of variable-length
// uint32 sequences. Implementations differ only in how
// each slot is stored physically.
//
// Get with an index or position that was never stored is
// a programmer error and may panic.
type Array interface {
	// Set stores values at the given slot, replacing any
	// previous contents. The stored sequence aliases
	// nothing; callers may reuse values.
	Set(index int, values []uint32)
	// Clear releases the slot's storage.
	Clear(index int)
	// Get reads the i-th element of the slot.
	Get(index, i int) uint32
	// Len returns the number of elements in the slot.
	Len(index int) int
	// MemSize returns the live byte footprint.
	MemSize() uint64
}

// Encoding selects one of the physical Array encodings.
type Encoding int

const (
	// Plain stores each slot as a []uint32.
	Plain Encoding = iota
	// BpIndex bit-packs slot r at width msb(r-1); valid
	// only when every value in slot r is less than r.
	BpIndex
	// BpOpt bit-packs each slot at the smallest width
	// covering its largest value, with a packed side
	// table of widths.
	BpOpt
	// BpMono bit-packs like BpOpt but forces widths to be
	// non-decreasing across slots so the side table
	// reduces to a rank over the width-change positions.
	BpMono
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "array"
	case BpIndex:
		return "bpleft"
	case BpOpt:
		return "bpright"
	case BpMono:
		return "bpmono"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding parses the command-line name of an encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "array":
		return Plain, nil
	case "bpleft":
		return BpIndex, nil
	case "bpright":
		return BpOpt, nil
	case "bpmono":
		return BpMono, nil
	}
	return 0, fmt.Errorf("unknown jagged array encoding %q", s)
}

// New returns an empty Array with n slots using the
// given encoding. BpOpt and BpMono require that slots
// are populated in ascending order ending at slot n-1.
func New(e Encoding, n int) Array {
	switch e {
	case Plain:
		return newPlain(n)
	case BpIndex:
		return newBpIndex(n)
	case BpOpt:
		return newBpOpt(n)
	case BpMono:
		return newBpMono(n)
	}
	panic("jagged: bad encoding")
}
