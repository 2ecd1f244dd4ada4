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

package cfg

import (
	"encoding/binary"

	"github.com/dchest/siphash"
	"golang.org/x/crypto/blake2b"
)

// fixed fingerprint key; the fingerprint is structural, not
// a MAC, so the key only has to be stable
const (
	fingerKey0 = 0x46524153c0ffee00 // "FRAS"
	fingerKey1 = 0x6772616d6d617273 // "grammars"
)

// fingerprint hashes the canonical rule table. Two CFGs with
// the same rules in the same order have the same fingerprint
// regardless of the physical rule encoding.
func fingerprint(rules [][]uint32) uint64 {
	h := siphash.New(binary.LittleEndian.AppendUint64(
		binary.LittleEndian.AppendUint64(nil, fingerKey0), fingerKey1))
	var word [4]byte
	for _, rhs := range rules {
		for _, code := range rhs {
			binary.LittleEndian.PutUint32(word[:], code)
			h.Write(word[:])
		}
		// rule separator; no code is ever 0xffffffff
		h.Write([]byte{0xff, 0xff, 0xff, 0xff})
	}
	return h.Sum64()
}

// Fingerprint returns a 64-bit structural hash of the
// canonical rule table. It is independent of the source file
// format and of the jagged array encoding.
func (c *CFG) Fingerprint() uint64 { return c.fingerprint }

// digest hashes the raw bytes of the grammar source files in
// the order given.
func digest(files ...[]byte) [32]byte {
	h, _ := blake2b.New256(nil)
	for _, buf := range files {
		h.Write(buf)
	}
	var sum [32]byte
	h.Sum(sum[:0])
	return sum
}
