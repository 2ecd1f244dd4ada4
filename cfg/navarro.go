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
	"fmt"

	"github.com/alancleary/FRAS/compr"
	"github.com/alancleary/FRAS/jagged"
)

// FromNavarroFiles loads a grammar produced by Navarro's
// RePair implementation. The .R file holds the alphabet size,
// a map from compressed terminals to byte values, and the
// rule pairs; the .C file holds the start rule. Integers are
// 32-bit in the compressor's native byte order.
func FromNavarroFiles(cpath, rpath string, enc jagged.Encoding) (*CFG, error) {
	rbuf, err := compr.ReadFile(rpath)
	if err != nil {
		return nil, fmt.Errorf("navarro: %w", err)
	}
	cbuf, err := compr.ReadFile(cpath)
	if err != nil {
		return nil, fmt.Errorf("navarro: %w", err)
	}

	if len(rbuf) < 4 {
		return nil, fmt.Errorf("navarro %s: truncated header", rpath)
	}
	// the compressor writes the field as a signed int; a
	// negative or oversized value means a corrupt file
	alpha := int(int32(binary.LittleEndian.Uint32(rbuf)))
	if alpha <= 0 || alpha > AlphabetSize {
		return nil, fmt.Errorf("navarro %s: bad alphabet size %d", rpath, alpha)
	}
	if len(rbuf) < 4+alpha || (len(rbuf)-4-alpha)%8 != 0 {
		return nil, fmt.Errorf("navarro %s: bad file size %d for alphabet %d", rpath, len(rbuf), alpha)
	}
	charmap := rbuf[4 : 4+alpha]
	pairs := rbuf[4+alpha:]

	if len(cbuf)%4 != 0 || len(cbuf) == 0 {
		return nil, fmt.Errorf("navarro %s: bad file size %d", cpath, len(cbuf))
	}

	c := &CFG{
		numRules:     len(pairs) / 8,
		startSize:    len(cbuf) / 4,
		sourceDigest: digest(rbuf, cbuf),
	}
	c.startRule = c.numRules + AlphabetSize
	c.rulesSize = c.numRules * 2
	raw := make([][]uint32, c.startRule+1)

	// remap a compressed code: codes below the alphabet size
	// are terminals via the map; the rest are rules rebased
	// from the compressed alphabet to ours
	remap := func(v uint32) (uint32, error) {
		if int(v) < alpha {
			return uint32(charmap[v]), nil
		}
		r := int(v) - alpha + AlphabetSize
		if r >= c.startRule {
			return 0, fmt.Errorf("code %d out of range", v)
		}
		return uint32(r), nil
	}

	for i := AlphabetSize; i < c.startRule; i++ {
		left, err := remap(binary.LittleEndian.Uint32(pairs))
		if err != nil {
			return nil, fmt.Errorf("navarro %s: rule %d: %w", rpath, i, err)
		}
		right, err := remap(binary.LittleEndian.Uint32(pairs[4:]))
		if err != nil {
			return nil, fmt.Errorf("navarro %s: rule %d: %w", rpath, i, err)
		}
		raw[i] = []uint32{left, right}
		pairs = pairs[8:]
	}

	start := make([]uint32, c.startSize)
	for i := range start {
		v, err := remap(binary.LittleEndian.Uint32(cbuf[i*4:]))
		if err != nil {
			return nil, fmt.Errorf("navarro %s: symbol %d: %w", cpath, i, err)
		}
		start[i] = v
	}
	raw[c.startRule] = start

	if err := c.postProcess(raw, enc); err != nil {
		return nil, fmt.Errorf("navarro %s: %w", rpath, err)
	}
	return c, nil
}
