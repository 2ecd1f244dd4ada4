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

// FromBigRepairFiles loads a grammar produced by Big-RePair.
// The layout matches the Navarro format except that the
// alphabet is fixed at 256 with no terminal map, so rule
// codes appear pre-offset and are used verbatim.
func FromBigRepairFiles(cpath, rpath string, enc jagged.Encoding) (*CFG, error) {
	rbuf, err := compr.ReadFile(rpath)
	if err != nil {
		return nil, fmt.Errorf("bigrepair: %w", err)
	}
	cbuf, err := compr.ReadFile(cpath)
	if err != nil {
		return nil, fmt.Errorf("bigrepair: %w", err)
	}

	if len(rbuf) < 4 {
		return nil, fmt.Errorf("bigrepair %s: truncated header", rpath)
	}
	if alpha := int(int32(binary.LittleEndian.Uint32(rbuf))); alpha != AlphabetSize {
		return nil, fmt.Errorf("bigrepair %s: bad alphabet size %d", rpath, alpha)
	}
	pairs := rbuf[4:]
	if len(pairs)%8 != 0 {
		return nil, fmt.Errorf("bigrepair %s: bad file size %d", rpath, len(rbuf))
	}
	if len(cbuf)%4 != 0 || len(cbuf) == 0 {
		return nil, fmt.Errorf("bigrepair %s: bad file size %d", cpath, len(cbuf))
	}

	c := &CFG{
		numRules:     len(pairs) / 8,
		startSize:    len(cbuf) / 4,
		sourceDigest: digest(rbuf, cbuf),
	}
	c.startRule = c.numRules + AlphabetSize
	c.rulesSize = c.numRules * 2
	raw := make([][]uint32, c.startRule+1)

	check := func(v uint32) (uint32, error) {
		if int(v) >= c.startRule {
			return 0, fmt.Errorf("code %d out of range", v)
		}
		return v, nil
	}

	for i := AlphabetSize; i < c.startRule; i++ {
		left, err := check(binary.LittleEndian.Uint32(pairs))
		if err != nil {
			return nil, fmt.Errorf("bigrepair %s: rule %d: %w", rpath, i, err)
		}
		right, err := check(binary.LittleEndian.Uint32(pairs[4:]))
		if err != nil {
			return nil, fmt.Errorf("bigrepair %s: rule %d: %w", rpath, i, err)
		}
		raw[i] = []uint32{left, right}
		pairs = pairs[8:]
	}

	start := make([]uint32, c.startSize)
	for i := range start {
		v, err := check(binary.LittleEndian.Uint32(cbuf[i*4:]))
		if err != nil {
			return nil, fmt.Errorf("bigrepair %s: symbol %d: %w", cpath, i, err)
		}
		start[i] = v
	}
	raw[c.startRule] = start

	if err := c.postProcess(raw, enc); err != nil {
		return nil, fmt.Errorf("bigrepair %s: %w", rpath, err)
	}
	return c, nil
}
