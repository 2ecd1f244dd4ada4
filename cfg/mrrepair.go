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
	"bufio"
	"bytes"
	"fmt"
	"strconv"

	"github.com/alancleary/FRAS/compr"
	"github.com/alancleary/FRAS/jagged"
)

// mrRepairDummy terminates each right-hand side in an
// MR-RePair .out file. The compressor writes UINT_MAX;
// accept the signed spelling too.
func mrRepairDummy(v int64) bool {
	return v == -1 || v == 0xffffffff
}

// FromMrRepairFile loads a grammar produced by MR-RePair.
// The file is ASCII, one code per line: the text length, the
// number of rules, and the start rule length, then each
// rule's right-hand side followed by a dummy line, then the
// start rule's codes.
func FromMrRepairFile(path string, enc jagged.Encoding) (*CFG, error) {
	buf, err := compr.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mrrepair: %w", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(buf))
	sc.Buffer(make([]byte, 64), 1<<20)
	line := 0
	next := func() (int64, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("mrrepair %s: %w", path, err)
			}
			return 0, fmt.Errorf("mrrepair %s: premature end of file at line %d", path, line+1)
		}
		line++
		v, err := strconv.ParseInt(string(bytes.TrimSpace(sc.Bytes())), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("mrrepair %s: line %d: %w", path, line, err)
		}
		return v, nil
	}

	textLength, err := next()
	if err != nil {
		return nil, err
	}
	numRules, err := next()
	if err != nil {
		return nil, err
	}
	startSize, err := next()
	if err != nil {
		return nil, err
	}
	if textLength < 1 || numRules < 0 || startSize < 1 {
		return nil, fmt.Errorf("mrrepair %s: bad header %d/%d/%d", path, textLength, numRules, startSize)
	}

	c := &CFG{
		numRules:     int(numRules),
		startRule:    int(numRules) + AlphabetSize,
		startSize:    int(startSize),
		sourceDigest: digest(buf),
	}
	raw := make([][]uint32, c.startRule+1)

	// rules appear in the order the compressor added them
	for i := AlphabetSize; i < c.startRule; i++ {
		var rhs []uint32
		for {
			v, err := next()
			if err != nil {
				return nil, err
			}
			if mrRepairDummy(v) {
				break
			}
			if v < 0 || int(v) >= c.startRule {
				return nil, fmt.Errorf("mrrepair %s: line %d: code %d out of range", path, line, v)
			}
			rhs = append(rhs, uint32(v))
		}
		if len(rhs) < 2 {
			return nil, fmt.Errorf("mrrepair %s: rule %d has %d symbols", path, i, len(rhs))
		}
		c.rulesSize += len(rhs)
		raw[i] = rhs
	}

	start := make([]uint32, c.startSize)
	for i := range start {
		v, err := next()
		if err != nil {
			return nil, err
		}
		if v < 0 || int(v) >= c.startRule {
			return nil, fmt.Errorf("mrrepair %s: line %d: code %d out of range", path, line, v)
		}
		start[i] = uint32(v)
	}
	raw[c.startRule] = start

	if err := c.postProcess(raw, enc); err != nil {
		return nil, fmt.Errorf("mrrepair %s: %w", path, err)
	}
	// the declared text length is redundant; verify it
	if c.textLength != uint64(textLength) {
		return nil, fmt.Errorf("mrrepair %s: declared text length %d, derived %d", path, textLength, c.textLength)
	}
	return c, nil
}
