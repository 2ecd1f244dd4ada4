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
	"fmt"

	"github.com/alancleary/FRAS/jagged"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// postProcess turns the raw rule table produced by a loader
// into the canonical form: it computes the text length and
// grammar depth, reindexes the rules so expansion lengths are
// non-decreasing, and encodes the result into the requested
// jagged array encoding.
//
// raw holds one right-hand side per rule for codes in
// [AlphabetSize, startRule]; terminal slots are nil. The
// right-hand sides do not include a terminator.
func (c *CFG) postProcess(raw [][]uint32, enc jagged.Encoding) error {
	sizes, depths, err := c.expandLengths(raw)
	if err != nil {
		return err
	}
	c.textLength = sizes[c.startRule]
	c.depth = int(depths[c.startRule])

	raw = c.reorder(raw, sizes)

	// encode the reordered rules; ascending order so the
	// width side tables of BpOpt/BpMono finalize on the
	// start rule
	arr := jagged.New(enc, c.startRule+1)
	for r := AlphabetSize; r <= c.startRule; r++ {
		arr.Set(r, raw[r])
	}
	c.rules = arr
	c.fingerprint = fingerprint(raw[AlphabetSize:])
	return nil
}

// expandLengths computes the expansion length and derivation
// depth of every rule reachable from the start rule with an
// explicit work stack; grammars can be deep enough to exhaust
// the goroutine stack otherwise. Rules the start rule never
// reaches keep length and depth 0. It rejects reachable rule
// graphs with cycles or dangling codes.
func (c *CFG) expandLengths(raw [][]uint32) (sizes []uint64, depths []uint32, err error) {
	sizes = make([]uint64, c.startRule+1)
	depths = make([]uint32, c.startRule+1)
	for i := 0; i < AlphabetSize; i++ {
		sizes[i] = 1
		depths[i] = 1
	}

	const (
		unvisited = iota
		active
		done
	)
	state := make([]uint8, c.startRule+1)
	stack := make([]int, 0, 64)
	stack = append(stack, c.startRule)
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		switch state[r] {
		case done:
			stack = stack[:len(stack)-1]
		case active:
			// children resolved; fold them
			var size uint64
			var depth uint32
			for _, code := range raw[r] {
				size += sizes[code]
				if depths[code] > depth {
					depth = depths[code]
				}
			}
			sizes[r] = size
			depths[r] = depth + 1
			state[r] = done
			stack = stack[:len(stack)-1]
		default:
			state[r] = active
			for _, code := range raw[r] {
				if code < AlphabetSize {
					continue
				}
				if int(code) >= c.startRule || raw[code] == nil {
					return nil, nil, fmt.Errorf("rule %d references dangling code %d", r, code)
				}
				switch state[code] {
				case unvisited:
					stack = append(stack, int(code))
				case active:
					return nil, nil, fmt.Errorf("rule graph contains a cycle through code %d", code)
				}
			}
		}
	}
	return sizes, depths, nil
}

// reorder reindexes the non-terminal rules by ascending
// expansion length. The sort is stable: rules with equal
// expansion lengths keep their relative order. Codes inside
// every right-hand side are rewritten to the new numbering;
// terminals and the start rule keep their codes.
func (c *CFG) reorder(raw [][]uint32, sizes []uint64) [][]uint32 {
	hist := make(map[uint64]int)
	for i := AlphabetSize; i < c.startRule; i++ {
		hist[sizes[i]]++
	}
	lengths := maps.Keys(hist)
	slices.Sort(lengths)

	// first new index per expansion length
	next := make(map[uint64]int, len(hist))
	offset := AlphabetSize
	for _, l := range lengths {
		next[l] = offset
		offset += hist[l]
	}
	order := make([]int, c.startRule+1)
	for i := AlphabetSize; i < c.startRule; i++ {
		order[i] = next[sizes[i]]
		next[sizes[i]]++
	}
	order[c.startRule] = c.startRule

	out := make([][]uint32, c.startRule+1)
	for i := AlphabetSize; i <= c.startRule; i++ {
		rhs := raw[i]
		for j, code := range rhs {
			if code >= AlphabetSize {
				rhs[j] = uint32(order[code])
			}
		}
		out[order[i]] = rhs
	}
	return out
}
