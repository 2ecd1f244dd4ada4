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

// Package access answers random-access queries into the text
// derived by a grammar.
//
// An Index maps a text position to the start-rule symbol
// covering it with a sparse rank/select vector, and maps any
// rule to its expansion length through a second, much sparser
// vector over the canonical rule ordering. A Decoder walks
// the derivation tree from the located entry point and emits
// bytes. The Index is immutable and may be shared; each
// concurrent reader needs its own Decoder.
package access

import (
	"errors"

	"github.com/alancleary/FRAS/cfg"
	"github.com/alancleary/FRAS/sparse"
)

// ErrRange is returned for extraction bounds outside the text.
var ErrRange = errors.New("extract range out of bounds")

// Index locates text positions inside a grammar's start rule.
type Index struct {
	grammar *cfg.CFG
	// 1-bits at the text positions where start-rule
	// symbols begin
	start *sparse.Vector
	// 1-bits at the rules whose expansion length exceeds
	// every lower-numbered rule's
	expansion *sparse.Vector
	// the distinct expansion lengths, ascending; sizes[0]
	// is the terminals' length 1
	sizes []uint64

	dec *Decoder // lazy, for the Extract convenience
}

// NewIndex builds the start-position and expansion-length
// index for a loaded grammar.
func NewIndex(g *cfg.CFG) *Index {
	x := &Index{grammar: g}
	ruleSizes := expandLengths(g)

	// start-rule symbol positions in the text
	pos := make([]uint64, 0, g.StartSize())
	var at uint64
	for i := 0; i < g.StartSize(); i++ {
		pos = append(pos, at)
		at += ruleSizes[g.Get(g.StartRule(), i)]
	}
	x.start = sparse.New(g.TextLength(), pos)

	// rules at which a new expansion length first appears;
	// the canonical ordering makes lengths non-decreasing
	var marks []uint64
	x.sizes = append(x.sizes, 1)
	prev := uint64(1)
	for r := 0; r < g.StartRule(); r++ {
		if ruleSizes[r] > prev {
			prev = ruleSizes[r]
			marks = append(marks, uint64(r))
			x.sizes = append(x.sizes, prev)
		}
	}
	x.expansion = sparse.New(uint64(g.StartRule()), marks)
	return x
}

// expandLengths recomputes the expansion length of every rule
// reachable from the start rule, using an explicit stack so
// deep grammars cannot exhaust the goroutine stack. Terminals
// get length 1; rules the start rule never reaches get 0.
func expandLengths(g *cfg.CFG) []uint64 {
	sizes := make([]uint64, g.StartRule()+1)
	for i := 0; i < cfg.AlphabetSize; i++ {
		sizes[i] = 1
	}
	stack := make([]int, 0, g.Depth())
	stack = append(stack, g.StartRule())
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		ready := true
		var size uint64
		for i := 0; ; i++ {
			c := g.Get(r, i)
			if c == cfg.DummyCode {
				break
			}
			if sizes[c] == 0 {
				stack = append(stack, c)
				ready = false
			} else {
				size += sizes[c]
			}
		}
		if ready {
			sizes[r] = size
			stack = stack[:len(stack)-1]
		}
	}
	return sizes
}

// Grammar returns the CFG the index was built over.
func (x *Index) Grammar() *cfg.CFG { return x.grammar }

// ExpansionSize returns the length of the text the rule
// derives.
func (x *Index) ExpansionSize(rule int) uint64 {
	return x.sizes[x.expansion.Rank1(uint64(rule)+1)]
}

// MemSize returns the live byte footprint of the index,
// excluding the grammar it borrows.
func (x *Index) MemSize() uint64 {
	return x.start.MemSize() + x.expansion.MemSize() + uint64(len(x.sizes))*8
}

// Extract appends T[begin..end] to dst and returns the
// extended slice. It uses an internal decoder and therefore
// must not be called concurrently; concurrent readers should
// each obtain their own Decoder.
func (x *Index) Extract(dst []byte, begin, end uint64) ([]byte, error) {
	if x.dec == nil {
		x.dec = x.Decoder()
	}
	return x.dec.Extract(dst, begin, end)
}

// Decoder returns a new decoder over the index with its
// scratch stacks preallocated to the grammar depth, so
// extraction does not allocate.
func (x *Index) Decoder() *Decoder {
	depth := x.grammar.Depth()
	return &Decoder{
		idx:        x,
		ruleStack:  make([]int, 0, depth+1),
		indexStack: make([]int, 0, depth+1),
	}
}

// Decoder extracts substrings of the derived text. It reuses
// two small stacks across queries and is not safe for
// concurrent use; the Index it references is.
type Decoder struct {
	idx        *Index
	ruleStack  []int
	indexStack []int
}

// Extract appends T[begin..end], inclusive, to dst and
// returns the extended slice. If the bounds are outside the
// text, it returns dst unchanged and ErrRange.
func (d *Decoder) Extract(dst []byte, begin, end uint64) ([]byte, error) {
	g := d.idx.grammar
	if begin > end || end >= g.TextLength() {
		return dst, ErrRange
	}
	length := end - begin + 1
	d.ruleStack = d.ruleStack[:0]
	d.indexStack = d.indexStack[:0]

	// locate the start-rule symbol covering begin
	rank := d.idx.start.Rank1(begin + 1)
	selected := d.idx.start.Select1(rank)
	r := g.StartRule()
	i := int(rank - 1)

	// descend to the terminal at offset begin-selected
	// without emitting
	ignore := begin - selected
	for ignore > 0 {
		c := g.Get(r, i)
		if c < cfg.AlphabetSize {
			i++
			ignore--
			continue
		}
		size := d.idx.ExpansionSize(c)
		if size > ignore {
			d.ruleStack = append(d.ruleStack, r)
			d.indexStack = append(d.indexStack, i+1)
			r = c
			i = 0
		} else {
			ignore -= size
			i++
		}
	}

	// emit
	for j := uint64(0); j < length; {
		c := g.Get(r, i)
		switch {
		case c == cfg.DummyCode:
			r = d.ruleStack[len(d.ruleStack)-1]
			d.ruleStack = d.ruleStack[:len(d.ruleStack)-1]
			i = d.indexStack[len(d.indexStack)-1]
			d.indexStack = d.indexStack[:len(d.indexStack)-1]
		case c < cfg.AlphabetSize:
			dst = append(dst, byte(c))
			i++
			j++
		default:
			d.ruleStack = append(d.ruleStack, r)
			d.indexStack = append(d.indexStack, i+1)
			r = c
			i = 0
		}
	}
	return dst, nil
}
