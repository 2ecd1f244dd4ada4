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

// Package cfg holds the canonical in-memory representation of a
// grammar produced by a RePair-family compressor.
//
// A grammar derives a single text. Codes below AlphabetSize are
// terminal bytes; codes in [AlphabetSize, StartRule()) name
// rules, and StartRule() names the rule whose expansion is the
// whole text. After loading, rules are reindexed so that their
// expansion lengths are non-decreasing, which the bit-packed
// storage encodings and the random-access index both rely on.
package cfg

import (
	"github.com/alancleary/FRAS/jagged"
)

// AlphabetSize is the number of terminal codes; terminals
// are single bytes.
const AlphabetSize = 256

// DummyCode is returned by Get one past the end of a rule's
// right-hand side. It is out of band: no stored code ever
// equals it.
const DummyCode = -1

// CFG is a context-free grammar in the canonical
// shortest-expansion-first order. It is immutable once
// loaded and safe for concurrent readers.
type CFG struct {
	rules      jagged.Array
	textLength uint64
	numRules   int
	rulesSize  int
	startRule  int
	startSize  int
	depth      int

	fingerprint  uint64
	sourceDigest [32]byte
}

// Get returns the i-th code of the rule's right-hand side,
// or DummyCode one past its end.
func (c *CFG) Get(rule, i int) int {
	if i >= c.rules.Len(rule) {
		return DummyCode
	}
	return int(c.rules.Get(rule, i))
}

// TextLength returns the length of the text the grammar derives.
func (c *CFG) TextLength() uint64 { return c.textLength }

// NumRules returns the number of non-terminal rules, not
// counting the start rule.
func (c *CFG) NumRules() int { return c.numRules }

// RulesSize returns the total length of all right-hand
// sides, not counting the start rule.
func (c *CFG) RulesSize() int { return c.rulesSize }

// StartRule returns the code of the start rule.
func (c *CFG) StartRule() int { return c.startRule }

// StartSize returns the length of the start rule's
// right-hand side.
func (c *CFG) StartSize() int { return c.startSize }

// TotalSize returns the combined length of every right-hand
// side, the start rule included.
func (c *CFG) TotalSize() int { return c.startSize + c.rulesSize }

// Depth returns the height of the derivation tree, counting
// terminals as depth 1.
func (c *CFG) Depth() int { return c.depth }

// MemSize returns the live byte footprint of the rule storage.
func (c *CFG) MemSize() uint64 { return c.rules.MemSize() }

// SourceDigest returns the BLAKE2b-256 digest of the raw
// grammar file bytes the CFG was loaded from.
func (c *CFG) SourceDigest() [32]byte { return c.sourceDigest }
