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

// Package xoroshiro implements the xoroshiro128+ generator
// used to position benchmark queries. It is fast,
// deterministic for a given seed, and not cryptographic.
package xoroshiro

import (
	"math/bits"

	"github.com/alancleary/FRAS/ints"
)

// Engine is a xoroshiro128+ generator. The zero value is
// invalid; use New or NewRandom.
type Engine struct {
	s0, s1 uint64
}

// New returns an engine whose 128-bit state is expanded from
// seed with splitmix64, the initialization the xoroshiro
// authors recommend.
func New(seed uint64) *Engine {
	e := &Engine{}
	e.s0, seed = splitmix64(seed)
	e.s1, _ = splitmix64(seed)
	// the all-zero state is a fixed point
	if e.s0 == 0 && e.s1 == 0 {
		e.s1 = 1
	}
	return e
}

// NewRandom returns an engine seeded from the operating
// system's entropy source.
func NewRandom() (*Engine, error) {
	var state [2]uint64
	if err := ints.RandomFillSlice(state[:]); err != nil {
		return nil, err
	}
	e := &Engine{s0: state[0], s1: state[1]}
	if e.s0 == 0 && e.s1 == 0 {
		e.s1 = 1
	}
	return e, nil
}

func splitmix64(x uint64) (out, next uint64) {
	x += 0x9e3779b97f4a7c15
	next = x
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31), next
}

// Uint64 returns the next value in the sequence.
func (e *Engine) Uint64() uint64 {
	s0, s1 := e.s0, e.s1
	sum := s0 + s1
	s1 ^= s0
	e.s0 = bits.RotateLeft64(s0, 55) ^ s1 ^ (s1 << 14)
	e.s1 = bits.RotateLeft64(s1, 36)
	return sum
}

// Float64 returns a value uniformly distributed in [0, 1).
func (e *Engine) Float64() float64 {
	return float64(e.Uint64()>>11) / (1 << 53)
}
