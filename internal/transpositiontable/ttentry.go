//
// chess-engine - a UCI chess engine written in Go
//
// MIT License
//
// Copyright (c) 2025-2026 Tobias Alexander Wulff
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package transpositiontable

import (
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// TtEntry is one 16-byte slot of the table. depth, flag and generation are
// packed into a single vmeta word so the whole entry stays small enough
// that a bucket fits in one cache line alongside its neighbours.
type TtEntry struct {
	key   Key
	move  uint16
	eval  int16
	value int16
	vmeta uint16 // generation:7 flag:2 depth:7
}

const (
	// TtEntrySize is the size in bytes of one TtEntry.
	TtEntrySize = 16

	depthBits = 7
	flagBits  = 2
	genBits   = 7

	depthShift = 0
	flagShift  = depthShift + depthBits
	genShift   = flagShift + flagBits

	depthMask = uint16(1<<depthBits-1) << depthShift
	flagMask  = uint16(1<<flagBits-1) << flagShift
	genMask   = uint16(1<<genBits-1) << genShift

	maxGeneration = uint8(1<<genBits - 1)
)

// packMeta builds the vmeta word for a store.
func packMeta(depth int8, flag ValueType, generation uint8) uint16 {
	return uint16(depth)<<depthShift | uint16(flag)<<flagShift | uint16(generation)<<genShift
}

// Key returns the full 64-bit Zobrist key stored in this slot, used to
// detect a bucket collision against the probing position's own key.
func (e *TtEntry) Key() Key {
	return e.key
}

// Move returns the best/refutation move recorded for this position.
func (e *TtEntry) Move() Move {
	return Move(e.move)
}

// Value returns the search score recorded for this position as stored;
// mate scores count from the storing node, and the caller adjusts them to
// the current ply.
func (e *TtEntry) Value() Value {
	return Value(e.value)
}

// Eval returns the static evaluation recorded alongside the search score.
func (e *TtEntry) Eval() Value {
	return Value(e.eval)
}

// Depth returns the search depth the stored score is valid for.
func (e *TtEntry) Depth() int8 {
	return int8((e.vmeta & depthMask) >> depthShift)
}

// Flag reports whether Value() is exact, or only a bound.
func (e *TtEntry) Flag() ValueType {
	return ValueType((e.vmeta & flagMask) >> flagShift)
}

// Generation returns the search generation this slot was last written in,
// used by the replacement policy to prefer fresh entries over stale ones
// from an earlier search.
func (e *TtEntry) Generation() uint8 {
	return uint8((e.vmeta & genMask) >> genShift)
}

// IsEmpty reports whether this slot has never been written, or was
// cleared.
func (e *TtEntry) IsEmpty() bool {
	return e.key == 0
}
