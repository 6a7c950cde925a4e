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

// Package moveslice holds MoveSlice, the move container search and move
// generation pass around instead of a plain []Move. Its only job beyond
// a plain slice is the ordering the search relies on for pruning: moves
// carry their heuristic score (TT move, MVV-LVA, killer, history) packed
// into their high bits, and Sort() orders a list by that score. Reorder()
// can instead bring the highest-scoring move to the front of the
// unsearched tail one slot at a time.
package moveslice

import (
	"fmt"
	"strings"
	"sync"

	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// scoreMask isolates the packed ordering score the Move encoding
// carries in its top 16 bits, leaving the from/to/promotion/type bits
// below it untouched for comparison purposes.
const scoreMask = Move(0xFFFF0000)

// MoveSlice is a []Move with search-oriented helpers layered on top; it
// is always used through a pointer so PopFront/Clear etc. can reslice
// the underlying array in place.
type MoveSlice []Move

// NewMoveSlice allocates an empty MoveSlice with room for cap moves
// before it must grow.
func NewMoveSlice(cap int) *MoveSlice {
	ms := MoveSlice(make([]Move, 0, cap))
	return &ms
}

func (ms *MoveSlice) Len() int { return len(*ms) }
func (ms *MoveSlice) Cap() int { return cap(*ms) }

// PushBack appends m after the last move.
func (ms *MoveSlice) PushBack(m Move) {
	*ms = append(*ms, m)
}

// PopBack removes and returns the last move; panics if empty.
func (ms *MoveSlice) PopBack() Move {
	ms.mustNotBeEmpty("PopBack")
	last := (*ms)[len(*ms)-1]
	*ms = (*ms)[:len(*ms)-1]
	return last
}

// PushFront inserts m before the first move, shifting every other
// element up by one within the existing backing array.
func (ms *MoveSlice) PushFront(m Move) {
	*ms = append(*ms, MoveNone)
	copy((*ms)[1:], *ms)
	(*ms)[0] = m
}

// PopFront removes and returns the first move; panics if empty. Note
// this reslices from the front, so the backing array's capacity is
// consumed rather than reclaimed - repeated PopFront on a long-lived
// slice will eventually force a reallocation on the next PushBack.
func (ms *MoveSlice) PopFront() Move {
	ms.mustNotBeEmpty("PopFront")
	first := (*ms)[0]
	*ms = (*ms)[1:]
	return first
}

// Front returns, without removing, the move at index 0.
func (ms *MoveSlice) Front() Move {
	ms.mustNotBeEmpty("Front")
	return (*ms)[0]
}

// Back returns, without removing, the last move.
func (ms *MoveSlice) Back() Move {
	ms.mustNotBeEmpty("Back")
	return (*ms)[len(*ms)-1]
}

// At returns the move at index i.
func (ms *MoveSlice) At(i int) Move {
	ms.mustBeInBounds(i)
	return (*ms)[i]
}

// Set overwrites the move at index i.
func (ms *MoveSlice) Set(i int, move Move) {
	ms.mustBeInBounds(i)
	(*ms)[i] = move
}

func (ms *MoveSlice) mustNotBeEmpty(op string) {
	if len(*ms) == 0 {
		panic(fmt.Sprintf("moveslice: %s on empty MoveSlice", op))
	}
}

func (ms *MoveSlice) mustBeInBounds(i int) {
	if len(*ms) == 0 || i < 0 || i >= len(*ms) {
		panic(fmt.Sprintf("moveslice: index %d out of bounds (len %d)", i, len(*ms)))
	}
}

// Filter keeps only the moves for which keep(index) is true, compacting
// the slice in place over its existing backing array.
func (ms *MoveSlice) Filter(keep func(index int) bool) {
	kept := (*ms)[:0]
	for i, m := range *ms {
		if keep(i) {
			kept = append(kept, m)
		}
	}
	*ms = kept
}

// FilterCopy appends every move for which keep(index) is true onto dest,
// leaving the receiver untouched.
func (ms *MoveSlice) FilterCopy(dest *MoveSlice, keep func(index int) bool) {
	for i, m := range *ms {
		if keep(i) {
			*dest = append(*dest, m)
		}
	}
}

// Clone returns a deep copy with the same length and capacity.
func (ms *MoveSlice) Clone() *MoveSlice {
	dup := make(MoveSlice, ms.Len(), ms.Cap())
	copy(dup, *ms)
	return &dup
}

// Equals reports whether other holds the same moves in the same order.
func (ms *MoveSlice) Equals(other *MoveSlice) bool {
	if ms.Len() != other.Len() {
		return false
	}
	for i, m := range *ms {
		if m != (*other)[i] {
			return false
		}
	}
	return true
}

// ForEach calls f once per index, in order.
func (ms *MoveSlice) ForEach(f func(index int)) {
	for i := range *ms {
		f(i)
	}
}

// ForEachParallel fans f out over every index concurrently and blocks
// until all goroutines finish. f is responsible for its own
// synchronization if it touches shared state.
func (ms *MoveSlice) ForEachParallel(f func(index int)) {
	var wg sync.WaitGroup
	wg.Add(len(*ms))
	for i := range *ms {
		go func(i int) {
			defer wg.Done()
			f(i)
		}(i)
	}
	wg.Wait()
}

// Clear empties the slice but keeps its backing array, so a MoveSlice
// reused across nodes doesn't force the allocator to work on every call.
func (ms *MoveSlice) Clear() {
	*ms = (*ms)[:0]
}

// Sort performs a full stable sort from highest packed score to lowest.
// It is an insertion sort: the search reuses the same small, mostly
// pre-ordered buffers (TT move and captures already biased to the
// front) often enough that insertion sort's near-sorted-input case beats
// a general-purpose sort in practice.
func (ms *MoveSlice) Sort() {
	for i := 1; i < len(*ms); i++ {
		moving := (*ms)[i]
		j := i
		for j > 0 && (moving&scoreMask) > ((*ms)[j-1]&scoreMask) {
			(*ms)[j] = (*ms)[j-1]
			j--
		}
		(*ms)[j] = moving
	}
}

// Reorder performs one pass of selection sort restricted to [from:),
// swapping the highest-scoring remaining move into position from, so a
// list can be ordered one slot at a time instead of sorted up front.
// The move generator and the search in this module order with Sort and
// do not call Reorder.
func (ms *MoveSlice) Reorder(from int) {
	best := from
	for i := from + 1; i < len(*ms); i++ {
		if (*ms)[i]&scoreMask > (*ms)[best]&scoreMask {
			best = i
		}
	}
	if best != from {
		(*ms)[from], (*ms)[best] = (*ms)[best], (*ms)[from]
	}
}

// String renders every move via Move.String, for debug logging.
func (ms *MoveSlice) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MoveList: [%d] { ", len(*ms))
	for i, m := range *ms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}
	b.WriteString(" }")
	return b.String()
}

// StringUci renders the moves as a space-separated UCI move list.
func (ms *MoveSlice) StringUci() string {
	var b strings.Builder
	for i, m := range *ms {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(m.StringUci())
	}
	return b.String()
}
