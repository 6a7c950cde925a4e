/*
 * chess-engine - a UCI chess engine written in Go
 *
 * MIT License
 *
 * Copyright (c) 2025-2026 Tobias Alexander Wulff
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package search

import (
	"time"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/moveslice"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/util"
)

// IterationInfo holds the per-iteration slice of the search statistics:
// how many nodes one iterative-deepening step cost and how its
// aspiration windows behaved.
type IterationInfo struct {
	Depth    int
	TimeMs   int64
	Nodes    uint64
	QNodes   uint64
	FailHigh uint64
	FailLow  uint64
}

// Result is the outcome of one search: the move to play, its value, a
// move to ponder on, how deep and long the search ran, and the node and
// transposition table counters accumulated on the way. BestMove is
// MoveNone when the searched position was already decided (mate,
// stalemate, draw rule).
type Result struct {
	BestMove    Move
	BestValue   Value
	PonderMove  Move
	SearchTime  time.Duration
	SearchDepth int
	ExtraDepth  int
	BookMove    bool
	Pv          moveslice.MoveSlice

	// node counters
	Nodes  uint64
	QNodes uint64

	// transposition table counters; the per-flag hits sum to the total
	// hit count and TTSize is the occupied entry count at search end
	TTProbes       uint64
	TTHitsExact    uint64
	TTHitsLower    uint64
	TTHitsUpper    uint64
	TTStores       uint64
	TTReplacements uint64
	TTSize         uint64

	// aspiration window behavior
	FailHigh   uint64
	FailLow    uint64
	ReSearches uint64

	// one entry per completed iterative-deepening iteration
	Iters []IterationInfo

	HashfullPermille int
}

// MateIn converts a mate-distance value into full moves: positive when
// the engine mates, negative when it is being mated. ok is false for
// non-mate values.
func (r *Result) MateIn() (moves int, ok bool) {
	if !r.BestValue.IsCheckMateValue() {
		return 0, false
	}
	plies := int(ValueCheckMate) - util.Abs(int(r.BestValue))
	moves = (plies + 1) / 2
	if r.BestValue < 0 {
		moves = -moves
	}
	return moves, true
}

func (r *Result) String() string {
	return out.Sprintf("best move = %s (%s), ponder move = %s, search time = %s, depth = %d(%d), book move = %v, pv = %s",
		r.BestMove.StringUci(), r.BestValue.String(), r.PonderMove.StringUci(),
		r.SearchTime, r.SearchDepth, r.ExtraDepth, r.BookMove, r.Pv.StringUci())
}
