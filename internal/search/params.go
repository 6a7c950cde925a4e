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
	"math"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// Pre-computed tables for pruning and reduction margins that are too
// involved to live in the search configuration.

// lmr holds the late move reduction per (depth, moves searched).
var lmr [32][64]int

// LmrReduction returns the depth reduction for a late move at the given
// depth and move index.
func LmrReduction(depth int, movesSearched int) int {
	if depth >= 32 || movesSearched >= 64 {
		return lmr[31][63]
	}
	return lmr[depth][movesSearched]
}

func init() {
	for d := 0; d < 32; d++ {
		for m := 0; m < 64; m++ {
			if d <= 3 || m <= 3 {
				lmr[d][m] = 1
			} else {
				lmr[d][m] = int(math.Round(((float64(d) * 0.7) * (float64(m) * 0.005)) + 1.0))
			}
		}
	}
}

// lmp holds the move count per depth after which quiet moves are pruned
// entirely.
var lmp [16]int

func init() {
	for d := 1; d < 16; d++ {
		lmp[d] = 6 + int(math.Pow(float64(d)+0.5, 1.3))
	}
}

// LmpMovesSearched returns the late move pruning threshold for a depth.
func LmpMovesSearched(depth int) int {
	if depth >= 16 {
		return lmp[15]
	}
	return lmp[depth]
}

// fp holds futility margins per remaining depth.
var fp = [7]types.Value{0, 100, 200, 300, 500, 900, 1200}

// rfp holds reverse futility margins per remaining depth.
var rfp = [4]types.Value{0, 200, 400, 800}

// aspirationSteps holds the half-widths of the aspiration window, first
// try first; the final full-window step is the fallback.
var aspirationSteps = []types.Value{50, 200, types.ValueMax}
