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

// Package book provides opening book lookups. Readers here are kept out
// of the engine's critical path deliberately: internal/search never
// imports this package, only internal/uci and cmd/engine wire a Book
// in as an optional move source consulted before a search is started.
package book

import (
	"github.com/TobiasAlexanderWulff/chess-engine/internal/game"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// Book looks up a recommended move for the current position of g. The
// second return value is false when the position is not in the book or
// no indexed move survives legality filtering.
type Book interface {
	FindMove(g *game.Game) (Move, bool)
}

// pickHighestWeight deterministically selects the candidate with the
// highest weight, breaking ties on the lexically smallest UCI string so
// book selection is reproducible across runs.
func pickHighestWeight(moves []Move, weights []int) (Move, bool) {
	if len(moves) == 0 {
		return MoveNone, false
	}
	best := 0
	for i := 1; i < len(moves); i++ {
		switch {
		case weights[i] > weights[best]:
			best = i
		case weights[i] == weights[best] && moves[i].StringUci() < moves[best].StringUci():
			best = i
		}
	}
	return moves[best], true
}
