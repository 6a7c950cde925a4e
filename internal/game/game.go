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

// Package game layers a user-visible move stack and repetition counter on
// top of a Position. Search keeps its own transient repetition counter
// seeded from a Game's counter at the start of a search; Game's own
// counter only changes through MakeMove/UnmakeMove at the game level.
package game

import (
	"github.com/TobiasAlexanderWulff/chess-engine/internal/moveslice"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/movegen"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// Game wraps a Position with the state a UCI session or a human-facing
// client needs beyond what Position tracks for search: the moves played so
// far and a repetition multiset seeded with the starting position.
type Game struct {
	pos        *position.Position
	moveStack  moveslice.MoveSlice
	repetition map[position.Key]int
	mg         *movegen.Generator
}

// NewGame returns a new Game at the standard starting position.
func NewGame() *Game {
	return NewGameFen()
}

// NewGameFen returns a new Game at the position described by fen, or the
// starting position if fen is empty.
func NewGameFen(fen ...string) *Game {
	p := position.NewPosition(fen...)
	g := &Game{
		pos:        p,
		moveStack:  *moveslice.NewMoveSlice(MaxMoves),
		repetition: make(map[position.Key]int, MaxMoves),
		mg:         movegen.NewGenerator(),
	}
	g.repetition[p.Hash()]++
	return g
}

// Position returns the Game's underlying Position. Callers must not
// retain it past the next MakeMove/UnmakeMove.
func (g *Game) Position() *position.Position {
	return g.pos
}

// MakeMove applies move, updating the move stack and the repetition table.
func (g *Game) MakeMove(m Move) {
	g.pos.MakeMove(m)
	g.moveStack.PushBack(m)
	g.repetition[g.pos.Hash()]++
}

// UnmakeMove reverts the last move applied via MakeMove.
func (g *Game) UnmakeMove() {
	if g.moveStack.Len() == 0 {
		return
	}
	key := g.pos.Hash()
	g.repetition[key]--
	if g.repetition[key] <= 0 {
		delete(g.repetition, key)
	}
	g.pos.UnmakeMove()
	g.moveStack.PopBack()
}

// MoveStack returns the sequence of moves applied to this Game since its
// creation, in play order.
func (g *Game) MoveStack() *moveslice.MoveSlice {
	return &g.moveStack
}

// RepetitionCount returns how many times the current position's hash has
// occurred in this Game's history, including the current occurrence.
func (g *Game) RepetitionCount() int {
	return g.repetition[g.pos.Hash()]
}

// RepetitionCountOf returns the occurrence count for an arbitrary key,
// used to seed a search's own transient repetition counter.
func (g *Game) RepetitionCountOf(key position.Key) int {
	return g.repetition[key]
}

// IsDraw reports whether the current position is a draw by the 50-move
// rule or threefold repetition.
func (g *Game) IsDraw() bool {
	return g.pos.HalfMoveClock() >= 100 || g.RepetitionCount() >= 3
}

// IsCheckMate reports whether the side to move is in check with no legal
// move available.
func (g *Game) IsCheckMate() bool {
	return g.pos.HasCheck() && !g.mg.HasLegalMove(g.pos)
}

// IsStaleMate reports whether the side to move is not in check but has no
// legal move available.
func (g *Game) IsStaleMate() bool {
	return !g.pos.HasCheck() && !g.mg.HasLegalMove(g.pos)
}

// IsGameOver reports whether the game has ended by checkmate, stalemate
// or a draw condition.
func (g *Game) IsGameOver() bool {
	return g.IsDraw() || g.IsCheckMate() || g.IsStaleMate()
}
