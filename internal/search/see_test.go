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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/movegen"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

func TestSeeAttacksTo(t *testing.T) {
	p := position.NewPosition("2brr1k1/1pq1b1p1/p1np1p1p/P1p1p2n/1PNPPP2/2P1BNP1/4Q1BP/R2R2K1 w - -")

	assert.EqualValues(t, 740294656, seeAttacksTo(p, SqE5, White))
	assert.EqualValues(t, 20552, seeAttacksTo(p, SqF1, White))
	assert.EqualValues(t, 3407880, seeAttacksTo(p, SqD4, White))
	assert.EqualValues(t, 4483945857024, seeAttacksTo(p, SqD4, Black))
	assert.EqualValues(t, 582090251837636608, seeAttacksTo(p, SqD6, Black))
	assert.EqualValues(t, 5769111122661605376, seeAttacksTo(p, SqF8, Black))

	p = position.NewPosition("r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3")

	assert.EqualValues(t, 2339760743907840, seeAttacksTo(p, SqE5, Black))
	assert.EqualValues(t, 1280, seeAttacksTo(p, SqB1, Black))
	assert.EqualValues(t, 40960, seeAttacksTo(p, SqG3, White))
}

func TestRevealedAttacks(t *testing.T) {
	p := position.NewPosition("1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - -")
	occ := p.Occupied()
	sq := SqE5

	attackers := seeAttacksTo(p, sq, White) | seeAttacksTo(p, sq, Black)
	assert.EqualValues(t, 2286984186302464, attackers)

	// removing the bishop on f6 reveals the queen behind it
	attackers.PopSquare(SqF6)
	occ.PopSquare(SqF6)
	attackers |= revealedAttacks(p, sq, occ, White) | revealedAttacks(p, sq, occ, Black)
	assert.EqualValues(t, Bitboard(9225623836668989440), attackers)

	// removing the rook on e2 reveals the queen on e1
	attackers.PopSquare(SqE2)
	occ.PopSquare(SqE2)
	attackers |= revealedAttacks(p, sq, occ, White) | revealedAttacks(p, sq, occ, Black)
	assert.EqualValues(t, Bitboard(9225623836668985360), attackers)
}

func TestLeastValuableAttacker(t *testing.T) {
	p := position.NewPosition("r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3")
	attackers := seeAttacksTo(p, SqE5, Black)
	assert.EqualValues(t, 2339760743907840, attackers)

	// pawn capture before knight before bishop before queen
	expected := []Square{SqG6, SqD7, SqB2, SqE6, SqNone}
	for _, want := range expected {
		lva := leastValuableAttacker(p, attackers, Black)
		assert.EqualValues(t, want, lva)
		if lva != SqNone {
			attackers.PopSquare(lva)
		}
	}
}

func TestSeeScores(t *testing.T) {
	var p *position.Position
	mg := movegen.NewGenerator()

	// bishop takes an undefended knight, no recapture possible
	p = position.NewPosition("4k3/8/8/2n5/3B4/8/8/4K3 w - - 0 1")
	m := mg.MoveFromUci(p, "d4c5")
	assert.NotEqual(t, MoveNone, m)
	assert.EqualValues(t, Knight.ValueOf(), see(p, m))

	// bishop takes defended pawn loses material
	p = position.NewPosition("4k3/8/3p4/4p3/3B4/8/8/4K3 w - - 0 1")
	m = mg.MoveFromUci(p, "d4e5")
	assert.NotEqual(t, MoveNone, m)
	assert.True(t, see(p, m) < 0)

	// en passant is always reported as a winning pawn capture
	p = position.NewPosition("4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")
	m = mg.MoveFromUci(p, "d5e6")
	assert.NotEqual(t, MoveNone, m)
	assert.EqualValues(t, 100, see(p, m))
}
