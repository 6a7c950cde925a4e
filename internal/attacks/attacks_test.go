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

package attacks

import (
	"os"
	"path"
	"runtime"
	"testing"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

var logTest *logging2.Logger

// tests run from the project root so relative config paths resolve
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	logTest = logging.GetTestLog()
	os.Exit(m.Run())
}

func TestComputeCaches(t *testing.T) {
	p := position.NewPosition("r1b1k2r/pppp1ppp/2n2n2/1Bb1p2q/4P3/2NP1N2/1PP2PPP/R1BQK2R w KQkq -")
	a := NewAttacks()
	a.Compute(p)
	assert.Equal(t, p.Hash(), a.Zobrist)
	// white rook h1 sees f1 and g1
	assert.EqualValues(t, SqF1.Bb()|SqG1.Bb(), a.From[White][SqH1]&^p.OccupiedBy(White))
	// black king e8 has d8, e7, f8 (occupied or not)
	assert.EqualValues(t, SqD8.Bb()|SqE7.Bb()|SqF8.Bb(), a.From[Black][SqE8]&^p.OccupiedBy(Black))
	// e5 is defended by the knight on c6 and the queen on h5
	assert.EqualValues(t, SqC6.Bb()|SqH5.Bb(), a.To[Black][SqE5]&p.OccupiedBy(Black))
}

// buildAttacks computes a piece's attack set the slow way, walking every
// pseudo target and testing the intermediate squares against occupancy.
func buildAttacks(p *position.Position, pt PieceType, sq Square) Bitboard {
	occupied := p.Occupied()
	if pt < Bishop { // king, knight
		return GetPseudoAttacks(pt, sq)
	}
	attacks := BbZero
	for tmp := GetPseudoAttacks(pt, sq); tmp != BbZero; {
		to := tmp.PopLsb()
		if Intermediate(sq, to)&occupied == 0 {
			attacks.PushSquare(to)
		}
	}
	return attacks
}

func TestComputeAgainstRayWalk(t *testing.T) {
	p := position.NewPosition("r1b1k2r/pppp1ppp/2n2n2/1Bb1p2q/4P3/2NP1N2/1PP2PPP/R1BQK2R w KQkq -")
	a := NewAttacks()
	a.Compute(p)
	for sq := SqA1; sq <= SqH8; sq++ {
		pc := p.PieceOn(sq)
		if pc == PieceNone || pc.TypeOf() == Pawn {
			continue
		}
		assert.EqualValues(t, buildAttacks(p, pc.TypeOf(), sq), a.From[pc.ColorOf()][sq],
			"attack mismatch for %s on %s", pc.String(), sq.String())
	}
}

func TestAttacksTo(t *testing.T) {
	p := position.NewPosition("2brr1k1/1pq1b1p1/p1np1p1p/P1p1p2n/1PNPPP2/2P1BNP1/4Q1BP/R2R2K1 w - -")

	cases := []struct {
		sq    Square
		color Color
		want  Bitboard
	}{
		{SqE5, White, 740294656},
		{SqF1, White, 20552},
		{SqD4, White, 3407880},
		{SqD4, Black, 4483945857024},
		{SqD6, Black, 582090251837636608},
		{SqF8, Black, 5769111122661605376},
	}
	for _, tc := range cases {
		got := AttacksTo(p, tc.sq, tc.color)
		logTest.Debug("\n", got.BoardString())
		assert.EqualValues(t, tc.want, got, "attackers of %s", tc.sq.String())
	}

	p = position.NewPosition("r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3")
	assert.EqualValues(t, 2339760743907840, AttacksTo(p, SqE5, Black))
	assert.EqualValues(t, 1280, AttacksTo(p, SqB1, Black))
	assert.EqualValues(t, 40960, AttacksTo(p, SqG3, White))
	// only the queens on c4 and c6: the en passant square is e3, not e4,
	// so the f4 pawn is not counted
	assert.EqualValues(t, 4398113619968, AttacksTo(p, SqE4, Black))
}

func TestRevealedAttacks(t *testing.T) {
	p := position.NewPosition("1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - -")
	occ := p.Occupied()
	sq := SqE5

	attackers := AttacksTo(p, sq, White) | AttacksTo(p, sq, Black)
	assert.EqualValues(t, 2286984186302464, attackers)

	// removing the bishop f6 reveals the queen h8
	attackers.PopSquare(SqF6)
	occ.PopSquare(SqF6)
	attackers |= RevealedAttacks(p, sq, occ, White) | RevealedAttacks(p, sq, occ, Black)
	assert.EqualValues(t, Bitboard(9225623836668989440), attackers)

	// removing the rook e2 reveals the queen e1
	attackers.PopSquare(SqE2)
	occ.PopSquare(SqE2)
	attackers |= RevealedAttacks(p, sq, occ, White) | RevealedAttacks(p, sq, occ, Black)
	assert.EqualValues(t, Bitboard(9225623836668985360), attackers)
}

func BenchmarkCompute(b *testing.B) {
	p := position.NewPosition("6k1/p1qb1p1p/1p3np1/2b2p2/2B5/2P3N1/PP2QPPP/4N1K1 b - -")
	a := NewAttacks()
	for i := 0; i < b.N; i++ {
		a.Clear()
		a.Compute(p)
	}
}

func BenchmarkClearVsNew(b *testing.B) {
	a := NewAttacks()
	b.Run("New", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a = NewAttacks()
		}
	})
	b.Run("Clear", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a.Clear()
		}
	})
	_ = a
}
