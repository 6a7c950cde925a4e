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

package movegen

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

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
	os.Exit(m.Run())
}

func TestLegalMovesStartPosition(t *testing.T) {
	mg := NewGenerator()
	p := position.NewPosition()
	moves := mg.LegalMoves(p, GenAll)
	assert.Equal(t, 20, moves.Len())
}

func TestLegalMovesKiwipete(t *testing.T) {
	mg := NewGenerator()
	p := position.NewPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := mg.LegalMoves(p, GenAll)
	assert.Equal(t, 48, moves.Len())
}

func TestLegalMovesMatchNextMove(t *testing.T) {
	fens := []string{
		position.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/4K2r w - - 0 1", // in check
		"4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1",
	}
	for _, fen := range fens {
		p := position.NewPosition(fen)
		bulk := NewGenerator()
		phased := NewGenerator()

		legal := bulk.LegalMoves(p, GenAll).Clone()

		// the phased generator must yield exactly the legal set after
		// filtering, regardless of order
		count := 0
		hasCheck := p.HasCheck()
		for m := phased.NextMove(p, GenAll, hasCheck); m != MoveNone; m = phased.NextMove(p, GenAll, hasCheck) {
			if !p.IsLegalMove(m) {
				continue
			}
			count++
			found := false
			for _, lm := range *legal {
				if lm.MoveOf() == m.MoveOf() {
					found = true
					break
				}
			}
			assert.True(t, found, "phased move %s not in legal list of %s", m.StringUci(), fen)
		}
		assert.Equal(t, legal.Len(), count, "move count mismatch on %s", fen)
	}
}

func TestEvasionsOnly(t *testing.T) {
	mg := NewGenerator()
	// white king checked by the rook on h1: only king moves escape
	p := position.NewPosition("4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	moves := mg.LegalMoves(p, GenAll)
	for _, m := range *moves {
		p.MakeMove(m)
		assert.False(t, p.IsAttacked(p.KingSquare(White), Black), "move %s leaves check", m.StringUci())
		p.UnmakeMove()
	}
}

func TestEnPassantGenerated(t *testing.T) {
	mg := NewGenerator()
	p := position.NewPosition("4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")
	found := false
	for _, m := range *mg.LegalMoves(p, GenAll) {
		if m.MoveType() == EnPassant && m.StringUci() == "d5e6" {
			found = true
		}
	}
	assert.True(t, found, "en passant d5e6 not generated")
}

func TestPromotionsGenerated(t *testing.T) {
	mg := NewGenerator()
	p := position.NewPosition("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	promotions := 0
	for _, m := range *mg.LegalMoves(p, GenAll) {
		if m.MoveType() == Promotion {
			promotions++
		}
	}
	// a7a8 to queen, rook, bishop and knight
	assert.Equal(t, 4, promotions)
}

func TestCastlingNotGeneratedWhenBlocked(t *testing.T) {
	mg := NewGenerator()
	// bishop on f1 blocks king side castling
	p := position.NewPosition("4k3/8/8/8/8/8/8/R3KB1R w KQ - 0 1")
	for _, m := range *mg.LegalMoves(p, GenAll) {
		if m.MoveType() == Castling {
			assert.NotEqual(t, "e1g1", m.StringUci())
		}
	}
}

func TestHasLegalMove(t *testing.T) {
	mg := NewGenerator()

	p := position.NewPosition()
	assert.True(t, mg.HasLegalMove(p))

	// mate
	p = position.NewPosition("7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")
	assert.False(t, mg.HasLegalMove(p))

	// stalemate
	p = position.NewPosition("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.False(t, mg.HasLegalMove(p))
}

func TestMoveFromUci(t *testing.T) {
	mg := NewGenerator()
	p := position.NewPosition()

	m := mg.MoveFromUci(p, "e2e4")
	assert.NotEqual(t, MoveNone, m)
	assert.Equal(t, "e2e4", m.StringUci())

	// illegal or garbage input yields MoveNone
	assert.Equal(t, MoveNone, mg.MoveFromUci(p, "e2e5"))
	assert.Equal(t, MoveNone, mg.MoveFromUci(p, "xyz"))

	// promotion suffix
	p = position.NewPosition("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	m = mg.MoveFromUci(p, "a7a8q")
	assert.NotEqual(t, MoveNone, m)
	assert.Equal(t, Promotion, m.MoveType())
	assert.Equal(t, Queen, m.PromotionType())
}

func TestMoveFromSan(t *testing.T) {
	mg := NewGenerator()
	p := position.NewPosition()

	assert.Equal(t, "e2e4", mg.MoveFromSan(p, "e4").StringUci())
	assert.Equal(t, "g1f3", mg.MoveFromSan(p, "Nf3").StringUci())
	assert.Equal(t, MoveNone, mg.MoveFromSan(p, "Qd5"))

	// disambiguation by file
	p = position.NewPosition("4k3/8/8/8/8/8/R6R/4K3 w - - 0 1")
	assert.Equal(t, "a2e2", mg.MoveFromSan(p, "Rae2").StringUci())
	assert.Equal(t, "h2e2", mg.MoveFromSan(p, "Rhe2").StringUci())
	// ambiguous without the file letter
	assert.Equal(t, MoveNone, mg.MoveFromSan(p, "Re2"))
}

func TestPvMoveReturnedFirst(t *testing.T) {
	mg := NewGenerator()
	p := position.NewPosition()
	pv := mg.MoveFromUci(p, "d2d4")
	mg.Reset()
	mg.SetPvMove(pv)
	first := mg.NextMove(p, GenAll, false)
	assert.Equal(t, pv.MoveOf(), first.MoveOf())

	// the PV move must not be returned again later
	seen := 0
	for m := mg.NextMove(p, GenAll, false); m != MoveNone; m = mg.NextMove(p, GenAll, false) {
		if m.MoveOf() == pv.MoveOf() {
			seen++
		}
	}
	assert.Equal(t, 0, seen)
}

func TestStoreKiller(t *testing.T) {
	mg := NewGenerator()
	p := position.NewPosition()
	killer := mg.MoveFromUci(p, "a2a3")
	mg.Reset()
	mg.StoreKiller(killer)
	assert.Equal(t, killer.MoveOf(), mg.KillerMoves()[0])

	// storing the same killer twice keeps a single slot
	mg.StoreKiller(killer)
	assert.NotEqual(t, killer.MoveOf(), mg.KillerMoves()[1])
}
