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
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/movegen"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/moveslice"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/util"
)

func TestSavePV(t *testing.T) {
	src := moveslice.NewMoveSlice(10)
	dest := moveslice.NewMoveSlice(10)

	src.PushBack(Move(1234))
	src.PushBack(Move(2345))
	src.PushBack(Move(3456))
	src.PushBack(Move(4567))

	savePV(Move(9999), src, dest)

	assert.EqualValues(t, 5, dest.Len())
	assert.EqualValues(t, 9999, dest.At(0))
	assert.EqualValues(t, 4567, dest.At(4))
}

func TestMateValue(t *testing.T) {
	s := NewSearch()
	// KR vs K, mate in 4 moves (7 plies) from the root at depth 8
	p, _ := position.FromFen("8/8/8/8/8/3K4/R7/5k2 w - -")
	sl := NewSearchLimits()
	sl.Depth = 8
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	assert.EqualValues(t, ValueCheckMate-7, s.lastSearchResult.BestValue)
}

func TestCheckEvasion(t *testing.T) {
	s := NewSearch()
	// white king in check by the rook on h1 - any result must leave check
	p, _ := position.FromFen("4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	sl := NewSearchLimits()
	sl.Depth = 1
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	best := s.lastSearchResult.BestMove
	assert.NotEqual(t, MoveNone, best)
	p.MakeMove(best)
	assert.False(t, p.IsAttacked(p.KingSquare(White), Black))
}

func TestSeeGateOnLosingCapture(t *testing.T) {
	s := NewSearch()
	// BxP on e5 loses the bishop to the d6 pawn - must not be chosen
	p, _ := position.FromFen("4k3/8/3p4/4p3/3B4/8/8/4K3 w - - 0 1")
	sl := NewSearchLimits()
	sl.Depth = 1
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	mg := movegen.NewGenerator()
	losing := mg.MoveFromUci(p, "d4e5")
	assert.NotEqual(t, losing, s.lastSearchResult.BestMove)

	// BxN on c5 wins a knight outright - must be chosen
	p, _ = position.FromFen("4k3/8/8/2n5/3B4/8/8/4K3 w - - 0 1")
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	winning := mg.MoveFromUci(p, "d4c5")
	assert.EqualValues(t, winning, s.lastSearchResult.BestMove)
}

func TestSearchReturnsLegalMove(t *testing.T) {
	s := NewSearch()
	mg := movegen.NewGenerator()
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}
	for _, fen := range fens {
		p, err := position.FromFen(fen)
		assert.NoError(t, err)
		sl := NewSearchLimits()
		sl.Depth = 4
		s.StartSearch(*p, *sl)
		s.WaitWhileSearching()
		assert.True(t, mg.ValidateMove(p, s.lastSearchResult.BestMove), "illegal best move on %s", fen)
	}
}

func TestTTStatsConsistent(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.Depth = 6
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	stats := s.Statistics()
	assert.LessOrEqual(t, stats.TTCuts, stats.TTHit)

	result := s.LastSearchResult()
	// the per-flag hits sum to the total hit count which never exceeds
	// the probe count
	ttHits := result.TTHitsExact + result.TTHitsLower + result.TTHitsUpper
	assert.LessOrEqual(t, ttHits, result.TTProbes)
	if s.tt != nil {
		assert.EqualValues(t, s.tt.Hits(), ttHits)
		assert.LessOrEqual(t, result.TTSize, s.tt.Len())
		assert.LessOrEqual(t, result.HashfullPermille, 1000)
	}

	// node and iteration accounting
	assert.Greater(t, result.Nodes, uint64(0))
	assert.LessOrEqual(t, result.QNodes, result.Nodes)
	assert.EqualValues(t, 6, len(result.Iters))
	var iterNodes uint64
	for _, it := range result.Iters {
		iterNodes += it.Nodes
	}
	assert.LessOrEqual(t, iterNodes, result.Nodes)
}

func TestTimingDev(t *testing.T) {
	t.SkipNow()
	// go tool pprof -http=localhost:8080 chess-engine.test cpu.pprof
	s := NewSearch()
	p := position.NewPosition("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	sl := NewSearchLimits()
	sl.Depth = 10
	sl.MoveTime = 30 * time.Second
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	out.Println("TT  : ", s.tt.String())
	out.Println("NPS : ", util.Nps(s.nodesVisited, s.lastSearchResult.SearchTime))
}
