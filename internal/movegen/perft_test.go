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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
)

// Reference values from https://www.chessprogramming.org/Perft_Results

type perftExpect struct {
	nodes      uint64
	captures   uint64
	enPassant  uint64
	checks     uint64
	mates      uint64
	castles    uint64
	promotions uint64
}

var startPosExpect = []perftExpect{
	{1, 0, 0, 0, 0, 0, 0},
	{20, 0, 0, 0, 0, 0, 0},
	{400, 0, 0, 0, 0, 0, 0},
	{8_902, 34, 0, 12, 0, 0, 0},
	{197_281, 1_576, 0, 469, 8, 0, 0},
	{4_865_609, 82_719, 258, 27_351, 347, 0, 0},
}

func runPerft(t *testing.T, fen string, expected []perftExpect, maxDepth int, onDemand bool) {
	t.Helper()
	var perft Perft
	for depth := 1; depth <= maxDepth; depth++ {
		perft.StartPerft(fen, depth, onDemand)
		e := expected[depth]
		assert.Equal(t, e.nodes, perft.Nodes, "nodes at depth %d", depth)
		assert.Equal(t, e.captures, perft.CaptureCounter, "captures at depth %d", depth)
		assert.Equal(t, e.enPassant, perft.EnpassantCounter, "ep at depth %d", depth)
		assert.Equal(t, e.checks, perft.CheckCounter, "checks at depth %d", depth)
		assert.Equal(t, e.mates, perft.CheckMateCounter, "mates at depth %d", depth)
	}
}

func TestPerftStartPosition(t *testing.T) {
	runPerft(t, position.StartFen, startPosExpect, 5, false)
}

func TestPerftStartPositionOnDemand(t *testing.T) {
	runPerft(t, position.StartFen, startPosExpect, 5, true)
}

func TestPerftKiwipete(t *testing.T) {
	expected := []perftExpect{
		{1, 0, 0, 0, 0, 0, 0},
		{48, 8, 0, 0, 0, 2, 0},
		{2_039, 351, 1, 3, 0, 91, 0},
		{97_862, 17_102, 45, 993, 1, 3_162, 0},
		{4_085_603, 757_163, 1_929, 25_523, 43, 128_013, 15_172},
	}
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - "
	var perft Perft
	for depth := 1; depth <= 4; depth++ {
		perft.StartPerft(fen, depth, true)
		e := expected[depth]
		assert.Equal(t, e.nodes, perft.Nodes, "nodes at depth %d", depth)
		assert.Equal(t, e.captures, perft.CaptureCounter, "captures at depth %d", depth)
		assert.Equal(t, e.enPassant, perft.EnpassantCounter, "ep at depth %d", depth)
		assert.Equal(t, e.checks, perft.CheckCounter, "checks at depth %d", depth)
		assert.Equal(t, e.mates, perft.CheckMateCounter, "mates at depth %d", depth)
		assert.Equal(t, e.castles, perft.CastleCounter, "castles at depth %d", depth)
		assert.Equal(t, e.promotions, perft.PromotionCounter, "promotions at depth %d", depth)
	}
}

// The mirrored pair from CPW "Position 4" - both sides must produce the
// exact same counts, a strong test for color-symmetric generation.
func TestPerftMirroredPosition(t *testing.T) {
	expected := []perftExpect{
		{1, 0, 0, 0, 0, 0, 0},
		{6, 0, 0, 0, 0, 0, 0},
		{264, 87, 0, 10, 0, 6, 48},
		{9_467, 1_021, 4, 38, 22, 0, 120},
		{422_333, 131_393, 0, 15_492, 5, 7_795, 60_032},
		{15_833_292, 2_046_173, 6_512, 200_568, 50_562, 0, 329_464},
	}
	fens := []string{
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq -",
		"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ -",
	}
	var perft Perft
	for _, fen := range fens {
		for depth := 1; depth <= 5; depth++ {
			perft.StartPerft(fen, depth, false)
			e := expected[depth]
			assert.Equal(t, e.nodes, perft.Nodes, "nodes at depth %d of %s", depth, fen)
			assert.Equal(t, e.captures, perft.CaptureCounter, "captures at depth %d of %s", depth, fen)
			assert.Equal(t, e.enPassant, perft.EnpassantCounter, "ep at depth %d of %s", depth, fen)
			assert.Equal(t, e.checks, perft.CheckCounter, "checks at depth %d of %s", depth, fen)
			assert.Equal(t, e.mates, perft.CheckMateCounter, "mates at depth %d of %s", depth, fen)
			assert.Equal(t, e.castles, perft.CastleCounter, "castles at depth %d of %s", depth, fen)
			assert.Equal(t, e.promotions, perft.PromotionCounter, "promotions at depth %d of %s", depth, fen)
		}
	}
}

// CPW "Position 5", node counts only.
func TestPerftPosition5(t *testing.T) {
	expected := []uint64{1, 44, 1_486, 62_379, 2_103_487, 89_941_194}
	var perft Perft
	for depth := 1; depth <= 4; depth++ {
		perft.StartPerft("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ -", depth, false)
		assert.Equal(t, expected[depth], perft.Nodes, "nodes at depth %d", depth)
	}
}
