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

package position

import (
	"os"
	"path"
	"runtime"
	"testing"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	myLogging "github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var out = message.NewPrinter(language.German)
var logTest *logging.Logger

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
	logTest = myLogging.GetTestLog()
	os.Exit(m.Run())
}

func TestPositionFromFen(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	p, err := FromFen(fen)
	require.NoError(t, err)

	assert.Equal(t, SqA1.Bb()|SqH1.Bb()|SqA8.Bb()|SqH8.Bb(), p.piecesBb[White][Rook]|p.piecesBb[Black][Rook])
	assert.Equal(t, SqB1.Bb()|SqG1.Bb()|SqB8.Bb()|SqG8.Bb(), p.piecesBb[White][Knight]|p.piecesBb[Black][Knight])
	assert.Equal(t, SqC1.Bb()|SqF1.Bb()|SqC8.Bb()|SqF8.Bb(), p.piecesBb[White][Bishop]|p.piecesBb[Black][Bishop])
	assert.Equal(t, SqD1.Bb()|SqD8.Bb(), p.piecesBb[White][Queen]|p.piecesBb[Black][Queen])
	assert.Equal(t, SqE1.Bb()|SqE8.Bb(), p.piecesBb[White][King]|p.piecesBb[Black][King])
	assert.Equal(t, Rank2_Bb|Rank7_Bb, p.piecesBb[White][Pawn]|p.piecesBb[Black][Pawn])
	assert.Equal(t, White, p.nextPlayer)
	assert.Equal(t, CastlingAny, p.castlingRights)
	assert.Equal(t, SqNone, p.enPassantSquare)
	assert.Equal(t, 0, p.halfMoveClock)
	assert.Equal(t, 1, p.nextHalfMoveNumber)
	// the start position is symmetric in every counter
	assert.Equal(t, Value(0), p.material[White]-p.material[Black])
	assert.Equal(t, Value(0), p.materialNonPawn[White]-p.materialNonPawn[Black])
	assert.Equal(t, Value(0), p.psqMidValue[White]-p.psqMidValue[Black])
	assert.Equal(t, Value(0), p.psqEndValue[White]-p.psqEndValue[Black])
	assert.Equal(t, fen, p.Fen())

	fen = "r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3 0 14"
	p, err = FromFen(fen)
	require.NoError(t, err)
	assert.Equal(t, Black, p.nextPlayer)
	assert.Equal(t, CastlingBlack, p.castlingRights)
	assert.Equal(t, SqE3, p.enPassantSquare)
	assert.Equal(t, 28, p.nextHalfMoveNumber)
	assert.Equal(t, Value(-3770), p.material[White]-p.material[Black])
	assert.Equal(t, Value(-3670), p.materialNonPawn[White]-p.materialNonPawn[Black])
	assert.Equal(t, fen, p.Fen())
}

func TestPositionFromFenErrors(t *testing.T) {
	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP",        // incomplete board
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBXKBNR w KQkq - 0 1", // bad piece char
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1", // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1", // ep not on rank 3/6
	}
	for _, fen := range invalid {
		_, err := FromFen(fen)
		assert.Error(t, err, "fen should be rejected: %s", fen)
	}
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1",
		"8/8/8/8/8/8/8/4K2k w - - 100 1",
	}
	for _, fen := range fens {
		p, err := FromFen(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, p.Fen())
	}
}

func TestMakeUnmakeRestoresEverything(t *testing.T) {
	p := NewPosition()
	before := *p
	p.MakeMove(CreateMove(SqE2, SqE4, Normal, PtNone))
	p.MakeMove(CreateMove(SqD7, SqD5, Normal, PtNone))
	p.MakeMove(CreateMove(SqE4, SqD5, Normal, PtNone))
	p.MakeMove(CreateMove(SqD8, SqD5, Normal, PtNone))
	p.MakeMove(CreateMove(SqB1, SqC3, Normal, PtNone))
	for i := 0; i < 5; i++ {
		p.UnmakeMove()
	}
	assert.Equal(t, before.Fen(), p.Fen())
	assert.Equal(t, before.Hash(), p.Hash())
	assert.Equal(t, before.PawnKey(), p.PawnKey())
	assert.Equal(t, before.material, p.material)
	assert.Equal(t, before.psqMidValue, p.psqMidValue)
	assert.Equal(t, before.psqEndValue, p.psqEndValue)
	assert.Equal(t, before.gamePhase, p.gamePhase)
}

func TestIncrementalHashMatchesScratch(t *testing.T) {
	p, _ := FromFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	assert.Equal(t, p.HashFromScratch(), p.Hash())

	moves := []Move{
		CreateMove(SqE2, SqD3, Normal, PtNone),
		CreateMove(SqB4, SqC3, Normal, PtNone),
		CreateMove(SqE1, SqG1, Castling, PtNone),
		CreateMove(SqA6, SqD3, Normal, PtNone),
	}
	for _, m := range moves {
		p.MakeMove(m)
		assert.Equal(t, p.HashFromScratch(), p.Hash(), "hash mismatch after %s", m.StringUci())
	}
	for range moves {
		p.UnmakeMove()
		assert.Equal(t, p.HashFromScratch(), p.Hash())
	}
}

func TestMakeMoveNormal(t *testing.T) {
	p, _ := FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	p.MakeMove(CreateMove(SqC4, SqD4, Normal, PtNone))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/3qPp2/B5R1/p1p2PPP/1R4K1 w kq - 1 2", p.Fen())

	p, _ = FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	p.MakeMove(CreateMove(SqC4, SqE4, Normal, PtNone))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/4qp2/B5R1/p1p2PPP/1R4K1 w kq - 0 2", p.Fen())

	p, _ = FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 w kq -")
	p.MakeMove(CreateMove(SqG3, SqG6, Normal, PtNone))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1R1/8/2q1Pp2/B7/p1p2PPP/1R4K1 b kq - 0 1", p.Fen())
}

func TestMakeMoveCastling(t *testing.T) {
	p, _ := FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	p.MakeMove(CreateMove(SqE8, SqG8, Castling, PtNone))
	// rook must have jumped from h8 to f8
	assert.Equal(t, "r4rk1/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 w - - 1 2", p.Fen())
	assert.Equal(t, BlackRook, p.PieceOn(SqF8))
	assert.Equal(t, PieceNone, p.PieceOn(SqH8))

	p, _ = FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	p.MakeMove(CreateMove(SqE8, SqC8, Castling, PtNone))
	assert.Equal(t, "2kr3r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 w - - 1 2", p.Fen())
	assert.Equal(t, BlackRook, p.PieceOn(SqD8))
	assert.Equal(t, PieceNone, p.PieceOn(SqA8))
}

func TestWhiteCastlingRookMotion(t *testing.T) {
	p, _ := FromFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	p.MakeMove(CreateMove(SqE1, SqG1, Castling, PtNone))
	assert.Equal(t, WhiteRook, p.PieceOn(SqF1))
	assert.Equal(t, PieceNone, p.PieceOn(SqH1))
	assert.Equal(t, WhiteKing, p.PieceOn(SqG1))
}

func TestMakeMoveEnPassant(t *testing.T) {
	p, _ := FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	p.MakeMove(CreateMove(SqF4, SqE3, EnPassant, PtNone))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/2q5/B3p1R1/p1p2PPP/1R4K1 w kq - 0 2", p.Fen())

	// capturing pawn lands on the ep square, captured pawn disappears
	p, _ = FromFen("4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")
	p.MakeMove(CreateMove(SqD5, SqE6, EnPassant, PtNone))
	assert.Equal(t, WhitePawn, p.PieceOn(SqE6))
	assert.Equal(t, PieceNone, p.PieceOn(SqE5))
	assert.Equal(t, PieceNone, p.PieceOn(SqD5))
}

func TestMakeMovePromotion(t *testing.T) {
	p, _ := FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	p.MakeMove(CreateMove(SqA2, SqA1, Promotion, Queen))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/2p2PPP/qR4K1 w kq - 0 2", p.Fen())

	p, _ = FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	p.MakeMove(CreateMove(SqA2, SqB1, Promotion, Rook))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/2p2PPP/1r4K1 w kq - 0 2", p.Fen())
}

func TestIsAttacked(t *testing.T) {
	p, _ := FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/6R1/p1p2PPP/1R4K1 b kq e3")

	// pawns
	assert.True(t, p.IsAttacked(SqG3, White))
	assert.True(t, p.IsAttacked(SqE3, White))
	assert.True(t, p.IsAttacked(SqB1, Black))
	assert.True(t, p.IsAttacked(SqE4, Black))
	assert.True(t, p.IsAttacked(SqE3, Black))

	// knight
	assert.True(t, p.IsAttacked(SqE5, Black))
	assert.True(t, p.IsAttacked(SqF4, Black))
	assert.False(t, p.IsAttacked(SqG1, Black))

	// sliders
	assert.True(t, p.IsAttacked(SqG6, White))
	assert.True(t, p.IsAttacked(SqA5, Black))

	p, _ = FromFen("rnbqkbnr/1ppppppp/8/p7/Q1P5/8/PP1PPPPP/RNB1KBNR b KQkq - 1 2")
	assert.True(t, p.IsAttacked(SqD1, White))  // king
	assert.False(t, p.IsAttacked(SqE1, Black))
	assert.True(t, p.IsAttacked(SqA5, Black))  // rook
	assert.False(t, p.IsAttacked(SqA4, Black))
	assert.False(t, p.IsAttacked(SqE8, White)) // queen blocked
	assert.True(t, p.IsAttacked(SqD7, White))

	// the pawn behind the ep square is attackable en passant
	for _, tc := range []struct{ fen string; sq Square; by Color }{
		{"rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6", SqD5, White},
		{"rnbqkbnr/1pp1pppp/p7/2Pp4/8/8/PP1PPPPP/RNBQKBNR w KQkq d6", SqD5, White},
		{"rnbqkbnr/pppp1ppp/8/8/3Pp3/7P/PPP1PPP1/RNBQKBNR b - d3", SqD4, Black},
		{"rnbqkbnr/pppp1ppp/8/8/2pP4/7P/PPP1PPP1/RNBQKBNR b - d3", SqD4, Black},
	} {
		p, _ = FromFen(tc.fen)
		assert.True(t, p.IsAttacked(tc.sq, tc.by), tc.fen)
	}

	// regressions
	p, _ = FromFen("r1bqk1nr/pppp1ppp/2nb4/1B2B3/3pP3/8/PPP2PPP/RN1QK1NR b KQkq -")
	assert.False(t, p.IsAttacked(SqE8, White))
	assert.False(t, p.IsAttacked(SqE1, Black))

	p, _ = FromFen("rnbqkbnr/ppp1pppp/8/1B6/3Pp3/8/PPP2PPP/RNBQK1NR b KQkq -")
	assert.True(t, p.IsAttacked(SqE8, White))
	assert.False(t, p.IsAttacked(SqE1, Black))

	p, _ = FromFen("8/1pk2p2/2p5/5p2/8/1pp2Q2/5K2/8 w - -")
	assert.False(t, p.IsAttacked(SqF7, White))
	assert.False(t, p.IsAttacked(SqB7, White))
	assert.False(t, p.IsAttacked(SqB3, White))
}

func TestIsLegalMoveCastling(t *testing.T) {
	// king side crosses an attacked square, queen side does not
	p, _ := FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	assert.False(t, p.IsLegalMove(CreateMove(SqE8, SqG8, Castling, PtNone)))
	assert.True(t, p.IsLegalMove(CreateMove(SqE8, SqC8, Castling, PtNone)))

	// in check - no castling at all
	p, _ = FromFen("r3k2r/1ppn3p/2q1qNn1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	assert.False(t, p.IsLegalMove(CreateMove(SqE8, SqG8, Castling, PtNone)))
	assert.False(t, p.IsLegalMove(CreateMove(SqE8, SqC8, Castling, PtNone)))
}

func TestWasLegalMove(t *testing.T) {
	p, _ := FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	p.MakeMove(CreateMove(SqE8, SqG8, Castling, PtNone)) // crosses attacked f8
	assert.False(t, p.WasLegalMove())
	p.UnmakeMove()
	p.MakeMove(CreateMove(SqE8, SqC8, Castling, PtNone))
	assert.True(t, p.WasLegalMove())
}

func TestGivesCheck(t *testing.T) {
	cases := []struct {
		fen   string
		move  Move
		check bool
	}{
		// direct pawn checks
		{"4r3/1pn3k1/4p1b1/p1Pp1P1r/3P2NR/1P3B2/3K2P1/4R3 w - -", CreateMove(SqF5, SqF6, Normal, PtNone), true},
		{"5k2/4pp2/1N2n1p1/r3P2p/P5PP/2rR1K2/P7/3R4 b - -", CreateMove(SqH5, SqG4, Normal, PtNone), true},
		// promotion checks
		{"1k3r2/1p1bP3/2p2p1Q/Ppb5/4Rp1P/2q2N1P/5PB1/6K1 w - -", CreateMove(SqE7, SqF8, Promotion, Queen), true},
		{"1r3r2/1p1bP2k/2p2n2/p1Pp4/P2N1PpP/1R2p3/1P2P1BP/3R2K1 w - -", CreateMove(SqE7, SqF8, Promotion, Knight), true},
		// knight checks
		{"5k2/4pp2/1N2n1p1/r3P2p/P5PP/2rR1K2/P7/3R4 w - -", CreateMove(SqB6, SqD7, Normal, PtNone), true},
		{"5k2/4pp2/1N2n1p1/r3P2p/P5PP/2rR1K2/P7/3R4 b - -", CreateMove(SqE6, SqD4, Normal, PtNone), true},
		// rook checks, blocked and unblocked
		{"5k2/4pp2/1N2n1pp/r3P3/P5PP/2rR4/P3K3/3R4 w - -", CreateMove(SqD3, SqD8, Normal, PtNone), true},
		{"5k2/4pp2/1N2n1pp/r3P3/P5PP/2rR4/P3K3/3R4 b - -", CreateMove(SqC3, SqC2, Normal, PtNone), true},
		{"5k2/4pp2/1N2n1pp/r3P3/P5PP/2rR4/P2RK3/8 b - -", CreateMove(SqC3, SqC2, Normal, PtNone), false},
		{"5k2/4pp2/1N2n1pp/r3P3/P5PP/2rR4/P2nK3/3R4 b - -", CreateMove(SqC3, SqC2, Normal, PtNone), false},
		// bishop and queen checks
		{"6k1/3q2b1/p1rrnpp1/P3p3/2B1P3/1p1R3Q/1P4PP/1B1R3K w - -", CreateMove(SqC4, SqE6, Normal, PtNone), true},
		{"5k2/4pp2/1N2n1pp/r3P3/P5PP/2qR4/P3K3/3R4 b - -", CreateMove(SqC3, SqC2, Normal, PtNone), true},
		{"6k1/3q2b1/p1rrnpp1/P3p3/2B1P3/1p1R3Q/1P4PP/1B1R3K w - -", CreateMove(SqH3, SqE6, Normal, PtNone), true},
		{"6k1/p3q2p/1n1Q2pB/8/5P2/6P1/PP5P/3R2K1 b - -", CreateMove(SqE7, SqE3, Normal, PtNone), true},
		{"6k1/p3q2p/1n1Q2pB/8/5P2/6P1/PP5P/3R2K1 b - -", CreateMove(SqE7, SqE4, Normal, PtNone), false},
		// the rook gives check in castling
		{"r4k1r/8/8/8/8/8/8/R3K2R w KQ -", CreateMove(SqE1, SqG1, Castling, PtNone), true},
		{"r2k3r/8/8/8/8/8/8/R3K2R w KQ -", CreateMove(SqE1, SqC1, Castling, PtNone), true},
		{"r3k2r/8/8/8/8/8/8/R4K1R b kq -", CreateMove(SqE8, SqG8, Castling, PtNone), true},
		{"r3k2r/8/8/8/8/8/8/R2K3R b kq -", CreateMove(SqE8, SqC8, Castling, PtNone), true},
		{"r6r/8/8/8/8/8/8/2k1K2R w K -", CreateMove(SqE1, SqG1, Castling, PtNone), true},
		// en passant direct and revealed checks
		{"8/3r1pk1/p1R2p2/1p5p/r2Pp3/PRP3P1/4KP1P/8 b - d3", CreateMove(SqE4, SqD3, EnPassant, PtNone), true},
		{"8/b2r1pk1/p1R2p2/1p5p/r2Pp3/PRP3P1/5K1P/8 b - d3", CreateMove(SqE4, SqD3, EnPassant, PtNone), true},
		// revealed checks
		{"6k1/8/3P1bp1/2BNp3/8/1Q3P1q/7r/1K2R3 w - -", CreateMove(SqD5, SqE7, Normal, PtNone), true},
		{"6k1/8/3P1bp1/2BNp3/8/1Q3P1q/7r/1K2R3 w - -", CreateMove(SqD5, SqC7, Normal, PtNone), true},
		{"1Q1N2k1/8/3P1bp1/2B1p3/8/5P1q/7r/1K2R3 w - -", CreateMove(SqD8, SqE6, Normal, PtNone), true},
		{"1R1N2k1/8/3P1bp1/2B1p3/8/5P1q/7r/1K2R3 w - -", CreateMove(SqD8, SqE6, Normal, PtNone), true},
		// misc regressions
		{"2r1r3/pb1n1kpn/1p1qp3/6p1/2PP4/8/P2Q1PPP/3R1RK1 w - -", CreateMove(SqF2, SqF4, Normal, PtNone), false},
		{"2r1r1k1/pb3pp1/1p1qpn2/4n1p1/2PP4/6KP/P2Q1PP1/3RR3 b - -", CreateMove(SqE5, SqD3, Normal, PtNone), true},
		{"R6R/3Q4/1Q4Q1/4Q3/2Q4Q/Q1NNQQ2/1p6/qk3KB1 b - -", CreateMove(SqB1, SqC2, Normal, PtNone), true},
		{"8/8/8/8/8/5K2/R7/7k w - -", CreateMove(SqA2, SqH2, Normal, PtNone), true},
		{"r1bqkb1r/ppp1pppp/2n2n2/1B1P4/8/8/PPPP1PPP/RNBQK1NR w KQkq -", CreateMove(SqD5, SqC6, Normal, PtNone), false},
		{"rnbq1bnr/pppkpppp/8/3p4/3P4/3Q4/PPP1PPPP/RNB1KBNR w KQ -", CreateMove(SqD3, SqH7, Normal, PtNone), false},
	}
	for _, tc := range cases {
		p := NewPosition(tc.fen)
		assert.Equal(t, tc.check, p.GivesCheck(tc.move), "%s %s", tc.fen, tc.move.StringUci())
	}
}

func TestHasRepetitions(t *testing.T) {
	p := NewPosition()
	p.MakeMove(CreateMove(SqE2, SqE4, Normal, PtNone))
	p.MakeMove(CreateMove(SqE7, SqE5, Normal, PtNone))
	for i := 0; i <= 2; i++ {
		p.MakeMove(CreateMove(SqG1, SqF3, Normal, PtNone))
		p.MakeMove(CreateMove(SqB8, SqC6, Normal, PtNone))
		p.MakeMove(CreateMove(SqF3, SqG1, Normal, PtNone))
		p.MakeMove(CreateMove(SqC6, SqB8, Normal, PtNone))
	}
	assert.True(t, p.HasRepetitions(2))

	p, _ = FromFen("6k1/p3q2p/1n1Q2pB/8/5P2/6P1/PP5P/3R2K1 b - -")
	p.MakeMove(CreateMove(SqE7, SqE3, Normal, PtNone))
	p.MakeMove(CreateMove(SqG1, SqG2, Normal, PtNone))
	for i := 0; i <= 2; i++ {
		p.MakeMove(CreateMove(SqE3, SqE2, Normal, PtNone))
		p.MakeMove(CreateMove(SqG2, SqG1, Normal, PtNone))
		p.MakeMove(CreateMove(SqE2, SqE3, Normal, PtNone))
		p.MakeMove(CreateMove(SqG1, SqG2, Normal, PtNone))
	}
	assert.True(t, p.HasRepetitions(2))
}

func TestNullMove(t *testing.T) {
	p, _ := FromFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3")
	before := *p
	p.MakeNullMove()
	assert.NotEqual(t, before.Hash(), p.Hash())
	assert.Equal(t, before.SideToMove().Flip(), p.SideToMove())
	assert.Equal(t, SqNone, p.EnPassantSquare())
	p.UnmakeNullMove()
	assert.Equal(t, before.Fen(), p.Fen())
	assert.Equal(t, before.Hash(), p.Hash())
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		fen  string
		draw bool
	}{
		{"8/3k4/8/8/8/8/4K3/8 w - -", true},        // bare kings
		{"8/3k4/8/8/8/2B5/4K3/8 w - -", true},      // single minor
		{"8/8/4K3/8/8/2b5/4k3/8 b - -", true},
		{"8/8/3BK3/8/8/2b5/4k3/8 b - -", true},     // bishop each
		{"8/8/2B1K3/8/8/8/2b1k3/8 b - -", true},
		{"8/8/4K3/2B5/8/8/2b1k3/8 b - -", true},
		{"8/8/2B1K3/2B5/8/8/2n1k3/8 b - -", false}, // bishop pair mates
		{"8/8/2NNK3/8/8/8/4k3/8 w - -", true},      // two knights
		{"8/8/2nnk3/8/8/8/4K3/8 w - -", true},
		{"8/8/2n1kn2/8/8/8/4K3/4B3 w - -", true},   // NN vs B
		{"8/8/3bk1b1/8/8/8/4K3/4B3 w - -", true},   // BB vs B
		{"8/8/3bk1b1/8/8/8/4K3/4N3 w - -", false},  // bishop pair vs N
		{"8/8/3bk1n1/8/8/8/4K3/4N3 w - -", true},   // BN vs N
	}
	for _, tc := range cases {
		p, _ := FromFen(tc.fen)
		assert.Equal(t, tc.draw, p.HasInsufficientMaterial(), tc.fen)
	}
}

func TestPawnKeyOnlyTracksPawns(t *testing.T) {
	p := NewPosition()
	before := p.PawnKey()
	// a knight move leaves the pawn key untouched
	p.MakeMove(CreateMove(SqG1, SqF3, Normal, PtNone))
	assert.Equal(t, before, p.PawnKey())
	p.UnmakeMove()
	// a pawn move changes it
	p.MakeMove(CreateMove(SqE2, SqE4, Normal, PtNone))
	assert.NotEqual(t, before, p.PawnKey())
	p.UnmakeMove()
	assert.Equal(t, before, p.PawnKey())
}

func TestTimingMakeUnmake(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	const iterations uint64 = 10_000_000

	e2e4 := CreateMove(SqE2, SqE4, Normal, PtNone)
	d7d5 := CreateMove(SqD7, SqD5, Normal, PtNone)
	e4d5 := CreateMove(SqE4, SqD5, Normal, PtNone)
	d8d5 := CreateMove(SqD8, SqD5, Normal, PtNone)
	b1c3 := CreateMove(SqB1, SqC3, Normal, PtNone)

	p := NewPosition()
	start := time.Now()
	for i := uint64(0); i < iterations; i++ {
		p.MakeMove(e2e4)
		p.MakeMove(d7d5)
		p.MakeMove(e4d5)
		p.MakeMove(d8d5)
		p.MakeMove(b1c3)
		for j := 0; j < 5; j++ {
			p.UnmakeMove()
		}
	}
	elapsed := time.Since(start)
	out.Printf("MakeMove/UnmakeMove took %d ns per do/undo pair\n", elapsed.Nanoseconds()/int64(iterations*5))
	out.Printf("Positions per sec %d pps\n", int64(iterations*5*1e9)/elapsed.Nanoseconds())
}
