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

package types

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/util"
)

// Bitboard is a 64 bit unsigned int with 1 bit for each square on the board.
type Bitboard uint64

// Bb returns a Bitboard of the square by accessing the pre calculated
// square to bitboard array.
func (sq Square) Bb() Bitboard {
	return sqBb[sq]
}

// PushSquare sets the corresponding bit of the bitboard for the square.
func PushSquare(b Bitboard, s Square) Bitboard {
	return b | s.Bb()
}

// PushSquare sets the corresponding bit of the bitboard for the square.
func (b *Bitboard) PushSquare(s Square) Bitboard {
	*b |= s.Bb()
	return *b
}

// PopSquare removes the corresponding bit of the bitboard for the square.
func PopSquare(b Bitboard, s Square) Bitboard {
	return b &^ s.Bb()
}

// PopSquare removes the corresponding bit of the bitboard for the square.
func (b *Bitboard) PopSquare(s Square) Bitboard {
	*b = *b &^ s.Bb()
	return *b
}

// Has tests if a square (bit) is set.
func (b Bitboard) Has(s Square) bool {
	return b&sqBb[s] != 0
}

// ShiftBitboard shifts all bits of a bitboard in the given direction by
// one square, clearing the file that would otherwise wrap around.
func ShiftBitboard(b Bitboard, d Direction) Bitboard {
	switch d {
	case North:
		return (Rank8Mask & b) << 8
	case East:
		return (MsbMask & b) << 1 & FileAMask
	case South:
		return b >> 8
	case West:
		return (b >> 1) & FileHMask
	case Northeast:
		return (Rank8Mask & b) << 9 & FileAMask
	case Southeast:
		return (b >> 7) & FileAMask
	case Southwest:
		return (b >> 9) & FileHMask
	case Northwest:
		return (b << 7) & FileHMask
	}
	return b
}

// Lsb returns the least significant bit of the 64-bit Bb, translated to its
// Square. Returns SqNone if the bitboard is empty.
func (b Bitboard) Lsb() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the most significant bit of the 64-bit Bb, translated to its
// Square. Returns SqNone if the bitboard is empty.
func (b Bitboard) Msb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb returns the Lsb square and removes it from the bitboard in place.
func (b *Bitboard) PopLsb() Square {
	if *b == BbZero {
		return SqNone
	}
	lsb := b.Lsb()
	*b = *b & (*b - 1)
	return lsb
}

// PopCount returns the number of one bits ("population count") in b, i.e.
// the number of squares set.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// String returns a string representation of the 64 bits.
func (b Bitboard) String() string {
	return fmt.Sprintf("%-0.64b", b)
}

// BoardString returns a string representation of the Bb as an 8x8 board.
func (b Bitboard) BoardString() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			if (b & SquareOf(f, Rank8-r).Bb()) > 0 {
				os.WriteString("| X ")
			} else {
				os.WriteString("|   ")
			}
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// StringGrouped returns a string representation of the 64 bits grouped in
// 8. Order is LSB to MSB, i.e. A1 B1 ... G8 H8.
func (b Bitboard) StringGrouped() string {
	var os strings.Builder
	for i := 0; i < 64; i++ {
		if i > 0 && i%8 == 0 {
			os.WriteString(".")
		}
		if (b & (BbOne << i)) != 0 {
			os.WriteString("1")
		} else {
			os.WriteString("0")
		}
	}
	os.WriteString(fmt.Sprintf(" (%d)", b))
	return os.String()
}

// FileDistance returns the absolute distance in files between two files.
func FileDistance(f1 File, f2 File) int {
	return util.Abs(int(f2) - int(f1))
}

// RankDistance returns the absolute distance in ranks between two ranks.
func RankDistance(r1 Rank, r2 Rank) int {
	return util.Abs(int(r2) - int(r1))
}

// SquareDistance returns the Chebyshev distance in squares between two
// squares.
func SquareDistance(s1 Square, s2 Square) int {
	if !s1.IsValid() || !s2.IsValid() || s1 == s2 {
		return 0
	}
	return squareDistance[s1][s2]
}

// CenterDistance returns the distance to the nearest center square.
func (sq Square) CenterDistance() int {
	return centerDistance[sq]
}

// rookRayDirs/bishopRayDirs are the orientations a rook/bishop attacks
// along. positiveDir reports whether walking that orientation increases
// the square index, which tells GetAttacksBb whether the first blocker
// along a ray is its Lsb or its Msb.
var (
	rookRayDirs   = [4]Orientation{N, E, S, W}
	bishopRayDirs = [4]Orientation{NW, NE, SE, SW}
)

func positiveDir(o Orientation) bool {
	switch o {
	case N, NE, E, NW:
		return true
	default:
		return false
	}
}

// slidingAttacks walks each of the given ray orientations from sq,
// stopping a ray at (and including) the first occupied square it meets.
// This is a direct ray-walk: it never consults a precomputed magic
// index, trading a few extra branches per call for a much smaller and
// easier to audit implementation.
func slidingAttacks(sq Square, occupied Bitboard, dirs []Orientation) Bitboard {
	var attacks Bitboard
	for _, o := range dirs {
		ray := rays[o][sq]
		attacks |= ray
		if blockers := ray & occupied; blockers != BbZero {
			var blocker Square
			if positiveDir(o) {
				blocker = blockers.Lsb()
			} else {
				blocker = blockers.Msb()
			}
			attacks &^= rays[o][blocker]
		}
	}
	return attacks
}

// GetAttacksBb returns a bitboard of all squares attacked by a piece of
// type pt (not Pawn) placed on sq, given the current occupancy. Knight
// and King attacks ignore occupied since they never slide past a piece.
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Pawn:
		panic("GetAttacksBb called with piece type Pawn is not supported, use GetPawnAttacks")
	case Bishop:
		return slidingAttacks(sq, occupied, bishopRayDirs[:])
	case Rook:
		return slidingAttacks(sq, occupied, rookRayDirs[:])
	case Queen:
		return slidingAttacks(sq, occupied, bishopRayDirs[:]) | slidingAttacks(sq, occupied, rookRayDirs[:])
	default:
		return pseudoAttacks[pt][sq]
	}
}

// GetPseudoAttacks returns a Bb of possible attacks of a piece as if on an
// empty board.
func GetPseudoAttacks(pt PieceType, sq Square) Bitboard {
	return pseudoAttacks[pt][sq]
}

// GetPawnAttacks returns a Bb of possible attacks of a pawn of color c.
func GetPawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// FilesWestMask returns a Bb of the files west of the square.
func (sq Square) FilesWestMask() Bitboard {
	return filesWestMask[sq]
}

// FilesEastMask returns a Bb of the files east of the square.
func (sq Square) FilesEastMask() Bitboard {
	return filesEastMask[sq]
}

// FileWestMask returns a Bb of the file west of the square.
func (sq Square) FileWestMask() Bitboard {
	return fileWestMask[sq]
}

// FileEastMask returns a Bb of the file east of the square.
func (sq Square) FileEastMask() Bitboard {
	return fileEastMask[sq]
}

// RanksNorthMask returns a Bb of the ranks north of the square.
func (sq Square) RanksNorthMask() Bitboard {
	return ranksNorthMask[sq]
}

// RanksSouthMask returns a Bb of the ranks south of the square.
func (sq Square) RanksSouthMask() Bitboard {
	return ranksSouthMask[sq]
}

// NeighbourFilesMask returns a Bb of the files east and west of the square.
func (sq Square) NeighbourFilesMask() Bitboard {
	return neighbourFilesMask[sq]
}

// Ray returns a Bb of squares outgoing from the square in the direction of
// the given orientation.
func (sq Square) Ray(o Orientation) Bitboard {
	return rays[o][sq]
}

// Intermediate returns a Bb of squares between the given two squares.
func Intermediate(sq1 Square, sq2 Square) Bitboard {
	return intermediate[sq1][sq2]
}

// Intermediate returns a Bb of squares between the receiver and sqTo.
func (sq Square) Intermediate(sqTo Square) Bitboard {
	return intermediate[sq][sqTo]
}

// PassedPawnMask returns a Bitboard with all squares on which an opponent
// pawn of color c would stop the pawn on sq from being passed.
func (sq Square) PassedPawnMask(c Color) Bitboard {
	return passedPawnMask[c][sq]
}

// KingSideCastleMask returns a Bb with the king side squares used in
// castling, without the king's own square.
func KingSideCastleMask(c Color) Bitboard {
	return kingSideCastleMask[c]
}

// QueenSideCastMask returns a Bb with the queen side squares used in
// castling, without the king's own square.
func QueenSideCastMask(c Color) Bitboard {
	return queenSideCastleMask[c]
}

// GetCastlingRights returns the CastlingRights lost when sq changes.
func GetCastlingRights(sq Square) CastlingRights {
	return castlingRights[sq]
}

// SquaresBb returns a Bb of all squares of the given color, e.g. for
// same-colored-bishop draw detection.
func SquaresBb(c Color) Bitboard {
	return squaresBb[c]
}

// Various constant bitboards.
const (
	BbZero Bitboard = Bitboard(0)
	BbAll  Bitboard = ^BbZero
	BbOne  Bitboard = Bitboard(1)

	FileA_Bb Bitboard = 0x0101010101010101
	FileB_Bb Bitboard = FileA_Bb << 1
	FileC_Bb Bitboard = FileA_Bb << 2
	FileD_Bb Bitboard = FileA_Bb << 3
	FileE_Bb Bitboard = FileA_Bb << 4
	FileF_Bb Bitboard = FileA_Bb << 5
	FileG_Bb Bitboard = FileA_Bb << 6
	FileH_Bb Bitboard = FileA_Bb << 7

	Rank1_Bb Bitboard = 0xFF
	Rank2_Bb Bitboard = Rank1_Bb << (8 * 1)
	Rank3_Bb Bitboard = Rank1_Bb << (8 * 2)
	Rank4_Bb Bitboard = Rank1_Bb << (8 * 3)
	Rank5_Bb Bitboard = Rank1_Bb << (8 * 4)
	Rank6_Bb Bitboard = Rank1_Bb << (8 * 5)
	Rank7_Bb Bitboard = Rank1_Bb << (8 * 6)
	Rank8_Bb Bitboard = Rank1_Bb << (8 * 7)

	MsbMask   Bitboard = ^(Bitboard(1) << 63)
	Rank8Mask Bitboard = ^Rank8_Bb
	FileAMask Bitboard = ^FileA_Bb
	FileHMask Bitboard = ^FileH_Bb

	CenterFiles   Bitboard = FileD_Bb | FileE_Bb
	CenterRanks   Bitboard = Rank4_Bb | Rank5_Bb
	CenterSquares Bitboard = CenterFiles & CenterRanks
)

// ////////////////////
// Private
// ////////////////////

// bitboard returns a Bb of the square by shifting onto an empty board.
// Used only during precompute; use Square.Bb() afterwards.
func (sq Square) bitboard() Bitboard {
	return Bitboard(uint64(1) << sq)
}

// helper arrays, all filled in by initBb()
var (
	// square to single-bit bitboard
	sqBb [SqLength]Bitboard

	// distance lookup used by SquareDistance
	squareDistance [SqLength][SqLength]int

	rankBb [8]Bitboard
	fileBb [8]Bitboard

	// pawn attacks indexed by color, then square
	pawnAttacks [2][SqLength]Bitboard

	// king/knight/slider pseudo attacks (empty-board attacks) indexed by
	// piece type, then square
	pseudoAttacks [PtLength][SqLength]Bitboard

	filesWestMask      [SqLength]Bitboard
	filesEastMask      [SqLength]Bitboard
	ranksNorthMask     [SqLength]Bitboard
	ranksSouthMask     [SqLength]Bitboard
	fileWestMask       [SqLength]Bitboard
	fileEastMask       [SqLength]Bitboard
	neighbourFilesMask [SqLength]Bitboard

	// rays holds, per orientation and square, the full ray to the edge of
	// an empty board; GetAttacksBb trims these against blockers at
	// query time instead of indexing a precomputed magic table
	rays [8][SqLength]Bitboard

	intermediate [SqLength][SqLength]Bitboard

	passedPawnMask [2][SqLength]Bitboard

	kingSideCastleMask  [2]Bitboard
	queenSideCastleMask [2]Bitboard

	castlingRights [SqLength]CastlingRights

	squaresBb [2]Bitboard

	centerDistance [SqLength]int
)

// ///////////////////////////////////////
// Initialization
// ///////////////////////////////////////

// initBb pre computes various bitboards to avoid runtime calculation.
func initBb() {
	squareBitboardsPreCompute()
	rankFileBbPreCompute()
	castleMasksPreCompute()
	squareDistancePreCompute()
	neighbourMasksPreCompute()
	pseudoAttacksPreCompute()
	raysPreCompute()
	intermediatePreCompute()
	maskPassedPawnsPreCompute()
	squareColorsPreCompute()
	centerDistancePreCompute()
}

func rankFileBbPreCompute() {
	for i := Rank1; i <= Rank8; i++ {
		rankBb[i] = Rank1_Bb << (8 * i)
	}
	for i := FileA; i <= FileH; i++ {
		fileBb[i] = FileA_Bb << i
	}
}

func castleMasksPreCompute() {
	kingSideCastleMask[White] = sqBb[SqF1] | sqBb[SqG1] | sqBb[SqH1]
	kingSideCastleMask[Black] = sqBb[SqF8] | sqBb[SqG8] | sqBb[SqH8]
	queenSideCastleMask[White] = sqBb[SqD1] | sqBb[SqC1] | sqBb[SqB1] | sqBb[SqA1]
	queenSideCastleMask[Black] = sqBb[SqD8] | sqBb[SqC8] | sqBb[SqB8] | sqBb[SqA8]
	castlingRights[SqE1] = CastlingWhite
	castlingRights[SqA1] = CastlingWhiteOOO
	castlingRights[SqH1] = CastlingWhiteOO
	castlingRights[SqE8] = CastlingBlack
	castlingRights[SqA8] = CastlingBlackOOO
	castlingRights[SqH8] = CastlingBlackOO
}

func squareBitboardsPreCompute() {
	for sq := SqA1; sq < SqNone; sq++ {
		sqBb[sq] = sq.bitboard()
	}
}

// centerDistancePreCompute computes distances to center squares by
// quadrant.
func centerDistancePreCompute() {
	for square := SqA1; square <= SqH8; square++ {
		switch {
		case (sqBb[square] & ranksNorthMask[27] & filesWestMask[36]) != 0:
			centerDistance[square] = squareDistance[square][SqD5]
		case (sqBb[square] & ranksNorthMask[28] & filesEastMask[35]) != 0:
			centerDistance[square] = squareDistance[square][SqE5]
		case (sqBb[square] & ranksSouthMask[35] & filesWestMask[28]) != 0:
			centerDistance[square] = squareDistance[square][SqD4]
		case (sqBb[square] & ranksSouthMask[36] & filesEastMask[27]) != 0:
			centerDistance[square] = squareDistance[square][SqE4]
		}
	}
}

// squareColorsPreCompute builds masks for light/dark squares, useful for
// same-colored-bishop checks and pawn-on-color heuristics.
func squareColorsPreCompute() {
	for square := SqA1; square <= SqH8; square++ {
		f := square.FileOf()
		r := square.RankOf()
		if (int(f)+int(r))%2 == 0 {
			squaresBb[Black] |= BbOne << square
		} else {
			squaresBb[White] |= BbOne << square
		}
	}
}

// maskPassedPawnsPreCompute builds, for each color and square, the mask of
// squares an enemy pawn could occupy to stop a pawn there from being
// passed (its own file and both neighbour files, going forward).
func maskPassedPawnsPreCompute() {
	for square := SqA1; square <= SqH8; square++ {
		f := square.FileOf()
		r := square.RankOf()
		passedPawnMask[White][square] |= rays[N][square]
		if f < 7 && r < 7 {
			passedPawnMask[White][square] |= rays[N][square.To(East)]
		}
		if f > 0 && r < 7 {
			passedPawnMask[White][square] |= rays[N][square.To(West)]
		}
		passedPawnMask[Black][square] |= rays[S][square]
		if f < 7 && r > 0 {
			passedPawnMask[Black][square] |= rays[S][square.To(East)]
		}
		if f > 0 && r > 0 {
			passedPawnMask[Black][square] |= rays[S][square.To(West)]
		}
	}
}

// intermediatePreCompute builds, for every square pair that shares a
// rank/file/diagonal, the mask of squares strictly between them.
func intermediatePreCompute() {
	for from := SqA1; from <= SqH8; from++ {
		for to := SqA1; to <= SqH8; to++ {
			toBB := sqBb[to]
			for o := 0; o < 8; o++ {
				if rays[Orientation(o)][from]&toBB != BbZero {
					intermediate[from][to] |=
						rays[Orientation(o)][from] & ^rays[Orientation(o)][to] & ^toBB
				}
			}
		}
	}
}

// raysPreCompute derives the eight empty-board rays per square from the
// rook/bishop pseudo attacks already computed, split by direction using
// the file/rank masks.
func raysPreCompute() {
	for sq := SqA1; sq <= SqH8; sq++ {
		rays[N][sq] = pseudoAttacks[Rook][sq] & ranksNorthMask[sq]
		rays[E][sq] = pseudoAttacks[Rook][sq] & filesEastMask[sq]
		rays[S][sq] = pseudoAttacks[Rook][sq] & ranksSouthMask[sq]
		rays[W][sq] = pseudoAttacks[Rook][sq] & filesWestMask[sq]

		rays[NW][sq] = pseudoAttacks[Bishop][sq] & filesWestMask[sq] & ranksNorthMask[sq]
		rays[NE][sq] = pseudoAttacks[Bishop][sq] & filesEastMask[sq] & ranksNorthMask[sq]
		rays[SE][sq] = pseudoAttacks[Bishop][sq] & filesEastMask[sq] & ranksSouthMask[sq]
		rays[SW][sq] = pseudoAttacks[Bishop][sq] & filesWestMask[sq] & ranksSouthMask[sq]
	}
}

// neighbourMasksPreCompute builds the file/rank masks left, right, up and
// down from each square.
func neighbourMasksPreCompute() {
	for square := SqA1; square <= SqH8; square++ {
		f := int(square.FileOf())
		r := int(square.RankOf())
		for j := 0; j <= 7; j++ {
			if j < f {
				filesWestMask[square] |= FileA_Bb << j
			}
			if 7-j > f {
				filesEastMask[square] |= FileA_Bb << (7 - j)
			}
			if 7-j > r {
				ranksNorthMask[square] |= Rank1_Bb << (8 * (7 - j))
			}
			if j < r {
				ranksSouthMask[square] |= Rank1_Bb << (8 * j)
			}
		}
		if f > 0 {
			fileWestMask[square] = FileA_Bb << (f - 1)
		}
		if f < 7 {
			fileEastMask[square] = FileA_Bb << (f + 1)
		}
		neighbourFilesMask[square] = fileEastMask[square] | fileWestMask[square]
	}
}

// squareDistancePreCompute builds the Chebyshev distance table between
// every pair of squares.
func squareDistancePreCompute() {
	for sq1 := SqA1; sq1 <= SqH8; sq1++ {
		for sq2 := SqA1; sq2 <= SqH8; sq2++ {
			if sq1 != sq2 {
				squareDistance[sq1][sq2] =
					util.Max(FileDistance(sq1.FileOf(), sq2.FileOf()), RankDistance(sq1.RankOf(), sq2.RankOf()))
			}
		}
	}
}

// pseudoAttacksPreCompute computes, for every piece type and square, the
// attack set on an otherwise empty board. Sliders walk each ray to the
// edge of the board; non-sliders step their fixed offsets and discard any
// that would wrap around an edge.
func pseudoAttacksPreCompute() {
	var steps = [][]Direction{
		{},
		{Northwest, North, Northeast, East, Southeast, South, Southwest, West}, // king
		{Northwest, Northeast},                                                 // pawn
		{West + Northwest, East + Northeast, North + Northwest, North + Northeast,
			West + Southwest, East + Southeast, South + Southwest, South + Southeast}, // knight
	}

	for c := White; c <= Black; c++ {
		for _, pt := range []PieceType{King, Pawn, Knight} {
			for s := SqA1; s <= SqH8; s++ {
				for _, step := range steps[pt] {
					to := Square(int(s) + c.Direction()*int(step))
					if !to.IsValid() || squareDistance[s][to] >= 3 {
						continue
					}
					if pt == Pawn {
						pawnAttacks[c][s] |= sqBb[to]
					} else {
						pseudoAttacks[pt][s] |= sqBb[to]
					}
				}
			}
		}
	}

	rookSteps := [4]Direction{North, East, South, West}
	bishopSteps := [4]Direction{Northeast, Southeast, Southwest, Northwest}
	for square := SqA1; square <= SqH8; square++ {
		for _, d := range rookSteps {
			pseudoAttacks[Rook][square] |= walkRay(square, d)
		}
		for _, d := range bishopSteps {
			pseudoAttacks[Bishop][square] |= walkRay(square, d)
		}
		pseudoAttacks[Queen][square] = pseudoAttacks[Bishop][square] | pseudoAttacks[Rook][square]
	}
}

// walkRay slides one square at a time from sq in direction d until it
// falls off the board, OR-ing in every square visited. Used only to seed
// pseudoAttacks (an empty-board ray) before the rays table exists; once
// rays is built, GetAttacksBb uses slidingAttacks instead since it also
// needs to stop at the first occupied square.
func walkRay(sq Square, d Direction) Bitboard {
	var bb Bitboard
	cur := sq
	for {
		to := cur.To(d)
		if to == SqNone {
			return bb
		}
		bb |= sqBb[to]
		cur = to
	}
}
