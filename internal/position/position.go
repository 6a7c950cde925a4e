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

// Package position holds the chess board representation: an 8x8 piece
// array backed by per piece-type bitboards, an incrementally maintained
// zobrist hash, an undo stack for MakeMove/UnmakeMove, and incrementally
// tracked material, piece-square and game phase values.
//
// Positions are created from a FEN string (or the standard start
// position) and mutated only through MakeMove/UnmakeMove and the null
// move pair.
package position

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/assert"
	myLogging "github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

var log *logging.Logger

func init() {
	initZobrist()
}

// StartFen is the FEN of the standard chess starting position.
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Key is a 64-bit zobrist hash of a position.
type Key uint64

// Position is the engine's board state. All redundant state (bitboards,
// king squares, material, piece-square sums, game phase, both hashes) is
// maintained incrementally on every make/unmake, never recomputed.
//
// Create with NewPosition or FromFen.
type Position struct {
	// hash over pieces, side to move, castling rights and ep file
	zobristKey Key
	// hash over pawn placement only, for the evaluator's pawn cache
	pawnKey Key

	// the unique position
	board           [SqLength]Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	nextPlayer      Color

	// derived state
	kingSquare         [ColorLength]Square
	nextHalfMoveNumber int
	piecesBb           [ColorLength][PtLength]Bitboard
	occupiedBb         [ColorLength]Bitboard

	// undo stack
	historyCounter int
	history        [maxHistory]undoState

	// incremental counters
	material        [ColorLength]Value
	materialNonPawn [ColorLength]Value
	psqMidValue     [ColorLength]Value
	psqEndValue     [ColorLength]Value
	gamePhase       int

	// cached check result for the current position; invalidated by every
	// make/unmake
	hasCheckFlag int
}

// undoState is one frame of the undo stack, holding everything UnmakeMove
// cannot derive from the move itself.
type undoState struct {
	zobristKey      Key
	move            Move
	fromPiece       Piece
	capturedPiece   Piece
	castlingRights  CastlingRights
	enpassantSquare Square
	halfMoveClock   int
	hasCheckFlag    int
}

const maxHistory int = MaxMoves

// tri-state for the cached check flag
const (
	flagTBD   int = 0
	flagFalse int = 1
	flagTrue  int = 2
)

// NewPosition creates a position from the first given FEN, or the
// standard start position when called without arguments. Errors in the
// FEN are logged and yield a nil position; use FromFen to handle them.
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p, _ := FromFen(StartFen)
		return p
	}
	p, _ := FromFen(fen[0])
	return p
}

// FromFen creates a position from a FEN string. The position part is
// mandatory, all later fields default (white to move, no castling, no en
// passant, clocks zero).
func FromFen(fen string) (*Position, error) {
	if log == nil {
		log = myLogging.GetLog()
	}
	p := &Position{}
	if e := p.setupBoard(fen); e != nil {
		log.Errorf("invalid fen, position can't be created: %s", e)
		return nil, e
	}
	return p, nil
}

// MakeMove applies a move to the board. No legality check happens here;
// callers either provide moves from the legal generator or verify with
// WasLegalMove afterwards (the pseudo legal path of the search).
func (p *Position) MakeMove(m Move) {
	fromSq := m.From()
	fromPc := p.board[fromSq]
	myColor := fromPc.ColorOf()
	toSq := m.To()
	targetPc := p.board[toSq]

	if assert.DEBUG {
		assert.Assert(m.IsValid(), "MakeMove: invalid move %s", m.String())
		assert.Assert(fromPc != PieceNone, "MakeMove: no piece on %s for move %s", fromSq.String(), m.StringUci())
		assert.Assert(myColor == p.nextPlayer, "MakeMove: piece %s does not belong to next player", fromPc.String())
		assert.Assert(targetPc.TypeOf() != King, "MakeMove: king cannot be captured (%s)", m.StringUci())
	}

	// push the undo frame; the entry is reused, not allocated
	frame := &p.history[p.historyCounter]
	frame.zobristKey = p.zobristKey
	frame.move = m
	frame.fromPiece = fromPc
	frame.capturedPiece = targetPc
	frame.castlingRights = p.castlingRights
	frame.enpassantSquare = p.enPassantSquare
	frame.halfMoveClock = p.halfMoveClock
	frame.hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	switch m.MoveType() {
	case Normal:
		p.makeNormalMove(fromSq, toSq, targetPc, fromPc, myColor)
	case Promotion:
		p.makePromotionMove(m, fromPc, myColor, toSq, targetPc, fromSq)
	case EnPassant:
		p.makeEnPassantMove(toSq, myColor, fromPc, fromSq)
	case Castling:
		p.makeCastlingMove(fromPc, myColor, toSq, fromSq)
	}

	p.hasCheckFlag = flagTBD
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UnmakeMove reverts the last MakeMove, restoring every field including
// the hash bit for bit from the undo frame.
func (p *Position) UnmakeMove() {
	if assert.DEBUG {
		assert.Assert(p.historyCounter > 0, "UnmakeMove: no move to undo")
	}

	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	frame := &p.history[p.historyCounter]
	move := frame.move

	switch move.MoveType() {
	case Normal:
		p.movePiece(move.To(), move.From())
		if frame.capturedPiece != PieceNone {
			p.putPiece(frame.capturedPiece, move.To())
		}
	case Promotion:
		p.removePiece(move.To())
		p.putPiece(MakePiece(p.nextPlayer, Pawn), move.From())
		if frame.capturedPiece != PieceNone {
			p.putPiece(frame.capturedPiece, move.To())
		}
	case EnPassant:
		p.movePiece(move.To(), move.From())
		p.putPiece(MakePiece(p.nextPlayer.Flip(), Pawn), move.To().To(p.nextPlayer.Flip().MoveDirection()))
	case Castling:
		p.movePiece(move.To(), move.From())
		rook := castlingRookMove(move.To())
		p.movePiece(rook.to, rook.from)
	}

	p.castlingRights = frame.castlingRights
	p.enPassantSquare = frame.enpassantSquare
	p.halfMoveClock = frame.halfMoveClock
	p.hasCheckFlag = frame.hasCheckFlag
	// direct restore, cheaper and safer than XOR-ing everything back out
	p.zobristKey = frame.zobristKey
}

// MakeNullMove passes the turn for null move pruning: the board stays,
// en passant is cleared, side to move flips. State is pushed to the undo
// stack like a regular move.
func (p *Position) MakeNullMove() {
	frame := &p.history[p.historyCounter]
	frame.zobristKey = p.zobristKey
	frame.move = MoveNone
	frame.fromPiece = PieceNone
	frame.capturedPiece = PieceNone
	frame.castlingRights = p.castlingRights
	frame.enpassantSquare = p.enPassantSquare
	frame.halfMoveClock = p.halfMoveClock
	frame.hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	p.hasCheckFlag = flagTBD
	p.clearEnPassant()
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UnmakeNullMove reverts the last MakeNullMove.
func (p *Position) UnmakeNullMove() {
	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	frame := &p.history[p.historyCounter]
	p.castlingRights = frame.castlingRights
	p.enPassantSquare = frame.enpassantSquare
	p.halfMoveClock = frame.halfMoveClock
	p.hasCheckFlag = frame.hasCheckFlag
	p.zobristKey = frame.zobristKey
}

// IsAttacked reports whether the given square is attacked by any piece
// of the given color, testing reverse attacks from the target square.
func (p *Position) IsAttacked(sq Square, by Color) bool {

	// non sliders
	if (GetPawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != 0) ||
		(GetPseudoAttacks(Knight, sq)&p.piecesBb[by][Knight] != 0) ||
		(GetPseudoAttacks(King, sq)&p.piecesBb[by][King] != 0) {
		return true
	}

	// sliders: a piece that we could capture as its own kind attacks us
	occupied := p.Occupied()
	if GetAttacksBb(Bishop, sq, occupied)&p.piecesBb[by][Bishop] > 0 ||
		GetAttacksBb(Rook, sq, occupied)&p.piecesBb[by][Rook] > 0 ||
		GetAttacksBb(Queen, sq, occupied)&p.piecesBb[by][Queen] > 0 {
		return true
	}

	// en passant: the pawn that could be captured sits behind the target
	// square, so the plain pawn attack test above does not see it
	if p.enPassantSquare != SqNone {
		switch by {
		case White:
			if p.board[p.enPassantSquare.To(South)] == BlackPawn &&
				p.enPassantSquare.To(South) == sq {
				if p.board[sq.To(West)] == WhitePawn {
					return true
				}
				return p.board[sq.To(East)] == WhitePawn
			}
		case Black:
			if p.board[p.enPassantSquare.To(North)] == WhitePawn &&
				p.enPassantSquare.To(North) == sq {
				if p.board[sq.To(West)] == BlackPawn {
					return true
				}
				return p.board[sq.To(East)] == BlackPawn
			}
		}
	}
	return false
}

// IsLegalMove reports whether the move leaves the own king unattacked,
// and for castling additionally that king origin and crossing square are
// not attacked.
func (p *Position) IsLegalMove(move Move) bool {
	if move.MoveType() == Castling {
		// no castling out of check and not across an attacked square; the
		// destination square is covered by the king check below
		if p.IsAttacked(move.From(), p.nextPlayer.Flip()) ||
			p.IsAttacked(castlingRookMove(move.To()).to, p.nextPlayer.Flip()) {
			return false
		}
	}
	p.MakeMove(move)
	legal := !p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer)
	p.UnmakeMove()
	return legal
}

// WasLegalMove reports whether the last made move was legal: the moving
// side's king is not attacked now, and a castling did not start from or
// cross an attacked square.
func (p *Position) WasLegalMove() bool {
	if p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer) {
		return false
	}
	if p.historyCounter > 0 {
		move := p.history[p.historyCounter-1].move
		if move.MoveType() == Castling {
			if p.IsAttacked(move.From(), p.nextPlayer) ||
				p.IsAttacked(castlingRookMove(move.To()).to, p.nextPlayer) {
				return false
			}
		}
	}
	return true
}

// HasCheck reports whether the side to move is in check. The result is
// cached until the next make/unmake.
func (p *Position) HasCheck() bool {
	if p.hasCheckFlag != flagTBD {
		return p.hasCheckFlag == flagTrue
	}
	check := p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
	if check {
		p.hasCheckFlag = flagTrue
	} else {
		p.hasCheckFlag = flagFalse
	}
	return check
}

// IsCapturingMove reports whether the move captures, en passant included.
func (p *Position) IsCapturingMove(move Move) bool {
	return p.occupiedBb[p.nextPlayer.Flip()].Has(move.To()) || move.MoveType() == EnPassant
}

// HasRepetitions reports whether the current position occurred at least
// reps times earlier in the game. Threefold repetition is
// HasRepetitions(2). The scan walks the undo stack backwards in steps of
// two and stops at the last irreversible move (half move clock reset).
func (p *Position) HasRepetitions(reps int) bool {
	counter := 0
	i := p.historyCounter - 2
	lastHalfMove := p.halfMoveClock
	for i >= 0 {
		if p.history[i].halfMoveClock >= lastHalfMove {
			break
		}
		lastHalfMove = p.history[i].halfMoveClock
		if p.zobristKey == p.history[i].zobristKey {
			counter++
		}
		if counter >= reps {
			return true
		}
		i -= 2
	}
	return false
}

// HasInsufficientMaterial reports whether neither side can force a mate.
// Helpmates (where the losing side cooperates) are not excluded.
func (p *Position) HasInsufficientMaterial() bool {

	// bare kings
	if p.material[White]+p.material[Black] == 0 {
		return true
	}

	if p.piecesBb[White][Pawn] == 0 && p.piecesBb[Black][Pawn] == 0 {
		// a single minor piece per side at most
		if p.materialNonPawn[White] < 400 && p.materialNonPawn[Black] < 400 {
			return true
		}
		// two knights cannot force mate against a lone minor
		if (p.materialNonPawn[White] == 2*Knight.ValueOf() && p.materialNonPawn[Black] <= Bishop.ValueOf()) ||
			(p.materialNonPawn[Black] == 2*Knight.ValueOf() && p.materialNonPawn[White] <= Bishop.ValueOf()) {
			return true
		}
		// two bishops against one bishop is a book draw
		if (p.materialNonPawn[White] == 2*Bishop.ValueOf() && p.materialNonPawn[Black] == Bishop.ValueOf()) ||
			(p.materialNonPawn[Black] == 2*Bishop.ValueOf() && p.materialNonPawn[White] == Bishop.ValueOf()) {
			return true
		}
		// a full bishop pair can force mate
		if p.materialNonPawn[White] == 2*Bishop.ValueOf() || p.materialNonPawn[Black] == 2*Bishop.ValueOf() {
			return false
		}
		// two minors against one is a draw otherwise
		if (p.materialNonPawn[White] < 2*Bishop.ValueOf() && p.materialNonPawn[Black] <= Bishop.ValueOf()) ||
			(p.materialNonPawn[White] <= Bishop.ValueOf() && p.materialNonPawn[Black] < 2*Bishop.ValueOf()) {
			return true
		}
	}
	return false
}

// GivesCheck reports whether making the move would put the opponent's
// king in check, covering direct checks, revealed checks, the rook in
// castling and the removed pawn in en passant.
func (p *Position) GivesCheck(move Move) bool {
	us := p.nextPlayer
	them := us.Flip()
	kingSq := p.kingSquare[them]

	fromSq := move.From()
	toSq := move.To()
	fromPt := p.board[fromSq].TypeOf()
	epTargetSq := SqNone

	moveType := move.MoveType()
	switch moveType {
	case Promotion:
		// attack with the promoted type
		fromPt = move.PromotionType()
	case Castling:
		// only the rook can give check here, revealed checks are
		// impossible in castling
		fromPt = Rook
		toSq = castlingRookMove(move.To()).to
	case EnPassant:
		epTargetSq = toSq.To(them.MoveDirection())
	}

	// occupancy after the move, needed for ray attacks
	boardAfterMove := p.Occupied()
	boardAfterMove.PopSquare(fromSq)
	boardAfterMove.PushSquare(toSq)
	if moveType == EnPassant {
		boardAfterMove.PopSquare(epTargetSq)
	}

	// direct check
	switch fromPt {
	case Pawn:
		if GetPawnAttacks(us, toSq).Has(kingSq) {
			return true
		}
	case King:
		// a king cannot give check
	default:
		if GetAttacksBb(fromPt, toSq, boardAfterMove).Has(kingSq) {
			return true
		}
	}

	// revealed checks - only sliders can be revealed
	return GetAttacksBb(Bishop, kingSq, boardAfterMove)&p.piecesBb[us][Bishop] > 0 ||
		GetAttacksBb(Rook, kingSq, boardAfterMove)&p.piecesBb[us][Rook] > 0 ||
		GetAttacksBb(Queen, kingSq, boardAfterMove)&p.piecesBb[us][Queen] > 0
}

// String returns FEN, board matrix and the incremental counters.
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.Fen())
	os.WriteString("\n")
	os.WriteString(p.BoardString())
	os.WriteString("\n")
	os.WriteString(fmt.Sprintf("Next Player    : %s\n", p.nextPlayer.String()))
	os.WriteString(fmt.Sprintf("Game Phase     : %d\n", p.gamePhase))
	os.WriteString(fmt.Sprintf("Material White : %d\n", p.material[White]))
	os.WriteString(fmt.Sprintf("Material Black : %d\n", p.material[Black]))
	os.WriteString(fmt.Sprintf("Pos value White: %d/%d\n", p.psqMidValue[White], p.psqEndValue[White]))
	os.WriteString(fmt.Sprintf("Pos value Black: %d/%d\n", p.psqMidValue[Black], p.psqEndValue[Black]))
	return os.String()
}

// Fen returns the position as a six-field FEN string.
func (p *Position) Fen() string {
	var fen strings.Builder
	for r := Rank1; r <= Rank8; r++ {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, Rank8-r)]
			if pc == PieceNone {
				emptySquares++
				continue
			}
			if emptySquares > 0 {
				fen.WriteString(strconv.Itoa(emptySquares))
				emptySquares = 0
			}
			fen.WriteString(pc.String())
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.String())
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())
	fen.WriteString(" ")
	fen.WriteString(p.enPassantSquare.String())
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa((p.nextHalfMoveNumber + 1) / 2))
	return fen.String()
}

// BoardString returns a visual matrix of the board.
func (p *Position) BoardString() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			os.WriteString(p.board[SquareOf(f, Rank8-r)].Char())
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// rookMove describes the rook's part of a castling move.
type rookMove struct {
	from Square
	to   Square
}

// castlingRookMove maps the king's destination square to the rook's move.
func castlingRookMove(kingTo Square) rookMove {
	switch kingTo {
	case SqG1:
		return rookMove{SqH1, SqF1}
	case SqC1:
		return rookMove{SqA1, SqD1}
	case SqG8:
		return rookMove{SqH8, SqF8}
	case SqC8:
		return rookMove{SqA8, SqD8}
	}
	panic("invalid castling destination " + kingTo.String())
}

func (p *Position) makeNormalMove(fromSq Square, toSq Square, targetPc Piece, fromPc Piece, myColor Color) {
	// moving from or to a castling square clears the tied rights
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
		}
	}
	p.clearEnPassant()
	if targetPc != PieceNone {
		p.removePiece(toSq)
		p.halfMoveClock = 0
	} else if fromPc.TypeOf() == Pawn {
		p.halfMoveClock = 0
		if SquareDistance(fromSq, toSq) == 2 {
			// double push - the skipped square becomes the ep target
			p.enPassantSquare = toSq.To(myColor.Flip().MoveDirection())
			p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()] // in
		}
	} else {
		p.halfMoveClock++
	}
	p.movePiece(fromSq, toSq)
}

func (p *Position) makeCastlingMove(fromPc Piece, myColor Color, toSq Square, fromSq Square) {
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, King), "MakeMove: castling but from piece is %s", fromPc.String())
		assert.Assert(p.Occupied()&Intermediate(fromSq, castlingRookMove(toSq).from) == 0,
			"MakeMove: castling path %s blocked", fromSq.String())
	}
	p.movePiece(fromSq, toSq) // king
	rook := castlingRookMove(toSq)
	p.movePiece(rook.from, rook.to)

	p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
	if myColor == White {
		p.castlingRights.Remove(CastlingWhite)
	} else {
		p.castlingRights.Remove(CastlingBlack)
	}
	p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in

	p.clearEnPassant()
	p.halfMoveClock++
}

func (p *Position) makeEnPassantMove(toSq Square, myColor Color, fromPc Piece, fromSq Square) {
	capSq := toSq.To(myColor.Flip().MoveDirection())
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, Pawn), "MakeMove: en passant but from piece is %s", fromPc.String())
		assert.Assert(p.enPassantSquare != SqNone, "MakeMove: en passant without ep square")
		assert.Assert(p.board[capSq] == MakePiece(myColor.Flip(), Pawn), "MakeMove: en passant capture square %s invalid", capSq.String())
	}
	p.removePiece(capSq)
	p.movePiece(fromSq, toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) makePromotionMove(m Move, fromPc Piece, myColor Color, toSq Square, targetPc Piece, fromSq Square) {
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, Pawn), "MakeMove: promotion but from piece is %s", fromPc.String())
		assert.Assert(myColor.PromotionRankBb().Has(toSq), "MakeMove: promotion to wrong rank %s", toSq.String())
	}
	if targetPc != PieceNone {
		p.removePiece(toSq)
	}
	// a rook captured on its home square still clears the right
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
		}
	}
	p.removePiece(fromSq)
	p.putPiece(MakePiece(myColor, m.PromotionType()), toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) movePiece(fromSq Square, toSq Square) {
	p.putPiece(p.removePiece(fromSq), toSq)
}

// putPiece places a piece and updates bitboards, hashes, game phase,
// material and piece-square sums.
func (p *Position) putPiece(piece Piece, square Square) {
	color := piece.ColorOf()
	pieceType := piece.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] == PieceNone, "putPiece: square %s occupied", square.String())
	}

	p.board[square] = piece
	if pieceType == King {
		p.kingSquare[color] = square
	}
	p.piecesBb[color][pieceType].PushSquare(square)
	p.occupiedBb[color].PushSquare(square)

	p.zobristKey ^= zobristBase.pieces[piece][square]
	if pieceType == Pawn {
		p.pawnKey ^= zobristBase.pieces[piece][square]
	}

	p.gamePhase += pieceType.GamePhaseValue()
	if p.gamePhase > GamePhaseMax {
		p.gamePhase = GamePhaseMax
	}
	p.material[color] += pieceType.ValueOf()
	if pieceType > Pawn {
		p.materialNonPawn[color] += pieceType.ValueOf()
	}
	p.psqMidValue[color] += PosMidValue(piece, square)
	p.psqEndValue[color] += PosEndValue(piece, square)
}

// removePiece is the exact inverse of putPiece.
func (p *Position) removePiece(square Square) Piece {
	removed := p.board[square]
	color := removed.ColorOf()
	pieceType := removed.TypeOf()

	if assert.DEBUG {
		assert.Assert(removed != PieceNone, "removePiece: square %s empty", square.String())
	}

	p.board[square] = PieceNone
	p.piecesBb[color][pieceType].PopSquare(square)
	p.occupiedBb[color].PopSquare(square)

	p.zobristKey ^= zobristBase.pieces[removed][square]
	if pieceType == Pawn {
		p.pawnKey ^= zobristBase.pieces[removed][square]
	}

	p.gamePhase -= pieceType.GamePhaseValue()
	if p.gamePhase < 0 {
		p.gamePhase = 0
	}
	p.material[color] -= pieceType.ValueOf()
	if pieceType > Pawn {
		p.materialNonPawn[color] -= pieceType.ValueOf()
	}
	p.psqMidValue[color] -= PosMidValue(removed, square)
	p.psqEndValue[color] -= PosEndValue(removed, square)
	return removed
}

func (p *Position) clearEnPassant() {
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()] // out
		p.enPassantSquare = SqNone
	}
}

var regexFenPos = regexp.MustCompile("[0-8pPnNbBrRqQkK/]+")
var regexWorB = regexp.MustCompile("^[w|b]$")
var regexCastlingRights = regexp.MustCompile("^(K?Q?k?q?|-)$")
var regexEnPassant = regexp.MustCompile("^([a-h][1-8]|-)$")

// setupBoard initializes the position from a FEN string. Only the piece
// placement field is mandatory.
func (p *Position) setupBoard(fen string) error {
	fen = strings.TrimSpace(fen)
	fenParts := strings.Split(fen, " ")

	if len(fenParts) == 0 {
		return errors.New("fen must not be empty")
	}
	if !regexFenPos.MatchString(fenParts[0]) {
		return errors.New("fen position contains invalid characters")
	}

	// FEN starts at a8 and walks ranks downwards
	currentSquare := SqA8
	for _, c := range fenParts[0] {
		if number, e := strconv.Atoi(string(c)); e == nil {
			currentSquare = Square(int(currentSquare) + (number * int(East)))
		} else if c == '/' {
			currentSquare = Square(int(currentSquare) + 2*int(South))
		} else {
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return fmt.Errorf("invalid piece character: %s", string(c))
			}
			p.putPiece(piece, currentSquare)
			currentSquare++
		}
	}
	if currentSquare != SqA2 { // one past h1
		return errors.New("fen position does not cover the whole board")
	}

	p.nextHalfMoveNumber = 1
	p.enPassantSquare = SqNone

	// all remaining fields are optional with defaults

	if len(fenParts) >= 2 {
		if !regexWorB.MatchString(fenParts[1]) {
			return errors.New("fen next player field invalid")
		}
		if fenParts[1] == "b" {
			p.nextPlayer = Black
			p.zobristKey ^= zobristBase.nextPlayer
			p.nextHalfMoveNumber++
		}
	}

	if len(fenParts) >= 3 {
		if !regexCastlingRights.MatchString(fenParts[2]) {
			return errors.New("fen castling rights field invalid")
		}
		if fenParts[2] != "-" {
			for _, c := range fenParts[2] {
				switch c {
				case 'K':
					p.castlingRights.Add(CastlingWhiteOO)
				case 'Q':
					p.castlingRights.Add(CastlingWhiteOOO)
				case 'k':
					p.castlingRights.Add(CastlingBlackOO)
				case 'q':
					p.castlingRights.Add(CastlingBlackOOO)
				}
			}
		}
	}
	p.zobristKey ^= zobristBase.castlingRights[p.castlingRights]

	if len(fenParts) >= 4 {
		if !regexEnPassant.MatchString(fenParts[3]) {
			return errors.New("fen en passant field invalid")
		}
		if fenParts[3] != "-" {
			sq := MakeSquare(fenParts[3])
			if sq.RankOf() != Rank3 && sq.RankOf() != Rank6 {
				return errors.New("fen en passant square not on rank 3 or 6")
			}
			p.enPassantSquare = sq
			p.zobristKey ^= zobristBase.enPassantFile[sq.FileOf()]
		}
	}

	if len(fenParts) >= 5 {
		number, e := strconv.Atoi(fenParts[4])
		if e != nil {
			return e
		}
		p.halfMoveClock = number
	}

	if len(fenParts) >= 6 {
		moveNumber, e := strconv.Atoi(fenParts[5])
		if e != nil {
			return e
		}
		if moveNumber == 0 {
			moveNumber = 1
		}
		p.nextHalfMoveNumber = 2*moveNumber - (1 - int(p.nextPlayer))
	}

	return nil
}

// Hash returns the position's zobrist key.
func (p *Position) Hash() Key {
	return p.zobristKey
}

// PawnKey returns the hash over pawn placement only, used as the key of
// the evaluator's pawn structure cache.
func (p *Position) PawnKey() Key {
	return p.pawnKey
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	return p.nextPlayer
}

// PieceOn returns the piece on the square, PieceNone for empty squares.
func (p *Position) PieceOn(sq Square) Piece {
	return p.board[sq]
}

// Pieces returns the bitboard of one piece type of one color.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// Occupied returns the bitboard of all pieces on the board.
func (p *Position) Occupied() Bitboard {
	return p.occupiedBb[White] | p.occupiedBb[Black]
}

// OccupiedBy returns the bitboard of all pieces of one color.
func (p *Position) OccupiedBy(c Color) Bitboard {
	return p.occupiedBb[c]
}

// GamePhase returns the tapering phase of the position, GamePhaseMax
// (24) with full material down to 0 without any officers.
func (p *Position) GamePhase() int {
	return p.gamePhase
}

// GamePhaseFactor returns the game phase scaled into [0, 1].
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.gamePhase) / GamePhaseMax
}

// EnPassantSquare returns the en passant target square or SqNone.
func (p *Position) EnPassantSquare() Square {
	return p.enPassantSquare
}

// CastlingRights returns the remaining castling rights.
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// KingSquare returns the square of the king of color c.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// HalfMoveClock returns the plies since the last pawn move or capture.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// Material returns the summed piece values of color c.
func (p *Position) Material(c Color) Value {
	return p.material[c]
}

// MaterialNonPawn returns the non-pawn material of color c, the
// zugzwang guard of null move pruning.
func (p *Position) MaterialNonPawn(c Color) Value {
	return p.materialNonPawn[c]
}

// PsqMidValue returns the middlegame piece-square sum of color c.
func (p *Position) PsqMidValue(c Color) Value {
	return p.psqMidValue[c]
}

// PsqEndValue returns the endgame piece-square sum of color c.
func (p *Position) PsqEndValue(c Color) Value {
	return p.psqEndValue[c]
}

// LastMove returns the most recently made move, MoveNone without
// history.
func (p *Position) LastMove() Move {
	if p.historyCounter <= 0 {
		return MoveNone
	}
	return p.history[p.historyCounter-1].move
}

// LastCapturedPiece returns the piece captured by the last move,
// PieceNone for quiet moves or without history.
func (p *Position) LastCapturedPiece() Piece {
	if p.historyCounter <= 0 {
		return PieceNone
	}
	return p.history[p.historyCounter-1].capturedPiece
}

// WasCapturingMove reports whether the last move captured a piece.
func (p *Position) WasCapturingMove() bool {
	return p.LastCapturedPiece() != PieceNone
}
