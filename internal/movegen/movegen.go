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

// Package movegen generates chess moves on a position. It offers bulk
// generation of pseudo legal and legal move lists as well as a phased
// on-demand generator which produces moves in batches ordered from most
// to least promising, so that a search hitting an early beta cut never
// pays for the moves it did not look at.
package movegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/op/go-logging"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/attacks"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/history"
	myLogging "github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/moveslice"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

var log *logging.Logger

// GenMode selects which classes of moves a generation call produces.
type GenMode int

// Generation modes. GenNonQuiet covers captures, en passant and queen or
// knight promotions. GenQuiet covers everything else including castling
// and rook or bishop under-promotions.
const (
	GenZero     GenMode = 0b00
	GenNonQuiet GenMode = 0b01
	GenQuiet    GenMode = 0b10
	GenAll      GenMode = 0b11
)

// Phases of the on-demand generator. Non quiet moves come first; king
// moves are generated last within each class.
const (
	stageNew = iota
	stagePv
	stagePawnCapture
	stagePieceCapture
	stageKingCapture
	stageQuietCheck
	stagePawnQuiet
	stageCastling
	stagePieceQuiet
	stageKingQuiet
	stageDone
)

// Generator produces moves for a position. All returned move lists are
// owned by the Generator and overwritten by the next generation call;
// callers needing to keep a list must Clone it.
//
// A Generator additionally carries the ordering state the search feeds
// back into it: a PV move to be tried first, two killer moves and a
// pointer to the search's history tables.
type Generator struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice

	// state of the phased on-demand generation
	onDemandMoves  *moveslice.MoveSlice
	onDemandHash   position.Key
	evasionTargets Bitboard
	stage          int8
	takeIndex      int

	killerMoves  [2]Move
	pvMove       Move
	pvMovePushed bool
	historyData  *history.History
}

// NewGenerator creates a move generator. The internal move lists are
// allocated once here and reused afterwards; generation itself does not
// allocate.
func NewGenerator() *Generator {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Generator{
		pseudoLegalMoves: moveslice.NewMoveSlice(MaxMoves),
		legalMoves:       moveslice.NewMoveSlice(MaxMoves),
		onDemandMoves:    moveslice.NewMoveSlice(MaxMoves),
		stage:            stageNew,
		killerMoves:      [2]Move{MoveNone, MoveNone},
		pvMove:           MoveNone,
	}
}

// PseudoLegalMoves generates all pseudo legal moves of the given mode for
// the side to move, sorted most promising first. Castling is generated
// without verifying the king's path against attacks; moves may leave the
// own king in check.
//
// With evasion set (side to move has check) generation is restricted to
// king moves and to moves that capture the checker or block its ray. The
// restriction is a filter for speed, not a legality proof, so a few
// illegal moves may remain in the list.
func (mg *Generator) PseudoLegalMoves(p *position.Position, mode GenMode, evasion bool) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()

	if evasion {
		mg.evasionTargets = mg.findEvasionTargets(p)
	}

	if mode&GenNonQuiet != 0 {
		mg.genPawnMoves(p, GenNonQuiet, evasion, mg.pseudoLegalMoves)
		mg.genPieceMoves(p, GenNonQuiet, evasion, mg.pseudoLegalMoves)
		mg.genKingMoves(p, GenNonQuiet, evasion, mg.pseudoLegalMoves)
	}
	if mode&GenQuiet != 0 {
		mg.genPawnMoves(p, GenQuiet, evasion, mg.pseudoLegalMoves)
		if !evasion { // castling can never evade a check
			mg.genCastlingMoves(p, mg.pseudoLegalMoves)
		}
		mg.genPieceMoves(p, GenQuiet, evasion, mg.pseudoLegalMoves)
		mg.genKingMoves(p, GenQuiet, evasion, mg.pseudoLegalMoves)
	}

	mg.applyOrderingHints(p, mg.pseudoLegalMoves)
	mg.pseudoLegalMoves.Sort()

	// strip the sort values encoded into the upper move bits
	mg.pseudoLegalMoves.ForEach(func(i int) {
		mg.pseudoLegalMoves.Set(i, mg.pseudoLegalMoves.At(i).MoveOf())
	})

	return mg.pseudoLegalMoves
}

// LegalMoves generates all strictly legal moves of the given mode for the
// side to move by filtering the pseudo legal list. This pays a legality
// probe per candidate and is meant for root move lists and protocol
// plumbing, not for inner search nodes.
func (mg *Generator) LegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.PseudoLegalMoves(p, mode, false)
	mg.pseudoLegalMoves.FilterCopy(mg.legalMoves, func(i int) bool {
		return p.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	return mg.legalMoves
}

// NextMove returns the next pseudo legal move for the position, generating
// in phases so that an early beta cut avoids the cost of full generation.
// Returns MoveNone when no moves of the requested mode remain.
//
// The iteration resets itself when called with a different position; to
// restart on the same position call Reset.
//
// A PV move set via SetPvMove is returned first and suppressed when its
// regular phase produces it again. Killer moves are lifted towards the
// front of their phase. With evasion set generation is restricted as in
// PseudoLegalMoves.
func (mg *Generator) NextMove(p *position.Position, mode GenMode, evasion bool) Move {
	// a new position discards any iteration state
	if p.Hash() != mg.onDemandHash {
		mg.onDemandMoves.Clear()
		mg.evasionTargets = BbZero
		mg.stage = stageNew
		mg.pvMovePushed = false
		mg.takeIndex = 0
		mg.onDemandHash = p.Hash()
	}

	if evasion && mg.evasionTargets == BbZero {
		mg.evasionTargets = mg.findEvasionTargets(p)
	}

	// the take index walks over the current batch without popping from
	// the front, so nothing has to be shifted
	if mg.onDemandMoves.Len() == 0 {
		mg.nextBatch(p, mode, evasion)
	}

	if mg.onDemandMoves.Len() != 0 {
		// the PV move was handed out in its own phase; when a later phase
		// regenerates it, skip over it once
		if mg.stage != stagePawnCapture &&
			mg.pvMovePushed &&
			(*mg.onDemandMoves)[mg.takeIndex].MoveOf() == mg.pvMove.MoveOf() {

			mg.takeIndex++
			mg.pvMovePushed = false

			if mg.takeIndex >= mg.onDemandMoves.Len() {
				// the PV move was the last of the batch - refill
				mg.takeIndex = 0
				mg.onDemandMoves.Clear()
				mg.nextBatch(p, mode, evasion)
				if mg.onDemandMoves.Len() == 0 {
					return MoveNone
				}
			}
		}

		move := (*mg.onDemandMoves)[mg.takeIndex].MoveOf()
		mg.takeIndex++
		if mg.takeIndex >= mg.onDemandMoves.Len() {
			mg.takeIndex = 0
			mg.onDemandMoves.Clear()
		}
		return move
	}

	mg.takeIndex = 0
	mg.pvMovePushed = false
	return MoveNone
}

// Reset restarts on-demand iteration from the first phase and clears the
// stored PV move.
func (mg *Generator) Reset() {
	mg.onDemandMoves.Clear()
	mg.evasionTargets = BbZero
	mg.stage = stageNew
	mg.onDemandHash = 0
	mg.pvMove = MoveNone
	mg.pvMovePushed = false
	mg.takeIndex = 0
}

// SetPvMove stores the move the on-demand generator returns first.
func (mg *Generator) SetPvMove(move Move) {
	mg.pvMove = move.MoveOf()
}

// StoreKiller records a quiet move that caused a beta cut at this ply.
// Two killers are kept, newest first; duplicates are not stored twice.
func (mg *Generator) StoreKiller(move Move) {
	moveOf := move.MoveOf()
	if mg.killerMoves[0] == moveOf {
		return
	}
	mg.killerMoves[1] = mg.killerMoves[0]
	mg.killerMoves[0] = moveOf
}

// SetHistoryData hands the search's history tables to the generator so
// quiet moves can be ordered by their past cutoff record.
func (mg *Generator) SetHistoryData(historyData *history.History) {
	mg.historyData = historyData
}

// HasLegalMove reports whether the side to move has at least one legal
// move. It probes piece by piece, roughly most likely movers first, and
// returns on the first verified move. Castling is skipped as any legal
// castling implies a legal king or rook move.
func (mg *Generator) HasLegalMove(p *position.Position) bool {
	us := p.SideToMove()
	usBb := p.OccupiedBy(us)

	// king
	kingSquare := p.KingSquare(us)
	candidates := GetAttacksBb(King, kingSquare, BbZero) &^ usBb
	for candidates != 0 {
		toSquare := candidates.PopLsb()
		if p.IsLegalMove(CreateMove(kingSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}

	myPawns := p.Pieces(us, Pawn)
	occupied := p.Occupied()
	oppBb := p.OccupiedBy(us.Flip())

	// pawn pushes; the double-step set derives from the single-step set
	singles := ShiftBitboard(myPawns, us.MoveDirection()) & ^occupied
	doubles := ShiftBitboard(singles&us.PawnDoubleRank(), us.MoveDirection()) & ^occupied
	for doubles != 0 {
		toSquare := doubles.PopLsb()
		fromSquare := toSquare.To(us.Flip().MoveDirection()).To(us.Flip().MoveDirection())
		if p.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}
	for singles != 0 {
		toSquare := singles.PopLsb()
		fromSquare := toSquare.To(us.Flip().MoveDirection())
		if p.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}

	// pawn captures in both directions, promotions included
	for _, dir := range []Direction{West, East} {
		caps := ShiftBitboard(myPawns, us.MoveDirection()+dir) & oppBb
		for caps != 0 {
			toSquare := caps.PopLsb()
			fromSquare := toSquare.To(us.Flip().MoveDirection() - dir)
			if p.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
				return true
			}
		}
	}

	// knights through queens
	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.Pieces(us, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupied) &^ usBb
			for moves != 0 {
				toSquare := moves.PopLsb()
				if p.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
					return true
				}
			}
		}
	}

	// en passant
	epSquare := p.EnPassantSquare()
	if epSquare != SqNone {
		for _, dir := range []Direction{West, East} {
			from := ShiftBitboard(epSquare.Bb(), us.Flip().MoveDirection()+dir) & myPawns
			if from != 0 {
				fromSquare := from.PopLsb()
				if p.IsLegalMove(CreateMove(fromSquare, fromSquare.To(us.MoveDirection()-dir), EnPassant, PtNone)) {
					return true
				}
			}
		}
	}

	return false
}

var regexUciMove = regexp.MustCompile("([a-h][1-8][a-h][1-8])([NBRQnbrq])?")

// MoveFromUci matches a move in UCI notation against the legal moves of
// the position and returns the matching move, or MoveNone when the string
// does not parse or the move is not legal. String comparison based - keep
// off hot paths.
func (mg *Generator) MoveFromUci(p *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return MoveNone
	}

	movePart := matches[1]
	promotionPart := ""
	if len(matches) == 3 {
		// tolerate upper case promotion letters, common in input files
		promotionPart = strings.ToLower(matches[2])
	}

	mg.LegalMoves(p, GenAll)
	for _, m := range *mg.legalMoves {
		if m.StringUci() == movePart+promotionPart {
			return m
		}
	}
	return MoveNone
}

var regexSanMove = regexp.MustCompile("([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8]|O-O-O|O-O)(=?([NBRQ]))?([!?+#]*)?")

// MoveFromSan matches a move in standard algebraic notation against the
// legal moves of the position and returns the matching move, or MoveNone
// when the string does not parse, matches nothing or is ambiguous.
// String comparison based - keep off hot paths.
func (mg *Generator) MoveFromSan(p *position.Position, sanMove string) Move {
	matches := regexSanMove.FindStringSubmatch(sanMove)
	if matches == nil {
		return MoveNone
	}

	pieceType := matches[1]
	disambFile := matches[2]
	disambRank := matches[3]
	target := matches[4]
	promotion := matches[6]

	movesFound := 0
	moveFromSan := MoveNone

	mg.LegalMoves(p, GenAll)
	for _, genMove := range *mg.legalMoves {

		if genMove.MoveType() == Castling {
			var castlingString string
			switch genMove.To() {
			case SqG1, SqG8:
				castlingString = "O-O"
			case SqC1, SqC8:
				castlingString = "O-O-O"
			default:
				log.Criticalf("castling move to invalid square: %s", genMove.To().String())
				continue
			}
			if castlingString == target {
				moveFromSan = genMove
				movesFound++
				continue
			}
		}

		if genMove.To().String() != target {
			continue
		}

		// piece letter must match; a missing letter means pawn
		legalPt := p.PieceOn(genMove.From()).TypeOf()
		if (len(pieceType) == 0 || legalPt.Char() != pieceType) &&
			(len(pieceType) != 0 || legalPt != Pawn) {
			continue
		}

		if len(disambFile) != 0 && genMove.From().FileOf().String() != disambFile {
			continue
		}
		if len(disambRank) != 0 && genMove.From().RankOf().String() != disambRank {
			continue
		}

		if (len(promotion) != 0 && genMove.PromotionType().Char() != promotion) ||
			(len(promotion) == 0 && genMove.MoveType() == Promotion) {
			continue
		}

		moveFromSan = genMove
		movesFound++
	}

	if movesFound != 1 || !moveFromSan.IsValid() {
		return MoveNone
	}
	return moveFromSan
}

// ValidateMove reports whether the move is legal on the position.
func (mg *Generator) ValidateMove(p *position.Position, move Move) bool {
	if move == MoveNone {
		return false
	}
	for _, m := range *mg.LegalMoves(p, GenAll) {
		if move.MoveOf() == m {
			return true
		}
	}
	return false
}

// PvMove returns the currently stored PV move.
func (mg *Generator) PvMove() Move {
	return mg.pvMove
}

// KillerMoves returns a pointer to the two stored killer moves.
func (mg *Generator) KillerMoves() *[2]Move {
	return &mg.killerMoves
}

// String returns the generator's ordering state for debugging.
func (mg *Generator) String() string {
	return fmt.Sprintf("Generator { stage: %d pv: %s killer1: %s killer2: %s }",
		mg.stage, mg.pvMove.String(), mg.killerMoves[0].String(), mg.killerMoves[1].String())
}

// nextBatch advances the phase machine until at least one move has been
// produced or all phases are exhausted. Each batch is sorted before it is
// handed out.
func (mg *Generator) nextBatch(p *position.Position, mode GenMode, evasion bool) {
	for mg.onDemandMoves.Len() == 0 && mg.stage < stageDone {
		switch mg.stage {
		case stageNew:
			mg.stage = stagePv
			fallthrough
		case stagePv:
			// hand out the PV move before anything is generated, but only
			// when it belongs to the requested mode
			if mg.pvMove != MoveNone {
				switch mode {
				case GenAll:
					mg.pvMovePushed = true
					mg.onDemandMoves.PushBack(mg.pvMove)
				case GenNonQuiet:
					if p.IsCapturingMove(mg.pvMove) {
						mg.pvMovePushed = true
						mg.onDemandMoves.PushBack(mg.pvMove)
					}
				case GenQuiet:
					if !p.IsCapturingMove(mg.pvMove) {
						mg.pvMovePushed = true
						mg.onDemandMoves.PushBack(mg.pvMove)
					}
				}
			}
			if mode&GenNonQuiet != 0 {
				mg.stage = stagePawnCapture
			} else {
				mg.stage = stageQuietCheck
			}
		case stagePawnCapture:
			mg.genPawnMoves(p, GenNonQuiet, evasion, mg.onDemandMoves)
			mg.applyOrderingHints(p, mg.onDemandMoves)
			mg.stage = stagePieceCapture
		case stagePieceCapture:
			mg.genPieceMoves(p, GenNonQuiet, evasion, mg.onDemandMoves)
			mg.applyOrderingHints(p, mg.onDemandMoves)
			mg.stage = stageKingCapture
		case stageKingCapture:
			mg.genKingMoves(p, GenNonQuiet, evasion, mg.onDemandMoves)
			mg.applyOrderingHints(p, mg.onDemandMoves)
			mg.stage = stageQuietCheck
		case stageQuietCheck:
			if mode&GenQuiet != 0 {
				mg.stage = stagePawnQuiet
			} else {
				mg.stage = stageDone
			}
		case stagePawnQuiet:
			mg.genPawnMoves(p, GenQuiet, evasion, mg.onDemandMoves)
			mg.applyOrderingHints(p, mg.onDemandMoves)
			mg.stage = stageCastling
		case stageCastling:
			if !evasion {
				mg.genCastlingMoves(p, mg.onDemandMoves)
				mg.applyOrderingHints(p, mg.onDemandMoves)
			}
			mg.stage = stagePieceQuiet
		case stagePieceQuiet:
			mg.genPieceMoves(p, GenQuiet, evasion, mg.onDemandMoves)
			mg.applyOrderingHints(p, mg.onDemandMoves)
			mg.stage = stageKingQuiet
		case stageKingQuiet:
			mg.genKingMoves(p, GenQuiet, evasion, mg.onDemandMoves)
			mg.applyOrderingHints(p, mg.onDemandMoves)
			mg.stage = stageDone
		case stageDone:
		}
		if mg.onDemandMoves.Len() > 0 {
			mg.onDemandMoves.Sort()
		}
	}
}

// applyOrderingHints bumps the sort values of PV, killer and history
// moves inside the given list.
func (mg *Generator) applyOrderingHints(p *position.Position, moveList *moveslice.MoveSlice) {
	us := p.SideToMove()
	for i := 0; i < len(*moveList); i++ {
		move := &(*moveList)[i]
		switch {
		case move.MoveOf() == mg.pvMove:
			move.SetValue(ValueMax)
		case move.MoveOf() == mg.killerMoves[1]:
			move.SetValue(1000)
		case move.MoveOf() == mg.killerMoves[0]:
			move.SetValue(1001)
		case mg.historyData != nil:
			// quiet moves that caused beta cuts before are bumped by their
			// cutoff count; a counter move to the opponent's last move gets
			// an extra boost
			count := mg.historyData.HistoryCount[us][move.From()][move.To()]
			value := Value(count / 100)
			if mg.historyData.CounterMoves[p.LastMove().From()][p.LastMove().To()] == move.MoveOf() {
				value += 500
			}
			if value > 0 {
				move.SetValue(move.ValueOf() + value)
			}
		}
	}
}

// findEvasionTargets computes the squares a non-king move must target to
// possibly resolve a check: the checker's square and, for a single sliding
// checker, the squares between checker and king. With more than one
// checker only king moves can help and the empty board is returned.
func (mg *Generator) findEvasionTargets(p *position.Position) Bitboard {
	us := p.SideToMove()
	ourKing := p.KingSquare(us)
	targets := attacks.AttacksTo(p, ourKing, us.Flip())
	popCount := targets.PopCount()
	if popCount > 1 {
		return BbZero
	}
	if popCount == 1 {
		checker := targets.Lsb()
		if p.PieceOn(checker).TypeOf() > Knight {
			targets |= Intermediate(checker, ourKing)
		}
	}
	return targets
}

func (mg *Generator) genPawnMoves(p *position.Position, mode GenMode, evasion bool, ml *moveslice.MoveSlice) {
	us := p.SideToMove()
	myPawns := p.Pieces(us, Pawn)
	oppPieces := p.OccupiedBy(us.Flip())
	gamePhase := p.GamePhase()
	piece := MakePiece(us, Pawn)

	if mode&GenNonQuiet != 0 {
		// shift the pawn set towards its capture squares and AND with the
		// opponent's pieces; the from square is recovered by the reverse
		// shift. Sort values put the most valuable victim first, with the
		// promotion piece added on top for capture promotions.
		var tmpCaptures, promCaptures Bitboard

		for _, dir := range []Direction{West, East} {
			tmpCaptures = ShiftBitboard(myPawns, us.MoveDirection()+dir) & oppPieces
			if evasion {
				tmpCaptures &= mg.evasionTargets
			}

			promCaptures = tmpCaptures & us.PromotionRankBb()
			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := toSquare.To(us.Flip().MoveDirection() - dir)
				value := p.PieceOn(toSquare).ValueOf() - (2 * Pawn.ValueOf())
				// under-promotions to rook and bishop are almost always
				// dominated by the queen promotion and sort far below it
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Queen, value+Queen.ValueOf()+5000))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Knight, value+Knight.ValueOf()+1500))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Rook, value+Rook.ValueOf()-Value(5000)))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Bishop, value+Bishop.ValueOf()-Value(5000)))
			}

			tmpCaptures &= ^us.PromotionRankBb()
			for tmpCaptures != 0 {
				toSquare := tmpCaptures.PopLsb()
				fromSquare := toSquare.To(us.Flip().MoveDirection() - dir)
				value := p.PieceOn(toSquare).ValueOf() - p.PieceOn(fromSquare).ValueOf() +
					PosValue(piece, toSquare, gamePhase)
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
			}
		}

		epSquare := p.EnPassantSquare()
		if epSquare != SqNone {
			for _, dir := range []Direction{West, East} {
				tmpCaptures = ShiftBitboard(epSquare.Bb(), us.Flip().MoveDirection()+dir) & myPawns
				if tmpCaptures != 0 {
					fromSquare := tmpCaptures.PopLsb()
					toSquare := fromSquare.To(us.MoveDirection() - dir)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, EnPassant, PtNone, PosValue(piece, toSquare, gamePhase)))
				}
			}
		}

		// queen and knight promotions count as non quiet
		promMoves := ShiftBitboard(myPawns, us.MoveDirection()) &^ p.Occupied() & us.PromotionRankBb()
		if evasion {
			promMoves &= mg.evasionTargets
		}
		for promMoves != 0 {
			toSquare := promMoves.PopLsb()
			fromSquare := toSquare.To(us.Flip().MoveDirection())
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Queen, 2000-Pawn.ValueOf()+Queen.ValueOf()))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Knight, 1500-Pawn.ValueOf()+Knight.ValueOf()))
		}
	}

	if mode&GenQuiet != 0 {
		// single steps to empty squares; the double-step set derives from
		// the single-step set shifted once more
		singles := ShiftBitboard(myPawns, us.MoveDirection()) & ^p.Occupied()
		doubles := ShiftBitboard(singles&us.PawnDoubleRank(), us.MoveDirection()) & ^p.Occupied()

		if evasion {
			singles &= mg.evasionTargets
			doubles &= mg.evasionTargets
		}

		// rook and bishop under-promotions are the only promotions left in
		// the quiet class
		promMoves := singles & us.PromotionRankBb()
		for promMoves != 0 {
			toSquare := promMoves.PopLsb()
			fromSquare := toSquare.To(us.Flip().MoveDirection())
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Rook, Rook.ValueOf()-Value(6000)))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Bishop, Bishop.ValueOf()-Value(6000)))
		}
		for doubles != 0 {
			toSquare := doubles.PopLsb()
			fromSquare := toSquare.To(us.Flip().MoveDirection()).To(us.Flip().MoveDirection())
			value := PosValue(piece, toSquare, gamePhase) - 2000
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
		singles &= ^us.PromotionRankBb()
		for singles != 0 {
			toSquare := singles.PopLsb()
			fromSquare := toSquare.To(us.Flip().MoveDirection())
			value := PosValue(piece, toSquare, gamePhase) - 2000
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}
}

// genCastlingMoves generates pseudo legal castling: rights present and the
// squares between king and rook empty. Whether the king's path is attacked
// is left to the legality filter.
func (mg *Generator) genCastlingMoves(p *position.Position, ml *moveslice.MoveSlice) {
	cr := p.CastlingRights()
	if cr == CastlingNone {
		return
	}
	occupied := p.Occupied()
	if p.SideToMove() == White {
		if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occupied == 0 {
			ml.PushBack(CreateMoveValue(SqE1, SqG1, Castling, PtNone, Value(0)))
		}
		if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occupied == 0 {
			ml.PushBack(CreateMoveValue(SqE1, SqC1, Castling, PtNone, Value(0)))
		}
	} else {
		if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occupied == 0 {
			ml.PushBack(CreateMoveValue(SqE8, SqG8, Castling, PtNone, Value(0)))
		}
		if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occupied == 0 {
			ml.PushBack(CreateMoveValue(SqE8, SqC8, Castling, PtNone, Value(0)))
		}
	}
}

func (mg *Generator) genKingMoves(p *position.Position, mode GenMode, evasion bool, ml *moveslice.MoveSlice) {
	us := p.SideToMove()
	them := us.Flip()
	piece := MakePiece(us, King)
	gamePhase := p.GamePhase()
	fromSquare := p.KingSquare(us)

	pseudoMoves := GetAttacksBb(King, fromSquare, BbZero)

	if mode&GenNonQuiet != 0 {
		captures := pseudoMoves & p.OccupiedBy(them)
		for captures != 0 {
			toSquare := captures.PopLsb()
			// in check, skip king moves onto attacked squares right away
			if !evasion || attacks.AttacksTo(p, toSquare, them).PopCount() == 0 {
				value := 2000 + p.PieceOn(toSquare).ValueOf() - p.PieceOn(fromSquare).ValueOf() + PosValue(piece, toSquare, gamePhase)
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
			}
		}
	}

	if mode&GenQuiet != 0 {
		nonCaptures := pseudoMoves &^ p.Occupied()
		for nonCaptures != 0 {
			toSquare := nonCaptures.PopLsb()
			if !evasion || attacks.AttacksTo(p, toSquare, them).PopCount() == 0 {
				value := PosValue(piece, toSquare, gamePhase) - 2000
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
			}
		}
	}
}

// genPieceMoves generates knight, bishop, rook and queen moves from the
// precomputed attack bitboards.
func (mg *Generator) genPieceMoves(p *position.Position, mode GenMode, evasion bool, ml *moveslice.MoveSlice) {
	us := p.SideToMove()
	gamePhase := p.GamePhase()
	occupied := p.Occupied()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.Pieces(us, pt)
		piece := MakePiece(us, pt)

		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupied)

			if mode&GenNonQuiet != 0 {
				captures := moves & p.OccupiedBy(us.Flip())
				if evasion {
					captures &= mg.evasionTargets
				}
				for captures != 0 {
					toSquare := captures.PopLsb()
					value := 2000 + p.PieceOn(toSquare).ValueOf() - p.PieceOn(fromSquare).ValueOf() + PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
				}
			}

			if mode&GenQuiet != 0 {
				nonCaptures := moves &^ occupied
				if evasion {
					nonCaptures &= mg.evasionTargets
				}
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					value := PosValue(piece, toSquare, gamePhase) - 2000
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
				}
			}
		}
	}
}
