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

// Package evaluator computes a static value for a chess position in
// centipawns: material, piece-square tables, mobility, piece-specific
// terms (bishop pair, rook files, outposts) and king safety, each as a
// middlegame/endgame pair tapered by the game phase. The evaluation is
// pure - no state of the position is changed - and returned from the
// view of the side to move.
package evaluator

import (
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/attacks"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	myLogging "github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

var out = message.NewPrinter(language.German)

// Evaluator holds the per-evaluation scratch state. One instance is
// reused for every node of a search to avoid allocation; it is not safe
// for concurrent use.
//
// Create with NewEvaluator.
type Evaluator struct {
	log *logging.Logger

	position        *position.Position
	gamePhaseFactor float64
	us              Color
	them            Color
	ourKing         Square
	theirKing       Square
	kingRing        [ColorLength]Bitboard
	allPieces       Bitboard
	ourPieces       Bitboard

	score Score

	attack *attacks.Attacks

	pawnCache *pawnCache
}

// scratch score reused by the per-piece evaluation helpers
var tmpScore = Score{}

// lazy eval thresholds per game phase
var threshold [GamePhaseMax + 1]int16

func init() {
	for i := 0; i <= GamePhaseMax; i++ {
		gamePhaseFactor := float64(i) / GamePhaseMax
		threshold[i] = config.Settings.Eval.LazyEvalThreshold + int16(float64(config.Settings.Eval.LazyEvalThreshold)*gamePhaseFactor)
	}
}

// NewEvaluator creates an Evaluator, with a pawn structure cache when
// configured.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		log:    myLogging.GetLog(),
		attack: attacks.NewAttacks(),
	}
	if config.Settings.Eval.UsePawnCache {
		e.pawnCache = newPawnCache()
	} else {
		e.log.Info("Pawn Cache is disabled in configuration")
	}
	return e
}

// InitEval caches the per-position values the term evaluations share.
// Evaluate calls this itself; tests call it directly to run single terms.
func (e *Evaluator) InitEval(p *position.Position) {
	e.position = p
	e.gamePhaseFactor = p.GamePhaseFactor()
	e.us = p.SideToMove()
	e.them = e.us.Flip()
	e.ourKing = p.KingSquare(e.us)
	e.theirKing = p.KingSquare(e.them)
	e.kingRing[e.us] = GetAttacksBb(King, e.ourKing, BbZero)
	e.kingRing[e.them] = GetAttacksBb(King, e.theirKing, BbZero)
	e.allPieces = p.Occupied()
	e.ourPieces = p.OccupiedBy(e.us)

	e.score.MidGameValue = 0
	e.score.EndGameValue = 0

	if config.Settings.Eval.UseAttacksInEval {
		e.attack.Clear()
	}
}

// Evaluate returns the static value of the position from the view of the
// side to move.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	e.InitEval(p)
	return e.evaluate()
}

// value tapers the accumulated mid/end game scores by the game phase.
func (e *Evaluator) value() Value {
	return e.score.ValueFromScore(e.gamePhaseFactor)
}

// evaluate sums all terms. Every term is accumulated from White's view;
// the final value is flipped for Black to move.
func (e *Evaluator) evaluate() Value {
	// without mating material the position is a draw no matter what the
	// terms would add up to
	if e.position.HasInsufficientMaterial() {
		return ValueDraw
	}

	if config.Settings.Eval.UseMaterialEval {
		e.score.MidGameValue = int16(e.position.Material(White) - e.position.Material(Black))
		e.score.EndGameValue = e.score.MidGameValue
	}

	if config.Settings.Eval.UsePositionalEval {
		e.score.MidGameValue += int16(e.position.PsqMidValue(White) - e.position.PsqMidValue(Black))
		e.score.EndGameValue += int16(e.position.PsqEndValue(White) - e.position.PsqEndValue(Black))
	}

	// small bonus for having the move
	e.score.MidGameValue += config.Settings.Eval.Tempo * int16(e.position.SideToMove().Direction())

	// lazy eval - when material and position alone are already far
	// beyond the threshold the expensive terms won't turn it around
	if config.Settings.Eval.UseLazyEval {
		valueFromScore := e.value()
		th := threshold[e.position.GamePhase()]
		if valueFromScore > Value(th) || valueFromScore < -Value(th) {
			return e.finalEval(valueFromScore)
		}
	}

	if config.Settings.Eval.UsePawnEval {
		e.score.Add(e.evaluatePawns())
	}

	// attack bitboards feed mobility and king safety
	if config.Settings.Eval.UseAttacksInEval {
		e.attack.Compute(e.position)
		if config.Settings.Eval.UseMobility {
			mobility := int16(e.attack.Mobility[White]-e.attack.Mobility[Black]) * config.Settings.Eval.MobilityBonus
			e.score.MidGameValue += mobility
			e.score.EndGameValue += mobility
		}
	}

	if config.Settings.Eval.UseAdvancedPieceEval {
		e.score.Add(e.evalPiece(White, Knight))
		e.score.Sub(e.evalPiece(Black, Knight))
		e.score.Add(e.evalPiece(White, Bishop))
		e.score.Sub(e.evalPiece(Black, Bishop))
		e.score.Add(e.evalPiece(White, Rook))
		e.score.Sub(e.evalPiece(Black, Rook))
		e.score.Add(e.evalPiece(White, Queen))
		e.score.Sub(e.evalPiece(Black, Queen))
	}

	if config.Settings.Eval.UseKingEval {
		e.score.Add(e.evalKing(White))
		e.score.Sub(e.evalKing(Black))
	}

	return e.finalEval(e.value())
}

// finalEval flips the white-view value to the side to move's view.
func (e *Evaluator) finalEval(value Value) Value {
	return value * Value(e.position.SideToMove().Direction())
}

// evalPiece runs the per-piece terms for one piece type of one color.
func (e *Evaluator) evalPiece(c Color, pieceType PieceType) *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0

	pieceBb := e.position.Pieces(c, pieceType)
	if pieceBb == BbZero {
		return &tmpScore
	}

	us := c
	them := us.Flip()

	switch pieceType {
	case Knight:
		for pieceBb != BbZero {
			e.knightEval(us, them, pieceBb.PopLsb())
		}
	case Bishop:
		if pieceBb.PopCount() > 1 {
			tmpScore.MidGameValue += config.Settings.Eval.BishopPairBonus
			tmpScore.EndGameValue += config.Settings.Eval.BishopPairBonus + config.Settings.Eval.BishopPairBonus/2
		}
		for pieceBb != BbZero {
			e.bishopEval(us, them, pieceBb.PopLsb())
		}
	case Rook:
		for pieceBb != BbZero {
			e.rookEval(us, pieceBb.PopLsb())
		}
	case Queen:
		// no queen specific terms yet
	}

	return &tmpScore
}

func (e *Evaluator) knightEval(us Color, them Color, sq Square) {
	// tucked in behind an own pawn
	down := them.MoveDirection()
	if ShiftBitboard(e.position.Pieces(us, Pawn), down)&sq.Bb() > 0 {
		tmpScore.MidGameValue += config.Settings.Eval.MinorBehindPawnBonus
	}

	// outpost: past the half-way line, pawn-supported, out of reach of
	// any enemy pawn advance
	if config.Settings.Eval.UseOutposts && e.isOutpost(us, sq) {
		tmpScore.MidGameValue += config.Settings.Eval.OutpostBonus
		tmpScore.EndGameValue += config.Settings.Eval.OutpostBonus
	}
}

func (e *Evaluator) bishopEval(us Color, them Color, sq Square) {
	down := them.MoveDirection()
	if ShiftBitboard(e.position.Pieces(us, Pawn), down)&sq.Bb() > 0 {
		tmpScore.MidGameValue += config.Settings.Eval.MinorBehindPawnBonus
	}

	// own pawns on the bishop's square color hem it in, worst in endgames
	if SquaresBb(White).Has(sq) {
		popCount := int16((e.position.Pieces(us, Pawn) & SquaresBb(White)).PopCount())
		tmpScore.EndGameValue -= config.Settings.Eval.BishopPawnMalus * popCount
	} else {
		popCount := int16((e.position.Pieces(us, Pawn) & SquaresBb(Black)).PopCount())
		tmpScore.EndGameValue -= config.Settings.Eval.BishopPawnMalus * popCount
	}

	// aiming at the center on a long diagonal
	popCount := int16((GetAttacksBb(Bishop, sq, BbZero) & CenterSquares).PopCount())
	tmpScore.MidGameValue += config.Settings.Eval.BishopCenterAimBonus * popCount

	// completely blocked in on the back rank
	if (us == White && sq.RankOf() == Rank1) || (us == Black && sq.RankOf() == Rank8) {
		if GetAttacksBb(Bishop, sq, e.allPieces)&^e.position.OccupiedBy(us) == BbZero {
			tmpScore.MidGameValue -= config.Settings.Eval.BishopBlockedMalus
			tmpScore.EndGameValue -= config.Settings.Eval.BishopBlockedMalus
		}
	}
}

func (e *Evaluator) rookEval(us Color, sq Square) {
	// lined up with a queen
	if sq.FileOf().Bb()&e.position.Pieces(us, Queen) > 0 {
		tmpScore.MidGameValue += config.Settings.Eval.RookOnQueenFileBonus
		tmpScore.EndGameValue += config.Settings.Eval.RookOnQueenFileBonus
	}

	// open or semi open file (no own pawns); fully open (no pawns at
	// all) gets the bonus twice
	if sq.FileOf().Bb()&e.position.Pieces(us, Pawn) == 0 {
		tmpScore.MidGameValue += config.Settings.Eval.RookOnOpenFileBonus
		if sq.FileOf().Bb()&e.position.Pieces(us.Flip(), Pawn) == 0 {
			tmpScore.MidGameValue += config.Settings.Eval.RookOnOpenFileBonus
		}
	}

	// trapped outside of a castled king
	kingSquare := e.position.KingSquare(us)
	if KingSideCastleMask(us).Has(kingSquare) {
		if sq.RankOf() == kingSquare.RankOf() && sq > kingSquare {
			tmpScore.MidGameValue -= config.Settings.Eval.RookTrappedMalus
		}
	} else if QueenSideCastMask(us).Has(kingSquare) {
		if sq.RankOf() == kingSquare.RankOf() && sq < kingSquare {
			tmpScore.MidGameValue -= config.Settings.Eval.RookTrappedMalus
		}
	}

	// rook on the seventh rank (second for Black)
	if (us == White && sq.RankOf() == Rank7) || (us == Black && sq.RankOf() == Rank2) {
		tmpScore.MidGameValue += config.Settings.Eval.RookOnSeventhBonus
		tmpScore.EndGameValue += config.Settings.Eval.RookOnSeventhBonus
	}
}

// isOutpost reports whether a knight on sq stands past the half-way line
// from us's perspective, is defended by an own pawn, and can never be
// attacked by an enemy pawn.
func (e *Evaluator) isOutpost(us Color, sq Square) bool {
	rank := sq.RankOf()
	var onEnemyHalf bool
	if us == White {
		onEnemyHalf = rank >= Rank5
	} else {
		onEnemyHalf = rank <= Rank4
	}
	if !onEnemyHalf {
		return false
	}
	them := us.Flip()
	down := them.MoveDirection()
	if ShiftBitboard(e.position.Pieces(us, Pawn), down)&sq.Bb() == BbZero {
		return false
	}
	return sq.PassedPawnMask(us)&e.position.Pieces(them, Pawn) == BbZero
}

func (e *Evaluator) evalKing(c Color) *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0
	us := c
	them := us.Flip()

	// pawn shield in front of a castled king, middlegame only
	if KingSideCastleMask(us).Has(e.position.KingSquare(us)) {
		count := int16((ShiftBitboard(KingSideCastleMask(us), us.MoveDirection()) & e.position.Pieces(us, Pawn)).PopCount())
		tmpScore.MidGameValue += count * config.Settings.Eval.KingCastlePawnShieldBonus
	} else if QueenSideCastMask(us).Has(e.position.KingSquare(us)) {
		count := int16((ShiftBitboard(QueenSideCastMask(us), us.MoveDirection()) & e.position.Pieces(us, Pawn)).PopCount())
		tmpScore.MidGameValue += count * config.Settings.Eval.KingCastlePawnShieldBonus
	}

	// king ring pressure: squares around the king attacked by them vs
	// defended by us
	if config.Settings.Eval.UseAttacksInEval {
		enemyAttacks := (e.kingRing[us] & e.attack.All[them]).PopCount()
		ourDefence := (e.kingRing[us] & e.attack.All[us]).PopCount()
		if enemyAttacks > ourDefence {
			malus := int16(enemyAttacks-ourDefence) * config.Settings.Eval.KingDangerMalus
			tmpScore.MidGameValue -= malus
			tmpScore.EndGameValue -= malus / 2
		} else {
			bonus := int16(ourDefence-enemyAttacks) * config.Settings.Eval.KingDefenderBonus
			tmpScore.MidGameValue += bonus
			tmpScore.EndGameValue += bonus / 2
		}

		// we put pressure on their king's ring
		if a := e.attack.All[us] & e.kingRing[them]; a > 0 {
			tmpScore.MidGameValue += config.Settings.Eval.KingRingAttacksBonus
			tmpScore.EndGameValue += config.Settings.Eval.KingRingAttacksBonus
		}
	}
	return &tmpScore
}

// Report returns a readable evaluation summary for debugging.
func (e *Evaluator) Report(p *position.Position) string {
	var report strings.Builder
	value := e.Evaluate(p)
	report.WriteString("Evaluation Report\n")
	report.WriteString("=============================================\n")
	report.WriteString(out.Sprintf("Position        : %s\n", p.Fen()))
	report.WriteString(out.Sprintf("%s\n", p.BoardString()))
	report.WriteString(out.Sprintf("GamePhase Factor: %f\n", p.GamePhaseFactor()))
	report.WriteString(out.Sprintf("Material        : %d\n", p.Material(White)-p.Material(Black)))
	report.WriteString(out.Sprintf("Positional      : %d/%d\n",
		p.PsqMidValue(White)-p.PsqMidValue(Black), p.PsqEndValue(White)-p.PsqEndValue(Black)))
	report.WriteString(out.Sprintf("Eval value      : %d (from the view of %s)\n", value, p.SideToMove().String()))
	return report.String()
}
