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

package evaluator

import (
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// evaluatePawns scores the pawn structure of both sides: isolated,
// doubled, passed, blocked, supported and phalanx pawns. The result
// depends only on pawn placement, so it is cached under the position's
// pawn key.
func (e *Evaluator) evaluatePawns() *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0

	if Settings.Eval.UsePawnCache {
		if entry := e.pawnCache.getEntry(e.position.PawnKey()); entry != nil {
			tmpScore.MidGameValue = entry.score.MidGameValue
			tmpScore.EndGameValue = entry.score.EndGameValue
			return &tmpScore
		}
	}

	e.pawnStructure(White)
	e.pawnStructure(Black)

	if Settings.Eval.UsePawnCache {
		e.pawnCache.put(e.position.PawnKey(), &tmpScore)
	}

	return &tmpScore
}

// pawnStructure accumulates the terms for one color into tmpScore, from
// White's view (Black's terms are subtracted).
func (e *Evaluator) pawnStructure(us Color) {
	them := us.Flip()
	myPawns := e.position.Pieces(us, Pawn)
	theirPawns := e.position.Pieces(them, Pawn)
	up := us.MoveDirection()

	var mid, end int16

	for pawns := myPawns; pawns != BbZero; {
		sq := pawns.PopLsb()

		// isolated: no own pawn on a neighbouring file
		if sq.NeighbourFilesMask()&myPawns == BbZero {
			mid += Settings.Eval.PawnIsolatedMidMalus
			end += Settings.Eval.PawnIsolatedEndMalus
		}

		// doubled: another own pawn ahead on the same file
		if sq.PassedPawnMask(us)&sq.FileOf().Bb()&myPawns != BbZero {
			mid += Settings.Eval.PawnDoubledMidMalus
			end += Settings.Eval.PawnDoubledEndMalus
		}

		// passed: no enemy pawn ahead on own or neighbouring files
		if sq.PassedPawnMask(us)&theirPawns == BbZero {
			mid += Settings.Eval.PawnPassedMidBonus
			end += Settings.Eval.PawnPassedEndBonus
		}

		// blocked: the square directly ahead is occupied
		if ShiftBitboard(sq.Bb(), up)&e.allPieces != BbZero {
			mid += Settings.Eval.PawnBlockedMidMalus
			end += Settings.Eval.PawnBlockedEndMalus
		}

		// supported: defended by an own pawn
		if GetPawnAttacks(them, sq)&myPawns != BbZero {
			mid += Settings.Eval.PawnSupportedMidBonus
			end += Settings.Eval.PawnSupportedEndBonus
		}

		// phalanx: an own pawn directly beside it
		if sq.NeighbourFilesMask()&sq.RankOf().Bb()&myPawns != BbZero {
			mid += Settings.Eval.PawnPhalanxMidBonus
			end += Settings.Eval.PawnPhalanxEndBonus
		}
	}

	if us == White {
		tmpScore.MidGameValue += mid
		tmpScore.EndGameValue += end
	} else {
		tmpScore.MidGameValue -= mid
		tmpScore.EndGameValue -= end
	}
}
