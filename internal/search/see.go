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
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// seeValue holds the exchange values SEE calculates with, indexed by
// piece type. These are deliberately separate from the material table:
// a king entering an exchange must dominate every other swing, so it
// carries 20000 here instead of the evaluation's king value.
var seeValue = [PtLength]Value{PtNone: 0, King: 20000, Pawn: 100, Knight: 320, Bishop: 330, Rook: 500, Queen: 900}

// see computes the static exchange evaluation of a capture: the material
// swing on the target square assuming both sides keep recapturing with
// their least valuable attacker as long as it pays. Positive means the
// capture wins material.
//
// The swap list is built forward with speculative gains and resolved
// backward with the usual negamax fold over the gain array.
func see(p *position.Position, move Move) Value {

	// en passant always nets a pawn; never a candidate for pruning
	if move.MoveType() == EnPassant {
		return 100
	}

	// at most 32 pieces can take part in an exchange
	var gain [32]Value

	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedType := p.PieceOn(fromSquare).TypeOf()
	sideToCapture := p.SideToMove()

	// occupancy is thinned out piece by piece to reveal x-ray attacks
	occupied := p.Occupied()

	attackers := seeAttacksTo(p, toSquare, White) | seeAttacksTo(p, toSquare, Black)

	gain[ply] = seeValue[p.PieceOn(toSquare).TypeOf()]

	for {
		ply++
		sideToCapture = sideToCapture.Flip()

		// speculative: assume the piece just moved gets taken back
		if move.MoveType() == Promotion {
			gain[ply] = seeValue[move.PromotionType()] - seeValue[Pawn] - gain[ply-1]
		} else {
			gain[ply] = seeValue[movedType] - gain[ply-1]
		}

		// neither continuation can change the sign anymore
		if max(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		attackers.PopSquare(fromSquare)
		occupied.PopSquare(fromSquare)

		// removing the attacker may reveal a slider behind it
		attackers |= revealedAttacks(p, toSquare, occupied, White) |
			revealedAttacks(p, toSquare, occupied, Black)

		fromSquare = leastValuableAttacker(p, attackers, sideToCapture)
		if fromSquare == SqNone {
			break
		}
		movedType = p.PieceOn(fromSquare).TypeOf()
	}

	// fold the swap list back to the root
	ply--
	for ply > 0 {
		gain[ply-1] = -max(-gain[ply-1], gain[ply])
		ply--
	}

	return gain[0]
}

// seeAttacksTo collects all attackers of one color to a square. En
// passant is left out: the move before an en passant capture is never
// itself a capture, so it cannot appear inside an exchange sequence.
func seeAttacksTo(p *position.Position, square Square, color Color) Bitboard {
	occupied := p.Occupied()
	return (GetPawnAttacks(color.Flip(), square) & p.Pieces(color, Pawn)) |
		(GetAttacksBb(Knight, square, occupied) & p.Pieces(color, Knight)) |
		(GetAttacksBb(King, square, occupied) & p.Pieces(color, King)) |
		(GetAttacksBb(Rook, square, occupied) & (p.Pieces(color, Rook) | p.Pieces(color, Queen))) |
		(GetAttacksBb(Bishop, square, occupied) & (p.Pieces(color, Bishop) | p.Pieces(color, Queen)))
}

// revealedAttacks recomputes only the sliding attacks against the given
// reduced occupancy - removing a piece can only ever reveal sliders.
func revealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (GetAttacksBb(Rook, square, occupied) & (p.Pieces(color, Rook) | p.Pieces(color, Queen)) & occupied) |
		(GetAttacksBb(Bishop, square, occupied) & (p.Pieces(color, Bishop) | p.Pieces(color, Queen)) & occupied)
}

// leastValuableAttacker picks the cheapest attacker of the given color
// out of the attacker set, ties broken by lowest square.
func leastValuableAttacker(p *position.Position, attackers Bitboard, color Color) Square {
	for _, pt := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		if set := attackers & p.Pieces(color, pt); set != 0 {
			return set.Lsb()
		}
	}
	return SqNone
}

func max(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
