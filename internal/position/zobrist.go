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
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// zobristKeys holds one random 64-bit key per (piece, square), one per
// castling rights combination, one per en passant file and one for
// side-to-move, so a position's hash can be maintained incrementally by
// XOR-ing keys in and out as MakeMove/UnmakeMove touch the board.
type zobristKeys struct {
	pieces         [PieceLength][SqLength]Key
	castlingRights [CastlingRightsLength]Key
	enPassantFile  [8]Key
	nextPlayer     Key
}

// zobristBase is the single process-wide table of zobrist keys. It is
// seeded once at package init and never mutated afterwards.
var zobristBase zobristKeys

// zobristSeed is an arbitrary non-zero seed for the key generator. It is
// fixed so zobrist keys - and therefore transposition table contents -
// are reproducible across runs of the same binary.
const zobristSeed uint64 = 123456789

// initZobrist fills zobristBase with pseudo-random 64-bit keys drawn from
// the xorshift64star generator in random.go.
func initZobrist() {
	r := NewRandom(zobristSeed)
	for pc := PieceNone; pc < PieceLength; pc++ {
		for sq := SqA1; sq < SqNone; sq++ {
			zobristBase.pieces[pc][sq] = Key(r.Rand64())
		}
	}
	for cr := CastlingNone; cr < CastlingRightsLength; cr++ {
		zobristBase.castlingRights[cr] = Key(r.Rand64())
	}
	for f := FileA; f <= FileH; f++ {
		zobristBase.enPassantFile[f] = Key(r.Rand64())
	}
	zobristBase.nextPlayer = Key(r.Rand64())
}

// HashFromScratch recomputes the position's zobrist key from the board
// state alone. It is the oracle the incremental hash is tested against
// and is not used on any hot path.
func (p *Position) HashFromScratch() Key {
	var key Key
	for sq := SqA1; sq < SqNone; sq++ {
		if pc := p.board[sq]; pc != PieceNone {
			key ^= zobristBase.pieces[pc][sq]
		}
	}
	if p.nextPlayer == Black {
		key ^= zobristBase.nextPlayer
	}
	key ^= zobristBase.castlingRights[p.castlingRights]
	if p.enPassantSquare != SqNone {
		key ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()]
	}
	return key
}
