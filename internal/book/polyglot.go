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

package book

import (
	"encoding/binary"
	"errors"
	"os"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/game"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/movegen"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

const polyglotRecordSize = 16

type polyglotEntry struct {
	move   uint16
	weight uint16
}

// PolyglotBook reads a binary opening book: a flat array of 16-byte
// records (8-byte big-endian key, 2-byte move, 2-byte weight, 4-byte
// learn counter we never use), sorted or not, indexed here into an
// in-memory map keyed by the Polyglot-style position hash.
type PolyglotBook struct {
	index map[uint64][]polyglotEntry
	mg    *movegen.Generator
}

// NewPolyglotBook reads the whole file at path into memory.
func NewPolyglotBook(path string) (*PolyglotBook, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw)%polyglotRecordSize != 0 {
		return nil, errors.New("book: invalid polyglot file size")
	}
	index := make(map[uint64][]polyglotEntry)
	for i := 0; i < len(raw); i += polyglotRecordSize {
		rec := raw[i : i+polyglotRecordSize]
		key := binary.BigEndian.Uint64(rec[0:8])
		mv := binary.BigEndian.Uint16(rec[8:10])
		weight := binary.BigEndian.Uint16(rec[10:12])
		index[key] = append(index[key], polyglotEntry{move: mv, weight: weight})
	}
	return &PolyglotBook{index: index, mg: movegen.NewGenerator()}, nil
}

// FindMove implements Book.
func (b *PolyglotBook) FindMove(g *game.Game) (Move, bool) {
	key := polyglotHash(g.Position())
	entries, ok := b.index[key]
	if !ok || len(entries) == 0 {
		return MoveNone, false
	}
	var moves []Move
	var weights []int
	for _, e := range entries {
		from, to, promo := decodePolyglotMove(e.move)
		m := findLegalMatch(b.mg, g.Position(), from, to, promo)
		if m == MoveNone {
			continue
		}
		moves = append(moves, m)
		weights = append(weights, int(e.weight))
	}
	return pickHighestWeight(moves, weights)
}

// decodePolyglotMove splits a packed 16-bit Polyglot move into
// from-square, to-square and promotion piece type (PtNone if none).
func decodePolyglotMove(mv16 uint16) (from, to Square, promo PieceType) {
	from = Square(mv16 & 0x3F)
	to = Square((mv16 >> 6) & 0x3F)
	switch (mv16 >> 12) & 0x7 {
	case 1:
		promo = Knight
	case 2:
		promo = Bishop
	case 3:
		promo = Rook
	case 4:
		promo = Queen
	default:
		promo = PtNone
	}
	return
}

// findLegalMatch returns the legal move on p whose from/to/promotion
// triple matches, or MoveNone. Polyglot move encoding does not carry the
// engine's MoveType (castling, en passant), so candidates are matched on
// square pair and promotion type only.
func findLegalMatch(mg *movegen.Generator, p *position.Position, from, to Square, promo PieceType) Move {
	legal := mg.LegalMoves(p, movegen.GenAll)
	for i := 0; i < legal.Len(); i++ {
		m := legal.At(i)
		if m.From() == from && m.To() == to {
			if m.MoveType() != Promotion || m.PromotionType() == promo {
				return m
			}
		}
	}
	return MoveNone
}

// polyglotHash computes the Polyglot-style hash of p using this
// package's own 781-constant table, independent of internal/position's
// search-facing zobrist key.
func polyglotHash(p *position.Position) uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for _, pt := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
			kind := polyglotKind(c, pt)
			bb := p.Pieces(c, pt)
			for bb != BbZero {
				sq := bb.PopLsb()
				h ^= polyglotRandom.pieceSquare[kind][sq]
			}
		}
	}
	// each remaining right XORs its own key
	cr := p.CastlingRights()
	if cr.Has(CastlingWhiteOO) {
		h ^= polyglotRandom.castle[0]
	}
	if cr.Has(CastlingWhiteOOO) {
		h ^= polyglotRandom.castle[1]
	}
	if cr.Has(CastlingBlackOO) {
		h ^= polyglotRandom.castle[2]
	}
	if cr.Has(CastlingBlackOOO) {
		h ^= polyglotRandom.castle[3]
	}
	if ep := p.EnPassantSquare(); ep.IsValid() && polyglotEpCaptureAvailable(p, ep) {
		h ^= polyglotRandom.enPassant[ep.FileOf()]
	}
	if p.SideToMove() == Black {
		h ^= polyglotRandom.turn
	}
	return h
}

// polyglotKind maps a (color, piece type) pair to this table's 0-11
// piece index: white pawn..king then black pawn..king.
func polyglotKind(c Color, pt PieceType) int {
	var idx int
	switch pt {
	case Pawn:
		idx = 0
	case Knight:
		idx = 1
	case Bishop:
		idx = 2
	case Rook:
		idx = 3
	case Queen:
		idx = 4
	case King:
		idx = 5
	}
	if c == Black {
		idx += 6
	}
	return idx
}

// polyglotEpCaptureAvailable reports whether a pawn of the side to move
// actually threatens the en passant square, matching the Polyglot
// convention of only hashing in the ep file when a capture is legally
// possible, not merely whenever the previous move was a double push.
func polyglotEpCaptureAvailable(p *position.Position, ep Square) bool {
	us := p.SideToMove()
	pawns := p.Pieces(us, Pawn)
	return GetPawnAttacks(us.Flip(), ep)&pawns != 0
}
