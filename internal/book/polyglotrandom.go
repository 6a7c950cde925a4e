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

// polyglotKeys is the 12*64 + 4 + 8 + 1 = 781 constant random-key table
// used to hash a position for Polyglot book lookups. It is deliberately
// a separate table from internal/position's own zobrist keys: Polyglot
// records on disk are only ever meaningful against the table they were
// built with, so mixing the two would silently corrupt lookups.
//
// Piece-square keys are indexed [kind][square] with kind 0-5 the white
// pawn/knight/bishop/rook/queen/king and 6-11 the black pieces in the
// same order.
type polyglotKeys struct {
	pieceSquare  [12][64]uint64
	castle       [4]uint64
	enPassant    [8]uint64
	turn         uint64
}

var polyglotRandom polyglotKeys

// polyglotSeed differs from zobristSeed in internal/position so the two
// tables can never collide even if both PRNGs were the same algorithm.
const polyglotSeed uint64 = 987654321

// polyglotPrng is a xorshift64star generator, the same algorithm
// internal/position/random.go uses, kept local to this package so
// internal/book never depends on internal/position for anything but the
// Game/Position read accessors it needs for lookups.
type polyglotPrng struct {
	s uint64
}

func newPolyglotPrng(seed uint64) *polyglotPrng {
	if seed == 0 {
		seed = 1
	}
	return &polyglotPrng{s: seed}
}

func (r *polyglotPrng) rand64() uint64 {
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	r.s ^= r.s >> 12
	return r.s * 2685821657736338717
}

func init() {
	r := newPolyglotPrng(polyglotSeed)
	for kind := 0; kind < 12; kind++ {
		for sq := 0; sq < 64; sq++ {
			polyglotRandom.pieceSquare[kind][sq] = r.rand64()
		}
	}
	for i := 0; i < 4; i++ {
		polyglotRandom.castle[i] = r.rand64()
	}
	for i := 0; i < 8; i++ {
		polyglotRandom.enPassant[i] = r.rand64()
	}
	polyglotRandom.turn = r.rand64()
}
