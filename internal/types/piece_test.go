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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakePiece(t *testing.T) {
	assert.Equal(t, WhiteKing, MakePiece(White, King))
	assert.Equal(t, BlackKing, MakePiece(Black, King))
	assert.Equal(t, WhiteKnight, MakePiece(White, Knight))
	assert.Equal(t, BlackKnight, MakePiece(Black, Knight))
	assert.Equal(t, WhitePawn, MakePiece(White, Pawn))
	assert.Equal(t, BlackQueen, MakePiece(Black, Queen))
}

func TestPieceParts(t *testing.T) {
	assert.Equal(t, White, WhiteBishop.ColorOf())
	assert.Equal(t, Black, BlackBishop.ColorOf())
	assert.Equal(t, Bishop, WhiteBishop.TypeOf())
	assert.Equal(t, Bishop, BlackBishop.TypeOf())
}

func TestPieceValueOf(t *testing.T) {
	assert.EqualValues(t, 2000, WhiteKing.ValueOf())
	assert.EqualValues(t, 2000, BlackKing.ValueOf())
	assert.EqualValues(t, 330, WhiteBishop.ValueOf())
	assert.EqualValues(t, 320, BlackKnight.ValueOf())
	assert.EqualValues(t, 100, WhitePawn.ValueOf())
	assert.EqualValues(t, 900, BlackQueen.ValueOf())
	assert.EqualValues(t, 500, WhiteRook.ValueOf())
}

func TestPieceFromChar(t *testing.T) {
	assert.Equal(t, PieceNone, PieceFromChar(""))
	assert.Equal(t, PieceNone, PieceFromChar("nnn"))
	assert.Equal(t, PieceNone, PieceFromChar("-"))
	assert.Equal(t, WhiteKing, PieceFromChar("K"))
	assert.Equal(t, BlackKing, PieceFromChar("k"))
	assert.Equal(t, WhiteKnight, PieceFromChar("N"))
	assert.Equal(t, BlackKnight, PieceFromChar("n"))
}
