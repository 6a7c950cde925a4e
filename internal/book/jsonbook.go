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
	"encoding/json"
	"os"
	"strings"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/game"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/movegen"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// WeightedMove is one candidate move for a book position: a UCI move
// string and its selection weight.
type WeightedMove struct {
	Uci    string `json:"uci"`
	Weight int    `json:"weight"`
}

// jsonBookFile is the "positions" wrapper format. The bare FEN->moves map
// format is also accepted; see loadJSONBook.
type jsonBookFile struct {
	Positions []struct {
		Fen   string         `json:"fen"`
		Moves []WeightedMove `json:"moves"`
	} `json:"positions"`
}

// JSONBook is a human-editable opening book keyed by FEN, matching the
// weighting scheme of a JSON-based book reader: the highest-weight legal
// move for the current FEN is returned, ties broken by UCI string.
type JSONBook struct {
	index map[string][]WeightedMove
	mg    *movegen.Generator
}

// NewJSONBook loads a book from path. The file may either map FEN
// strings directly to a list of weighted moves, or wrap them under a
// top-level "positions" array of {fen, moves}.
func NewJSONBook(path string) (*JSONBook, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	index := make(map[string][]WeightedMove)

	var wrapped jsonBookFile
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Positions) > 0 {
		for _, ent := range wrapped.Positions {
			fen := strings.TrimSpace(ent.Fen)
			if fen != "" {
				index[fen] = ent.Moves
			}
		}
		return &JSONBook{index: index, mg: movegen.NewGenerator()}, nil
	}

	var flat map[string][]WeightedMove
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	for fen, moves := range flat {
		index[strings.TrimSpace(fen)] = moves
	}
	return &JSONBook{index: index, mg: movegen.NewGenerator()}, nil
}

// FindMove implements Book.
func (b *JSONBook) FindMove(g *game.Game) (Move, bool) {
	entries, ok := b.index[g.Position().Fen()]
	if !ok || len(entries) == 0 {
		return MoveNone, false
	}
	var moves []Move
	var weights []int
	for _, e := range entries {
		m := b.mg.MoveFromUci(g.Position(), e.Uci)
		if m == MoveNone {
			continue
		}
		w := e.Weight
		if w < 1 {
			w = 1
		}
		moves = append(moves, m)
		weights = append(weights, w)
	}
	return pickHighestWeight(moves, weights)
}
