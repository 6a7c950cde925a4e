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

// Package history holds the search's feedback tables for move ordering:
// a per (side, from, to) count of beta cutoffs and a table of counter
// moves to the opponent's last move.
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

var out = message.NewPrinter(language.German)

// History is written by the search on every beta cutoff and read by the
// move generator's ordering. Deeper cutoffs add more weight; moves that
// failed to cut pay part of their credit back.
type History struct {
	HistoryCount [2][64][64]int64
	CounterMoves [64][64]Move
}

// NewHistory returns empty tables.
func NewHistory() *History {
	return &History{}
}

// String dumps every non-trivial table slot, one line per from/to pair.
func (h History) String() string {
	sb := strings.Builder{}
	for sf := SqA1; sf < SqNone; sf++ {
		for st := SqA1; st < SqNone; st++ {
			if h.HistoryCount[White][sf][st] == 0 && h.HistoryCount[Black][sf][st] == 0 &&
				h.CounterMoves[sf][st] == MoveNone {
				continue
			}
			sb.WriteString(out.Sprintf("Move=%s%s: ", sf.String(), st.String()))
			for c := White; c <= Black; c++ {
				sb.WriteString(out.Sprintf("%s=%-7d ", c.String(), h.HistoryCount[c][sf][st]))
			}
			sb.WriteString(out.Sprintf("cm=%s\n", h.CounterMoves[sf][st].StringUci()))
		}
	}
	return sb.String()
}
