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

package config

// searchConfiguration holds every switch and parameter of the search.
// Each pruning and ordering technique can be turned off independently
// for debugging and regression comparisons.
type searchConfiguration struct {
	// opening book
	UseBook    bool
	BookPath   string
	BookFile   string
	BookFormat string

	// UCI exposed options
	TTSize    int
	MultiPV   int
	UsePonder bool

	// quiescence search
	UseQuiescence bool
	UseQSStandpat bool
	UseQSTT       bool
	UseSEE        bool
	SeeMaxDepth   int

	// move ordering
	UsePVS            bool
	UseKiller         bool
	UseCounterMoves   bool
	UseHistoryCounter bool

	// transposition table
	UseTT      bool
	UseTTMove  bool
	UseTTValue bool
	UseEvalTT  bool

	// null move pruning
	UseNullMove  bool
	NmpDepth     int
	NmpReduction int

	// internal iterative deepening
	UseIID       bool
	IIDDepth     int
	IIDReduction int

	// search extensions
	UseExt         bool
	UseExtAddDepth bool
	UseCheckExt    bool
	UseThreatExt   bool

	// forward prunings and reductions
	UseRFP           bool
	UseMDP           bool
	UseLmp           bool
	UseFP            bool
	UseLmr           bool
	LmrDepth         int
	LmrMovesSearched int

	// iterative deepening window strategy
	UseAspiration bool
}

// defaults, overridable from the config file
func init() {
	Settings.Search.UseBook = false
	Settings.Search.BookPath = "./assets/books"
	Settings.Search.BookFile = "book.bin"
	Settings.Search.BookFormat = "Polyglot"

	Settings.Search.TTSize = 16
	Settings.Search.MultiPV = 1
	Settings.Search.UsePonder = true

	Settings.Search.UseQuiescence = true
	Settings.Search.UseQSStandpat = true
	Settings.Search.UseQSTT = true
	Settings.Search.UseSEE = true
	Settings.Search.SeeMaxDepth = 2

	Settings.Search.UsePVS = true
	Settings.Search.UseKiller = true
	Settings.Search.UseCounterMoves = true
	Settings.Search.UseHistoryCounter = true

	Settings.Search.UseTT = true
	Settings.Search.UseTTMove = true
	Settings.Search.UseTTValue = true
	Settings.Search.UseEvalTT = false

	Settings.Search.UseNullMove = true
	Settings.Search.NmpDepth = 3
	Settings.Search.NmpReduction = 2

	Settings.Search.UseIID = true
	Settings.Search.IIDDepth = 5
	Settings.Search.IIDReduction = 2

	Settings.Search.UseExt = true
	Settings.Search.UseExtAddDepth = true
	Settings.Search.UseCheckExt = true
	Settings.Search.UseThreatExt = false

	Settings.Search.UseRFP = true
	Settings.Search.UseMDP = true
	Settings.Search.UseLmp = true
	Settings.Search.UseFP = true
	Settings.Search.UseLmr = true
	Settings.Search.LmrDepth = 3
	Settings.Search.LmrMovesSearched = 4

	Settings.Search.UseAspiration = true
}

// setupSearch applies non-trivial fixups after the config file has been
// read. Nothing to do currently; plain values are decoded directly.
func setupSearch() {
}
