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
	"github.com/TobiasAlexanderWulff/chess-engine/internal/moveslice"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// Statistics collects per-search counters for every pruning, extension
// and table interaction, plus the live state the UCI info emission reads.
// None of these are needed for a correct search result; they exist to
// judge the effect of each technique and to fill info lines.
type Statistics struct {
	// iterative deepening / aspiration
	BestMoveChange       uint64
	AspirationResearches uint64
	AspirationFailHigh   uint64
	AspirationFailLow    uint64

	// quiescence nodes (also contained in the total node count)
	QNodesVisited uint64

	// cutoffs and move ordering quality
	BetaCuts    uint64
	BetaCuts1st uint64

	// forward prunings
	RfpPrunings uint64
	FpPrunings  uint64
	QFpPrunings uint64
	SeePrunings uint64
	LmpCuts     uint64
	Mdp         uint64

	// null move search
	NullMoveCuts uint64
	NMPMateAlpha uint64
	NMPMateBeta  uint64

	// extensions
	CheckExtension  uint64
	ThreatExtension uint64
	CheckInQS       uint64

	// late move reductions
	LmrReductions uint64
	LmrResearches uint64

	// principal variation search
	RootPvsResearches uint64
	PvsResearches     uint64

	// internal iterative deepening
	IIDsearches uint64
	IIDmoves    uint64

	// transposition table
	TTHit      uint64
	TTMiss     uint64
	TTMoveUsed uint64
	NoTTMove   uint64
	TTCuts     uint64
	TTNoCuts   uint64

	// evaluation
	LeafPositionsEvaluated uint64
	Evaluations            uint64
	EvaluationsFromTT      uint64
	StandpatCuts           uint64

	// terminal nodes
	Checkmates uint64
	Stalemates uint64

	// live search state for info emission
	CurrentIterationDepth    int
	CurrentSearchDepth       int
	CurrentExtraSearchDepth  int
	CurrentVariation         moveslice.MoveSlice
	CurrentRootMoveIndex     int
	CurrentRootMove          Move
	CurrentBestRootMove      Move
	CurrentBestRootMoveValue Value
}

func (s *Statistics) String() string {
	return out.Sprintf("%+v", *s)
}
