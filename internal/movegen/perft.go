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

package movegen

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

var out = message.NewPrinter(language.German)

// Perft counts the leaf nodes of the full legal move tree of a position
// at a given depth. It is the correctness oracle of the move generator:
// the counts for well-known positions are published and any deviation
// points at a generation bug. Besides plain node counts it tallies
// captures, en passant, castling, promotions, checks and mates at the
// leaves.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	stopFlag         bool
}

// NewPerft creates an empty Perft instance.
func NewPerft() *Perft {
	return &Perft{}
}

// Stop aborts a perft run started in another goroutine.
func (perft *Perft) Stop() {
	perft.stopFlag = true
}

// StartPerftMulti runs perft for every depth from startDepth through
// endDepth, with either bulk or on-demand generation.
func (perft *Perft) StartPerftMulti(fen string, startDepth int, endDepth int, onDemandFlag bool) {
	perft.stopFlag = false
	for i := startDepth; i <= endDepth; i++ {
		if perft.stopFlag {
			out.Print("Perft multi depth stopped\n")
			return
		}
		perft.StartPerft(fen, i, onDemandFlag)
	}
}

// StartPerft runs a single perft to the given depth and prints counters
// and timing.
func (perft *Perft) StartPerft(fen string, depth int, onDemandFlag bool) {
	perft.stopFlag = false

	if depth <= 0 {
		depth = 1
	}

	perft.resetCounter()
	p, _ := position.FromFen(fen)
	// one generator per level, the on-demand state must not be shared
	// across recursion levels
	mgList := make([]*Generator, depth+1)
	for i := 0; i <= depth; i++ {
		mgList[i] = NewGenerator()
	}

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", fen)
	out.Printf("-----------------------------------------\n")

	start := time.Now()
	var result uint64
	if onDemandFlag {
		result = perft.walkOnDemand(depth, p, mgList)
	} else {
		result = perft.walkBulk(depth, p, mgList)
	}
	elapsed := time.Since(start)

	if result == 0 {
		out.Print("Perft stopped\n")
		return
	}

	perft.Nodes = result

	out.Printf("Time         : %s\n", elapsed)
	out.Printf("NPS          : %d nps\n", (perft.Nodes*uint64(time.Second.Nanoseconds()))/uint64(elapsed.Nanoseconds()+1))
	out.Printf("Results:\n")
	out.Printf("   Nodes     : %d\n", perft.Nodes)
	out.Printf("   Captures  : %d\n", perft.CaptureCounter)
	out.Printf("   EnPassant : %d\n", perft.EnpassantCounter)
	out.Printf("   Checks    : %d\n", perft.CheckCounter)
	out.Printf("   CheckMates: %d\n", perft.CheckMateCounter)
	out.Printf("   Castles   : %d\n", perft.CastleCounter)
	out.Printf("   Promotions: %d\n", perft.PromotionCounter)
	out.Printf("-----------------------------------------\n")
	out.Printf("Finished PERFT Test for Depth %d\n\n", depth)
}

// walkBulk traverses the tree generating each node's move list in one go.
func (perft *Perft) walkBulk(depth int, p *position.Position, mgList []*Generator) uint64 {
	totalNodes := uint64(0)
	moves := mgList[depth].PseudoLegalMoves(p, GenAll, p.HasCheck())
	for _, move := range *moves {
		if perft.stopFlag {
			return 0
		}
		if depth > 1 {
			p.MakeMove(move)
			if p.WasLegalMove() {
				totalNodes += perft.walkBulk(depth-1, p, mgList)
			}
			p.UnmakeMove()
		} else {
			totalNodes += perft.countLeaf(p, move, mgList)
		}
	}
	return totalNodes
}

// walkOnDemand traverses the tree through the phased generator, the same
// path the search uses.
func (perft *Perft) walkOnDemand(depth int, p *position.Position, mgList []*Generator) uint64 {
	totalNodes := uint64(0)
	mg := mgList[depth]
	hasCheck := p.HasCheck()
	for move := mg.NextMove(p, GenAll, hasCheck); move != MoveNone; move = mg.NextMove(p, GenAll, hasCheck) {
		if perft.stopFlag {
			return 0
		}
		if depth > 1 {
			p.MakeMove(move)
			if p.WasLegalMove() {
				totalNodes += perft.walkOnDemand(depth-1, p, mgList)
			}
			p.UnmakeMove()
		} else {
			totalNodes += perft.countLeaf(p, move, mgList)
		}
	}
	return totalNodes
}

// countLeaf verifies the move's legality and updates the leaf counters.
// Returns 1 for a legal leaf, 0 otherwise.
func (perft *Perft) countLeaf(p *position.Position, move Move, mgList []*Generator) uint64 {
	capture := p.PieceOn(move.To()) != PieceNone
	p.MakeMove(move)
	defer p.UnmakeMove()
	if !p.WasLegalMove() {
		return 0
	}
	switch move.MoveType() {
	case EnPassant:
		perft.EnpassantCounter++
		perft.CaptureCounter++
	case Castling:
		perft.CastleCounter++
	case Promotion:
		perft.PromotionCounter++
	}
	if capture {
		perft.CaptureCounter++
	}
	if p.HasCheck() {
		perft.CheckCounter++
		if !mgList[0].HasLegalMove(p) {
			perft.CheckMateCounter++
		}
	}
	return 1
}

func (perft *Perft) resetCounter() {
	perft.Nodes = 0
	perft.CheckCounter = 0
	perft.CheckMateCounter = 0
	perft.CaptureCounter = 0
	perft.EnpassantCounter = 0
	perft.CastleCounter = 0
	perft.PromotionCounter = 0
}
