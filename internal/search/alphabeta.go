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
	golog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/assert"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/movegen"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/moveslice"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/transpositiontable"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/util"
)

var trace = false

// rootSearch drives the alpha beta search over the root move list. Root
// moves keep their value from the previous iteration for sorting, and the
// best move of the previous iteration is searched first, so pv[0][0] is
// always a fully searched move even when the iteration gets cut short.
func (s *Search) rootSearch(p *position.Position, depth int, alpha Value, beta Value) {
	if trace {
		s.slog.Debugf("Ply %-2.d Depth %-2.d start: %s", 0, depth, s.statistics.CurrentVariation.StringUci())
		defer s.slog.Debugf("Ply %-2.d Depth %-2.d end: %s", 0, depth, s.statistics.CurrentVariation.StringUci())
	}

	bestNodeValue := ValueNA
	var value Value

	for i, m := range *s.rootMoves {

		p.MakeMove(m)
		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(m)
		s.statistics.CurrentRootMoveIndex = i
		s.statistics.CurrentRootMove = m

		if s.checkDrawRepAnd50(p, 2) {
			value = ValueDraw
		} else {
			// PVS at the root: first move full window, the rest through a
			// null window probe with re-search on an alpha raise
			if !Settings.Search.UsePVS || i == 0 {
				value = -s.negamax(p, depth-1, 1, -beta, -alpha, true, true)
			} else {
				value = -s.negamax(p, depth-1, 1, -alpha-1, -alpha, false, true)
				if value > alpha && value < beta && !s.stopConditions() {
					s.statistics.RootPvsResearches++
					value = -s.negamax(p, depth-1, 1, -beta, -alpha, true, true)
				}
			}
		}

		s.statistics.CurrentVariation.PopBack()
		p.UnmakeMove()

		// depth 1 always completes so there is always a best move to play;
		// beyond that the stop flag wins
		if s.stopConditions() && depth > 1 {
			return
		}

		// remember the value for root move sorting in the next iteration
		s.rootMoves.Set(i, m.SetValue(value))

		if value > bestNodeValue {
			bestNodeValue = value
			savePV(m, s.pv[1], s.pv[0])
		}
	}
}

// negamax is the recursive alpha beta search below the root. At depth 0
// it drops into quiescence search. All forward pruning happens here.
func (s *Search) negamax(p *position.Position, depth int, ply int, alpha Value, beta Value, isPV bool, doNull bool) Value {
	if trace {
		s.slog.Debugf("%0*s Ply %-2.d Depth %-2.d a:%-6.d b:%-6.d pv:%-6.v start:  %s", ply, "", ply, depth, alpha, beta, isPV, s.statistics.CurrentVariation.StringUci())
		defer s.slog.Debugf("%0*s Ply %-2.d Depth %-2.d a:%-6.d b:%-6.d pv:%-6.v end  :  %s", ply, "", ply, depth, alpha, beta, isPV, s.statistics.CurrentVariation.StringUci())
	}

	// the stop flag is polled at every node entry; a stopped search
	// unwinds without storing anything
	if s.stopConditions() {
		return ValueNA
	}

	if depth == 0 || ply >= MaxDepth {
		return s.qsearch(p, ply, alpha, beta, isPV)
	}

	// mate distance pruning - a shorter mate has already been found
	if Settings.Search.UseMDP {
		if alpha < -ValueCheckMate+Value(ply) {
			alpha = -ValueCheckMate + Value(ply)
		}
		if beta > ValueCheckMate-Value(ply) {
			beta = ValueCheckMate - Value(ply)
		}
		if alpha >= beta {
			s.statistics.Mdp++
			return alpha
		}
	}

	us := p.SideToMove()
	bestNodeValue := ValueNA
	bestNodeMove := MoveNone
	ttMove := MoveNone
	ttType := UPPER
	hasCheck := p.HasCheck()
	matethreat := false

	// TT lookup. A stored move is searched first regardless of depth; a
	// stored value is only usable from an equal or deeper search, and
	// bound entries only cut when they fall outside the current window.
	var ttEntry *transpositiontable.TtEntry
	if Settings.Search.UseTT {
		ttEntry = s.tt.Probe(p.Hash())
		if ttEntry != nil {
			s.statistics.TTHit++
			ttMove = ttEntry.Move()
			if int(ttEntry.Depth()) >= depth {
				ttValue := valueFromTT(ttEntry.Value(), ply)
				cut := false
				switch {
				case !ttValue.IsValid():
					cut = false
				case ttEntry.Flag() == EXACT:
					cut = true
				case ttEntry.Flag() == UPPER && ttValue <= alpha:
					cut = true
				case ttEntry.Flag() == LOWER && ttValue >= beta:
					cut = true
				}
				if cut && Settings.Search.UseTTValue {
					// only an EXACT hit carries a line worth reporting;
					// bound hits cut without contributing a PV
					if ttEntry.Flag() == EXACT {
						s.getPVLine(p, s.pv[ply], depth)
					} else {
						s.pv[ply].Clear()
					}
					s.statistics.TTCuts++
					return ttValue
				}
				s.statistics.TTNoCuts++
			}
		} else {
			s.statistics.TTMiss++
		}
	}

	// reverse futility pruning - the static eval is so far above beta
	// that even a margin per depth cannot bring it back down
	if Settings.Search.UseRFP &&
		doNull &&
		depth <= 3 &&
		!isPV &&
		!hasCheck {
		staticEval := s.evaluate(p, ply)
		margin := rfp[depth]
		if staticEval-margin >= beta {
			s.statistics.RfpPrunings++
			return staticEval - margin
		}
	}

	// null move pruning - if passing the move still fails high, a real
	// move will too. Skipped in check, without non-pawn material
	// (zugzwang) and directly after another null move.
	if Settings.Search.UseNullMove {
		if doNull &&
			!isPV &&
			depth >= Settings.Search.NmpDepth &&
			p.MaterialNonPawn(us) > 0 &&
			!hasCheck {

			r := Settings.Search.NmpReduction
			if depth > 8 || (depth > 6 && p.GamePhase() >= 3) {
				r++
			}
			newDepth := depth - r - 1
			if newDepth < 0 {
				newDepth = 0
			}

			p.MakeNullMove()
			s.nodesVisited++
			nValue := -s.negamax(p, newDepth, ply+1, -beta, -beta+1, false, false)
			p.UnmakeNullMove()

			if s.stopConditions() {
				return ValueNA
			}

			if nValue > ValueCheckMateThreshold {
				// never return an unproven mate from a null search
				s.statistics.NMPMateBeta++
				nValue = ValueCheckMateThreshold
			} else if nValue < -ValueCheckMateThreshold {
				// got mated without moving - flag the threat
				s.statistics.NMPMateAlpha++
				matethreat = true
			}

			if nValue >= beta {
				s.statistics.NullMoveCuts++
				if Settings.Search.UseTT {
					s.storeTT(p, depth, ply, ttMove, nValue, LOWER)
				}
				return nValue
			}
		}
	}

	// internal iterative deepening - no TT move available on a PV node,
	// so run a reduced search just to obtain a move to try first
	if Settings.Search.UseIID {
		if depth >= Settings.Search.IIDDepth &&
			ttMove == MoveNone &&
			doNull &&
			isPV {

			newDepth := depth - Settings.Search.IIDReduction
			if newDepth < 0 {
				newDepth = 0
			}

			s.negamax(p, newDepth, ply, alpha, beta, isPV, true)
			s.statistics.IIDsearches++

			if s.stopConditions() {
				return ValueNA
			}

			if s.pv[ply].Len() > 0 {
				s.statistics.IIDmoves++
				ttMove = (*s.pv[ply])[0].MoveOf()
			}
		}
	}

	// reset this ply's generator and PV after IID, not before
	myMg := s.mg[ply]
	myMg.Reset()
	s.pv[ply].Clear()

	if Settings.Search.UseTTMove {
		if ttMove != MoveNone {
			s.statistics.TTMoveUsed++
			myMg.SetPvMove(ttMove)
		} else {
			s.statistics.NoTTMove++
		}
	}

	var value Value
	movesSearched := 0

	for move := myMg.NextMove(p, movegen.GenAll, hasCheck); move != MoveNone; move = myMg.NextMove(p, movegen.GenAll, hasCheck) {

		from := move.From()
		to := move.To()

		if assert.DEBUG {
			assert.Assert(move.IsValid(), "negamax: invalid move %s on %s", move.String(), p.Fen())
			assert.Assert(p.PieceOn(from) != PieceNone && p.PieceOn(from).ColorOf() == us,
				"negamax: no own piece on %s for move %s on %s", from.String(), move.StringUci(), p.Fen())
			assert.Assert(p.PieceOn(to).TypeOf() != King, "negamax: king capture by %s on %s", move.StringUci(), p.Fen())
		}

		newDepth := depth - 1
		lmrDepth := newDepth
		extension := 0

		givesCheck := p.GivesCheck(move)

		// extensions - applied sparingly, pruning usually pays better
		if Settings.Search.UseExt {
			// checks are extended so the prunings of the normal search can
			// work on the evasion instead of leaving it to quiescence
			if Settings.Search.UseCheckExt && givesCheck {
				s.statistics.CheckExtension++
				extension = 1
			}
			if Settings.Search.UseThreatExt && matethreat {
				s.statistics.ThreatExtension++
				extension = 1
			}
			if Settings.Search.UseExtAddDepth {
				newDepth += extension
			}
		}

		// losing captures are not worth a probe close to the horizon -
		// let quiescence deal with the exchange instead
		if Settings.Search.UseSEE &&
			depth <= Settings.Search.SeeMaxDepth &&
			!isPV &&
			extension == 0 &&
			move != ttMove &&
			!hasCheck &&
			!givesCheck &&
			p.IsCapturingMove(move) &&
			see(p, move) < 0 {
			s.statistics.SeePrunings++
			continue
		}

		// forward pruning of uninteresting moves: no check, no capture,
		// no promotion, not a killer and no mate threat pending
		if !isPV &&
			extension == 0 &&
			move != ttMove &&
			move != (*myMg.KillerMoves())[0] &&
			move != (*myMg.KillerMoves())[1] &&
			move.MoveType() != Promotion &&
			!p.IsCapturingMove(move) &&
			!hasCheck &&
			!givesCheck &&
			!matethreat {

			materialEval := p.Material(us) - p.Material(us.Flip())
			moveGain := p.PieceOn(to).ValueOf()

			// futility pruning - so far below alpha that the next ply will
			// fail low anyway
			if Settings.Search.UseFP && depth < 7 {
				futilityMargin := fp[depth]
				if materialEval+moveGain+futilityMargin <= alpha {
					if materialEval+moveGain > bestNodeValue {
						bestNodeValue = materialEval + moveGain
					}
					s.statistics.FpPrunings++
					continue
				}
			}

			// late move pruning by move count
			if Settings.Search.UseLmp {
				if movesSearched >= LmpMovesSearched(depth) {
					s.statistics.LmpCuts++
					continue
				}
			}

			// late move reductions - late quiet moves rarely raise alpha,
			// so their null window probe runs at reduced depth
			if Settings.Search.UseLmr {
				if depth >= Settings.Search.LmrDepth &&
					movesSearched >= Settings.Search.LmrMovesSearched {
					lmrDepth -= LmrReduction(depth, movesSearched)
					s.statistics.LmrReductions++
				}
				if lmrDepth < 0 {
					lmrDepth = 0
				}
			}
		}

		p.MakeMove(move)

		// pseudo legal generation - dismiss illegal moves here
		if !p.WasLegalMove() {
			p.UnmakeMove()
			continue
		}

		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(move)
		s.sendSearchUpdateToUci()

		if s.checkDrawRepAnd50(p, 2) {
			value = ValueDraw
		} else {
			// PVS: first move with the full window, later moves through a
			// null window probe at the (possibly LMR-reduced) depth. A
			// probe that raises alpha is re-searched at full depth and,
			// unless it already failed high, with the full window.
			if !Settings.Search.UsePVS || movesSearched == 0 {
				value = -s.negamax(p, newDepth, ply+1, -beta, -alpha, true, true)
			} else {
				value = -s.negamax(p, lmrDepth, ply+1, -alpha-1, -alpha, false, true)
				if value > alpha && !s.stopConditions() {
					if lmrDepth < newDepth {
						s.statistics.LmrResearches++
						value = -s.negamax(p, newDepth, ply+1, -beta, -alpha, true, true)
					} else if value < beta {
						s.statistics.PvsResearches++
						value = -s.negamax(p, newDepth, ply+1, -beta, -alpha, true, true)
					}
				}
			}
		}

		movesSearched++
		s.statistics.CurrentVariation.PopBack()
		p.UnmakeMove()

		if s.stopConditions() {
			return ValueNA
		}

		if value > bestNodeValue {
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				savePV(move, s.pv[ply+1], s.pv[ply])
				if value >= beta {
					// beta cut - the opponent avoids this node, the value
					// is only a lower bound
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					if Settings.Search.UseKiller && !p.IsCapturingMove(move) {
						myMg.StoreKiller(move)
					}
					// deeper searches weigh heavier in the history tables
					if Settings.Search.UseHistoryCounter {
						s.history.HistoryCount[us][from][to] += int64(depth * depth)
					}
					if Settings.Search.UseCounterMoves {
						lastMove := p.LastMove()
						if lastMove != MoveNone {
							s.history.CounterMoves[lastMove.From()][lastMove.To()] = move
						}
					}
					ttType = LOWER
					break
				}
				alpha = value
				ttType = EXACT
			}
		}
		// no cutoff - pay back half the history credit
		if Settings.Search.UseHistoryCounter {
			s.history.HistoryCount[us][from][to] -= int64(depth*depth) / 2
			if s.history.HistoryCount[us][from][to] < 0 {
				s.history.HistoryCount[us][from][to] = 0
			}
		}
	}

	// no legal move at all: mate or stalemate, and an exact result
	if movesSearched == 0 && !s.stopConditions() {
		if p.HasCheck() {
			s.statistics.Checkmates++
			bestNodeValue = -ValueCheckMate + Value(ply)
		} else {
			s.statistics.Stalemates++
			bestNodeValue = ValueDraw
		}
		ttType = EXACT
	}

	if Settings.Search.UseTT {
		s.storeTT(p, depth, ply, bestNodeMove, bestNodeValue, ttType)
	}

	return bestNodeValue
}

// qsearch resolves tactical noise past the horizon. Without check only
// non quiet moves are searched on top of a stand-pat bound; in check all
// moves are generated, which doubles as a check extension.
func (s *Search) qsearch(p *position.Position, ply int, alpha Value, beta Value, isPV bool) Value {
	if trace {
		s.slog.Debugf("%0*s Ply %-2.d QSearch     a:%-6.d b:%-6.d pv:%-6.v start:  %s", ply, "", ply, alpha, beta, isPV, s.statistics.CurrentVariation.StringUci())
		defer s.slog.Debugf("%0*s Ply %-2.d QSearch     a:%-6.d b:%-6.d pv:%-6.v end  :  %s", ply, "", ply, alpha, beta, isPV, s.statistics.CurrentVariation.StringUci())
	}

	if s.statistics.CurrentExtraSearchDepth < ply {
		s.statistics.CurrentExtraSearchDepth = ply
	}

	if !Settings.Search.UseQuiescence || ply >= MaxDepth {
		return s.evaluate(p, ply)
	}

	// mate distance pruning, see negamax
	if Settings.Search.UseMDP {
		if alpha < -ValueCheckMate+Value(ply) {
			alpha = -ValueCheckMate + Value(ply)
		}
		if beta > ValueCheckMate-Value(ply) {
			beta = ValueCheckMate - Value(ply)
		}
		if alpha >= beta {
			s.statistics.Mdp++
			return alpha
		}
	}

	bestNodeValue := ValueNA
	ttType := UPPER
	ttMove := MoveNone
	hasCheck := p.HasCheck()

	// stand pat: the static eval is a lower bound as long as one quiet
	// continuation exists; not available in check
	if !hasCheck {
		staticEval := s.evaluate(p, ply)
		if Settings.Search.UseQSStandpat && staticEval > alpha {
			if staticEval >= beta {
				s.statistics.StandpatCuts++
				return staticEval
			}
			alpha = staticEval
		}
		bestNodeValue = staticEval
	}

	var ttEntry *transpositiontable.TtEntry
	if Settings.Search.UseQSTT {
		ttEntry = s.tt.Probe(p.Hash())
		if ttEntry != nil {
			s.statistics.TTHit++
			ttMove = ttEntry.Move()
			ttValue := valueFromTT(ttEntry.Value(), ply)
			cut := false
			switch {
			case !ttValue.IsValid():
				cut = false
			case ttEntry.Flag() == EXACT:
				cut = true
			case ttEntry.Flag() == UPPER && ttValue <= alpha:
				cut = true
			case ttEntry.Flag() == LOWER && ttValue >= beta:
				cut = true
			}
			if cut && Settings.Search.UseTTValue {
				s.statistics.TTCuts++
				return ttValue
			}
			s.statistics.TTNoCuts++
		} else {
			s.statistics.TTMiss++
		}
	}

	bestNodeMove := MoveNone
	myMg := s.mg[ply]
	myMg.Reset()
	s.pv[ply].Clear()

	if Settings.Search.UseQSTT {
		if ttMove != MoveNone {
			s.statistics.TTMoveUsed++
			myMg.SetPvMove(ttMove)
		} else {
			s.statistics.NoTTMove++
		}
	}

	var value Value
	movesSearched := 0

	var mode movegen.GenMode
	if hasCheck {
		s.statistics.CheckInQS++
		mode = movegen.GenAll
	} else {
		mode = movegen.GenNonQuiet
	}

	for move := myMg.NextMove(p, mode, hasCheck); move != MoveNone; move = myMg.NextMove(p, mode, hasCheck) {

		// out of check, only captures that do not lose material
		if !hasCheck && !s.goodCapture(p, move) {
			continue
		}

		p.MakeMove(move)

		if !p.WasLegalMove() {
			p.UnmakeMove()
			continue
		}

		s.nodesVisited++
		s.statistics.QNodesVisited++
		s.statistics.CurrentVariation.PushBack(move)
		s.sendSearchUpdateToUci()

		// draw checks only matter in check - captures cannot repeat and
		// reset the half move clock anyway
		if hasCheck && s.checkDrawRepAnd50(p, 2) {
			value = ValueDraw
		} else {
			value = -s.qsearch(p, ply+1, -beta, -alpha, isPV)
		}

		movesSearched++
		s.statistics.CurrentVariation.PopBack()
		p.UnmakeMove()

		if s.stopConditions() {
			return ValueNA
		}

		if value > bestNodeValue {
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				savePV(move, s.pv[ply+1], s.pv[ply])
				if value >= beta {
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					if Settings.Search.UseHistoryCounter {
						s.history.HistoryCount[p.SideToMove()][move.From()][move.To()] += 2
					}
					if Settings.Search.UseCounterMoves {
						lastMove := p.LastMove()
						if lastMove != MoveNone {
							s.history.CounterMoves[lastMove.From()][lastMove.To()] = move
						}
					}
					ttType = LOWER
					break
				}
				alpha = value
				ttType = EXACT
			}
		}
	}

	// no move searched: in check that is a proven mate since all moves
	// were generated; otherwise the stand pat value from above stands
	if movesSearched == 0 && !s.stopConditions() {
		if p.HasCheck() {
			s.statistics.Checkmates++
			bestNodeValue = -ValueCheckMate + Value(ply)
			ttType = EXACT
		}
	}

	if Settings.Search.UseQSTT {
		s.storeTT(p, 1, ply, bestNodeMove, bestNodeValue, ttType)
	}

	return bestNodeValue
}

// evaluate returns the static evaluation from the side to move's view,
// optionally cached through the TT.
func (s *Search) evaluate(p *position.Position, ply int) Value {
	s.statistics.LeafPositionsEvaluated++

	value := ValueNA

	if Settings.Search.UseTT && Settings.Search.UseEvalTT {
		ttEntry := s.tt.Probe(p.Hash())
		if ttEntry != nil && ttEntry.Eval() != ValueNA {
			s.statistics.TTHit++
			s.statistics.EvaluationsFromTT++
			value = ttEntry.Eval()
		}
	}

	if value == ValueNA {
		s.statistics.Evaluations++
		value = s.eval.Evaluate(p)
		if Settings.Search.UseTT && Settings.Search.UseEvalTT {
			// cache only the static eval; the search score slot stays
			// untouched
			s.tt.Put(p.Hash(), MoveNone, 0, ValueNA, Vnone, value)
		}
	}

	return value
}

// goodCapture filters quiescence captures down to exchanges that do not
// lose material.
func (s *Search) goodCapture(p *position.Position, move Move) bool {
	if Settings.Search.UseSEE {
		return see(p, move) > 0
	}
	// without SEE: lower takes higher (with a margin so BxN counts),
	// recaptures, and captures of undefended pieces
	return p.PieceOn(move.From()).ValueOf()+50 < p.PieceOn(move.To()).ValueOf() ||
		(p.LastMove() != MoveNone && p.LastMove().To() == move.To() && p.LastCapturedPiece() != PieceNone) ||
		!p.IsAttacked(move.To(), p.SideToMove().Flip())
}

// savePV sets move as the head of dest followed by the line in src.
func savePV(move Move, src *moveslice.MoveSlice, dest *moveslice.MoveSlice) {
	dest.Clear()
	dest.PushBack(move)
	*dest = append(*dest, *src...)
}

// storeTT stores a search result, with mate values normalized to the
// node's ply.
func (s *Search) storeTT(p *position.Position, depth int, ply int, move Move, value Value, valueType ValueType) {
	s.tt.Put(p.Hash(), move, int8(depth), valueToTT(value, ply), valueType, ValueNA)
}

// getPVLine reconstructs a PV by walking best moves through the TT from
// the current position.
func (s *Search) getPVLine(p *position.Position, pv *moveslice.MoveSlice, depth int) {
	pv.Clear()
	counter := 0
	ttMatch := s.tt.GetEntry(p.Hash())
	for ttMatch != nil && ttMatch.Move() != MoveNone && counter < depth {
		pv.PushBack(ttMatch.Move())
		p.MakeMove(ttMatch.Move())
		counter++
		ttMatch = s.tt.GetEntry(p.Hash())
	}
	for i := 0; i < counter; i++ {
		p.UnmakeMove()
	}
}

// valueToTT normalizes mate scores to "mate in N from this node" before
// storing, so the entry stays valid at any ply it is found from.
func valueToTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			value = value + Value(ply)
		} else {
			value = value - Value(ply)
		}
	}
	return value
}

// valueFromTT undoes the normalization of valueToTT at the probing ply.
func valueFromTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			value = value - Value(ply)
		} else {
			value = value + Value(ply)
		}
	}
	return value
}

// getSearchTraceLog builds the separate search trace logger with a
// stdout and a file backend below the configured log folder.
func getSearchTraceLog() *logging.Logger {
	searchLog := logging.MustGetLogger("search")

	searchLogFormat := logging.MustStringFormatter(`%{time:15:04:05.000} %{level:-7.7s}:  %{message}`)

	backend1 := logging.NewLogBackend(os.Stdout, "", golog.Lmsgprefix)
	backend1Formatter := logging.NewBackendFormatter(backend1, searchLogFormat)
	searchBackEnd := logging.AddModuleLevel(backend1Formatter)
	searchBackEnd.SetLevel(logging.Level(SearchLogLevel), "")
	searchLog.SetBackend(searchBackEnd)

	programName, _ := os.Executable()
	exeName := strings.TrimSuffix(filepath.Base(programName), ".exe")

	logPath, err := util.ResolveFolder(Settings.Log.LogPath)
	if err != nil {
		golog.Println("Log folder could not be found:", err)
		return searchLog
	}
	searchLogFilePath := filepath.Join(logPath, exeName+"_search.log")

	searchLogFile, err := os.OpenFile(searchLogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		golog.Println("Logfile could not be created:", err)
		return searchLog
	}
	backend2 := logging.NewLogBackend(searchLogFile, "", golog.Lmsgprefix)
	backend2Formatter := logging.NewBackendFormatter(backend2, searchLogFormat)
	searchBackEnd2 := logging.AddModuleLevel(backend2Formatter)
	searchBackEnd2.SetLevel(logging.DEBUG, "")
	searchLog.SetBackend(searchBackEnd2)
	searchLog.Infof("Log %s started at %s:", searchLogFile.Name(), time.Now().String())
	return searchLog
}
