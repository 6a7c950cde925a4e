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

// Package search implements the engine's iterative deepening alpha beta
// search: principal variation search with quiescence, transposition
// table, aspiration windows, null move pruning, reductions, extensions
// and killer/history move ordering. A Search owns the position it was
// started on exclusively until the search ends; the caller interacts
// with it only through StartSearch/StopSearch and the UciDriver
// callback interface.
package search

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/op/go-logging"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/evaluator"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/history"
	myLogging "github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/movegen"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/moveslice"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/transpositiontable"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/uciInterface"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/util"
)

var out = message.NewPrinter(language.German)

// Search holds all state of one search instance. Create with NewSearch.
// The zero value is not usable.
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	uciHandlerPtr uciInterface.UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt   *transpositiontable.TtTable
	eval *evaluator.Evaluator

	history *history.History

	lastSearchResult *Result

	// state of the currently running (or last) search
	stopFlag          util.Bool
	startTime         time.Time
	hasResult         bool
	currentPosition   *position.Position
	searchLimits      *Limits
	timeLimit         time.Duration
	extraTime         time.Duration
	nodesVisited      uint64
	mg                []*movegen.Generator
	pv                []*moveslice.MoveSlice
	rootMoves         *moveslice.MoveSlice
	hadBookMove       bool
	lastUciUpdateTime time.Time
	statistics        Statistics
}

// NewSearch creates a new Search instance. Without a UCI handler set all
// output goes to the logs only.
func NewSearch() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		slog:          getSearchTraceLog(),
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
		eval:          evaluator.NewEvaluator(),
		history:       history.NewHistory(),
	}
}

// NewGame stops any running search and clears all state carried between
// searches (transposition table, history tables).
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
	s.history = history.NewHistory()
}

// StartSearch starts a search on the given position with the given
// limits in a background goroutine and returns once that goroutine has
// finished its initialization. Stop with StopSearch, query with
// IsSearching. Position and limits are copied.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.currentPosition = &p
	s.searchLimits = &sl
	go s.run(&p, &sl)
	// the worker releases the init semaphore when it is up
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch stops a running search as quickly as possible and blocks
// until the worker has ended. The worker still delivers its result.
func (s *Search) StopSearch() {
	s.stopFlag.Store(true)
	s.WaitWhileSearching()
}

// PonderHit activates time control on a search started in ponder mode
// without interrupting it. No effect when not pondering.
func (s *Search) PonderHit() {
	if s.IsSearching() && s.searchLimits.Ponder {
		s.log.Debug("Ponderhit during search - activating time control")
		s.startTimer()
		return
	}
	s.log.Warning("Ponderhit received while not pondering")
}

// IsSearching reports whether a search worker is currently running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until no search is running.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// SetUciHandler sets the callback interface search output is sent to.
func (s *Search) SetUciHandler(uciHandler uciInterface.UciDriver) {
	s.uciHandlerPtr = uciHandler
}

// GetUciHandlerPtr returns the current UCI handler, nil if none is set.
func (s *Search) GetUciHandlerPtr() uciInterface.UciDriver {
	return s.uciHandlerPtr
}

// SetHadBookMove tells the search that the previous move was played from
// an opening book. The first searched move after the book line gets
// extra time as there is no previous iteration data to build on.
func (s *Search) SetHadBookMove() {
	s.hadBookMove = true
}

// IsReady runs any outstanding initialization (transposition table
// allocation) and then reports readyok to the UCI handler.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// ClearHash clears the transposition table. Ignored with a warning while
// a search is running.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		msg := "Can't clear hash while searching."
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return
	}
	if s.tt != nil {
		s.tt.Clear()
		s.sendInfoStringToUci("Hash cleared")
	}
}

// ResizeCache drops and reallocates the transposition table with the
// currently configured size. Ignored with a warning while searching.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		msg := "Can't resize hash while searching."
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return
	}
	s.tt = nil
	s.initialize()
	s.log.Debug(util.GcWithStats())
	if s.tt != nil {
		s.sendInfoStringToUci(out.Sprintf("Hash resized: %s", s.tt.String()))
	}
}

// run is the worker goroutine started by StartSearch. It owns the
// position exclusively until it returns.
func (s *Search) run(p *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.log.Infof("Searching: %s", p.Fen())

	// fresh state for this run
	s.stopFlag.Store(false)
	s.hasResult = false
	s.timeLimit = 0
	s.extraTime = 0
	s.nodesVisited = 0
	s.statistics = Statistics{}
	s.lastUciUpdateTime = s.startTime
	s.initialize()

	s.setupSearchLimits(p, sl)
	if s.searchLimits.TimeControl && !s.searchLimits.Ponder {
		s.startTimer()
	}

	if s.tt != nil {
		// a new search generation ages out entries of old searches
		s.tt.NewGeneration()
		s.log.Infof("Transposition Table: Using TT (%s)", s.tt.String())
	} else {
		s.log.Info("Transposition Table: Not using TT")
	}

	// per-ply generators and PV lists
	s.mg = make([]*movegen.Generator, 0, MaxDepth+1)
	s.pv = make([]*moveslice.MoveSlice, 0, MaxDepth+1)
	for i := 0; i <= MaxDepth; i++ {
		newMoveGen := movegen.NewGenerator()
		if config.Settings.Search.UseHistoryCounter || config.Settings.Search.UseCounterMoves {
			newMoveGen.SetHistoryData(s.history)
		}
		s.mg = append(s.mg, newMoveGen)
		s.pv = append(s.pv, moveslice.NewMoveSlice(MaxDepth+1))
	}

	s.log.Infof("Search using: PVS=%t ASP=%t",
		config.Settings.Search.UsePVS,
		config.Settings.Search.UseAspiration)

	// signal StartSearch that initialization is done
	s.initSemaphore.Release(1)

	searchResult := s.iterativeDeepening(p)

	// in ponder or infinite mode the result is only sent after a stop or
	// ponderhit even when the search finished early
	if (s.searchLimits.Ponder || s.searchLimits.Infinite) && !s.stopFlag.Load() {
		s.log.Debug("Search finished before stop or ponderhit - waiting")
		for !s.stopFlag.Load() && (s.searchLimits.Ponder || s.searchLimits.Infinite) {
			time.Sleep(5 * time.Millisecond)
		}
	}

	searchResult.SearchTime = time.Since(s.startTime)
	searchResult.Pv = *s.pv[0]

	s.log.Info(out.Sprintf("Search finished after %s", searchResult.SearchTime))
	s.log.Info(out.Sprintf("Search depth was %d(%d) with %d nodes visited. NPS = %d nps",
		s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth, s.nodesVisited,
		util.Nps(s.nodesVisited, searchResult.SearchTime)))
	s.log.Debugf("Search stats: %s", s.statistics.String())
	s.log.Infof("Search result: %s", searchResult.String())

	s.lastSearchResult = searchResult
	s.hasResult = true

	// stop the timer goroutine in case the search ended by itself
	s.stopFlag.Store(true)

	// the result is sent in every case, stopped or not
	s.sendResult(searchResult)
}

// iterativeDeepening searches the position at increasing depth until the
// depth limit or the time budget is exhausted. Root moves carry their
// value from the previous iteration, so any partially searched iteration
// still has a best move at least as good as the last complete one.
func (s *Search) iterativeDeepening(p *position.Position) *Result {

	// draw by repetition or 50 moves rule before any move is searched
	if s.checkDrawRepAnd50(p, 2) {
		msg := "Search called on DRAW by Repetition or 50-moves-rule"
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return &Result{BestValue: ValueDraw}
	}

	s.rootMoves = s.mg[0].LegalMoves(p, movegen.GenAll)

	// no legal moves: mate or stalemate, nothing to search
	if s.rootMoves.Len() == 0 {
		if p.HasCheck() {
			s.statistics.Checkmates++
			msg := "Search called on a mate position"
			s.sendInfoStringToUci(msg)
			s.log.Warning(msg)
			return &Result{BestValue: -ValueCheckMate}
		}
		s.statistics.Stalemates++
		msg := "Search called on a stalemate position"
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return &Result{BestValue: ValueDraw}
	}

	// first move after the book line gets extra time
	if s.hadBookMove && s.searchLimits.TimeControl && s.searchLimits.MoveTime == 0 {
		s.log.Debug("First non-book move to search - adding extra time")
		s.addExtraTime(2.0)
		s.hadBookMove = false
	}

	maxDepth := MaxDepth
	if s.searchLimits.Depth > 0 {
		maxDepth = s.searchLimits.Depth
	}

	bestValue := ValueNA
	var iters []IterationInfo

	for iterationDepth := 1; iterationDepth <= maxDepth; iterationDepth++ {

		s.nodesVisited++
		s.statistics.CurrentIterationDepth = iterationDepth
		s.statistics.CurrentSearchDepth = iterationDepth
		if s.statistics.CurrentExtraSearchDepth < iterationDepth {
			s.statistics.CurrentExtraSearchDepth = iterationDepth
		}

		// snapshot the counters so this iteration's share can be recorded
		iterStart := time.Now()
		nodesBefore := s.nodesVisited
		qnodesBefore := s.statistics.QNodesVisited
		failHighBefore := s.statistics.AspirationFailHigh
		failLowBefore := s.statistics.AspirationFailLow

		if config.Settings.Search.UseAspiration && iterationDepth > 1 && bestValue.IsValid() {
			bestValue = s.aspirationSearch(p, iterationDepth, bestValue)
		} else {
			s.rootSearch(p, iterationDepth, ValueMin, ValueMax)
			if s.pv[0].Len() > 0 {
				bestValue = s.pv[0].At(0).ValueOf()
			}
		}

		iters = append(iters, IterationInfo{
			Depth:    iterationDepth,
			TimeMs:   time.Since(iterStart).Milliseconds(),
			Nodes:    s.nodesVisited - nodesBefore,
			QNodes:   s.statistics.QNodesVisited - qnodesBefore,
			FailHigh: s.statistics.AspirationFailHigh - failHighBefore,
			FailLow:  s.statistics.AspirationFailLow - failLowBefore,
		})

		// after the first complete iteration there is always a move to
		// play; with a single legal move further iterations are pointless
		if !s.stopConditions() && s.rootMoves.Len() > 1 {
			s.rootMoves.Sort()
			s.statistics.CurrentBestRootMove = s.pv[0].At(0)
			s.statistics.CurrentBestRootMoveValue = s.pv[0].At(0).ValueOf()
			s.sendIterationEndInfoToUci()
		} else {
			break
		}
	}

	result := &Result{
		BestMove:    s.pv[0].At(0).MoveOf(),
		BestValue:   s.pv[0].At(0).ValueOf(),
		PonderMove:  MoveNone,
		SearchDepth: s.statistics.CurrentIterationDepth,
		ExtraDepth:  s.statistics.CurrentExtraSearchDepth,
		Nodes:       s.nodesVisited,
		QNodes:      s.statistics.QNodesVisited,
		FailHigh:    s.statistics.AspirationFailHigh,
		FailLow:     s.statistics.AspirationFailLow,
		ReSearches:  s.statistics.AspirationResearches,
		Iters:       iters,
	}
	if s.tt != nil {
		result.TTProbes = s.tt.Probes()
		result.TTHitsExact = s.tt.ExactHits()
		result.TTHitsLower = s.tt.LowerHits()
		result.TTHitsUpper = s.tt.UpperHits()
		result.TTStores = s.tt.Stores()
		result.TTReplacements = s.tt.Replacements()
		result.TTSize = s.tt.Len()
		result.HashfullPermille = s.tt.Hashfull()
	}

	// ponder move from the PV, or from the TT when the PV is short
	if s.pv[0].Len() > 1 {
		result.PonderMove = s.pv[0].At(1).MoveOf()
	} else if config.Settings.Search.UseTT {
		p.MakeMove(result.BestMove)
		ttEntry := s.tt.Probe(p.Hash())
		if ttEntry != nil {
			s.statistics.TTHit++
			result.PonderMove = ttEntry.Move()
			s.log.Debugf(out.Sprintf("Using ponder move from hash: %s", result.PonderMove.StringUci()))
		}
		p.UnmakeMove()
	}

	return result
}

// initialize allocates the transposition table if configured and not yet
// present. Safe to call repeatedly.
func (s *Search) initialize() {
	if config.Settings.Search.UseTT {
		if s.tt == nil {
			sizeInMByte := config.Settings.Search.TTSize
			if sizeInMByte == 0 {
				sizeInMByte = 64
			}
			s.tt = transpositiontable.NewTtTable(sizeInMByte)
		}
	} else {
		s.log.Info("Transposition Table is disabled in configuration")
	}
}

// stopConditions reports whether the search must unwind: stop flag set
// or node limit reached.
func (s *Search) stopConditions() bool {
	if s.stopFlag.Load() {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited >= s.searchLimits.Nodes {
		s.stopFlag.Store(true)
	}
	return s.stopFlag.Load()
}

// setupSearchLimits logs the search mode and computes the time budget
// when under time control.
func (s *Search) setupSearchLimits(p *position.Position, sl *Limits) {
	if sl.Infinite {
		s.log.Info("Search mode: Infinite")
	}
	if sl.Ponder {
		s.log.Info("Search mode: Ponder")
	}
	if sl.Mate > 0 {
		s.log.Infof("Search mode: Search for mate in %d", sl.Mate)
	}
	if sl.TimeControl {
		s.timeLimit = s.setupTimeControl(p, sl)
		s.extraTime = 0
		if sl.MoveTime > 0 {
			s.log.Infof("Search mode: Time controlled: Time per move %s", sl.MoveTime)
		} else {
			s.log.Info(out.Sprintf("Search mode: Time controlled: White = %s (inc %s) Black = %s (inc %s) Moves to go: %d",
				sl.WhiteTime, sl.WhiteInc, sl.BlackTime, sl.BlackInc, sl.MovesToGo))
			s.log.Info(out.Sprintf("Search mode: Time limit     : %s", s.timeLimit))
		}
		if sl.Ponder {
			s.log.Info("Search mode: Ponder - time control postponed until ponderhit received")
		}
	} else {
		s.log.Info("Search mode: No time control")
	}
	if sl.Depth > 0 {
		s.log.Debugf("Search mode: Depth limited  : %d", sl.Depth)
	}
	if sl.Nodes > 0 {
		s.log.Infof(out.Sprintf("Search mode: Nodes limited  : %d", sl.Nodes))
	}
	if sl.Moves.Len() > 0 {
		s.log.Infof(out.Sprintf("Search mode: Moves limited  : %s", sl.Moves.StringUci()))
	}
}

// setupTimeControl returns the duration budget for this search: either
// the fixed move time, or an estimated per-move share of the remaining
// clock plus increments.
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) time.Duration {
	if sl.MoveTime > 0 {
		// leave a little room for the surrounding code
		duration := sl.MoveTime - (20 * time.Millisecond)
		if duration < 0 {
			s.log.Warningf("Very short move time: %s. ", sl.MoveTime)
			return sl.MoveTime
		}
		return duration
	}
	// moves left until the next time control; estimated from the game
	// phase when the protocol did not say
	movesLeft := int64(sl.MovesToGo)
	if movesLeft == 0 {
		movesLeft = int64(15 + (25 * p.GamePhaseFactor()))
	}
	var timeLeft time.Duration
	switch p.SideToMove() {
	case White:
		timeLeft = sl.WhiteTime + time.Duration(movesLeft*sl.WhiteInc.Nanoseconds())
	case Black:
		timeLeft = sl.BlackTime + time.Duration(movesLeft*sl.BlackInc.Nanoseconds())
	}
	timeLimit := time.Duration(timeLeft.Nanoseconds() / movesLeft)
	// safety margin, larger for very short budgets
	if timeLimit.Milliseconds() < 100 {
		timeLimit = time.Duration(int64(0.8 * float64(timeLimit.Nanoseconds())))
	} else {
		timeLimit = time.Duration(int64(0.9 * float64(timeLimit.Nanoseconds())))
	}
	return timeLimit
}

// addExtraTime adds or subtracts a fraction of the current time limit:
// f=1.0 no change, f=0.9 reduce by 10%, f=1.1 extend by 10%. Only in
// clock-based time control.
func (s *Search) addExtraTime(f float64) {
	if s.searchLimits.TimeControl && s.searchLimits.MoveTime == 0 {
		duration := time.Duration(int64((f - 1.0) * float64(s.timeLimit.Nanoseconds())))
		s.extraTime += duration
		s.log.Debugf(out.Sprintf("Time added/reduced by %s to %s ",
			duration, s.timeLimit+s.extraTime))
	}
}

// startTimer starts a goroutine that sets the stop flag once the time
// budget (including extra time granted later) is used up.
func (s *Search) startTimer() {
	go func() {
		timerStart := time.Now()
		s.log.Debugf("Timer started with time limit of %s", s.timeLimit)
		// extraTime may grow while we wait, so poll instead of a fixed
		// timeout
		for time.Since(timerStart) < s.timeLimit+s.extraTime && !s.stopFlag.Load() {
			time.Sleep(5 * time.Millisecond)
		}
		if s.stopFlag.Load() {
			s.log.Debugf("Timer stopped early after wall time: %s (time limit %s and extra time %s)",
				time.Since(timerStart), s.timeLimit, s.extraTime)
		} else {
			s.log.Debugf("Timer stops search after wall time: %s (time limit %s and extra time %s)",
				time.Since(timerStart), s.timeLimit, s.extraTime)
			s.stopFlag.Store(true)
		}
	}()
}

// checkDrawRepAnd50 reports a draw when the position occurred at least i
// times or the 50 moves rule applies.
func (s *Search) checkDrawRepAnd50(p *position.Position, i int) bool {
	return p.HasRepetitions(i) || p.HalfMoveClock() >= 100
}

func (s *Search) sendResult(searchResult *Result) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(searchResult.BestMove, searchResult.PonderMove)
	}
}

func (s *Search) sendInfoStringToUci(msg string) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfoString(msg)
	}
}

// sendSearchUpdateToUci emits a periodic progress info line, at most
// once per second.
func (s *Search) sendSearchUpdateToUci() {
	if time.Since(s.lastUciUpdateTime) > time.Second {
		s.lastUciUpdateTime = time.Now()
		hashfull := 0
		if s.tt != nil {
			hashfull = s.tt.Hashfull()
		}
		if s.uciHandlerPtr != nil {
			s.uciHandlerPtr.SendSearchUpdate(
				s.statistics.CurrentSearchDepth,
				s.statistics.CurrentExtraSearchDepth,
				s.nodesVisited,
				s.getNps(),
				time.Since(s.startTime),
				hashfull)
			s.uciHandlerPtr.SendCurrentRootMove(s.statistics.CurrentRootMove, s.statistics.CurrentRootMoveIndex)
			s.uciHandlerPtr.SendCurrentLine(s.statistics.CurrentVariation)
		} else {
			s.log.Infof(out.Sprintf("depth %d seldepth %d value %s nodes %d nps %d time %d hashful %d",
				s.statistics.CurrentSearchDepth,
				s.statistics.CurrentExtraSearchDepth,
				s.statistics.CurrentBestRootMoveValue.String(),
				s.nodesVisited,
				s.getNps(),
				time.Since(s.startTime).Milliseconds(),
				hashfull))
		}
	}
}

// sendIterationEndInfoToUci emits the info line after each completed
// iteration - one line per root move in MultiPV mode, a single line
// otherwise.
func (s *Search) sendIterationEndInfoToUci() {
	if config.Settings.Search.MultiPV > 1 {
		s.sendMultiPVInfoToUci()
		return
	}
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendIterationEndInfo(
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime),
			s.ttHits(),
			s.hashfull(),
			*s.pv[0])
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %s nodes %d nps %d time %d tthits %d hashfull %d pv %s",
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue.String(),
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime).Milliseconds(),
			s.ttHits(),
			s.hashfull(),
			s.pv[0].StringUci()))
	}
}

// sendMultiPVInfoToUci emits the top K root moves of the completed
// iteration as separate multipv lines. Root moves carry their value
// from the iteration and are already sorted best first; each line's PV
// is the root move followed by its continuation from the TT.
func (s *Search) sendMultiPVInfoToUci() {
	k := config.Settings.Search.MultiPV
	if k > s.rootMoves.Len() {
		k = s.rootMoves.Len()
	}
	pv := moveslice.NewMoveSlice(MaxDepth)
	for i := 0; i < k; i++ {
		rootMove := s.rootMoves.At(i)
		pv.Clear()
		pv.PushBack(rootMove.MoveOf())
		if s.tt != nil {
			s.currentPosition.MakeMove(rootMove.MoveOf())
			line := moveslice.NewMoveSlice(MaxDepth)
			s.getPVLine(s.currentPosition, line, s.statistics.CurrentIterationDepth)
			*pv = append(*pv, *line...)
			s.currentPosition.UnmakeMove()
		}
		if s.uciHandlerPtr != nil {
			s.uciHandlerPtr.SendMultiPVInfo(
				i+1,
				s.statistics.CurrentSearchDepth,
				s.statistics.CurrentExtraSearchDepth,
				rootMove.ValueOf(),
				s.nodesVisited,
				s.getNps(),
				time.Since(s.startTime),
				s.ttHits(),
				s.hashfull(),
				*pv)
		} else {
			s.log.Infof(out.Sprintf("multipv %d depth %d value %s pv %s",
				i+1, s.statistics.CurrentSearchDepth, rootMove.ValueOf().String(), pv.StringUci()))
		}
	}
}

// sendAspirationResearchInfo emits an info line with an upperbound or
// lowerbound marker when an aspiration window failed.
func (s *Search) sendAspirationResearchInfo(bound string) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendAspirationResearchInfo(
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue,
			bound,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime),
			*s.pv[0])
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %s %s nodes %d nps %d time %d pv %s",
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue.String(),
			bound,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime).Milliseconds(),
			s.pv[0].StringUci()))
	}
}

// ttHits returns the transposition table's total hit count, 0 without a
// table.
func (s *Search) ttHits() uint64 {
	if s.tt == nil {
		return 0
	}
	return s.tt.Hits()
}

// hashfull returns the table occupancy in permille, 0 without a table.
func (s *Search) hashfull() int {
	if s.tt == nil {
		return 0
	}
	return s.tt.Hashfull()
}

// getNps computes the current nodes per second, clamped for very short
// elapsed times.
func (s *Search) getNps() uint64 {
	nps := util.Nps(s.nodesVisited, time.Since(s.startTime)+100)
	if nps > 15_000_000 {
		nps = 0
	}
	return nps
}

// LastSearchResult returns a copy of the last search result.
func (s *Search) LastSearchResult() Result {
	return *s.lastSearchResult
}

// HasResult reports whether a search has completed since engine start.
func (s *Search) HasResult() bool {
	return s.hasResult
}

// NodesVisited returns the number of visited nodes in the last search.
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// Statistics returns a pointer to the search statistics of the last search.
func (s *Search) Statistics() *Statistics {
	return &s.statistics
}
