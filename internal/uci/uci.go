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

// Package uci implements the engine side of the Universal Chess
// Interface: a line-based command loop on stdin/stdout that owns the
// engine's Game/Position, forwards "go" to an asynchronous search and
// streams the search's info lines and bestmove back to the GUI.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	golog "log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/book"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/game"
	myLogging "github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/movegen"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/moveslice"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/search"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/util"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/version"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

// UciHandler is the UCI protocol front end. It owns the engine's Game,
// Position and Search and implements uciInterface.UciDriver for the
// search's output callbacks.
//
// Create with NewUciHandler.
type UciHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	myMoveGen  *movegen.Generator
	mySearch   *search.Search
	myPosition *position.Position
	myGame     *game.Game
	myBook     book.Book
	myPerft    *movegen.Perft
	uciLog     *logging.Logger
}

// NewUciHandler creates a handler reading from stdin and writing to
// stdout. Both streams can be swapped through InIo/OutIo, which the
// tests use.
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewGenerator(),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		myGame:     game.NewGame(),
		myPerft:    movegen.NewPerft(),
		uciLog:     getUciLog(),
	}
	u.myBook = loadBook()
	u.mySearch.SetUciHandler(u)
	return u
}

// loadBook opens the configured opening book, if any. A missing or
// unreadable book file disables book usage for this run instead of
// failing engine startup.
func loadBook() book.Book {
	if !config.Settings.Search.UseBook || config.Settings.Search.BookFile == "" {
		return nil
	}
	path := filepath.Join(config.Settings.Search.BookPath, config.Settings.Search.BookFile)
	switch strings.ToLower(config.Settings.Search.BookFormat) {
	case "polyglot":
		b, err := book.NewPolyglotBook(path)
		if err != nil {
			log.Warningf("Could not load polyglot book '%s': %v", path, err)
			return nil
		}
		return b
	case "json":
		b, err := book.NewJSONBook(path)
		if err != nil {
			log.Warningf("Could not load json book '%s': %v", path, err)
			return nil
		}
		return b
	default:
		log.Warningf("Unknown book format '%s', book disabled", config.Settings.Search.BookFormat)
		return nil
	}
}

// Loop reads and executes commands until "quit" is received.
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			return
		}
	}
}

// Command executes a single command line and returns the engine's
// output, for tests and debugging.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// SendReadyOk writes "readyok".
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString writes an arbitrary "info string" line.
func (u *UciHandler) SendInfoString(info string) {
	u.send(out.Sprintf("info string %s", info))
}

// SendIterationEndInfo writes the info line of a completed iteration.
func (u *UciHandler) SendIterationEndInfo(depth int, seldepth int, value Value, nodes uint64, nps uint64, time time.Duration, ttHits uint64, hashfull int, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d time %d nodes %d nps %d tthits %d hashfull %d multipv 1 score %s pv %s",
		depth, seldepth, time.Milliseconds(), nodes, nps, ttHits, hashfull, value.String(), pv.StringUci()))
}

// SendMultiPVInfo writes one line of a MultiPV root split.
func (u *UciHandler) SendMultiPVInfo(multiPvIndex int, depth int, seldepth int, value Value, nodes uint64, nps uint64, time time.Duration, ttHits uint64, hashfull int, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d time %d nodes %d nps %d tthits %d hashfull %d multipv %d score %s pv %s",
		depth, seldepth, time.Milliseconds(), nodes, nps, ttHits, hashfull, multiPvIndex, value.String(), pv.StringUci()))
}

// SendSearchUpdate writes the periodic progress info line.
func (u *UciHandler) SendSearchUpdate(depth int, seldepth int, nodes uint64, nps uint64, time time.Duration, hashfull int) {
	u.send(fmt.Sprintf("info depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
		depth, seldepth, nodes, nps, time.Milliseconds(), hashfull))
}

// SendAspirationResearchInfo writes the info line of a failed aspiration
// window with its upperbound/lowerbound marker.
func (u *UciHandler) SendAspirationResearchInfo(depth int, seldepth int, value Value, bound string, nodes uint64, nps uint64, time time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d multipv 1 score %s %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), bound, nodes, nps, time.Milliseconds(), pv.StringUci()))
}

// SendCurrentRootMove writes the root move currently being searched.
func (u *UciHandler) SendCurrentRootMove(currMove Move, moveNumber int) {
	u.send(fmt.Sprintf("info currmove %s currmovenumber %d", currMove.StringUci(), moveNumber))
}

// SendCurrentLine writes the currently searched variation.
func (u *UciHandler) SendCurrentLine(moveList moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info currline %s", moveList.StringUci()))
}

// SendResult writes the bestmove line, with a ponder move when known.
func (u *UciHandler) SendResult(bestMove Move, ponderMove Move) {
	var resultStr strings.Builder
	resultStr.WriteString("bestmove ")
	resultStr.WriteString(bestMove.StringUci())
	if ponderMove != MoveNone {
		resultStr.WriteString(" ponder ")
		resultStr.WriteString(ponderMove.StringUci())
	}
	u.send(resultStr.String())
}

var regexWhiteSpace = regexp.MustCompile(`\s+`)

// handleReceivedCommand dispatches one command line. Malformed or
// unknown commands are logged and ignored, matching conventional UCI
// robustness. Returns true on "quit".
func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	if len(cmd) == 0 {
		return false
	}
	log.Debugf("Received command: %s", cmd)
	u.uciLog.Infof("<< %s", cmd)
	tokens := regexWhiteSpace.Split(cmd, -1)
	switch strings.TrimSpace(tokens[0]) {
	case "quit":
		return true
	case "uci":
		u.uciCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.isReadyCommand()
	case "ucinewgame":
		u.uciNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "ponderhit":
		u.ponderHitCommand()
	case "register":
		u.registerCommand()
	case "debug":
		u.debugCommand()
	case "perft":
		u.perftCommand(tokens)
	case "noop":
	default:
		log.Warningf("Error: Unknown command: %s", cmd)
	}
	log.Debugf("Processed command: %s", cmd)
	return false
}

// uciCommand answers with engine identity, the option list and uciok.
func (u *UciHandler) uciCommand() {
	u.send("id name chess-engine " + version.Version())
	u.send("id author Tobias Alexander Wulff")
	options := uciOptions.GetOptions()
	for _, o := range *options {
		u.send(o)
	}
	u.send("uciok")
}

// setOptionCommand parses "setoption name <N> [value <V>]" and runs the
// option's handler.
func (u *UciHandler) setOptionCommand(tokens []string) {
	name := ""
	value := ""
	if len(tokens) > 1 && tokens[1] == "name" {
		i := 2
		for i < len(tokens) && tokens[i] != "value" {
			name += tokens[i] + " "
			i++
		}
		name = strings.TrimSpace(name)
		if len(tokens) > i && tokens[i] == "value" && len(tokens) > i+1 {
			value = tokens[i+1]
		}
	} else {
		u.reportMalformed("Command 'setoption' is malformed")
		return
	}
	o, found := uciOptions[name]
	if !found {
		u.reportMalformed(out.Sprintf("Command 'setoption': No such option '%s'", name))
		return
	}
	o.CurrentValue = value
	o.HandlerFunc(u, o)
}

func (u *UciHandler) isReadyCommand() {
	u.mySearch.IsReady()
}

func (u *UciHandler) ponderHitCommand() {
	u.mySearch.PonderHit()
}

// stopCommand stops a running search or perft. The search delivers its
// best known move on stop.
func (u *UciHandler) stopCommand() {
	u.mySearch.StopSearch()
	u.myPerft.Stop()
}

// perftCommand runs perft on the start position, "perft [depth [depth2]]".
func (u *UciHandler) perftCommand(tokens []string) {
	depth := 4
	var err error
	if len(tokens) > 1 {
		depth, err = strconv.Atoi(tokens[1])
		if err != nil {
			log.Warningf("Can't perft on depth='%s'", tokens[1])
			return
		}
	}
	depth2 := depth
	if len(tokens) > 2 {
		if tmp, err2 := strconv.Atoi(tokens[2]); err2 == nil {
			depth2 = tmp
		}
	}
	go u.myPerft.StartPerftMulti(position.StartFen, depth, depth2, true)
}

// goCommand parses the limits and starts the asynchronous search. A book
// hit answers immediately without searching.
func (u *UciHandler) goCommand(tokens []string) {
	searchLimits, malformed := u.readSearchLimits(tokens)
	if malformed {
		return
	}
	if u.myBook != nil {
		if m, found := u.myBook.FindMove(u.myGame); found {
			log.Debugf("Book move found: %s", m.StringUci())
			u.mySearch.SetHadBookMove()
			u.SendResult(m, MoveNone)
			return
		}
	}
	u.mySearch.StartSearch(*u.myPosition, *searchLimits)
}

// positionCommand rebuilds Game and Position from
// "position [startpos | fen <fen>] [moves ...]". Illegal moves in the
// move list abort the replay at that point.
func (u *UciHandler) positionCommand(tokens []string) {
	fen := position.StartFen
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			fenb.WriteString(tokens[i])
			fenb.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(fenb.String())
		if len(fen) > 0 {
			break
		}
		fallthrough
	default:
		u.reportMalformed(out.Sprintf("Command 'position' malformed. %s", tokens))
		return
	}

	newPosition, err := position.FromFen(fen)
	if err != nil {
		u.reportMalformed(out.Sprintf("Command 'position' malformed. Invalid fen '%s'", fen))
		return
	}
	u.myPosition = newPosition
	u.myGame = game.NewGameFen(fen)

	if i < len(tokens) {
		if tokens[i] != "moves" {
			u.reportMalformed(out.Sprintf("Command 'position' malformed moves. %s", tokens))
			return
		}
		i++
		for ; i < len(tokens); i++ {
			move := u.myMoveGen.MoveFromUci(u.myPosition, tokens[i])
			if !move.IsValid() {
				u.reportMalformed(out.Sprintf("Command 'position' malformed. Invalid move '%s' (%s)", tokens[i], tokens))
				return
			}
			u.myPosition.MakeMove(move)
			u.myGame.MakeMove(move)
		}
	}
	log.Debugf("New position: %s", u.myPosition.Fen())
}

// uciNewGameCommand resets Game, Position and the search's caches and
// cancels any running search.
func (u *UciHandler) uciNewGameCommand() {
	u.myPosition = position.NewPosition()
	u.myGame = game.NewGame()
	u.mySearch.NewGame()
}

// accepted and ignored
func (u *UciHandler) debugCommand() {
	msg := "Command 'debug' not implemented"
	u.SendInfoString(msg)
	log.Warning(msg)
}

// accepted and ignored
func (u *UciHandler) registerCommand() {
	msg := "Command 'register' not implemented"
	u.SendInfoString(msg)
	log.Warning(msg)
}

func (u *UciHandler) reportMalformed(msg string) {
	u.SendInfoString(msg)
	log.Warning(msg)
}

// readSearchLimits parses the sub-commands of "go" into search Limits.
// Returns malformed=true when a value did not parse; a bare "go" without
// any limit searches at depth 1.
func (u *UciHandler) readSearchLimits(tokens []string) (limits *search.Limits, malformed bool) {
	searchLimits := search.NewSearchLimits()

	// parseMillis reads the next token as milliseconds
	parseMillis := func(i int, what string) (time.Duration, bool) {
		if i >= len(tokens) {
			u.reportMalformed(out.Sprintf("UCI command go malformed. %s without value", what))
			return 0, false
		}
		v, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			u.reportMalformed(out.Sprintf("UCI command go malformed. %s value not a number: %s", what, tokens[i]))
			return 0, false
		}
		return time.Duration(v) * time.Millisecond, true
	}
	parseInt := func(i int, what string) (int, bool) {
		if i >= len(tokens) {
			u.reportMalformed(out.Sprintf("UCI command go malformed. %s without value", what))
			return 0, false
		}
		v, err := strconv.Atoi(tokens[i])
		if err != nil {
			u.reportMalformed(out.Sprintf("UCI command go malformed. %s value not a number: %s", what, tokens[i]))
			return 0, false
		}
		return v, true
	}

	i := 1
	for i < len(tokens) {
		var ok bool
		switch tokens[i] {
		case "moves":
			i++
			for i < len(tokens) {
				move := u.myMoveGen.MoveFromUci(u.myPosition, tokens[i])
				if !move.IsValid() {
					break
				}
				searchLimits.Moves.PushBack(move)
				i++
			}
		case "infinite":
			searchLimits.Infinite = true
			i++
		case "ponder":
			searchLimits.Ponder = true
			i++
		case "depth":
			i++
			if searchLimits.Depth, ok = parseInt(i, "depth"); !ok {
				return nil, true
			}
			i++
		case "nodes":
			i++
			n, ok := parseInt(i, "nodes")
			if !ok {
				return nil, true
			}
			searchLimits.Nodes = uint64(n)
			i++
		case "mate":
			i++
			if searchLimits.Mate, ok = parseInt(i, "mate"); !ok {
				return nil, true
			}
			i++
		case "movetime", "moveTime":
			i++
			if searchLimits.MoveTime, ok = parseMillis(i, "movetime"); !ok {
				return nil, true
			}
			searchLimits.TimeControl = true
			i++
		case "wtime":
			i++
			if searchLimits.WhiteTime, ok = parseMillis(i, "wtime"); !ok {
				return nil, true
			}
			searchLimits.TimeControl = true
			i++
		case "btime":
			i++
			if searchLimits.BlackTime, ok = parseMillis(i, "btime"); !ok {
				return nil, true
			}
			searchLimits.TimeControl = true
			i++
		case "winc":
			i++
			if searchLimits.WhiteInc, ok = parseMillis(i, "winc"); !ok {
				return nil, true
			}
			i++
		case "binc":
			i++
			if searchLimits.BlackInc, ok = parseMillis(i, "binc"); !ok {
				return nil, true
			}
			i++
		case "movestogo":
			i++
			if searchLimits.MovesToGo, ok = parseInt(i, "movestogo"); !ok {
				return nil, true
			}
			i++
		default:
			u.reportMalformed(out.Sprintf("UCI command go malformed. Invalid subcommand: %s", tokens[i]))
			return nil, true
		}
	}

	// when the clock governs, search as deep as time allows
	if searchLimits.TimeControl && searchLimits.Depth == 0 {
		searchLimits.Depth = 64
	}

	// without any limit a bare "go" searches at depth 1
	if !(searchLimits.Infinite ||
		searchLimits.Ponder ||
		searchLimits.Depth > 0 ||
		searchLimits.Nodes > 0 ||
		searchLimits.Mate > 0 ||
		searchLimits.TimeControl) {
		searchLimits.Depth = 1
	}

	// a zero clock for the side to move cannot be searched on
	if searchLimits.TimeControl && searchLimits.MoveTime == 0 {
		if u.myPosition.SideToMove() == White && searchLimits.WhiteTime == 0 {
			u.reportMalformed(out.Sprintf("UCI command go invalid. White to move but time for white is zero! %s", tokens))
			return nil, true
		} else if u.myPosition.SideToMove() == Black && searchLimits.BlackTime == 0 {
			u.reportMalformed(out.Sprintf("UCI command go invalid. Black to move but time for black is zero! %s", tokens))
			return nil, true
		}
	}
	return searchLimits, false
}

// getUciLog builds the protocol mirror logger with a stdout and a file
// backend below the configured log folder.
func getUciLog() *logging.Logger {
	uciLog := logging.MustGetLogger("UCI ")

	uciFormat := logging.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)
	backend1 := logging.NewLogBackend(os.Stdout, "", golog.Lmsgprefix)
	backend1Formatter := logging.NewBackendFormatter(backend1, uciFormat)
	uciBackEnd1 := logging.AddModuleLevel(backend1Formatter)
	uciBackEnd1.SetLevel(logging.DEBUG, "")
	uciLog.SetBackend(uciBackEnd1)

	programName, _ := os.Executable()
	exeName := strings.TrimSuffix(filepath.Base(programName), ".exe")

	logPath, err := util.ResolveFolder(config.Settings.Log.LogPath)
	if err != nil {
		golog.Println("Log folder could not be found:", err)
		return uciLog
	}
	logFilePath := filepath.Join(logPath, exeName+"_uci.log")

	uciLogFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		golog.Println("Logfile could not be created:", err)
		return uciLog
	}
	backend2 := logging.NewLogBackend(uciLogFile, "", golog.Lmsgprefix)
	backend2Formatter := logging.NewBackendFormatter(backend2, uciFormat)
	uciBackEnd2 := logging.AddModuleLevel(backend2Formatter)
	uciBackEnd2.SetLevel(logging.DEBUG, "")
	uciLog.SetBackend(uciBackEnd2)
	uciLog.Infof("Log %s started at %s:", uciLogFile.Name(), time.Now().String())
	return uciLog
}

func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
