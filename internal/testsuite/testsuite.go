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

// Package testsuite runs files of EPD test positions against the search.
// EPD lines carry a FEN plus opcodes describing the expected outcome;
// the opcodes "bm" (best move), "am" (avoid move) and "dm" (direct mate)
// are supported.
// https://www.chessprogramming.org/Extended_Position_Description
package testsuite

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	myLogging "github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/movegen"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/moveslice"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/search"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/util"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

// testType is the EPD opcode of a test.
type testType uint8

const (
	None testType = iota
	DM            // direct mate in N
	BM            // best move
	AM            // avoid move
)

// resultType is the outcome of one executed test.
type resultType uint8

const (
	NotTested resultType = iota
	Skipped
	Failed
	Success
)

// SuiteResult sums up the outcomes of a full run.
type SuiteResult struct {
	Counter          int
	SuccessCounter   int
	FailedCounter    int
	SkippedCounter   int
	NotTestedCounter int
	Nodes            uint64
	Time             time.Duration
}

// Test is one EPD line: the position, the expected outcome and, after a
// run, the actual outcome.
type Test struct {
	id          string
	fen         string
	tType       testType
	targetMoves moveslice.MoveSlice
	mateDepth   int
	actual      Move
	value       Value
	rType       resultType
	line        string
	nps         uint64
}

// TestSuite runs the tests of one EPD file.
type TestSuite struct {
	Tests      []*Test
	Time       time.Duration
	Depth      int
	FilePath   string
	LastResult *SuiteResult
}

// NewTestSuite reads an EPD file into a TestSuite ready for RunTests.
func NewTestSuite(filePath string, searchTime time.Duration, depth int) (*TestSuite, error) {
	out.Println("Preparing Test Suite", filePath)

	if log == nil {
		log = myLogging.GetLog()
	}

	// quiet logs and no book interference while testing
	config.LogLevel = 2
	config.SearchLogLevel = 2
	config.Settings.Search.UseBook = false

	lines, err := getTestLines(filePath)
	if err != nil {
		return nil, err
	}

	newTestSuite := &TestSuite{
		Tests:    make([]*Test, 0, len(*lines)),
		Time:     searchTime,
		Depth:    depth,
		FilePath: filePath,
	}

	for _, line := range *lines {
		if test := getTest(line); test != nil {
			newTestSuite.Tests = append(newTestSuite.Tests, test)
		}
	}

	return newTestSuite, nil
}

// RunTests executes every test with the suite's time and depth limits
// and prints a result table and summary.
func (ts *TestSuite) RunTests() {
	if len(ts.Tests) == 0 {
		out.Printf("No tests to run\n")
		return
	}

	startTime := time.Now()

	s := search.NewSearch()
	sl := search.NewSearchLimits()
	sl.MoveTime = ts.Time
	sl.Depth = ts.Depth
	if sl.MoveTime > 0 {
		sl.TimeControl = true
	}

	out.Printf("Running Test Suite\n")
	out.Printf("==================================================================\n")
	out.Printf("EPD File:    %s\n", ts.FilePath)
	out.Printf("SearchTime:  %d ms\n", ts.Time.Milliseconds())
	out.Printf("MaxDepth:    %d\n", ts.Depth)
	out.Printf("No of tests: %d\n", len(ts.Tests))
	out.Println()

	totalNodes := uint64(0)
	for i, t := range ts.Tests {
		out.Printf("Test %d of %d\nTest: %s -- Target Result %s\n", i+1, len(ts.Tests), t.line, t.targetMoves.StringUci())
		testStart := time.Now()
		runSingleTest(s, sl, t)
		totalNodes += s.NodesVisited()
		t.nps = util.Nps(s.NodesVisited(), s.LastSearchResult().SearchTime)
		out.Printf("Test finished in %d ms with result %s (%s) - nps: %d\n\n",
			time.Since(testStart).Milliseconds(), t.rType.String(), t.actual.StringUci(), t.nps)
	}

	tr := &SuiteResult{Nodes: totalNodes}
	for _, t := range ts.Tests {
		tr.Counter++
		switch t.rType {
		case NotTested:
			tr.NotTestedCounter++
		case Skipped:
			tr.SkippedCounter++
		case Failed:
			tr.FailedCounter++
		case Success:
			tr.SuccessCounter++
		}
	}
	elapsed := time.Since(startTime)
	tr.Time = elapsed
	ts.LastResult = tr

	out.Printf("Results for Test Suite %s\n", ts.FilePath)
	out.Printf("====================================================================================================================================\n")
	out.Printf(" %-4s | %-10s | %-8s | %-8s | %-15s | %s | %s\n", " Nr.", "Result", "Move", "Value", "Expected Result", "Fen", "Id")
	out.Printf("====================================================================================================================================\n")
	for i, t := range ts.Tests {
		if t.tType == DM {
			out.Printf(" %-4d | %-10s | %-8s | %-8s | %s%-15d | %s | %s\n",
				i+1, t.rType.String(), t.actual.StringUci(), t.value.String(), "dm ", t.mateDepth, t.fen, t.id)
		} else {
			out.Printf(" %-4d | %-10s | %-8s | %-8s | %s %-15s | %s | %s\n",
				i+1, t.rType.String(), t.actual.StringUci(), t.value.String(), t.tType.String(), t.targetMoves.StringUci(), t.fen, t.id)
		}
	}
	out.Printf("====================================================================================================================================\n")
	out.Printf("Summary:\n")
	out.Printf("EPD File:   %s\n", ts.FilePath)
	out.Printf("SearchTime: %d ms\n", ts.Time.Milliseconds())
	out.Printf("MaxDepth:   %d\n", ts.Depth)
	out.Printf("Successful: %-3d (%d %%)\n", tr.SuccessCounter, 100*tr.SuccessCounter/tr.Counter)
	out.Printf("Failed:     %-3d (%d %%)\n", tr.FailedCounter, 100*tr.FailedCounter/tr.Counter)
	out.Printf("Skipped:    %-3d (%d %%)\n", tr.SkippedCounter, 100*tr.SkippedCounter/tr.Counter)
	out.Printf("Not tested: %-3d (%d %%)\n", tr.NotTestedCounter, 100*tr.NotTestedCounter/tr.Counter)
	out.Printf("Test time:  %s\n", elapsed)
}

// runSingleTest searches the test position and grades the result.
func runSingleTest(s *search.Search, sl *search.Limits, t *Test) {
	s.NewGame()
	sl.Mate = 0
	p, _ := position.FromFen(t.fen)

	switch t.tType {
	case DM:
		sl.Mate = t.mateDepth
	case BM, AM:
	default:
		log.Warningf("Unknown Test type: %d", t.tType)
		return
	}

	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	t.actual = result.BestMove
	t.value = result.BestValue

	switch t.tType {
	case DM:
		// the value must announce a mate of exactly the requested length
		if t.value.String() == fmt.Sprintf("mate %d", t.mateDepth) {
			t.rType = Success
		} else {
			t.rType = Failed
		}
	case BM:
		t.rType = Failed
		for _, m := range t.targetMoves {
			if m == t.actual {
				t.rType = Success
				break
			}
		}
	case AM:
		t.rType = Success
		for _, m := range t.targetMoves {
			if m == t.actual {
				t.rType = Failed
				break
			}
		}
	}

	if t.rType == Success {
		log.Infof("TestSet: id = '%s' SUCCESS", t.id)
	} else {
		log.Infof("TestSet: id = '%s' FAILED", t.id)
	}
}

var leadingComments = regexp.MustCompile(`^\s*#.*$`)
var trailingComments = regexp.MustCompile(`^(.*)#([^;]*)$`)
var epdRegex = regexp.MustCompile(`^\s*(.*?) (bm|dm|am) (.*?);(.* id "(.*?)";)?.*$`)

// getTest parses one EPD line into a Test, nil for comments, blank
// lines or lines that do not parse.
func getTest(line string) *Test {
	line = strings.TrimSpace(line)
	line = leadingComments.ReplaceAllString(line, "")
	line = trailingComments.ReplaceAllString(line, "")

	if len(line) == 0 {
		return nil
	}

	if !epdRegex.MatchString(line) {
		log.Warningf("No EPD found in %s", line)
		return nil
	}
	parts := epdRegex.FindStringSubmatch(line)

	p, err := position.FromFen(parts[1])
	if err != nil {
		log.Warningf("fen part of EPD is invalid. %s", parts[1])
		return nil
	}
	fen := parts[1]

	var ttype testType
	switch parts[2] {
	case "dm":
		ttype = DM
	case "bm":
		ttype = BM
	case "am":
		ttype = AM
	default:
		log.Warningf("Opcode from EPD is invalid or not implemented %s", parts[2])
		return nil
	}

	resultMoves := moveslice.NewMoveSlice(4)
	dmDepth := 0
	if ttype == BM || ttype == AM {
		result := parts[3]
		result = strings.ReplaceAll(result, "!", "")
		result = strings.ReplaceAll(result, "?", "")

		// expected moves must be legal SAN on the position
		mg := movegen.NewGenerator()
		for _, r := range strings.Split(result, " ") {
			if m := mg.MoveFromSan(p, strings.TrimSpace(r)); m != MoveNone {
				resultMoves.PushBack(m)
			}
		}
		if resultMoves.Len() == 0 {
			log.Warningf("Result moves from EPD is/are invalid on this position %s", parts[3])
			return nil
		}
	} else if ttype == DM {
		dmDepth, err = strconv.Atoi(parts[3])
		if err != nil {
			log.Warningf("Direct mate depth from EPD is invalid %s", parts[3])
			return nil
		}
	}

	return &Test{
		id:          parts[5],
		fen:         fen,
		tType:       ttype,
		targetMoves: *resultMoves,
		mateDepth:   dmDepth,
		line:        line,
	}
}

// getTestLines resolves the file path and reads all lines.
func getTestLines(filePath string) (*[]string, error) {
	if !filepath.IsAbs(filePath) {
		wd, _ := os.Getwd()
		filePath = filepath.Join(wd, filePath)
	}
	filePath = filepath.Clean(filePath)

	if _, err := os.Stat(filePath); err != nil {
		log.Errorf("File \"%s\" does not exist\n", filePath)
		return nil, err
	}

	log.Infof("Reading test suite tests from file: %s\n", filePath)
	startReading := time.Now()
	lines, err := readFile(filePath)
	if err != nil {
		return nil, err
	}
	log.Infof("Finished reading %d lines from file in: %d ms\n", len(*lines), time.Since(startReading).Milliseconds())
	return lines, nil
}

func readFile(filePath string) (*[]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		log.Errorf("File \"%s\" could not be read; %s\n", filePath, err)
		return nil, err
	}
	defer func() {
		if err = f.Close(); err != nil {
			log.Errorf("File \"%s\" could not be closed: %s\n", filePath, err)
		}
	}()
	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err = s.Err(); err != nil {
		log.Errorf("Error while reading file \"%s\": %s\n", filePath, err)
		return nil, err
	}
	return &lines, nil
}

func (rt *resultType) String() string {
	switch *rt {
	case NotTested:
		return "Not tested"
	case Skipped:
		return "Skipped"
	case Failed:
		return "Failed"
	case Success:
		return "Success"
	default:
		return "N/A"
	}
}

func (tt *testType) String() string {
	switch *tt {
	case BM:
		return "bm"
	case AM:
		return "am"
	case DM:
		return "dm"
	default:
		return "N/A"
	}
}
