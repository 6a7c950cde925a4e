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

package testsuite

import (
	"os"
	"path"
	"runtime"
	"testing"
	"time"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/config"
	myLogging "github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
)

var logTest *logging.Logger

// tests run from the project root so relative config paths resolve
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	log = myLogging.GetLog()
	logTest = myLogging.GetTestLog()
	os.Exit(m.Run())
}

func TestGetTest(t *testing.T) {
	line := "2b4k/8/8/8/8/3N3N/P4p2/1K6 w - - bm Nhxf2 Ndxf2; id \"SUITE-1 #7\";"
	test := getTest(line)
	require.NotNil(t, test)
	assert.EqualValues(t, "2b4k/8/8/8/8/3N3N/P4p2/1K6 w - -", test.fen)
	assert.EqualValues(t, "h3f2 d3f2", test.targetMoves.StringUci())
	assert.EqualValues(t, "SUITE-1 #7", test.id)
	assert.EqualValues(t, BM, test.tType)

	line = "6k1/P7/8/8/8/8/8/3K4 w - - bm a8=Q; id \"SUITE-1 #4\";"
	test = getTest(line)
	require.NotNil(t, test)
	assert.EqualValues(t, "6k1/P7/8/8/8/8/8/3K4 w - -", test.fen)
	assert.EqualValues(t, "a7a8q", test.targetMoves.StringUci())
	assert.EqualValues(t, BM, test.tType)

	line = "8/8/8/8/8/3K4/R7/5k2 w - - dm 4; id \"SUITE-1 #1\";"
	test = getTest(line)
	require.NotNil(t, test)
	assert.EqualValues(t, DM, test.tType)
	assert.EqualValues(t, 4, test.mateDepth)
}

func TestGetTestRejectsInvalid(t *testing.T) {
	// broken fen
	assert.Nil(t, getTest("6k1/P7/8/9/8/8/8/3K4 w - - bm a8=Q; id \"X\";"))
	// unknown opcode
	assert.Nil(t, getTest("6k1/P7/8/8/8/8/8/3K4 w - - aa a8=Q; id \"X\";"))
	// one of two result moves invalid - still a valid test
	assert.NotNil(t, getTest("2b4k/8/8/8/8/3N3N/P4p2/1K6 w - - bm Nhxf2 Naxf2; id \"X\";"))
	// all result moves invalid
	assert.Nil(t, getTest("2b4k/8/8/8/8/3N3N/P4p2/1K6 w - - bm Nbxf2 Naxf2; id \"X\";"))
	// comments and blank lines
	assert.Nil(t, getTest("# just a comment"))
	assert.Nil(t, getTest("   "))
}

func TestNewTestSuite(t *testing.T) {
	ts, err := NewTestSuite("test/testdata/testsets/engine_tests.epd", 2*time.Second, 0)
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.EqualValues(t, 6, len(ts.Tests))
}

func TestNewTestSuiteMissingFile(t *testing.T) {
	_, err := NewTestSuite("test/testdata/testsets/no-such-file.epd", time.Second, 0)
	assert.Error(t, err)
}

func TestRunEngineSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("takes several seconds")
	}
	ts, err := NewTestSuite("test/testdata/testsets/engine_tests.epd", 0, 8)
	require.NoError(t, err)
	ts.RunTests()
	require.NotNil(t, ts.LastResult)
	assert.EqualValues(t, len(ts.Tests), ts.LastResult.Counter)
	// the simple tactics and mates must all be found at depth 8
	assert.GreaterOrEqual(t, ts.LastResult.SuccessCounter, 5)
}
