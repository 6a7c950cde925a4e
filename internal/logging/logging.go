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

// Package logging is a thin helper around "github.com/op/go-logging" so
// every package in the engine gets a preconfigured Logger with one line.
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/TobiasAlexanderWulff/chess-engine/internal/config"
)

// Out is a locale-aware printer used for thousands-grouped numbers in
// statistics output across the engine (tt, search, uci).
var Out = message.NewPrinter(language.German)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger
	testLog     *logging.Logger
	uciLog      *logging.Logger

	standardFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`)
	uciFormat = logging.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)
)

func init() {
	standardLog = logging.MustGetLogger("standard")
	searchLog = logging.MustGetLogger("search")
	testLog = logging.MustGetLogger("test")
	uciLog = logging.MustGetLogger("uci")
}

// GetLog returns the standard engine logger, configured from config.LogLevel.
func GetLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix), standardFormat))
	backend.SetLevel(logging.Level(config.LogLevel), "")
	standardLog.SetBackend(backend)
	return standardLog
}

// GetSearchLog returns the search logger, configured from config.SearchLogLevel.
func GetSearchLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix), standardFormat))
	backend.SetLevel(logging.Level(config.SearchLogLevel), "")
	searchLog.SetBackend(backend)
	return searchLog
}

// GetTestLog returns the test logger, configured from config.TestLogLevel.
func GetTestLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix), standardFormat))
	backend.SetLevel(logging.Level(config.TestLogLevel), "")
	testLog.SetBackend(backend)
	return testLog
}

// GetUciLog returns a logger that mirrors the raw UCI wire protocol to
// stdout. The engine never treats this as its transport — it is a pure
// observer wired in by the adapter for diagnostics.
func GetUciLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix), uciFormat))
	backend.SetLevel(logging.DEBUG, "")
	uciLog.SetBackend(backend)
	return uciLog
}
