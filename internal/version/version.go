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

// Package version holds build-time identifying information for the
// engine binary. The two vars can be set at link time via
// -ldflags "-X .../version.build=... -X .../version.date=..."; without
// that they read "dev" and "unknown".
package version

var (
	build = "dev"
	date  = "unknown"
)

// SemVer is the engine's release version. Bump by hand on tagging.
const SemVer = "0.9.0"

// Version returns a single human-readable string combining the semantic
// version with the build and date stamps, e.g. "0.9.0 (dev, unknown)".
func Version() string {
	return SemVer + " (" + build + ", " + date + ")"
}
