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

package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveFile resolves a possibly relative file path against the current
// working directory and the executable's directory, in that order, and
// returns the cleaned absolute path of the first existing regular file.
func ResolveFile(path string) (string, error) {
	resolved, err := resolve(path, func(fi os.FileInfo) bool { return !fi.IsDir() })
	if err != nil {
		return "", fmt.Errorf("file %s could not be resolved: %w", path, err)
	}
	return resolved, nil
}

// ResolveFolder resolves a possibly relative directory path like
// ResolveFile. A relative directory that exists nowhere is created below
// the current working directory so callers can always write to it
// (e.g. log folders on a fresh checkout).
func ResolveFolder(path string) (string, error) {
	resolved, err := resolve(path, os.FileInfo.IsDir)
	if err == nil {
		return resolved, nil
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("folder %s could not be resolved: %w", path, err)
	}
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		return "", wdErr
	}
	created := filepath.Join(wd, filepath.Clean(path))
	if mkErr := os.MkdirAll(created, 0755); mkErr != nil {
		return "", fmt.Errorf("folder %s could not be created: %w", path, mkErr)
	}
	return created, nil
}

// resolve probes the path as given, then relative to the working
// directory, then relative to the executable.
func resolve(path string, accept func(os.FileInfo) bool) (string, error) {
	candidates := []string{filepath.Clean(path)}
	if !filepath.IsAbs(path) {
		if wd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(wd, path))
		}
		if exe, err := os.Executable(); err == nil {
			candidates = append(candidates, filepath.Join(filepath.Dir(exe), path))
		}
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && accept(fi) {
			return filepath.Abs(c)
		}
	}
	return "", os.ErrNotExist
}
