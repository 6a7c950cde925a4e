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

import "sync/atomic"

// Bool is a bool safe for concurrent use, backed by a uint32 and the
// sync/atomic primitives. The zero value is a usable false. The search
// uses it for the cooperative stop flag shared between the worker, the
// timer goroutine and the protocol thread.
type Bool struct{ v uint32 }

// NewBool creates a Bool with an initial value.
func NewBool(initial bool) *Bool {
	return &Bool{toWord(initial)}
}

// Load atomically reads the value.
func (b *Bool) Load() bool {
	return atomic.LoadUint32(&b.v) == 1
}

// Store atomically writes the value.
func (b *Bool) Store(value bool) {
	atomic.StoreUint32(&b.v, toWord(value))
}

// CAS atomically swaps old for new and reports whether it happened.
func (b *Bool) CAS(old, new bool) bool {
	return atomic.CompareAndSwapUint32(&b.v, toWord(old), toWord(new))
}

// Swap atomically sets the value and returns the previous one.
func (b *Bool) Swap(value bool) bool {
	return atomic.SwapUint32(&b.v, toWord(value)) == 1
}

// Toggle atomically negates the value and returns the previous one.
func (b *Bool) Toggle() bool {
	for {
		old := b.Load()
		if b.CAS(old, !old) {
			return old
		}
	}
}

func toWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
