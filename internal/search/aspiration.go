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
	"github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
)

// aspirationSearch searches an iteration with a small window centered on
// the previous iteration's value. Most of the time the new value lands
// inside and the search is much cheaper than with a full window. When the
// result hits the window's edge, the window is widened on the violated
// side through the configured steps and the iteration re-searched, ending
// with a full window as the last resort.
//
// Near mate values the window games are pointless and a full window is
// used right away.
func (s *Search) aspirationSearch(p *position.Position, depth int, bestValue Value) Value {
	if bestValue.IsCheckMateValue() {
		s.rootSearch(p, depth, ValueMin, ValueMax)
		return s.currentBestRootValue(bestValue)
	}

	step := 0
	alpha := maxValue(ValueMin, bestValue-aspirationSteps[step])
	beta := minValue(ValueMax, bestValue+aspirationSteps[step])

	for {
		s.rootSearch(p, depth, alpha, beta)
		value := s.currentBestRootValue(bestValue)

		if s.stopConditions() {
			return value
		}

		switch {
		case value <= alpha:
			// fail low - widen below, keep the upper bound
			if alpha <= ValueMin {
				return value
			}
			s.statistics.AspirationFailLow++
			s.statistics.AspirationResearches++
			s.sendAspirationResearchInfo("upperbound")
			step++
			if step < len(aspirationSteps) {
				alpha = maxValue(ValueMin, bestValue-aspirationSteps[step])
			} else {
				alpha = ValueMin
			}
		case value >= beta:
			// fail high - widen above, keep the lower bound
			if beta >= ValueMax {
				return value
			}
			s.statistics.AspirationFailHigh++
			s.statistics.AspirationResearches++
			s.sendAspirationResearchInfo("lowerbound")
			step++
			if step < len(aspirationSteps) {
				beta = minValue(ValueMax, bestValue+aspirationSteps[step])
			} else {
				beta = ValueMax
			}
		default:
			return value
		}
	}
}

// currentBestRootValue reads the value of the best root move of the
// current iteration, falling back to the previous iteration's value when
// the PV is empty.
func (s *Search) currentBestRootValue(fallback Value) Value {
	if s.pv[0].Len() > 0 {
		return s.pv[0].At(0).ValueOf()
	}
	return fallback
}

func maxValue(a Value, b Value) Value {
	if a > b {
		return a
	}
	return b
}

func minValue(a Value, b Value) Value {
	if a < b {
		return a
	}
	return b
}
