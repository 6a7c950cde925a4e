//
// chess-engine - a UCI chess engine written in Go
//
// MIT License
//
// Copyright (c) 2025-2026 Tobias Alexander Wulff
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package transpositiontable is a fixed-size, open-addressed cache of
// search results keyed by Zobrist hash. One bucket per hash value; a
// colliding probe either replaces the bucket in place or is dropped,
// there is no chaining and no separate eviction sweep - the replacement
// decision on each store IS the eviction policy. It is not safe for
// concurrent use; Resize and Clear in particular must not race with
// a running search.
package transpositiontable

import (
	"math"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/TobiasAlexanderWulff/chess-engine/internal/logging"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/position"
	. "github.com/TobiasAlexanderWulff/chess-engine/internal/types"
	"github.com/TobiasAlexanderWulff/chess-engine/internal/util"
)

var out = message.NewPrinter(language.German)

// MaxSizeInMB bounds how large a table Resize will honor.
const MaxSizeInMB = 65_536

// TtTable is the transposition table. Construct with NewTtTable.
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
	generation         uint8
	Stats              TtStats
}

// TtStats counts table activity for UCI info and tuning. Hits are also
// broken down by the stored entry's flag so the exact/lower/upper split
// always sums to the total hit count.
type TtStats struct {
	numberOfPuts         uint64
	numberOfStores       uint64
	numberOfReplacements uint64
	numberOfCollisions   uint64
	numberOfUpdates      uint64
	numberOfProbes       uint64
	numberOfHits         uint64
	numberOfExactHits    uint64
	numberOfLowerHits    uint64
	numberOfUpperHits    uint64
	numberOfMisses       uint64
}

// NewTtTable builds a table sized to fit within sizeInMByte.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := &TtTable{log: myLogging.GetLog()}
	tt.Resize(sizeInMByte)
	return tt
}

// Resize rebuilds the table so its entry count is the largest power of
// two fitting within sizeInMByte; all entries are lost.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("requested TT size %d MB reduced to max %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	tt.sizeInByte = uint64(sizeInMByte) * MB
	tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/TtEntrySize))))
	tt.hashKeyMask = tt.maxNumberOfEntries - 1

	if tt.sizeInByte == 0 {
		tt.maxNumberOfEntries = 0
	}
	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.generation = 0

	tt.log.Info(out.Sprintf("TT size %d MByte, capacity %d entries (%d bytes each), requested %d MByte",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), sizeInMByte))
	tt.log.Debug(util.MemStat())
}

// NewGeneration advances the table's current generation. The search
// calls this once at the start of each search run; entries written in
// older generations become preferred replacement targets without the
// table ever having to walk its slots to "age" them.
func (tt *TtTable) NewGeneration() {
	if tt.generation < maxGeneration {
		tt.generation++
	} else {
		tt.generation = 0
	}
}

// GetEntry returns the bucket for key if its stored key matches, or nil
// on a miss or collision. Unlike Probe, it does not touch Stats.
func (tt *TtTable) GetEntry(key Key) *TtEntry {
	if tt.maxNumberOfEntries == 0 {
		return nil
	}
	e := &tt.data[tt.hash(key)]
	if e.key == key {
		return e
	}
	return nil
}

// Probe looks up key and records a hit or miss in Stats. A hit returns
// the matching entry regardless of its depth or flag - the caller (see
// the search's node algorithm) decides whether the stored score is deep
// enough and whether its flag makes it usable against the current
// alpha/beta window.
func (tt *TtTable) Probe(key Key) *TtEntry {
	if tt.maxNumberOfEntries == 0 {
		return nil
	}
	tt.Stats.numberOfProbes++
	e := &tt.data[tt.hash(key)]
	if e.key == key {
		tt.Stats.numberOfHits++
		switch e.Flag() {
		case EXACT:
			tt.Stats.numberOfExactHits++
		case LOWER:
			tt.Stats.numberOfLowerHits++
		case UPPER:
			tt.Stats.numberOfUpperHits++
		}
		return e
	}
	tt.Stats.numberOfMisses++
	return nil
}

// Put stores a search result for key. Replacement policy: an empty
// bucket is always taken; a bucket already holding key is updated in
// place; otherwise the existing entry is kept unless the new depth
// exceeds it, or the existing entry's generation already lags the
// table's current generation by two or more - in which case it is
// replaced and counted as a replacement, never a plain overwrite.
func (tt *TtTable) Put(key Key, move Move, depth int8, value Value, valueType ValueType, eval Value) {
	if tt.maxNumberOfEntries == 0 {
		return
	}

	e := &tt.data[tt.hash(key)]
	tt.Stats.numberOfPuts++

	switch {
	case e.IsEmpty():
		tt.numberOfEntries++
		tt.Stats.numberOfStores++
		tt.write(e, key, move, depth, value, valueType, eval)

	case e.key == key:
		tt.Stats.numberOfUpdates++
		tt.Stats.numberOfStores++
		tt.update(e, key, move, depth, value, valueType, eval)

	default:
		tt.Stats.numberOfCollisions++
		stale := int(tt.generation)-int(e.Generation()) >= 2
		if depth > e.Depth() || stale {
			tt.Stats.numberOfStores++
			tt.Stats.numberOfReplacements++
			tt.write(e, key, move, depth, value, valueType, eval)
		}
	}
}

// write unconditionally overwrites e with a fresh entry.
func (tt *TtTable) write(e *TtEntry, key Key, move Move, depth int8, value Value, valueType ValueType, eval Value) {
	e.key = key
	e.move = uint16(move)
	e.eval = int16(eval)
	e.value = int16(value)
	e.vmeta = packMeta(depth, valueType, tt.generation)
}

// update refreshes an entry already keyed to key, preserving whichever
// fields the caller chose not to supply (MoveNone / ValueNA sentinels)
// rather than clobbering a previously good move or eval with nothing.
func (tt *TtTable) update(e *TtEntry, key Key, move Move, depth int8, value Value, valueType ValueType, eval Value) {
	e.key = key
	if move != MoveNone {
		e.move = uint16(move)
	}
	if eval != ValueNA {
		e.eval = int16(eval)
	}
	if value != ValueNA {
		e.value = int16(value)
		e.vmeta = packMeta(depth, valueType, tt.generation)
	}
}

// Clear discards every entry, keeping the current capacity.
func (tt *TtTable) Clear() {
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.generation = 0
	tt.Stats = TtStats{}
}

// Hashfull returns table occupancy in permille, as UCI's "hashfull".
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / tt.maxNumberOfEntries)
}

// String summarizes size and hit-rate statistics for logging.
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d%%) puts %d "+
		"updates %d collisions %d replacements %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), tt.numberOfEntries, tt.Hashfull()/10,
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfReplacements,
		tt.Stats.numberOfProbes, tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// Len returns the number of occupied buckets.
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}

// Probes returns the number of probes since the last Clear.
func (tt *TtTable) Probes() uint64 {
	return tt.Stats.numberOfProbes
}

// Hits returns the number of probe hits since the last Clear.
func (tt *TtTable) Hits() uint64 {
	return tt.Stats.numberOfHits
}

// ExactHits returns the probe hits on entries with an EXACT flag.
func (tt *TtTable) ExactHits() uint64 {
	return tt.Stats.numberOfExactHits
}

// LowerHits returns the probe hits on entries with a LOWER flag.
func (tt *TtTable) LowerHits() uint64 {
	return tt.Stats.numberOfLowerHits
}

// UpperHits returns the probe hits on entries with an UPPER flag.
func (tt *TtTable) UpperHits() uint64 {
	return tt.Stats.numberOfUpperHits
}

// Stores returns the number of successful writes and updates.
func (tt *TtTable) Stores() uint64 {
	return tt.Stats.numberOfStores
}

// Replacements returns the number of collision replacements.
func (tt *TtTable) Replacements() uint64 {
	return tt.Stats.numberOfReplacements
}

// hash maps a Zobrist key onto its bucket index.
func (tt *TtTable) hash(key Key) uint64 {
	return uint64(key) & tt.hashKeyMask
}
