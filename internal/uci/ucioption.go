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

package uci

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	. "github.com/TobiasAlexanderWulff/chess-engine/internal/config"
)

// uciOptionType enumerates the option types of the UCI protocol.
type uciOptionType int

const (
	Check uciOptionType = iota
	Spin
	Combo
	Button
	String
)

// optionHandler is invoked when "setoption" changes the option.
type optionHandler func(*UciHandler, *uciOption)

// uciOption is one engine option as declared to the GUI on "uci".
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	VarValue     string
	CurrentValue string
}

type optionMap map[string]*uciOption

// uciOptions holds all declared options; sortOrderUciOptions fixes the
// order they are listed in.
var uciOptions optionMap
var sortOrderUciOptions []string

// boolOption builds a Check option writing through to a Settings flag.
func boolOption(name string, target *bool) *uciOption {
	def := strconv.FormatBool(*target)
	return &uciOption{
		NameID: name,
		HandlerFunc: func(u *UciHandler, o *uciOption) {
			v, _ := strconv.ParseBool(o.CurrentValue)
			*target = v
			log.Debugf("Set %s to %v", o.NameID, v)
		},
		OptionType:   Check,
		DefaultValue: def,
		CurrentValue: def,
	}
}

func init() {
	s := &Settings.Search
	e := &Settings.Eval

	uciOptions = optionMap{
		"Print Config": {NameID: "Print Config", HandlerFunc: printConfig, OptionType: Button},
		"Clear Hash":   {NameID: "Clear Hash", HandlerFunc: clearCache, OptionType: Button},
		"Use_Hash":     boolOption("Use_Hash", &s.UseTT),
		"Hash": {NameID: "Hash", HandlerFunc: cacheSize, OptionType: Spin,
			DefaultValue: strconv.Itoa(s.TTSize), CurrentValue: strconv.Itoa(s.TTSize),
			MinValue: "1", MaxValue: "4096"},
		"MultiPV": {NameID: "MultiPV", HandlerFunc: multiPv, OptionType: Spin,
			DefaultValue: strconv.Itoa(s.MultiPV), CurrentValue: strconv.Itoa(s.MultiPV),
			MinValue: "1", MaxValue: "10"},

		"Use_Book": boolOption("Use_Book", &s.UseBook),
		"Ponder":   boolOption("Ponder", &s.UsePonder),

		"Quiescence": boolOption("Quiescence", &s.UseQuiescence),
		"Use_QHash":  boolOption("Use_QHash", &s.UseQSTT),
		"Use_SEE":    boolOption("Use_SEE", &s.UseSEE),

		"Use_PVS":         boolOption("Use_PVS", &s.UsePVS),
		"Use_IID":         boolOption("Use_IID", &s.UseIID),
		"Use_Killer":      boolOption("Use_Killer", &s.UseKiller),
		"Use_HistCount":   boolOption("Use_HistCount", &s.UseHistoryCounter),
		"Use_CounterMove": boolOption("Use_CounterMove", &s.UseCounterMoves),

		"Use_Mdp":      boolOption("Use_Mdp", &s.UseMDP),
		"Use_Rfp":      boolOption("Use_Rfp", &s.UseRFP),
		"Use_NullMove": boolOption("Use_NullMove", &s.UseNullMove),
		"Use_Fp":       boolOption("Use_Fp", &s.UseFP),
		"Use_Lmr":      boolOption("Use_Lmr", &s.UseLmr),
		"Use_Lmp":      boolOption("Use_Lmp", &s.UseLmp),

		"Use_Ext":         boolOption("Use_Ext", &s.UseExt),
		"Use_ExtAddDepth": boolOption("Use_ExtAddDepth", &s.UseExtAddDepth),
		"Use_CheckExt":    boolOption("Use_CheckExt", &s.UseCheckExt),
		"Use_ThreatExt":   boolOption("Use_ThreatExt", &s.UseThreatExt),

		"Eval_Lazy":     boolOption("Eval_Lazy", &e.UseLazyEval),
		"Eval_Mobility": boolOption("Eval_Mobility", &e.UseMobility),
		"Eval_AdvPiece": boolOption("Eval_AdvPiece", &e.UseAdvancedPieceEval),
	}

	sortOrderUciOptions = []string{
		"Print Config",
		"Clear Hash",
		"Use_Hash",
		"Hash",
		"MultiPV",
		"Use_Book",
		"Ponder",

		"Quiescence",
		"Use_QHash",
		"Use_SEE",

		"Use_IID",
		"Use_PVS",
		"Use_Killer",
		"Use_HistCount",
		"Use_CounterMove",

		"Use_Mdp",
		"Use_Rfp",
		"Use_NullMove",
		"Use_Fp",
		"Use_Lmr",
		"Use_Lmp",

		"Use_Ext",
		"Use_ExtAddDepth",
		"Use_CheckExt",
		"Use_ThreatExt",

		"Eval_Lazy",
		"Eval_Mobility",
		"Eval_AdvPiece",
	}
}

// GetOptions renders every option as its "option name ..." declaration
// line in the fixed listing order.
func (o *optionMap) GetOptions() *[]string {
	var options []string
	for _, opt := range sortOrderUciOptions {
		options = append(options, uciOptions[opt].String())
	}
	return &options
}

// String renders the option declaration as required by the UCI protocol.
func (o *uciOption) String() string {
	var os strings.Builder
	os.WriteString("option name ")
	os.WriteString(o.NameID)
	os.WriteString(" type ")
	switch o.OptionType {
	case Check:
		os.WriteString("check default ")
		os.WriteString(o.DefaultValue)
	case Spin:
		os.WriteString("spin default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" min ")
		os.WriteString(o.MinValue)
		os.WriteString(" max ")
		os.WriteString(o.MaxValue)
	case Combo:
		os.WriteString("combo default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" var ")
		os.WriteString(o.VarValue)
	case Button:
		os.WriteString("button")
	case String:
		os.WriteString("string default ")
		os.WriteString(o.DefaultValue)
	}
	return os.String()
}

// printConfig dumps the current search and eval configuration as info
// strings.
func printConfig(handler *UciHandler, option *uciOption) {
	handler.SendInfoString("Search Config:")
	s := reflect.ValueOf(&Settings.Search).Elem()
	typeOfT := s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		handler.SendInfoString(fmt.Sprintf("%-2d: %-22s %-6s = %v", i, typeOfT.Field(i).Name, f.Type(), f.Interface()))
	}
	handler.SendInfoString("Evaluation Config:")
	s = reflect.ValueOf(&Settings.Eval).Elem()
	typeOfT = s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		handler.SendInfoString(fmt.Sprintf("%-2d: %-22s %-6s = %v", i, typeOfT.Field(i).Name, f.Type(), f.Interface()))
	}
	log.Debug(Settings.String())
}

func clearCache(u *UciHandler, o *uciOption) {
	u.mySearch.ClearHash()
	log.Debug("Cleared Cache")
}

func cacheSize(u *UciHandler, o *uciOption) {
	v, _ := strconv.Atoi(o.CurrentValue)
	Settings.Search.TTSize = v
	u.mySearch.ResizeCache()
}

func multiPv(u *UciHandler, o *uciOption) {
	v, _ := strconv.Atoi(o.CurrentValue)
	if v < 1 {
		v = 1
	}
	Settings.Search.MultiPV = v
	log.Debugf("Set MultiPV to %v", Settings.Search.MultiPV)
}
