// Package components renders the fragments of a match page. Each fragment
// carries a stable id so server-sent updates can swap it out of band.
package components

import (
	"strconv"
	"strings"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Element ids targeted by out-of-band swaps
const (
	NamesID  = "names"
	ScoresID = "scores"
	StatusID = "status"
)

var (
	modes   = []model.Mode{model.ModeOneHuman, model.ModeTwoHuman}
	symbols = []model.Symbol{model.SymbolX, model.SymbolO}
)

// CellID returns the element id of a board cell
func CellID(cell int) string {
	return "cell-" + strconv.Itoa(cell)
}

// MatchPath returns the URL of a match page, or of one of its actions when
// suffix is set
func MatchPath(matchID model.MatchID, suffix string) string {
	return "/matches/" + string(matchID) + suffix
}

func symbolClass(symbol model.Symbol) string {
	return "cell-" + strings.ToLower(string(symbol))
}

func isWinningCell(m *model.Match, cell int) bool {
	return m.Outcome.Kind == model.OutcomeWin && m.Outcome.Line.Contains(cell)
}

func modeLabel(mode model.Mode) string {
	if mode == model.ModeTwoHuman {
		return "Two players"
	}
	return "One player"
}
