// Package pages renders complete HTML documents.
package pages

import (
	"strings"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
)

// SSE event names the match page listens for
const (
	EventCellUpdate   = "cell-update"
	EventStatusUpdate = "status-update"
	EventScoresUpdate = "scores-update"
	EventNamesUpdate  = "names-update"
	EventRefresh      = "refresh"
)

// fragmentEvents are swapped out of band by the page's sse sink
var fragmentEvents = strings.Join([]string{EventCellUpdate, EventStatusUpdate, EventScoresUpdate, EventNamesUpdate}, ",")

// HomeData is the data for the home page
type HomeData struct {
	Page        layout.PageData
	ActiveCount int
}

// MatchData is the data for a match page
type MatchData struct {
	Page  layout.PageData
	Match *model.Match
}

// ErrorData is the data for error pages
type ErrorData struct {
	Page    layout.PageData
	Status  int
	Message string
}
