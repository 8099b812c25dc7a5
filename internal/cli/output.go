package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Match:
		o.printMatch(v)
	case response.ActionResponse:
		o.printAction(v)
	case response.HealthResponse:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printMatch(m response.Match) {
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "Phase: %s\n", m.Phase)
	if m.Round > 0 {
		fmt.Fprintf(o.w, "Round: %d\n", m.Round)
	}
	for _, p := range m.Players {
		symbol := ""
		if p.Symbol != "" {
			symbol = " (" + p.Symbol + ")"
		}
		fmt.Fprintf(o.w, "%s%s: %d\n", p.DisplayName, symbol, p.Score)
		if p.IsBot && p.Strategy != "" {
			fmt.Fprintf(o.w, "Strategy: %s\n", model.BotStrategyDisplayName(p.Strategy))
		}
	}

	if m.Phase == string(model.PhaseRoundActive) || m.Phase == string(model.PhaseRoundEnding) {
		var board model.Board
		for i, cell := range m.Board {
			if i < model.BoardSize {
				board[i] = model.Symbol(cell)
			}
		}
		var highlight []int
		if m.Outcome.Kind == string(model.OutcomeWin) {
			highlight = m.Outcome.Line
		}
		fmt.Fprintln(o.w)
		fmt.Fprint(o.w, FormatBoard(board, highlight))
		fmt.Fprintln(o.w)
	}

	fmt.Fprintf(o.w, "Status: %s\n", m.Status)
}

func (o *Output) printAction(a response.ActionResponse) {
	if !a.Accepted {
		fmt.Fprintln(o.w, "Input ignored")
	}
	o.printMatch(a.Match)
}

func (o *Output) printHealth(h response.HealthResponse) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Matches: %d\n", h.Matches)
}

// FormatBoard renders a 3x3 grid. Empty cells show their index, cells in
// highlight are shown in brackets.
func FormatBoard(board model.Board, highlight []int) string {
	marked := make(map[int]bool, len(highlight))
	for _, cell := range highlight {
		marked[cell] = true
	}

	var b strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			b.WriteString("---+---+---\n")
		}
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col
			content := strconv.Itoa(i)
			if board[i].IsPlayable() {
				content = string(board[i])
			}
			if marked[i] {
				cells[col] = "[" + content + "]"
			} else {
				cells[col] = " " + content + " "
			}
		}
		b.WriteString(strings.Join(cells, "|") + "\n")
	}
	return b.String()
}
