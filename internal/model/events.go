package model

// EventType identifies a presentation update emitted by a match
type EventType string

const (
	EventCellFilled      EventType = "cell_filled"
	EventCellCleared     EventType = "cell_cleared"
	EventLineHighlighted EventType = "line_highlighted"
	EventStatus          EventType = "status"
	EventScores          EventType = "scores"
	EventNames           EventType = "names"
	EventPhase           EventType = "phase"
)

// Event is a single presentation update. Only the fields relevant to
// the event type are set.
type Event struct {
	Type    EventType  `json:"type"`
	MatchID MatchID    `json:"match_id,omitempty"`
	Cell    *int       `json:"cell,omitempty"`
	Symbol  Symbol     `json:"symbol,omitempty"`
	Line    *Line      `json:"line,omitempty"`
	Text    string     `json:"text,omitempty"`
	Scores  *[2]int    `json:"scores,omitempty"`
	Names   *[2]string `json:"names,omitempty"`
	Phase   Phase      `json:"phase,omitempty"`
}

// CellFilledEvent is emitted after a move is applied
func CellFilledEvent(cell int, symbol Symbol) Event {
	return Event{Type: EventCellFilled, Cell: &cell, Symbol: symbol}
}

// CellClearedEvent is emitted for each cell when a round starts
func CellClearedEvent(cell int) Event {
	return Event{Type: EventCellCleared, Cell: &cell}
}

// LineHighlightedEvent is emitted once when a win is detected
func LineHighlightedEvent(line Line) Event {
	return Event{Type: EventLineHighlighted, Line: &line}
}

// StatusEvent carries the status text
func StatusEvent(text string) Event {
	return Event{Type: EventStatus, Text: text}
}

// ScoresEvent carries both scores in seat order
func ScoresEvent(player1, player2 int) Event {
	return Event{Type: EventScores, Scores: &[2]int{player1, player2}}
}

// NamesEvent carries both display names in seat order
func NamesEvent(player1, player2 string) Event {
	return Event{Type: EventNames, Names: &[2]string{player1, player2}}
}

// PhaseEvent is emitted when the match moves between screens
func PhaseEvent(phase Phase) Event {
	return Event{Type: EventPhase, Phase: phase}
}
