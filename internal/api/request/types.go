package request

// ChooseModeRequest is the request body for choosing the number of players
type ChooseModeRequest struct {
	Mode *int `json:"mode" validate:"required"`
}

// ChooseSymbolRequest is the request body for choosing Player 1's symbol
type ChooseSymbolRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}

// MoveRequest is the request body for playing a cell
type MoveRequest struct {
	Cell *int `json:"cell" validate:"required"`
}

// Websocket message types sent by clients
const (
	MessageMode   = "mode"
	MessageSymbol = "symbol"
	MessageCell   = "cell"
	MessageReset  = "reset"
)

// ClientMessage is a websocket message sent by a client.
// Only the field matching Type is read.
type ClientMessage struct {
	Type   string `json:"type" validate:"required,oneof=mode symbol cell reset"`
	Mode   *int   `json:"mode,omitempty" validate:"required_if=Type mode"`
	Symbol string `json:"symbol,omitempty" validate:"required_if=Type symbol"`
	Cell   *int   `json:"cell,omitempty" validate:"required_if=Type cell"`
}
