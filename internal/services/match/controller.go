package match

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/presenter"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/outcome"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

const instrumentationName = "github.com/mcoot/tictactoe-go/internal/services/match"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)
)

// Status texts shown outside of a round
const (
	StatusChooseMode   = "Choose one or two players"
	StatusChooseSymbol = "Choose X or O"
	StatusStalemate    = "Stalemate"
)

// Config holds the timing and opponent settings for a match
type Config struct {
	// TurnDelay is how long the computer waits before moving
	TurnDelay time.Duration
	// RoundRestartDelay is how long a finished board stays up before the next round
	RoundRestartDelay time.Duration
	// BotStrategy names the strategy the computer plays with
	BotStrategy string
}

// DefaultConfig returns the standard match timings
func DefaultConfig() Config {
	return Config{
		TurnDelay:         1500 * time.Millisecond,
		RoundRestartDelay: 3 * time.Second,
		BotStrategy:       model.BotStrategyLine,
	}
}

// Controller owns one match and drives it through its phases.
// Every inbound event returns whether it was accepted; rejected events
// change nothing and render nothing.
type Controller struct {
	mu        sync.Mutex
	match     model.Match
	opponent  *bot.Opponent
	presenter presenter.Presenter

	storage        storage.Storage
	outcomeService *outcome.Service
	botService     *bot.Service
	clock          clock.Clock
	config         Config
	logger         *slog.Logger

	turnTimer    clock.Timer
	restartTimer clock.Timer
	closed       bool

	movesPlayed     metric.Int64Counter
	roundsCompleted metric.Int64Counter
}

// NewController creates a controller for a new match. Call Start to render
// the setup screen.
func NewController(
	id model.MatchID,
	config Config,
	p presenter.Presenter,
	storage storage.Storage,
	outcomeService *outcome.Service,
	botService *bot.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	if p == nil {
		p = presenter.Nop{}
	}
	now := clock.Now()
	c := &Controller{
		match: model.Match{
			ID:        id,
			Phase:     model.PhaseAwaitingMode,
			Players:   defaultPlayers(),
			Outcome:   model.Outcome{Kind: model.OutcomeOngoing},
			Status:    StatusChooseMode,
			CreatedAt: now,
			UpdatedAt: now,
		},
		presenter:      p,
		storage:        storage,
		outcomeService: outcomeService,
		botService:     botService,
		clock:          clock,
		config:         config,
		logger: logger.With(
			slog.String("component", "match-controller"),
			slog.String("match_id", string(id)),
		),
	}
	c.initMetrics()
	return c
}

func (c *Controller) initMetrics() {
	var err error
	c.movesPlayed, err = meter.Int64Counter("tictactoe.moves",
		metric.WithDescription("Moves applied to a board"))
	if err != nil {
		c.movesPlayed = noop.Int64Counter{}
	}
	c.roundsCompleted, err = meter.Int64Counter("tictactoe.rounds",
		metric.WithDescription("Rounds that ended in a win or stalemate"))
	if err != nil {
		c.roundsCompleted = noop.Int64Counter{}
	}
}

func defaultPlayers() [2]model.Player {
	return [2]model.Player{
		{DisplayName: model.PlayerOneName},
		{DisplayName: model.PlayerTwoName},
	}
}

// ID returns the match ID
func (c *Controller) ID() model.MatchID {
	return c.match.ID
}

// Snapshot returns a copy of the current match state
func (c *Controller) Snapshot() *model.Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.match.Clone()
}

// Start renders the setup screen and saves the initial snapshot
func (c *Controller) Start(ctx context.Context) {
	ctx, span := c.startSpan(ctx, "match.Start")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderAll()
	c.save(ctx)
	c.logger.Info("match started")
}

// Render replays the full current state to p without changing the match
func (c *Controller) Render(p presenter.Presenter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	renderMatch(&c.match, p)
}

// ChooseMode selects one or two human players
func (c *Controller) ChooseMode(ctx context.Context, mode model.Mode) bool {
	ctx, span := c.startSpan(ctx, "match.ChooseMode", attribute.Int("match.mode", int(mode)))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.match.Phase != model.PhaseAwaitingMode || !mode.IsValid() {
		return c.reject(span)
	}

	c.match.Mode = mode
	c.match.Players = defaultPlayers()
	if mode == model.ModeOneHuman {
		c.match.Players[1].DisplayName = model.ComputerName
		c.match.Players[1].IsBot = true
	}
	c.match.Phase = model.PhaseAwaitingSymbol
	c.match.Status = StatusChooseSymbol

	c.presenter.SetPlayerNames(c.match.Players[0].DisplayName, c.match.Players[1].DisplayName)
	c.presenter.ShowPhase(c.match.Phase)
	c.presenter.SetStatusText(c.match.Status)
	c.save(ctx)

	c.logger.Info("mode chosen", slog.Int("mode", int(mode)))
	return true
}

// ChooseSymbol assigns Player 1's symbol, Player 2 the other, and starts
// the first round with both scores at zero
func (c *Controller) ChooseSymbol(ctx context.Context, symbol model.Symbol) bool {
	ctx, span := c.startSpan(ctx, "match.ChooseSymbol", attribute.String("match.symbol", string(symbol)))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.match.Phase != model.PhaseAwaitingSymbol || !symbol.IsPlayable() {
		return c.reject(span)
	}

	c.match.Players[0].Symbol = symbol
	c.match.Players[1].Symbol = symbol.Opposite()
	c.match.Players[0].Score = 0
	c.match.Players[1].Score = 0
	c.match.Round = 0
	c.match.Generation++

	c.opponent = nil
	if c.match.Mode == model.ModeOneHuman {
		c.opponent = c.botService.NewOpponent(c.match.Players[1].Symbol, c.config.BotStrategy)
		c.match.Players[1].BotStrategy = c.opponent.StrategyName()
	}

	c.presenter.SetScoreText(0, 0)
	c.logger.Info("symbol chosen",
		slog.String("player1_symbol", string(symbol)),
		slog.String("player2_symbol", string(symbol.Opposite())),
	)

	c.startRound(ctx)
	return true
}

// ApplyHumanMove plays the current human player's symbol into cell
func (c *Controller) ApplyHumanMove(ctx context.Context, cell int) bool {
	ctx, span := c.startSpan(ctx, "match.ApplyHumanMove", attribute.Int("match.cell", cell))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.match.Phase != model.PhaseRoundActive || c.match.IsBotTurn() || !c.match.Board.IsEmpty(cell) {
		return c.reject(span)
	}

	symbol := c.match.CurrentPlayer().Symbol
	c.match.Board.Set(cell, symbol)
	c.presenter.RenderCellFilled(cell, symbol)
	c.movesPlayed.Add(ctx, 1, metric.WithAttributes(attribute.Bool("bot", false)))

	if !c.checkRoundEnd(ctx) {
		c.advanceTurn(ctx)
	}
	c.save(ctx)
	return true
}

// Reset abandons the match and returns to the mode choice with scores discarded.
// Ignored while already awaiting a mode.
func (c *Controller) Reset(ctx context.Context) bool {
	ctx, span := c.startSpan(ctx, "match.Reset")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.match.Phase == model.PhaseAwaitingMode {
		return c.reject(span)
	}

	c.stopTimers()
	c.match.Generation++
	c.opponent = nil
	c.match.Mode = model.ModeUnset
	c.match.Players = defaultPlayers()
	c.match.Board.Reset()
	c.match.CurrentPlayerIdx = 0
	c.match.Round = 0
	c.match.Outcome = model.Outcome{Kind: model.OutcomeOngoing}
	c.match.Phase = model.PhaseAwaitingMode
	c.match.Status = StatusChooseMode

	for i := range model.BoardSize {
		c.presenter.RenderCellCleared(i)
	}
	c.renderAll()
	c.save(ctx)

	c.logger.Info("match reset")
	return true
}

// Close stops pending work. Scheduled callbacks that fire later are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimers()
	c.match.Generation++
	c.closed = true
}

// startRound clears the board and gives Player 1 the first move
func (c *Controller) startRound(ctx context.Context) {
	c.match.Board.Reset()
	for i := range model.BoardSize {
		c.presenter.RenderCellCleared(i)
	}
	c.match.CurrentPlayerIdx = 0
	c.match.Outcome = model.Outcome{Kind: model.OutcomeOngoing}
	c.match.Round++
	c.match.Phase = model.PhaseRoundActive
	c.match.Status = turnStatus(c.match.CurrentPlayer())

	c.presenter.ShowPhase(c.match.Phase)
	c.presenter.SetStatusText(c.match.Status)
	c.save(ctx)

	c.logger.Info("round started", slog.Int("round", c.match.Round))

	if c.match.IsBotTurn() {
		c.scheduleAutomatedTurn()
	}
}

// applyAutomatedTurn is the scheduled computer move for the given generation
func (c *Controller) applyAutomatedTurn(generation uint64) bool {
	ctx, span := c.startSpan(context.Background(), "match.applyAutomatedTurn")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.turnTimer = nil
	if c.closed || generation != c.match.Generation || c.match.Phase != model.PhaseRoundActive || !c.match.IsBotTurn() || c.opponent == nil {
		c.logger.Debug("stale automated turn ignored", slog.Uint64("generation", generation))
		return c.reject(span)
	}

	cell := c.opponent.TakeTurn(&c.match.Board)
	if cell == model.NoCell {
		return c.reject(span)
	}
	span.SetAttributes(attribute.Int("match.cell", cell))
	c.presenter.RenderCellFilled(cell, c.opponent.Symbol)
	c.movesPlayed.Add(ctx, 1, metric.WithAttributes(attribute.Bool("bot", true)))

	if !c.checkRoundEnd(ctx) {
		c.advanceTurn(ctx)
	}
	c.save(ctx)
	return true
}

// restartRound is the scheduled start of the next round for the given generation
func (c *Controller) restartRound(generation uint64) bool {
	ctx, span := c.startSpan(context.Background(), "match.restartRound")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.restartTimer = nil
	if c.closed || generation != c.match.Generation || c.match.Phase != model.PhaseRoundEnding {
		c.logger.Debug("stale round restart ignored", slog.Uint64("generation", generation))
		return c.reject(span)
	}

	c.startRound(ctx)
	return true
}

// advanceTurn hands the move to the other player
func (c *Controller) advanceTurn(ctx context.Context) {
	c.match.CurrentPlayerIdx = 1 - c.match.CurrentPlayerIdx
	c.match.Status = turnStatus(c.match.CurrentPlayer())
	c.presenter.SetStatusText(c.match.Status)

	if c.match.IsBotTurn() {
		c.scheduleAutomatedTurn()
	}
}

// checkRoundEnd evaluates the board after the current player moved.
// Returns true if the round is over.
func (c *Controller) checkRoundEnd(ctx context.Context) bool {
	mover := c.match.CurrentPlayer()
	result := c.outcomeService.Evaluate(c.match.Board, mover.Symbol)
	c.match.Outcome = result

	switch result.Kind {
	case model.OutcomeWin:
		c.presenter.HighlightLine(result.Line)
		winnerIdx := c.match.PlayerIndexForSymbol(result.Symbol)
		winner := &c.match.Players[winnerIdx]
		winner.Score++
		c.presenter.SetScoreText(c.match.Scores())
		c.match.Status = winner.DisplayName + " wins"
		c.logger.Info("round won",
			slog.Int("round", c.match.Round),
			slog.String("winner", winner.DisplayName),
			slog.String("symbol", string(result.Symbol)),
		)

	case model.OutcomeStalemate:
		c.match.Status = StatusStalemate
		c.logger.Info("round stalemate", slog.Int("round", c.match.Round))

	default:
		return false
	}

	c.roundsCompleted.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(result.Kind))))
	c.match.Phase = model.PhaseRoundEnding
	c.presenter.ShowPhase(c.match.Phase)
	c.presenter.SetStatusText(c.match.Status)
	c.scheduleRestart()
	return true
}

func (c *Controller) scheduleAutomatedTurn() {
	generation := c.match.Generation
	c.turnTimer = c.clock.AfterFunc(c.config.TurnDelay, func() {
		c.applyAutomatedTurn(generation)
	})
}

func (c *Controller) scheduleRestart() {
	generation := c.match.Generation
	c.restartTimer = c.clock.AfterFunc(c.config.RoundRestartDelay, func() {
		c.restartRound(generation)
	})
}

func (c *Controller) stopTimers() {
	if c.turnTimer != nil {
		c.turnTimer.Stop()
		c.turnTimer = nil
	}
	if c.restartTimer != nil {
		c.restartTimer.Stop()
		c.restartTimer = nil
	}
}

// renderAll pushes the whole visible state to the presenter
func (c *Controller) renderAll() {
	renderMatch(&c.match, c.presenter)
}

func renderMatch(m *model.Match, p presenter.Presenter) {
	p.SetPlayerNames(m.Players[0].DisplayName, m.Players[1].DisplayName)
	p.SetScoreText(m.Scores())
	p.ShowPhase(m.Phase)
	if m.Phase == model.PhaseRoundActive || m.Phase == model.PhaseRoundEnding {
		for i, s := range m.Board {
			if s == model.SymbolEmpty {
				p.RenderCellCleared(i)
			} else {
				p.RenderCellFilled(i, s)
			}
		}
		if m.Outcome.Kind == model.OutcomeWin {
			p.HighlightLine(m.Outcome.Line)
		}
	}
	p.SetStatusText(m.Status)
}

func (c *Controller) save(ctx context.Context) {
	c.match.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveMatch(ctx, &c.match); err != nil {
		c.logger.Error("failed to save match", slog.String("error", err.Error()))
	}
}

func (c *Controller) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("match.id", string(c.match.ID)))
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (c *Controller) reject(span trace.Span) bool {
	span.SetAttributes(attribute.Bool("match.accepted", false))
	return false
}

func turnStatus(p *model.Player) string {
	return p.DisplayName + "'s Turn"
}

// Interface for dependency injection
type ControllerInterface interface {
	ID() model.MatchID
	Snapshot() *model.Match
	Start(ctx context.Context)
	Render(p presenter.Presenter)
	ChooseMode(ctx context.Context, mode model.Mode) bool
	ChooseSymbol(ctx context.Context, symbol model.Symbol) bool
	ApplyHumanMove(ctx context.Context, cell int) bool
	Reset(ctx context.Context) bool
	Close()
}

var _ ControllerInterface = (*Controller)(nil)
