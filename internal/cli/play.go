package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/config"
	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/match"
	"github.com/mcoot/tictactoe-go/internal/services/session"
)

const terminalViewerKey = "terminal"

type playOptions struct {
	configPath string
	turnDelay  time.Duration
	roundDelay time.Duration
	strategy   string
	logLevel   string
}

func newPlayCmd() *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match in the terminal",
		Long: `Play tic-tac-toe against a friend or the computer.

Input, one per line:
  1 / 2    number of human players
  x / o    Player 1's symbol
  0-8      place a symbol, cells are numbered left to right, top to bottom
  r        reset to the player count choice and clear scores
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			app, err := factory.New(factory.Config{
				Match:  appCfg.MatchConfig(),
				Logger: appCfg.NewLogger(cmd.ErrOrStderr()),
			})
			if err != nil {
				return err
			}
			defer app.Close()

			return Play(cmd.Context(), app.SessionManager, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	defaults := match.DefaultConfig()
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file")
	cmd.Flags().DurationVar(&opts.turnDelay, "turn-delay", defaults.TurnDelay, "How long the computer thinks before moving")
	cmd.Flags().DurationVar(&opts.roundDelay, "round-delay", defaults.RoundRestartDelay, "Pause before the next round starts")
	cmd.Flags().StringVar(&opts.strategy, "strategy", defaults.BotStrategy, "Computer strategy: line, random")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	return cmd
}

// load reads the config file and environment, then applies flags set on the command line
func (o *playOptions) load(cmd *cobra.Command) (*config.Config, error) {
	appCfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("turn-delay") {
		appCfg.Game.TurnDelay = o.turnDelay
	}
	if flags.Changed("round-delay") {
		appCfg.Game.RoundRestartDelay = o.roundDelay
	}
	if flags.Changed("strategy") {
		appCfg.Game.BotStrategy = o.strategy
	}
	appCfg.LogLevel = o.logLevel
	appCfg.LogFormat = config.LogFormatText

	if err := appCfg.Validate(); err != nil {
		return nil, err
	}
	return appCfg, nil
}

// Play runs a terminal match reading commands from in until quit or end of input
func Play(ctx context.Context, manager *session.Manager, in io.Reader, out io.Writer) error {
	sess := manager.Create(ctx)
	sess.Attach(terminalViewerKey, NewTerminalPresenter(out))
	defer sess.Detach(terminalViewerKey)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if HandleInput(ctx, sess.Controller, scanner.Text()) {
			fmt.Fprintln(out, "Bye")
			return nil
		}
	}
	return scanner.Err()
}

// HandleInput applies one line of terminal input to a match. Unrecognised
// input is ignored. Returns true if the player asked to quit.
func HandleInput(ctx context.Context, c match.ControllerInterface, line string) bool {
	input := strings.ToLower(strings.TrimSpace(line))

	switch input {
	case "":
		return false
	case "q", "quit":
		return true
	case "r", "reset":
		c.Reset(ctx)
		return false
	case "x", "o":
		symbol, _ := model.ParseSymbol(input)
		c.ChooseSymbol(ctx, symbol)
		return false
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return false
	}
	// Digits choose the mode until it is set, then they are cells
	if c.Snapshot().Phase == model.PhaseAwaitingMode {
		c.ChooseMode(ctx, model.Mode(n))
	} else {
		c.ApplyHumanMove(ctx, n)
	}
	return false
}
