package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/model"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Manage matches on a server",
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchDeleteCmd())
	cmd.AddCommand(newMatchModeCmd())
	cmd.AddCommand(newMatchSymbolCmd())
	cmd.AddCommand(newMatchMoveCmd())
	cmd.AddCommand(newMatchResetCmd())

	return cmd
}

func matchPath(id, suffix string) string {
	return fmt.Sprintf("/api/v1/matches/%s%s", id, suffix)
}

func newMatchCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Start a new match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Match

			if err := client.Post("/api/v1/matches", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Match

			if err := client.Get(matchPath(args[0], ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "End a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(matchPath(args[0], "")); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Match deleted")
			return nil
		},
	}
}

// runAction posts body to the match action and prints the result
func runAction(cmd *cobra.Command, id, action string, body any) error {
	var result response.ActionResponse

	if err := client.Post(matchPath(id, "/"+action), body, &result); err != nil {
		return err
	}

	NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
	return nil
}

func newMatchModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode <id> <1|2>",
		Short: "Choose one or two human players",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := model.ParseMode(args[1])
			if err != nil {
				return err
			}
			return runAction(cmd, args[0], "mode", map[string]int{"mode": int(mode)})
		},
	}
}

func newMatchSymbolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbol <id> <x|o>",
		Short: "Choose Player 1's symbol",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, err := model.ParseSymbol(args[1])
			if err != nil {
				return err
			}
			return runAction(cmd, args[0], "symbol", map[string]string{"symbol": string(symbol)})
		},
	}
}

func newMatchMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <cell>",
		Short: "Place the current player's symbol (cells 0-8)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cell, err := strconv.Atoi(args[1])
			if err != nil || !model.ValidCell(cell) {
				return fmt.Errorf("%w: %s", model.ErrInvalidCell, args[1])
			}
			return runAction(cmd, args[0], "moves", map[string]int{"cell": cell})
		},
	}
}

func newMatchResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Return to symbol selection and clear scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], "reset", nil)
		},
	}
}
