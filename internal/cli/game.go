package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameEndCmd())
	cmd.AddCommand(newGameShuffleCmd())
	cmd.AddCommand(newGameLinkCmd())
	cmd.AddCommand(newGameHintCmd())

	return cmd
}

func gamePath(id string) string {
	return fmt.Sprintf("/api/v1/conversations/%s/game", id)
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start a new round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post(gamePath(args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the current round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <id>",
		Short: "End the current round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Round ended")
			return nil
		},
	}
}

func newGameShuffleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shuffle <id>",
		Short: "Reshuffle the remaining tiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post(gamePath(args[0])+"/shuffle", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <id> <order> <order> [<order> <order>...]",
		Short: "Link tiles by their cell order numbers",
		Long: `Link tiles by the order numbers shown on the board.

Consecutive orders form pairs, so "link abc 0 5 3 9" tries 0-5 then 3-9.
Orders are passed through unchanged so the server reports malformed ones.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string][]string{"orders": args[1:]}
			var result LinkResult

			if err := client.Post(gamePath(args[0])+"/link", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameHintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint <id>",
		Short: "Suggest a pair that can be linked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Hint

			if err := client.Get(gamePath(args[0])+"/hint", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
