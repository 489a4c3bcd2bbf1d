package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Conversation settings commands",
	}

	cmd.AddCommand(newSettingsGetCmd())
	cmd.AddCommand(newSettingsSizeCmd())
	cmd.AddCommand(newSettingsPatternsCmd())
	cmd.AddCommand(newSettingsTimedCmd())
	cmd.AddCommand(newSettingsResetScoreCmd())

	return cmd
}

func settingsPath(id string) string {
	return fmt.Sprintf("/api/v1/conversations/%s/settings", id)
}

func newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a conversation's settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Settings

			if err := client.Get(settingsPath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSettingsSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size <id> <rows> <cols>",
		Short: "Set the board size",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rows: %w", err)
			}

			cols, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid cols: %w", err)
			}

			req := map[string]int{"rows": rows, "cols": cols}
			var result Settings

			if err := client.Patch(settingsPath(args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSettingsPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns <id> <count>",
		Short: "Set the number of distinct tile patterns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid count: %w", err)
			}

			req := map[string]int{"pattern_types": n}
			var result Settings

			if err := client.Patch(settingsPath(args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSettingsTimedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timed <id> <on|off>",
		Short: "Turn timed mode on or off",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var timed bool
			switch args[1] {
			case "on", "true":
				timed = true
			case "off", "false":
				timed = false
			default:
				return fmt.Errorf("timed mode must be on or off")
			}

			req := map[string]bool{"timed_mode": timed}
			var result Settings

			if err := client.Patch(settingsPath(args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSettingsResetScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-score <id>",
		Short: "Reset the conversation's best score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Settings

			if err := client.Post(settingsPath(args[0])+"/reset-score", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
