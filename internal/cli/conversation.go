package cli

import (
	"github.com/spf13/cobra"
)

func newConversationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversation",
		Short: "Conversation commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Create a new conversation id",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Conversation

			if err := client.Post("/api/v1/conversations", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	return cmd
}
