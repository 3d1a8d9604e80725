package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"proxylens/internal/crypto"
)

func commitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit <url>",
		Short: "Print the commitment of a form action URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), crypto.Commit(args[0]))
			return nil
		},
	}
}
