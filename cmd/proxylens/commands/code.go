package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"proxylens/internal/crypto"
	"proxylens/internal/domain"
	"proxylens/internal/protocol/pairingcode"
)

// code: acquire a channel and print a pairing code for it without writing
// anything. Useful for checking a directory is reachable.
func codeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code",
		Short: "Acquire a channel and print a throwaway pairing code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := crypto.NewKeyMaterial()
			if err != nil {
				return err
			}
			defer keys.Wipe()

			h, err := wire.Rendezvous.AcquireChannel(cmd.Context())
			if err != nil {
				return err
			}
			code, err := pairingcode.Format(h, keys.EncryptionKey, keys.AuthenticationKey)
			if err != nil {
				return err
			}
			return printCode(cmd, code)
		},
	}
}

func printCode(cmd *cobra.Command, code domain.PairingCode) error {
	s, err := pairingcode.Encode(code)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}
