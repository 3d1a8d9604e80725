package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"proxylens/internal/capture"
	"proxylens/internal/render"
)

var qrPNG string

// pair --page <file> --url <document url>: run one pairing session.
func pairCmd() *cobra.Command {
	var (
		pagePath  string
		pageURL   string
		container string
		cookies   string
	)
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Capture a login form, show a pairing code and send the encrypted payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(pagePath)
			if err != nil {
				return err
			}
			defer f.Close()

			c, err := capture.Extract(capture.Page{
				Document:    f,
				URL:         pageURL,
				ContainerID: container,
				Cookies:     cookies,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s := wire.NewSession(render.NewTerminal(out, wire.Config.QRPNG))
			res, err := s.Run(cmd.Context(), c)
			if err != nil {
				return fmt.Errorf("pairing %s: %w", s.State(), err)
			}
			fmt.Fprintf(out, "Payload written to %s\n", res.Handle.Address)
			return nil
		},
	}
	cmd.Flags().StringVar(&pagePath, "page", "", "saved HTML of the login page")
	cmd.Flags().StringVar(&pageURL, "url", "", "URL the page was loaded from")
	cmd.Flags().StringVar(&container, "container", "mainFormWrap", "id of the element holding the login form (empty: whole page)")
	cmd.Flags().StringVar(&cookies, "cookies", "", "cookie string to hand over")
	cmd.Flags().StringVar(&qrPNG, "qr-png", "", "also write the pairing code as a PNG")
	_ = cmd.MarkFlagRequired("page")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
