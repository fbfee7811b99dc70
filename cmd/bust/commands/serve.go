package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bust/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web root with versioned caching headers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			noWatch, _ := cmd.Flags().GetBool("no-watch")
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				Options: sharedOptions(cmd),
				Addr:    addr,
				NoWatch: noWatch,
			})
		},
	}
	addSharedFlags(cmd)
	cmd.Flags().String("addr", "", "Listen address (overrides bust.yaml)")
	cmd.Flags().Bool("no-watch", false, "Do not watch the web root for changes")
	return cmd
}
