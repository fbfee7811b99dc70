package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bust/internal/app"
)

func (c *CLI) newStampCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stamp [paths...]",
		Short: "Print the versioned URL of each asset path",
		Example: `  bust stamp /css/site.css /js/app.js
  bust stamp --base /app /app/css/site.css
  bust stamp --all --manifest public/manifest.json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if len(args) == 0 && !all {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			manifest, _ := cmd.Flags().GetString("manifest")
			return c.app.Stamp(cmd.Context(), args, app.StampOptions{
				Options:  sharedOptions(cmd),
				All:      all,
				Manifest: manifest,
			})
		},
	}
	addSharedFlags(cmd)
	cmd.Flags().BoolP("all", "a", false, "Stamp every file below the web root")
	cmd.Flags().StringP("manifest", "m", "", "Also record versioned paths in this JSON file")
	return cmd
}
