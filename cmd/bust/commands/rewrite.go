package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bust/internal/app"
)

func (c *CLI) newRewriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite [files...]",
		Short: "Append versions to asset references marked with append-version",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			write, _ := cmd.Flags().GetBool("write")
			return c.app.Rewrite(cmd.Context(), args, app.RewriteOptions{
				Options: sharedOptions(cmd),
				Write:   write,
			})
		},
	}
	addSharedFlags(cmd)
	cmd.Flags().BoolP("write", "w", false, "Rewrite files in place instead of printing them")
	return cmd
}
