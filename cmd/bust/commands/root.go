// Package commands implements the CLI commands for bust.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/bust/internal/app"
	"go.trai.ch/bust/internal/build"
)

// CLI represents the command line interface for bust.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Stamp(ctx context.Context, paths []string, opts app.StampOptions) error
	Rewrite(ctx context.Context, files []string, opts app.RewriteOptions) error
	Serve(ctx context.Context, opts app.ServeOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "bust",
		Short:         "Content-hash cache busting for static assets",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json", false, "Write log output as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newStampCmd())
	rootCmd.AddCommand(c.newRewriteCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetJSONHook sets up a PersistentPreRun function that reads the json flag
// and passes it to fn before any command runs.
func (c *CLI) SetJSONHook(fn func(bool)) {
	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		enable, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		fn(enable)
		return nil
	}
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addSharedFlags registers the flags every asset command accepts.
func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("root", "r", "", "Web root to resolve assets against (overrides bust.yaml)")
	cmd.Flags().StringP("base", "b", "", "Path base the site is mounted under, e.g. /app")
	cmd.Flags().Bool("trace", false, "Log every version computation")
}

func sharedOptions(cmd *cobra.Command) app.Options {
	root, _ := cmd.Flags().GetString("root")
	base, _ := cmd.Flags().GetString("base")
	trace, _ := cmd.Flags().GetBool("trace")
	return app.Options{Root: root, Base: base, Trace: trace}
}
