package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/recon/internal/config"
	"github.com/JonMunkholm/recon/internal/logging"
)

// cli holds state shared by all subcommands once the root pre-run has loaded
// configuration.
type cli struct {
	cfg      *config.Config
	logLevel string
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "recon",
		Short: "Reconcile employee positions between two HR exports",
		Long: `recon compares a CSOD user report (source A) with an SAP headcount export
(source B) and lists employees without a position, employees present in only
one system, and employees whose position codes disagree.

Settings come from the selected profile, then environment variables (a .env
file in the working directory is read if present), then command line flags.`,
		PersistentPreRunE: c.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (default from LOG_LEVEL)")

	root.AddCommand(newRunCommand(c))
	root.AddCommand(newProfilesCommand(c))

	return root
}

// setup loads configuration and routes logs to stderr so stdout only carries
// command output.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	// Missing .env is fine; existing environment wins over the file.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.Logging.Level
	if c.logLevel != "" {
		level = c.logLevel
	}
	logging.SetupWriter(cmd.ErrOrStderr(), level, cfg.Logging.Format)
	return nil
}
