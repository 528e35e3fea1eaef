package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jsyn/config"
)

var version = "0.1.0"

var cliLog = commonlog.GetLogger("jsyn.cli")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand shares: the file system and the
// configuration resolved from jsyn.yaml and the global flags.
type app struct {
	fs    afero.Fs
	flags *config.Flags
	cfg   *config.Config
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}

	rootCmd := &cobra.Command{
		Use:          "jsyn",
		Short:        "An error-tolerant Java syntax parser",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}
	a.flags = config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newREPLCmd(a))
	rootCmd.AddCommand(newDocCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) loadConfig() error {
	cfg, err := config.Load(a.fs, a.flags.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyFlags(a.flags); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	commonlog.Configure(cfg.Verbosity, nil)
	a.cfg = cfg
	cliLog.Debugf("language level %d, locale %s", cfg.Level, cfg.Language())
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the jsyn version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "jsyn", version)
			return nil
		},
	}
}
