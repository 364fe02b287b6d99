// Package cmd implements the whirl command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"whirl/internal/config"
	"whirl/internal/signal"
)

// ExitError carries the exit status of the wrapped command out of Execute.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// options holds flag values shared by all subcommands.
type options struct {
	cfgFile   string
	verbose   bool
	sound     bool
	disable   bool
	force     bool
	stream    string
	noHistory bool

	cfg *config.Config
}

// Execute runs the root command and exits with the wrapped command's status.
// This is called by main.main().
func Execute() {
	err := signal.RunWithContext(func(ctx context.Context) error {
		return NewRootCommand().ExecuteContext(ctx)
	})
	if err == nil {
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// NewRootCommand builds the whirl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "whirl [flags] [--] command [args...]",
		Short: "Run a command with an activity spinner",
		Long: `whirl runs a command and animates a small spinner on the terminal until it
finishes. The spinner stays silent when its stream is redirected, unless --force
is given. The exit status of the command is passed through.

Use -- before the command when its name collides with a whirl subcommand.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, opts, args)
		},
	}
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", config.DefaultConfigPath, "config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "print the resolved configuration to stderr")

	rootCmd.Flags().BoolVar(&opts.sound, "sound", false, "ring the terminal bell when the command finishes")
	rootCmd.Flags().BoolVar(&opts.disable, "disable", false, "do not show the spinner")
	rootCmd.Flags().BoolVar(&opts.force, "force", false, "show the spinner even when the stream is not a terminal")
	rootCmd.Flags().StringVar(&opts.stream, "stream", "", "stream to draw the spinner on: stdout or stderr")
	rootCmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not record this run")

	rootCmd.AddCommand(newHistoryCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// load reads the configuration file and environment, then applies any flags
// that were set explicitly on the command line.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("sound") {
		cfg.Spinner.Sound = o.sound
	}
	if flags.Changed("disable") {
		cfg.Spinner.Disabled = o.disable
	}
	if flags.Changed("force") {
		cfg.Spinner.Force = o.force
	}
	if flags.Changed("stream") {
		switch o.stream {
		case config.StreamStdout, config.StreamStderr:
			cfg.Spinner.Stream = o.stream
		default:
			return fmt.Errorf("--stream must be %q or %q, got %q", config.StreamStdout, config.StreamStderr, o.stream)
		}
	}
	if flags.Changed("no-history") {
		cfg.History.Disabled = o.noHistory
	}

	if cfg.History.Dir == "" {
		dir, err := config.DefaultHistoryDir()
		if err != nil {
			return err
		}
		cfg.History.Dir = dir
	}

	o.cfg = cfg

	if o.verbose {
		return dumpConfig(cmd.ErrOrStderr(), cfg)
	}
	return nil
}

func dumpConfig(w io.Writer, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	_, err = fmt.Fprintf(w, "# resolved configuration\n%s", data)
	return err
}
