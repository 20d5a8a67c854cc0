package main

import (
	"fmt"
	"github.com/Borislavv/go-roulette/config"
	"github.com/spf13/cobra"
	"log/slog"
	"os"
)

type rootOptions struct {
	configPath string
	generator  string
	seed       uint64
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "roulette",
		Short:         "Weight-control (russian roulette, weight windows) driver and stream checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a yaml run config")
	flags.StringVar(&opts.generator, "generator", "", "override stream generator (lcg|splitmix)")
	flags.Uint64Var(&opts.seed, "seed", 0, "override master seed")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "core log level (debug|info|warn|error)")

	cmd.AddCommand(newRunCmd(opts), newVerifyCmd(opts))
	return cmd
}

// load reads the config file if given and applies flag overrides.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Run, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.generator != "" {
		cfg.Stream.Generator = config.GeneratorKind(o.generator)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Stream.MasterSeed = o.seed
	}

	cfg.AdjustConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *rootOptions) slogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", o.logLevel, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
