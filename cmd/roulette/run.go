package main

import (
	"fmt"
	"github.com/Borislavv/go-roulette"
	"github.com/Borislavv/go-roulette/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		histories int
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate histories with the built-in driver and report roulette diagnostics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled() {
				cfg.History = config.DefaultHistory()
			}
			if workers > 0 {
				cfg.History.Workers = workers
			}

			logger, err := root.slogger()
			if err != nil {
				return err
			}

			r, err := roulette.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = r.Close() }()

			rep, err := r.Run(cmd.Context(), histories)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			d := rep.Diagnostics
			log.Info().
				Str("generator", string(cfg.Stream.Generator)).
				Uint64("seed", cfg.Stream.MasterSeed).
				Int("histories", rep.Histories).
				Int64("particles", rep.Particles).
				Int64("collisions", rep.Collisions).
				Float64("tallied_per_history", rep.Tallied()/float64(max(rep.Histories, 1))).
				Float64("absorbed", rep.Absorbed).
				Float64("leaked", rep.Leaked).
				Float64("censored", rep.Censored).
				Str("digest", fmt.Sprintf("%016x", rep.Digest)).
				Dur("elapsed", rep.Elapsed).
				Msg("run finished")
			log.Info().
				Int64("events", d.Events).
				Int64("survived", d.Survived).
				Int64("killed", d.Killed).
				Int64("promoted", d.Promoted).
				Int64("splits", d.Splits).
				Int64("secondaries", d.Secondaries).
				Msg("roulette diagnostics")

			return nil
		},
	}

	cmd.Flags().IntVarP(&histories, "histories", "n", 10_000, "number of histories")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent histories (default: config or GOMAXPROCS)")
	return cmd
}
