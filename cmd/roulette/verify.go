package main

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-roulette/internal/shared/random"
	"github.com/Borislavv/go-roulette/internal/streamcheck"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errStreamCheckFailed = errors.New("stream check failed")

func newVerifyCmd(root *rootOptions) *cobra.Command {
	var (
		histories int
		draws     int
		bins      int
		alpha     float64
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run chi-square and correlation checks on per-history streams",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			factory, err := random.NewFactory(&cfg.Stream)
			if err != nil {
				return err
			}

			failed := 0
			var prev []float64
			for id := uint64(1); id <= uint64(histories); id++ {
				values, _, err := factory.Stream(id).Float64s(draws)
				if err != nil {
					return fmt.Errorf("history %d: %w", id, err)
				}

				results := make([]streamcheck.Result, 0, 3)
				uniform, err := streamcheck.Uniformity(values, bins)
				if err != nil {
					return err
				}
				serial, err := streamcheck.Serial(values, max(bins/10, 2))
				if err != nil {
					return err
				}
				results = append(results, uniform, serial)
				if prev != nil {
					corr, err := streamcheck.Correlation(prev, values)
					if err != nil {
						return err
					}
					results = append(results, corr)
				}
				prev = values

				for _, res := range results {
					ev := log.Info()
					if !res.Passed(alpha) {
						failed++
						ev = log.Warn()
					}
					ev.Uint64("history", id).
						Str("test", res.Test).
						Float64("statistic", res.Statistic).
						Float64("p_value", res.PValue).
						Int("samples", res.Samples).
						Msg("stream check")
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d tests below alpha=%g", errStreamCheckFailed, failed, alpha)
			}
			log.Info().Int("histories", histories).Str("generator", factory.Kind().String()).Msg("all stream checks passed")
			return nil
		},
	}

	cmd.Flags().IntVarP(&histories, "histories", "n", 4, "number of histories to check")
	cmd.Flags().IntVar(&draws, "draws", 100_000, "draws per history (lcg is limited by its stride)")
	cmd.Flags().IntVar(&bins, "bins", 100, "chi-square bins")
	cmd.Flags().Float64Var(&alpha, "alpha", 1e-4, "significance level")
	return cmd
}
