package main

import (
	"github.com/Borislavv/go-roulette/config"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stream:\n  generator: lcg\n  seed: 3\n"), 0o600))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--generator", "splitmix", "--seed", "11"}))

	opts := &rootOptions{}
	opts.configPath, _ = cmd.Flags().GetString("config")
	opts.generator, _ = cmd.Flags().GetString("generator")
	opts.seed, _ = cmd.Flags().GetUint64("seed")

	cfg, err := opts.load(cmd)
	require.NoError(t, err)
	require.Equal(t, config.GeneratorSplitMix, cfg.Stream.Generator)
	require.Equal(t, uint64(11), cfg.Stream.MasterSeed)
}

func TestLoad_InvalidGenerator(t *testing.T) {
	cmd := newRootCmd()
	opts := &rootOptions{generator: "mersenne"}

	_, err := opts.load(cmd)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRunCommand(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--histories", "200", "--workers", "2", "--seed", "7"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
}

func TestVerifyCommand(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"verify", "--histories", "2", "--draws", "20000", "--generator", "splitmix", "--seed", "20241019"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
}

func TestBadLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--histories", "1", "--log-level", "loud"})
	require.Error(t, cmd.ExecuteContext(t.Context()))
}
