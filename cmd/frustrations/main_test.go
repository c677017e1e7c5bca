package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"frustration-list/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCommand(t *testing.T) {
	var buf bytes.Buffer
	seedCmd.SetOut(&buf)
	defer seedCmd.SetOut(nil)

	seedCmd.Run(seedCmd, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "Tech")
	assert.Contains(t, lines[0], " 7/10")
	assert.Contains(t, lines[0], "Customer support is hidden behind bots.")
}

func TestApplyFlags_OnlyChanged(t *testing.T) {
	cfg = config.Default()
	defer func() { cfg = config.Config{} }()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("backend", cfg.Backend, "")
	cmd.Flags().String("redis", cfg.RedisAddr, "")
	cmd.Flags().Duration("notify-delay", cfg.NotifyDelay, "")
	require.NoError(t, cmd.ParseFlags([]string{"--backend=redis", "--notify-delay=250ms"}))

	require.NoError(t, applyFlags(cmd))
	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.NotifyDelay)
	assert.Equal(t, config.Default().RedisAddr, cfg.RedisAddr)
	assert.Equal(t, config.Default().Addr, cfg.Addr)
	assert.NoError(t, cfg.Validate())
}
