package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/chordlint/internal/config"
	"github.com/conneroisu/chordlint/internal/locale"
	"github.com/conneroisu/chordlint/internal/server"
)

func TestIntegration_ConfigLoad(t *testing.T) {
	rulesFile := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(rulesFile, []byte(`
- id: no-tabs
  pattern: "\t"
  message: tabs are not allowed
`), 0o644))

	viper.Reset()
	viper.Set("language", "es")
	viper.Set("validation.strict_mode", true)
	viper.Set("validation.max_special_char_percent", 0.5)
	viper.Set("rules_file", rulesFile)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "es", cfg.Language)
	assert.True(t, cfg.Validation.StrictMode)
	assert.InDelta(t, 0.5, cfg.Validation.MaxSpecialCharPercent, 1e-9)
	require.Len(t, cfg.Validation.CustomRules, 1)
	assert.Equal(t, "no-tabs", cfg.Validation.CustomRules[0].ID)
	assert.True(t, cfg.Validation.CustomRules[0].Enabled)
}

func TestIntegration_LocalizedValidation(t *testing.T) {
	viper.Reset()
	viper.Set("language", "es")

	cfg, err := config.Load()
	require.NoError(t, err)

	adapter := locale.NewAdapter(cfg.Validation)
	require.NoError(t, adapter.SetLanguage(cfg.Language))

	result := adapter.Validate("{titulo: Cancion}\n[Do]la [Sol]la")
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)

	result = adapter.Validate("[Do] <script>x()</script>")
	assert.False(t, result.IsValid)
}

func TestIntegration_ServerStartStop(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 0 // random free port

	srv := server.New(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe(ctx)
	}()

	// Give the listener time to come up, then trigger graceful shutdown.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
