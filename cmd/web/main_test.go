package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ryven.shop/web/internal/config"
)

func TestApplyFlagsOverridesConfig(t *testing.T) {
	cfg, err := config.Load(config.WithEnvMap(map[string]string{"RYVEN_WEB_TEMPLATES_DIR": "tmpl"}), config.WithoutSystemEnv(), config.WithEnvFile(""))
	require.NoError(t, err)

	require.NoError(t, applyFlags(&cfg, []string{"-addr", "127.0.0.1:9000", "-public", "static"}))
	require.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	require.Equal(t, "static", cfg.Paths.PublicDir)
	require.Equal(t, "tmpl", cfg.Paths.TemplatesDir, "unset flags keep config values")
}

func TestApplyFlagsRejectsUnknownFlags(t *testing.T) {
	cfg := config.Config{}
	require.Error(t, applyFlags(&cfg, []string{"-nope"}))
}
