package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "prdforge_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("PENDING_TTL_SECONDS", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "prdforge_test", cfg.MongoDB.Database)
	require.Equal(t, "localhost:6380", cfg.Redis.Addr())
	require.Equal(t, "anthropic", cfg.LLM.Provider)
	require.Equal(t, "sk-test", cfg.LLM.AnthropicAPIKey)
	require.Equal(t, 2*time.Minute, cfg.Pending.TTL)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
}

func TestLoadConfigWithoutCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("REDIS_HOST", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Empty(t, cfg.LLM.GeminiAPIKey)
	require.Empty(t, cfg.Redis.Addr())
	require.Equal(t, 8192, cfg.LLM.MaxTokens)
	require.Equal(t, time.Minute, cfg.LLM.Timeout)
	require.True(t, cfg.IsDevelopment())
}
