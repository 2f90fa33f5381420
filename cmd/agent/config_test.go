package main

import (
	"testing"
	"time"

	"websitebot/internal/di"
	"websitebot/internal/infrastructure/env"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AGENT_GOAL", " book a train from Zurich to Bern ")
	t.Setenv("AGENT_URL", "https://www.sbb.ch")
	t.Setenv("OPENAI_API_KEY", "key")

	cfg := loadConfig(env.NewEnvService())

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "book a train from Zurich to Bern", cfg.Goal)
	assert.Equal(t, di.BackendOpenAI, cfg.PlannerBackend)
	assert.Equal(t, "gpt-4", cfg.Model)
	assert.Equal(t, time.Second, cfg.SettleDuration)
	assert.Equal(t, 3, cfg.StepAttempts)
	assert.Equal(t, 30, cfg.HistoryLimit)
	assert.Equal(t, "prompt.txt", cfg.PromptFile)
	assert.Equal(t, []string{"button", "input", "p", "h1", "h2", "h3"}, cfg.ExtractTags)
	assert.Equal(t, float32(1.0), cfg.Sampling.Temperature)
	assert.Equal(t, 500, cfg.Sampling.MaxTokens)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("AGENT_GOAL", "goal")
	t.Setenv("AGENT_URL", "https://example.com")
	t.Setenv("PLANNER_BACKEND", "LangChain")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("PLANNER_TIMEOUT", "45s")
	t.Setenv("PLANNER_TEMPERATURE", "0.3")
	t.Setenv("SETTLE_MODE", "ready")
	t.Setenv("SETTLE_DURATION", "250ms")
	t.Setenv("STEP_ATTEMPTS", "1")
	t.Setenv("HISTORY_LIMIT", "0")
	t.Setenv("MAX_ROUNDS", "5")
	t.Setenv("EXTRACT_TAGS", "button, a ,input")
	t.Setenv("Y_MAX", "1500")
	t.Setenv("BROWSER_HEADLESS", "true")

	cfg := loadConfig(env.NewEnvService())

	require.NoError(t, cfg.Validate())
	assert.Equal(t, di.BackendLangchain, cfg.PlannerBackend)
	assert.Equal(t, 45*time.Second, cfg.PlannerTimeout)
	assert.InDelta(t, 0.3, cfg.Sampling.Temperature, 1e-6)
	assert.Equal(t, di.SettleReady, cfg.SettleMode)
	assert.Equal(t, 250*time.Millisecond, cfg.SettleDuration)
	assert.Equal(t, 1, cfg.StepAttempts)
	assert.Zero(t, cfg.HistoryLimit)
	assert.Equal(t, 5, cfg.MaxRounds)
	assert.Equal(t, []string{"button", "a", "input"}, cfg.ExtractTags)
	assert.Equal(t, 1500.0, cfg.YMax)
	assert.True(t, cfg.BrowserHeadless)
}
