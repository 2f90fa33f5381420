package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"websitebot/internal/application/port/output/outputtest"
	"websitebot/internal/infrastructure/browser/htmlpage"
	"websitebot/internal/infrastructure/logger"
	"websitebot/internal/usecase/settle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Goal = "accept cookies"
	cfg.URL = "https://shop.example/"
	cfg.APIKey = "key"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cfg := DefaultConfig()
	cfg.PlannerBackend = "claude"
	cfg.SettleMode = "never"
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"goal is required", "start url is required", "api key", `"claude"`, `"never"`} {
		assert.ErrorContains(t, err, want)
	}

	local := validConfig()
	local.APIKey = ""
	local.BaseURL = "http://localhost:11434/v1"
	assert.NoError(t, local.Validate())
}

func TestNewSettlePolicy(t *testing.T) {
	cfg := validConfig()
	page := outputtest.NewBrowser()

	assert.Equal(t, settle.Fixed{Duration: time.Second}, newSettlePolicy(cfg, page))

	cfg.SettleMode = SettleReady
	ready, ok := newSettlePolicy(cfg, page).(settle.Readiness)
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, ready.Timeout)
	assert.Same(t, page, ready.Probe)
}

func TestNewPlannerBackend(t *testing.T) {
	cfg := validConfig()

	llm, err := newPlannerBackend(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, llm)

	cfg.PlannerBackend = BackendLangchain
	llm, err = newPlannerBackend(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, llm)
}

func TestNewAgent_OfflineRound(t *testing.T) {
	dir := t.TempDir()
	pageFile := filepath.Join(dir, "shop.html")
	require.NoError(t, os.WriteFile(pageFile, []byte(`<html><body>
		<p>We use cookies.</p>
		<button>Accept</button>
	</body></html>`), 0o644))

	cfg := validConfig()
	cfg.PageFile = pageFile
	cfg.SettleDuration = 0
	cfg.MaxRounds = 1
	cfg.ShowPrompts = false
	cfg.PromptFile = filepath.Join(dir, "prompt.txt")

	browser, err := newBrowser(context.Background(), cfg)
	require.NoError(t, err)
	_, offline := browser.(*htmlpage.Page)
	require.True(t, offline)

	llm := outputtest.NewPlanner(`{"plan":"accept cookies","steps":[{"action":"click","tag":{"name":"button","text":"Accept"}}]}`)
	agent := newAgent(cfg, browser, llm, logger.NewNop())

	require.NoError(t, agent.Run(context.Background()))

	assert.Equal(t, []string{"go to website https://shop.example/", "accept cookies"}, agent.History())
	prompt, err := os.ReadFile(cfg.PromptFile)
	require.NoError(t, err)
	assert.Contains(t, string(prompt), "We use cookies.")
	assert.Contains(t, string(prompt), `{"name":"button","text":"Accept"}`)
}
