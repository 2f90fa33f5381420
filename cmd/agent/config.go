package main

import (
	"strings"

	"websitebot/internal/di"
	"websitebot/internal/infrastructure/env"
)

func loadConfig(e *env.EnvService) di.Config {
	cfg := di.DefaultConfig()

	cfg.Goal = strings.TrimSpace(e.MustGet("AGENT_GOAL"))
	cfg.URL = strings.TrimSpace(e.MustGet("AGENT_URL"))

	cfg.PlannerBackend = strings.ToLower(e.GetWithDefault("PLANNER_BACKEND", cfg.PlannerBackend))
	cfg.APIKey = e.Get("OPENAI_API_KEY")
	cfg.BaseURL = e.Get("OPENAI_BASE_URL")
	cfg.Model = e.GetWithDefault("OPENAI_MODEL", cfg.Model)
	cfg.PlannerTimeout = e.GetDuration("PLANNER_TIMEOUT", cfg.PlannerTimeout)
	cfg.Sampling.Temperature = float32(e.GetFloat("PLANNER_TEMPERATURE", float64(cfg.Sampling.Temperature)))
	cfg.Sampling.MaxTokens = e.GetInt("PLANNER_MAX_TOKENS", cfg.Sampling.MaxTokens)

	cfg.BrowserHeadless = e.GetBool("BROWSER_HEADLESS", cfg.BrowserHeadless)
	cfg.PageFile = e.Get("PAGE_FILE")

	cfg.SettleMode = strings.ToLower(e.GetWithDefault("SETTLE_MODE", cfg.SettleMode))
	cfg.SettleDuration = e.GetDuration("SETTLE_DURATION", cfg.SettleDuration)
	cfg.SettleTimeout = e.GetDuration("SETTLE_TIMEOUT", cfg.SettleTimeout)

	cfg.StepAttempts = e.GetInt("STEP_ATTEMPTS", cfg.StepAttempts)
	cfg.HistoryLimit = e.GetInt("HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.MaxRounds = e.GetInt("MAX_ROUNDS", cfg.MaxRounds)
	cfg.ExtractTags = e.GetList("EXTRACT_TAGS", cfg.ExtractTags)
	cfg.YMax = e.GetFloat("Y_MAX", cfg.YMax)

	cfg.PromptFile = e.GetWithDefault("PROMPT_FILE", cfg.PromptFile)
	cfg.ScreenshotDir = e.Get("SCREENSHOT_DIR")
	cfg.ShowPrompts = e.GetBool("SHOW_PROMPTS", cfg.ShowPrompts)

	cfg.LogLevel = e.GetWithDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogDir = e.GetWithDefault("LOG_DIR", cfg.LogDir)
	return cfg
}
