package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"websitebot/internal/application/port/input"
	"websitebot/internal/application/port/output"
	"websitebot/internal/infrastructure/browser/htmlpage"
	"websitebot/internal/infrastructure/browser/rod"
	"websitebot/internal/infrastructure/diagnostics"
	"websitebot/internal/infrastructure/llm/langchain"
	"websitebot/internal/infrastructure/llm/openaicompat"
	"websitebot/internal/infrastructure/logger"
	"websitebot/internal/infrastructure/userinteraction"
	"websitebot/internal/usecase/agentloop"
	"websitebot/internal/usecase/executor"
	"websitebot/internal/usecase/observe"
	"websitebot/internal/usecase/planner"
	"websitebot/internal/usecase/settle"
)

const (
	BackendOpenAI    = "openai"
	BackendLangchain = "langchain"

	SettleFixed = "fixed"
	SettleReady = "ready"
)

type Container struct {
	Browser output.BrowserPort
	Planner output.PlannerPort
	Logger  output.LoggerPort
	Agent   input.AgentRunner
}

type Config struct {
	Goal string
	URL  string

	PlannerBackend string
	APIKey         string
	BaseURL        string
	Model          string
	PlannerTimeout time.Duration
	Sampling       output.Sampling

	BrowserHeadless bool
	// PageFile switches to the offline driver serving this HTML file.
	PageFile string

	SettleMode     string
	SettleDuration time.Duration
	SettleTimeout  time.Duration

	StepAttempts int
	StepBackoff  time.Duration

	HistoryLimit int
	MaxRounds    int
	ExtractTags  []string
	YMax         float64

	PromptFile    string
	ScreenshotDir string
	ShowPrompts   bool

	LogLevel string
	LogDir   string
}

func DefaultConfig() Config {
	return Config{
		PlannerBackend:  BackendOpenAI,
		Model:           "gpt-4",
		Sampling:        output.DefaultSampling(),
		BrowserHeadless: false,
		SettleMode:      SettleFixed,
		SettleDuration:  time.Second,
		SettleTimeout:   10 * time.Second,
		StepAttempts:    executor.DefaultConfig().Attempts,
		StepBackoff:     executor.DefaultConfig().Backoff,
		HistoryLimit:    30,
		ExtractTags:     observe.DefaultTags(),
		YMax:            observe.DefaultYMax,
		PromptFile:      "prompt.txt",
		ShowPrompts:     true,
		LogLevel:        "info",
		LogDir:          "log",
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Goal == "" {
		errs = append(errs, errors.New("goal is required"))
	}
	if c.URL == "" {
		errs = append(errs, errors.New("start url is required"))
	}
	switch c.PlannerBackend {
	case BackendOpenAI, BackendLangchain:
	default:
		errs = append(errs, fmt.Errorf("unknown planner backend %q", c.PlannerBackend))
	}
	if c.APIKey == "" && c.BaseURL == "" {
		errs = append(errs, errors.New("api key is required for the default endpoint"))
	}
	switch c.SettleMode {
	case SettleFixed, SettleReady:
	default:
		errs = append(errs, fmt.Errorf("unknown settle mode %q", c.SettleMode))
	}
	return errors.Join(errs...)
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logCfg := logger.DefaultConfig(cfg.Goal)
	logCfg.Dir = cfg.LogDir
	logCfg.Level = cfg.LogLevel
	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llm, err := newPlannerBackend(cfg, log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create planner: %w", err)
	}

	browser, err := newBrowser(ctx, cfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	return &Container{
		Browser: browser,
		Planner: llm,
		Logger:  log,
		Agent:   newAgent(cfg, browser, llm, log),
	}, nil
}

func newAgent(cfg Config, browser output.BrowserPort, llm output.PlannerPort, log output.LoggerPort) *agentloop.UseCase {
	policy := newSettlePolicy(cfg, browser)

	loopCfg := agentloop.DefaultConfig(cfg.Goal, cfg.URL)
	loopCfg.YMax = cfg.YMax
	loopCfg.HistoryLimit = cfg.HistoryLimit
	loopCfg.MaxRounds = cfg.MaxRounds
	loopCfg.Screenshots = cfg.ScreenshotDir != "" && cfg.PageFile == ""

	return agentloop.New(agentloop.Deps{
		Browser:   browser,
		Extractor: observe.NewExtractor(browser, log, cfg.ExtractTags),
		Planner: planner.New(llm, log, planner.Config{
			Sampling: cfg.Sampling,
			Timeout:  cfg.PlannerTimeout,
		}),
		Executor: executor.New(browser, policy, log, executor.Config{
			Attempts: cfg.StepAttempts,
			Backoff:  cfg.StepBackoff,
		}),
		Settle:   policy,
		Reporter: userinteraction.NewConsoleReporter(cfg.ShowPrompts),
		Recorder: diagnostics.New(diagnostics.Config{
			PromptFile:    cfg.PromptFile,
			ScreenshotDir: cfg.ScreenshotDir,
		}),
		Logger: log,
	}, loopCfg)
}

func newBrowser(ctx context.Context, cfg Config) (output.BrowserPort, error) {
	if cfg.PageFile != "" {
		return htmlpage.New(htmlpage.FileSource{Path: cfg.PageFile}), nil
	}
	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.BrowserHeadless
	return rod.NewBrowserAdapter(ctx, browserCfg)
}

func newPlannerBackend(cfg Config, log output.LoggerPort) (output.PlannerPort, error) {
	switch cfg.PlannerBackend {
	case BackendLangchain:
		return langchain.NewOpenAI(langchain.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	default:
		llmCfg := openaicompat.DefaultConfig(cfg.APIKey, cfg.Model)
		llmCfg.BaseURL = cfg.BaseURL
		llmCfg.Logger = log
		llmCfg.LogBodies = cfg.LogLevel == "debug"
		return openaicompat.NewAdapter(llmCfg), nil
	}
}

func newSettlePolicy(cfg Config, browser output.BrowserPort) settle.Policy {
	if cfg.SettleMode == SettleReady {
		return settle.Readiness{
			Probe:    browser,
			Interval: 100 * time.Millisecond,
			Timeout:  cfg.SettleTimeout,
			Grace:    cfg.SettleDuration,
		}
	}
	return settle.Fixed{Duration: cfg.SettleDuration}
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
