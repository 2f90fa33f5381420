// Package diagnostics writes the artifacts a developer inspects after a run:
// the last prompt sent to the planner and optional per-round screenshots.
package diagnostics

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"

	"github.com/disintegration/imaging"
)

var _ output.RecorderPort = (*Recorder)(nil)

const maxScreenshotWidth = 1024

type Config struct {
	// PromptFile is overwritten with every new prompt. Empty disables it.
	PromptFile string
	// ScreenshotDir receives round_NNN.jpg files. Empty disables them.
	ScreenshotDir string
}

type Recorder struct {
	cfg Config
}

func New(cfg Config) *Recorder {
	return &Recorder{cfg: cfg}
}

func (r *Recorder) SavePrompt(ctx context.Context, round int, prompt string) error {
	if r.cfg.PromptFile == "" {
		return nil
	}
	if err := os.WriteFile(r.cfg.PromptFile, []byte(prompt), 0o644); err != nil {
		return fmt.Errorf("write prompt file: %w", err)
	}
	return nil
}

func (r *Recorder) SaveScreenshot(ctx context.Context, round int, shot *entity.Screenshot) error {
	if r.cfg.ScreenshotDir == "" || shot == nil {
		return nil
	}

	img, _, err := image.Decode(bytes.NewReader(shot.Data))
	if err != nil {
		return fmt.Errorf("image decode failed: %w", err)
	}
	if img.Bounds().Dx() > maxScreenshotWidth {
		img = imaging.Resize(img, maxScreenshotWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(r.cfg.ScreenshotDir, 0o755); err != nil {
		return fmt.Errorf("create screenshot dir: %w", err)
	}
	path := filepath.Join(r.cfg.ScreenshotDir, fmt.Sprintf("round_%03d.jpg", round))
	if err := imaging.Save(img, path, imaging.JPEGQuality(75)); err != nil {
		return fmt.Errorf("save screenshot: %w", err)
	}
	return nil
}
