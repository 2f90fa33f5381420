package output

import (
	"context"

	"websitebot/internal/domain/entity"
)

// RecorderPort keeps diagnostic artifacts. Nothing reads them back.
type RecorderPort interface {
	SavePrompt(ctx context.Context, round int, prompt string) error
	SaveScreenshot(ctx context.Context, round int, shot *entity.Screenshot) error
}
