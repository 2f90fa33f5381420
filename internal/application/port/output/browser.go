package output

import (
	"context"

	"websitebot/internal/domain/entity"
)

// BrowserPort is the single live page session the agent drives.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error

	// Elements returns every element whose tag is in tags, in document order.
	Elements(ctx context.Context, tags []string) ([]ElementHandle, error)
	// Locate returns the elements matching loc on the current page. An empty
	// result with a nil error means nothing matched.
	Locate(ctx context.Context, loc Locator) ([]ElementHandle, error)

	// ClickOrigin clicks the page body at (0, 0).
	ClickOrigin(ctx context.Context) error

	ScreenSize(ctx context.Context) (entity.ScreenSize, error)
	SetViewport(ctx context.Context, width, height int) error
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	// Ready reports whether the document finished loading.
	Ready(ctx context.Context) (bool, error)

	CurrentURL() string
	Close()
}

// ElementHandle is a live element found on the current page.
type ElementHandle interface {
	// Describe reads attributes, geometry and visible text in one evaluation.
	Describe(ctx context.Context) (entity.ElementRecord, error)
	Click(ctx context.Context) error
	// Fill clears the current content and types value.
	Fill(ctx context.Context, value string) error
}

// Locator selects elements by tag name and exactly one of id or
// whitespace-normalized text.
type Locator struct {
	Tag  string
	ID   string
	Text string
}

func (l Locator) ByID() bool {
	return l.ID != ""
}
