// Package observe turns the live page into the element list the planner sees.
package observe

import (
	"context"
	"fmt"

	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"
)

// DefaultTags is the extraction allow-list. Anchors are left out on purpose:
// on most sites they flood the prompt with navigation links. Add "a" through
// configuration when a goal needs them.
func DefaultTags() []string {
	return []string{
		entity.TagButton,
		entity.TagInput,
		entity.TagParagraph,
		entity.TagHeading1,
		entity.TagHeading2,
		entity.TagHeading3,
	}
}

type Extractor struct {
	browser output.BrowserPort
	logger  output.LoggerPort
	tags    []string
}

func NewExtractor(browser output.BrowserPort, logger output.LoggerPort, tags []string) *Extractor {
	if len(tags) == 0 {
		tags = DefaultTags()
	}
	return &Extractor{
		browser: browser,
		logger:  logger,
		tags:    tags,
	}
}

// Extract reads every allow-listed element of the current page. It does not
// drop anything; a failing query or element read fails the whole call with
// entity.ErrStaleDocument.
func (e *Extractor) Extract(ctx context.Context) ([]entity.ElementRecord, error) {
	handles, err := e.browser.Elements(ctx, e.tags)
	if err != nil {
		return nil, fmt.Errorf("query elements: %w: %w", entity.ErrStaleDocument, err)
	}

	records := make([]entity.ElementRecord, 0, len(handles))
	for i, h := range handles {
		rec, err := h.Describe(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe element %d of %d: %w: %w", i+1, len(handles), entity.ErrStaleDocument, err)
		}
		records = append(records, rec)
	}

	e.logger.Debug("Elements extracted", "count", len(records))
	return records, nil
}
