// Package outputtest provides in-memory implementations of the output ports
// for tests.
package outputtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"
)

var _ output.BrowserPort = (*Browser)(nil)

// Browser is a scripted page. Records are the elements on the page; every
// interaction is appended to Calls.
type Browser struct {
	mu sync.Mutex

	Records []entity.ElementRecord
	Screen  entity.ScreenSize
	URL     string

	NavigateErr error
	ElementsErr error
	DescribeErr error
	LocateErr   error
	// ActionErr fails clicks and fills on elements whose descriptor string
	// is a key.
	ActionErr map[string]error
	// OnClick runs after a successful element click and may change Records.
	OnClick func(b *Browser, rec entity.ElementRecord)
	// Hidden makes Locate miss the element for the given number of lookups.
	Hidden map[string]int

	Calls  []string
	closed bool
}

func NewBrowser(records ...entity.ElementRecord) *Browser {
	return &Browser{
		Records: records,
		Screen:  entity.ScreenSize{Width: 2000, Height: 1000},
	}
}

func (b *Browser) record(call string) {
	b.Calls = append(b.Calls, call)
}

// CallLog returns a copy of the recorded calls.
func (b *Browser) CallLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.Calls))
	copy(out, b.Calls)
	return out
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("navigate " + url)
	if b.NavigateErr != nil {
		return b.NavigateErr
	}
	b.URL = url
	return nil
}

func (b *Browser) Elements(ctx context.Context, tags []string) ([]output.ElementHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ElementsErr != nil {
		return nil, b.ElementsErr
	}
	allowed := make(map[string]bool, len(tags))
	for _, t := range tags {
		allowed[t] = true
	}
	var out []output.ElementHandle
	for _, rec := range b.Records {
		if allowed[rec.TagName] {
			out = append(out, &element{b: b, rec: rec})
		}
	}
	return out, nil
}

func (b *Browser) Locate(ctx context.Context, loc output.Locator) ([]output.ElementHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.LocateErr != nil {
		return nil, b.LocateErr
	}
	var out []output.ElementHandle
	for _, rec := range b.Records {
		if !Matches(rec, loc) {
			continue
		}
		key := rec.Descriptor().String()
		if b.Hidden[key] > 0 {
			b.Hidden[key]--
			continue
		}
		out = append(out, &element{b: b, rec: rec})
	}
	return out, nil
}

// Matches applies the Locator semantics of the real drivers to rec.
func Matches(rec entity.ElementRecord, loc output.Locator) bool {
	if rec.TagName != loc.Tag {
		return false
	}
	if loc.ByID() {
		return rec.Attr(entity.AttrID) == loc.ID
	}
	return strings.Join(strings.Fields(rec.Text), " ") == loc.Text
}

func (b *Browser) ClickOrigin(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("click-origin")
	return nil
}

func (b *Browser) ScreenSize(ctx context.Context) (entity.ScreenSize, error) {
	return b.Screen, nil
}

func (b *Browser) SetViewport(ctx context.Context, width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(fmt.Sprintf("viewport %dx%d", width, height))
	return nil
}

func (b *Browser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return &entity.Screenshot{Format: "jpeg"}, nil
}

func (b *Browser) Ready(ctx context.Context) (bool, error) {
	return true, nil
}

func (b *Browser) CurrentURL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.URL
}

func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

type element struct {
	b   *Browser
	rec entity.ElementRecord
}

func (e *element) Describe(ctx context.Context) (entity.ElementRecord, error) {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	if e.b.DescribeErr != nil {
		return entity.ElementRecord{}, e.b.DescribeErr
	}
	return e.rec, nil
}

func (e *element) Click(ctx context.Context) error {
	e.b.mu.Lock()
	key := e.rec.Descriptor().String()
	e.b.record("click " + key)
	if err := e.b.ActionErr[key]; err != nil {
		e.b.mu.Unlock()
		return err
	}
	hook := e.b.OnClick
	e.b.mu.Unlock()

	if hook != nil {
		hook(e.b, e.rec)
	}
	return nil
}

func (e *element) Fill(ctx context.Context, value string) error {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	key := e.rec.Descriptor().String()
	e.b.record(fmt.Sprintf("fill %s %q", key, value))
	return e.b.ActionErr[key]
}
