// Package htmlpage is a BrowserPort over static HTML documents. It renders
// nothing: geometry is synthetic and scripts never run. It backs offline
// runs against a saved page and the tests of the layers above the browser.
package htmlpage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"

	"golang.org/x/net/html"
)

var _ output.BrowserPort = (*Page)(nil)

const (
	lineHeight   = 20
	elementWidth = 100
)

var (
	ErrNoScreenshot = errors.New("screenshots are not available for static pages")
	ErrStaleElement = errors.New("element belongs to a previous document")
)

// Source loads the document for a URL.
type Source interface {
	Load(ctx context.Context, url string) (string, error)
}

// FileSource serves one file for every URL.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context, url string) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read page file: %w", err)
	}
	return string(data), nil
}

// Pages serves documents by exact URL.
type Pages map[string]string

func (p Pages) Load(ctx context.Context, url string) (string, error) {
	doc, ok := p[url]
	if !ok {
		return "", fmt.Errorf("no page for %s", url)
	}
	return doc, nil
}

type Page struct {
	mu         sync.Mutex
	source     Source
	url        string
	body       *html.Node
	generation int
	screen     entity.ScreenSize
}

func New(source Source) *Page {
	return &Page{
		source: source,
		screen: entity.ScreenSize{Width: 1920, Height: 1080},
	}
}

func (p *Page) Navigate(ctx context.Context, rawURL string) error {
	doc, err := p.source.Load(ctx, rawURL)
	if err != nil {
		return err
	}
	body, err := parseBody(doc)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = rawURL
	p.body = body
	p.generation++
	return nil
}

func (p *Page) Elements(ctx context.Context, tags []string) ([]output.ElementHandle, error) {
	allowed := make(map[string]bool, len(tags))
	for _, t := range tags {
		allowed[strings.ToLower(t)] = true
	}
	return p.collect(func(n *html.Node) bool { return allowed[n.Data] })
}

// Locate matches like the XPath queries of the live driver: by id, or by the
// whitespace-normalized text of the whole subtree.
func (p *Page) Locate(ctx context.Context, loc output.Locator) ([]output.ElementHandle, error) {
	return p.collect(func(n *html.Node) bool {
		if n.Data != loc.Tag {
			return false
		}
		if loc.ByID() {
			return attr(n, entity.AttrID) == loc.ID
		}
		return strings.Join(strings.Fields(textOf(n)), " ") == loc.Text
	})
}

func (p *Page) collect(match func(*html.Node) bool) ([]output.ElementHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.body == nil {
		return nil, errors.New("no document loaded")
	}

	var out []output.ElementHandle
	walk(p.body, func(n *html.Node, index int, hidden bool) {
		if match(n) {
			out = append(out, &element{page: p, node: n, generation: p.generation, index: index, hidden: hidden})
		}
	})
	return out, nil
}

func (p *Page) ClickOrigin(ctx context.Context) error {
	return nil
}

func (p *Page) ScreenSize(ctx context.Context) (entity.ScreenSize, error) {
	return p.screen, nil
}

func (p *Page) SetViewport(ctx context.Context, width, height int) error {
	return nil
}

func (p *Page) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return nil, ErrNoScreenshot
}

func (p *Page) Ready(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.body != nil, nil
}

func (p *Page) CurrentURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) Close() {}

type element struct {
	page       *Page
	node       *html.Node
	generation int
	index      int
	hidden     bool
}

func (e *element) check() error {
	if e.generation != e.page.generation {
		return ErrStaleElement
	}
	return nil
}

func (e *element) Describe(ctx context.Context) (entity.ElementRecord, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if err := e.check(); err != nil {
		return entity.ElementRecord{}, err
	}

	rec := entity.ElementRecord{
		TagName:    e.node.Data,
		Text:       textOf(e.node),
		Attributes: make(map[string]string, len(e.node.Attr)),
		Position:   entity.Position{Y: float64(e.index * lineHeight)},
	}
	for _, a := range e.node.Attr {
		rec.Attributes[a.Key] = a.Val
	}
	if !e.hidden {
		rec.Size = entity.Size{Width: elementWidth, Height: lineHeight}
	}
	return rec, nil
}

// Click follows links. Anything else is accepted without effect.
func (e *element) Click(ctx context.Context) error {
	e.page.mu.Lock()
	if err := e.check(); err != nil {
		e.page.mu.Unlock()
		return err
	}
	href := attr(e.node, "href")
	base := e.page.url
	e.page.mu.Unlock()

	if e.node.Data != entity.TagAnchor || href == "" || strings.HasPrefix(href, "#") {
		return nil
	}
	target, err := resolve(base, href)
	if err != nil {
		return err
	}
	return e.page.Navigate(ctx, target)
}

// Fill stores value in the value attribute, where the next observation
// reads it.
func (e *element) Fill(ctx context.Context, value string) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if err := e.check(); err != nil {
		return err
	}
	setAttr(e.node, entity.AttrValue, value)
	return nil
}

func resolve(base, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("bad link %q: %w", href, err)
	}
	if base == "" {
		return ref.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref.String(), nil
	}
	return b.ResolveReference(ref).String(), nil
}
