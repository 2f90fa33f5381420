package rod

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"strings"
	"time"

	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const (
	defaultTimeout    = 10 * time.Second
	defaultSlowMotion = 0
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	// Timeout bounds page loads.
	Timeout   time.Duration
	NoSandbox bool
	DevTools  bool
	Trace     bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   false,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
		NoSandbox:  true,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-setuid-sandbox")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		Trace(cfg.Trace).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	p := b.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := p.Timeout(b.timeout).WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Elements(ctx context.Context, tags []string) ([]output.ElementHandle, error) {
	els, err := b.page.Context(ctx).Elements(strings.Join(tags, ", "))
	if err != nil {
		return nil, fmt.Errorf("query %v: %w", tags, err)
	}
	return wrap(els), nil
}

func (b *BrowserAdapter) Locate(ctx context.Context, loc output.Locator) ([]output.ElementHandle, error) {
	els, err := b.page.Context(ctx).ElementsX(XPathFor(loc))
	if err != nil {
		return nil, fmt.Errorf("locate: %w", err)
	}
	return wrap(els), nil
}

// XPathFor builds the XPath query for loc. Text matches the
// whitespace-normalized string value of the element.
func XPathFor(loc output.Locator) string {
	if loc.ByID() {
		return fmt.Sprintf("//%s[@id=%s]", loc.Tag, xpathLiteral(loc.ID))
	}
	return fmt.Sprintf("//%s[normalize-space(.)=%s]", loc.Tag, xpathLiteral(loc.Text))
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// defocusJS blurs the focused element and clicks the body itself at the
// viewport origin. A real mouse click there would hit whatever is drawn on
// top, often a fixed header link.
const defocusJS = `() => {
	const active = document.activeElement;
	if (active && active !== document.body && typeof active.blur === 'function') {
		active.blur();
	}
	const body = document.body || document.documentElement;
	body.dispatchEvent(new MouseEvent('mousedown', {bubbles: true, cancelable: true, clientX: 0, clientY: 0, view: window}));
	body.dispatchEvent(new MouseEvent('mouseup', {bubbles: true, cancelable: true, clientX: 0, clientY: 0, view: window}));
	body.dispatchEvent(new MouseEvent('click', {bubbles: true, cancelable: true, clientX: 0, clientY: 0, view: window}));
}`

func (b *BrowserAdapter) ClickOrigin(ctx context.Context) error {
	if _, err := b.page.Context(ctx).Eval(defocusJS); err != nil {
		return fmt.Errorf("click origin: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) ScreenSize(ctx context.Context) (entity.ScreenSize, error) {
	res, err := b.page.Context(ctx).Eval(`() => ({width: window.screen.availWidth, height: window.screen.availHeight})`)
	if err != nil {
		return entity.ScreenSize{}, fmt.Errorf("read screen size: %w", err)
	}
	return entity.ScreenSize{
		Width:  res.Value.Get("width").Int(),
		Height: res.Value.Get("height").Int(),
	}, nil
}

func (b *BrowserAdapter) SetViewport(ctx context.Context, width, height int) error {
	err := b.page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("set viewport %dx%d: %w", width, height, err)
	}
	return nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	p := b.page.Context(ctx)
	data, err := p.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	shot := &entity.Screenshot{Data: data, Format: "jpeg"}
	if cfg, err := jpeg.DecodeConfig(bytes.NewReader(data)); err == nil {
		shot.Width = cfg.Width
		shot.Height = cfg.Height
	}
	return shot, nil
}

func (b *BrowserAdapter) Ready(ctx context.Context) (bool, error) {
	res, err := b.page.Context(ctx).Eval(`() => document.readyState`)
	if err != nil {
		return false, err
	}
	return res.Value.Str() == "complete", nil
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

// describeJS reads everything the filter and prompt need in a single round
// trip. Position is relative to the viewport, so it follows scrolling.
const describeJS = `() => {
	const rect = this.getBoundingClientRect();
	const attrs = {};
	for (const a of this.attributes) {
		attrs[a.name] = a.value;
	}
	if (typeof this.value === 'string') {
		attrs.value = this.value;
	}
	return {
		name: this.tagName.toLowerCase(),
		text: this.innerText || '',
		attrs: attrs,
		x: rect.x,
		y: rect.y,
		width: this.offsetWidth,
		height: this.offsetHeight,
	};
}`

type elementHandle struct {
	el *rod.Element
}

func wrap(els rod.Elements) []output.ElementHandle {
	out := make([]output.ElementHandle, 0, len(els))
	for _, el := range els {
		out = append(out, &elementHandle{el: el})
	}
	return out
}

func (h *elementHandle) Describe(ctx context.Context) (entity.ElementRecord, error) {
	res, err := h.el.Context(ctx).Eval(describeJS)
	if err != nil {
		return entity.ElementRecord{}, fmt.Errorf("describe element: %w", err)
	}
	return recordFromJSON(res.Value), nil
}

func recordFromJSON(v gson.JSON) entity.ElementRecord {
	attrs := make(map[string]string)
	for k, val := range v.Get("attrs").Map() {
		attrs[k] = val.Str()
	}
	return entity.ElementRecord{
		TagName:    v.Get("name").Str(),
		Text:       v.Get("text").Str(),
		Attributes: attrs,
		Position:   entity.Position{X: v.Get("x").Num(), Y: v.Get("y").Num()},
		Size:       entity.Size{Width: v.Get("width").Num(), Height: v.Get("height").Num()},
	}
}

func (h *elementHandle) Click(ctx context.Context) error {
	if err := h.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (h *elementHandle) Fill(ctx context.Context, value string) error {
	el := h.el.Context(ctx)
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}
	return nil
}
