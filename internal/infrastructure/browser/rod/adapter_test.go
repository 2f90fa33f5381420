package rod

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"websitebot/internal/application/port/output"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ysmood/gson"
)

func TestXPathFor(t *testing.T) {
	tests := []struct {
		name string
		loc  output.Locator
		want string
	}{
		{"by id", output.Locator{Tag: "input", ID: "to"}, `//input[@id="to"]`},
		{"by text", output.Locator{Tag: "button", Text: "Accept all"}, `//button[normalize-space(.)="Accept all"]`},
		{"id wins", output.Locator{Tag: "a", ID: "home", Text: "Home"}, `//a[@id="home"]`},
		{"double quote in text", output.Locator{Tag: "p", Text: `say "hi"`}, `//p[normalize-space(.)='say "hi"']`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XPathFor(tt.loc))
		})
	}
}

func TestXPathLiteral_BothQuotes(t *testing.T) {
	assert.Equal(t, `concat("it's ", '"', "fine", '"')`, xpathLiteral(`it's "fine"`))
	assert.Equal(t, `concat('"', "'a")`, xpathLiteral(`"'a`))
}

func TestRecordFromJSON(t *testing.T) {
	v := gson.NewFrom(`{
		"name": "input",
		"text": "",
		"attrs": {"id": "from", "type": "text", "value": "Zurich"},
		"x": 12.5, "y": 340, "width": 200, "height": 32
	}`)

	rec := recordFromJSON(v)

	assert.Equal(t, "input", rec.TagName)
	assert.Equal(t, "from", rec.Attr("id"))
	assert.Equal(t, "Zurich", rec.Attr("value"))
	assert.Equal(t, 12.5, rec.Position.X)
	assert.Equal(t, 340.0, rec.Position.Y)
	assert.Equal(t, 200.0, rec.Size.Width)
	assert.Equal(t, 32.0, rec.Size.Height)
}

func newTestAdapter(t *testing.T) *BrowserAdapter {
	t.Helper()
	if testing.Short() {
		t.Skip("launches a browser")
	}
	cfg := DefaultConfig()
	cfg.Headless = true

	adapter, err := NewBrowserAdapter(context.Background(), cfg)
	if err != nil {
		t.Skipf("browser unavailable: %v", err)
	}
	t.Cleanup(adapter.Close)
	return adapter
}

func serve(t *testing.T, page string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestBrowserAdapter_NavigateAndElements(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	url := serve(t, FormHTML)

	require.NoError(t, adapter.Navigate(ctx, url))
	assert.Equal(t, url+"/", adapter.CurrentURL())

	ready, err := adapter.Ready(ctx)
	require.NoError(t, err)
	assert.True(t, ready)

	handles, err := adapter.Elements(ctx, []string{"input", "button"})
	require.NoError(t, err)
	require.Len(t, handles, 3)

	rec, err := handles[0].Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "input", rec.TagName)
	assert.Equal(t, "username", rec.Attr("id"))
	assert.Greater(t, rec.Size.Width, 0.0)

	rec, err = handles[2].Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "button", rec.TagName)
	assert.Equal(t, "Submit", rec.Text)
}

func TestBrowserAdapter_LocateClickFill(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, serve(t, InteractiveHTML)))

	found, err := adapter.Locate(ctx, output.Locator{Tag: "button", Text: "Click Me"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.NoError(t, found[0].Click(ctx))

	res, err := adapter.page.Eval(`() => document.getElementById('result').textContent`)
	require.NoError(t, err)
	assert.Equal(t, "Clicked!", res.Value.Str())

	missing, err := adapter.Locate(ctx, output.Locator{Tag: "button", ID: "nope"})
	require.NoError(t, err)
	assert.Empty(t, missing)

	inputs, err := adapter.Locate(ctx, output.Locator{Tag: "input", ID: "name"})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	require.NoError(t, inputs[0].Fill(ctx, "Bern"))
	require.NoError(t, inputs[0].Fill(ctx, "Basel"))

	rec, err := inputs[0].Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Basel", rec.Attr("value"))

	assert.NoError(t, adapter.ClickOrigin(ctx))
}

func TestBrowserAdapter_ViewportAndScreenshot(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, serve(t, BasicHTML)))

	screen, err := adapter.ScreenSize(ctx)
	require.NoError(t, err)
	assert.Greater(t, screen.Width, 0)

	require.NoError(t, adapter.SetViewport(ctx, 800, 600))

	shot, err := adapter.Screenshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", shot.Format)
	assert.NotEmpty(t, shot.Data)
	assert.Equal(t, 800, shot.Width)
}

func TestBrowserAdapter_DescribeUsesViewportPosition(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, serve(t, LongPageHTML)))
	require.NoError(t, adapter.SetViewport(ctx, 800, 600))

	_, err := adapter.page.Eval(`() => window.scrollTo(0, 3000)`)
	require.NoError(t, err)

	found, err := adapter.Locate(ctx, output.Locator{Tag: "p", ID: "deep"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	rec, err := found[0].Describe(ctx)
	require.NoError(t, err)

	rect, err := adapter.page.Eval(`() => {
		const r = document.getElementById('deep').getBoundingClientRect();
		return {x: r.x, y: r.y};
	}`)
	require.NoError(t, err)
	assert.InDelta(t, rect.Value.Get("y").Num(), rec.Position.Y, 0.5)
	assert.InDelta(t, rect.Value.Get("x").Num(), rec.Position.X, 0.5)
	assert.InDelta(t, 500, rec.Position.Y, 0.5)
}

func TestBrowserAdapter_ClickOriginIgnoresElementsAtCorner(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	url := serve(t, CornerLinkHTML)
	require.NoError(t, adapter.Navigate(ctx, url))

	inputs, err := adapter.Locate(ctx, output.Locator{Tag: "input", ID: "q"})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	require.NoError(t, inputs[0].Fill(ctx, "Bern"))

	require.NoError(t, adapter.ClickOrigin(ctx))

	assert.Equal(t, url+"/", adapter.CurrentURL())
	state, err := adapter.page.Eval(`() => ({
		focused: document.activeElement === document.body,
		clicks: document.getElementById('clicks').textContent,
	})`)
	require.NoError(t, err)
	assert.True(t, state.Value.Get("focused").Bool())
	assert.Equal(t, "1", state.Value.Get("clicks").Str())
}
