package httpserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"finitefield.org/vayu-web/internal/vayu/httpserver/middleware"
	"finitefield.org/vayu-web/internal/vayu/observability"
	"finitefield.org/vayu-web/internal/vayu/state"
	"finitefield.org/vayu-web/internal/vayu/testutil"
)

// session drives one browser tab: it keeps cookies, tracks the address bar
// and replays the shell's hx-headers on every htmx request like htmx does.
type session struct {
	t       *testing.T
	ts      *httptest.Server
	client  *http.Client
	mount   string
	csrf    string
	address string
}

func newSession(t *testing.T, ts *httptest.Server) *session {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &session{t: t, ts: ts, client: &http.Client{Jar: jar}}
}

func (s *session) do(req *http.Request) (*http.Response, []byte) {
	s.t.Helper()

	resp, err := s.client.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, body
}

// load performs a full page load and captures the mount headers.
func (s *session) load(path string) (*http.Response, *goquery.Document) {
	s.t.Helper()

	req, err := http.NewRequest(http.MethodGet, s.ts.URL+path, nil)
	require.NoError(s.t, err)
	resp, body := s.do(req)
	doc := testutil.ParseHTML(s.t, body)
	s.capture(doc)
	s.address = s.ts.URL + path
	return resp, doc
}

// restore puts a previously captured page back in the tab without contacting
// the server, like a browser history snapshot.
func (s *session) restore(path, mount string) {
	s.address = s.ts.URL + path
	s.mount = mount
}

func (s *session) capture(doc *goquery.Document) {
	s.t.Helper()

	raw, ok := doc.Find("#app-shell").Attr("hx-headers")
	if !ok {
		return
	}
	var headers map[string]string
	require.NoError(s.t, json.Unmarshal([]byte(raw), &headers))
	s.mount = headers[middleware.MountHeader]
	s.csrf = headers["X-CSRF-Token"]
}

func (s *session) htmx(method, path string, extra map[string]string) (*http.Response, *goquery.Document) {
	s.t.Helper()

	req, err := http.NewRequest(method, s.ts.URL+path, nil)
	require.NoError(s.t, err)
	req.Header.Set("HX-Request", "true")
	req.Header.Set(middleware.MountHeader, s.mount)
	req.Header.Set("X-CSRF-Token", s.csrf)
	if s.address != "" {
		req.Header.Set("HX-Current-URL", s.address)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
	resp, body := s.do(req)
	doc := testutil.ParseHTML(s.t, body)
	s.capture(doc)
	if method == http.MethodGet && resp.StatusCode == http.StatusOK && doc.Find("#app-shell").Length() == 1 {
		// hx-push-url
		s.address = s.ts.URL + path
	}
	return resp, doc
}

func shellState(t *testing.T, doc *goquery.Document) (theme, sidebar string) {
	t.Helper()

	root := testutil.ShellRoot(t, doc)
	return root.AttrOr("data-theme", ""), doc.Find("#mobile-drawer").AttrOr("data-state", "")
}

func TestFreshLoadStartsDarkAndClosed(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)

	resp, doc := s.load("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	theme, sidebar := shellState(t, doc)
	require.Equal(t, "dark", theme)
	require.Equal(t, "closed", sidebar)
	require.True(t, doc.Find("#app-shell").HasClass("dark"))
	require.Equal(t, "Dashboard | Jeevan Vayu", doc.Find("title").Text())
	require.Equal(t, 0, doc.Find(`a[aria-current="page"]`).Length(), "the root path matches no link exactly")
	require.NotEmpty(t, s.mount)
	require.NotEmpty(t, s.csrf)
	require.Equal(t, 5, doc.Find("#bottom-bar a").Length())
}

func TestStateDoesNotSurviveReload(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)

	s.load("/forecast")
	first := s.mount
	_, doc := s.htmx(http.MethodPost, "/shell/theme", nil)
	theme, _ := shellState(t, doc)
	require.Equal(t, "light", theme)

	_, doc = s.load("/forecast")
	theme, sidebar := shellState(t, doc)
	require.Equal(t, "dark", theme)
	require.Equal(t, "closed", sidebar)
	require.NotEqual(t, first, s.mount, "every load mounts a new shell")
}

func TestThemeToggleIsInvolution(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)
	s.load("/community")

	resp, doc := s.htmx(http.MethodPost, "/shell/theme?surface=sidebar", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	theme, _ := shellState(t, doc)
	require.Equal(t, "light", theme)
	require.False(t, doc.Find("#app-shell").HasClass("dark"))
	require.Equal(t, "Dark Mode", strings.TrimSpace(doc.Find(`button[data-surface="sidebar"] span`).Text()))

	_, doc = s.htmx(http.MethodPost, "/shell/theme?surface=sidebar", nil)
	theme, _ = shellState(t, doc)
	require.Equal(t, "dark", theme)
	require.True(t, doc.Find("#app-shell").HasClass("dark"))
}

func TestEveryCloseTriggerClosesDrawer(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	triggers := []struct {
		name   string
		method string
		path   string
		header map[string]string
		theme  string
	}{
		{name: "backdrop", method: http.MethodPost, path: "/shell/sidebar/close?via=backdrop", theme: "dark"},
		{name: "close button", method: http.MethodPost, path: "/shell/sidebar/close?via=button", theme: "dark"},
		{name: "drawer link", method: http.MethodGet, path: "/education", header: map[string]string{middleware.DismissHeader: "true"}, theme: "dark"},
		{name: "drawer theme toggle", method: http.MethodPost, path: "/shell/theme?surface=drawer", theme: "light"},
	}

	for _, tc := range triggers {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := newSession(t, ts)
			s.load("/dashboard")

			_, doc := s.htmx(http.MethodPost, "/shell/sidebar/open", nil)
			_, sidebar := shellState(t, doc)
			require.Equal(t, "open", sidebar)

			resp, doc := s.htmx(tc.method, tc.path, tc.header)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			theme, sidebar := shellState(t, doc)
			require.Equal(t, "closed", sidebar)
			require.Equal(t, tc.theme, theme)
		})
	}
}

func TestDesktopNavigationKeepsDrawerState(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)
	s.load("/dashboard")

	resp, doc := s.htmx(http.MethodGet, "/livemap", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Live Map", strings.TrimSpace(doc.Find("#page-title").Text()))
	require.Equal(t, "LiveMap", doc.Find(`#desktop-sidebar a[aria-current="page"]`).AttrOr("data-route", ""))
	require.Equal(t, 0, doc.Find("title").Length(), "htmx navigation returns the shell fragment")
}

func TestDocumentDisablesHistorySnapshots(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)

	_, doc := s.load("/dashboard")
	raw, ok := doc.Find(`head meta[name="htmx-config"]`).Attr("content")
	require.True(t, ok)
	var cfg struct {
		HistoryCacheSize     *int `json:"historyCacheSize"`
		RefreshOnHistoryMiss bool `json:"refreshOnHistoryMiss"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
	require.NotNil(t, cfg.HistoryCacheSize)
	require.Zero(t, *cfg.HistoryCacheSize)
	require.True(t, cfg.RefreshOnHistoryMiss)
}

func TestRestoredPageOutOfStepWithMountReloads(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)

	s.load("/dashboard")
	dashboardMount := s.mount
	_, doc := s.htmx(http.MethodGet, "/forecast", nil)
	require.Equal(t, "Forecast", doc.Find(`#desktop-sidebar a[aria-current="page"]`).AttrOr("data-route", ""))
	_, doc = s.htmx(http.MethodPost, "/shell/theme", nil)
	theme, _ := shellState(t, doc)
	require.Equal(t, "light", theme)

	// Back: the dashboard snapshot (dark, old mount headers) is on screen
	// while the mount sits on the forecast page in light mode.
	s.restore("/dashboard", dashboardMount)

	resp, _ := s.htmx(http.MethodPost, "/shell/sidebar/open", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "true", resp.Header.Get("HX-Refresh"))

	resp, _ = s.htmx(http.MethodPost, "/shell/theme?surface=drawer", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "true", resp.Header.Get("HX-Refresh"))

	resp, _ = s.htmx(http.MethodGet, "/rewards", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "/rewards", resp.Header.Get("HX-Redirect"))

	// the reload lands in a fresh mount whose page and theme match the screen
	_, doc = s.load("/dashboard")
	require.NotEqual(t, dashboardMount, s.mount)
	require.Equal(t, "Dashboard", doc.Find(`#desktop-sidebar a[aria-current="page"]`).AttrOr("data-route", ""))
	resp, doc = s.htmx(http.MethodPost, "/shell/theme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	theme, _ = shellState(t, doc)
	require.Equal(t, "light", theme)
	require.Equal(t, "Dashboard", doc.Find(`#desktop-sidebar a[aria-current="page"]`).AttrOr("data-route", ""))
}

func TestMountPathComparisonIgnoresTrailingSlash(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithBasePath("/app"))
	s := newSession(t, ts)

	s.load("/app/")
	s.restore("/app", s.mount)

	resp, doc := s.htmx(http.MethodPost, "/app/shell/sidebar/open", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, sidebar := shellState(t, doc)
	require.Equal(t, "open", sidebar)
}

func TestStaleMountsRefresh(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := state.NewStore(state.Options{TTL: time.Minute, Now: clock.Now})
	ts := testutil.NewServer(t, testutil.WithStore(store))

	s := newSession(t, ts)
	s.load("/forecast")

	clock.Advance(2 * time.Minute)
	require.Equal(t, 1, store.Sweep())

	resp, _ := s.htmx(http.MethodPost, "/shell/sidebar/open", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "true", resp.Header.Get("HX-Refresh"))

	resp, _ = s.htmx(http.MethodGet, "/rewards", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "/rewards", resp.Header.Get("HX-Redirect"))
}

func TestForgedMountTokenRefreshes(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)
	s.load("/")
	s.mount = "not-a-signed-token"

	resp, _ := s.htmx(http.MethodPost, "/shell/theme", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "true", resp.Header.Get("HX-Refresh"))
}

func TestShellEventsRequireCSRF(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)
	s.load("/")
	s.csrf = ""

	resp, _ := s.htmx(http.MethodPost, "/shell/sidebar/open", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInvalidEventParameters(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)
	s.load("/")

	resp, _ := s.htmx(http.MethodPost, "/shell/sidebar/close?via=swipe", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = s.htmx(http.MethodPost, "/shell/theme?surface=header", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownPageRendersNotFoundShell(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)

	resp, doc := s.load("/does-not-exist")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Not Found", strings.TrimSpace(doc.Find("#page-title").Text()))
	require.Equal(t, "/does-not-exist", doc.Find("#shell-content code").Text())
	require.Equal(t, 0, doc.Find(`a[aria-current="page"]`).Length())

	// the not-found shell is still interactive
	resp, doc = s.htmx(http.MethodPost, "/shell/sidebar/open", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, sidebar := shellState(t, doc)
	require.Equal(t, "open", sidebar)
	require.Equal(t, "Not Found", strings.TrimSpace(doc.Find("#page-title").Text()))
}

func TestSettingsPage(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)

	resp, doc := s.load("/settings")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Settings", strings.TrimSpace(doc.Find("#page-title").Text()))
	require.Equal(t, "Settings", doc.Find("#shell-content article").AttrOr("data-page", ""))
}

func TestBasePath(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithBasePath("/app"))
	s := newSession(t, ts)

	resp, doc := s.load("/app/policyhub")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/app/policyhub", doc.Find(`#desktop-sidebar a[aria-current="page"]`).AttrOr("href", ""))
	require.Equal(t, "/app/shell/sidebar/open", doc.Find(`button[data-action="open-drawer"]`).AttrOr("hx-post", ""))

	resp, _ = s.load("/app")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, doc = s.htmx(http.MethodPost, "/app/shell/sidebar/open", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, sidebar := shellState(t, doc)
	require.Equal(t, "open", sidebar)
}

func TestNotificationWidget(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	s := newSession(t, ts)
	s.load("/")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/notifications/panel", nil)
	require.NoError(t, err)
	resp, _ := s.do(req)
	require.Equal(t, http.StatusNotFound, resp.StatusCode, "fragment is htmx only")

	resp, doc := s.htmx(http.MethodGet, "/notifications/panel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "3", doc.Find("[data-badge]").Text())

	resp, doc = s.htmx(http.MethodPost, "/notifications/aqi-spike-central/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "2", doc.Find("[data-badge]").Text())
	_, open := doc.Find("details").Attr("open")
	require.True(t, open)

	resp, _ = s.htmx(http.MethodPost, "/notifications/missing/read", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	metrics := observability.NewShellMetrics()
	store := state.NewStore(state.Options{Observer: metrics})
	ts := testutil.NewServer(t, testutil.WithMetrics(metrics), testutil.WithStore(store))

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	s := newSession(t, ts)
	s.load("/")
	s.htmx(http.MethodPost, "/shell/theme", nil)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "vayu_shell_mounts_total 1")
	require.Contains(t, string(body), `vayu_shell_theme_changes_total{theme="light"} 1`)
}

func TestStaticAssets(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	resp, err := http.Get(ts.URL + "/public/static/shell.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
