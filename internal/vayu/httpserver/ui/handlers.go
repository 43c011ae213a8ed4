package ui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	custommw "finitefield.org/vayu-web/internal/vayu/httpserver/middleware"
	"finitefield.org/vayu-web/internal/vayu/httpx"
	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/notifications"
	"finitefield.org/vayu-web/internal/vayu/pages"
	"finitefield.org/vayu-web/internal/vayu/requestctx"
	"finitefield.org/vayu-web/internal/vayu/state"
	"finitefield.org/vayu-web/internal/vayu/templates/layout"
)

// Dependencies collects external services required by the UI handlers.
type Dependencies struct {
	Store         *state.Store
	Tokens        *state.TokenCodec
	Pages         pages.Provider
	Notifications notifications.Service
	CSRFHeader    string
	AppName       string
	Now           func() time.Time
}

// Handlers exposes HTTP handlers for the shell pages and fragments.
type Handlers struct {
	store         *state.Store
	tokens        *state.TokenCodec
	pages         pages.Provider
	notifications notifications.Service
	csrfHeader    string
	appName       string
	now           func() time.Time
}

// NewHandlers wires the UI handler set.
func NewHandlers(deps Dependencies) (*Handlers, error) {
	provider := deps.Pages
	if provider == nil {
		p, err := pages.NewMarkdownProvider("")
		if err != nil {
			return nil, err
		}
		provider = p
	}
	store := deps.Store
	if store == nil {
		store = state.NewStore(state.Options{})
	}
	tokens := deps.Tokens
	if tokens == nil {
		tokens = state.NewTokenCodec(nil)
	}
	feed := deps.Notifications
	if feed == nil {
		feed = notifications.NewStaticService()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		store:         store,
		tokens:        tokens,
		pages:         provider,
		notifications: feed,
		csrfHeader:    deps.CSRFHeader,
		appName:       deps.AppName,
		now:           now,
	}, nil
}

// Page renders a shell route. Plain requests create a fresh mount and get a
// full document. htmx navigations from a live mount move that mount and get
// the shell fragment back.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := requestctx.Logger(ctx)
	path := r.URL.Path

	basePath := custommw.BasePathFromContext(ctx)
	routeName, found := navigation.RouteKeyForPath(navigation.NewResolver(basePath), basePath, path)
	if !found {
		routeName = layout.NotFoundRouteName
	}

	if custommw.IsHTMXRequest(ctx) {
		shell := custommw.ShellRequestFromContext(ctx)
		if found {
			if live, ok := h.liveMount(ctx, shell.MountToken); ok {
				mount, err := h.store.Navigate(live.ID, path, routeName, shell.Dismiss)
				if err == nil {
					h.renderShell(w, r, mount, http.StatusOK)
					return
				}
			}
		}
		// The mount is gone, out of step with the page, or the target does
		// not exist; load the target as a full page into a fresh mount.
		logger.Debug("shell navigation falls back to full load", zap.String("target", path), zap.Bool("found", found))
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	mount := h.store.Mount(path, routeName)
	token, err := h.tokens.Encode(mount.ID)
	if err != nil {
		logger.Error("encode mount token", zap.Error(err))
		httpx.WriteError(ctx, w, r, httpx.NewError("mount_token", "failed to start the shell", http.StatusInternalServerError))
		return
	}

	data, err := h.shellData(r, mount, token)
	if err != nil {
		logger.Error("load page content", zap.String("route", routeName), zap.Error(err))
		httpx.WriteError(ctx, w, r, httpx.NewError("page_content", "failed to load page content", http.StatusInternalServerError))
		return
	}

	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}
	document := layout.Document(layout.DocumentData{
		Shell:       data,
		AppName:     h.appName,
		Description: h.description(r, routeName),
	})
	templ.Handler(document, templ.WithStatus(status)).ServeHTTP(w, r)
}

// SidebarOpen opens the mobile drawer.
func (h *Handlers) SidebarOpen(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, state.EventMenuOpen)
}

// SidebarClose closes the mobile drawer. The via parameter names the control
// that triggered it: "backdrop" or "button".
func (h *Handlers) SidebarClose(w http.ResponseWriter, r *http.Request) {
	switch via := r.URL.Query().Get("via"); via {
	case "backdrop":
		h.dispatch(w, r, state.EventBackdropClick)
	case "", "button":
		h.dispatch(w, r, state.EventCloseButton)
	default:
		httpx.WriteError(r.Context(), w, r, httpx.NewError("invalid_trigger", "unknown close trigger "+via, http.StatusBadRequest))
	}
}

// ThemeToggle flips dark mode. Toggling from the drawer also closes it.
func (h *Handlers) ThemeToggle(w http.ResponseWriter, r *http.Request) {
	switch surface := r.URL.Query().Get("surface"); surface {
	case "", "sidebar":
		h.dispatch(w, r, state.EventThemeToggle)
	case "drawer":
		h.dispatch(w, r, state.EventDrawerThemeToggle)
	default:
		httpx.WriteError(r.Context(), w, r, httpx.NewError("invalid_surface", "unknown theme surface "+surface, http.StatusBadRequest))
	}
}

func (h *Handlers) dispatch(w http.ResponseWriter, r *http.Request, ev state.Event) {
	ctx := r.Context()
	logger := requestctx.Logger(ctx)
	token := custommw.ShellRequestFromContext(ctx).MountToken

	current, ok := h.liveMount(ctx, token)
	if !ok {
		logger.Info("shell event without live mount", zap.String("event", ev.String()))
		refresh(w)
		return
	}
	mount, err := h.store.Dispatch(current.ID, ev)
	if err != nil {
		if errors.Is(err, state.ErrMountNotFound) {
			logger.Info("shell event for evicted mount", zap.String("event", ev.String()))
			refresh(w)
			return
		}
		logger.Error("dispatch shell event", zap.String("event", ev.String()), zap.Error(err))
		httpx.WriteError(ctx, w, r, httpx.NewError("dispatch_failed", "failed to update the shell", http.StatusInternalServerError))
		return
	}

	logger.Debug("shell event applied",
		zap.String("event", ev.String()),
		zap.Bool("sidebar_open", mount.State.SidebarOpen),
		zap.Bool("dark_mode", mount.State.DarkMode),
	)
	h.renderShell(w, r, mount, http.StatusOK)
}

// liveMount resolves the mount behind token. A mount only counts as live when
// the sending page still shows the mount's path: after a history restore the
// browser displays an older snapshot while the mount has moved on.
func (h *Handlers) liveMount(ctx context.Context, token string) (state.Mount, bool) {
	logger := requestctx.Logger(ctx)
	id, err := h.tokens.Decode(token)
	if err != nil {
		logger.Debug("decode mount token", zap.Error(err))
		return state.Mount{}, false
	}
	mount, err := h.store.Get(id)
	if err != nil {
		logger.Debug("lookup mount", zap.Error(err))
		return state.Mount{}, false
	}
	if page, ok := custommw.HTMXInfoFromContext(ctx).CurrentPath(); ok && !samePath(page, mount.Path) {
		logger.Info("page out of step with mount", zap.String("page", page), zap.String("mount_path", mount.Path))
		return state.Mount{}, false
	}
	return mount, true
}

func samePath(a, b string) bool {
	trim := func(p string) string {
		if p == "" || p == "/" {
			return "/"
		}
		return strings.TrimSuffix(p, "/")
	}
	return trim(a) == trim(b)
}

func (h *Handlers) renderShell(w http.ResponseWriter, r *http.Request, mount state.Mount, status int) {
	ctx := r.Context()
	token, err := h.tokens.Encode(mount.ID)
	if err != nil {
		requestctx.Logger(ctx).Error("encode mount token", zap.Error(err))
		httpx.WriteError(ctx, w, r, httpx.NewError("mount_token", "failed to render the shell", http.StatusInternalServerError))
		return
	}
	data, err := h.shellData(r, mount, token)
	if err != nil {
		requestctx.Logger(ctx).Error("load page content", zap.String("route", mount.RouteName), zap.Error(err))
		httpx.WriteError(ctx, w, r, httpx.NewError("page_content", "failed to load page content", http.StatusInternalServerError))
		return
	}
	templ.Handler(layout.AppShell(data), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (h *Handlers) shellData(r *http.Request, mount state.Mount, token string) (layout.ShellData, error) {
	ctx := r.Context()
	content, err := h.content(r, mount)
	if err != nil {
		return layout.ShellData{}, err
	}
	return layout.ShellData{
		State:      mount.State,
		Location:   navigation.Location{Path: mount.Path, RouteName: mount.RouteName},
		MountToken: token,
		CSRFToken:  custommw.CSRFTokenFromContext(ctx),
		CSRFHeader: h.csrfHeader,
		Content:    content,
	}, nil
}

func (h *Handlers) content(r *http.Request, mount state.Mount) (templ.Component, error) {
	if mount.RouteName == layout.NotFoundRouteName {
		return layout.NotFoundContent(mount.Path), nil
	}
	page, err := h.pages.Page(r.Context(), mount.RouteName)
	if errors.Is(err, pages.ErrNotFound) {
		return layout.NotFoundContent(mount.Path), nil
	}
	if err != nil {
		return nil, err
	}
	return layout.PageContent(page), nil
}

func (h *Handlers) description(r *http.Request, routeName string) string {
	if routeName == layout.NotFoundRouteName {
		return ""
	}
	page, err := h.pages.Page(r.Context(), routeName)
	if err != nil {
		return ""
	}
	return page.Summary
}

func refresh(w http.ResponseWriter) {
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusNoContent)
}
