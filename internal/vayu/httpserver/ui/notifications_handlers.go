package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	custommw "finitefield.org/vayu-web/internal/vayu/httpserver/middleware"
	"finitefield.org/vayu-web/internal/vayu/httpx"
	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/notifications"
	"finitefield.org/vayu-web/internal/vayu/requestctx"
	notificationstpl "finitefield.org/vayu-web/internal/vayu/templates/notifications"
)

const panelLimit = 20

// NotificationsPanel renders the notification widget fragment.
func (h *Handlers) NotificationsPanel(w http.ResponseWriter, r *http.Request) {
	expanded := r.URL.Query().Get("open") == "1"
	h.renderPanel(w, r, expanded)
}

// NotificationRead marks an alert read and re-renders the expanded widget.
func (h *Handlers) NotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(chi.URLParam(r, "notificationID"))
	if id == "" {
		httpx.WriteError(ctx, w, r, httpx.NewError("invalid_notification", "notification id is required", http.StatusBadRequest))
		return
	}

	if err := h.notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			httpx.WriteError(ctx, w, r, httpx.NewError("notification_not_found", "notification not found", http.StatusNotFound))
			return
		}
		requestctx.Logger(ctx).Error("notifications: mark read failed", zap.String("notification_id", id), zap.Error(err))
		httpx.WriteError(ctx, w, r, httpx.NewError("notification_update_failed", "failed to update notification", http.StatusBadGateway))
		return
	}
	h.renderPanel(w, r, true)
}

func (h *Handlers) renderPanel(w http.ResponseWriter, r *http.Request, expanded bool) {
	ctx := r.Context()
	logger := requestctx.Logger(ctx)
	basePath := custommw.BasePathFromContext(ctx)

	var errMsg string
	feed, err := h.notifications.List(ctx, notifications.Query{Limit: panelLimit})
	if err != nil {
		logger.Error("notifications: list failed", zap.Error(err))
		errMsg = "Notifications are unavailable right now."
		feed = notifications.Feed{}
	}
	badge, err := h.notifications.Badge(ctx)
	if err != nil {
		logger.Error("notifications: badge failed", zap.Error(err))
		badge = notifications.BadgeCount{}
	}

	payload := notificationstpl.PanelPayload(basePath, navigation.NewResolver(basePath), feed, badge, h.now())
	payload.Expanded = expanded
	payload.Error = errMsg
	templ.Handler(notificationstpl.Panel(payload)).ServeHTTP(w, r)
}
