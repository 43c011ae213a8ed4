package layout

import (
	"github.com/a-h/templ"

	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/state"
)

// ShellData is everything AppShell needs to render one mount.
type ShellData struct {
	State    state.State
	Location navigation.Location
	// MountToken is the signed mount id echoed back on every htmx request.
	MountToken string
	CSRFToken  string
	CSRFHeader string
	// Content fills the main slot. When nil, children passed through
	// templ.WithChildren are rendered instead.
	Content templ.Component
}

// DocumentData wraps the shell in a full HTML page.
// AppName prefixes the document title; Description fills the meta tag.
type DocumentData struct {
	Shell       ShellData
	AppName     string
	Description string
}

const (
	brandName    = "Jeevan Vayu"
	brandTagline = "Clean Air, Healthy Life"

	shellID     = "app-shell"
	shellClass  = "app-shell"
	drawerID    = "mobile-drawer"
	backdropID  = "drawer-backdrop"
	contentID   = "shell-content"
	panelID     = "notification-panel"
	pageTitleID = "page-title"
)

// ShellTarget is the htmx selector every shell interaction swaps.
const ShellTarget = "#" + shellID
