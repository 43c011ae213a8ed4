package state

// State is the transient per-mount shell state.
type State struct {
	SidebarOpen bool
	DarkMode    bool
}

// Initial returns the state every freshly mounted shell starts with.
func Initial() State {
	return State{SidebarOpen: false, DarkMode: true}
}

// Event is a user interaction the shell reacts to.
type Event int

const (
	// EventMenuOpen is the mobile header menu button.
	EventMenuOpen Event = iota + 1
	// EventBackdropClick is a click on the drawer overlay.
	EventBackdropClick
	// EventCloseButton is the drawer's close button.
	EventCloseButton
	// EventNavigate is a link activation without a dismiss callback
	// (desktop sidebar, bottom bar).
	EventNavigate
	// EventDrawerNavigate is a link activation inside the mobile drawer.
	EventDrawerNavigate
	// EventThemeToggle is the desktop sidebar theme button.
	EventThemeToggle
	// EventDrawerThemeToggle is the drawer theme button, which also closes the drawer.
	EventDrawerThemeToggle
)

var eventNames = map[Event]string{
	EventMenuOpen:          "menu_open",
	EventBackdropClick:     "backdrop_click",
	EventCloseButton:       "close_button",
	EventNavigate:          "navigate",
	EventDrawerNavigate:    "drawer_navigate",
	EventThemeToggle:       "theme_toggle",
	EventDrawerThemeToggle: "drawer_theme_toggle",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether e is a known event.
func (e Event) Valid() bool {
	_, ok := eventNames[e]
	return ok
}

// Apply returns the state after handling ev. Unknown events leave s unchanged.
func (s State) Apply(ev Event) State {
	switch ev {
	case EventMenuOpen:
		s.SidebarOpen = true
	case EventBackdropClick, EventCloseButton, EventDrawerNavigate:
		s.SidebarOpen = false
	case EventThemeToggle:
		s.DarkMode = !s.DarkMode
	case EventDrawerThemeToggle:
		s.DarkMode = !s.DarkMode
		s.SidebarOpen = false
	}
	return s
}
