package navigation

// Icon identifies a glyph rendered next to a navigation label. Glyph markup is
// resolved at render time through a lookup table in the templates layer.
type Icon int

const (
	IconNone Icon = iota
	IconDashboard
	IconWind
	IconMap
	IconUser
	IconShieldCheck
	IconUsers
	IconBookOpen
	IconAward
	IconSettings
	IconMenu
	IconClose
	IconSun
	IconMoon
	IconSearch
	IconBell
)

var iconNames = map[Icon]string{
	IconNone:        "none",
	IconDashboard:   "layout-dashboard",
	IconWind:        "wind",
	IconMap:         "map",
	IconUser:        "user",
	IconShieldCheck: "shield-check",
	IconUsers:       "users",
	IconBookOpen:    "book-open",
	IconAward:       "award",
	IconSettings:    "settings",
	IconMenu:        "menu",
	IconClose:       "x",
	IconSun:         "sun",
	IconMoon:        "moon",
	IconSearch:      "search",
	IconBell:        "bell",
}

// String returns the icon slug, used for data attributes and debugging.
func (i Icon) String() string {
	if name, ok := iconNames[i]; ok {
		return name
	}
	return "none"
}

// Item represents an entry in the primary navigation.
type Item struct {
	Title    string
	RouteKey string
	Icon     Icon
}

// BottomBarSize is the number of leading items repeated in the mobile bottom bar.
const BottomBarSize = 5

var main = []Item{
	{Title: "Dashboard", RouteKey: "Dashboard", Icon: IconDashboard},
	{Title: "Forecast", RouteKey: "Forecast", Icon: IconWind},
	{Title: "Live Map", RouteKey: "LiveMap", Icon: IconMap},
	{Title: "My Health", RouteKey: "MyHealth", Icon: IconUser},
	{Title: "Policy Hub", RouteKey: "PolicyHub", Icon: IconShieldCheck},
	{Title: "Community", RouteKey: "Community", Icon: IconUsers},
	{Title: "Education", RouteKey: "Education", Icon: IconBookOpen},
	{Title: "Rewards", RouteKey: "Rewards", Icon: IconAward},
}

// SettingsItem is the footer link shown below the theme toggle in both sidebars.
var SettingsItem = Item{Title: "Settings", RouteKey: "Settings", Icon: IconSettings}

// DefaultRouteKey is rendered when the shell is requested at its root path.
const DefaultRouteKey = "Dashboard"

// Items returns the primary navigation in display order.
func Items() []Item {
	out := make([]Item, len(main))
	copy(out, main)
	return out
}

// BottomBar returns the leading entries shown in the compact mobile bar.
func BottomBar() []Item {
	n := BottomBarSize
	if n > len(main) {
		n = len(main)
	}
	out := make([]Item, n)
	copy(out, main[:n])
	return out
}

// Lookup finds a navigable item (primary or settings) by its route key.
func Lookup(routeKey string) (Item, bool) {
	for _, it := range main {
		if it.RouteKey == routeKey {
			return it, true
		}
	}
	if routeKey == SettingsItem.RouteKey {
		return SettingsItem, true
	}
	return Item{}, false
}

// RouteKeys lists every route key the shell can render, including settings.
func RouteKeys() []string {
	keys := make([]string, 0, len(main)+1)
	for _, it := range main {
		keys = append(keys, it.RouteKey)
	}
	return append(keys, SettingsItem.RouteKey)
}

// IsActive reports whether the item links to the current location. Matching is
// an exact string comparison against the resolved URL.
func IsActive(item Item, currentPath string, resolver Resolver) bool {
	if resolver == nil {
		resolver = DefaultResolver()
	}
	return currentPath == resolver.Resolve(item.RouteKey)
}
