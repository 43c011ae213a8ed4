package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitialState(t *testing.T) {
	t.Parallel()

	s := Initial()
	require.False(t, s.SidebarOpen)
	require.True(t, s.DarkMode)
}

func TestApplySidebarTransitions(t *testing.T) {
	t.Parallel()

	closers := []Event{EventBackdropClick, EventCloseButton, EventDrawerNavigate, EventDrawerThemeToggle}
	for _, ev := range closers {
		ev := ev
		t.Run(ev.String(), func(t *testing.T) {
			t.Parallel()

			open := Initial().Apply(EventMenuOpen)
			require.True(t, open.SidebarOpen)
			require.False(t, open.Apply(ev).SidebarOpen)
		})
	}

	// Desktop interactions never open or close the drawer.
	open := Initial().Apply(EventMenuOpen)
	require.True(t, open.Apply(EventNavigate).SidebarOpen)
	require.True(t, open.Apply(EventThemeToggle).SidebarOpen)
	require.False(t, Initial().Apply(EventThemeToggle).SidebarOpen)
}

func TestApplyThemeToggleFlipsOnce(t *testing.T) {
	t.Parallel()

	for _, ev := range []Event{EventThemeToggle, EventDrawerThemeToggle} {
		start := Initial()
		once := start.Apply(ev)
		require.NotEqual(t, start.DarkMode, once.DarkMode, ev.String())
		twice := once.Apply(ev)
		require.Equal(t, start.DarkMode, twice.DarkMode, ev.String())
	}
}

func TestApplyIgnoresUnknownEvents(t *testing.T) {
	t.Parallel()

	s := State{SidebarOpen: true, DarkMode: false}
	require.Equal(t, s, s.Apply(Event(0)))
	require.False(t, Event(0).Valid())
	require.Equal(t, "unknown", Event(42).String())
}
