package nav

// MenuState is the visibility of the mobile navigation overlay.
type MenuState uint8

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// Event is a user action that drives the menu.
type Event uint8

const (
	ToggleButtonPressed Event = iota + 1
	LinkSelected
)

func (e Event) String() string {
	switch e {
	case ToggleButtonPressed:
		return "toggle"
	case LinkSelected:
		return "link_selected"
	default:
		return "unknown"
	}
}

// Navigator accepts navigation requests, e.g. the browser history or an HTTP redirect.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Menu holds the mobile overlay state. The zero value is closed.
type Menu struct {
	state MenuState
}

// NewMenu returns a closed menu.
func NewMenu() *Menu {
	return &Menu{state: MenuClosed}
}

// RestoreMenu rebuilds a menu from a persisted open flag.
func RestoreMenu(open bool) *Menu {
	if open {
		return &Menu{state: MenuOpen}
	}
	return NewMenu()
}

// Apply performs the transition for ev and returns the resulting state.
// Unknown events leave the state unchanged.
func (m *Menu) Apply(ev Event) MenuState {
	switch ev {
	case ToggleButtonPressed:
		if m.state == MenuOpen {
			m.state = MenuClosed
		} else {
			m.state = MenuOpen
		}
	case LinkSelected:
		m.state = MenuClosed
	}
	return m.state
}

// Toggle flips the overlay.
func (m *Menu) Toggle() MenuState { return m.Apply(ToggleButtonPressed) }

// Close hides the overlay. Closing a closed menu is a no-op.
func (m *Menu) Close() MenuState { return m.Apply(LinkSelected) }

// SelectLink closes the overlay and requests navigation to the entry's path once.
func (m *Menu) SelectLink(e Entry, n Navigator) {
	m.Apply(LinkSelected)
	if n != nil {
		n.Navigate(e.Path)
	}
}

// State returns the current state.
func (m *Menu) State() MenuState { return m.state }

// IsOpen reports whether the overlay should be shown.
func (m *Menu) IsOpen() bool { return m.state == MenuOpen }
