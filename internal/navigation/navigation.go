// Package navigation tracks which screen is shown, which overlay is layered on
// top of it, and where the selection cursor is.
//
// Screen and Overlay are closed variant sets; the zero value of each is the
// starting state. The cursor's bounds are always taken from the Inventory
// passed to each call, never cached, since a refresh can shrink or grow the
// current list.
package navigation

import (
	"github.com/muurk/shiftdeck/internal/inventory"
)

// ScreenKind identifies a screen.
type ScreenKind int

const (
	DeviceScreen ScreenKind = iota
	SnapshotScreen
)

func (k ScreenKind) String() string {
	if k == SnapshotScreen {
		return "snapshots"
	}
	return "devices"
}

// Screen is the visible screen. Device is set only on SnapshotScreen.
type Screen struct {
	Kind   ScreenKind
	Device string
}

// Overlay is the sub-state layered over SnapshotScreen.
type Overlay int

const (
	Idle Overlay = iota
	ConfirmingDeletion
	Deleting
	EnteringCreateComment
	Creating
)

func (o Overlay) String() string {
	switch o {
	case Idle:
		return "idle"
	case ConfirmingDeletion:
		return "confirming deletion"
	case Deleting:
		return "deleting"
	case EnteringCreateComment:
		return "entering comment"
	case Creating:
		return "creating"
	default:
		return "unknown"
	}
}

// Busy reports whether an operation is in flight under this overlay.
func (o Overlay) Busy() bool {
	return o == Deleting || o == Creating
}

// State is the screen, overlay and cursor of the application.
type State struct {
	screen  Screen
	overlay Overlay
	cursor  int
}

// New returns a State on DeviceScreen with the cursor at 0.
func New() *State {
	return &State{}
}

func (s *State) Screen() Screen   { return s.screen }
func (s *State) Overlay() Overlay { return s.overlay }
func (s *State) Cursor() int      { return s.cursor }

// SetOverlay changes the overlay. Callers enforce the transition table.
func (s *State) SetOverlay(o Overlay) {
	s.overlay = o
}

// Len returns the length of the list displayed on the current screen.
func (s *State) Len(inv *inventory.Inventory) int {
	if inv == nil {
		return 0
	}
	if s.screen.Kind == SnapshotScreen {
		return inv.SnapshotCount(s.screen.Device)
	}
	return inv.DeviceCount()
}

// Choose enters the SnapshotScreen of the device under the cursor. It is a
// no-op unless the current screen is DeviceScreen with a device selected.
func (s *State) Choose(inv *inventory.Inventory) bool {
	if s.screen.Kind != DeviceScreen || inv == nil {
		return false
	}
	dev, ok := inv.DeviceAt(s.cursor)
	if !ok {
		return false
	}
	s.screen = Screen{Kind: SnapshotScreen, Device: dev.Name}
	s.overlay = Idle
	s.cursor = 0
	return true
}

// Back returns from SnapshotScreen to DeviceScreen. On DeviceScreen it
// changes nothing and reports that the application should exit.
func (s *State) Back() (exit bool) {
	if s.screen.Kind == DeviceScreen {
		return true
	}
	s.screen = Screen{Kind: DeviceScreen}
	s.overlay = Idle
	s.cursor = 0
	return false
}

// SelectNext moves the cursor down one row, stopping at the last row.
func (s *State) SelectNext(inv *inventory.Inventory) {
	if s.cursor+1 < s.Len(inv) {
		s.cursor++
	}
}

// SelectPrevious moves the cursor up one row, stopping at the first row.
func (s *State) SelectPrevious(inv *inventory.Inventory) {
	if s.cursor > 0 && s.Len(inv) > 0 {
		s.cursor--
	}
}

// SelectFirst moves the cursor to the first row.
func (s *State) SelectFirst(inv *inventory.Inventory) {
	s.cursor = 0
}

// SelectLast moves the cursor to the last row of a non-empty list.
func (s *State) SelectLast(inv *inventory.Inventory) {
	if n := s.Len(inv); n > 0 {
		s.cursor = n - 1
	}
}

// Selected returns the cursor if it points into the current list.
func (s *State) Selected(inv *inventory.Inventory) (int, bool) {
	if s.cursor < 0 || s.cursor >= s.Len(inv) {
		return 0, false
	}
	return s.cursor, true
}

// Reset reconciles the state with a freshly refreshed inventory: the cursor
// goes back to 0, and a SnapshotScreen whose device disappeared falls back
// to DeviceScreen.
func (s *State) Reset(inv *inventory.Inventory) {
	s.cursor = 0
	if s.screen.Kind == SnapshotScreen && (inv == nil || !inv.Has(s.screen.Device)) {
		s.screen = Screen{Kind: DeviceScreen}
		s.overlay = Idle
	}
}
