// Package tui is the interactive terminal interface, built on Bubble Tea.
//
// AppModel owns all application state: the current Inventory, the
// navigation State and the handle of the one operation that may be running.
// Key presses are dispatched on the overlay sub-state:
//
//	Idle                   navigation, "d" to confirm a deletion, "c" to type a comment
//	ConfirmingDeletion     "y" starts the delete, "n"/esc cancels
//	EnteringCreateComment  keys edit the comment, enter starts the create, esc cancels
//	Deleting, Creating     keys are ignored until the operation finishes
//
// While an operation runs, a poll tick checks the executor at a fixed
// interval and the spinner animates. When the result arrives the overlay
// returns to Idle. A success rebuilds the inventory and resets the cursor;
// a failure leaves both untouched and shows the diagnostic inline.
//
// # Screen Layout
//
// Every screen is wrapped by RenderApplicationContainer:
//
//	┌────────────────────────────────────────┐
//	│ SHIFTDECK v0.3.0  sudo timeshift       │
//	│────────────────────────────────────────│
//	│ Snapshots on /dev/sdb1                 │
//	│ > 0 | 2024-01-01_00-00-00 | O | boot   │
//	│   1 | 2024-02-01_00-00-00 | D |        │
//	│────────────────────────────────────────│
//	│ ↑/k up • ↓/j down • d delete • q back  │
//	└────────────────────────────────────────┘
package tui
