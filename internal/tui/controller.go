package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/shiftdeck/internal/navigation"
	"github.com/muurk/shiftdeck/internal/operation"
)

// handleKey dispatches a key press on the overlay sub-state. Any key that
// the current overlay does not list leaves the state unchanged.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.nav.Overlay() {
	case navigation.Deleting, navigation.Creating:
		// Only the spinner and the poll tick run while busy.
		return m, nil
	case navigation.ConfirmingDeletion:
		return m.handleConfirmKey(msg)
	case navigation.EnteringCreateComment:
		return m.handleCommentKey(msg)
	default:
		return m.handleIdleKey(msg)
	}
}

func (m AppModel) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	onSnapshots := m.nav.Screen().Kind == navigation.SnapshotScreen

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.clearMessages()
		if m.nav.Back() {
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Down):
		m.nav.SelectNext(m.inv)

	case key.Matches(msg, m.keys.Up):
		m.nav.SelectPrevious(m.inv)

	case key.Matches(msg, m.keys.First):
		m.nav.SelectFirst(m.inv)

	case key.Matches(msg, m.keys.Last):
		m.nav.SelectLast(m.inv)

	case key.Matches(msg, m.keys.Choose):
		if m.nav.Choose(m.inv) {
			m.clearMessages()
		}

	case onSnapshots && key.Matches(msg, m.keys.Delete):
		if _, ok := m.nav.Selected(m.inv); ok {
			m.clearMessages()
			m.nav.SetOverlay(navigation.ConfirmingDeletion)
		}

	case onSnapshots && key.Matches(msg, m.keys.Create):
		m.clearMessages()
		m.input.Reset()
		m.nav.SetOverlay(navigation.EnteringCreateComment)
		return m, m.input.Focus()
	}

	return m, nil
}

func (m AppModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.nav.SetOverlay(navigation.Idle)

	case key.Matches(msg, m.keys.Confirm):
		device := m.nav.Screen().Device
		snap, ok := m.inv.SnapshotAt(device, m.nav.Cursor())
		if !ok {
			m.nav.SetOverlay(navigation.Idle)
			return m, nil
		}
		return m.startOperation(operation.Request{
			Kind:     operation.Delete,
			Device:   device,
			Snapshot: snap.Name,
		}, navigation.Deleting)
	}

	return m, nil
}

// handleCommentKey sends every key except submit and abort to the input,
// quit keys included.
func (m AppModel) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Abort):
		m.input.Reset()
		m.input.Blur()
		m.nav.SetOverlay(navigation.Idle)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		comment := m.input.Value()
		m.input.Reset()
		m.input.Blur()
		return m.startOperation(operation.Request{
			Kind:    operation.Create,
			Device:  m.nav.Screen().Device,
			Comment: comment,
		}, navigation.Creating)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startOperation hands req to the executor and enters the busy overlay.
// The overlay table already prevents a second start; a rejection here means
// the model and executor disagree, and is reported rather than ignored.
func (m AppModel) startOperation(req operation.Request, busy navigation.Overlay) (tea.Model, tea.Cmd) {
	h, err := m.executor.Start(req)
	if err != nil {
		m.logger.Error("operation rejected",
			zap.Stringer("kind", req.Kind),
			zap.String("device", req.Device),
			zap.Error(err),
		)
		m.nav.SetOverlay(navigation.Idle)
		m.setFailure(req.Kind.String()+" rejected", err.Error())
		return m, nil
	}

	m.pending = h
	m.nav.SetOverlay(busy)
	return m, tea.Batch(m.spinner.Tick, m.pollTick())
}

// pollOperation checks the outstanding handle. A finished result is
// consumed here, exactly once, and the handle is dropped in the same step.
func (m AppModel) pollOperation() (tea.Model, tea.Cmd) {
	if m.pending == nil {
		return m, nil
	}

	res, err := m.executor.Poll(m.pending)
	if err != nil {
		m.logger.Error("lost track of running operation", zap.Error(err))
		m.pending = nil
		m.nav.SetOverlay(navigation.Idle)
		m.setFailure("Operation lost", err.Error())
		return m, nil
	}

	if res.Status == operation.StatusNotDone {
		return m, m.pollTick()
	}

	m.pending = nil
	m.nav.SetOverlay(navigation.Idle)

	switch res.Status {
	case operation.StatusOK:
		m.refreshAfter(res.Request)
	case operation.StatusDomainError:
		m.setFailure(failureTitle(res.Request.Kind, "failed"), res.Message)
	case operation.StatusCrashed:
		m.setFailure(failureTitle(res.Request.Kind, "crashed"), res.Message)
	}

	return m, nil
}

// refreshAfter replaces the inventory after a successful operation. If the
// refresh fails the previous inventory stays on screen.
func (m *AppModel) refreshAfter(req operation.Request) {
	inv, err := m.refresher.Refresh(m.ctx)
	if err != nil {
		m.logger.Warn("refresh after operation failed",
			zap.Stringer("kind", req.Kind),
			zap.Error(err),
		)
		m.setFailure("Refresh failed", err.Error())
		return
	}

	m.inv = inv
	m.nav.Reset(inv)

	if req.Kind == operation.Delete {
		m.status = "Deleted snapshot " + req.Snapshot
	} else {
		m.status = "Created snapshot on " + req.Device
	}
}

func (m *AppModel) setFailure(title, diagnostic string) {
	m.failure = title
	m.diagnostic = diagnostic
	m.status = ""
}

func (m *AppModel) clearMessages() {
	m.failure = ""
	m.diagnostic = ""
	m.status = ""
}

func failureTitle(kind operation.Kind, what string) string {
	if kind == operation.Delete {
		return "Delete " + what
	}
	return "Create " + what
}
