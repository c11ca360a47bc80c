package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/shiftdeck/internal/inventory"
	"github.com/muurk/shiftdeck/internal/navigation"
	"github.com/muurk/shiftdeck/internal/operation"
)

// Defaults for Options fields left zero.
const (
	DefaultPollInterval = 50 * time.Millisecond
	DefaultCommentLimit = 128
)

// Refresher rebuilds the inventory. *inventory.Store implements it.
type Refresher interface {
	Refresh(ctx context.Context) (*inventory.Inventory, error)
}

// Options configures the application model.
type Options struct {
	// PollInterval is how often a running operation is checked for
	// completion.
	PollInterval time.Duration

	// CommentLimit caps the length of a snapshot comment.
	CommentLimit int

	// Command is the timeshift command line shown in the header.
	Command string

	// Loaded, when set, runs once the first inventory has loaded and before
	// the interface takes over the terminal.
	Loaded func()

	Logger *zap.Logger
}

// pollMsg drives completion checks while an operation is in flight.
type pollMsg time.Time

// AppModel is the top-level Bubble Tea model. It owns the inventory, the
// navigation state and the single outstanding operation handle; nothing else
// touches them.
type AppModel struct {
	ctx       context.Context
	refresher Refresher
	executor  *operation.Executor
	logger    *zap.Logger

	inv     *inventory.Inventory
	nav     *navigation.State
	pending *operation.Handle

	// Last operation outcome shown to the user
	failure    string
	diagnostic string
	status     string

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	pollInterval time.Duration
	command      string

	Width  int
	Height int
}

// New loads the initial inventory and builds the model. It returns
// inventory.ErrEmptyInventory (possibly wrapped) when timeshift reports no
// devices, before anything is drawn.
func New(ctx context.Context, refresher Refresher, executor *operation.Executor, opts Options) (AppModel, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.CommentLimit <= 0 {
		opts.CommentLimit = DefaultCommentLimit
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	inv, err := refresher.Refresh(ctx)
	if err != nil {
		return AppModel{}, err
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	input := textinput.New()
	input.Placeholder = "what is this snapshot for?"
	input.CharLimit = opts.CommentLimit
	input.Width = 50
	input.Prompt = "> "

	return AppModel{
		ctx:          ctx,
		refresher:    refresher,
		executor:     executor,
		logger:       opts.Logger,
		inv:          inv,
		nav:          navigation.New(),
		input:        input,
		spinner:      s,
		help:         help.New(),
		keys:         newKeyMap(),
		pollInterval: opts.PollInterval,
		command:      opts.Command,
		Width:        80,
		Height:       24,
	}, nil
}

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pollMsg:
		return m.pollOperation()

	case spinner.TickMsg:
		// The spinner stops once nothing is in flight.
		if !m.nav.Overlay().Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other textinput messages
	if m.nav.Overlay() == navigation.EnteringCreateComment {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m AppModel) pollTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// ViewState is a read-only copy of what the presentation needs each frame.
type ViewState struct {
	Screen  navigation.Screen
	Overlay navigation.Overlay
	Cursor  int

	// Input is the comment being typed and InputPosition the caret offset.
	Input         string
	InputPosition int

	// Spinner is the current busy indicator frame.
	Spinner string

	// Failure titles Diagnostic, e.g. "Delete failed".
	Failure string

	// Diagnostic is the message of the last failed operation or refresh.
	Diagnostic string

	// Status is the confirmation of the last successful operation.
	Status string
}

// ViewState returns the current state for rendering.
func (m AppModel) ViewState() ViewState {
	return ViewState{
		Screen:        m.nav.Screen(),
		Overlay:       m.nav.Overlay(),
		Cursor:        m.nav.Cursor(),
		Input:         m.input.Value(),
		InputPosition: m.input.Position(),
		Spinner:       m.spinner.View(),
		Failure:       m.failure,
		Diagnostic:    m.diagnostic,
		Status:        m.status,
	}
}

// Inventory returns the inventory currently displayed.
func (m AppModel) Inventory() *inventory.Inventory {
	return m.inv
}

// Pending returns the request of the outstanding operation, if any.
func (m AppModel) Pending() (operation.Request, bool) {
	if m.pending == nil {
		return operation.Request{}, false
	}
	return m.pending.Request(), true
}
