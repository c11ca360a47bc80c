package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/shiftdeck/internal/operation"
)

// Run loads the inventory and runs the interactive UI until the user exits.
// Loading errors, including inventory.ErrEmptyInventory, are returned before
// the alternate screen is entered.
func Run(ctx context.Context, refresher Refresher, executor *operation.Executor, opts Options) error {
	model, err := New(ctx, refresher, executor, opts)
	if err != nil {
		return err
	}
	if opts.Loaded != nil {
		opts.Loaded()
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if req, running := unfinished(final); running {
		model.logger.Warn("interface stopped while an operation was running; timeshift continues in the background",
			zap.Stringer("kind", req.Kind),
			zap.String("device", req.Device),
			zap.String("snapshot", req.Snapshot),
			zap.Error(err),
		)
		if err != nil {
			return fmt.Errorf("interface stopped during %s on %s: %w", req.Kind, req.Device, err)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}

// unfinished reports the operation still in flight in a model returned by
// the program. Keys are ignored while busy, so this is only true when the
// program was killed, for example by a cancelled context.
func unfinished(final tea.Model) (operation.Request, bool) {
	m, ok := final.(AppModel)
	if !ok {
		return operation.Request{}, false
	}
	return m.Pending()
}
