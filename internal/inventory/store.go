package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/shiftdeck/internal/timeshift"
)

// ErrEmptyInventory is returned by Refresh when timeshift reports no devices.
// Nothing can be browsed or operated on without a device.
var ErrEmptyInventory = errors.New("no backup devices found")

// Source lists devices and snapshots. *timeshift.Client implements it.
type Source interface {
	ListDevices(ctx context.Context) ([]timeshift.Device, []*timeshift.ParseError, error)
	ListSnapshots(ctx context.Context, device string) ([]timeshift.Snapshot, []*timeshift.ParseError, error)
}

// Store rebuilds the Inventory from a Source.
type Store struct {
	source Source
	logger *zap.Logger
}

// NewStore creates a store reading from source.
func NewStore(source Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		source: source,
		logger: logger,
	}
}

// Refresh lists every device and then every device's snapshots, and returns
// a complete new Inventory. It blocks for as long as timeshift takes, so it
// must only be called while no operation is in flight.
func (s *Store) Refresh(ctx context.Context) (*Inventory, error) {
	start := time.Now()

	devices, warnings, err := s.source.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	s.logWarnings(warnings)

	if len(devices) == 0 {
		if len(warnings) > 0 {
			return nil, fmt.Errorf("%w (%d malformed rows skipped)", ErrEmptyInventory, len(warnings))
		}
		return nil, ErrEmptyInventory
	}

	inv := &Inventory{
		devices:   make([]timeshift.Device, 0, len(devices)),
		snapshots: make(map[string][]timeshift.Snapshot, len(devices)),
		warnings:  warnings,
	}

	for _, dev := range devices {
		if _, dup := inv.snapshots[dev.Name]; dup {
			s.logger.Warn("duplicate device in listing, keeping first",
				zap.String("device", dev.Name),
				zap.Uint16("num", dev.Num),
			)
			continue
		}

		snaps, snapWarnings, err := s.source.ListSnapshots(ctx, dev.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshots for %s: %w", dev.Name, err)
		}
		s.logWarnings(snapWarnings)

		if snaps == nil {
			snaps = []timeshift.Snapshot{}
		}
		inv.devices = append(inv.devices, dev)
		inv.snapshots[dev.Name] = snaps
		inv.warnings = append(inv.warnings, snapWarnings...)
	}

	s.logger.Info("inventory refreshed",
		zap.Int("devices", len(inv.devices)),
		zap.Int("warnings", len(inv.warnings)),
		zap.Duration("duration", time.Since(start)),
	)

	return inv, nil
}

func (s *Store) logWarnings(warnings []*timeshift.ParseError) {
	for _, w := range warnings {
		s.logger.Warn("skipped malformed timeshift row", w.LogFields()...)
	}
}
