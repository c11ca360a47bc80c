package inventory

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/muurk/shiftdeck/internal/timeshift"
)

type fakeSource struct {
	devices     []timeshift.Device
	snapshots   map[string][]timeshift.Snapshot
	warnings    []*timeshift.ParseError
	devicesErr  error
	snapshotErr map[string]error

	deviceCalls   int
	snapshotCalls []string
}

func (f *fakeSource) ListDevices(ctx context.Context) ([]timeshift.Device, []*timeshift.ParseError, error) {
	f.deviceCalls++
	return f.devices, f.warnings, f.devicesErr
}

func (f *fakeSource) ListSnapshots(ctx context.Context, device string) ([]timeshift.Snapshot, []*timeshift.ParseError, error) {
	f.snapshotCalls = append(f.snapshotCalls, device)
	if err := f.snapshotErr[device]; err != nil {
		return nil, nil, err
	}
	return f.snapshots[device], nil, nil
}

func twoDeviceSource() *fakeSource {
	return &fakeSource{
		devices: []timeshift.Device{
			{Num: 0, Name: "diskB", Size: "10G", Type: "ext4"},
			{Num: 1, Name: "diskA", Size: "20G", Type: "btrfs"},
		},
		snapshots: map[string][]timeshift.Snapshot{
			"diskA": {
				{Num: 0, Name: "2024-01-01_00-00-00", Tag: 'O'},
				{Num: 1, Name: "2024-02-01_00-00-00", Tag: 'D', Description: "daily"},
			},
		},
	}
}

func TestStore_Refresh(t *testing.T) {
	src := twoDeviceSource()
	store := NewStore(src, zap.NewNop())

	inv, err := store.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if src.deviceCalls != 1 {
		t.Errorf("ListDevices called %d times, want 1", src.deviceCalls)
	}
	if len(src.snapshotCalls) != 2 || src.snapshotCalls[0] != "diskB" || src.snapshotCalls[1] != "diskA" {
		t.Errorf("ListSnapshots calls = %v, want [diskB diskA]", src.snapshotCalls)
	}

	devices := inv.Devices()
	if len(devices) != 2 || devices[0].Name != "diskB" || devices[1].Name != "diskA" {
		t.Errorf("Devices() = %+v, want listing order diskB, diskA", devices)
	}

	if got := inv.SnapshotCount("diskA"); got != 2 {
		t.Errorf("SnapshotCount(diskA) = %d, want 2", got)
	}
	if snaps := inv.Snapshots("diskB"); snaps == nil || len(snaps) != 0 {
		t.Errorf("Snapshots(diskB) = %v, want empty non-nil slice", snaps)
	}
	if !inv.Has("diskB") {
		t.Error("Has(diskB) = false, want true")
	}
	if inv.Has("diskC") {
		t.Error("Has(diskC) = true, want false")
	}
	if s, ok := inv.SnapshotAt("diskA", 1); !ok || s.Description != "daily" {
		t.Errorf("SnapshotAt(diskA, 1) = %+v, %v", s, ok)
	}
	if _, ok := inv.SnapshotAt("diskA", 2); ok {
		t.Error("SnapshotAt(diskA, 2) should be out of range")
	}
}

func TestStore_RefreshIdempotent(t *testing.T) {
	store := NewStore(twoDeviceSource(), nil)

	first, err := store.Refresh(context.Background())
	if err != nil {
		t.Fatalf("first Refresh() error = %v", err)
	}
	second, err := store.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}

	if first == second {
		t.Error("Refresh() should build a new Inventory each time")
	}
	if !first.Equal(second) {
		t.Error("two refreshes over unchanged output should be equal")
	}
}

func TestStore_RefreshEmpty(t *testing.T) {
	tests := []struct {
		name     string
		warnings []*timeshift.ParseError
	}{
		{"no rows", nil},
		{"only malformed rows", []*timeshift.ParseError{{Kind: timeshift.KindDevice, Line: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{warnings: tt.warnings}
			inv, err := NewStore(src, zap.NewNop()).Refresh(context.Background())

			if !errors.Is(err, ErrEmptyInventory) {
				t.Errorf("Refresh() error = %v, want ErrEmptyInventory", err)
			}
			if inv != nil {
				t.Error("Refresh() should not return an inventory without devices")
			}
			if len(src.snapshotCalls) != 0 {
				t.Error("no snapshot listing should happen without devices")
			}
		})
	}
}

func TestStore_RefreshErrors(t *testing.T) {
	cmdErr := &timeshift.CommandError{ExitCode: 1, Stderr: "not root"}

	t.Run("device listing", func(t *testing.T) {
		src := &fakeSource{devicesErr: cmdErr}
		_, err := NewStore(src, zap.NewNop()).Refresh(context.Background())

		var target *timeshift.CommandError
		if !errors.As(err, &target) {
			t.Errorf("Refresh() error = %v, want wrapped *CommandError", err)
		}
	})

	t.Run("snapshot listing", func(t *testing.T) {
		src := twoDeviceSource()
		src.snapshotErr = map[string]error{"diskA": cmdErr}
		inv, err := NewStore(src, zap.NewNop()).Refresh(context.Background())

		if err == nil || inv != nil {
			t.Fatalf("Refresh() = %v, %v; want error", inv, err)
		}
		if !errors.Is(err, cmdErr) {
			t.Errorf("Refresh() error = %v, should wrap the listing failure", err)
		}
	})
}

func TestStore_RefreshDuplicateDevice(t *testing.T) {
	src := twoDeviceSource()
	src.devices = append(src.devices, timeshift.Device{Num: 2, Name: "diskA"})

	inv, err := NewStore(src, zap.NewNop()).Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if inv.DeviceCount() != 2 {
		t.Errorf("DeviceCount() = %d, want 2", inv.DeviceCount())
	}
	if d, _ := inv.Device("diskA"); d.Num != 1 {
		t.Errorf("Device(diskA).Num = %d, want the first listing (1)", d.Num)
	}
}

func TestStore_RefreshKeepsWarnings(t *testing.T) {
	src := twoDeviceSource()
	src.warnings = []*timeshift.ParseError{{Kind: timeshift.KindDevice, Line: 7, Field: "ordinal"}}

	inv, err := NewStore(src, zap.NewNop()).Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(inv.Warnings()) != 1 || inv.Warnings()[0].Line != 7 {
		t.Errorf("Warnings() = %v, want the skipped device row", inv.Warnings())
	}
}
