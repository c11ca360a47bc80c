// Package inventory holds the in-memory view of timeshift devices and their
// snapshots.
//
// An Inventory is immutable. The Store builds a fresh one from scratch on
// every Refresh; nothing is ever patched in place.
package inventory

import (
	"github.com/muurk/shiftdeck/internal/timeshift"
)

// Inventory maps each device to its snapshots, preserving the order in which
// timeshift listed both.
type Inventory struct {
	devices   []timeshift.Device
	snapshots map[string][]timeshift.Snapshot
	warnings  []*timeshift.ParseError
}

// New builds an Inventory from devices and a device-name keyed snapshot map.
// Devices without an entry in snapshots get an empty list. Inputs are copied.
func New(devices []timeshift.Device, snapshots map[string][]timeshift.Snapshot) *Inventory {
	inv := &Inventory{
		devices:   make([]timeshift.Device, len(devices)),
		snapshots: make(map[string][]timeshift.Snapshot, len(devices)),
	}
	copy(inv.devices, devices)

	for _, d := range devices {
		src := snapshots[d.Name]
		list := make([]timeshift.Snapshot, len(src))
		copy(list, src)
		inv.snapshots[d.Name] = list
	}
	return inv
}

// Devices returns the devices in listing order.
func (inv *Inventory) Devices() []timeshift.Device {
	out := make([]timeshift.Device, len(inv.devices))
	copy(out, inv.devices)
	return out
}

// DeviceCount returns the number of known devices.
func (inv *Inventory) DeviceCount() int {
	return len(inv.devices)
}

// DeviceAt returns the device at index i in listing order.
func (inv *Inventory) DeviceAt(i int) (timeshift.Device, bool) {
	if i < 0 || i >= len(inv.devices) {
		return timeshift.Device{}, false
	}
	return inv.devices[i], true
}

// Device looks a device up by name.
func (inv *Inventory) Device(name string) (timeshift.Device, bool) {
	for _, d := range inv.devices {
		if d.Name == name {
			return d, true
		}
	}
	return timeshift.Device{}, false
}

// Has reports whether name is a known device.
func (inv *Inventory) Has(name string) bool {
	_, ok := inv.snapshots[name]
	return ok
}

// Snapshots returns the snapshots of device name in listing order, or nil if
// the device is unknown.
func (inv *Inventory) Snapshots(name string) []timeshift.Snapshot {
	src, ok := inv.snapshots[name]
	if !ok {
		return nil
	}
	out := make([]timeshift.Snapshot, len(src))
	copy(out, src)
	return out
}

// SnapshotCount returns the number of snapshots on device name.
func (inv *Inventory) SnapshotCount(name string) int {
	return len(inv.snapshots[name])
}

// SnapshotAt returns snapshot i of device name.
func (inv *Inventory) SnapshotAt(name string, i int) (timeshift.Snapshot, bool) {
	list := inv.snapshots[name]
	if i < 0 || i >= len(list) {
		return timeshift.Snapshot{}, false
	}
	return list[i], true
}

// Warnings returns the rows skipped while this inventory was parsed.
func (inv *Inventory) Warnings() []*timeshift.ParseError {
	return inv.warnings
}

// Equal reports whether both inventories hold the same devices and snapshots
// in the same order. Parse warnings are not compared.
func (inv *Inventory) Equal(other *Inventory) bool {
	if inv == nil || other == nil {
		return inv == other
	}
	if len(inv.devices) != len(other.devices) {
		return false
	}
	for i, d := range inv.devices {
		if other.devices[i] != d {
			return false
		}
		a, b := inv.snapshots[d.Name], other.snapshots[d.Name]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}
