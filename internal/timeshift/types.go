package timeshift

import "fmt"

// Kind identifies which listing a raw text block came from.
type Kind int

const (
	KindDevice Kind = iota
	KindSnapshot
)

func (k Kind) String() string {
	switch k {
	case KindDevice:
		return "device"
	case KindSnapshot:
		return "snapshot"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Device is one backup target reported by timeshift --list-devices.
// Devices are identified by Name; Num is only the row number of the listing
// that produced it.
type Device struct {
	Num  uint16
	Name string
	// Size is kept as the tool printed it.
	Size  string
	Type  string
	Label string
}

func (d Device) String() string {
	return fmt.Sprintf("%d | %s | %s | %s | %s", d.Num, d.Name, d.Size, d.Type, d.Label)
}

// Snapshot is one backup point on a device. Name is the timestamp-derived
// handle used for deletion and is unique within its device.
type Snapshot struct {
	Num         uint16
	Name        string
	Tag         rune
	Description string
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%d | %s | %c | %s", s.Num, s.Name, s.Tag, s.Description)
}
