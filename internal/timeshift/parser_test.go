package timeshift

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const deviceListing = `
Mounted /dev/sda1 at '/run/timeshift/backup'.
Devices with Linux file systems:

Num     Device                Size  Type  Label
------------------------------------------------------------------------------
0    >  /dev/sda1          498.0G  ext4
1    >  /dev/sdb1            1.0T  btrfs
`

const snapshotListing = `Device : /dev/sda1
UUID   : 4b7a5e2c-1111-2222-3333-444455556666
Path   : /run/timeshift/backup
Mode   : RSYNC
Status : OK
3 snapshots, 120.4 GB free

Num     Name                 Tags  Description
------------------------------------------------------------------------------
0    >  2024-01-01_00-00-00  O     before   upgrade
1    >  2024-02-01_00-00-00  D
2    >  2024-03-01_00-00-00  B     weekly
`

func TestParseDevices(t *testing.T) {
	devices, warnings, err := ParseDevices(deviceListing, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseDevices() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("ParseDevices() warnings = %v, want none", warnings)
	}

	want := []Device{
		{Num: 0, Name: "/dev/sda1", Size: "498.0G", Type: "ext4"},
		{Num: 1, Name: "/dev/sdb1", Size: "1.0T", Type: "btrfs"},
	}
	if len(devices) != len(want) {
		t.Fatalf("ParseDevices() returned %d devices, want %d", len(devices), len(want))
	}
	for i := range want {
		if devices[i] != want[i] {
			t.Errorf("device[%d] = %+v, want %+v", i, devices[i], want[i])
		}
	}
}

func TestParseDevices_PositionalMapping(t *testing.T) {
	raw := "header\n----------\n3 > /dev/sda1 120G ext4\n"

	devices, _, err := ParseDevices(raw, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseDevices() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("ParseDevices() returned %d devices, want 1", len(devices))
	}

	d := devices[0]
	if d.Num != 3 || d.Name != "/dev/sda1" || d.Size != "120G" || d.Type != "ext4" || d.Label != "" {
		t.Errorf("device = %+v, want {3 /dev/sda1 120G ext4 \"\"}", d)
	}
}

func TestParseDevices_RecordCount(t *testing.T) {
	for _, n := range []int{0, 1, 5, 40} {
		var b strings.Builder
		b.WriteString("Num Device Size Type Label\n----\n")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "  %s%d > /dev/sd%d 10G ext4\n\n", strings.Repeat(" ", i%3), i, i)
		}

		devices, warnings, err := ParseDevices(b.String(), ParseOptions{})
		if err != nil {
			t.Fatalf("n=%d: ParseDevices() error = %v", n, err)
		}
		if len(devices) != n {
			t.Errorf("n=%d: got %d devices", n, len(devices))
		}
		if len(warnings) != 0 {
			t.Errorf("n=%d: got %d warnings", n, len(warnings))
		}
		for i, d := range devices {
			if int(d.Num) != i {
				t.Errorf("n=%d: device[%d].Num = %d", n, i, d.Num)
			}
		}
	}
}

func TestParseSnapshots(t *testing.T) {
	snapshots, warnings, err := ParseSnapshots(snapshotListing, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseSnapshots() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("ParseSnapshots() warnings = %v, want none", warnings)
	}

	want := []Snapshot{
		{Num: 0, Name: "2024-01-01_00-00-00", Tag: 'O', Description: "before upgrade"},
		{Num: 1, Name: "2024-02-01_00-00-00", Tag: 'D', Description: ""},
		{Num: 2, Name: "2024-03-01_00-00-00", Tag: 'B', Description: "weekly"},
	}
	if len(snapshots) != len(want) {
		t.Fatalf("ParseSnapshots() returned %d snapshots, want %d", len(snapshots), len(want))
	}
	for i := range want {
		if snapshots[i] != want[i] {
			t.Errorf("snapshot[%d] = %+v, want %+v", i, snapshots[i], want[i])
		}
	}
}

func TestParse_NoSeparator(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"header only", "Num Name Tags Description\n"},
		{"three dashes", "---\n0 > 2024-01-01_00-00-00 O x\n"},
		{"separator without newline", "Num Name\n--------"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices, dw, err := ParseDevices(tt.raw, ParseOptions{Strict: true})
			if err != nil || len(devices) != 0 || len(dw) != 0 {
				t.Errorf("ParseDevices() = %v, %v, %v; want empty", devices, dw, err)
			}
			snaps, sw, err := ParseSnapshots(tt.raw, ParseOptions{Strict: true})
			if err != nil || len(snaps) != 0 || len(sw) != 0 {
				t.Errorf("ParseSnapshots() = %v, %v, %v; want empty", snaps, sw, err)
			}
		})
	}
}

func TestParse_SeparatorLineRemainderDiscarded(t *testing.T) {
	raw := "Num Name Tags Description\n------ 0 > ignored O nope\n0 > 2024-01-01_00-00-00 O kept\n-------\n"

	snaps, warnings, err := ParseSnapshots(raw, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseSnapshots() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(snaps) != 1 || snaps[0].Description != "kept" {
		t.Errorf("snapshots = %+v, want only the row after the separator line", snaps)
	}
}

func TestParseSnapshots_MalformedRowsLenient(t *testing.T) {
	raw := "Num Name Tags Description\n" +
		"----\n" +
		"0 > 2024-01-01_00-00-00 O good\n" +
		"1 > 2024-01-02_00-00-00\n" +
		"x > 2024-01-03_00-00-00 O bad ordinal\n" +
		"3 > 2024-01-04_00-00-00 OD two char tag\n" +
		"4 > 2024-01-05_00-00-00 W also good\n"

	snaps, warnings, err := ParseSnapshots(raw, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseSnapshots() error = %v", err)
	}

	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2: %+v", len(snaps), snaps)
	}
	if snaps[0].Num != 0 || snaps[1].Num != 4 {
		t.Errorf("kept snapshots = %+v, want ordinals 0 and 4", snaps)
	}

	wantFields := []string{"field count", "ordinal", "tag"}
	wantLines := []int{4, 5, 6}
	if len(warnings) != len(wantFields) {
		t.Fatalf("got %d warnings, want %d: %v", len(warnings), len(wantFields), warnings)
	}
	for i, w := range warnings {
		if w.Field != wantFields[i] {
			t.Errorf("warning[%d].Field = %q, want %q", i, w.Field, wantFields[i])
		}
		if w.Line != wantLines[i] {
			t.Errorf("warning[%d].Line = %d, want %d", i, w.Line, wantLines[i])
		}
		if w.Kind != KindSnapshot {
			t.Errorf("warning[%d].Kind = %v, want snapshot", i, w.Kind)
		}
	}
}

func TestParseDevices_ShortRowStrict(t *testing.T) {
	raw := "Num Device Size Type\n----\n0 > /dev/sda1 10G ext4\n1 > /dev/sdb1\n2 > /dev/sdc1 5G xfs\n"

	devices, _, err := ParseDevices(raw, ParseOptions{Strict: true})
	if err == nil {
		t.Fatal("ParseDevices() expected error in strict mode")
	}
	if devices != nil {
		t.Errorf("devices = %+v, want nil on strict failure", devices)
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not a *ParseError", err)
	}
	if perr.Line != 4 || perr.Field != "field count" || perr.Kind != KindDevice {
		t.Errorf("ParseError = %+v", perr)
	}
	if !strings.Contains(perr.Error(), "/dev/sdb1") {
		t.Errorf("Error() = %q, should quote the row", perr.Error())
	}
}

func TestParseDevices_OrdinalOverflow(t *testing.T) {
	raw := "----\n70000 > /dev/sda1 10G ext4\n"

	devices, warnings, err := ParseDevices(raw, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseDevices() error = %v", err)
	}
	if len(devices) != 0 || len(warnings) != 1 {
		t.Errorf("got %d devices and %d warnings, want 0 and 1", len(devices), len(warnings))
	}
}

func TestRecordString(t *testing.T) {
	d := Device{Num: 1, Name: "/dev/sdb1", Size: "1.0T", Type: "btrfs"}
	if got, want := d.String(), "1 | /dev/sdb1 | 1.0T | btrfs | "; got != want {
		t.Errorf("Device.String() = %q, want %q", got, want)
	}

	s := Snapshot{Num: 2, Name: "2024-03-01_00-00-00", Tag: 'O', Description: "pre kernel"}
	if got, want := s.String(), "2 | 2024-03-01_00-00-00 | O | pre kernel"; got != want {
		t.Errorf("Snapshot.String() = %q, want %q", got, want)
	}
}
