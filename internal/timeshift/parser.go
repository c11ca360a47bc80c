package timeshift

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// separator marks the end of the header in every timeshift listing.
const separator = "----"

// Minimum field counts for a usable row. A snapshot row without a
// description has only four fields, which is valid.
const (
	minDeviceFields   = 5
	minSnapshotFields = 4
)

// ParseOptions controls how malformed rows are handled.
type ParseOptions struct {
	// Strict aborts on the first malformed row instead of skipping it.
	Strict bool
}

// row is one candidate data line after the separator.
type row struct {
	line   int
	text   string
	fields []string
}

// dataRows returns the non-blank rows that follow the first separator in raw.
// The remainder of the separator's own line is discarded, as are any further
// separator lines. Input without a separator yields no rows.
func dataRows(raw string) []row {
	idx := strings.Index(raw, separator)
	if idx < 0 {
		return nil
	}

	nl := strings.IndexByte(raw[idx:], '\n')
	if nl < 0 {
		return nil
	}
	start := idx + nl + 1
	lineNo := strings.Count(raw[:start], "\n") + 1

	var rows []row
	for i, line := range strings.Split(raw[start:], "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isSeparatorLine(trimmed) {
			continue
		}
		rows = append(rows, row{
			line:   lineNo + i,
			text:   trimmed,
			fields: strings.Fields(trimmed),
		})
	}
	return rows
}

func isSeparatorLine(line string) bool {
	return len(line) >= len(separator) && strings.Trim(line, "-") == ""
}

// ParseDevices parses the output of timeshift --list-devices.
//
// Field mapping: 0 ordinal, 2 name, 3 size, 4 type. Label is always empty.
// Malformed rows are returned as warnings unless opts.Strict is set, in which
// case the first one is returned as the error.
func ParseDevices(raw string, opts ParseOptions) ([]Device, []*ParseError, error) {
	var (
		devices  []Device
		warnings []*ParseError
	)

	for _, r := range dataRows(raw) {
		dev, perr := parseDeviceRow(r)
		if perr != nil {
			if opts.Strict {
				return nil, warnings, perr
			}
			warnings = append(warnings, perr)
			continue
		}
		devices = append(devices, dev)
	}

	return devices, warnings, nil
}

// ParseSnapshots parses the output of timeshift --list --snapshot-device.
//
// Field mapping: 0 ordinal, 2 name, 3 single-character tag, 4.. description
// joined with single spaces.
func ParseSnapshots(raw string, opts ParseOptions) ([]Snapshot, []*ParseError, error) {
	var (
		snapshots []Snapshot
		warnings  []*ParseError
	)

	for _, r := range dataRows(raw) {
		snap, perr := parseSnapshotRow(r)
		if perr != nil {
			if opts.Strict {
				return nil, warnings, perr
			}
			warnings = append(warnings, perr)
			continue
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, warnings, nil
}

func parseDeviceRow(r row) (Device, *ParseError) {
	if len(r.fields) < minDeviceFields {
		return Device{}, newParseError(KindDevice, r, "field count",
			fmt.Errorf("expected at least %d fields, got %d", minDeviceFields, len(r.fields)))
	}

	num, err := parseOrdinal(r.fields[0])
	if err != nil {
		return Device{}, newParseError(KindDevice, r, "ordinal", err)
	}

	return Device{
		Num:  num,
		Name: r.fields[2],
		Size: r.fields[3],
		Type: r.fields[4],
	}, nil
}

func parseSnapshotRow(r row) (Snapshot, *ParseError) {
	if len(r.fields) < minSnapshotFields {
		return Snapshot{}, newParseError(KindSnapshot, r, "field count",
			fmt.Errorf("expected at least %d fields, got %d", minSnapshotFields, len(r.fields)))
	}

	num, err := parseOrdinal(r.fields[0])
	if err != nil {
		return Snapshot{}, newParseError(KindSnapshot, r, "ordinal", err)
	}

	tag, err := parseTag(r.fields[3])
	if err != nil {
		return Snapshot{}, newParseError(KindSnapshot, r, "tag", err)
	}

	return Snapshot{
		Num:         num,
		Name:        r.fields[2],
		Tag:         tag,
		Description: strings.Join(r.fields[4:], " "),
	}, nil
}

func parseOrdinal(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid ordinal %q: %w", s, err)
	}
	return uint16(n), nil
}

func parseTag(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("tag %q is not a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func newParseError(kind Kind, r row, field string, err error) *ParseError {
	return &ParseError{
		Kind:  kind,
		Line:  r.line,
		Text:  r.text,
		Field: field,
		Err:   err,
	}
}
