// Package keycodes loads the symbolic-name to numeric-code mapping for
// keyboard keys from the kernel's input event header.
package keycodes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultPath is where Linux systems install the key-code table.
const DefaultPath = "/usr/include/linux/input-event-codes.h"

// Table is an immutable mapping from key names to their numeric codes,
// with a sorted name list for display and selection.
type Table struct {
	codes map[string]uint32
	names []string
}

// Load parses the key-code table at the given path. An empty path uses
// DefaultPath.
func Load(path string) (*Table, error) {
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("keycodes: failed to open key-code table: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("keycodes: failed to read %s: %w", path, err)
	}
	return t, nil
}

// Parse builds a Table from a line-oriented header defining
// "#define KEY_<NAME> <code>" entries. Names are lowercased; lines whose
// value is not a plain decimal number (aliases, hex ranges) are skipped.
func Parse(r io.Reader) (*Table, error) {
	codes := make(map[string]uint32)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rest, ok := strings.CutPrefix(scanner.Text(), "#define KEY_")
		if !ok {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) < 2 {
			continue
		}
		num, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			continue
		}

		codes[strings.ToLower(fields[0])] = uint32(num)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(codes))
	for name := range codes {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Table{codes: codes, names: names}, nil
}

// Names returns the available key names in sorted order.
func (t *Table) Names() []string {
	return t.names
}

// Num returns the numeric code for the given index into the sorted name
// list. ok is false if the index is out of range.
func (t *Table) Num(index int) (code uint32, ok bool) {
	if index < 0 || index >= len(t.names) {
		return 0, false
	}
	code, ok = t.codes[t.names[index]]
	return code, ok
}

// Lookup returns the numeric code for a key name.
func (t *Table) Lookup(name string) (code uint32, ok bool) {
	code, ok = t.codes[strings.ToLower(name)]
	return code, ok
}

// ReverseLookup returns a name mapping to the given code. When several
// names share a code, the lexicographically smallest one wins. ok is
// false if no name maps to the code.
func (t *Table) ReverseLookup(code uint32) (name string, ok bool) {
	for _, name := range t.names {
		if t.codes[name] == code {
			return name, true
		}
	}
	return "", false
}
