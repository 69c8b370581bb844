// Package lut parses FreeSurfer color lookup tables, mapping integer
// segmentation labels to region names. The divergence core treats region
// IDs as opaque keys; this package supplies the ID-to-name glue around it.
package lut

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/neurosuite/mindnet"
)

// Table maps segmentation label IDs to region names.
type Table map[int]string

// Parse reads a FreeSurfer color LUT. Each data line carries an integer
// label, a region name, and usually four RGBA columns, e.g.
//
//	2  Left-Cerebral-White-Matter  245 245 245 0
//
// Blank lines and lines starting with '#' are skipped, as are lines whose
// first field is not an integer. The trailing RGBA columns are dropped from
// the name when present; otherwise all remaining fields join into the name.
// valid, when non-nil, restricts the table to the given labels.
func Parse(r io.Reader, valid map[int]bool) (Table, error) {
	table := Table{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		label, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		if valid != nil && !valid[label] {
			continue
		}
		table[label] = joinName(parts[1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lut: reading table: %w", err)
	}
	return table, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, valid map[int]bool) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lut: %w", err)
	}
	defer f.Close()
	return Parse(f, valid)
}

// joinName rejoins the name fields, stripping a trailing RGBA quadruple
// when one is present.
func joinName(fields []string) string {
	if len(fields) >= 5 && allInts(fields[len(fields)-4:]) {
		fields = fields[:len(fields)-4]
	}
	return strings.Join(fields, " ")
}

func allInts(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}

// Regions returns the table as a region list sorted by label ID, giving a
// deterministic pair-enumeration order for the divergence drivers.
func (t Table) Regions() []mindnet.Region {
	regions := make([]mindnet.Region, 0, len(t))
	for id, name := range t {
		regions = append(regions, mindnet.Region{ID: mindnet.RegionID(id), Name: name})
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].ID < regions[j].ID })
	return regions
}
