package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/neurosuite/mindnet"
	"github.com/neurosuite/mindnet/lut"
)

// loadFeatureCSV reads a voxel table with a header row, one voxel per row:
// an integer label column plus one float column per feature. Rows are
// grouped by label into per-region feature matrices.
func loadFeatureCSV(path, labelCol string) (map[mindnet.RegionID]*mindnet.FeatureMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading voxel table: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	labelIdx, err := findColumn(header, labelCol)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: no feature columns besides %q", path, labelCol)
	}

	grouped := map[mindnet.RegionID][][]float64{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		label, err := strconv.Atoi(strings.TrimSpace(record[labelIdx]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: label %q: %w", path, line, record[labelIdx], err)
		}
		row := make([]float64, 0, len(record)-1)
		for i, field := range record {
			if i == labelIdx {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: column %q: %w", path, line, header[i], err)
			}
			row = append(row, v)
		}
		id := mindnet.RegionID(label)
		grouped[id] = append(grouped[id], row)
	}

	samples := make(map[mindnet.RegionID]*mindnet.FeatureMatrix, len(grouped))
	for id, rows := range grouped {
		fm, err := mindnet.NewFeatureMatrix(rows)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", id, err)
		}
		samples[id] = fm
	}
	return samples, nil
}

// loadScalarCSV reads a two-column voxel table (label, value) for the
// histogram path. Extra columns beyond the named pair are ignored.
func loadScalarCSV(path, labelCol, valueCol string) (map[mindnet.RegionID]mindnet.ScalarSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading voxel table: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	labelIdx, err := findColumn(header, labelCol)
	if err != nil {
		return nil, err
	}
	valueIdx, err := findColumn(header, valueCol)
	if err != nil {
		return nil, err
	}

	samples := map[mindnet.RegionID]mindnet.ScalarSample{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		label, err := strconv.Atoi(strings.TrimSpace(record[labelIdx]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: label %q: %w", path, line, record[labelIdx], err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: value %q: %w", path, line, record[valueIdx], err)
		}
		id := mindnet.RegionID(label)
		samples[id] = append(samples[id], v)
	}
	return samples, nil
}

func findColumn(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %v", name, header)
}

// resolveRegions decides which regions to analyze. With a LUT the region
// list is the LUT's labels, split into those present in the data and those
// missing from it; without one, every label in the data becomes an unnamed
// region.
func resolveRegions[S any](data map[mindnet.RegionID]S, lutPath string) (present, missing []mindnet.Region, err error) {
	if lutPath == "" {
		ids := make([]int, 0, len(data))
		for id := range data {
			ids = append(ids, int(id))
		}
		sort.Ints(ids)
		for _, id := range ids {
			present = append(present, mindnet.Region{ID: mindnet.RegionID(id)})
		}
		return present, nil, nil
	}

	table, err := lut.ParseFile(lutPath, nil)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range table.Regions() {
		if _, ok := data[r.ID]; ok {
			present = append(present, r)
		} else {
			missing = append(missing, r)
		}
	}
	return present, missing, nil
}
