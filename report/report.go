// Package report persists divergence results: per-pair divergence records,
// square similarity matrices, and missing-region reports, all as CSV. Paths
// ending in ".gz" are transparently gzip-compressed.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/neurosuite/mindnet"
)

// WriteSimilarity writes the similarity matrix as a square CSV table keyed
// by region name on both axes, matching the matrix's region order. Regions
// without a name fall back to their numeric label.
func WriteSimilarity(w io.Writer, m *mindnet.SimilarityMatrix) error {
	cw := csv.NewWriter(w)
	regions := m.Regions()

	header := make([]string, len(regions)+1)
	for i, r := range regions {
		header[i+1] = regionName(r)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report: writing header: %w", err)
	}

	row := make([]string, len(regions)+1)
	for _, x := range regions {
		row[0] = regionName(x)
		for j, y := range regions {
			v, _ := m.At(x.ID, y.ID)
			row[j+1] = formatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: writing row %s: %w", row[0], err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSimilarityCSV writes the matrix to path, gzip-compressed when the
// path ends in ".gz".
func WriteSimilarityCSV(path string, m *mindnet.SimilarityMatrix) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteSimilarity(w, m)
	})
}

// WriteDivergences writes one row per region pair:
// Region1,Region2,KL_Divergence.
func WriteDivergences(w io.Writer, records []mindnet.DivergenceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Region1", "Region2", "KL_Divergence"}); err != nil {
		return fmt.Errorf("report: writing header: %w", err)
	}
	for _, r := range records {
		row := []string{regionName(r.A), regionName(r.B), formatFloat(r.KL)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: writing pair %s/%s: %w", row[0], row[1], err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDivergencesCSV writes the records to path, gzip-compressed when the
// path ends in ".gz".
func WriteDivergencesCSV(path string, records []mindnet.DivergenceRecord) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteDivergences(w, records)
	})
}

// WriteMissingRegions records regions that were requested but had no voxel
// data, so downstream analysis knows what was skipped.
func WriteMissingRegions(w io.Writer, missing []mindnet.Region) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Region Name", "Label"}); err != nil {
		return fmt.Errorf("report: writing header: %w", err)
	}
	for _, r := range missing {
		if err := cw.Write([]string{r.Name, strconv.Itoa(int(r.ID))}); err != nil {
			return fmt.Errorf("report: writing region %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMissingRegionsCSV writes the missing-region report to path.
func WriteMissingRegionsCSV(path string, missing []mindnet.Region) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteMissingRegions(w, missing)
	})
}

func regionName(r mindnet.Region) string {
	if r.Name != "" {
		return r.Name
	}
	return strconv.Itoa(int(r.ID))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeFile streams fn's output into path, inserting a gzip layer for
// ".gz" paths.
func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if err := fn(w); err != nil {
		if gz != nil {
			gz.Close()
		}
		f.Close()
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			f.Close()
			return fmt.Errorf("report: closing gzip stream: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: closing %s: %w", path, err)
	}
	return nil
}
