package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosuite/mindnet"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFeatureCSV_GroupsByLabel(t *testing.T) {
	path := writeTempFile(t, "voxels.csv", `Label,GM,FA
17,0.5,0.1
17,0.6,0.2
53,0.4,0.3
`)

	samples, err := loadFeatureCSV(path, "Label")
	require.NoError(t, err)

	require.Len(t, samples, 2)
	require.Equal(t, 2, samples[17].NumPoints())
	require.Equal(t, 2, samples[17].NumFeatures())
	assert.Equal(t, []float64{0.5, 0.1}, samples[17].Row(0))
	assert.Equal(t, []float64{0.4, 0.3}, samples[53].Row(0))
}

func TestLoadFeatureCSV_BadLabel(t *testing.T) {
	path := writeTempFile(t, "voxels.csv", "Label,GM\nseventeen,0.5\n")

	_, err := loadFeatureCSV(path, "Label")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadFeatureCSV_MissingLabelColumn(t *testing.T) {
	path := writeTempFile(t, "voxels.csv", "GM,FA\n0.5,0.1\n")

	_, err := loadFeatureCSV(path, "Label")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "Label" not found`)
}

func TestLoadScalarCSV_IgnoresExtraColumns(t *testing.T) {
	path := writeTempFile(t, "voxels.csv", `X,Label,Value
9,17,0.5
9,17,0.6
9,53,0.4
`)

	samples, err := loadScalarCSV(path, "Label", "Value")
	require.NoError(t, err)

	require.Len(t, samples, 2)
	assert.Equal(t, mindnet.ScalarSample{0.5, 0.6}, samples[17])
	assert.Equal(t, mindnet.ScalarSample{0.4}, samples[53])
}

func TestResolveRegions_WithoutLUT(t *testing.T) {
	data := map[mindnet.RegionID]mindnet.ScalarSample{
		53: {1}, 17: {2}, 16: {3},
	}

	present, missing, err := resolveRegions(data, "")
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.Len(t, present, 3)
	assert.Equal(t, mindnet.RegionID(16), present[0].ID)
	assert.Equal(t, mindnet.RegionID(53), present[2].ID)
}

func TestResolveRegions_WithLUT(t *testing.T) {
	lutPath := writeTempFile(t, "lut.txt", `17 Left-Hippocampus 220 216 20 0
53 Right-Hippocampus 220 216 20 0
99 Absent-Region 1 2 3 0
`)
	data := map[mindnet.RegionID]mindnet.ScalarSample{17: {1}, 53: {2}}

	present, missing, err := resolveRegions(data, lutPath)
	require.NoError(t, err)

	require.Len(t, present, 2)
	assert.Equal(t, "Left-Hippocampus", present[0].Name)
	require.Len(t, missing, 1)
	assert.Equal(t, mindnet.RegionID(99), missing[0].ID)
}
