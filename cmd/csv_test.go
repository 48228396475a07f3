package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "displacements.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDisplacementCSV(t *testing.T) {
	path := writeCSV(t, "t,z,x,y\n0.0,1.5,0.1,-0.2\n0.78,1.2,0.0,0.3\n")

	cols, err := loadDisplacementCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{1.5, 1.2}, cols.Z)
	assert.Equal(t, []float64{0.1, 0.0}, cols.X)
	assert.Equal(t, []float64{-0.2, 0.3}, cols.Y)
}

func TestLoadDisplacementCSV_HeaderCaseAndSpacing(t *testing.T) {
	path := writeCSV(t, " Z , X , Y \n1,2,3\n")

	cols, err := loadDisplacementCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, cols.Z)
	assert.Equal(t, []float64{2}, cols.X)
	assert.Equal(t, []float64{3}, cols.Y)
}

func TestLoadDisplacementCSV_MissingColumn(t *testing.T) {
	path := writeCSV(t, "z,x\n1,2\n")

	_, err := loadDisplacementCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "y"`)
}

func TestLoadDisplacementCSV_BadValue(t *testing.T) {
	path := writeCSV(t, "z,x,y\n1,2,3\n4,oops,6\n")

	_, err := loadDisplacementCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), `column "x"`)
}

func TestLoadDisplacementCSV_NoRows(t *testing.T) {
	path := writeCSV(t, "z,x,y\n")

	_, err := loadDisplacementCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestLoadDisplacementCSV_MissingFile(t *testing.T) {
	_, err := loadDisplacementCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
