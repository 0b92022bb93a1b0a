package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParamsValidatesForgettingFactor(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "params.json", `{"forgetting_factor": 1.5}`)

	_, err := LoadParams(path)
	require.Error(t, err)
}

func TestLoadParamsAcceptsZeroValueDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "params.json", `{}`)

	p, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.ForgettingFactor)
}

func TestLoadTableParsesBreakpointsAndValues(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ocv.csv", "0,3.0\n0.5,3.7\n1,4.2\n")

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.InDelta(t, 3.7, tbl.Lookup(0.5), 1e-9)
}

func TestLoadTableRejectsNonIncreasingBreakpoints(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.csv", "0,3.0\n0,3.7\n")

	_, err := LoadTable(path)
	require.Error(t, err)
}
