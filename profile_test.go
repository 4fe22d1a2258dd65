package qcmp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_defaults(t *testing.T) {
	var p Profile
	assert.Equal(t, NumericThreshold, p.numeric())
	assert.Equal(t, HeatThreshold, p.heat())
	assert.Equal(t, DegeneracyThreshold, p.degeneracy())
	assert.Equal(t, EigvecThreshold, p.eigvec())
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`numeric: 0.1
skip:
  - 'HOST NAME'
  - 'JOB ID'
`), 0666))
	p, err := LoadProfile(file)
	require.NoError(t, err)
	// named thresholds replace the defaults, the rest keep them
	assert.Equal(t, 0.1, p.numeric())
	assert.Equal(t, HeatThreshold, p.heat())
	assert.Equal(t, DegeneracyThreshold, p.degeneracy())
	assert.Equal(t, EigvecThreshold, p.eigvec())
	assert.Equal(t, []string{"HOST NAME", "JOB ID"}, p.Skip)
}

func TestLoadProfile_errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadProfile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("numeric: [not a number"), 0666))
	_, err = LoadProfile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile ")
}
