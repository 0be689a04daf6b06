package templates

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{
		"system/blockMeshDict", "system/controlDict", "system/decomposeParDict",
		"system/fvSchemes", "system/fvSolution",
		"0/U", "0/p", "0/nut", "0/nuTilda",
		"constant/transportProperties", "constant/turbulenceProperties",
	} {
		_, err := fs.Stat(Case(), name)
		assert.NoError(t, err, name)
	}
	for _, name := range []string{SnappyHexMeshDict, SurfaceFeatureExtractDict} {
		data, err := fs.ReadFile(Mesh(), name)
		require.NoError(t, err)
		assert.Contains(t, string(data), "cylinder.stl")
	}
}

func TestMaterialize(t *testing.T) {
	dst := t.TempDir()
	require.NoError(t, Materialize(dst))
	_, err := os.Stat(filepath.Join(dst, "templateCase", "0", "U"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dst, "mesh", SnappyHexMeshDict))
	assert.NoError(t, err)

	// A directory on disk replaces the embedded default
	tc := Resolve(filepath.Join(dst, "templateCase"), Case)
	_, err = fs.Stat(tc, "system/controlDict")
	assert.NoError(t, err)
}
