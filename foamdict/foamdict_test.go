package foamdict

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/notargets/gomesh/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSetBlockMeshParameters(t *testing.T) {
	text := `scale 1;
xmin    -1;
  xmax 1; // comment kept
ymin -1;
ymax 1;
zmin -1;
zmax 1;
dx 0.1;
dy 0.1;
dz 0.1;
lx #calc "$xmax - $xmin";
`
	bp := BlockMeshParameters{
		Domain: r3.Box{Min: r3.Vec{X: -3, Y: -2.5, Z: -0.125}, Max: r3.Vec{X: 16, Y: 4, Z: 1}},
		DX:     0.35, DY: 0.35, DZ: 1,
	}
	out := SetBlockMeshParameters(text, bp)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "scale 1;", lines[0])
	assert.Equal(t, "xmin    -3.000000;", lines[1])
	assert.Equal(t, "  xmax 16.000000; // comment kept", lines[2])
	assert.Equal(t, "zmin -0.125000;", lines[5])
	assert.Equal(t, "dx 0.350000;", lines[7])
	assert.Equal(t, "dz 1.000000;", lines[9])
	assert.Equal(t, `lx #calc "$xmax - $xmin";`, lines[10])
	assert.True(t, strings.HasSuffix(out, ";\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))

	box, err := ReadBlockBounds(out)
	require.NoError(t, err)
	assert.Equal(t, bp.Domain, box)
}

func TestReadBlockBoundsMissing(t *testing.T) {
	_, err := ReadBlockBounds("xmin 0;\nxmax 1;\nymin 0;\nymax 1;\n")
	assert.ErrorContains(t, err, "zmin")
}

func TestEmbeddedBlockMeshRoundTrip(t *testing.T) {
	data, err := fs.ReadFile(templates.Case(), "system/blockMeshDict")
	require.NoError(t, err)
	dom := r3.Box{Min: r3.Vec{X: -10, Y: -5, Z: -5}, Max: r3.Vec{X: 50, Y: 5, Z: 5.5}}
	out := SetBlockMeshParameters(string(data), BlockMeshParameters{Domain: dom, DX: 1, DY: 1, DZ: 1})
	box, err := ReadBlockBounds(out)
	require.NoError(t, err)
	assert.Equal(t, dom, box)
	assert.Contains(t, out, "nx      #calc")
}

func TestPatchSnappyHexMeshDict(t *testing.T) {
	data, err := fs.ReadFile(templates.Mesh(), templates.SnappyHexMeshDict)
	require.NoError(t, err)
	sp := SnappyParameters{
		STLFile:        "wing.stl",
		LocationInMesh: r3.Vec{X: 8.5, Y: 2.5, Z: 2.5},
		RefinementBox:  r3.Box{Min: r3.Vec{X: -2, Y: -2, Z: -2}, Max: r3.Vec{X: 16, Y: 3, Z: 3}},
	}
	assert.Equal(t, "wing", sp.SurfaceName())
	out := PatchSnappyHexMeshDict(string(data), sp)
	assert.NotContains(t, out, "placeholder")
	assert.NotContains(t, out, "cylinder")
	assert.Contains(t, out, "    wing.stl\n")
	assert.Contains(t, out, "name wing;")
	assert.Contains(t, out, `file "wing.eMesh";`)
	assert.Contains(t, out, "inGroups (wingGroup);")

	lines := strings.Split(out, "\n")
	var castIdx int
	for i, L := range lines {
		if strings.TrimSpace(L) == "castellatedMeshControls" {
			castIdx = i
		}
	}
	require.NotZero(t, castIdx)
	assert.Equal(t, "{", lines[castIdx+1])
	assert.Equal(t, "    locationInMesh (8.500000 2.500000 2.500000);", lines[castIdx+2])
	assert.Contains(t, out, "        min (-2.000000 -2.000000 -2.000000);\n")
	assert.Contains(t, out, "        max (16.000000 3.000000 3.000000);\n")
	assert.Equal(t, 1, strings.Count(out, "locationInMesh"))
}

func TestPatchSnappyInline(t *testing.T) {
	text := "castellatedMeshControls\n{\n    level 1;\n}\nrefinementBox\n{\n    min (0 0 0);\n    max (1 1 1);\n}\nother\n{\n    max (5 5 5);\n}\n"
	out := PatchSnappyHexMeshDict(text, SnappyParameters{STLFile: "a.stl"})
	assert.Equal(t, "castellatedMeshControls\n{\n    locationInMesh (0.000000 0.000000 0.000000);\n    level 1;\n}\n"+
		"refinementBox\n{\n        min (0.000000 0.000000 0.000000);\n        max (0.000000 0.000000 0.000000);\n}\n"+
		"other\n{\n    max (5 5 5);\n}\n", out)
}

func TestDictionaries(t *testing.T) {
	{
		out := PatchSurfaceFeatureExtractDict("cylinder.stl\n{\n}\n", "body.stl")
		assert.Equal(t, "body.stl\n{\n}\n", out)
	}
	{
		out := SetNumberOfSubdomains("FoamFile{}\n  numberOfSubdomains 4;\nmethod scotch;", 8)
		assert.Equal(t, "FoamFile{}\nnumberOfSubdomains 8;\nmethod scotch;\n", out)
	}
	{
		text := "cylinderGroup\n{\n}\ncylinder { }\nplaceholder\nmycylinder\ncylinder_2\n"
		out := RenamePatches(text, "car")
		assert.Equal(t, "carGroup\n{\n}\ncar { }\ncar\nmycylinder\ncylinder_2\n", out)
	}
	{
		assert.Equal(t, "pimpleFoam", SolverApplication("// c\n   application    pimpleFoam;\nstartFrom x;", DefaultSolverApp))
		assert.Equal(t, "simpleFoam", SolverApplication("startFrom x;", DefaultSolverApp))
		assert.Equal(t, "icoFoam", SolverApplication("application icoFoam ;\n", DefaultSolverApp))
	}
}
