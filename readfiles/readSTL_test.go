package readfiles

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

var asciiTetra = []byte(`solid tetra
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 1 0 0
    endloop
  endfacet
  facet normal -1 0 0
    outer loop
      vertex 0 0 0
      vertex 0 1 0
      vertex 0 0 1
    endloop
  endfacet
  facet normal 0.577 0.577 0.577
    outer loop
      vertex 1 0 0
      vertex 0 0 1
      vertex -2.5e-1 1.5 0.75
    endloop
  endfacet
endsolid tetra
`)

func binarySTL(header string, tris [][3]r3.Vec) []byte {
	var (
		buf = &bytes.Buffer{}
		hdr = make([]byte, stlHeaderBytes)
	)
	copy(hdr, header)
	buf.Write(hdr)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(tris)))
	for _, tri := range tris {
		rec := make([]float32, 12)
		for v := 0; v < 3; v++ {
			rec[3+3*v] = float32(tri[v].X)
			rec[4+3*v] = float32(tri[v].Y)
			rec[5+3*v] = float32(tri[v].Z)
		}
		_ = binary.Write(buf, binary.LittleEndian, rec)
		_ = binary.Write(buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

func TestParseASCIISTL(t *testing.T) {
	surf, err := ParseSTL(asciiTetra)
	require.NoError(t, err)
	assert.False(t, surf.Binary)
	assert.Equal(t, "tetra", surf.Name)
	assert.Equal(t, 4, surf.NumTriangles())
	pts := surf.Vertices()
	assert.Equal(t, 12, len(pts))
	assert.Equal(t, r3.Vec{X: -0.25, Y: 1.5, Z: 0.75}, pts[11])
}

func TestParseASCIISTLErrors(t *testing.T) {
	{ // Wrong vertex count in a loop
		_, err := ParseSTL([]byte("solid a\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\nendsolid a\n"))
		assert.ErrorContains(t, err, "line 6: facet has 2 vertices")
	}
	{ // Bad coordinate
		_, err := ParseSTL([]byte("solid a\nouter loop\nvertex 0 x 0\n"))
		assert.ErrorContains(t, err, "line 3")
	}
	{ // Unterminated loop
		_, err := ParseSTL([]byte("solid a\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\n"))
		assert.ErrorContains(t, err, "inside outer loop")
	}
}

func TestParseBinarySTL(t *testing.T) {
	tris := [][3]r3.Vec{
		{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		{{X: 0, Y: 0, Z: -1}, {X: 0.5, Y: 0, Z: 3}, {X: 0, Y: -4, Z: 0}},
	}
	{
		surf, err := ParseSTL(binarySTL("exported by test", tris))
		require.NoError(t, err)
		assert.True(t, surf.Binary)
		assert.Equal(t, "exported by test", surf.Name)
		assert.Equal(t, tris, surf.Triangles)
	}
	{ // Binary header starting with "solid" is still decoded as binary
		surf, err := ParseSTL(binarySTL("solid sneaky", tris))
		require.NoError(t, err)
		assert.True(t, surf.Binary)
		assert.Equal(t, 2, surf.NumTriangles())
	}
	{ // Truncated file
		data := binarySTL("trunc", tris)
		_, err := ParseSTL(data[:len(data)-10])
		assert.ErrorContains(t, err, "truncated")
	}
	{ // Float32 round trip keeps representable values exact
		surf, err := ParseSTL(binarySTL("", [][3]r3.Vec{{{X: math.Pi}, {}, {}}}))
		require.NoError(t, err)
		assert.Equal(t, float64(float32(math.Pi)), surf.Triangles[0][0].X)
	}
}

func TestReadSTLFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "tetra.stl")
	require.NoError(t, os.WriteFile(fn, asciiTetra, 0644))
	surf, err := ReadSTL(fn)
	require.NoError(t, err)
	assert.Equal(t, 4, surf.NumTriangles())

	_, err = ReadSTL(filepath.Join(dir, "missing.stl"))
	assert.Error(t, err)
}
