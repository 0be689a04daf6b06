package readfiles

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hschendel/stl"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderBytes   = 80
	stlTriangleBytes = 50 // normal, 3 vertices, attribute byte count
)

// STLSurface is a triangulated surface as read from an STL file
type STLSurface struct {
	Name      string // solid name for ASCII files, header text for binary
	Binary    bool
	Triangles [][3]r3.Vec
}

// NumTriangles returns the number of facets in the surface
func (s *STLSurface) NumTriangles() int {
	return len(s.Triangles)
}

// Vertices returns every triangle vertex, duplicates included
func (s *STLSurface) Vertices() (pts []r3.Vec) {
	pts = make([]r3.Vec, 0, 3*len(s.Triangles))
	for _, tri := range s.Triangles {
		pts = append(pts, tri[0], tri[1], tri[2])
	}
	return
}

// ReadSTL reads an ASCII or binary STL file
func ReadSTL(filename string) (*STLSurface, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	surf, err := ParseSTL(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(filename), err)
	}
	return surf, nil
}

// ParseSTL decodes STL data, detecting the encoding.
// Some exporters write binary files whose header starts with "solid", so the
// size implied by the binary triangle count wins over the keyword.
func ParseSTL(data []byte) (surf *STLSurface, err error) {
	var solid *stl.Solid
	if isBinarySTL(data) {
		if err = checkBinarySize(data); err != nil {
			return
		}
		// stl.ReadAll picks ASCII on a leading "solid", so blank the header
		src := make([]byte, len(data))
		copy(src[stlHeaderBytes:], data[stlHeaderBytes:])
		if solid, err = stl.ReadAll(bytes.NewReader(src)); err != nil {
			return nil, fmt.Errorf("binary STL: %w", err)
		}
		surf = &STLSurface{
			Name:   strings.TrimRight(string(data[:stlHeaderBytes]), "\x00 "),
			Binary: true,
		}
	} else {
		if solid, err = stl.ReadAll(bytes.NewReader(data)); err != nil {
			return nil, asciiError(data, err)
		}
		surf = &STLSurface{Name: strings.TrimSpace(solid.Name)}
	}
	surf.Triangles = make([][3]r3.Vec, len(solid.Triangles))
	for n, tri := range solid.Triangles {
		for v, p := range tri.Vertices {
			surf.Triangles[n][v] = r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
		}
	}
	return
}

func isBinarySTL(data []byte) bool {
	if len(data) >= stlHeaderBytes+4 {
		nTri := binary.LittleEndian.Uint32(data[stlHeaderBytes : stlHeaderBytes+4])
		if uint64(len(data)) == uint64(stlHeaderBytes+4)+uint64(nTri)*stlTriangleBytes {
			return true
		}
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return !bytes.HasPrefix(trimmed, []byte("solid"))
}

func checkBinarySize(data []byte) error {
	if len(data) < stlHeaderBytes+4 {
		return fmt.Errorf("binary STL too short: %d bytes", len(data))
	}
	nTri := int(binary.LittleEndian.Uint32(data[stlHeaderBytes : stlHeaderBytes+4]))
	if body := len(data) - stlHeaderBytes - 4; body < nTri*stlTriangleBytes {
		return fmt.Errorf("binary STL truncated: header declares %d triangles, found data for %d",
			nTri, body/stlTriangleBytes)
	}
	return nil
}

// asciiError attaches the number of the first offending line to a decode
// error, which is what a user editing the file needs.
func asciiError(data []byte, err error) error {
	var (
		scanner = bufio.NewScanner(bytes.NewReader(data))
		lineNo  int
		nVert   int
		inLoop  bool
	)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "outer":
			inLoop, nVert = true, 0
		case "vertex":
			if !inLoop {
				return fmt.Errorf("line %d: vertex outside of outer loop: %w", lineNo, err)
			}
			if len(fields) != 4 {
				return fmt.Errorf("line %d: expected 3 coordinates, got %d: %w", lineNo, len(fields)-1, err)
			}
			for _, f := range fields[1:] {
				if _, perr := strconv.ParseFloat(f, 32); perr != nil {
					return fmt.Errorf("line %d: invalid coordinate %q: %w", lineNo, f, err)
				}
			}
			nVert++
		case "endloop":
			if nVert != 3 {
				return fmt.Errorf("line %d: facet has %d vertices, expected 3: %w", lineNo, nVert, err)
			}
			inLoop = false
		}
	}
	if inLoop {
		return fmt.Errorf("line %d: unexpected end of file inside outer loop: %w", lineNo, err)
	}
	return fmt.Errorf("ASCII STL: %w", err)
}
