package foamdict

import (
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Names used by the template dictionaries for the geometry they were written for
const (
	TemplateSurface  = "placeholder"
	TemplateSTLFile  = "cylinder.stl"
	TemplateEMesh    = "cylinder.eMesh"
	TemplatePatch    = "cylinder"
	TemplateGroup    = "cylinderGroup"
	DefaultSolverApp = "simpleFoam"
)

type SnappyParameters struct {
	STLFile        string // file name inside constant/triSurface
	LocationInMesh r3.Vec
	RefinementBox  r3.Box
}

// SurfaceName is the STL file name without its extension
func (sp SnappyParameters) SurfaceName() string {
	return strings.TrimSuffix(sp.STLFile, filepath.Ext(sp.STLFile))
}

// PatchSnappyHexMeshDict renames the template geometry, injects the
// locationInMesh entry at the top of castellatedMeshControls and rewrites the
// bounds of the refinementBox region.
func PatchSnappyHexMeshDict(text string, sp SnappyParameters) string {
	name := sp.SurfaceName()
	text = strings.ReplaceAll(text, TemplateSurface, name)
	text = strings.ReplaceAll(text, TemplateSTLFile, sp.STLFile)
	text = strings.ReplaceAll(text, TemplateEMesh, name+".eMesh")

	var (
		lines  = splitLines(text)
		out    = make([]string, 0, len(lines)+1)
		inject bool
		inRef  bool
	)
	locLine := "    locationInMesh " + FormatVector(sp.LocationInMesh) + ";"
	minLine := "        min " + FormatVector(sp.RefinementBox.Min) + ";"
	maxLine := "        max " + FormatVector(sp.RefinementBox.Max) + ";"
	for _, L := range lines {
		s := strings.TrimSpace(L)
		switch {
		case s == "castellatedMeshControls":
			out = append(out, L)
			inject = true
		case inject && s == "{":
			out = append(out, L, locLine)
			inject = false
		case strings.HasPrefix(s, "refinementBox"):
			out = append(out, L)
			inRef = true
		case inRef && strings.HasPrefix(s, "min ("):
			out = append(out, minLine)
		case inRef && strings.HasPrefix(s, "max ("):
			out = append(out, maxLine)
			inRef = false
		default:
			out = append(out, L)
		}
	}
	return joinLines(out)
}
