// Package foamdict edits OpenFOAM dictionary text.
//
// The dictionaries are treated as line oriented templates: entries are located
// by keyword at the start of a line and their values rewritten in place, so
// comments, macros and #calc expressions in the templates survive untouched.
package foamdict

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// BlockMeshParameters are the scalar entries rewritten in a blockMeshDict
// template. The cell sizes are written into dx, dy and dz.
type BlockMeshParameters struct {
	Domain     r3.Box
	DX, DY, DZ float64
}

var blockMeshKeys = []string{"xmin", "xmax", "ymin", "ymax", "zmin", "zmax", "dx", "dy", "dz"}

var blockMeshPatterns = func() map[string]*regexp.Regexp {
	pats := make(map[string]*regexp.Regexp, len(blockMeshKeys))
	for _, key := range blockMeshKeys {
		pats[key] = regexp.MustCompile(`^(\s*` + key + `\s+).+?;`)
	}
	return pats
}()

func (bp BlockMeshParameters) values() map[string]float64 {
	return map[string]float64{
		"xmin": bp.Domain.Min.X, "xmax": bp.Domain.Max.X,
		"ymin": bp.Domain.Min.Y, "ymax": bp.Domain.Max.Y,
		"zmin": bp.Domain.Min.Z, "zmax": bp.Domain.Max.Z,
		"dx": bp.DX, "dy": bp.DY, "dz": bp.DZ,
	}
}

// FormatScalar renders a value the way every generated dictionary does
func FormatScalar(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// FormatVector renders "(x y z)"
func FormatVector(v r3.Vec) string {
	return fmt.Sprintf("(%s %s %s)", FormatScalar(v.X), FormatScalar(v.Y), FormatScalar(v.Z))
}

// SetBlockMeshParameters rewrites the domain and cell size entries of a
// blockMeshDict template. Only the first matching key on a line is replaced.
func SetBlockMeshParameters(text string, bp BlockMeshParameters) string {
	vals := bp.values()
	lines := splitLines(text)
	for i, line := range lines {
		for _, key := range blockMeshKeys {
			pat := blockMeshPatterns[key]
			if m := pat.FindStringSubmatchIndex(line); m != nil {
				lines[i] = line[:m[3]] + FormatScalar(vals[key]) + ";" + line[m[1]:]
				break
			}
		}
	}
	return joinLines(lines)
}

var blockBoundPatterns = [3]*regexp.Regexp{
	regexp.MustCompile(`(?s)xmin\s+([\-\d\.]+);.*xmax\s+([\-\d\.]+);`),
	regexp.MustCompile(`(?s)ymin\s+([\-\d\.]+);.*ymax\s+([\-\d\.]+);`),
	regexp.MustCompile(`(?s)zmin\s+([\-\d\.]+);.*zmax\s+([\-\d\.]+);`),
}

// ReadBlockBounds recovers the domain box from a generated blockMeshDict
func ReadBlockBounds(text string) (box r3.Box, err error) {
	var lo, hi [3]float64
	for i, pat := range blockBoundPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			err = fmt.Errorf("blockMeshDict has no %cmin/%cmax entries", 'x'+i, 'x'+i)
			return
		}
		if lo[i], err = strconv.ParseFloat(m[1], 64); err != nil {
			return
		}
		if hi[i], err = strconv.ParseFloat(m[2], 64); err != nil {
			return
		}
	}
	box.Min = r3.Vec{X: lo[0], Y: lo[1], Z: lo[2]}
	box.Max = r3.Vec{X: hi[0], Y: hi[1], Z: hi[2]}
	return
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

// joinLines terminates the output with exactly one newline
func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
