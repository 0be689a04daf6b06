package foamdict

import (
	"regexp"
	"strconv"
	"strings"
)

// PatchSurfaceFeatureExtractDict points the dictionary at the case STL
func PatchSurfaceFeatureExtractDict(text, stlFile string) string {
	return strings.ReplaceAll(text, TemplateSTLFile, stlFile)
}

// SetNumberOfSubdomains rewrites the decomposeParDict subdomain count
func SetNumberOfSubdomains(text string, n int) string {
	lines := splitLines(text)
	for i, L := range lines {
		if strings.HasPrefix(strings.TrimSpace(L), "numberOfSubdomains") {
			lines[i] = "numberOfSubdomains " + strconv.Itoa(n) + ";"
		}
	}
	return joinLines(lines)
}

var (
	reGroup       = regexp.MustCompile(`\b` + TemplateGroup + `\b`)
	rePatch       = regexp.MustCompile(`\b` + TemplatePatch + `\b`)
	rePlaceholder = regexp.MustCompile(`\b` + TemplateSurface + `\b`)
)

// RenamePatches replaces the template patch names in a field file (0/U, 0/p...)
// with the surface name. The group is renamed before the bare patch name.
func RenamePatches(text, name string) string {
	text = rePlaceholder.ReplaceAllLiteralString(text, name)
	text = reGroup.ReplaceAllLiteralString(text, name+"Group")
	return rePatch.ReplaceAllLiteralString(text, name)
}

var reApplication = regexp.MustCompile(`^\s*application\s+(\S+)`)

// SolverApplication returns the solver named by the first application entry
// of a controlDict, or fallback when there is none.
func SolverApplication(controlDict, fallback string) string {
	for _, L := range strings.Split(controlDict, "\n") {
		if m := reApplication.FindStringSubmatch(L); m != nil {
			return strings.TrimRight(m[1], ";")
		}
	}
	return fallback
}
