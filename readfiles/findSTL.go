package readfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindSTL returns the STL file to mesh from dir. Files are matched on a case
// insensitive ".stl" extension and sorted by name; the first one is selected
// and any others are returned so the caller can report them.
func FindSTL(dir string) (selected string, ignored []string, err error) {
	var (
		entries []os.DirEntry
		matches []string
	)
	if entries, err = os.ReadDir(dir); err != nil {
		err = fmt.Errorf("unable to list STL directory: %w", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".stl") {
			continue
		}
		matches = append(matches, filepath.Join(dir, e.Name()))
	}
	if len(matches) == 0 {
		err = fmt.Errorf("no .stl files found in %s", dir)
		return
	}
	sort.Strings(matches)
	selected, ignored = matches[0], matches[1:]
	return
}

// SurfaceName is the STL file name without extension; it names the patch
// in the generated case.
func SurfaceName(stlPath string) string {
	base := filepath.Base(stlPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
