// Package templates carries the default OpenFOAM case and mesh dictionaries.
//
// The template case describes external flow along +X around a single wall
// patch named "cylinder"; casedir renames the patch after the STL surface.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templateCase mesh
var files embed.FS

const (
	caseRoot = "templateCase"
	meshRoot = "mesh"
)

// Mesh template file names
const (
	SnappyHexMeshDict         = "snappyHexMeshDict"
	SurfaceFeatureExtractDict = "surfaceFeatureExtractDict"
)

// Case returns the embedded template case rooted at the case directory
func Case() fs.FS {
	sub, err := fs.Sub(files, caseRoot)
	if err != nil {
		panic(err)
	}
	return sub
}

// Mesh returns the embedded mesh dictionaries
func Mesh() fs.FS {
	sub, err := fs.Sub(files, meshRoot)
	if err != nil {
		panic(err)
	}
	return sub
}

// Resolve returns dir as a filesystem when set, the embedded default otherwise
func Resolve(dir string, fallback func() fs.FS) fs.FS {
	if dir == "" {
		return fallback()
	}
	return os.DirFS(dir)
}

// CopyTree writes every file of src below dst, creating directories as needed
func CopyTree(src fs.FS, dst string) error {
	return fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		if err = os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		return nil
	})
}

// Materialize writes the embedded template case and mesh dictionaries to
// dst/templateCase and dst/mesh so they can be edited and passed back in.
func Materialize(dst string) error {
	if err := CopyTree(Case(), filepath.Join(dst, caseRoot)); err != nil {
		return err
	}
	return CopyTree(Mesh(), filepath.Join(dst, meshRoot))
}
