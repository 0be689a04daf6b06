// Package casedir builds and removes the OpenFOAM case directory.
package casedir

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/foamdict"
	"github.com/notargets/gomesh/geometry3D"
	"github.com/notargets/gomesh/readfiles"
	"github.com/notargets/gomesh/templates"
)

// Files whose boundary patch names are renamed after the surface; missing
// ones are skipped
var PatchedFiles = []string{"0/U", "0/p", "0/nuTilda", "0/nut", "system/controlDict"}

// Case describes a generated case directory
type Case struct {
	Dir            string
	STLName        string // Surface and wall patch name
	STLFile        string // File name inside constant/triSurface
	Bounds         r3.Box
	Domain         r3.Box // As read back from system/blockMeshDict
	RefinementBox  r3.Box
	LocationInMesh r3.Vec
	Solver         string
}

func (c *Case) Path(elem ...string) string {
	return filepath.Join(append([]string{c.Dir}, elem...)...)
}

// FoamFile creates the empty <case>.foam marker used by ParaView readers
func (c *Case) FoamFile() (path string, created bool, err error) {
	path = c.Path(filepath.Base(c.Dir) + ".foam")
	if _, err = os.Stat(path); err == nil {
		return path, false, nil
	}
	if !os.IsNotExist(err) {
		return
	}
	var f *os.File
	if f, err = os.Create(path); err != nil {
		return
	}
	return path, true, f.Close()
}

// RemoveProcessorDirs deletes the decomposed processor* directories
func (c *Case) RemoveProcessorDirs() (removed []string, err error) {
	var matches []string
	if matches, err = filepath.Glob(c.Path("processor*")); err != nil {
		return
	}
	for _, m := range matches {
		if fi, serr := os.Stat(m); serr != nil || !fi.IsDir() {
			continue
		}
		if err = os.RemoveAll(m); err != nil {
			return
		}
		removed = append(removed, m)
	}
	return
}

type Builder struct {
	TemplateCase  fs.FS
	MeshTemplates fs.FS
	Params        *InputParameters.MeshParameters
	Logger        *zap.Logger
}

// NewBuilder uses the embedded templates for any empty directory argument
func NewBuilder(templateCaseDir, meshTemplateDir string, params *InputParameters.MeshParameters,
	logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if params == nil {
		params = InputParameters.NewMeshParameters()
	}
	return &Builder{
		TemplateCase:  templates.Resolve(templateCaseDir, templates.Case),
		MeshTemplates: templates.Resolve(meshTemplateDir, templates.Mesh),
		Params:        params,
		Logger:        logger,
	}
}

// Build replaces caseDir with a fresh copy of the template case prepared for
// meshing the surface in stlPath.
func (b *Builder) Build(ctx context.Context, caseDir, stlPath string) (c *Case, err error) {
	if err = b.Params.Validate(); err != nil {
		return
	}
	var (
		surf     *readfiles.STLSurface
		stlBox   r3.Box
		stlFile  = filepath.Base(stlPath)
		log      = b.Logger.With(zap.String("case", caseDir))
		snappyT  string
		surfaceT string
		blockT   string
		ctrl     string
	)
	// Load everything up front so a bad template leaves no half built case
	if blockT, err = readTemplate(b.TemplateCase, "system/blockMeshDict"); err != nil {
		return
	}
	if snappyT, err = readTemplate(b.MeshTemplates, templates.SnappyHexMeshDict); err != nil {
		return
	}
	if surfaceT, err = readTemplate(b.MeshTemplates, templates.SurfaceFeatureExtractDict); err != nil {
		return
	}
	ctrl, _ = readTemplate(b.TemplateCase, "system/controlDict")
	if surf, err = readfiles.ReadSTL(stlPath); err != nil {
		return
	}
	if stlBox, err = geometry3D.ComputeBounds(surf.Vertices()); err != nil {
		return nil, fmt.Errorf("%s: %w", stlFile, err)
	}
	c = &Case{
		Dir:     caseDir,
		STLName: readfiles.SurfaceName(stlPath),
		STLFile: stlFile,
		Bounds:  stlBox,
		Solver:  b.Params.Solver,
	}
	if c.Solver == "" {
		c.Solver = foamdict.SolverApplication(ctrl, foamdict.DefaultSolverApp)
	}
	log.Info("generating case", zap.String("stl", stlFile), zap.Int("triangles", surf.NumTriangles()))

	// 1) Fresh copy of the template case
	if err = os.RemoveAll(caseDir); err != nil {
		return nil, fmt.Errorf("removing previous case: %w", err)
	}
	if err = templates.CopyTree(b.TemplateCase, caseDir); err != nil {
		return nil, fmt.Errorf("copying template case: %w", err)
	}
	// 2) Patch names in the initial conditions and function objects
	if err = b.renameFieldPatches(ctx, c); err != nil {
		return nil, err
	}
	// 3) Parallel decomposition
	if err = editFile(c.Path("system", "decomposeParDict"), func(text string) string {
		return foamdict.SetNumberOfSubdomains(text, b.Params.Subdomains)
	}); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	// 4) Surface
	if err = copyFile(stlPath, c.Path("constant", "triSurface", stlFile)); err != nil {
		return nil, fmt.Errorf("copying STL: %w", err)
	}
	// 5) Background mesh
	bmd := foamdict.SetBlockMeshParameters(blockT, foamdict.BlockMeshParameters{
		Domain: geometry3D.Domain(stlBox, b.Params.DomainExtents()),
		DX:     b.Params.Cells[0], DY: b.Params.Cells[1], DZ: b.Params.Cells[2],
	})
	if err = writeFile(c.Path("system", "blockMeshDict"), bmd); err != nil {
		return nil, err
	}
	// 6) snappyHexMesh, positioned from the bounds actually written to blockMeshDict
	if c.Domain, err = foamdict.ReadBlockBounds(bmd); err != nil {
		return nil, err
	}
	c.LocationInMesh = geometry3D.LocationInMesh(stlBox, c.Domain)
	c.RefinementBox = geometry3D.RefinementBox(stlBox, c.Domain, b.Params.RefinementMargin)
	sdict := foamdict.PatchSnappyHexMeshDict(snappyT, foamdict.SnappyParameters{
		STLFile:        stlFile,
		LocationInMesh: c.LocationInMesh,
		RefinementBox:  c.RefinementBox,
	})
	if err = writeFile(c.Path("system", templates.SnappyHexMeshDict), sdict); err != nil {
		return nil, err
	}
	// 7) Feature edges
	if err = writeFile(c.Path("system", templates.SurfaceFeatureExtractDict),
		foamdict.PatchSurfaceFeatureExtractDict(surfaceT, stlFile)); err != nil {
		return nil, err
	}
	log.Info("case ready",
		zap.String("stl", stlFile),
		zap.String("domainMin", foamdict.FormatVector(c.Domain.Min)),
		zap.String("domainMax", foamdict.FormatVector(c.Domain.Max)),
		zap.String("locationInMesh", foamdict.FormatVector(c.LocationInMesh)),
		zap.String("solver", c.Solver))
	return c, nil
}

func (b *Builder) renameFieldPatches(ctx context.Context, c *Case) error {
	g, _ := errgroup.WithContext(ctx)
	for _, name := range PatchedFiles {
		fn := c.Path(filepath.FromSlash(name))
		g.Go(func() error {
			err := editFile(fn, func(text string) string {
				return foamdict.RenamePatches(text, c.STLName)
			})
			if os.IsNotExist(err) {
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

func readTemplate(fsys fs.FS, name string) (string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}
	return string(data), nil
}

func editFile(path string, edit func(string) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return writeFile(path, edit(string(data)))
}

func writeFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return os.WriteFile(path, []byte(text), 0644)
}

func copyFile(src, dst string) (err error) {
	var in, out *os.File
	if err = os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return
	}
	if in, err = os.Open(src); err != nil {
		return
	}
	defer in.Close()
	if out, err = os.Create(dst); err != nil {
		return
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return
	}
	return out.Close()
}
