// Package pipeline runs a single case from STL surface to solution:
// case generation, background mesh, snappyHexMesh and the solver.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/casedir"
	"github.com/notargets/gomesh/readfiles"
	"github.com/notargets/gomesh/runner"
)

// Dirs locates the inputs and output of a run. Empty template directories
// select the embedded templates.
type Dirs struct {
	InputDir      string // Searched for the *.stl surface
	CaseDir       string
	TemplateCase  string
	MeshTemplates string
}

// DefaultDirs follows the layout inputSTL/ and case/ below a working directory
func DefaultDirs(workDir string) Dirs {
	return Dirs{
		InputDir: filepath.Join(workDir, "inputSTL"),
		CaseDir:  filepath.Join(workDir, "case"),
	}
}

type Pipeline struct {
	Dirs     Dirs
	Params   *InputParameters.MeshParameters
	Executor runner.Executor
	Logger   *zap.Logger
	RunID    string
}

// Result summarizes a completed run
type Result struct {
	RunID    string
	Case     *casedir.Case
	Steps    []runner.Step
	FoamFile string
}

func New(dirs Dirs, params *InputParameters.MeshParameters, exec runner.Executor, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if params == nil {
		params = InputParameters.NewMeshParameters()
	}
	if exec == nil {
		exec = runner.NewProcessExecutor(logger)
	}
	runID := uuid.NewString()
	return &Pipeline{
		Dirs:     dirs,
		Params:   params,
		Executor: exec,
		Logger:   logger.With(zap.String("run", runID)),
		RunID:    runID,
	}
}

func (p *Pipeline) section(title string) {
	p.Logger.Info("==> " + title)
}

// Prepare locates the STL surface and generates the case directory
func (p *Pipeline) Prepare(ctx context.Context) (c *casedir.Case, err error) {
	var (
		stl     string
		ignored []string
	)
	if stl, ignored, err = readfiles.FindSTL(p.Dirs.InputDir); err != nil {
		return
	}
	if len(ignored) != 0 {
		p.Logger.Warn("multiple .stl files found, using the first",
			zap.String("using", filepath.Base(stl)), zap.Strings("ignored", ignored))
	}
	p.section("1. Generating case structure for " + filepath.Base(stl))
	b := casedir.NewBuilder(p.Dirs.TemplateCase, p.Dirs.MeshTemplates, p.Params, p.Logger)
	if c, err = b.Build(ctx, p.Dirs.CaseDir, stl); err != nil {
		return nil, fmt.Errorf("generating case: %w", err)
	}
	return
}

// Run executes every stage, stopping at the first failing step
func (p *Pipeline) Run(ctx context.Context) (res *Result, err error) {
	res = &Result{RunID: p.RunID}
	if res.Case, err = p.Prepare(ctx); err != nil {
		return
	}
	c := res.Case

	p.section("2. Running blockMesh & surfaceFeatureExtract")
	if err = p.runSteps(ctx, c, BackgroundSteps(), res); err != nil {
		return
	}

	p.section("3. Running snappyHexMesh")
	if err = p.runSteps(ctx, c, SnappySteps(p.Params), res); err != nil {
		return
	}
	if p.Params.ParallelMesh {
		var removed []string
		if removed, err = c.RemoveProcessorDirs(); err != nil {
			return res, fmt.Errorf("removing processor directories: %w", err)
		}
		p.Logger.Debug("removed processor directories", zap.Strings("dirs", removed))
	}
	p.Logger.Info("snappyHexMesh completed", zap.Bool("parallel", p.Params.ParallelMesh))

	p.section("4. Finalizing mesh")
	var created bool
	if res.FoamFile, created, err = c.FoamFile(); err != nil {
		return res, fmt.Errorf("creating foam file: %w", err)
	}
	if created {
		p.Logger.Info("created foam file", zap.String("file", filepath.Base(res.FoamFile)))
	}

	if !p.Params.RunSolver {
		p.section("MESHING COMPLETED SUCCESSFULLY")
		return
	}
	p.section("5. Running CFD solver " + c.Solver)
	if err = p.runSteps(ctx, c, SolverSteps(c.Solver, p.Params), res); err != nil {
		return
	}
	p.section("PIPELINE COMPLETED SUCCESSFULLY")
	return
}

func (p *Pipeline) runSteps(ctx context.Context, c *casedir.Case, steps []runner.Step, res *Result) error {
	for _, s := range steps {
		if err := p.Executor.Run(ctx, c.Dir, s); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		res.Steps = append(res.Steps, s)
	}
	return nil
}
