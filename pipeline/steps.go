package pipeline

import (
	"strconv"

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/runner"
)

const snappyDict = "system/snappyHexMeshDict"

// BackgroundSteps create the hex background mesh and the feature edge file
func BackgroundSteps() []runner.Step {
	return []runner.Step{
		{Name: "blockMesh", Binary: "blockMesh", LogFile: "log_blockMesh.txt"},
		{Name: "surfaceFeatureExtract", Binary: "surfaceFeatureExtract", LogFile: "log_surfaceFeatureExtract.txt"},
	}
}

// SnappySteps run snappyHexMesh on one core, or decomposed over MPI ranks
// followed by reconstruction of the mesh.
func SnappySteps(mp *InputParameters.MeshParameters) []runner.Step {
	if !mp.ParallelMesh {
		return []runner.Step{
			{Name: "snappyHexMesh", Binary: "snappyHexMesh",
				Args: []string{"-dict", snappyDict, "-overwrite"}, LogFile: "log_snappyHexMesh.txt"},
		}
	}
	return []runner.Step{
		{Name: "decomposePar", Binary: "decomposePar", LogFile: "log_decomposePar.txt"},
		{Name: "snappyHexMesh", Binary: "mpirun",
			Args:    []string{"-np", strconv.Itoa(mp.Subdomains), "snappyHexMesh", "-dict", snappyDict, "-parallel", "-overwrite"},
			LogFile: "log_snappyHexMesh.txt"},
		{Name: "reconstructParMesh", Binary: "reconstructParMesh", Args: []string{"-constant"}, LogFile: "log_reconstructParMesh.txt"},
	}
}

// SolverSteps run the case application serially or over MPI ranks
func SolverSteps(solver string, mp *InputParameters.MeshParameters) []runner.Step {
	if !mp.ParallelSolver {
		return []runner.Step{{Name: "solver", Binary: solver, LogFile: "log_solver.txt"}}
	}
	return []runner.Step{
		{Name: "decomposePar", Binary: "decomposePar", LogFile: "log_decomposePar_sim.txt"},
		{Name: "solver", Binary: "mpirun",
			Args: []string{"-np", strconv.Itoa(mp.Subdomains), solver, "-parallel"}, LogFile: "log_solver.txt"},
		{Name: "reconstructPar", Binary: "reconstructPar", LogFile: "log_reconstructSim.txt"},
	}
}
