/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/pipeline"
	"github.com/notargets/gomesh/runner"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate the case, mesh it with snappyHexMesh and run the solver",
	Long: `
Generates the case from the STL in the input directory and runs, in order:
  blockMesh, surfaceFeatureExtract, snappyHexMesh (serial or MPI),
  the solver named in controlDict (serial or MPI).
Each step logs to case/log_<step>.txt.

gomesh run --parallelMesh --subdomains 8`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			mp   *InputParameters.MeshParameters
			exec runner.Executor
			dry  *runner.DryRunExecutor
		)
		if mp, err = meshParameters(cmd.Flags()); err != nil {
			return
		}
		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			if err = askRunOptions(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), mp); err != nil {
				return
			}
		}
		if viper.GetBool("verbose") {
			mp.Print()
		}
		if dryRun, _ := cmd.Flags().GetBool("dryRun"); dryRun {
			dry = runner.NewDryRunExecutor(logger)
			exec = dry
		} else {
			exec = runner.NewProcessExecutor(logger)
		}
		p := pipeline.New(directories(), mp, exec, logger)
		res, err := p.Run(cmd.Context())
		if err != nil {
			return
		}
		if dry != nil {
			for _, c := range dry.Commands() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
		}
		logger.Info("done", zap.String("case", res.Case.Dir), zap.Int("steps", len(res.Steps)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	addMeshFlags(RunCmd.Flags())
	RunCmd.Flags().Bool("parallelMesh", false, "run snappyHexMesh decomposed over MPI ranks")
	RunCmd.Flags().Bool("parallelSolver", false, "run the solver decomposed over MPI ranks")
	RunCmd.Flags().Bool("skipSolver", false, "stop after meshing")
	RunCmd.Flags().String("solver", "", "solver application, overrides controlDict")
	RunCmd.Flags().BoolP("interactive", "i", false, "ask for the parallel options on stdin")
	RunCmd.Flags().Bool("dryRun", false, "generate the case and print the commands without running them")
}

// addMeshFlags registers the flags shared by commands that generate a case
func addMeshFlags(fs *pflag.FlagSet) {
	fs.StringP("inputParametersFile", "I", "", "YAML file for mesh parameters like:\n\t- Subdomains\n\t- Cells (dx dy dz)\n\t- Upstream, Downstream, Lateral")
	fs.IntP("subdomains", "n", 4, "number of subdomains for parallel decomposition")
}

// meshParameters reads the parameter file and applies any explicitly set flags
func meshParameters(fs *pflag.FlagSet) (mp *InputParameters.MeshParameters, err error) {
	fn, _ := fs.GetString("inputParametersFile")
	if mp, err = InputParameters.ReadMeshParameters(fn); err != nil {
		return
	}
	if fs.Changed("subdomains") {
		mp.Subdomains, _ = fs.GetInt("subdomains")
	}
	if f := fs.Lookup("parallelMesh"); f != nil && f.Changed {
		mp.ParallelMesh, _ = fs.GetBool("parallelMesh")
	}
	if f := fs.Lookup("parallelSolver"); f != nil && f.Changed {
		mp.ParallelSolver, _ = fs.GetBool("parallelSolver")
	}
	if f := fs.Lookup("skipSolver"); f != nil && f.Changed {
		skip, _ := fs.GetBool("skipSolver")
		mp.RunSolver = !skip
	}
	if f := fs.Lookup("solver"); f != nil && f.Changed {
		mp.Solver, _ = fs.GetString("solver")
	}
	return mp, mp.Validate()
}

// askRunOptions asks the parallel questions; the core count applies to both
// snappyHexMesh and the solver and sets the decomposition subdomains.
func askRunOptions(p *Prompter, mp *InputParameters.MeshParameters) (err error) {
	if mp.ParallelMesh, err = p.YesNo("Run snappyHexMesh in multi_cores?"); err != nil {
		return
	}
	if mp.RunSolver {
		if mp.ParallelSolver, err = p.YesNo("Run solver in multi-cores?"); err != nil {
			return
		}
	}
	if mp.ParallelMesh || mp.ParallelSolver {
		if mp.Subdomains, err = p.Int("Number of cores", mp.Subdomains); err != nil {
			return
		}
	}
	fmt.Fprintln(p.out)
	return
}
