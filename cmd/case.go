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

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/foamdict"
	"github.com/notargets/gomesh/pipeline"
)

// CaseCmd represents the case command
var CaseCmd = &cobra.Command{
	Use:   "case",
	Short: "Generate the case directory without running OpenFOAM",
	Long:  `Copies the template case and writes blockMeshDict, snappyHexMeshDict, surfaceFeatureExtractDict and decomposeParDict for the STL surface`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var mp *InputParameters.MeshParameters
		if mp, err = meshParameters(cmd.Flags()); err != nil {
			return
		}
		p := pipeline.New(directories(), mp, nil, logger)
		c, err := p.Prepare(cmd.Context())
		if err != nil {
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "case ready in %s from %s\n", c.Dir, c.STLFile)
		fmt.Fprintf(out, "domain          %s %s\n", foamdict.FormatVector(c.Domain.Min), foamdict.FormatVector(c.Domain.Max))
		fmt.Fprintf(out, "locationInMesh  %s\n", foamdict.FormatVector(c.LocationInMesh))
		fmt.Fprintf(out, "solver          %s\n", c.Solver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(CaseCmd)
	addMeshFlags(CaseCmd.Flags())
}
