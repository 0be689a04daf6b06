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
	"github.com/notargets/gomesh/geometry3D"
	"github.com/notargets/gomesh/readfiles"
)

// BoundsCmd represents the bounds command
var BoundsCmd = &cobra.Command{
	Use:   "bounds [file.stl]",
	Short: "Print the STL bounding box and the derived mesh domain",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			stl  string
			mp   *InputParameters.MeshParameters
			surf *readfiles.STLSurface
		)
		if len(args) == 1 {
			stl = args[0]
		} else if stl, _, err = readfiles.FindSTL(directories().InputDir); err != nil {
			return
		}
		fn, _ := cmd.Flags().GetString("inputParametersFile")
		if mp, err = InputParameters.ReadMeshParameters(fn); err != nil {
			return
		}
		if surf, err = readfiles.ReadSTL(stl); err != nil {
			return
		}
		box, err := geometry3D.ComputeBounds(surf.Vertices())
		if err != nil {
			return
		}
		domain := geometry3D.Domain(box, mp.DomainExtents())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\"%s\"\t\t= STL\n", stl)
		fmt.Fprintf(out, "[%d]\t\t\t= Triangles\n", surf.NumTriangles())
		fmt.Fprintf(out, "%s %s\t= Bounds\n", foamdict.FormatVector(box.Min), foamdict.FormatVector(box.Max))
		fmt.Fprintf(out, "%s\t\t= Characteristic Length\n", foamdict.FormatScalar(geometry3D.CharacteristicLength(box)))
		fmt.Fprintf(out, "%s %s\t= Domain\n", foamdict.FormatVector(domain.Min), foamdict.FormatVector(domain.Max))
		fmt.Fprintf(out, "%s\t= Location In Mesh\n", foamdict.FormatVector(geometry3D.LocationInMesh(box, domain)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(BoundsCmd)
	BoundsCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for mesh parameters")
}
