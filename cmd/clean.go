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
	"go.uber.org/zap"

	"github.com/notargets/gomesh/casedir"
)

// CleanCmd represents the clean command
var CleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete the generated case directory",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			caseDir = directories().CaseDir
			out     = cmd.OutOrStdout()
			confirm bool
			removed bool
		)
		if confirm, _ = cmd.Flags().GetBool("yes"); !confirm {
			fmt.Fprintf(out, "This will permanently delete the following folder:\n- %s\n", caseDir)
			if confirm, err = NewPrompter(cmd.InOrStdin(), out).YesNo("Are you sure?"); err != nil {
				return
			}
		}
		if !confirm {
			fmt.Fprintln(out, "Aborted by user.")
			return nil
		}
		if removed, err = casedir.Remove(caseDir); err != nil {
			return
		}
		if removed {
			logger.Info("deleted case directory", zap.String("dir", caseDir))
			fmt.Fprintf(out, "Deleted: %s\n", caseDir)
		} else {
			fmt.Fprintf(out, "Not found: %s\n", caseDir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(CleanCmd)
	CleanCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}
