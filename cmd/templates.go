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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/notargets/gomesh/templates"
)

// TemplatesCmd represents the templates command
var TemplatesCmd = &cobra.Command{
	Use:   "templates <dir>",
	Short: "Write the built in template case and mesh dictionaries for editing",
	Long: `Writes <dir>/templateCase and <dir>/mesh. Pass them back with
--templateCase <dir>/templateCase --meshTemplates <dir>/mesh`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst := expand(args[0])
		if err := templates.Materialize(dst); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "templates written to %s and %s\n",
			filepath.Join(dst, "templateCase"), filepath.Join(dst, "mesh"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(TemplatesCmd)
}
