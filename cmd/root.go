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
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/notargets/gomesh/pipeline"
)

var (
	cfgFile string
	logger  = zap.NewNop()
	stopper interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gomesh",
	Short: "Generate and run an OpenFOAM snappyHexMesh case from a single STL surface",
	Long: `
Builds an external flow case around the STL surface found in the input
directory, then runs blockMesh, surfaceFeatureExtract, snappyHexMesh and the
solver named in the template controlDict.

gomesh run -I mesh.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if logger, err = newLogger(viper.GetBool("verbose")); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cf := viper.ConfigFileUsed(); cf != "" {
			logger.Debug("using config file", zap.String("file", cf))
		}
		switch prof, _ := cmd.Flags().GetString("profile"); prof {
		case "":
		case "cpu":
			stopper = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		case "mem":
			stopper = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
		default:
			return fmt.Errorf("unknown profile mode %q, use cpu or mem", prof)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	// Finalizers run after failed commands too, PersistentPostRun does not
	cobra.OnFinalize(finish)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gomesh.yaml)")
	rootCmd.PersistentFlags().StringP("workDir", "w", ".", "directory holding inputSTL/ and case/")
	rootCmd.PersistentFlags().String("inputDir", "", "directory searched for the STL surface (default workDir/inputSTL)")
	rootCmd.PersistentFlags().String("caseDir", "", "case directory to generate (default workDir/case)")
	rootCmd.PersistentFlags().String("templateCase", "", "template case directory (default is the built in template)")
	rootCmd.PersistentFlags().String("meshTemplates", "", "directory with snappyHexMeshDict and surfaceFeatureExtractDict templates")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile of the command")
	for _, key := range []string{"workDir", "inputDir", "caseDir", "templateCase", "meshTemplates", "verbose"} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".gomesh" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gomesh")
	}

	viper.SetEnvPrefix("gomesh")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// finish writes any active profile and flushes the logger
func finish() {
	if stopper != nil {
		stopper.Stop()
		stopper = nil
	}
	_ = logger.Sync()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// directories resolves the run layout from flags, environment and config file
func directories() pipeline.Dirs {
	dirs := pipeline.DefaultDirs(viper.GetString("workDir"))
	if d := viper.GetString("inputDir"); d != "" {
		dirs.InputDir = d
	}
	if d := viper.GetString("caseDir"); d != "" {
		dirs.CaseDir = d
	}
	if d := viper.GetString("templateCase"); d != "" {
		dirs.TemplateCase = expand(d)
	}
	if d := viper.GetString("meshTemplates"); d != "" {
		dirs.MeshTemplates = expand(d)
	}
	dirs.InputDir, dirs.CaseDir = expand(dirs.InputDir), expand(dirs.CaseDir)
	return dirs
}

func expand(path string) string {
	if p, err := homedir.Expand(path); err == nil {
		return filepath.Clean(p)
	}
	return path
}
