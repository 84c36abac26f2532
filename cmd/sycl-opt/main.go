/*
 * Copyright 2022 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command sycl-opt lowers the grid queries of the kernels in a textual IR
// module to SPIR-V builtin variables.
package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cloudwego/syclconv"
)

func main() {
	if err := Command().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbosity int) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if verbosity == 0 {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(1 - verbosity))
	}
	return cfg.Build()
}

func Command() *cobra.Command {
	var (
		output        string
		configPath    string
		builtinPrefix string
		builtinSuffix string
		maxIterations int
		noVerify      bool
		cleanup       bool
		verbosity     int
	)

	cmd := &cobra.Command{
		Use:   "sycl-opt [file|-] [-o file]",
		Short: "sycl-opt lowers SYCL grid queries to SPIR-V builtin variables",
		Long: `sycl-opt reads a module in textual IR form, converts every gpu.module in it
and prints the result.

Each gpu.module is converted independently, using the target environment
attached to it with a spirv.target_env attribute, the one given in the
configuration file, or the default one. A module that cannot be converted is
left untouched and makes the command fail.
`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			zl, err := newLogger(verbosity)
			if err != nil {
				return err
			}
			defer func() { _ = zl.Sync() }()

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// the naming flags override the file, for every region
			if cmd.Flags().Changed("builtin-prefix") {
				cfg.BuiltinPrefix = &builtinPrefix
			}
			if cmd.Flags().Changed("builtin-suffix") {
				cfg.BuiltinSuffix = &builtinSuffix
			}

			options, err := cfg.Options()
			if err != nil {
				return err
			}

			options = append(options, syclconv.WithLogger(zapr.NewLogger(zl)))
			if cmd.Flags().Changed("max-iterations") {
				opt, err := flagOption(func() syclconv.Option { return syclconv.WithMaxIterations(maxIterations) })
				if err != nil {
					return err
				}
				options = append(options, opt)
			}
			if noVerify {
				options = append(options, syclconv.WithVerifier(false))
			}
			if cleanup {
				options = append(options, syclconv.WithCleanup(true))
			}

			src, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			res, err := syclconv.ConvertString(src, options...)
			if res == "" {
				return err
			}

			// the regions that failed are written back unchanged
			if werr := writeOutput(cmd.OutOrStdout(), output, res); werr != nil {
				return werr
			}
			if err != nil {
				zl.Error("conversion failed", zap.Error(err))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "The file to write the results to or - for stdout")
	cmd.Flags().StringVar(&configPath, "config", "", "A YAML configuration file")
	cmd.Flags().StringVar(&builtinPrefix, "builtin-prefix", syclconv.DefaultTargetEnv().BuiltinPrefix, "The prefix of the builtin variable names")
	cmd.Flags().StringVar(&builtinSuffix, "builtin-suffix", "", "The suffix of the builtin variable names")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "The maximum rewrite rounds per gpu.module, 0 for unlimited")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Do not verify the IR after conversion")
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "Eliminate common sub-expressions and dead code after conversion")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase the logging verbosity")

	return cmd
}

// flagOption reports the panic of an option setter as an error.
func flagOption(fn func() syclconv.Option) (ret syclconv.Option, err error) {
	defer func() {
		if v := recover(); v != nil {
			ret, err = nil, errors.Newf("invalid flag: %v", v)
		}
	}()
	return fn(), nil
}

func readInput(stdin io.Reader, args []string) (string, error) {
	var data []byte
	var err error

	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}

	if err != nil {
		return "", errors.Wrap(err, "reading input")
	}
	return string(data), nil
}

func writeOutput(stdout io.Writer, output string, res string) error {
	if output == "" || output == "-" {
		_, err := io.WriteString(stdout, res)
		return err
	}
	return errors.Wrapf(os.WriteFile(output, []byte(res), 0o644), "writing %s", output)
}
