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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/syclconv"
)

const testModule = `builtin.module() ({
  gpu.module() {sym_name = "kernels"} ({
    func.func() {sym_name = "k"} ({
      %0 = sycl.sub_group_local_id() : () -> i32
      func.return(%0) : (i32) -> ()
    })
  })
})
`

func writeFile(t *testing.T, name string, data string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := Command()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestCommand_Stdin(t *testing.T) {
	out, err := run(t, testModule)
	require.NoError(t, err)
	require.Contains(t, out, "spirv.GlobalVariable")
	require.Contains(t, out, "SubgroupLocalInvocationId")
	require.NotContains(t, out, "sycl.sub_group_local_id")
}

func TestCommand_FilesAndFlags(t *testing.T) {
	in := writeFile(t, "in.mlir", testModule)
	dst := filepath.Join(t.TempDir(), "out.mlir")
	out, err := run(t, "", in, "-o", dst, "--builtin-prefix", "__b_", "--builtin-suffix", "_e", "--max-iterations", "4", "-v")
	require.NoError(t, err)
	require.Empty(t, out)

	/* the result went to the output file */
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Contains(t, string(data), "@__b_SubgroupLocalInvocationId_e")
}

func TestCommand_Config(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", `
builtinPrefix: __cfg_
targetEnvs:
  kernels:
    builtinSuffix: _k
`)
	out, err := run(t, testModule, "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "@__cfg_SubgroupLocalInvocationId_k")
}

func TestCommand_FlagsOverrideConfig(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", `
builtinPrefix: __cfg_
targetEnvs:
  kernels:
    indexBitwidth: 64
`)
	out, err := run(t, testModule, "--config", cfg, "--builtin-prefix", "__flag_")
	require.NoError(t, err)
	require.Contains(t, out, "@__flag_SubgroupLocalInvocationId")
	require.NotContains(t, out, "__cfg_")

	/* a region's own naming still wins */
	cfg = writeFile(t, "cfg.yaml", `
targetEnvs:
  kernels:
    builtinPrefix: __own_
`)
	out, err = run(t, testModule, "--config", cfg, "--builtin-prefix", "__flag_")
	require.NoError(t, err)
	require.Contains(t, out, "@__own_SubgroupLocalInvocationId")
}

func TestCommand_Errors(t *testing.T) {
	_, err := run(t, "builtin.module(")
	require.Error(t, err)
	_, err = run(t, "", filepath.Join(t.TempDir(), "missing.mlir"))
	require.Error(t, err)
	_, err = run(t, testModule, "--config", writeFile(t, "cfg.yaml", "unknownKey: 1\n"))
	require.Error(t, err)
	_, err = run(t, testModule, "--builtin-prefix", "9x")
	require.Error(t, err)
}

func TestCommand_PartialFailure(t *testing.T) {
	bad := strings.Replace(testModule, `{sym_name = "kernels"}`, `{spirv.target_env = #spirv.target_env<index = 8>, sym_name = "kernels"}`, 1)
	out, err := run(t, bad)
	require.Error(t, err)
	require.Contains(t, out, "sycl.sub_group_local_id")
}

func TestConfig_Options(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
maxIterations: 8
verify: false
cleanup: true
builtinSuffix: _s
targetEnvs:
  kernels:
    version: v1.4
    capabilities: [Kernel, Int64]
    indexBitwidth: 64
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 8, *cfg.MaxIterations)
	require.False(t, *cfg.Verify)

	/* region environments are layered on the global naming */
	env := cfg.TargetEnvs["kernels"].targetEnv(syclconv.DefaultTargetEnv())
	require.Equal(t, "v1.4", env.Version)
	require.Equal(t, []string{"Kernel", "Int64"}, env.Capabilities)
	require.Equal(t, 64, env.IndexBitwidth)

	options, err := cfg.Options()
	require.NoError(t, err)
	require.Len(t, options, 5)

	/* invalid values are reported as errors */
	cfg.TargetEnvs["kernels"] = TargetEnvConfig{IndexBitwidth: 48}
	_, err = cfg.Options()
	require.Error(t, err)
}

func TestConfig_Empty(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	options, err := cfg.Options()
	require.NoError(t, err)
	require.Empty(t, options)
}
