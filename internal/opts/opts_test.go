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

package opts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/syclconv/internal/dialect/spirv"
)

func TestDefaults_Environment(t *testing.T) {
	t.Setenv("SYCLCONV_TEST_INT", "16")
	t.Setenv("SYCLCONV_TEST_ZERO", "0")
	t.Setenv("SYCLCONV_TEST_BAD", "many")
	t.Setenv("SYCLCONV_TEST_BOOL", "true")
	t.Setenv("SYCLCONV_TEST_EMPTY", "")

	require.Equal(t, 16, parseOrDefault("SYCLCONV_TEST_INT", 64, 0))
	require.Equal(t, 64, parseOrDefault("SYCLCONV_TEST_MISSING", 64, 0))
	require.Panics(t, func() { parseOrDefault("SYCLCONV_TEST_ZERO", 64, 0) })
	require.Equal(t, 0, parseOrDefault("SYCLCONV_TEST_ZERO", 64, -1))
	require.Panics(t, func() { parseOrDefault("SYCLCONV_TEST_BAD", 64, 0) })
	require.True(t, boolOrDefault("SYCLCONV_TEST_BOOL", false))
	require.Panics(t, func() { boolOrDefault("SYCLCONV_TEST_BAD", false) })

	/* an explicitly empty naming affix is kept */
	require.Equal(t, "", stringOrDefault("SYCLCONV_TEST_EMPTY", "x"))
	require.Equal(t, "x", stringOrDefault("SYCLCONV_TEST_MISSING", "x"))
}

func TestOptions_TargetEnv(t *testing.T) {
	o := GetDefaultOptions()
	o.BuiltinPrefix = "__p_"
	o.BuiltinSuffix = "_s"

	/* the global naming applies to every region */
	env := o.TargetEnv("kernels")
	require.Equal(t, "__p_", env.BuiltinPrefix)
	require.Equal(t, "_s", env.BuiltinSuffix)
	require.Equal(t, spirv.DefaultIndexBitwidth, env.IndexBitwidth)

	/* unless the region has its own */
	custom := spirv.DefaultTargetEnv()
	custom.IndexBitwidth = 64
	o.TargetEnvs = map[string]spirv.TargetEnv{"kernels": custom}
	require.Equal(t, custom, o.TargetEnv("kernels"))
	require.Equal(t, "__p_", o.TargetEnv("other").BuiltinPrefix)
}

func TestOptions_Defaults(t *testing.T) {
	o := GetDefaultOptions()
	require.True(t, o.Verify)
	require.False(t, o.Cleanup)
	require.Equal(t, MaxIterations, o.MaxIterations)
	require.True(t, o.Logger.GetSink() == nil)
}
