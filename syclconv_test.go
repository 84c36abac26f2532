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

package syclconv

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

const globalIDModule = `builtin.module() ({
  gpu.module() {sym_name = "kernels"} ({
    func.func() {sym_name = "k"} ({
      %0 = sycl.global_id() : () -> i32
      func.return(%0) : (i32) -> ()
    })
  })
})
`

const globalIDLowered = `builtin.module() ({
  gpu.module() {sym_name = "kernels"} ({
    spirv.GlobalVariable() {built_in = "GlobalInvocationId", sym_name = "__spirv_BuiltInGlobalInvocationId", type = !spirv.ptr<vector<3xi32>, Input>}
    func.func() {sym_name = "k"} ({
      %0 = spirv.mlir.addressof() {variable = @__spirv_BuiltInGlobalInvocationId} : () -> !spirv.ptr<vector<3xi32>, Input>
      %1 = spirv.Load(%0) : (!spirv.ptr<vector<3xi32>, Input>) -> vector<3xi32>
      %2 = spirv.CompositeExtract(%1) {indices = [0]} : (vector<3xi32>) -> i32
      func.return(%2) : (i32) -> ()
    })
  })
})
`

const twoRegionModule = `builtin.module() ({
  gpu.module() {sym_name = "good"} ({
    func.func() {sym_name = "f"} ({
      %0 = sycl.num_work_items() : () -> !sycl.range<2>
      %1 = sycl.num_work_items() : () -> !sycl.range<2>
      func.return(%0, %1) : (!sycl.range<2>, !sycl.range<2>) -> ()
    })
  })
  gpu.module() {spirv.target_env = #spirv.target_env<index = 16>, sym_name = "bad"} ({
    func.func() {sym_name = "g"} ({
      %2 = sycl.sub_group_id() : () -> i32
      func.return(%2) : (i32) -> ()
    })
  })
})
`

func TestConvertString_GlobalID(t *testing.T) {
	res, err := ConvertString(globalIDModule, WithBuiltinNaming("__spirv_BuiltIn", ""))
	require.NoError(t, err)
	require.Equal(t, globalIDLowered, res)

	/* nothing left to lower */
	again, err := ConvertString(res)
	require.NoError(t, err)
	require.Equal(t, res, again)
}

func TestConvertString_Naming(t *testing.T) {
	res, err := ConvertString(globalIDModule, WithBuiltinNaming("__x_", "_y"))
	require.NoError(t, err)
	require.Contains(t, res, "@__x_GlobalInvocationId_y")

	/* the region environment takes precedence */
	env := DefaultTargetEnv()
	env.BuiltinPrefix = "__r_"
	env.IndexBitwidth = 64
	res, err = ConvertString(globalIDModule, WithBuiltinNaming("__x_", "_y"), WithTargetEnv("kernels", env))
	require.NoError(t, err)
	require.Contains(t, res, "@__r_GlobalInvocationId")
	require.Contains(t, res, "vector<3xi64>")
	require.Contains(t, res, "arith.trunci")
}

func TestConvertString_Errors(t *testing.T) {
	var se SyntaxError
	_, err := ConvertString("builtin.module(")
	require.True(t, errors.As(err, &se))

	/* invalid input IR */
	var ve *VerifyError
	_, err = ConvertString(strings.ReplaceAll(globalIDModule, "i32", "vector<3xi32>"))
	require.Error(t, err)
	require.True(t, errors.As(err, &ve), "%v", err)
	require.Equal(t, "sycl.global_id", ve.Op)
}

func TestConvert_PartialFailure(t *testing.T) {
	m, err := ParseModule(twoRegionModule)
	require.NoError(t, err)

	/* the bad region is reported */
	err = Convert(m, WithCleanup(true))
	require.Error(t, err)
	var ce *ConversionError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "bad", ce.Region)

	/* the good one is lowered and cleaned up, the bad one is untouched */
	res := m.String()
	require.NotContains(t, res, "sycl.num_work_items")
	require.Contains(t, res, "sycl.sub_group_id")
	require.Equal(t, 1, strings.Count(res, "spirv.mlir.addressof"))
	require.Equal(t, 2, strings.Count(res, "memref.alloca"))
}

func TestOptions_Validation(t *testing.T) {
	require.Panics(t, func() { WithMaxIterations(-1) })
	require.Panics(t, func() { WithBuiltinNaming("1abc", "") })
	require.Panics(t, func() { WithBuiltinNaming("a b", "") })
	require.Panics(t, func() { WithBuiltinNaming("abc", "-") })
	require.NotPanics(t, func() { WithBuiltinNaming("", "") })

	/* target environments */
	env := DefaultTargetEnv()
	env.IndexBitwidth = 16
	require.Panics(t, func() { WithTargetEnv("kernels", env) })
	env.IndexBitwidth = 64
	env.BuiltinSuffix = "%"
	require.Panics(t, func() { WithTargetEnv("kernels", env) })
}

func TestSetMaxIterations(t *testing.T) {
	old := SetMaxIterations(3)
	defer SetMaxIterations(old)
	require.Equal(t, 3, SetMaxIterations(3))

	/* still converges within the limit */
	res, err := ConvertString(globalIDModule)
	require.NoError(t, err)
	require.NotContains(t, res, "sycl.global_id")
}
