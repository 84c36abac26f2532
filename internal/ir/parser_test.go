/*
 * Copyright 2024 CloudWeGo Authors
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

package ir_test

import (
    `testing`

    `github.com/cockroachdb/errors`
    `github.com/stretchr/testify/require`

    _ `github.com/cloudwego/syclconv/internal/dialect/arith`
    _ `github.com/cloudwego/syclconv/internal/dialect/builtin`
    _ `github.com/cloudwego/syclconv/internal/dialect/gpu`
    _ `github.com/cloudwego/syclconv/internal/dialect/memref`
    _ `github.com/cloudwego/syclconv/internal/dialect/spirv`
    _ `github.com/cloudwego/syclconv/internal/dialect/sycl`
    `github.com/cloudwego/syclconv/internal/ir`
)

const sampleModule = `builtin.module() ({
  gpu.module() {spirv.target_env = #spirv.target_env<v1.0, [Kernel], index = 64>, sym_name = "kernels"} ({
    spirv.GlobalVariable() {built_in = "GlobalInvocationId", sym_name = "__spirv_BuiltInGlobalInvocationId", type = !spirv.ptr<vector<3xi64>, Input>}
    func.func() {sym_name = "k"} ({
      %0 = spirv.mlir.addressof() {variable = @__spirv_BuiltInGlobalInvocationId} : () -> !spirv.ptr<vector<3xi64>, Input>
      %1 = spirv.Load(%0) : (!spirv.ptr<vector<3xi64>, Input>) -> vector<3xi64>
      %2 = memref.alloca() : () -> memref<1x!sycl.id<2>>
      %3 = arith.constant() {value = 0 : index} : () -> index
      %4 = arith.constant() {value = 1 : i32} : () -> i32
      %5 = spirv.CompositeExtract(%1) {indices = [0]} : (vector<3xi64>) -> i64
      %6 = sycl.id.get(%2, %4) : (memref<1x!sycl.id<2>>, i32) -> memref<2xi64>
      memref.store(%5, %6, %3) : (i64, memref<2xi64>, index) -> ()
      %7 = memref.load(%2, %3) : (memref<1x!sycl.id<2>>, index) -> !sycl.id<2>
      func.return(%7) : (!sycl.id<2>) -> ()
    })
  })
})
`

func TestParser_PrintRoundTrip(t *testing.T) {
    op, err := ir.Parse(sampleModule)
    require.NoError(t, err)
    require.NoError(t, ir.Verify(op))
    require.Equal(t, sampleModule, ir.Print(op))
}

func TestParser_Values(t *testing.T) {
    op, err := ir.Parse(sampleModule)
    require.NoError(t, err)

    /* use-def chains are linked */
    ops := ir.Collect(op, func(p *ir.Operation) bool { return p.Name == "memref.alloca" })
    require.Len(t, ops, 1)
    require.Equal(t, 2, ops[0].Result(0).NumUses())
    require.Equal(t, ir.MemRefType { Size: 1, Elem: ir.IDType { Dims: 2 } }, ops[0].Result(0).Type())

    /* attributes */
    gm := ir.Collect(op, func(p *ir.Operation) bool { return p.Name == "gpu.module" })[0]
    require.Equal(t, "kernels", ir.SymbolName(gm))
    require.Equal(t, ir.OpaqueAttr { Dialect: "spirv", Name: "target_env", Body: "v1.0, [Kernel], index = 64" }, gm.Attr("spirv.target_env"))
    ext := ir.Collect(op, func(p *ir.Operation) bool { return p.Name == "spirv.CompositeExtract" })[0]
    require.Equal(t, ir.ArrayAttr { 0 }, ext.Attr("indices"))
}

func TestParser_Errors(t *testing.T) {
    for _, src := range []string {
        `builtin.module() ({`,
        `module()`,
        `builtin.module() builtin.module()`,
        `func.return(%0) : (i32) -> ()`,
        `%0 = arith.constant() {value = 1 : i32} : () -> f32`,
        `%0 = arith.constant() {value = 1 : i32} : () -> (i32, i32)`,
        `%0 = memref.alloca() : () -> memref<0xi64>`,
        `%0 = sycl.global_id() : () -> !sycl.id<0>`,
        `gpu.module() {spirv.target_env = #target_env<v1.0>} ({})`,
    } {
        _, err := ir.Parse(src)
        require.Error(t, err, src)
        var se ir.SyntaxError
        require.True(t, errors.As(err, &se), src)
        require.Equal(t, src, se.Src)
    }
}

func TestParser_Redefinition(t *testing.T) {
    _, err := ir.Parse(`func.func() {sym_name = "f"} ({
  %0 = arith.constant() {value = 1 : i32} : () -> i32
  %0 = arith.constant() {value = 2 : i32} : () -> i32
  func.return() 
})`)
    require.Error(t, err)
    require.Contains(t, err.Error(), "redefinition")
}
