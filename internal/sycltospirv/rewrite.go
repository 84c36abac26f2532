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

package sycltospirv

import (
    `github.com/cloudwego/syclconv/internal/conv`
    `github.com/cloudwego/syclconv/internal/dialect/arith`
    `github.com/cloudwego/syclconv/internal/dialect/memref`
    `github.com/cloudwego/syclconv/internal/dialect/spirv`
    `github.com/cloudwego/syclconv/internal/dialect/sycl`
    `github.com/cloudwego/syclconv/internal/ir`
)

type _RewriteFunc func(op *ir.Operation, builtin spirv.BuiltIn, env spirv.TargetEnv, rw *conv.Rewriter)

var _Rewrites = [...]_RewriteFunc {
    _AlgoND: rewriteND,
    _Algo1D: rewrite1D,
}

func getBuiltinVariableValue(op *ir.Operation, builtin spirv.BuiltIn, integerType ir.Type, env spirv.TargetEnv, rw *conv.Rewriter) *ir.Value {
    return spirv.GetBuiltinVariableValue(op, builtin, integerType, rw.Builder, env.BuiltinPrefix, env.BuiltinSuffix)
}

func getDimension(b *ir.Builder, values *ir.Value, i int) *ir.Value {
    return spirv.CompositeExtract(b, values, int64(i))
}

func indexType(rw *conv.Rewriter) ir.Type {
    if t := rw.TypeConverter.ConvertType(ir.Index); t == nil {
        panic("sycltospirv: index type is not convertible")
    } else {
        return t
    }
}

// rewriteND materializes the aggregate result of op in scratch memory, one
// component at a time, and replaces op with a load of it.
func rewriteND(op *ir.Operation, builtin spirv.BuiltIn, env spirv.TargetEnv, rw *conv.Rewriter) {
    resTy := op.Result(0).Type()
    dims := ir.Dimensions(resTy)
    mirror := getMirror(dims)
    values := getBuiltinVariableValue(op, builtin, indexType(rw), env, rw)

    /* the component access types */
    getIndexTy := ir.I32
    targetIndexType := ir.I64
    dimMtTy := ir.MemRefType { Size: dims, Elem: targetIndexType }

    /* allocate the scratch aggregate */
    res := memref.Alloca(rw.Builder, ir.MemRefType { Size: 1, Elem: resTy })
    zero := arith.ConstantIndex(rw.Builder, 0)

    /* initialize every component */
    for i := 0; i < dims; i++ {
        index := arith.ConstantInt(rw.Builder, int64(i), getIndexTy)
        val := arith.ConvertScalarToDtype(rw.Builder, getDimension(rw.Builder, values, mirror(i)), targetIndexType, true)
        ptr := sycl.CreateGetOp(rw.Builder, dimMtTy, res, index)
        memref.Store(rw.Builder, val, ptr, zero)
    }

    /* replace with the populated aggregate */
    rw.ReplaceOp(op, memref.Load(rw.Builder, res, zero).Result(0))
}

// rewrite1D replaces op with the value of the builtin. Composite builtins
// only contribute their first component.
func rewrite1D(op *ir.Operation, builtin spirv.BuiltIn, env spirv.TargetEnv, rw *conv.Rewriter) {
    var val *ir.Value
    if !builtin.IsComposite() {
        val = getBuiltinVariableValue(op, builtin, ir.I32, env, rw)
    } else {
        val = getDimension(rw.Builder, getBuiltinVariableValue(op, builtin, indexType(rw), env, rw), 0)
    }

    /* replace with the scalar */
    rw.ReplaceOp(op, arith.ConvertScalarToDtype(rw.Builder, val, op.Result(0).Type(), true))
}
