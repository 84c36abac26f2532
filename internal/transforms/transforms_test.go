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

package transforms

import (
    `testing`

    `github.com/stretchr/testify/require`

    `github.com/cloudwego/syclconv/internal/dialect/arith`
    `github.com/cloudwego/syclconv/internal/dialect/builtin`
    `github.com/cloudwego/syclconv/internal/dialect/gpu`
    `github.com/cloudwego/syclconv/internal/dialect/memref`
    `github.com/cloudwego/syclconv/internal/dialect/spirv`
    `github.com/cloudwego/syclconv/internal/ir`
)

func newFunc() (*ir.Operation, *ir.Operation, *ir.Builder) {
    gm := gpu.NewModule("kernels")
    fn := builtin.NewFunc("f")
    gm.Body().Append(fn)
    b := ir.NewBuilder()
    b.SetInsertionPoint(fn.Body().Back())
    return gm, fn, b
}

func countOps(root *ir.Operation, name string) int {
    return len(ir.Collect(root, func(op *ir.Operation) bool { return op.Name == name }))
}

func TestCSE_MergesPureOps(t *testing.T) {
    gm, fn, b := newFunc()
    tb := ir.NewBuilder()
    tb.SetInsertionPointToStart(gm.Body())
    gv := spirv.GlobalVariable(tb, "gid", ir.PointerType { Elem: ir.VectorType { Len: 3, Elem: ir.I32 }, Storage: ir.StorageInput }, spirv.BuiltInGlobalInvocationID)

    /* the same component read twice */
    x0 := spirv.CompositeExtract(b, spirv.Load(b, spirv.AddressOf(b, gv)), 0)
    x1 := spirv.CompositeExtract(b, spirv.Load(b, spirv.AddressOf(b, gv)), 0)
    y1 := spirv.CompositeExtract(b, spirv.Load(b, spirv.AddressOf(b, gv)), 1)
    ret := fn.Body().Back()
    ret.Erase()
    b.SetInsertionPointToEnd(fn.Body())
    b.Create(builtin.OpReturn, []*ir.Value { x0, x1, y1 }, nil, nil)

    /* chains are merged up to the fixpoint */
    new(CSE).Apply(gm)
    require.Equal(t, 1, countOps(fn, spirv.OpAddressOf))
    require.Equal(t, 1, countOps(fn, spirv.OpLoad))
    require.Equal(t, 2, countOps(fn, spirv.OpCompositeExtract))
    require.Equal(t, fn.Body().Back().Operand(0), fn.Body().Back().Operand(1))
    require.NoError(t, ir.Verify(gm))
}

func TestCSE_KeepsMemoryOps(t *testing.T) {
    gm, fn, b := newFunc()
    mt := ir.MemRefType { Size: 1, Elem: ir.I64 }
    zero := arith.ConstantIndex(b, 0)
    r1 := memref.Alloca(b, mt)
    r2 := memref.Alloca(b, mt)
    memref.Store(b, arith.ConstantInt(b, 1, ir.I64), r1, zero)
    memref.Load(b, r1, zero)
    memref.Load(b, r1, zero)
    memref.Store(b, arith.ConstantInt(b, 1, ir.I64), r2, zero)

    /* allocations and loads are never merged, constants are */
    new(CSE).Apply(gm)
    require.Equal(t, 2, countOps(fn, memref.OpAlloca))
    require.Equal(t, 2, countOps(fn, memref.OpLoad))
    require.Equal(t, 2, countOps(fn, arith.OpConstant))
    require.NoError(t, ir.Verify(gm))
}

func TestCSE_DistinguishesAttributes(t *testing.T) {
    gm, fn, b := newFunc()
    arith.ConstantInt(b, 1, ir.I32)
    arith.ConstantInt(b, 1, ir.I64)
    arith.ConstantInt(b, 2, ir.I32)
    new(CSE).Apply(gm)
    require.Equal(t, 3, countOps(fn, arith.OpConstant))
}

func TestTDCE_RemovesDeadChains(t *testing.T) {
    gm, fn, b := newFunc()
    c := arith.ConstantInt(b, 7, ir.I32)
    e := arith.ExtUI(b, c, ir.I64)
    arith.TruncI(b, e, ir.I16)

    /* a live store keeps its operands */
    mt := ir.MemRefType { Size: 1, Elem: ir.I64 }
    ref := memref.Alloca(b, mt)
    zero := arith.ConstantIndex(b, 0)
    memref.Store(b, arith.ConstantInt(b, 3, ir.I64), ref, zero)

    /* an unused allocation and load */
    unused := memref.Alloca(b, mt)
    memref.Load(b, unused, zero)

    /* everything dead goes */
    new(TDCE).Apply(gm)
    require.Equal(t, []string {
        memref.OpAlloca,
        arith.OpConstant,
        arith.OpConstant,
        memref.OpStore,
        builtin.OpReturn,
    }, opNames(fn))
    require.NoError(t, ir.Verify(gm))
}

func opNames(fn *ir.Operation) []string {
    var ret []string
    for _, op := range fn.Body().Ops() { ret = append(ret, op.Name) }
    return ret
}

func TestTDCE_KeepsRegionOps(t *testing.T) {
    gm, fn, _ := newFunc()
    tb := ir.NewBuilder()
    tb.SetInsertionPointToStart(gm.Body())
    spirv.GlobalVariable(tb, "gid", ir.PointerType { Elem: ir.I32, Storage: ir.StorageInput }, spirv.BuiltInSubgroupID)
    Cleanup(gm)
    require.Equal(t, 1, countOps(gm, spirv.OpGlobalVariable))
    require.Equal(t, 1, countOps(gm, builtin.OpFunc))
    require.Equal(t, []string { builtin.OpReturn }, opNames(fn))
}

func TestPasses(t *testing.T) {
    require.Len(t, Passes, 2)
    for _, p := range Passes {
        require.NotEmpty(t, p.Name)
        require.NotNil(t, p.Pass)
    }
}
