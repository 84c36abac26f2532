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

// Package sycl defines the parallel-kernel source dialect: the grid query
// operations and the accessors of the id-like and range-like aggregates.
package sycl

import (
    `github.com/cloudwego/syclconv/internal/ir`
)

const Dialect = "sycl"

// Grid query operations. Each one reads a single quantity of the execution
// grid and has no operands.
const (
    OpGlobalOffset    = "sycl.global_offset"
    OpNumWorkGroups   = "sycl.num_work_groups"
    OpSubGroupMaxSize = "sycl.sub_group_max_size"
    OpSubGroupLocalID = "sycl.sub_group_local_id"
    OpWorkGroupID     = "sycl.work_group_id"
    OpNumWorkItems    = "sycl.num_work_items"
    OpWorkGroupSize   = "sycl.work_group_size"
    OpLocalID         = "sycl.local_id"
    OpGlobalID        = "sycl.global_id"
    OpSubGroupID      = "sycl.sub_group_id"
    OpNumSubGroups    = "sycl.num_sub_groups"
    OpSubGroupSize    = "sycl.sub_group_size"
)

// Aggregate accessors and the other operations of the dialect.
const (
    OpIDGet    = "sycl.id.get"
    OpRangeGet = "sycl.range.get"
    OpCast     = "sycl.cast"
)

// Shape tells what kind of result a grid query produces.
type Shape uint8

const (
    ShapeID Shape = iota
    ShapeRange
    ShapeScalar
)

// GridOps maps every grid query to the shape of its result.
var GridOps = map[string]Shape {
    OpGlobalOffset    : ShapeID,
    OpNumWorkGroups   : ShapeRange,
    OpWorkGroupID     : ShapeID,
    OpNumWorkItems    : ShapeRange,
    OpWorkGroupSize   : ShapeRange,
    OpLocalID         : ShapeID,
    OpGlobalID        : ShapeID,
    OpSubGroupMaxSize : ShapeScalar,
    OpSubGroupLocalID : ShapeScalar,
    OpSubGroupID      : ShapeScalar,
    OpNumSubGroups    : ShapeScalar,
    OpSubGroupSize    : ShapeScalar,
}

func init() {
    for name, shape := range GridOps {
        ir.Register(ir.OpDef {
            Name   : name,
            Traits : ir.Pure,
            Verify : gridVerifier(shape),
        })
    }

    /* the aggregate accessors and casts */
    ir.Register(
        ir.OpDef { Name: OpIDGet   , Traits: ir.Pure, Verify: getVerifier(OpIDGet) },
        ir.OpDef { Name: OpRangeGet, Traits: ir.Pure, Verify: getVerifier(OpRangeGet) },
        ir.OpDef { Name: OpCast    , Traits: ir.Pure, Verify: verifyCast },
    )
}

// Grid creates a grid query of kind name with result type t.
func Grid(b *ir.Builder, name string, t ir.Type) *ir.Operation {
    if _, ok := GridOps[name]; !ok {
        panic("sycl: not a grid query operation: " + name)
    }
    return b.Create(name, nil, []ir.Type { t }, nil)
}

// CreateGetOp creates the accessor returning a reference to element index of
// the aggregate stored in ref. The accessor kind follows the element type of
// ref: id-like or range-like.
func CreateGetOp(b *ir.Builder, dimTy ir.MemRefType, ref *ir.Value, index *ir.Value) *ir.Value {
    var name string
    switch ref.Type().(ir.MemRefType).Elem.(type) {
        case ir.IDType    : name = OpIDGet
        case ir.RangeType : name = OpRangeGet
        default           : panic("sycl: get operation on a non-aggregate memref: " + ref.Type().String())
    }
    return b.Create(name, []*ir.Value { ref, index }, []ir.Type { dimTy }, nil).Result(0)
}

func gridVerifier(shape Shape) func(op *ir.Operation) error {
    return func(op *ir.Operation) error {
        if op.NumOperands() != 0 || op.NumResults() != 1 {
            return ir.Errorf(op, "expects no operands and one result")
        }

        /* check the result shape */
        t := op.Result(0).Type()
        switch v := t.(type) {
            case ir.IntegerType : return nil
            case ir.IDType      : if shape == ShapeID { return checkDims(op, v.Dims) }
            case ir.RangeType   : if shape == ShapeRange { return checkDims(op, v.Dims) }
        }

        /* the type does not fit */
        return ir.Errorf(op, "invalid result type %s", t)
    }
}

func checkDims(op *ir.Operation, n int) error {
    if n < 1 || n > 3 {
        return ir.Errorf(op, "dimensions must be within [1, 3], got %d", n)
    } else {
        return nil
    }
}

func getVerifier(name string) func(op *ir.Operation) error {
    return func(op *ir.Operation) error {
        if op.NumOperands() != 2 || op.NumResults() != 1 {
            return ir.Errorf(op, "expects two operands and one result")
        }

        /* the aggregate reference */
        ref, ok := op.Operand(0).Type().(ir.MemRefType)
        if !ok {
            return ir.Errorf(op, "operand #0 must be a memref, got %s", op.Operand(0).Type())
        }

        /* the aggregate kind must match the accessor */
        var dims int
        switch v := ref.Elem.(type) {
            case ir.IDType    : if name != OpIDGet { return ir.Errorf(op, "cannot access %s", v) } else { dims = v.Dims }
            case ir.RangeType : if name != OpRangeGet { return ir.Errorf(op, "cannot access %s", v) } else { dims = v.Dims }
            default           : return ir.Errorf(op, "operand #0 must refer to an aggregate, got %s", ref)
        }

        /* dimension index and element reference */
        if _, ok = ir.IntegerWidth(op.Operand(1).Type()); !ok {
            return ir.Errorf(op, "operand #1 must be an integer, got %s", op.Operand(1).Type())
        } else if r, ok := op.Result(0).Type().(ir.MemRefType); !ok || r.Size != dims || r.Elem != ir.I64 {
            return ir.Errorf(op, "result must be memref<%dxi64>, got %s", dims, op.Result(0).Type())
        } else {
            return nil
        }
    }
}

func verifyCast(op *ir.Operation) error {
    if op.NumOperands() != 1 || op.NumResults() != 1 {
        return ir.Errorf(op, "expects one operand and one result")
    } else {
        return nil
    }
}
