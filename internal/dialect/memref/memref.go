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

// Package memref defines scratch memory allocation and access.
package memref

import (
    `github.com/cloudwego/syclconv/internal/ir`
)

const Dialect = "memref"

const (
    OpAlloca = "memref.alloca"
    OpLoad   = "memref.load"
    OpStore  = "memref.store"
)

func init() {
    ir.Register(
        ir.OpDef { Name: OpAlloca, Traits: ir.MemoryAlloc, Verify: verifyAlloca },
        ir.OpDef { Name: OpLoad  , Traits: ir.MemoryRead , Verify: verifyLoad },
        ir.OpDef { Name: OpStore , Verify: verifyStore },
    )
}

// Alloca allocates uninitialized scratch memory of type t.
func Alloca(b *ir.Builder, t ir.MemRefType) *ir.Value {
    return b.Create(OpAlloca, nil, []ir.Type { t }, nil).Result(0)
}

func Load(b *ir.Builder, ref *ir.Value, index *ir.Value) *ir.Operation {
    t := ref.Type().(ir.MemRefType)
    return b.Create(OpLoad, []*ir.Value { ref, index }, []ir.Type { t.Elem }, nil)
}

func Store(b *ir.Builder, val *ir.Value, ref *ir.Value, index *ir.Value) *ir.Operation {
    return b.Create(OpStore, []*ir.Value { val, ref, index }, nil, nil)
}

func verifyAlloca(op *ir.Operation) error {
    if op.NumOperands() != 0 || op.NumResults() != 1 {
        return ir.Errorf(op, "expects no operands and one result")
    } else if _, ok := op.Result(0).Type().(ir.MemRefType); !ok {
        return ir.Errorf(op, "result must be a memref, got %s", op.Result(0).Type())
    } else {
        return nil
    }
}

func checkAccess(op *ir.Operation, ref *ir.Value, index *ir.Value) (ir.MemRefType, error) {
    t, ok := ref.Type().(ir.MemRefType)
    if !ok {
        return t, ir.Errorf(op, "expects a memref, got %s", ref.Type())
    } else if index.Type() != ir.Index {
        return t, ir.Errorf(op, "index must be of index type, got %s", index.Type())
    } else {
        return t, nil
    }
}

func verifyLoad(op *ir.Operation) error {
    if op.NumOperands() != 2 || op.NumResults() != 1 {
        return ir.Errorf(op, "expects two operands and one result")
    }

    /* result type is the element type */
    if t, err := checkAccess(op, op.Operand(0), op.Operand(1)); err != nil {
        return err
    } else if op.Result(0).Type() != t.Elem {
        return ir.Errorf(op, "result type %s does not match element type %s", op.Result(0).Type(), t.Elem)
    } else {
        return nil
    }
}

func verifyStore(op *ir.Operation) error {
    if op.NumOperands() != 3 || op.NumResults() != 0 {
        return ir.Errorf(op, "expects three operands and no results")
    }

    /* stored value type is the element type */
    if t, err := checkAccess(op, op.Operand(1), op.Operand(2)); err != nil {
        return err
    } else if op.Operand(0).Type() != t.Elem {
        return ir.Errorf(op, "value type %s does not match element type %s", op.Operand(0).Type(), t.Elem)
    } else {
        return nil
    }
}
