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

// Package vector defines component access on fixed size vectors.
package vector

import (
    `github.com/cloudwego/syclconv/internal/ir`
)

const Dialect = "vector"

const (
    OpExtract = "vector.extract"
)

const PositionAttr = "position"

func init() {
    ir.Register(ir.OpDef {
        Name   : OpExtract,
        Traits : ir.Pure,
        Verify : verifyExtract,
    })
}

func Extract(b *ir.Builder, v *ir.Value, i int64) *ir.Value {
    t := v.Type().(ir.VectorType)
    return b.Create(OpExtract, []*ir.Value { v }, []ir.Type { t.Elem }, map[string]ir.Attribute {
        PositionAttr: ir.ArrayAttr { i },
    }).Result(0)
}

func verifyExtract(op *ir.Operation) error {
    if op.NumOperands() != 1 || op.NumResults() != 1 {
        return ir.Errorf(op, "expects one operand and one result")
    }

    /* operand must be a vector */
    t, ok := op.Operand(0).Type().(ir.VectorType)
    if !ok {
        return ir.Errorf(op, "operand must be a vector, got %s", op.Operand(0).Type())
    }

    /* static position in bounds */
    pos, ok := op.Attr(PositionAttr).(ir.ArrayAttr)
    if !ok || len(pos) != 1 || pos[0] < 0 || pos[0] >= int64(t.Len) {
        return ir.Errorf(op, "requires a position within [0, %d)", t.Len)
    } else if op.Result(0).Type() != t.Elem {
        return ir.Errorf(op, "result type %s does not match element type %s", op.Result(0).Type(), t.Elem)
    } else {
        return nil
    }
}
