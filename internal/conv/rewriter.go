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

package conv

import (
    `fmt`

    `github.com/cloudwego/syclconv/internal/ir`
)

// Rewriter is the builder handed to patterns. It tracks every operation the
// patterns create or erase so the driver knows whether progress was made.
type Rewriter struct {
    *ir.Builder
    TypeConverter *TypeConverter
    created       int
    erased        int
}

func newRewriter(tc *TypeConverter) *Rewriter {
    rw := &Rewriter {
        Builder       : ir.NewBuilder(),
        TypeConverter : tc,
    }
    rw.OnInsert(func(*ir.Operation) { rw.created++ })
    return rw
}

// ReplaceOp replaces all the results of op with values and erases op.
func (self *Rewriter) ReplaceOp(op *ir.Operation, values ...*ir.Value) {
    if len(values) != op.NumResults() {
        panic(fmt.Sprintf("conv: replacing %d results of '%s' with %d values", op.NumResults(), op.Name, len(values)))
    }

    /* redirect all the uses */
    for i, v := range values {
        op.Result(i).ReplaceAllUsesWith(v)
    }

    /* remove the original operation */
    self.EraseOp(op)
}

// ReplaceOpWithNew creates a new operation right before op and replaces op
// with its results.
func (self *Rewriter) ReplaceOpWithNew(op *ir.Operation, name string, operands []*ir.Value, attrs map[string]ir.Attribute) *ir.Operation {
    self.SetInsertionPoint(op)
    ret := self.Create(name, operands, op.ResultTypes(), attrs)
    self.ReplaceOp(op, ret.Results()...)
    return ret
}

func (self *Rewriter) EraseOp(op *ir.Operation) {
    self.erased++
    op.Erase()
}

func (self *Rewriter) changes() int {
    return self.created + self.erased
}
