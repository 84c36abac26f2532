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

// Package builtin defines the top-level module and the function operations.
package builtin

import (
    `github.com/cloudwego/syclconv/internal/ir`
)

const (
    OpModule = "builtin.module"
    OpFunc   = "func.func"
    OpReturn = "func.return"
)

func init() {
    ir.Register(
        ir.OpDef { Name: OpModule, Regions: 1, Traits: ir.SymbolTable | ir.IsolatedFromAbove, Verify: verifyModule },
        ir.OpDef { Name: OpFunc  , Regions: 1, Traits: ir.Symbol | ir.IsolatedFromAbove, Verify: verifyFunc },
        ir.OpDef { Name: OpReturn, Regions: 0, Traits: ir.Terminator, Verify: verifyReturn },
    )
}

// NewModule creates an empty detached module.
func NewModule() *ir.Operation {
    return ir.NewOperation(OpModule, nil, nil, nil, 1)
}

// NewFunc creates a function with a body containing only a return.
func NewFunc(name string) *ir.Operation {
    fn := ir.NewOperation(OpFunc, nil, nil, map[string]ir.Attribute { ir.SymNameAttr: ir.StringAttr(name) }, 1)
    fn.Body().Append(ir.NewOperation(OpReturn, nil, nil, nil, 0))
    return fn
}

func verifyModule(op *ir.Operation) error {
    if op.NumOperands() != 0 || op.NumResults() != 0 {
        return ir.Errorf(op, "must not have operands or results")
    } else {
        return nil
    }
}

func verifyFunc(op *ir.Operation) error {
    if ir.SymbolName(op) == "" {
        return ir.Errorf(op, "requires a 'sym_name' attribute")
    } else if op.NumOperands() != 0 || op.NumResults() != 0 {
        return ir.Errorf(op, "must not have operands or results")
    } else if term := op.Body().Back(); term == nil || term.Name != OpReturn {
        return ir.Errorf(op, "body must end with '%s'", OpReturn)
    } else {
        return nil
    }
}

func verifyReturn(op *ir.Operation) error {
    if op.NumResults() != 0 {
        return ir.Errorf(op, "must not have results")
    } else if p := op.ParentOp(); p == nil || p.Name != OpFunc {
        return ir.Errorf(op, "expects parent op '%s'", OpFunc)
    } else {
        return nil
    }
}
