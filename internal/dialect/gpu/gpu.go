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

// Package gpu defines the kernel region container.
package gpu

import (
    `github.com/cloudwego/syclconv/internal/ir`
)

// OpModule is a self-contained unit of device code. It owns a symbol table
// and may carry a target environment descriptor attribute.
const OpModule = "gpu.module"

func init() {
    ir.Register(ir.OpDef {
        Name    : OpModule,
        Regions : 1,
        Traits  : ir.SymbolTable | ir.Symbol | ir.IsolatedFromAbove,
        Verify  : verifyModule,
    })
}

func NewModule(name string) *ir.Operation {
    return ir.NewOperation(OpModule, nil, nil, map[string]ir.Attribute { ir.SymNameAttr: ir.StringAttr(name) }, 1)
}

// Modules collects all the kernel regions under root, in traversal order.
func Modules(root *ir.Operation) []*ir.Operation {
    return ir.Collect(root, func(op *ir.Operation) bool {
        return op.Name == OpModule
    })
}

func verifyModule(op *ir.Operation) error {
    if ir.SymbolName(op) == "" {
        return ir.Errorf(op, "requires a 'sym_name' attribute")
    } else if op.NumOperands() != 0 || op.NumResults() != 0 {
        return ir.Errorf(op, "must not have operands or results")
    } else {
        return nil
    }
}
