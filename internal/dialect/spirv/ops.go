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

// Package spirv defines the subset of the SPIR-V dialect the grid queries
// are lowered to: builtin input variables, their addresses, loads and
// component extraction.
package spirv

import (
    `github.com/cloudwego/syclconv/internal/ir`
)

const Dialect = "spirv"

const (
    OpGlobalVariable   = "spirv.GlobalVariable"
    OpAddressOf        = "spirv.mlir.addressof"
    OpLoad             = "spirv.Load"
    OpCompositeExtract = "spirv.CompositeExtract"
)

const (
    TypeAttr     = "type"
    BuiltInAttr  = "built_in"
    VariableAttr = "variable"
    IndicesAttr  = "indices"
)

func init() {
    ir.Register(
        ir.OpDef { Name: OpGlobalVariable  , Traits: ir.Symbol, Verify: verifyGlobalVariable },
        ir.OpDef { Name: OpAddressOf       , Traits: ir.Pure  , Verify: verifyAddressOf },
        ir.OpDef { Name: OpLoad            , Traits: ir.Pure  , Verify: verifyLoad },
        ir.OpDef { Name: OpCompositeExtract, Traits: ir.Pure  , Verify: verifyCompositeExtract },
    )
}

// GlobalVariable declares the input variable name decorated with builtin.
func GlobalVariable(b *ir.Builder, name string, t ir.PointerType, builtin BuiltIn) *ir.Operation {
    return b.Create(OpGlobalVariable, nil, nil, map[string]ir.Attribute {
        ir.SymNameAttr : ir.StringAttr(name),
        TypeAttr       : ir.TypeAttr { Type: t },
        BuiltInAttr    : ir.StringAttr(builtin.String()),
    })
}

// VariableType returns the pointer type declared by a global variable.
func VariableType(gv *ir.Operation) ir.PointerType {
    if v, ok := gv.Attr(TypeAttr).(ir.TypeAttr); !ok {
        panic("spirv: global variable without a type: " + ir.SymbolName(gv))
    } else if p, ok := v.Type.(ir.PointerType); !ok {
        panic("spirv: global variable of non-pointer type: " + ir.SymbolName(gv))
    } else {
        return p
    }
}

// VariableBuiltIn returns the builtin decorating a global variable.
func VariableBuiltIn(gv *ir.Operation) (BuiltIn, bool) {
    if v, ok := gv.Attr(BuiltInAttr).(ir.StringAttr); !ok {
        return 0, false
    } else {
        return ParseBuiltIn(string(v))
    }
}

// AddressOf takes the address of the global variable gv.
func AddressOf(b *ir.Builder, gv *ir.Operation) *ir.Value {
    return b.Create(OpAddressOf, nil, []ir.Type { VariableType(gv) }, map[string]ir.Attribute {
        VariableAttr: ir.SymbolRefAttr(ir.SymbolName(gv)),
    }).Result(0)
}

func Load(b *ir.Builder, ptr *ir.Value) *ir.Value {
    t := ptr.Type().(ir.PointerType)
    return b.Create(OpLoad, []*ir.Value { ptr }, []ir.Type { t.Elem }, nil).Result(0)
}

// CompositeExtract reads component index of a vector value.
func CompositeExtract(b *ir.Builder, v *ir.Value, index int64) *ir.Value {
    t := v.Type().(ir.VectorType)
    return b.Create(OpCompositeExtract, []*ir.Value { v }, []ir.Type { t.Elem }, map[string]ir.Attribute {
        IndicesAttr: ir.ArrayAttr { index },
    }).Result(0)
}

func verifyGlobalVariable(op *ir.Operation) error {
    if op.NumOperands() != 0 || op.NumResults() != 0 {
        return ir.Errorf(op, "must not have operands or results")
    } else if ir.SymbolName(op) == "" {
        return ir.Errorf(op, "requires a 'sym_name' attribute")
    }

    /* the variable type */
    t, ok := op.Attr(TypeAttr).(ir.TypeAttr)
    if !ok {
        return ir.Errorf(op, "requires a 'type' attribute")
    }

    /* must be a pointer */
    p, ok := t.Type.(ir.PointerType)
    if !ok {
        return ir.Errorf(op, "type must be a pointer, got %s", t.Type)
    }

    /* non-decorated variables need nothing more */
    if op.Attr(BuiltInAttr) == nil {
        return nil
    }

    /* builtins are input variables */
    bi, ok := VariableBuiltIn(op)
    switch {
        case !ok                           : return ir.Errorf(op, "unknown builtin %s", op.Attr(BuiltInAttr))
        case p.Storage != ir.StorageInput  : return ir.Errorf(op, "builtin %s must be in the Input storage class", bi)
        case !checkBuiltInType(bi, p.Elem) : return ir.Errorf(op, "invalid type %s for builtin %s", p.Elem, bi)
        default                            : return nil
    }
}

func checkBuiltInType(bi BuiltIn, t ir.Type) bool {
    if !bi.IsComposite() {
        _, ok := t.(ir.IntegerType)
        return ok
    } else if vt, ok := t.(ir.VectorType); !ok || vt.Len != CompositeSize {
        return false
    } else {
        _, ok = vt.Elem.(ir.IntegerType)
        return ok
    }
}

func verifyAddressOf(op *ir.Operation) error {
    if op.NumOperands() != 0 || op.NumResults() != 1 {
        return ir.Errorf(op, "expects no operands and one result")
    }

    /* the referenced symbol */
    ref, ok := op.Attr(VariableAttr).(ir.SymbolRefAttr)
    if !ok {
        return ir.Errorf(op, "requires a 'variable' symbol reference")
    }

    /* must be resolvable from the enclosing symbol table */
    var gv *ir.Operation
    if table := ir.NearestSymbolTable(op.ParentOp()); table != nil {
        gv = ir.LookupSymbol(table, string(ref))
    }

    /* check the referenced variable */
    switch {
        case gv == nil                   : return ir.Errorf(op, "undefined variable %s", ref)
        case gv.Name != OpGlobalVariable : return ir.Errorf(op, "%s does not refer to a global variable", ref)
    }

    /* the result is the address of the variable */
    if t, ok := gv.Attr(TypeAttr).(ir.TypeAttr); !ok || t.Type != op.Result(0).Type() {
        return ir.Errorf(op, "result type %s does not match the type of %s", op.Result(0).Type(), ref)
    } else {
        return nil
    }
}

func verifyLoad(op *ir.Operation) error {
    if op.NumOperands() != 1 || op.NumResults() != 1 {
        return ir.Errorf(op, "expects one operand and one result")
    } else if p, ok := op.Operand(0).Type().(ir.PointerType); !ok {
        return ir.Errorf(op, "operand must be a pointer, got %s", op.Operand(0).Type())
    } else if p.Elem != op.Result(0).Type() {
        return ir.Errorf(op, "result type %s does not match pointee type %s", op.Result(0).Type(), p.Elem)
    } else {
        return nil
    }
}

func verifyCompositeExtract(op *ir.Operation) error {
    if op.NumOperands() != 1 || op.NumResults() != 1 {
        return ir.Errorf(op, "expects one operand and one result")
    }

    /* operand must be a vector */
    t, ok := op.Operand(0).Type().(ir.VectorType)
    if !ok {
        return ir.Errorf(op, "operand must be a composite, got %s", op.Operand(0).Type())
    }

    /* a single in-bounds index */
    idx, ok := op.Attr(IndicesAttr).(ir.ArrayAttr)
    if !ok || len(idx) != 1 || idx[0] < 0 || idx[0] >= int64(t.Len) {
        return ir.Errorf(op, "requires an index within [0, %d)", t.Len)
    } else if op.Result(0).Type() != t.Elem {
        return ir.Errorf(op, "result type %s does not match component type %s", op.Result(0).Type(), t.Elem)
    } else {
        return nil
    }
}
