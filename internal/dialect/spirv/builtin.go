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

package spirv

import (
    `fmt`
    `sync/atomic`

    `github.com/cockroachdb/errors`

    `github.com/cloudwego/syclconv/internal/ir`
)

// BuiltIn identifies a quantity supplied by the execution environment.
type BuiltIn uint8

const (
    BuiltInGlobalOffset BuiltIn = iota
    BuiltInNumWorkgroups
    BuiltInSubgroupMaxSize
    BuiltInSubgroupLocalInvocationID
    BuiltInWorkgroupID
    BuiltInGlobalSize
    BuiltInWorkgroupSize
    BuiltInLocalInvocationID
    BuiltInGlobalInvocationID
    BuiltInSubgroupID
    BuiltInNumSubgroups
    BuiltInSubgroupSize
    _BuiltInMax
)

type _BuiltInDesc struct {
    name      string
    composite bool
}

var _BuiltIns = [...]_BuiltInDesc {
    BuiltInGlobalOffset              : { name: "GlobalOffset"             , composite: true },
    BuiltInNumWorkgroups             : { name: "NumWorkgroups"            , composite: true },
    BuiltInSubgroupMaxSize           : { name: "SubgroupMaxSize"          , composite: false },
    BuiltInSubgroupLocalInvocationID : { name: "SubgroupLocalInvocationId", composite: false },
    BuiltInWorkgroupID               : { name: "WorkgroupId"              , composite: true },
    BuiltInGlobalSize                : { name: "GlobalSize"               , composite: true },
    BuiltInWorkgroupSize             : { name: "WorkgroupSize"            , composite: true },
    BuiltInLocalInvocationID         : { name: "LocalInvocationId"        , composite: true },
    BuiltInGlobalInvocationID        : { name: "GlobalInvocationId"       , composite: true },
    BuiltInSubgroupID                : { name: "SubgroupId"               , composite: false },
    BuiltInNumSubgroups              : { name: "NumSubgroups"             , composite: false },
    BuiltInSubgroupSize              : { name: "SubgroupSize"             , composite: false },
}

// VariableCount is the number of builtin variables declared so far.
var VariableCount uint64 = 0

// CompositeSize is the number of components of a composite builtin.
const CompositeSize = 3

// BuiltIns lists every builtin in declaration order.
func BuiltIns() []BuiltIn {
    ret := make([]BuiltIn, 0, _BuiltInMax)
    for b := BuiltIn(0); b < _BuiltInMax; b++ { ret = append(ret, b) }
    return ret
}

func (self BuiltIn) valid() bool {
    return self < _BuiltInMax
}

// String returns the SPIR-V spelling of the builtin.
func (self BuiltIn) String() string {
    if !self.valid() {
        return fmt.Sprintf("BuiltIn(%d)", uint8(self))
    } else {
        return _BuiltIns[self].name
    }
}

// IsComposite reports whether the builtin is a 3-component vector.
func (self BuiltIn) IsComposite() bool {
    if !self.valid() {
        panic("spirv: invalid builtin: " + self.String())
    } else {
        return _BuiltIns[self].composite
    }
}

// VariableType is the type of the variable holding the builtin, given the
// integer type of a single component.
func (self BuiltIn) VariableType(elem ir.Type) ir.Type {
    if self.IsComposite() {
        return ir.VectorType { Len: CompositeSize, Elem: elem }
    } else {
        return elem
    }
}

// ParseBuiltIn converts the SPIR-V spelling back to a builtin.
func ParseBuiltIn(name string) (BuiltIn, bool) {
    for i, v := range _BuiltIns {
        if v.name == name {
            return BuiltIn(i), true
        }
    }
    return 0, false
}

// VariableName is the symbol name of the variable materializing a builtin.
func VariableName(b BuiltIn, prefix string, suffix string) string {
    return prefix + b.String() + suffix
}

// CheckBuiltinVariable checks that sym, a symbol named after builtin, is a
// global variable that can be loaded as the value of builtin.
func CheckBuiltinVariable(sym *ir.Operation, builtin BuiltIn) error {
    name := ir.SymbolName(sym)
    if sym.Name != OpGlobalVariable {
        return errors.Newf("symbol %s is a '%s', not a global variable", name, sym.Name)
    }

    /* must be a pointer variable */
    t, ok := sym.Attr(TypeAttr).(ir.TypeAttr)
    if !ok {
        return errors.Newf("global variable %s has no type", name)
    }

    /* shaped like the builtin */
    if p, ok := t.Type.(ir.PointerType); !ok {
        return errors.Newf("global variable %s is not a pointer: %s", name, t.Type)
    } else if !checkBuiltInType(builtin, p.Elem) {
        return errors.Newf("global variable %s of type %s cannot hold builtin %s", name, p.Elem, builtin)
    } else if bi, ok := VariableBuiltIn(sym); ok && bi != builtin {
        return errors.Newf("global variable %s is decorated with builtin %s, not %s", name, bi, builtin)
    } else {
        return nil
    }
}

// GetBuiltinVariableValue returns the value of builtin loaded right at the
// insertion point of b. The input variable is declared at most once in the
// symbol table enclosing op, and reused when it is already there.
func GetBuiltinVariableValue(op *ir.Operation, builtin BuiltIn, integerType ir.Type, b *ir.Builder, prefix string, suffix string) *ir.Value {
    name := VariableName(builtin, prefix, suffix)
    table := ir.NearestSymbolTable(op)

    /* the builtin must live in a symbol table */
    if table == nil {
        panic("spirv: no symbol table encloses " + op.Name)
    }

    /* declare the variable if not declared yet */
    gv := ir.LookupSymbol(table, name)
    if gv == nil {
        tb := ir.NewBuilder()
        tb.SetInsertionPointToStart(table.Body())
        gv = GlobalVariable(tb, name, ir.PointerType { Elem: builtin.VariableType(integerType), Storage: ir.StorageInput }, builtin)
        atomic.AddUint64(&VariableCount, 1)
    }

    /* load the value */
    return Load(b, AddressOf(b, gv))
}
