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

package ir

const SymNameAttr = "sym_name"

// SymbolName returns the symbol defined by op, or an empty string.
func SymbolName(op *Operation) string {
    if v, ok := op.Attrs[SymNameAttr].(StringAttr); ok {
        return string(v)
    } else {
        return ""
    }
}

// NearestSymbolTable finds the closest ancestor of op (op included) that
// owns a symbol table.
func NearestSymbolTable(op *Operation) *Operation {
    for p := op; p != nil; p = p.ParentOp() {
        if p.HasTrait(SymbolTable) {
            return p
        }
    }
    return nil
}

// LookupSymbol finds the symbol named name defined directly in table.
func LookupSymbol(table *Operation, name string) *Operation {
    for _, op := range table.Body().ops {
        if SymbolName(op) == name {
            return op
        }
    }
    return nil
}
