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

import (
    `sort`
)

type Trait uint32

const (
    // Pure operations have no side effects and may be removed when unused.
    Pure Trait = 1 << iota

    // Terminator operations must be the last operation of their block.
    Terminator

    // IsolatedFromAbove regions may not use values defined outside.
    IsolatedFromAbove

    // SymbolTable operations own a namespace of symbols in their body.
    SymbolTable

    // Symbol operations define a symbol through the `sym_name` attribute.
    Symbol

    // MemoryRead operations only read memory, they may be removed when
    // unused but never merged.
    MemoryRead

    // MemoryAlloc operations allocate a fresh buffer each time they run.
    MemoryAlloc
)

// Removable reports whether an unused op can be erased.
func (self *Operation) Removable() bool {
    return self.HasTrait(Pure | MemoryRead | MemoryAlloc)
}

// OpDef describes a registered operation kind.
type OpDef struct {
    Name    string
    Traits  Trait
    Regions int
    Verify  func(op *Operation) error
}

var opdefs = make(map[string]*OpDef)

// Register adds operation definitions to the global registry, it is meant
// to be called from the init function of each dialect package.
func Register(defs ...OpDef) {
    for i := range defs {
        def := defs[i]

        /* check for duplications */
        if _, ok := opdefs[def.Name]; ok {
            panic("ir: duplicated operation definition: " + def.Name)
        }

        /* add to registry */
        opdefs[def.Name] = &def
    }
}

// Lookup finds the definition of an operation kind.
func Lookup(name string) (*OpDef, bool) {
    def, ok := opdefs[name]
    return def, ok
}

// RegisteredOps lists all registered operation names of a dialect, sorted.
func RegisteredOps(dialect string) []string {
    var ret []string
    for name := range opdefs {
        if dialectOf(name) == dialect {
            ret = append(ret, name)
        }
    }
    sort.Strings(ret)
    return ret
}

func (self *Operation) HasTrait(t Trait) bool {
    if def, ok := opdefs[self.Name]; !ok {
        return false
    } else {
        return def.Traits & t != 0
    }
}

func dialectOf(name string) string {
    for i := 0; i < len(name); i++ {
        if name[i] == '.' {
            return name[:i]
        }
    }
    return ""
}
