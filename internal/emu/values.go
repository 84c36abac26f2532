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

package emu

import (
    `fmt`

    `github.com/cloudwego/syclconv/internal/dialect/spirv`
    `github.com/cloudwego/syclconv/internal/ir`
)

// Aggregate is the value of an id-like or range-like operand, one 64-bit
// component per dimension.
type Aggregate []uint64

// Vector is the value of a fixed size vector.
type Vector []uint64

// Pointer is the address of a builtin input variable.
type Pointer struct {
    Name    string
    Builtin spirv.BuiltIn
    Type    ir.PointerType
}

// Builtins holds the contents of the builtin input variables. Scalar builtins
// only use the first component.
type Builtins map[spirv.BuiltIn][spirv.CompositeSize]uint64

type _Memory interface {
    size() int
    load(i int) interface{}
    store(i int, v interface{})
}

type _Buffer struct {
    cells []interface{}
}

func (self *_Buffer) size() int                  { return len(self.cells) }
func (self *_Buffer) load(i int) interface{}     { return clone(self.cells[i]) }
func (self *_Buffer) store(i int, v interface{}) { self.cells[i] = clone(v) }

// _View refers to the components of an aggregate stored in memory, starting
// at component base.
type _View struct {
    agg  Aggregate
    base int
}

func (self *_View) size() int                  { return len(self.agg) - self.base }
func (self *_View) load(i int) interface{}     { return self.agg[self.base + i] }
func (self *_View) store(i int, v interface{}) { self.agg[self.base + i] = v.(uint64) }

func clone(v interface{}) interface{} {
    switch x := v.(type) {
        case Aggregate : return append(Aggregate(nil), x...)
        case Vector    : return append(Vector(nil), x...)
        default        : return v
    }
}

func zero(t ir.Type) interface{} {
    switch v := t.(type) {
        case ir.IDType     : return make(Aggregate, v.Dims)
        case ir.RangeType  : return make(Aggregate, v.Dims)
        case ir.VectorType : return make(Vector, v.Len)
    }

    /* scalars */
    if !ir.IsIntOrIndex(t) {
        panic(fmt.Sprintf("emu: no zero value for %s", t))
    } else {
        return uint64(0)
    }
}

func width(t ir.Type) int {
    if _, ok := t.(ir.IndexType); ok {
        return 64
    } else if w, ok := ir.IntegerWidth(t); ok {
        return w
    } else {
        panic(fmt.Sprintf("emu: %s is not an integer type", t))
    }
}

func mask(v uint64, t ir.Type) uint64 {
    if w := width(t); w >= 64 {
        return v
    } else {
        return v & (1 << w - 1)
    }
}

func sext(v uint64, from ir.Type, to ir.Type) uint64 {
    s := 64 - width(from)
    return mask(uint64(int64(v << s) >> s), to)
}
