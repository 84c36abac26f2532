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
    `fmt`
)

// Type is the type of an SSA value. All the concrete types are comparable,
// two types are the same iff they compare equal with ==.
type Type interface {
    fmt.Stringer
    irtype()
}

func (IntegerType) irtype() {}
func (IndexType)   irtype() {}
func (IDType)      irtype() {}
func (RangeType)   irtype() {}
func (VectorType)  irtype() {}
func (MemRefType)  irtype() {}
func (PointerType) irtype() {}

type IntegerType struct {
    Width int
}

func (self IntegerType) String() string {
    return fmt.Sprintf("i%d", self.Width)
}

type IndexType struct{}

func (IndexType) String() string {
    return "index"
}

// IDType is the `sycl::id<N>` aggregate, a point in the index space.
type IDType struct {
    Dims int
}

func (self IDType) String() string {
    return fmt.Sprintf("!sycl.id<%d>", self.Dims)
}

// RangeType is the `sycl::range<N>` aggregate, an extent of the index space.
type RangeType struct {
    Dims int
}

func (self RangeType) String() string {
    return fmt.Sprintf("!sycl.range<%d>", self.Dims)
}

type VectorType struct {
    Len  int
    Elem Type
}

func (self VectorType) String() string {
    return fmt.Sprintf("vector<%dx%s>", self.Len, self.Elem)
}

// MemRefType is a one-dimensional memory reference with a static size.
type MemRefType struct {
    Size int
    Elem Type
}

func (self MemRefType) String() string {
    return fmt.Sprintf("memref<%dx%s>", self.Size, self.Elem)
}

type StorageClass string

const (
    StorageInput    StorageClass = "Input"
    StorageFunction StorageClass = "Function"
)

type PointerType struct {
    Elem    Type
    Storage StorageClass
}

func (self PointerType) String() string {
    return fmt.Sprintf("!spirv.ptr<%s, %s>", self.Elem, self.Storage)
}

var (
    I1    Type = IntegerType { 1 }
    I8    Type = IntegerType { 8 }
    I16   Type = IntegerType { 16 }
    I32   Type = IntegerType { 32 }
    I64   Type = IntegerType { 64 }
    Index Type = IndexType{}
)

// IntegerWidth returns the bit width of an integer type.
func IntegerWidth(t Type) (int, bool) {
    if v, ok := t.(IntegerType); ok {
        return v.Width, true
    } else {
        return 0, false
    }
}

// IsIntOrIndex reports whether t is a scalar integer or index type.
func IsIntOrIndex(t Type) bool {
    switch t.(type) {
        case IntegerType : return true
        case IndexType   : return true
        default          : return false
    }
}

// Dimensions returns the dimensionality of an id-like or range-like aggregate.
// Calling it with any other type is an invariant violation.
func Dimensions(t Type) int {
    switch v := t.(type) {
        case IDType    : return v.Dims
        case RangeType : return v.Dims
        default        : panic("ir: type has no dimensions: " + t.String())
    }
}

// IsAggregate reports whether t is an id-like or range-like aggregate.
func IsAggregate(t Type) bool {
    switch t.(type) {
        case IDType    : return true
        case RangeType : return true
        default        : return false
    }
}
