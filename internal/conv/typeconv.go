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
    `github.com/cloudwego/syclconv/internal/ir`
)

// TypeConverter maps source types to target types. Conversions are tried in
// reverse registration order, the first one that accepts the type wins.
type TypeConverter struct {
    fns []func(t ir.Type) (ir.Type, bool)
}

func NewTypeConverter() *TypeConverter {
    return new(TypeConverter)
}

func (self *TypeConverter) AddConversion(fn func(t ir.Type) (ir.Type, bool)) {
    self.fns = append(self.fns, fn)
}

// ConvertType converts t, returning nil if no conversion accepts it.
func (self *TypeConverter) ConvertType(t ir.Type) ir.Type {
    for i := len(self.fns) - 1; i >= 0; i-- {
        if r, ok := self.fns[i](t); ok {
            return r
        }
    }
    return nil
}

// IsLegal reports whether t is already a target type.
func (self *TypeConverter) IsLegal(t ir.Type) bool {
    return self.ConvertType(t) == t
}
