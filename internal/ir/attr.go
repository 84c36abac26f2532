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
    `strconv`
    `strings`
)

type Attribute interface {
    fmt.Stringer
    irattr()
}

func (IntAttr)       irattr() {}
func (StringAttr)    irattr() {}
func (SymbolRefAttr) irattr() {}
func (ArrayAttr)     irattr() {}
func (TypeAttr)      irattr() {}
func (OpaqueAttr)    irattr() {}

type IntAttr struct {
    Value int64
    Type  Type
}

func (self IntAttr) String() string {
    return fmt.Sprintf("%d : %s", self.Value, self.Type)
}

type StringAttr string

func (self StringAttr) String() string {
    return strconv.Quote(string(self))
}

type SymbolRefAttr string

func (self SymbolRefAttr) String() string {
    return "@" + string(self)
}

type ArrayAttr []int64

func (self ArrayAttr) String() string {
    buf := make([]string, 0, len(self))
    for _, v := range self { buf = append(buf, strconv.FormatInt(v, 10)) }
    return "[" + strings.Join(buf, ", ") + "]"
}

type TypeAttr struct {
    Type Type
}

func (self TypeAttr) String() string {
    return self.Type.String()
}

// OpaqueAttr is a dialect attribute kept in its textual form, it is up to
// the owning dialect to interpret the body.
type OpaqueAttr struct {
    Dialect string
    Name    string
    Body    string
}

func (self OpaqueAttr) String() string {
    return fmt.Sprintf("#%s.%s<%s>", self.Dialect, self.Name, self.Body)
}
