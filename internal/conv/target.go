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
    `fmt`

    `github.com/cloudwego/syclconv/internal/ir`
)

type Legality uint8

const (
    // Unknown operations are left alone by a partial conversion.
    Unknown Legality = iota
    Legal
    Illegal
)

func (self Legality) String() string {
    switch self {
        case Unknown : return "unknown"
        case Legal   : return "legal"
        case Illegal : return "illegal"
        default      : return fmt.Sprintf("Legality(%d)", uint8(self))
    }
}

type _Action struct {
    l  Legality
    fn func(op *ir.Operation) bool
}

func (self _Action) eval(op *ir.Operation) Legality {
    if self.fn == nil {
        return self.l
    } else if self.fn(op) {
        return Legal
    } else {
        return Illegal
    }
}

// Target declares which operations are acceptable after a conversion.
// Operation specific actions take precedence over dialect wide actions.
type Target struct {
    ops      map[string]_Action
    dialects map[string]_Action
}

func NewTarget() *Target {
    return &Target {
        ops      : make(map[string]_Action),
        dialects : make(map[string]_Action),
    }
}

func (self *Target) AddLegalDialect(names ...string) {
    for _, v := range names { self.dialects[v] = _Action { l: Legal } }
}

func (self *Target) AddIllegalDialect(names ...string) {
    for _, v := range names { self.dialects[v] = _Action { l: Illegal } }
}

func (self *Target) AddLegalOp(names ...string) {
    for _, v := range names { self.ops[v] = _Action { l: Legal } }
}

func (self *Target) AddIllegalOp(names ...string) {
    for _, v := range names { self.ops[v] = _Action { l: Illegal } }
}

// AddDynamicallyLegalDialect makes every operation of the dialect legal iff
// fn returns true for it.
func (self *Target) AddDynamicallyLegalDialect(name string, fn func(op *ir.Operation) bool) {
    self.dialects[name] = _Action { fn: fn }
}

func (self *Target) AddDynamicallyLegalOp(name string, fn func(op *ir.Operation) bool) {
    self.ops[name] = _Action { fn: fn }
}

// Legality evaluates the legality of op against this target.
func (self *Target) Legality(op *ir.Operation) Legality {
    if act, ok := self.ops[op.Name]; ok {
        return act.eval(op)
    } else if act, ok = self.dialects[op.Dialect()]; ok {
        return act.eval(op)
    } else {
        return Unknown
    }
}

// IsLegal is a shorthand for Legality(op) == Legal.
func (self *Target) IsLegal(op *ir.Operation) bool {
    return self.Legality(op) == Legal
}
