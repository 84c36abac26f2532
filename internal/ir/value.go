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

// Use is a single operand slot referring to a value.
type Use struct {
    Owner *Operation
    Index int
}

// Value is an SSA value, always defined as a result of an operation.
type Value struct {
    typ   Type
    owner *Operation
    index int
    uses  []Use
}

func (self *Value) Type() Type {
    return self.typ
}

// Owner returns the defining operation.
func (self *Value) Owner() *Operation {
    return self.owner
}

func (self *Value) ResultIndex() int {
    return self.index
}

func (self *Value) HasUses() bool {
    return len(self.uses) != 0
}

func (self *Value) NumUses() int {
    return len(self.uses)
}

// Uses returns a snapshot of the use list.
func (self *Value) Uses() []Use {
    ret := make([]Use, len(self.uses))
    copy(ret, self.uses)
    return ret
}

// ReplaceAllUsesWith redirects every use of this value to v.
func (self *Value) ReplaceAllUsesWith(v *Value) {
    if v == self {
        return
    }

    /* rewrite every operand slot */
    for _, u := range self.Uses() {
        u.Owner.SetOperand(u.Index, v)
    }
}

func (self *Value) addUse(op *Operation, i int) {
    self.uses = append(self.uses, Use { Owner: op, Index: i })
}

func (self *Value) dropUse(op *Operation, i int) {
    for j, u := range self.uses {
        if u.Owner == op && u.Index == i {
            self.uses = append(self.uses[:j], self.uses[j + 1:]...)
            return
        }
    }
    panic("ir: dropping a non-existing use")
}
