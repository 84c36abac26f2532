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
    `strings`
)

// Operation is a node in the IR graph. The name is fully qualified with the
// dialect namespace, e.g. "sycl.global_id".
type Operation struct {
    Name     string
    Attrs    map[string]Attribute
    Regions  []*Region
    block    *Block
    erased   bool
    operands []*Value
    results  []*Value
}

// NewOperation creates a detached operation with nregions empty regions.
func NewOperation(name string, operands []*Value, results []Type, attrs map[string]Attribute, nregions int) *Operation {
    op := &Operation {
        Name    : name,
        Attrs   : attrs,
        Regions : make([]*Region, 0, nregions),
    }

    /* attribute dictionary is never nil */
    if op.Attrs == nil {
        op.Attrs = make(map[string]Attribute)
    }

    /* add operands with use tracking */
    for i, v := range operands {
        op.operands = append(op.operands, v)
        v.addUse(op, i)
    }

    /* create all the results */
    for i, t := range results {
        op.results = append(op.results, &Value {
            typ   : t,
            owner : op,
            index : i,
        })
    }

    /* create all the regions */
    for i := 0; i < nregions; i++ {
        op.Regions = append(op.Regions, newRegion(op))
    }
    return op
}

// Dialect returns the dialect namespace of the operation.
func (self *Operation) Dialect() string {
    if i := strings.IndexByte(self.Name, '.'); i < 0 {
        return ""
    } else {
        return self.Name[:i]
    }
}

func (self *Operation) NumOperands() int {
    return len(self.operands)
}

func (self *Operation) Operand(i int) *Value {
    return self.operands[i]
}

func (self *Operation) Operands() []*Value {
    ret := make([]*Value, len(self.operands))
    copy(ret, self.operands)
    return ret
}

func (self *Operation) SetOperand(i int, v *Value) {
    self.operands[i].dropUse(self, i)
    self.operands[i] = v
    v.addUse(self, i)
}

func (self *Operation) NumResults() int {
    return len(self.results)
}

func (self *Operation) Result(i int) *Value {
    return self.results[i]
}

func (self *Operation) Results() []*Value {
    ret := make([]*Value, len(self.results))
    copy(ret, self.results)
    return ret
}

// ResultTypes returns the types of all results, in order.
func (self *Operation) ResultTypes() []Type {
    ret := make([]Type, 0, len(self.results))
    for _, v := range self.results { ret = append(ret, v.typ) }
    return ret
}

func (self *Operation) OperandTypes() []Type {
    ret := make([]Type, 0, len(self.operands))
    for _, v := range self.operands { ret = append(ret, v.typ) }
    return ret
}

func (self *Operation) Attr(name string) Attribute {
    return self.Attrs[name]
}

func (self *Operation) SetAttr(name string, attr Attribute) {
    self.Attrs[name] = attr
}

// AttrNames returns the attribute names in sorted order.
func (self *Operation) AttrNames() []string {
    ret := make([]string, 0, len(self.Attrs))
    for k := range self.Attrs { ret = append(ret, k) }
    sort.Strings(ret)
    return ret
}

// Body returns the only block of the first region.
func (self *Operation) Body() *Block {
    return self.Regions[0].block
}

func (self *Operation) Block() *Block {
    return self.block
}

// ParentOp returns the operation owning the region this operation lives in.
func (self *Operation) ParentOp() *Operation {
    if self.block == nil {
        return nil
    } else {
        return self.block.parent.parent
    }
}

// IsProperAncestor reports whether other is nested somewhere inside self.
func (self *Operation) IsProperAncestor(other *Operation) bool {
    for p := other.ParentOp(); p != nil; p = p.ParentOp() {
        if p == self {
            return true
        }
    }
    return false
}

func (self *Operation) IsErased() bool {
    return self.erased
}

// Erase removes the operation from its block and drops all operand uses,
// including the ones of nested operations. The results must be unused.
func (self *Operation) Erase() {
    for _, r := range self.results {
        if r.HasUses() {
            panic("ir: erasing operation with live results: " + self.Name)
        }
    }

    /* unlink from the parent block */
    if self.block != nil {
        self.block.remove(self)
    }

    /* release all the operands recursively */
    self.dropAllReferences()
}

func (self *Operation) dropAllReferences() {
    for i, v := range self.operands {
        v.dropUse(self, i)
    }

    /* nested operations are erased along with their parent */
    for _, r := range self.Regions {
        for _, op := range r.block.ops {
            op.dropAllReferences()
            op.block = nil
        }
    }

    /* mark as erased */
    self.operands = nil
    self.erased = true
}

// ReplaceWith puts op at the position of self and erases self.
func (self *Operation) ReplaceWith(op *Operation) {
    if self.block == nil {
        panic("ir: replacing a detached operation")
    }
    self.block.InsertBefore(self, op)
    self.Erase()
}

// Region is a single-block region owned by an operation.
type Region struct {
    block  *Block
    parent *Operation
}

func newRegion(parent *Operation) *Region {
    r := &Region { parent: parent }
    r.block = &Block { parent: r }
    return r
}

func (self *Region) Block() *Block {
    return self.block
}

func (self *Region) ParentOp() *Operation {
    return self.parent
}

// Block is an ordered list of operations.
type Block struct {
    ops    []*Operation
    parent *Region
}

func (self *Block) Len() int {
    return len(self.ops)
}

// Ops returns a snapshot of the operations in this block.
func (self *Block) Ops() []*Operation {
    ret := make([]*Operation, len(self.ops))
    copy(ret, self.ops)
    return ret
}

func (self *Block) Front() *Operation {
    if len(self.ops) == 0 {
        return nil
    } else {
        return self.ops[0]
    }
}

func (self *Block) Back() *Operation {
    if len(self.ops) == 0 {
        return nil
    } else {
        return self.ops[len(self.ops) - 1]
    }
}

func (self *Block) ParentOp() *Operation {
    return self.parent.parent
}

// IndexOf returns the position of op in this block, or -1.
func (self *Block) IndexOf(op *Operation) int {
    for i, v := range self.ops {
        if v == op {
            return i
        }
    }
    return -1
}

func (self *Block) Append(op *Operation) {
    self.attach(op)
    self.ops = append(self.ops, op)
}

// InsertBefore inserts op right before anchor, anchor == nil means append.
func (self *Block) InsertBefore(anchor *Operation, op *Operation) {
    if anchor == nil {
        self.Append(op)
        return
    }

    /* find the anchor */
    i := self.IndexOf(anchor)
    if i < 0 {
        panic("ir: insertion anchor is not in this block: " + anchor.Name)
    }

    /* insert at the position */
    self.attach(op)
    self.ops = append(self.ops, nil)
    copy(self.ops[i + 1:], self.ops[i:])
    self.ops[i] = op
}

func (self *Block) attach(op *Operation) {
    if op.block != nil {
        panic("ir: operation is already in a block: " + op.Name)
    }
    op.block = self
}

func (self *Block) remove(op *Operation) {
    if i := self.IndexOf(op); i < 0 {
        panic("ir: operation is not in this block: " + op.Name)
    } else {
        self.ops = append(self.ops[:i], self.ops[i + 1:]...)
        op.block = nil
    }
}
