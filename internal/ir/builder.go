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

// Builder creates operations at an insertion point. The insertion point is
// either right before an anchor operation, or the end of a block.
type Builder struct {
    block  *Block
    anchor *Operation
    hook   func(op *Operation)
}

func NewBuilder() *Builder {
    return new(Builder)
}

// OnInsert registers a callback invoked for every inserted operation.
func (self *Builder) OnInsert(fn func(op *Operation)) {
    self.hook = fn
}

// SetInsertionPoint makes new operations go right before op.
func (self *Builder) SetInsertionPoint(op *Operation) {
    if op.block == nil {
        panic("ir: insertion point on a detached operation: " + op.Name)
    }
    self.block = op.block
    self.anchor = op
}

func (self *Builder) SetInsertionPointToStart(bb *Block) {
    self.block = bb
    self.anchor = bb.Front()
}

func (self *Builder) SetInsertionPointToEnd(bb *Block) {
    self.block = bb
    self.anchor = nil
}

func (self *Builder) InsertionBlock() *Block {
    return self.block
}

// Insert places a detached operation at the insertion point.
func (self *Builder) Insert(op *Operation) *Operation {
    if self.block == nil {
        panic("ir: builder has no insertion point")
    }

    /* insert the operation */
    self.block.InsertBefore(self.anchor, op)

    /* notify the listener if any */
    if self.hook != nil {
        self.hook(op)
    }
    return op
}

// Create builds a region-less operation and inserts it.
func (self *Builder) Create(name string, operands []*Value, results []Type, attrs map[string]Attribute) *Operation {
    return self.Insert(NewOperation(name, operands, results, attrs, 0))
}
