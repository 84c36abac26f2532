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

// Clone makes a detached deep copy of the operation. Operands defined
// outside of the operation are shared with the original.
func (self *Operation) Clone() *Operation {
    return self.clone(make(map[*Value]*Value))
}

// Restore replaces the attributes and the contents of every region of self
// with the ones of snap, a clone taken earlier. snap is emptied.
func (self *Operation) Restore(snap *Operation) {
    if snap.Name != self.Name || len(snap.Regions) != len(self.Regions) {
        panic("ir: restoring from an incompatible snapshot: " + snap.Name)
    }

    /* attributes */
    self.Attrs = snap.Attrs
    snap.Attrs = make(map[string]Attribute)

    /* move every nested operation back */
    for i, r := range self.Regions {
        for _, op := range r.block.ops {
            op.dropAllReferences()
            op.block = nil
        }

        /* take the snapshot body */
        r.block.ops = nil
        for _, op := range snap.Regions[i].block.ops {
            op.block = nil
            r.block.Append(op)
        }

        /* the snapshot no longer owns them */
        snap.Regions[i].block.ops = nil
    }
}

func (self *Operation) clone(vm map[*Value]*Value) *Operation {
    ops := make([]*Value, 0, len(self.operands))
    attrs := make(map[string]Attribute, len(self.Attrs))

    /* remap the operands */
    for _, v := range self.operands {
        if nv, ok := vm[v]; ok {
            ops = append(ops, nv)
        } else {
            ops = append(ops, v)
        }
    }

    /* attributes are immutable values, a shallow copy is enough */
    for k, v := range self.Attrs {
        attrs[k] = v
    }

    /* create the new operation */
    ret := NewOperation(self.Name, ops, self.ResultTypes(), attrs, len(self.Regions))
    for i, r := range self.results {
        vm[r] = ret.results[i]
    }

    /* clone all the nested operations */
    for i, r := range self.Regions {
        for _, op := range r.block.ops {
            ret.Regions[i].block.Append(op.clone(vm))
        }
    }
    return ret
}
