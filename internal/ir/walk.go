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
    `github.com/oleiade/lane`
)

// Collect returns every operation nested in root (root included) in
// pre-order, for which pred returns true. A nil pred matches everything.
func Collect(root *Operation, pred func(op *Operation) bool) []*Operation {
    var ret []*Operation
    s := lane.NewStack()

    /* traverse the tree with DFS */
    for s.Push(root); !s.Empty(); {
        p := s.Pop().(*Operation)

        /* add to result if matches */
        if pred == nil || pred(p) {
            ret = append(ret, p)
        }

        /* push children in reverse order, so they pop in program order */
        for i := len(p.Regions) - 1; i >= 0; i-- {
            ops := p.Regions[i].block.ops
            for j := len(ops) - 1; j >= 0; j-- {
                s.Push(ops[j])
            }
        }
    }
    return ret
}

// Walk calls fn on every operation nested in root in pre-order. The set of
// operations is taken before visiting, operations erased by fn are skipped.
func Walk(root *Operation, fn func(op *Operation)) {
    for _, op := range Collect(root, nil) {
        if !op.erased {
            fn(op)
        }
    }
}
