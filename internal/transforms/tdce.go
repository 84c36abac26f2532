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

package transforms

import (
    `github.com/oleiade/lane`

    `github.com/cloudwego/syclconv/internal/ir`
)

// TDCE removes trivial dead-code such as unused constants, casts and
// builtin loads.
type TDCE struct{}

func (TDCE) Apply(root *ir.Operation) {
    q := lane.NewQueue()

    /* Phase 1: Mark all the candidates */
    for _, op := range ir.Collect(root, dead) {
        if op != root {
            q.Enqueue(op)
        }
    }

    /* Phase 2: Remove them, and revisit their operands */
    for !q.Empty() {
        op := q.Dequeue().(*ir.Operation)

        /* could have been removed already */
        if op.IsErased() || !dead(op) {
            continue
        }

        /* remove the operation */
        args := op.Operands()
        op.Erase()

        /* definitions of the operands might be dead now */
        for _, v := range args {
            if p := v.Owner(); p != nil && dead(p) {
                q.Enqueue(p)
            }
        }
    }
}

func dead(op *ir.Operation) bool {
    if !op.Removable() {
        return false
    }

    /* all results must be unused */
    for _, v := range op.Results() {
        if v.HasUses() {
            return false
        }
    }
    return true
}
