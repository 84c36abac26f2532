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
    `fmt`
    `strings`

    `github.com/cloudwego/syclconv/internal/ir`
)

func vid(op *ir.Operation) string {
    var sb strings.Builder
    sb.WriteString("(" + op.Name)

    /* operands are identified by their address */
    for _, v := range op.Operands() {
        fmt.Fprintf(&sb, " %p", v)
    }

    /* attributes, sorted by name */
    for _, k := range op.AttrNames() {
        fmt.Fprintf(&sb, " %s=%s", k, op.Attr(k))
    }

    /* result types */
    for _, t := range op.ResultTypes() {
        fmt.Fprintf(&sb, " : %s", t)
    }

    /* build the value ID */
    sb.WriteString(")")
    return sb.String()
}

func eligible(op *ir.Operation) bool {
    return op.HasTrait(ir.Pure) && len(op.Regions) == 0 && op.NumResults() != 0
}

// CSE performs the Common Sub-expression Elimination optimization on the
// pure operations of every block.
type CSE struct{}

func (CSE) Apply(root *ir.Operation) {
    for {
        done := true

        /* eliminate in every block */
        ir.Walk(root, func(op *ir.Operation) {
            for _, r := range op.Regions {
                if cseBlock(r.Block()) {
                    done = false
                }
            }
        })

        /* no modifications in this round */
        if done {
            break
        }
    }
}

func cseBlock(bb *ir.Block) bool {
    ret := false
    vals := make(map[string]*ir.Operation)

    /* replace all the values with same VID with the first occurance */
    for _, op := range bb.Ops() {
        if !eligible(op) {
            continue
        }

        /* add to definitions if not found */
        id := vid(op)
        prev, ok := vals[id]
        if !ok {
            vals[id] = op
            continue
        }

        /* redirect the uses and remove the duplicate */
        for i, v := range op.Results() {
            v.ReplaceAllUsesWith(prev.Result(i))
        }

        /* the op is now dead */
        op.Erase()
        ret = true
    }
    return ret
}
