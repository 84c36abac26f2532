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
)

// VerifyError occures when an operation violates a structural rule of the IR
// or the invariants of its own kind.
type VerifyError struct {
    Op     string
    Reason string
}

func (self *VerifyError) Error() string {
    return fmt.Sprintf("'%s' op %s", self.Op, self.Reason)
}

// Errorf builds a VerifyError for op.
func Errorf(op *Operation, format string, args ...interface{}) error {
    return &VerifyError {
        Op     : op.Name,
        Reason : fmt.Sprintf(format, args...),
    }
}

// Verify checks root and everything nested in it.
func Verify(root *Operation) error {
    return verifyOp(root, make(map[*Value]bool))
}

func verifyOp(op *Operation, scope map[*Value]bool) error {
    def, ok := opdefs[op.Name]
    if !ok {
        return Errorf(op, "is not registered")
    }

    /* region count is fixed per kind */
    if len(op.Regions) != def.Regions {
        return Errorf(op, "expects %d regions, got %d", def.Regions, len(op.Regions))
    }

    /* the operation specific verifier */
    if def.Verify != nil {
        if err := def.Verify(op); err != nil {
            return err
        }
    }

    /* check every nested region */
    for _, r := range op.Regions {
        var vis map[*Value]bool
        if def.Traits & IsolatedFromAbove != 0 {
            vis = make(map[*Value]bool)
        } else {
            vis = make(map[*Value]bool, len(scope))
            for v := range scope { vis[v] = true }
        }

        /* verify the block with it's own visibility */
        if err := verifyBlock(r.block, vis); err != nil {
            return err
        }
    }
    return nil
}

func verifyBlock(bb *Block, scope map[*Value]bool) error {
    for i, op := range bb.ops {
        if op.block != bb {
            return Errorf(op, "has an inconsistent parent block")
        }

        /* terminators must be the last one */
        if op.HasTrait(Terminator) && i != len(bb.ops) - 1 {
            return Errorf(op, "must be the last operation in the parent block")
        }

        /* every operand must dominate this operation */
        for j, v := range op.operands {
            if !scope[v] {
                return Errorf(op, "operand #%d does not dominate this use", j)
            }
        }

        /* verify the operation itself */
        if err := verifyOp(op, scope); err != nil {
            return err
        }

        /* the results are now visible */
        for _, v := range op.results {
            scope[v] = true
        }
    }
    return nil
}
