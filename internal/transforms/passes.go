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

// Package transforms holds the cleanup passes run on converted IR.
package transforms

import (
    `github.com/cloudwego/syclconv/internal/ir`
)

type Pass interface {
    Apply(root *ir.Operation)
}

type PassDescriptor struct {
    Pass Pass
    Name string
}

var Passes = [...]PassDescriptor {
    { Name: "Common Sub-expression Elimination" , Pass: new(CSE) },
    { Name: "Trivial Dead Code Elimination"     , Pass: new(TDCE) },
}

// Cleanup runs every cleanup pass on root, in order.
func Cleanup(root *ir.Operation) {
    for _, p := range Passes {
        p.Pass.Apply(root)
    }
}
