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

package sycltospirv

import (
    `fmt`

    `github.com/cloudwego/syclconv/internal/dialect/spirv`
    `github.com/cloudwego/syclconv/internal/dialect/sycl`
)

type _Algorithm uint8

const (
    _AlgoND _Algorithm = iota
    _Algo1D
)

func (self _Algorithm) String() string {
    switch self {
        case _AlgoND : return "nd"
        case _Algo1D : return "1d"
        default      : return fmt.Sprintf("_Algorithm(%d)", uint8(self))
    }
}

type _GridOp struct {
    algo    _Algorithm
    builtin spirv.BuiltIn
}

var _GridOps = map[string]_GridOp {
    sycl.OpGlobalOffset    : { _AlgoND, spirv.BuiltInGlobalOffset },
    sycl.OpNumWorkGroups   : { _AlgoND, spirv.BuiltInNumWorkgroups },
    sycl.OpWorkGroupID     : { _AlgoND, spirv.BuiltInWorkgroupID },
    sycl.OpNumWorkItems    : { _AlgoND, spirv.BuiltInGlobalSize },
    sycl.OpWorkGroupSize   : { _AlgoND, spirv.BuiltInWorkgroupSize },
    sycl.OpLocalID         : { _AlgoND, spirv.BuiltInLocalInvocationID },
    sycl.OpGlobalID        : { _AlgoND, spirv.BuiltInGlobalInvocationID },
    sycl.OpSubGroupMaxSize : { _Algo1D, spirv.BuiltInSubgroupMaxSize },
    sycl.OpSubGroupLocalID : { _Algo1D, spirv.BuiltInSubgroupLocalInvocationID },
    sycl.OpSubGroupID      : { _Algo1D, spirv.BuiltInSubgroupID },
    sycl.OpNumSubGroups    : { _Algo1D, spirv.BuiltInNumSubgroups },
    sycl.OpSubGroupSize    : { _Algo1D, spirv.BuiltInSubgroupSize },
}

func init() {
    if len(_GridOps) != len(sycl.GridOps) {
        panic("sycltospirv: grid operation table is not total")
    }

    /* every grid query has exactly one rule, matching its shape */
    for name, shape := range sycl.GridOps {
        if op, ok := _GridOps[name]; !ok {
            panic("sycltospirv: no builtin for " + name)
        } else if (shape == sycl.ShapeScalar) != (op.algo == _Algo1D) {
            panic("sycltospirv: algorithm mismatch for " + name)
        } else if op.builtin.IsComposite() != (op.algo == _AlgoND) {
            panic("sycltospirv: builtin shape mismatch for " + name)
        }
    }
}

// IsHandled reports whether operations named name are lowered by the pass.
func IsHandled(name string) bool {
    _, ok := _GridOps[name]
    return ok
}

// BuiltinOf returns the builtin a grid query is lowered to.
func BuiltinOf(name string) (spirv.BuiltIn, bool) {
    op, ok := _GridOps[name]
    return op.builtin, ok
}
