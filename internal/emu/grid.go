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

package emu

import (
    `github.com/cloudwego/syclconv/internal/dialect/spirv`
    `github.com/cloudwego/syclconv/internal/dialect/sycl`
    `github.com/cloudwego/syclconv/internal/ir`
)

var _GridBuiltins = map[string]spirv.BuiltIn {
    sycl.OpGlobalOffset    : spirv.BuiltInGlobalOffset,
    sycl.OpNumWorkGroups   : spirv.BuiltInNumWorkgroups,
    sycl.OpSubGroupMaxSize : spirv.BuiltInSubgroupMaxSize,
    sycl.OpSubGroupLocalID : spirv.BuiltInSubgroupLocalInvocationID,
    sycl.OpWorkGroupID     : spirv.BuiltInWorkgroupID,
    sycl.OpNumWorkItems    : spirv.BuiltInGlobalSize,
    sycl.OpWorkGroupSize   : spirv.BuiltInWorkgroupSize,
    sycl.OpLocalID         : spirv.BuiltInLocalInvocationID,
    sycl.OpGlobalID        : spirv.BuiltInGlobalInvocationID,
    sycl.OpSubGroupID      : spirv.BuiltInSubgroupID,
    sycl.OpNumSubGroups    : spirv.BuiltInNumSubgroups,
    sycl.OpSubGroupSize    : spirv.BuiltInSubgroupSize,
}

// emu_sycl_grid evaluates a grid query. Builtin components are 32-bit wide,
// and hold the fastest varying dimension first, while aggregates hold it
// last.
func (self *Emulator) emu_sycl_grid(p *ir.Operation) {
    reg := self.regs[_GridBuiltins[p.Name]]
    t := p.Result(0).Type()

    /* scalar queries read the first component */
    if !ir.IsAggregate(t) {
        self.set(p, mask(mask(reg[0], ir.I32), t))
        return
    }

    /* aggregates are filled in reverse */
    n := ir.Dimensions(t)
    agg := make(Aggregate, n)

    /* zero-extend every component */
    for i := range agg {
        agg[i] = mask(reg[n - 1 - i], ir.I32)
    }

    /* the aggregate value */
    self.set(p, agg)
}
