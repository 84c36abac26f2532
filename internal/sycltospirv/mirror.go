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
)

// MirrorIndex maps component index of a dims-dimensional aggregate to the
// component of the builtin vector holding it. Aggregates store the fastest
// varying dimension last, builtins store it first.
func MirrorIndex(dims int, index int) int {
    if dims < 1 || dims > 3 {
        panic(fmt.Sprintf("mirror: invalid number of dimensions: %d", dims))
    } else if index < 0 || index >= dims {
        panic(fmt.Sprintf("mirror: index %d out of range for %d dimensions", index, dims))
    }

    /* reverse the components */
    switch dims {
        case 1  : return 0
        case 2  : return 1 - index
        default : return 2 - index
    }
}

// getMirror binds the mirroring to a fixed number of dimensions.
func getMirror(dims int) func(index int) int {
    switch dims {
        case 1, 2, 3 : return func(index int) int { return MirrorIndex(dims, index) }
        default      : panic(fmt.Sprintf("mirror: invalid number of dimensions: %d", dims))
    }
}
