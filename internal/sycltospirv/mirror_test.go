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
    `testing`

    `github.com/stretchr/testify/require`
    `pgregory.net/rapid`
)

func TestMirrorIndex_Table(t *testing.T) {
    require.Equal(t, 0, MirrorIndex(1, 0))
    require.Equal(t, 1, MirrorIndex(2, 0))
    require.Equal(t, 0, MirrorIndex(2, 1))
    require.Equal(t, 2, MirrorIndex(3, 0))
    require.Equal(t, 1, MirrorIndex(3, 1))
    require.Equal(t, 0, MirrorIndex(3, 2))
}

func TestMirrorIndex_Involution(t *testing.T) {
    rapid.Check(t, func(t *rapid.T) {
        n := rapid.IntRange(1, 3).Draw(t, "dims")
        i := rapid.IntRange(0, n - 1).Draw(t, "index")
        j := MirrorIndex(n, i)

        /* always in range */
        if j < 0 || j >= n {
            t.Fatalf("mirror(%d, %d) = %d is out of range", n, i, j)
        }

        /* mirroring twice is the identity */
        if k := MirrorIndex(n, j); k != i {
            t.Fatalf("mirror(%d, mirror(%d, %d)) = %d", n, n, i, k)
        }

        /* the single dimension is left alone */
        if n == 1 && j != 0 {
            t.Fatalf("mirror(1, 0) = %d", j)
        }
    })
}

func TestMirrorIndex_InvalidInput(t *testing.T) {
    require.Panics(t, func() { MirrorIndex(0, 0) })
    require.Panics(t, func() { MirrorIndex(4, 0) })
    require.Panics(t, func() { MirrorIndex(-1, 0) })
    require.Panics(t, func() { MirrorIndex(1, 1) })
    require.Panics(t, func() { MirrorIndex(2, -1) })
    require.Panics(t, func() { MirrorIndex(3, 3) })
    require.Panics(t, func() { getMirror(0) })
    require.Panics(t, func() { getMirror(4) })
}
