/*
 * Copyright 2022 CloudWeGo Authors
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

package debug

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/syclconv"
)

const testModule = `builtin.module() ({
  gpu.module() {sym_name = "kernels"} ({
    func.func() {sym_name = "k"} ({
      %0 = sycl.local_id() : () -> !sycl.id<2>
      %1 = sycl.local_id() : () -> i32
      func.return(%0, %1) : (!sycl.id<2>, i32) -> ()
    })
  })
  gpu.module() {spirv.target_env = #spirv.target_env<index = 7>, sym_name = "bad"} ({
  })
})
`

func TestStats(t *testing.T) {
	before := GetStats()
	_, err := syclconv.ConvertString(testModule)
	require.Error(t, err)
	after := GetStats()

	/* one region converted with two rewrites and a single variable */
	require.Equal(t, 1, after.Regions.Converted-before.Regions.Converted)
	require.Equal(t, 0, after.Regions.RolledBack-before.Regions.RolledBack)
	require.Equal(t, 2, after.Patterns.Applied-before.Patterns.Applied)
	require.Equal(t, 0, after.Patterns.Failed-before.Patterns.Failed)
	require.Equal(t, 1, after.Variables-before.Variables)
}
