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

package spirv

import (
    `github.com/cloudwego/syclconv/internal/conv`
    `github.com/cloudwego/syclconv/internal/ir`
)

// NewTypeConverter creates the type converter for env. Index values become
// integers of the index bitwidth of the environment, every other type is
// kept as is.
func NewTypeConverter(env TargetEnv) *conv.TypeConverter {
    tc := conv.NewTypeConverter()
    tc.AddConversion(func(t ir.Type) (ir.Type, bool) { return t, true })

    /* index lowering, tried first */
    tc.AddConversion(func(t ir.Type) (ir.Type, bool) {
        if _, ok := t.(ir.IndexType); !ok {
            return nil, false
        } else {
            return env.IndexType(), true
        }
    })
    return tc
}
