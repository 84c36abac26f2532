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
	"sync/atomic"

	"github.com/cloudwego/syclconv/internal/conv"
	"github.com/cloudwego/syclconv/internal/dialect/spirv"
)

// A Stats records statistics about the conversions run so far.
type Stats struct {
	Regions   RegionStats
	Patterns  PatternStats
	Variables int
}

// A RegionStats records how many kernel regions entered the conversion
// driver, and how many of them were rolled back.
type RegionStats struct {
	Converted  int
	RolledBack int
}

// A PatternStats records the outcome of the rewrite pattern applications.
type PatternStats struct {
	Applied int
	Failed  int
}

// GetStats returns statistics of the conversions.
func GetStats() Stats {
	return Stats{
		Regions: RegionStats{
			Converted:  int(atomic.LoadUint64(&conv.RegionCount)),
			RolledBack: int(atomic.LoadUint64(&conv.RollbackCount)),
		},
		Patterns: PatternStats{
			Applied: int(atomic.LoadUint64(&conv.RewriteCount)),
			Failed:  int(atomic.LoadUint64(&conv.MatchFailCount)),
		},
		Variables: int(atomic.LoadUint64(&spirv.VariableCount)),
	}
}
