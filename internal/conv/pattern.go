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

package conv

import (
    `github.com/cloudwego/syclconv/internal/ir`
)

// Pattern rewrites operations of a single kind. MatchAndRewrite returns
// a non-nil error when the pattern does not apply, in which case it must
// not have modified the IR.
type Pattern interface {
    RootName() string
    MatchAndRewrite(op *ir.Operation, rw *Rewriter) error
}

// PatternSet is an immutable-after-build collection of patterns, indexed by
// the name of the operation they match.
type PatternSet struct {
    TypeConverter *TypeConverter
    roots         map[string][]Pattern
    count         int
}

func NewPatternSet(tc *TypeConverter) *PatternSet {
    return &PatternSet {
        TypeConverter : tc,
        roots         : make(map[string][]Pattern),
    }
}

func (self *PatternSet) Add(patterns ...Pattern) {
    for _, p := range patterns {
        self.count++
        self.roots[p.RootName()] = append(self.roots[p.RootName()], p)
    }
}

// Lookup returns the patterns matching operations named name.
func (self *PatternSet) Lookup(name string) []Pattern {
    return self.roots[name]
}

func (self *PatternSet) Len() int {
    return self.count
}
