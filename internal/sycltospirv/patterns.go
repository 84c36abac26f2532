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
    `sort`

    `github.com/cockroachdb/errors`

    `github.com/cloudwego/syclconv/internal/conv`
    `github.com/cloudwego/syclconv/internal/dialect/spirv`
    `github.com/cloudwego/syclconv/internal/ir`
)

type _GridOpPattern struct {
    name string
    desc _GridOp
    env  spirv.TargetEnv
}

func (self _GridOpPattern) RootName() string {
    return self.name
}

func (self _GridOpPattern) MatchAndRewrite(op *ir.Operation, rw *conv.Rewriter) error {
    if op.Name != self.name {
        panic("sycltospirv: '" + op.Name + "' reached the pattern of '" + self.name + "'")
    }

    /* check the result type before touching anything */
    algo := self.desc.algo
    resTy := op.Result(0).Type()

    /* scalar forms of the multi-dimensional queries */
    switch {
        case ir.IsAggregate(resTy) && algo == _AlgoND : break
        case ir.IsAggregate(resTy)                    : return errors.Newf("unexpected aggregate result %s", resTy)
        case !ir.IsIntOrIndex(resTy)                  : return errors.Newf("unsupported result type %s", resTy)
        default                                       : algo = _Algo1D
    }

    /* a symbol already named after the builtin must be a usable variable */
    if table := ir.NearestSymbolTable(op); table != nil {
        if sym := ir.LookupSymbol(table, spirv.VariableName(self.desc.builtin, self.env.BuiltinPrefix, self.env.BuiltinSuffix)); sym != nil {
            if err := spirv.CheckBuiltinVariable(sym, self.desc.builtin); err != nil {
                return err
            }
        }
    }

    /* lower the operation */
    _Rewrites[algo](op, self.desc.builtin, self.env, rw)
    return nil
}

// PopulatePatterns adds one rewrite pattern per grid query to set. Builtin
// variables are named after env.
func PopulatePatterns(set *conv.PatternSet, env spirv.TargetEnv) {
    names := make([]string, 0, len(_GridOps))
    for name := range _GridOps {
        names = append(names, name)
    }

    /* deterministic pattern order */
    sort.Strings(names)
    for _, name := range names {
        set.Add(_GridOpPattern {
            name : name,
            desc : _GridOps[name],
            env  : env,
        })
    }
}
