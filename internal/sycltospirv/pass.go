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
    `github.com/cockroachdb/errors`
    `github.com/davecgh/go-spew/spew`
    `go.uber.org/multierr`

    `github.com/cloudwego/syclconv/internal/conv`
    `github.com/cloudwego/syclconv/internal/dialect/arith`
    `github.com/cloudwego/syclconv/internal/dialect/gpu`
    `github.com/cloudwego/syclconv/internal/dialect/memref`
    `github.com/cloudwego/syclconv/internal/dialect/spirv`
    `github.com/cloudwego/syclconv/internal/dialect/sycl`
    `github.com/cloudwego/syclconv/internal/dialect/vector`
    `github.com/cloudwego/syclconv/internal/ir`
    `github.com/cloudwego/syclconv/internal/opts`
)

// Pass lowers the grid queries of every kernel region to SPIR-V builtin
// variables. Regions are converted independently, a region that fails to
// convert is left untouched and reported in the returned error.
type Pass struct {
    opts opts.Options
}

func NewPass(o opts.Options) Pass {
    return Pass { opts: o }
}

// NewTarget declares the operations acceptable after the lowering: the
// scaffolding dialects, and the sycl operations that are not grid queries.
func NewTarget() *conv.Target {
    target := conv.NewTarget()
    target.AddLegalDialect(arith.Dialect, spirv.Dialect, memref.Dialect, vector.Dialect)
    target.AddDynamicallyLegalDialect(sycl.Dialect, func(op *ir.Operation) bool { return !IsHandled(op.Name) })
    return target
}

func (self Pass) Apply(root *ir.Operation) error {
    var err error
    for _, m := range gpu.Modules(root) {
        if attached(root, m) {
            err = multierr.Append(err, self.convertRegion(m))
        }
    }
    return err
}

// attached reports whether op is still nested in root. Rolling back a region
// replaces the regions nested in it with copies.
func attached(root *ir.Operation, op *ir.Operation) bool {
    for p := op; p != nil; p = p.ParentOp() {
        if p == root {
            return true
        }
    }
    return false
}

func (self Pass) convertRegion(m *ir.Operation) error {
    name := ir.SymbolName(m)
    log := self.opts.Logger.WithValues("region", name)

    /* find the target environment */
    env, err := spirv.LookupTargetEnv(m, self.opts.TargetEnv(name))
    if err != nil {
        return &conv.Error { Region: name, Cause: err }
    }

    /* patterns and legality are specific to the region */
    patterns := conv.NewPatternSet(spirv.NewTypeConverter(env))
    PopulatePatterns(patterns, env)
    log.Info("converting kernel region", "index_bitwidth", env.IndexBitwidth, "patterns", patterns.Len())

    /* run the conversion */
    err = conv.ApplyPartialConversion(m, NewTarget(), patterns, conv.Config {
        MaxIterations : self.opts.MaxIterations,
        Verify        : self.opts.Verify,
        Logger        : log,
    })

    /* dump the environment for debugging */
    if err != nil && self.opts.Debug {
        log.Info("target environment", "env", spew.Sdump(env))
    }

    /* report the result */
    if err != nil {
        log.V(1).Info("kernel region conversion failed", "reason", err.Error())
        return errors.WithStack(err)
    } else {
        log.Info("kernel region converted")
        return nil
    }
}
