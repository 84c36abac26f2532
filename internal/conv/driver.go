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
    `fmt`
    `strings`
    `sync/atomic`

    `github.com/cockroachdb/errors`
    `github.com/go-logr/logr`

    `github.com/cloudwego/syclconv/internal/ir`
)

var (
    RegionCount    uint64 = 0
    RollbackCount  uint64 = 0
    RewriteCount   uint64 = 0
    MatchFailCount uint64 = 0
)

// Error is returned when a region could not be legalized. The region is left
// exactly as it was before the conversion started.
type Error struct {
    Region  string
    Illegal []string
    Cause   error
}

func (self *Error) Error() string {
    var buf []string
    if len(self.Illegal) != 0 {
        buf = append(buf, "failed to legalize " + strings.Join(self.Illegal, ", "))
    }
    if self.Cause != nil {
        buf = append(buf, self.Cause.Error())
    }
    return fmt.Sprintf("conversion of '%s' failed: %s", self.Region, strings.Join(buf, ": "))
}

func (self *Error) Unwrap() error {
    return self.Cause
}

// Config controls the partial conversion driver.
type Config struct {
    MaxIterations int
    Verify        bool
    Logger        logr.Logger
}

// ApplyPartialConversion rewrites every illegal operation nested in root with
// the patterns until none remains. Operations of unknown legality are left
// untouched. When an illegal operation survives, no progress is made, or the
// result fails verification, root is rolled back and an *Error is returned.
func ApplyPartialConversion(root *ir.Operation, target *Target, patterns *PatternSet, cfg Config) error {
    name := ir.SymbolName(root)
    snap := root.Clone()
    atomic.AddUint64(&RegionCount, 1)

    /* run the conversion, and roll back on failure */
    if err := applyConversion(root, target, patterns, cfg); err != nil {
        root.Restore(snap)
        atomic.AddUint64(&RollbackCount, 1)
        cfg.Logger.V(1).Info("conversion rolled back", "region", name)
        return err
    } else {
        return nil
    }
}

func illegalOps(root *ir.Operation, target *Target) []*ir.Operation {
    return ir.Collect(root, func(op *ir.Operation) bool {
        return op != root && target.Legality(op) == Illegal
    })
}

func describe(ops []*ir.Operation) []string {
    ret := make([]string, 0, len(ops))
    for _, op := range ops { ret = append(ret, "'" + op.Name + "'") }
    return ret
}

func applyConversion(root *ir.Operation, target *Target, patterns *PatternSet, cfg Config) error {
    name := ir.SymbolName(root)
    rw := newRewriter(patterns.TypeConverter)

    /* evaluate illegal operations until no modifications were made */
    for i := 0; cfg.MaxIterations <= 0 || i < cfg.MaxIterations; i++ {
        ops := illegalOps(root, target)
        done := rw.changes()

        /* everything is legal */
        if len(ops) == 0 {
            return verify(root, name, cfg)
        }

        /* try every pattern on every illegal operation */
        for _, op := range ops {
            if !op.IsErased() {
                legalize(op, patterns, rw, cfg.Logger)
            }
        }

        /* no pattern could make any progress */
        if rw.changes() == done {
            return &Error {
                Region  : name,
                Illegal : describe(illegalOps(root, target)),
            }
        }
    }

    /* still not converged */
    if ops := illegalOps(root, target); len(ops) != 0 {
        return &Error {
            Region  : name,
            Illegal : describe(ops),
            Cause   : errors.Newf("no fixpoint after %d iterations", cfg.MaxIterations),
        }
    } else {
        return verify(root, name, cfg)
    }
}

func legalize(op *ir.Operation, patterns *PatternSet, rw *Rewriter, log logr.Logger) {
    for _, p := range patterns.Lookup(op.Name) {
        rw.SetInsertionPoint(op)

        /* try to apply the pattern */
        if err := p.MatchAndRewrite(op, rw); err != nil {
            atomic.AddUint64(&MatchFailCount, 1)
            log.V(1).Info("pattern failed to match", "op", op.Name, "reason", err.Error())
            continue
        }

        /* one pattern is enough */
        atomic.AddUint64(&RewriteCount, 1)
        log.V(1).Info("operation legalized", "op", op.Name)
        return
    }
}

func verify(root *ir.Operation, name string, cfg Config) error {
    if !cfg.Verify {
        return nil
    } else if err := ir.Verify(root); err != nil {
        return &Error { Region: name, Cause: errors.Wrap(err, "invalid IR after conversion") }
    } else {
        return nil
    }
}
