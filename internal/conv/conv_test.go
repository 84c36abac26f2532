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

package conv_test

import (
    `testing`

    `github.com/cockroachdb/errors`
    `github.com/go-logr/logr`
    `github.com/stretchr/testify/require`

    `github.com/cloudwego/syclconv/internal/conv`
    `github.com/cloudwego/syclconv/internal/dialect/arith`
    `github.com/cloudwego/syclconv/internal/dialect/builtin`
    `github.com/cloudwego/syclconv/internal/dialect/gpu`
    `github.com/cloudwego/syclconv/internal/dialect/sycl`
    `github.com/cloudwego/syclconv/internal/ir`
)

type funcPattern struct {
    root string
    fn   func(op *ir.Operation, rw *conv.Rewriter) error
}

func (self funcPattern) RootName() string {
    return self.root
}

func (self funcPattern) MatchAndRewrite(op *ir.Operation, rw *conv.Rewriter) error {
    return self.fn(op, rw)
}

func newRegion(names ...string) (*ir.Operation, *ir.Operation) {
    gm := gpu.NewModule("kernels")
    fn := builtin.NewFunc("f")
    gm.Body().Append(fn)

    /* the queries are all left unused */
    b := ir.NewBuilder()
    b.SetInsertionPoint(fn.Body().Back())
    for _, name := range names {
        sycl.Grid(b, name, ir.I32)
    }
    return gm, fn
}

func newTarget() *conv.Target {
    target := conv.NewTarget()
    target.AddLegalDialect(arith.Dialect)
    target.AddIllegalDialect(sycl.Dialect)
    return target
}

func testConfig() conv.Config {
    return conv.Config {
        MaxIterations : 8,
        Verify        : true,
        Logger        : logr.Discard(),
    }
}

// constantPattern replaces a query with the constant v.
func constantPattern(name string, v int64) conv.Pattern {
    return funcPattern {
        root: name,
        fn: func(op *ir.Operation, rw *conv.Rewriter) error {
            rw.ReplaceOp(op, arith.ConstantInt(rw.Builder, v, op.Result(0).Type()))
            return nil
        },
    }
}

func failingPattern(name string) conv.Pattern {
    return funcPattern {
        root: name,
        fn: func(op *ir.Operation, rw *conv.Rewriter) error {
            return errors.New("does not apply")
        },
    }
}

func TestTarget_Legality(t *testing.T) {
    target := conv.NewTarget()
    target.AddLegalDialect(arith.Dialect)
    target.AddIllegalDialect(sycl.Dialect)
    target.AddLegalOp(sycl.OpCast)
    target.AddDynamicallyLegalOp(arith.OpExtUI, func(op *ir.Operation) bool { return op.Result(0).Type() == ir.I64 })

    /* operation actions override dialect actions */
    b := ir.NewBuilder()
    fn := builtin.NewFunc("f")
    b.SetInsertionPoint(fn.Body().Back())
    c := arith.ConstantInt(b, 1, ir.I16)
    require.Equal(t, conv.Legal, target.Legality(c.Owner()))
    require.Equal(t, conv.Legal, target.Legality(b.Create(sycl.OpCast, []*ir.Value { c }, []ir.Type { ir.I16 }, nil)))
    require.Equal(t, conv.Illegal, target.Legality(sycl.Grid(b, sycl.OpGlobalID, ir.I32)))
    require.Equal(t, conv.Legal, target.Legality(arith.ExtUI(b, c, ir.I64).Owner()))
    require.Equal(t, conv.Illegal, target.Legality(arith.ExtUI(b, c, ir.I32).Owner()))
    require.Equal(t, conv.Unknown, target.Legality(fn))
    require.False(t, target.IsLegal(fn))
    require.Equal(t, "illegal", conv.Illegal.String())
}

func TestTypeConverter_Order(t *testing.T) {
    tc := conv.NewTypeConverter()
    tc.AddConversion(func(t ir.Type) (ir.Type, bool) { return t, true })
    tc.AddConversion(func(t ir.Type) (ir.Type, bool) {
        if _, ok := t.(ir.IndexType); ok {
            return ir.I32, true
        } else {
            return nil, false
        }
    })

    /* later conversions take precedence */
    require.Equal(t, ir.I32, tc.ConvertType(ir.Index))
    require.Equal(t, ir.I64, tc.ConvertType(ir.I64))
    require.True(t, tc.IsLegal(ir.I64))
    require.False(t, tc.IsLegal(ir.Index))
    require.Nil(t, conv.NewTypeConverter().ConvertType(ir.I32))
}

func TestPatternSet_Lookup(t *testing.T) {
    set := conv.NewPatternSet(conv.NewTypeConverter())
    set.Add(constantPattern(sycl.OpGlobalID, 1), failingPattern(sycl.OpGlobalID), constantPattern(sycl.OpLocalID, 2))
    require.Equal(t, 3, set.Len())
    require.Len(t, set.Lookup(sycl.OpGlobalID), 2)
    require.Empty(t, set.Lookup(sycl.OpCast))
}

func TestApplyPartialConversion_Success(t *testing.T) {
    gm, fn := newRegion(sycl.OpGlobalID, sycl.OpLocalID, sycl.OpGlobalID)
    set := conv.NewPatternSet(conv.NewTypeConverter())
    set.Add(failingPattern(sycl.OpGlobalID), constantPattern(sycl.OpGlobalID, 1), constantPattern(sycl.OpLocalID, 2))

    /* every query is replaced by a constant */
    require.NoError(t, conv.ApplyPartialConversion(gm, newTarget(), set, testConfig()))
    ops := fn.Body().Ops()
    require.Len(t, ops, 4)
    for _, op := range ops[:3] {
        require.Equal(t, arith.OpConstant, op.Name)
    }
    v, _ := arith.ConstantValue(ops[1])
    require.Equal(t, int64(2), v)
}

func TestApplyPartialConversion_NoProgress(t *testing.T) {
    gm, _ := newRegion(sycl.OpGlobalID, sycl.OpLocalID)
    text := ir.Print(gm)
    set := conv.NewPatternSet(conv.NewTypeConverter())
    set.Add(constantPattern(sycl.OpGlobalID, 1), failingPattern(sycl.OpLocalID))

    /* the region is left exactly as it was */
    err := conv.ApplyPartialConversion(gm, newTarget(), set, testConfig())
    require.Error(t, err)
    require.Equal(t, text, ir.Print(gm))

    /* the error names the leftover operation */
    var ce *conv.Error
    require.True(t, errors.As(err, &ce))
    require.Equal(t, "kernels", ce.Region)
    require.Equal(t, []string { "'" + sycl.OpLocalID + "'" }, ce.Illegal)
    require.Contains(t, err.Error(), "failed to legalize")
}

func TestApplyPartialConversion_InvalidResult(t *testing.T) {
    gm, _ := newRegion(sycl.OpGlobalID)
    text := ir.Print(gm)
    set := conv.NewPatternSet(conv.NewTypeConverter())

    /* the replacement has a mismatching value attribute */
    set.Add(funcPattern {
        root: sycl.OpGlobalID,
        fn: func(op *ir.Operation, rw *conv.Rewriter) error {
            rw.ReplaceOpWithNew(op, arith.OpConstant, nil, map[string]ir.Attribute {
                arith.ValueAttr: ir.IntAttr { Value: 1, Type: ir.I64 },
            })
            return nil
        },
    })

    /* verification fails, and the region is rolled back */
    err := conv.ApplyPartialConversion(gm, newTarget(), set, testConfig())
    require.Error(t, err)
    require.Equal(t, text, ir.Print(gm))
    var ve *ir.VerifyError
    require.True(t, errors.As(err, &ve))
    require.Equal(t, arith.OpConstant, ve.Op)

    /* no verification, no error */
    cfg := testConfig()
    cfg.Verify = false
    require.NoError(t, conv.ApplyPartialConversion(gm, newTarget(), set, cfg))
}

func TestApplyPartialConversion_IterationLimit(t *testing.T) {
    gm, _ := newRegion(sycl.OpGlobalID)
    set := conv.NewPatternSet(conv.NewTypeConverter())

    /* the pattern always produces another illegal query */
    set.Add(funcPattern {
        root: sycl.OpGlobalID,
        fn: func(op *ir.Operation, rw *conv.Rewriter) error {
            rw.ReplaceOpWithNew(op, sycl.OpGlobalID, nil, nil)
            return nil
        },
    })

    /* must stop at the limit */
    err := conv.ApplyPartialConversion(gm, newTarget(), set, testConfig())
    require.Error(t, err)
    require.Contains(t, err.Error(), "no fixpoint after 8 iterations")
    require.Len(t, ir.Collect(gm, func(op *ir.Operation) bool { return op.Name == sycl.OpGlobalID }), 1)
}

func TestApplyPartialConversion_UnknownOpsLeftAlone(t *testing.T) {
    gm, fn := newRegion()
    b := ir.NewBuilder()
    b.SetInsertionPoint(fn.Body().Back())
    b.Create("test.opaque", nil, []ir.Type { ir.I32 }, nil)

    /* nothing to do, and no verification of the unknown op either */
    cfg := testConfig()
    cfg.Verify = false
    require.NoError(t, conv.ApplyPartialConversion(gm, newTarget(), conv.NewPatternSet(conv.NewTypeConverter()), cfg))
    require.Len(t, fn.Body().Ops(), 2)
}
