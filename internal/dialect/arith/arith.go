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

// Package arith defines integer constants and casts.
package arith

import (
    `github.com/cloudwego/syclconv/internal/ir`
)

const Dialect = "arith"

const (
    OpConstant    = "arith.constant"
    OpExtUI       = "arith.extui"
    OpExtSI       = "arith.extsi"
    OpTruncI      = "arith.trunci"
    OpIndexCast   = "arith.index_cast"
    OpIndexCastUI = "arith.index_castui"
)

const ValueAttr = "value"

func init() {
    ir.Register(
        ir.OpDef { Name: OpConstant   , Traits: ir.Pure, Verify: verifyConstant },
        ir.OpDef { Name: OpExtUI      , Traits: ir.Pure, Verify: verifyExt },
        ir.OpDef { Name: OpExtSI      , Traits: ir.Pure, Verify: verifyExt },
        ir.OpDef { Name: OpTruncI     , Traits: ir.Pure, Verify: verifyTrunc },
        ir.OpDef { Name: OpIndexCast  , Traits: ir.Pure, Verify: verifyIndexCast },
        ir.OpDef { Name: OpIndexCastUI, Traits: ir.Pure, Verify: verifyIndexCast },
    )
}

func ConstantInt(b *ir.Builder, v int64, t ir.Type) *ir.Value {
    return b.Create(OpConstant, nil, []ir.Type { t }, map[string]ir.Attribute {
        ValueAttr: ir.IntAttr { Value: v, Type: t },
    }).Result(0)
}

func ConstantIndex(b *ir.Builder, v int64) *ir.Value {
    return ConstantInt(b, v, ir.Index)
}

// ConstantValue returns the value of a constant op.
func ConstantValue(op *ir.Operation) (int64, bool) {
    if op.Name != OpConstant {
        return 0, false
    } else if v, ok := op.Attr(ValueAttr).(ir.IntAttr); !ok {
        return 0, false
    } else {
        return v.Value, true
    }
}

func cast(b *ir.Builder, name string, v *ir.Value, t ir.Type) *ir.Value {
    return b.Create(name, []*ir.Value { v }, []ir.Type { t }, nil).Result(0)
}

func ExtUI(b *ir.Builder, v *ir.Value, t ir.Type) *ir.Value {
    return cast(b, OpExtUI, v, t)
}

func ExtSI(b *ir.Builder, v *ir.Value, t ir.Type) *ir.Value {
    return cast(b, OpExtSI, v, t)
}

func TruncI(b *ir.Builder, v *ir.Value, t ir.Type) *ir.Value {
    return cast(b, OpTruncI, v, t)
}

func IndexCast(b *ir.Builder, v *ir.Value, t ir.Type, unsigned bool) *ir.Value {
    if unsigned {
        return cast(b, OpIndexCastUI, v, t)
    } else {
        return cast(b, OpIndexCast, v, t)
    }
}

// ConvertScalarToDtype converts an integer or index value to type t, emitting
// nothing when the types already match.
func ConvertScalarToDtype(b *ir.Builder, v *ir.Value, t ir.Type, unsigned bool) *ir.Value {
    src := v.Type()
    if src == t {
        return v
    }

    /* index casts */
    if _, ok := src.(ir.IndexType); ok {
        return IndexCast(b, v, t, unsigned)
    } else if _, ok = t.(ir.IndexType); ok {
        return IndexCast(b, v, t, unsigned)
    }

    /* integer casts */
    sw, ok1 := ir.IntegerWidth(src)
    dw, ok2 := ir.IntegerWidth(t)
    switch {
        case !ok1 || !ok2 : panic("arith: unsupported scalar conversion from " + src.String() + " to " + t.String())
        case sw > dw      : return TruncI(b, v, t)
        case unsigned     : return ExtUI(b, v, t)
        default           : return ExtSI(b, v, t)
    }
}

func verifyConstant(op *ir.Operation) error {
    if op.NumOperands() != 0 || op.NumResults() != 1 {
        return ir.Errorf(op, "expects no operands and one result")
    }

    /* the value attribute */
    v, ok := op.Attr(ValueAttr).(ir.IntAttr)
    if !ok {
        return ir.Errorf(op, "requires an integer 'value' attribute")
    }

    /* value type must match the result type */
    if t := op.Result(0).Type(); !ir.IsIntOrIndex(t) {
        return ir.Errorf(op, "result #0 must be integer or index, got %s", t)
    } else if v.Type != t {
        return ir.Errorf(op, "value type %s does not match result type %s", v.Type, t)
    } else {
        return nil
    }
}

func unaryWidths(op *ir.Operation) (int, int, error) {
    if op.NumOperands() != 1 || op.NumResults() != 1 {
        return 0, 0, ir.Errorf(op, "expects one operand and one result")
    }

    /* both sides are integers */
    sw, ok1 := ir.IntegerWidth(op.Operand(0).Type())
    dw, ok2 := ir.IntegerWidth(op.Result(0).Type())
    if !ok1 || !ok2 {
        return 0, 0, ir.Errorf(op, "operand and result must be integers")
    } else {
        return sw, dw, nil
    }
}

func verifyExt(op *ir.Operation) error {
    if sw, dw, err := unaryWidths(op); err != nil {
        return err
    } else if dw <= sw {
        return ir.Errorf(op, "result type i%d must be wider than operand type i%d", dw, sw)
    } else {
        return nil
    }
}

func verifyTrunc(op *ir.Operation) error {
    if sw, dw, err := unaryWidths(op); err != nil {
        return err
    } else if dw >= sw {
        return ir.Errorf(op, "result type i%d must be narrower than operand type i%d", dw, sw)
    } else {
        return nil
    }
}

func verifyIndexCast(op *ir.Operation) error {
    if op.NumOperands() != 1 || op.NumResults() != 1 {
        return ir.Errorf(op, "expects one operand and one result")
    }

    /* exactly one side is an index */
    src, dst := op.Operand(0).Type(), op.Result(0).Type()
    _, si := src.(ir.IndexType)
    _, di := dst.(ir.IndexType)
    if !ir.IsIntOrIndex(src) || !ir.IsIntOrIndex(dst) || si == di {
        return ir.Errorf(op, "invalid cast from %s to %s", src, dst)
    } else {
        return nil
    }
}
