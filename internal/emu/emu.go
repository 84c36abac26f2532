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

// Package emu is a reference interpreter for kernel functions. Grid queries
// are evaluated directly from the builtin contents, which makes it possible
// to compare a function before and after lowering.
package emu

import (
    `fmt`

    `github.com/cockroachdb/errors`

    `github.com/cloudwego/syclconv/internal/dialect/arith`
    `github.com/cloudwego/syclconv/internal/dialect/builtin`
    `github.com/cloudwego/syclconv/internal/dialect/memref`
    `github.com/cloudwego/syclconv/internal/dialect/spirv`
    `github.com/cloudwego/syclconv/internal/dialect/sycl`
    `github.com/cloudwego/syclconv/internal/dialect/vector`
    `github.com/cloudwego/syclconv/internal/ir`
)

type Emulator struct {
    fn   *ir.Operation
    regs Builtins
    vals map[*ir.Value]interface{}
    rets []interface{}
}

type _Fault struct {
    op  *ir.Operation
    msg string
}

// LoadFunction prepares the function fn for execution with the builtin
// contents regs.
func LoadFunction(fn *ir.Operation, regs Builtins) *Emulator {
    if fn.Name != builtin.OpFunc {
        panic("emu: not a function: " + fn.Name)
    }
    return &Emulator {
        fn   : fn,
        regs : regs,
        vals : make(map[*ir.Value]interface{}),
    }
}

// Call runs the function named name found anywhere under root, and returns
// the operands of its return.
func Call(root *ir.Operation, name string, regs Builtins) ([]interface{}, error) {
    fns := ir.Collect(root, func(op *ir.Operation) bool {
        return op.Name == builtin.OpFunc && ir.SymbolName(op) == name
    })

    /* must be exactly one such function */
    switch len(fns) {
        case 0  : return nil, errors.Newf("emu: function @%s not found", name)
        case 1  : return LoadFunction(fns[0], regs).Run()
        default : return nil, errors.Newf("emu: ambiguous function @%s", name)
    }
}

var dispatchTab map[string]func(e *Emulator, p *ir.Operation)

func init() {
    dispatchTab = map[string]func(e *Emulator, p *ir.Operation) {
        arith.OpConstant         : (*Emulator).emu_arith_constant,
        arith.OpExtUI            : (*Emulator).emu_arith_extui,
        arith.OpExtSI            : (*Emulator).emu_arith_extsi,
        arith.OpTruncI           : (*Emulator).emu_arith_trunci,
        arith.OpIndexCast        : (*Emulator).emu_arith_extsi,
        arith.OpIndexCastUI      : (*Emulator).emu_arith_extui,
        memref.OpAlloca          : (*Emulator).emu_memref_alloca,
        memref.OpLoad            : (*Emulator).emu_memref_load,
        memref.OpStore           : (*Emulator).emu_memref_store,
        vector.OpExtract         : (*Emulator).emu_extract,
        spirv.OpAddressOf        : (*Emulator).emu_spirv_addressof,
        spirv.OpLoad             : (*Emulator).emu_spirv_load,
        spirv.OpCompositeExtract : (*Emulator).emu_extract,
        sycl.OpIDGet             : (*Emulator).emu_sycl_get,
        sycl.OpRangeGet          : (*Emulator).emu_sycl_get,
        sycl.OpCast              : (*Emulator).emu_sycl_cast,
        builtin.OpReturn         : (*Emulator).emu_func_return,
    }

    /* grid queries all share the same semantics */
    for name := range _GridBuiltins {
        dispatchTab[name] = (*Emulator).emu_sycl_grid
    }
}

// Run executes the function body and returns the operands of its return.
func (self *Emulator) Run() (ret []interface{}, err error) {
    defer func() {
        if v := recover(); v != nil {
            if f, ok := v.(_Fault); !ok {
                panic(v)
            } else {
                ret, err = nil, errors.Newf("emu: '%s': %s", f.op.Name, f.msg)
            }
        }
    }()

    /* execute every operation in order */
    for _, p := range self.fn.Body().Ops() {
        if fp, ok := dispatchTab[p.Name]; !ok {
            self.fail(p, "unsupported operation")
        } else {
            fp(self, p)
        }
    }
    return self.rets, nil
}

// Value returns the runtime value of v, after Run.
func (self *Emulator) Value(v *ir.Value) interface{} {
    return self.vals[v]
}

func (self *Emulator) fail(p *ir.Operation, format string, args ...interface{}) {
    panic(_Fault { op: p, msg: fmt.Sprintf(format, args...) })
}

func (self *Emulator) get(p *ir.Operation, i int) interface{} {
    if v, ok := self.vals[p.Operand(i)]; !ok {
        self.fail(p, "operand #%d is not defined", i)
        return nil
    } else {
        return v
    }
}

func (self *Emulator) integer(p *ir.Operation, i int) uint64 {
    if v, ok := self.get(p, i).(uint64); !ok {
        self.fail(p, "operand #%d is not an integer", i)
        return 0
    } else {
        return v
    }
}

func (self *Emulator) mem(p *ir.Operation, i int) _Memory {
    if v, ok := self.get(p, i).(_Memory); !ok {
        self.fail(p, "operand #%d is not a memory reference", i)
        return nil
    } else {
        return v
    }
}

func (self *Emulator) set(p *ir.Operation, v interface{}) {
    self.vals[p.Result(0)] = v
}

func (self *Emulator) emu_arith_constant(p *ir.Operation) {
    if v, ok := arith.ConstantValue(p); !ok {
        self.fail(p, "invalid constant")
    } else {
        self.set(p, mask(uint64(v), p.Result(0).Type()))
    }
}

func (self *Emulator) emu_arith_extui(p *ir.Operation) {
    self.set(p, mask(self.integer(p, 0), p.Result(0).Type()))
}

func (self *Emulator) emu_arith_extsi(p *ir.Operation) {
    self.set(p, sext(self.integer(p, 0), p.Operand(0).Type(), p.Result(0).Type()))
}

func (self *Emulator) emu_arith_trunci(p *ir.Operation) {
    self.set(p, mask(self.integer(p, 0), p.Result(0).Type()))
}

func (self *Emulator) emu_memref_alloca(p *ir.Operation) {
    t := p.Result(0).Type().(ir.MemRefType)
    buf := &_Buffer { cells: make([]interface{}, t.Size) }

    /* zero-initialize the buffer */
    for i := range buf.cells {
        buf.cells[i] = zero(t.Elem)
    }

    /* the buffer itself */
    self.set(p, buf)
}

func (self *Emulator) index(p *ir.Operation, m _Memory, i int) int {
    if idx := self.integer(p, i); idx >= uint64(m.size()) {
        self.fail(p, "index %d out of bounds [0, %d)", idx, m.size())
        return 0
    } else {
        return int(idx)
    }
}

func (self *Emulator) emu_memref_load(p *ir.Operation) {
    m := self.mem(p, 0)
    self.set(p, m.load(self.index(p, m, 1)))
}

func (self *Emulator) emu_memref_store(p *ir.Operation) {
    m := self.mem(p, 1)
    m.store(self.index(p, m, 2), self.get(p, 0))
}

func (self *Emulator) emu_extract(p *ir.Operation) {
    var pos ir.ArrayAttr
    if p.Name == vector.OpExtract {
        pos, _ = p.Attr(vector.PositionAttr).(ir.ArrayAttr)
    } else {
        pos, _ = p.Attr(spirv.IndicesAttr).(ir.ArrayAttr)
    }

    /* extract the component */
    if v, ok := self.get(p, 0).(Vector); !ok {
        self.fail(p, "operand is not a vector")
    } else if len(pos) != 1 || pos[0] < 0 || pos[0] >= int64(len(v)) {
        self.fail(p, "invalid position %s", pos)
    } else {
        self.set(p, v[pos[0]])
    }
}

func (self *Emulator) emu_spirv_addressof(p *ir.Operation) {
    var gv *ir.Operation
    ref, _ := p.Attr(spirv.VariableAttr).(ir.SymbolRefAttr)

    /* resolve the variable */
    if table := ir.NearestSymbolTable(self.fn); table != nil {
        gv = ir.LookupSymbol(table, string(ref))
    }

    /* must be a builtin input */
    if gv == nil {
        self.fail(p, "undefined variable %s", ref)
    } else if bi, ok := spirv.VariableBuiltIn(gv); !ok {
        self.fail(p, "%s is not a builtin variable", ref)
    } else {
        self.set(p, Pointer { Name: string(ref), Builtin: bi, Type: spirv.VariableType(gv) })
    }
}

func (self *Emulator) emu_spirv_load(p *ir.Operation) {
    ptr, ok := self.get(p, 0).(Pointer)
    if !ok {
        self.fail(p, "operand is not a pointer")
    }

    /* scalar builtins */
    reg := self.regs[ptr.Builtin]
    vt, ok := ptr.Type.Elem.(ir.VectorType)
    if !ok {
        self.set(p, mask(reg[0], ptr.Type.Elem))
        return
    }

    /* composite builtins */
    vec := make(Vector, vt.Len)
    for i := range vec { vec[i] = mask(reg[i], vt.Elem) }
    self.set(p, vec)
}

func (self *Emulator) emu_sycl_get(p *ir.Operation) {
    buf, ok := self.get(p, 0).(*_Buffer)
    if !ok || len(buf.cells) == 0 {
        self.fail(p, "operand #0 is not an aggregate buffer")
    }

    /* component view of the first aggregate */
    agg, ok := buf.cells[0].(Aggregate)
    if !ok {
        self.fail(p, "operand #0 does not hold an aggregate")
    } else if i := self.integer(p, 1); i >= uint64(len(agg)) {
        self.fail(p, "component %d out of range", i)
    } else {
        self.set(p, &_View { agg: agg, base: int(i) })
    }
}

func (self *Emulator) emu_sycl_cast(p *ir.Operation) {
    self.set(p, clone(self.get(p, 0)))
}

func (self *Emulator) emu_func_return(p *ir.Operation) {
    self.rets = self.rets[:0]
    for i := 0; i < p.NumOperands(); i++ {
        self.rets = append(self.rets, clone(self.get(p, i)))
    }
}
