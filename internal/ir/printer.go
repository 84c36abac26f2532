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

package ir

import (
    `fmt`
    `strings`
)

type _Printer struct {
    buf   strings.Builder
    names map[*Value]int
}

// Print renders op and everything nested in it in the textual form accepted
// by Parse. Values are numbered in the order they are printed.
func Print(op *Operation) string {
    p := &_Printer { names: make(map[*Value]int) }
    p.op(op, 0)
    return p.buf.String()
}

func (self *Operation) String() string {
    return strings.TrimSuffix(Print(self), "\n")
}

func (self *_Printer) value(v *Value) string {
    if id, ok := self.names[v]; ok {
        return fmt.Sprintf("%%%d", id)
    } else {
        id = len(self.names)
        self.names[v] = id
        return fmt.Sprintf("%%%d", id)
    }
}

func (self *_Printer) values(vs []*Value) string {
    buf := make([]string, 0, len(vs))
    for _, v := range vs { buf = append(buf, self.value(v)) }
    return strings.Join(buf, ", ")
}

func types(ts []Type) string {
    buf := make([]string, 0, len(ts))
    for _, t := range ts { buf = append(buf, t.String()) }
    return strings.Join(buf, ", ")
}

func (self *_Printer) op(op *Operation, indent int) {
    pad := strings.Repeat("  ", indent)
    self.buf.WriteString(pad)

    /* result list */
    if len(op.results) != 0 {
        self.buf.WriteString(self.values(op.results))
        self.buf.WriteString(" = ")
    }

    /* name and operands */
    self.buf.WriteString(op.Name)
    self.buf.WriteString("(")
    self.buf.WriteString(self.values(op.operands))
    self.buf.WriteString(")")

    /* attribute dictionary */
    if len(op.Attrs) != 0 {
        keys := op.AttrNames()
        attrs := make([]string, 0, len(keys))
        for _, k := range keys { attrs = append(attrs, k + " = " + op.Attrs[k].String()) }
        self.buf.WriteString(" {" + strings.Join(attrs, ", ") + "}")
    }

    /* nested regions */
    if len(op.Regions) != 0 {
        self.buf.WriteString(" (")
        for i, r := range op.Regions {
            if i != 0 {
                self.buf.WriteString(", ")
            }
            self.buf.WriteString("{\n")
            for _, v := range r.block.ops { self.op(v, indent + 1) }
            self.buf.WriteString(pad + "}")
        }
        self.buf.WriteString(")")
    }

    /* type signature, omitted when there is nothing to type */
    if len(op.operands) != 0 || len(op.results) != 0 {
        self.buf.WriteString(" : (" + types(op.OperandTypes()) + ") -> ")
        if len(op.results) == 1 {
            self.buf.WriteString(op.results[0].typ.String())
        } else {
            self.buf.WriteString("(" + types(op.ResultTypes()) + ")")
        }
    }

    /* end of line */
    self.buf.WriteString("\n")
}
