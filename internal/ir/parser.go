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
    `strconv`
    `strings`
    `text/scanner`
    `unicode`
)

// SyntaxError occures when failed to parse the textual IR.
type SyntaxError struct {
    Pos    int
    Line   int
    Src    string
    Reason string
}

func (self SyntaxError) Error() string {
    return fmt.Sprintf("Syntax error at line %d (position %d): %s", self.Line, self.Pos, self.Reason)
}

type _Parser struct {
    s   scanner.Scanner
    src string
    tok rune
    val map[string]*Value
}

// Parse parses exactly one top-level operation from src.
func Parse(src string) (ret *Operation, err error) {
    p := &_Parser {
        src: src,
        val: make(map[string]*Value),
    }

    /* syntax errors are raised as panics */
    defer func() {
        if v := recover(); v != nil {
            if e, ok := v.(SyntaxError); ok {
                ret, err = nil, e
            } else {
                panic(v)
            }
        }
    }()

    /* initialize the scanner */
    p.s.Init(strings.NewReader(src))
    p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
    p.s.IsIdentRune = isIdentRune
    p.s.Error = func(s *scanner.Scanner, msg string) { p.fail(msg) }
    p.next()

    /* exactly one operation at the top level */
    ret = p.op()
    if p.tok != scanner.EOF {
        p.fail("unexpected trailing token " + strconv.Quote(p.s.TokenText()))
    }
    return
}

func isIdentRune(ch rune, i int) bool {
    if ch == '_' || unicode.IsLetter(ch) {
        return true
    } else {
        return i > 0 && (ch == '.' || ch == '$' || unicode.IsDigit(ch))
    }
}

func (self *_Parser) fail(reason string) {
    panic(SyntaxError {
        Pos    : self.s.Position.Offset,
        Line   : self.s.Position.Line,
        Src    : self.src,
        Reason : reason,
    })
}

func (self *_Parser) next() {
    self.tok = self.s.Scan()
}

func (self *_Parser) text() string {
    return self.s.TokenText()
}

func (self *_Parser) expect(tok rune) {
    if self.tok != tok {
        self.fail(fmt.Sprintf("expected %s, got %s", scanner.TokenString(tok), strconv.Quote(self.text())))
    }
    self.next()
}

func (self *_Parser) accept(tok rune) bool {
    if self.tok != tok {
        return false
    } else {
        self.next()
        return true
    }
}

func (self *_Parser) ident() string {
    if self.tok != scanner.Ident {
        self.fail("expected identifier, got " + strconv.Quote(self.text()))
    }
    ret := self.text()
    self.next()
    return ret
}

func (self *_Parser) integer() int64 {
    neg := self.accept('-')
    if self.tok != scanner.Int {
        self.fail("expected integer, got " + strconv.Quote(self.text()))
    }

    /* parse the integer */
    v, err := strconv.ParseInt(self.text(), 0, 64)
    if err != nil {
        self.fail("invalid integer: " + err.Error())
    }

    /* apply the sign */
    self.next()
    if neg {
        return -v
    } else {
        return v
    }
}

func (self *_Parser) valueName() string {
    self.expect('%')
    switch self.tok {
        case scanner.Int   : fallthrough
        case scanner.Ident : s := self.text(); self.next(); return s
        default            : self.fail("invalid value name"); return ""
    }
}

func (self *_Parser) op() *Operation {
    var defs []string
    var uses []*Value
    var regs [][]*Operation
    var tins []Type
    var touts []Type

    /* result list */
    if self.tok == '%' {
        for defs = append(defs, self.valueName()); self.accept(','); {
            defs = append(defs, self.valueName())
        }
        self.expect('=')
    }

    /* operation name */
    name := self.ident()
    if !strings.Contains(name, ".") {
        self.fail("operation name must be qualified with a dialect: " + name)
    }

    /* operand list */
    self.expect('(')
    for self.tok != ')' {
        if len(uses) != 0 {
            self.expect(',')
        }
        id := self.valueName()
        if v, ok := self.val[id]; !ok {
            self.fail("use of undefined value %" + id)
        } else {
            uses = append(uses, v)
        }
    }
    self.next()

    /* attribute dictionary */
    attrs := make(map[string]Attribute)
    if self.accept('{') {
        for self.tok != '}' {
            if len(attrs) != 0 {
                self.expect(',')
            }
            key := self.ident()
            self.expect('=')
            attrs[key] = self.attr()
        }
        self.next()
    }

    /* regions */
    if self.accept('(') {
        for regs = append(regs, self.region()); self.accept(','); {
            regs = append(regs, self.region())
        }
        self.expect(')')
    }

    /* type signature */
    if self.accept(':') {
        tins = self.typeList()
        self.expect('-')
        self.expect('>')
        if self.tok == '(' {
            touts = self.typeList()
        } else {
            touts = []Type { self.typ() }
        }
    }

    /* check the signature against the operands and results */
    if len(tins) != len(uses) {
        self.fail(fmt.Sprintf("'%s' has %d operands but %d operand types", name, len(uses), len(tins)))
    }
    if len(touts) != len(defs) {
        self.fail(fmt.Sprintf("'%s' defines %d values but has %d result types", name, len(defs), len(touts)))
    }
    for i, v := range uses {
        if v.typ != tins[i] {
            self.fail(fmt.Sprintf("'%s' operand #%d has type %s, but %s is declared", name, i, v.typ, tins[i]))
        }
    }

    /* build the operation */
    op := NewOperation(name, uses, touts, attrs, len(regs))
    for i, ops := range regs {
        for _, v := range ops {
            op.Regions[i].block.Append(v)
        }
    }

    /* define the results */
    for i, id := range defs {
        if _, ok := self.val[id]; ok {
            self.fail("redefinition of value %" + id)
        }
        self.val[id] = op.results[i]
    }
    return op
}

func (self *_Parser) region() []*Operation {
    var ret []*Operation
    self.expect('{')
    for self.tok != '}' {
        if self.tok == scanner.EOF {
            self.fail("unexpected EOF in region")
        }
        ret = append(ret, self.op())
    }
    self.next()
    return ret
}

func (self *_Parser) typeList() []Type {
    var ret []Type
    self.expect('(')
    for self.tok != ')' {
        if len(ret) != 0 {
            self.expect(',')
        }
        ret = append(ret, self.typ())
    }
    self.next()
    return ret
}

func (self *_Parser) typ() Type {
    if self.accept('!') {
        return self.dialectType(self.ident())
    } else {
        return self.builtinType(self.ident())
    }
}

func (self *_Parser) dims() int {
    self.expect('<')
    n := self.integer()
    self.expect('>')
    if n < 1 {
        self.fail(fmt.Sprintf("invalid dimensions: %d", n))
    }
    return int(n)
}

func (self *_Parser) dialectType(name string) Type {
    switch name {
        case "sycl.id"    : return IDType { Dims: self.dims() }
        case "sycl.range" : return RangeType { Dims: self.dims() }
        case "spirv.ptr"  : return self.pointerType()
        default           : self.fail("unknown dialect type: !" + name); return nil
    }
}

func (self *_Parser) pointerType() Type {
    self.expect('<')
    elem := self.typ()
    self.expect(',')
    storage := self.ident()
    self.expect('>')
    return PointerType { Elem: elem, Storage: StorageClass(storage) }
}

func (self *_Parser) builtinType(name string) Type {
    switch name {
        case "index"  : return Index
        case "vector" : n, t := self.shaped(); return VectorType { Len: n, Elem: t }
        case "memref" : n, t := self.shaped(); return MemRefType { Size: n, Elem: t }
    }

    /* integer types */
    if len(name) > 1 && name[0] == 'i' {
        if w, err := strconv.Atoi(name[1:]); err == nil && w > 0 && w <= 64 {
            return IntegerType { Width: w }
        }
    }

    /* nothing matches */
    self.fail("unknown type: " + name)
    return nil
}

// shaped parses `<NxT>`, the scanner splits it into "N" and "xT".
func (self *_Parser) shaped() (int, Type) {
    var elem Type
    self.expect('<')

    /* the static size */
    n := self.integer()
    if n < 1 {
        self.fail(fmt.Sprintf("invalid static size: %d", n))
    }

    /* the element type, glued with the `x` separator */
    sep := self.ident()
    if sep[0] != 'x' {
        self.fail("expected 'x' in shaped type")
    } else if sep == "x" {
        elem = self.typ()
    } else {
        elem = self.builtinType(sep[1:])
    }

    /* end of shaped type */
    self.expect('>')
    return int(n), elem
}

func (self *_Parser) attr() Attribute {
    switch self.tok {
        case scanner.Int    : return self.intAttr()
        case '-'            : return self.intAttr()
        case scanner.String : return self.stringAttr()
        case '@'            : self.next(); return SymbolRefAttr(self.ident())
        case '['            : return self.arrayAttr()
        case '#'            : return self.opaqueAttr()
        default             : return TypeAttr { Type: self.typ() }
    }
}

func (self *_Parser) intAttr() Attribute {
    v := self.integer()
    if self.accept(':') {
        return IntAttr { Value: v, Type: self.typ() }
    } else {
        return IntAttr { Value: v, Type: I64 }
    }
}

func (self *_Parser) stringAttr() Attribute {
    s, err := strconv.Unquote(self.text())
    if err != nil {
        self.fail("invalid string literal: " + err.Error())
    }
    self.next()
    return StringAttr(s)
}

func (self *_Parser) arrayAttr() Attribute {
    ret := ArrayAttr{}
    self.expect('[')
    for self.tok != ']' {
        if len(ret) != 0 {
            self.expect(',')
        }
        ret = append(ret, self.integer())
    }
    self.next()
    return ret
}

// opaqueAttr keeps the body of `#dialect.name<...>` verbatim.
func (self *_Parser) opaqueAttr() Attribute {
    self.expect('#')
    name := self.ident()

    /* split the dialect namespace */
    i := strings.IndexByte(name, '.')
    if i < 0 {
        self.fail("dialect attribute must be qualified: #" + name)
    }

    /* find the matching '>' */
    if self.tok != '<' {
        self.fail("expected '<' after #" + name)
    }
    depth, start := 0, self.s.Position.Offset + 1
    for {
        switch self.tok {
            case '<'         : depth++
            case '>'         : depth--
            case scanner.EOF : self.fail("unterminated attribute #" + name)
        }
        if depth == 0 {
            break
        }
        self.next()
    }

    /* slice the raw body */
    body := self.src[start:self.s.Position.Offset]
    self.next()
    return OpaqueAttr {
        Dialect : name[:i],
        Name    : name[i + 1:],
        Body    : strings.TrimSpace(body),
    }
}
