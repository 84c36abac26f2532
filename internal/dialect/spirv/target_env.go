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

package spirv

import (
    `fmt`
    `strconv`
    `strings`
    `text/scanner`
    `unicode`

    `github.com/cockroachdb/errors`

    `github.com/cloudwego/syclconv/internal/ir`
)

// TargetEnvName is the name of the attribute carrying the target environment
// of a kernel region, as in `#spirv.target_env<v1.0, [Kernel], index = 64>`.
const TargetEnvName = "target_env"

// TargetEnvAttr is the attribute key the descriptor is attached under.
const TargetEnvAttr = Dialect + "." + TargetEnvName

const (
    DefaultVersion       = "v1.0"
    DefaultIndexBitwidth = 32
    DefaultBuiltinPrefix = "__spirv_BuiltIn"
    DefaultBuiltinSuffix = ""
)

// TargetEnv describes the environment a kernel region is compiled for.
type TargetEnv struct {
    Version       string
    Capabilities  []string
    IndexBitwidth int
    BuiltinPrefix string
    BuiltinSuffix string
}

func DefaultTargetEnv() TargetEnv {
    return TargetEnv {
        Version       : DefaultVersion,
        Capabilities  : []string { "Kernel" },
        IndexBitwidth : DefaultIndexBitwidth,
        BuiltinPrefix : DefaultBuiltinPrefix,
        BuiltinSuffix : DefaultBuiltinSuffix,
    }
}

// IndexType is the integer type index values are converted to.
func (self TargetEnv) IndexType() ir.IntegerType {
    return ir.IntegerType { Width: self.IndexBitwidth }
}

// Attr converts the environment back to its attribute form.
func (self TargetEnv) Attr() ir.OpaqueAttr {
    buf := []string {
        self.Version,
        "[" + strings.Join(self.Capabilities, ", ") + "]",
        "index = " + strconv.Itoa(self.IndexBitwidth),
        "prefix = " + strconv.Quote(self.BuiltinPrefix),
        "suffix = " + strconv.Quote(self.BuiltinSuffix),
    }
    return ir.OpaqueAttr {
        Dialect : Dialect,
        Name    : TargetEnvName,
        Body    : strings.Join(buf, ", "),
    }
}

// LookupTargetEnvOrDefault returns the target environment attached to op or
// its closest ancestor carrying one, or the default environment.
func LookupTargetEnvOrDefault(op *ir.Operation) (TargetEnv, error) {
    return LookupTargetEnv(op, DefaultTargetEnv())
}

// LookupTargetEnv is like LookupTargetEnvOrDefault, but items missing from
// the attribute, or the whole environment when no attribute is found, are
// taken from base.
func LookupTargetEnv(op *ir.Operation, base TargetEnv) (TargetEnv, error) {
    for p := op; p != nil; p = p.ParentOp() {
        if attr := p.Attr(TargetEnvAttr); attr != nil {
            if v, ok := attr.(ir.OpaqueAttr); !ok || v.Dialect != Dialect || v.Name != TargetEnvName {
                return TargetEnv{}, errors.Newf("'%s' op: invalid target environment attribute %s", p.Name, attr)
            } else if env, err := ParseTargetEnv(v.Body, base); err != nil {
                return TargetEnv{}, errors.Wrapf(err, "'%s' op", p.Name)
            } else {
                return env, nil
            }
        }
    }
    return base, nil
}

type _EnvParser struct {
    sc  scanner.Scanner
    tok rune
}

type _EnvError string

func isEnvIdentRune(ch rune, i int) bool {
    return ch == '_' || unicode.IsLetter(ch) || (i > 0 && (ch == '.' || unicode.IsDigit(ch)))
}

// ParseTargetEnv parses the body of a target environment attribute. Every
// item is optional, missing ones keep their value in base.
func ParseTargetEnv(body string, base TargetEnv) (ret TargetEnv, err error) {
    var p _EnvParser
    ret = base
    ret.Capabilities = append([]string(nil), base.Capabilities...)

    /* initialize the scanner */
    p.sc.Init(strings.NewReader(body))
    p.sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings
    p.sc.IsIdentRune = isEnvIdentRune
    p.sc.Error = func(_ *scanner.Scanner, msg string) { panic(_EnvError(msg)) }

    /* parse errors are raised as panics */
    defer func() {
        if v := recover(); v != nil {
            if e, ok := v.(_EnvError); !ok {
                panic(v)
            } else {
                ret, err = TargetEnv{}, errors.Newf("invalid target environment %q: %s", body, string(e))
            }
        }
    }()

    /* parse every item */
    for p.next(); p.tok != scanner.EOF; {
        p.item(&ret)
        if p.tok != scanner.EOF {
            p.expect(',')
        }
    }
    return
}

func (self *_EnvParser) next() {
    self.tok = self.sc.Scan()
}

func (self *_EnvParser) fail(format string, args ...interface{}) {
    panic(_EnvError(fmt.Sprintf("%s: ", self.sc.Position) + fmt.Sprintf(format, args...)))
}

func (self *_EnvParser) expect(tok rune) {
    if self.tok != tok {
        self.fail("expected %s, got %q", scanner.TokenString(tok), self.sc.TokenText())
    }
    self.next()
}

func (self *_EnvParser) item(env *TargetEnv) {
    switch self.tok {
        case '['            : env.Capabilities = self.capabilities()
        case scanner.Ident  : self.keyword(env)
        default             : self.fail("unexpected %q", self.sc.TokenText())
    }
}

func (self *_EnvParser) capabilities() []string {
    ret := []string{}
    self.next()

    /* empty list */
    if self.tok == ']' {
        self.next()
        return ret
    }

    /* comma separated identifiers */
    for {
        if self.tok != scanner.Ident {
            self.fail("capability expected, got %q", self.sc.TokenText())
        }

        /* add the capability */
        ret = append(ret, self.sc.TokenText())
        self.next()

        /* end of list */
        if self.tok == ']' {
            self.next()
            return ret
        }

        /* more capabilities */
        self.expect(',')
    }
}

func (self *_EnvParser) keyword(env *TargetEnv) {
    key := self.sc.TokenText()
    self.next()

    /* a bare identifier is the version */
    if self.tok != '=' {
        if len(key) < 2 || key[0] != 'v' {
            self.fail("invalid version %q", key)
        }
        env.Version = key
        return
    }

    /* key = value */
    self.next()
    switch key {
        case "index"  : env.IndexBitwidth = self.bitwidth()
        case "prefix" : env.BuiltinPrefix = self.str()
        case "suffix" : env.BuiltinSuffix = self.str()
        default       : self.fail("unknown key %q", key)
    }
}

func (self *_EnvParser) bitwidth() int {
    if self.tok != scanner.Int {
        self.fail("index bitwidth expected, got %q", self.sc.TokenText())
    }

    /* only 32-bit and 64-bit indices are supported */
    v, err := strconv.Atoi(self.sc.TokenText())
    if err != nil || (v != 32 && v != 64) {
        self.fail("unsupported index bitwidth %s", self.sc.TokenText())
    }

    /* consume the token */
    self.next()
    return v
}

func (self *_EnvParser) str() string {
    if self.tok != scanner.String {
        self.fail("string expected, got %q", self.sc.TokenText())
    }

    /* unquote the literal */
    v, err := strconv.Unquote(self.sc.TokenText())
    if err != nil {
        self.fail("invalid string %s", self.sc.TokenText())
    }

    /* consume the token */
    self.next()
    return v
}
