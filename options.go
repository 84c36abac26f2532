/*
 * Copyright 2022 CloudWeGo Authors
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

package syclconv

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/cloudwego/syclconv/internal/dialect/spirv"
	"github.com/cloudwego/syclconv/internal/opts"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// TargetEnv describes the environment a kernel region is compiled for.
type TargetEnv = spirv.TargetEnv

// DefaultTargetEnv returns the environment used for kernel regions without
// a target environment descriptor.
func DefaultTargetEnv() TargetEnv {
	return spirv.DefaultTargetEnv()
}

const (
	_SymbolChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_.$"
)

func checkSymbolPart(kind string, s string) {
	if i := strings.IndexFunc(s, func(r rune) bool { return !strings.ContainsRune(_SymbolChars, r) }); i >= 0 {
		panic(fmt.Sprintf("syclconv: invalid character %q in builtin %s: %q", s[i], kind, s))
	}
}

// WithMaxIterations sets the maximum number of rewrite rounds a kernel region
// may take before its conversion is considered as failed.
//
// Set this option to "0" disables this limit, which means rewriting until no
// more progress can be made.
//
// The default value of this option is "64".
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("syclconv: invalid max iterations: %d", n))
	} else {
		return func(o *opts.Options) { o.MaxIterations = n }
	}
}

// WithBuiltinNaming sets the naming convention of the builtin variables,
// which are named "<prefix><BuiltinName><suffix>".
//
// This option is overridden by the "prefix" and "suffix" items of a target
// environment descriptor.
//
// The default value of this option is "__spirv_BuiltIn" and "".
func WithBuiltinNaming(prefix string, suffix string) Option {
	checkSymbolPart("prefix", prefix)
	checkSymbolPart("suffix", suffix)

	/* the prefix starts the symbol name */
	if prefix != "" && !strings.ContainsRune(_SymbolChars[:52]+"_", rune(prefix[0])) {
		panic(fmt.Sprintf("syclconv: builtin prefix must start with a letter or '_': %q", prefix))
	}

	/* set the naming */
	return func(o *opts.Options) {
		o.BuiltinPrefix = prefix
		o.BuiltinSuffix = suffix
	}
}

// WithLogger sets the logger the conversion reports its progress to.
func WithLogger(log logr.Logger) Option {
	return func(o *opts.Options) { o.Logger = log }
}

// WithVerifier controls whether the IR is verified after conversion. A kernel
// region that fails verification is rolled back.
//
// The default value of this option is "true".
func WithVerifier(v bool) Option {
	return func(o *opts.Options) { o.Verify = v }
}

// WithCleanup controls whether common sub-expressions and dead code are
// eliminated after conversion.
//
// The default value of this option is "false".
func WithCleanup(v bool) Option {
	return func(o *opts.Options) { o.Cleanup = v }
}

// WithDebug dumps the target environment of the kernel regions that failed to
// convert.
//
// This value can also be configured with the `SYCLCONV_DEBUG` environment
// variable.
func WithDebug(v bool) Option {
	return func(o *opts.Options) { o.Debug = v }
}

// WithTargetEnv sets the base target environment of the kernel region named
// region. Descriptors attached to the region are applied on top of it.
func WithTargetEnv(region string, env TargetEnv) Option {
	if env.IndexBitwidth != 32 && env.IndexBitwidth != 64 {
		panic(fmt.Sprintf("syclconv: invalid index bitwidth for %s: %d", region, env.IndexBitwidth))
	}

	/* check the naming */
	checkSymbolPart("prefix", env.BuiltinPrefix)
	checkSymbolPart("suffix", env.BuiltinSuffix)

	/* add to the overrides */
	return func(o *opts.Options) {
		envs := make(map[string]spirv.TargetEnv, len(o.TargetEnvs)+1)
		for k, v := range o.TargetEnvs {
			envs[k] = v
		}
		envs[region] = env
		o.TargetEnvs = envs
	}
}

// SetMaxIterations sets the default maximum rewrite rounds for all
// conversions from now on.
//
// This value can also be configured with the `SYCLCONV_MAX_ITERATIONS`
// environment variable. "0" disables the limit.
//
// The default value of this option is "64".
//
// Returns the old opts.MaxIterations value.
func SetMaxIterations(n int) int {
	n, opts.MaxIterations = opts.MaxIterations, n
	return n
}
