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

package opts

import (
	"github.com/go-logr/logr"

	"github.com/cloudwego/syclconv/internal/dialect/spirv"
)

type Options struct {
	MaxIterations int
	BuiltinPrefix string
	BuiltinSuffix string
	Verify        bool
	Cleanup       bool
	Debug         bool
	Logger        logr.Logger
	TargetEnvs    map[string]spirv.TargetEnv
}

// TargetEnv returns the base target environment of the kernel region named
// region. Descriptors attached to the region itself are applied on top of it.
func (self *Options) TargetEnv(region string) spirv.TargetEnv {
	if env, ok := self.TargetEnvs[region]; ok {
		return env
	}

	/* global naming convention */
	env := spirv.DefaultTargetEnv()
	env.BuiltinPrefix = self.BuiltinPrefix
	env.BuiltinSuffix = self.BuiltinSuffix
	return env
}

func GetDefaultOptions() Options {
	return Options{
		MaxIterations: MaxIterations,
		BuiltinPrefix: BuiltinPrefix,
		BuiltinSuffix: BuiltinSuffix,
		Verify:        true,
		Cleanup:       false,
		Debug:         Debug,
		Logger:        logr.Discard(),
	}
}
