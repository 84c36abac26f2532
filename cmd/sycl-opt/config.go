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

package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"sigs.k8s.io/yaml"

	"github.com/cloudwego/syclconv"
)

// TargetEnvConfig is the YAML form of a target environment. Missing fields
// keep their default value.
type TargetEnvConfig struct {
	Version       string   `json:"version,omitempty"`
	Capabilities  []string `json:"capabilities,omitempty"`
	IndexBitwidth int      `json:"indexBitwidth,omitempty"`
	BuiltinPrefix *string  `json:"builtinPrefix,omitempty"`
	BuiltinSuffix *string  `json:"builtinSuffix,omitempty"`
}

// Config is the content of the file given with --config.
type Config struct {
	MaxIterations *int                       `json:"maxIterations,omitempty"`
	BuiltinPrefix *string                    `json:"builtinPrefix,omitempty"`
	BuiltinSuffix *string                    `json:"builtinSuffix,omitempty"`
	Verify        *bool                      `json:"verify,omitempty"`
	Cleanup       *bool                      `json:"cleanup,omitempty"`
	TargetEnvs    map[string]TargetEnvConfig `json:"targetEnvs,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return &cfg, nil
}

func (c TargetEnvConfig) targetEnv(base syclconv.TargetEnv) syclconv.TargetEnv {
	env := base
	if c.Version != "" {
		env.Version = c.Version
	}
	if c.Capabilities != nil {
		env.Capabilities = c.Capabilities
	}
	if c.IndexBitwidth != 0 {
		env.IndexBitwidth = c.IndexBitwidth
	}
	if c.BuiltinPrefix != nil {
		env.BuiltinPrefix = *c.BuiltinPrefix
	}
	if c.BuiltinSuffix != nil {
		env.BuiltinSuffix = *c.BuiltinSuffix
	}
	return env
}

// Options converts the configuration to conversion options. The global naming
// is also the base naming of the regions in TargetEnvs. The option setters
// panic on invalid values, which are reported as errors instead.
func (c *Config) Options() (ret []syclconv.Option, err error) {
	defer func() {
		if v := recover(); v != nil {
			ret, err = nil, errors.Newf("invalid options: %v", v)
		}
	}()

	if c.MaxIterations != nil {
		ret = append(ret, syclconv.WithMaxIterations(*c.MaxIterations))
	}
	if c.BuiltinPrefix != nil || c.BuiltinSuffix != nil {
		ret = append(ret, syclconv.WithBuiltinNaming(deref(c.BuiltinPrefix, syclconv.DefaultTargetEnv().BuiltinPrefix), deref(c.BuiltinSuffix, "")))
	}
	if c.Verify != nil {
		ret = append(ret, syclconv.WithVerifier(*c.Verify))
	}
	if c.Cleanup != nil {
		ret = append(ret, syclconv.WithCleanup(*c.Cleanup))
	}

	base := syclconv.DefaultTargetEnv()
	if c.BuiltinPrefix != nil {
		base.BuiltinPrefix = *c.BuiltinPrefix
	}
	if c.BuiltinSuffix != nil {
		base.BuiltinSuffix = *c.BuiltinSuffix
	}

	for name, env := range c.TargetEnvs {
		ret = append(ret, syclconv.WithTargetEnv(name, env.targetEnv(base)))
	}
	return ret, nil
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
