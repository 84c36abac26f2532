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

// Package syclconv lowers the grid queries of SYCL kernels to SPIR-V builtin
// variables.
package syclconv

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/multierr"

	_ "github.com/cloudwego/syclconv/internal/dialect/builtin"
	"github.com/cloudwego/syclconv/internal/dialect/gpu"
	"github.com/cloudwego/syclconv/internal/ir"
	"github.com/cloudwego/syclconv/internal/opts"
	"github.com/cloudwego/syclconv/internal/sycltospirv"
	"github.com/cloudwego/syclconv/internal/transforms"
)

// Module is a top-level IR operation and everything nested in it.
type Module struct {
	op *ir.Operation
}

// ParseModule parses and verifies the textual form of a module.
func ParseModule(src string) (*Module, error) {
	op, err := ir.Parse(src)
	if err != nil {
		return nil, err
	}
	if err = ir.Verify(op); err != nil {
		return nil, err
	}
	return &Module{op: op}, nil
}

// String returns the textual form of the module.
func (self *Module) String() string {
	return ir.Print(self.op)
}

// Convert lowers every kernel region of m in place. Kernel regions are
// converted independently, the returned error aggregates the failure of each
// region that could not be converted, which are left untouched.
func Convert(m *Module, options ...Option) error {
	o := opts.GetDefaultOptions()
	for _, fn := range options {
		fn(&o)
	}

	/* lower the grid queries */
	err := sycltospirv.NewPass(o).Apply(m.op)

	/* clean up the regions that were fully lowered */
	if o.Cleanup {
		for _, r := range gpu.Modules(m.op) {
			if !hasGridQueries(r) {
				transforms.Cleanup(r)
			}
		}
	}

	/* the whole module must still be valid */
	if !o.Verify {
		return err
	} else if verr := ir.Verify(m.op); verr != nil {
		return multierr.Append(err, errors.Wrap(verr, "invalid module after conversion"))
	} else {
		return err
	}
}

func hasGridQueries(root *ir.Operation) bool {
	return len(ir.Collect(root, func(op *ir.Operation) bool { return sycltospirv.IsHandled(op.Name) })) != 0
}

// ConvertString parses src, converts it and returns its textual form. The
// module is returned even when some kernel regions failed to convert.
func ConvertString(src string, options ...Option) (string, error) {
	m, err := ParseModule(src)
	if err != nil {
		return "", err
	}
	err = Convert(m, options...)
	return m.String(), err
}
