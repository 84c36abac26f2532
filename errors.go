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

package syclconv

import (
    `github.com/cloudwego/syclconv/internal/conv`
    `github.com/cloudwego/syclconv/internal/ir`
)

// SyntaxError occurs when the textual IR is malformed.
type SyntaxError = ir.SyntaxError

// VerifyError occurs when an operation violates the invariants of its kind.
type VerifyError = ir.VerifyError

// ConversionError occurs when a kernel region could not be fully lowered.
// The region is left untouched, other regions are still converted.
type ConversionError = conv.Error
