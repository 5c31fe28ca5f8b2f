// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package output turns the int32 accumulators of a quantized matrix
// multiplication into final int32 or uint8 results.
//
// A result tile is held in a fragment and passed through an ordered list of
// stages (UniformRescale, PerChannelRescale, FixedPointRescale, BiasAdd,
// Clamp, Tanh and the narrowing SaturatingNarrow), then stored into a
// destination matrix. Every stage is bound to three fragment kinds:
//
//   - Int32x4x1 and Int32x16x1: one column of 4 or 16 rows in 128-bit
//     registers
//   - VecFragment: any shape, evaluated with width-agnostic hwy.Vec operations
//
// Int32x16x1 bindings either run the Int32x4x1 kernel four times through
// Decompose16 or, for the stages in WideOverrides, a hand-tuned kernel that
// gives the same results.
//
// Example usage:
//
//	exec, err := output.NewUint8Executor(
//	    output.UniformRescale{Offset: 10, Multiplier: 3, Shift: 4},
//	    output.Clamp{Min: 0, Max: 200},
//	)
//	if err != nil {
//	    return err
//	}
//	src := output.NewMatrixMap(acc, rows, cols, output.ColMajor)
//	dst := output.NewMatrixMap(make([]uint8, rows*cols), rows, cols, output.ColMajor)
//	exec.Unpack(src, dst, pool)
package output

//go:generate go run ../../../cmd/outputgen -output z_bindings.go -pkg output
