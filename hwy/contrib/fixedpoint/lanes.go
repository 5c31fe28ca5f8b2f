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

package fixedpoint

import "github.com/chenkaiidy/gemmlowp/hwy"

// SaturatingRoundingDoublingHighMulInt32x4 applies
// SaturatingRoundingDoublingHighMul to each lane of a and b.
func SaturatingRoundingDoublingHighMulInt32x4(a, b hwy.Int32x4) hwy.Int32x4 {
	var r hwy.Int32x4
	for i := range r {
		r[i] = SaturatingRoundingDoublingHighMul(a[i], b[i])
	}
	return r
}

// TanhInt32x4 applies Tanh to each lane, treating lanes as raw values with
// integerBits integer bits. The result lanes are raw Q0.31 values.
func TanhInt32x4(x hwy.Int32x4, integerBits int) hwy.Int32x4 {
	var r hwy.Int32x4
	for i := range r {
		r[i] = Tanh(FromRaw(x[i], integerBits)).Raw
	}
	return r
}

// SaturatingRoundingDoublingHighMulVec applies
// SaturatingRoundingDoublingHighMul lane-wise to two vectors.
func SaturatingRoundingDoublingHighMulVec(a, b hwy.Vec[int32]) hwy.Vec[int32] {
	ad, bd := a.Data(), b.Data()
	n := min(len(ad), len(bd))
	out := make([]int32, n)
	for i := range n {
		out[i] = SaturatingRoundingDoublingHighMul(ad[i], bd[i])
	}
	return hwy.FromSlice(out)
}

// TanhVec applies Tanh lane-wise, treating lanes as raw values with
// integerBits integer bits.
func TanhVec(x hwy.Vec[int32], integerBits int) hwy.Vec[int32] {
	xd := x.Data()
	out := make([]int32, len(xd))
	for i, v := range xd {
		out[i] = Tanh(FromRaw(v, integerBits)).Raw
	}
	return hwy.FromSlice(out)
}
