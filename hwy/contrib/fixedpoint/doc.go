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

// Package fixedpoint provides Q-format int32 fixed-point arithmetic with
// exact rounding and saturation.
//
// A FixedPoint value with I integer bits stores the real number
// Raw / 2^(31-I). Multiplying two values adds their integer bits, so the
// precision of a computation is tracked in the type's IntegerBits field
// rather than hidden in scaling constants.
//
// # Primitives
//
//	SaturatingRoundingDoublingHighMul(a, b)   // (a*b*2) >> 32, rounded, saturated
//	RoundingDivideByPOT(x, e)                 // x / 2^e, round half away from zero
//	SaturatingRoundingMultiplyByPOT(x, e)     // x * 2^e, saturating for e > 0
//	RoundingHalfSum(a, b)                     // (a + b) / 2, rounded
//
// # Transcendentals
//
//	ExpOnNegativeValues(a)                    // exp(a) for a <= 0, result in Q0.31
//	OneMinusXOverOnePlusXForXIn01(a)          // (1-x)/(1+x) for x in [0, 1)
//	Tanh(a)                                   // tanh(a), result in Q0.31
//
// Each primitive also has a lane-wise form over hwy.Int32x4 (the 128-bit
// register model) and over hwy.Vec[int32]. The lane-wise forms agree with
// the scalar forms bit for bit.
package fixedpoint
