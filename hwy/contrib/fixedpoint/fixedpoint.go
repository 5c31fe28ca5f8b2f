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

import (
	"fmt"
	"math"
)

// FixedPoint is an int32 fixed-point number with IntegerBits integer bits
// and 31-IntegerBits fractional bits. IntegerBits must be in [0, 31].
//
// Add and Sub wrap on overflow like the underlying int32; Mul rounds and
// saturates.
type FixedPoint struct {
	Raw         int32
	IntegerBits int
}

// FromRaw wraps a raw int32 as a fixed-point value with integerBits integer bits.
func FromRaw(raw int32, integerBits int) FixedPoint {
	return FixedPoint{Raw: raw, IntegerBits: integerBits}
}

// FromDouble returns the fixed-point value nearest to x, saturated to the
// representable range.
func FromDouble(x float64, integerBits int) FixedPoint {
	scaled := math.Round(x * math.Ldexp(1, 31-integerBits))
	scaled = max(min(scaled, math.MaxInt32), math.MinInt32)
	return FixedPoint{Raw: int32(scaled), IntegerBits: integerBits}
}

// One returns the largest representable value not exceeding 1.0. With zero
// integer bits 1.0 itself is not representable and One is MaxInt32.
func One(integerBits int) FixedPoint {
	if integerBits == 0 {
		return FixedPoint{Raw: math.MaxInt32}
	}
	return FixedPoint{Raw: 1 << uint(31-integerBits), IntegerBits: integerBits}
}

// ConstantPOT returns 2^exponent. It must be representable with integerBits.
func ConstantPOT(exponent, integerBits int) FixedPoint {
	shift := 31 - integerBits + exponent
	if shift < 0 || shift > 30 {
		panic(fmt.Sprintf("fixedpoint: 2^%d not representable with %d integer bits", exponent, integerBits))
	}
	return FixedPoint{Raw: 1 << uint(shift), IntegerBits: integerBits}
}

// FractionalBits returns 31 - IntegerBits.
func (a FixedPoint) FractionalBits() int {
	return 31 - a.IntegerBits
}

// Float64 returns the real value a represents.
func (a FixedPoint) Float64() float64 {
	return math.Ldexp(float64(a.Raw), -a.FractionalBits())
}

// Add returns a + b. Both operands must share IntegerBits.
func (a FixedPoint) Add(b FixedPoint) FixedPoint {
	return FixedPoint{Raw: a.Raw + b.Raw, IntegerBits: a.IntegerBits}
}

// Sub returns a - b. Both operands must share IntegerBits.
func (a FixedPoint) Sub(b FixedPoint) FixedPoint {
	return FixedPoint{Raw: a.Raw - b.Raw, IntegerBits: a.IntegerBits}
}

// Neg returns -a.
func (a FixedPoint) Neg() FixedPoint {
	return FixedPoint{Raw: -a.Raw, IntegerBits: a.IntegerBits}
}

// Mul returns a * b with a.IntegerBits + b.IntegerBits integer bits.
func (a FixedPoint) Mul(b FixedPoint) FixedPoint {
	return FixedPoint{
		Raw:         SaturatingRoundingDoublingHighMul(a.Raw, b.Raw),
		IntegerBits: a.IntegerBits + b.IntegerBits,
	}
}

// Rescale converts a to dstIntegerBits integer bits, rounding when bits are
// dropped and saturating when the value does not fit.
func (a FixedPoint) Rescale(dstIntegerBits int) FixedPoint {
	return FixedPoint{
		Raw:         SaturatingRoundingMultiplyByPOT(a.Raw, a.IntegerBits-dstIntegerBits),
		IntegerBits: dstIntegerBits,
	}
}

// ExactMulByPOT returns a * 2^exponent by reinterpreting the raw value with
// exponent more integer bits. No bits are lost.
func (a FixedPoint) ExactMulByPOT(exponent int) FixedPoint {
	return FixedPoint{Raw: a.Raw, IntegerBits: a.IntegerBits + exponent}
}

// String formats a as its real value and Q-format.
func (a FixedPoint) String() string {
	return fmt.Sprintf("%g (Q%d.%d)", a.Float64(), a.IntegerBits, a.FractionalBits())
}
