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
	"math"
	"testing"

	"github.com/chenkaiidy/gemmlowp/hwy"
)

var sampleInputs = []int32{
	math.MinInt32, math.MinInt32 + 1, -1 << 30, -123456789, -65536, -255, -7, -1,
	0, 1, 7, 255, 65536, 123456789, 1 << 30, math.MaxInt32 - 1, math.MaxInt32,
}

func TestSaturatingRoundingDoublingHighMul(t *testing.T) {
	tests := []struct {
		a, b int32
		want int32
	}{
		{math.MinInt32, math.MinInt32, math.MaxInt32},
		{1 << 30, 1 << 30, 1 << 29},
		{-(1 << 30), 1 << 30, -(1 << 29)},
		{math.MaxInt32, 100, 100},
		{math.MaxInt32, -100, -100},
		{0, math.MinInt32, 0},
		{math.MinInt32, math.MaxInt32, math.MinInt32 + 1},
	}
	for _, tt := range tests {
		if got := SaturatingRoundingDoublingHighMul(tt.a, tt.b); got != tt.want {
			t.Errorf("SaturatingRoundingDoublingHighMul(%d, %d): got %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRoundingDivideByPOT(t *testing.T) {
	tests := []struct {
		x        int32
		exponent int
		want     int32
	}{
		{5, 1, 3},
		{-5, 1, -3},
		{4, 1, 2},
		{7, 2, 2},
		{6, 2, 2},
		{-6, 2, -2},
		{-7, 2, -2},
		{123, 0, 123},
		{math.MaxInt32, 31, 1},
		{math.MinInt32, 31, -1},
	}
	for _, tt := range tests {
		if got := RoundingDivideByPOT(tt.x, tt.exponent); got != tt.want {
			t.Errorf("RoundingDivideByPOT(%d, %d): got %d, want %d", tt.x, tt.exponent, got, tt.want)
		}
	}
}

func TestSaturatingRoundingMultiplyByPOT(t *testing.T) {
	tests := []struct {
		x        int32
		exponent int
		want     int32
	}{
		{1 << 28, 2, 1 << 30},
		{1 << 29, 2, math.MaxInt32},
		{-(1 << 29), 2, math.MinInt32},
		{-3, 4, -48},
		{5, -1, 3},
		{42, 0, 42},
		{1, 31, math.MaxInt32},
		{0, 31, 0},
	}
	for _, tt := range tests {
		if got := SaturatingRoundingMultiplyByPOT(tt.x, tt.exponent); got != tt.want {
			t.Errorf("SaturatingRoundingMultiplyByPOT(%d, %d): got %d, want %d", tt.x, tt.exponent, got, tt.want)
		}
	}
}

func TestRoundingHalfSum(t *testing.T) {
	tests := []struct {
		a, b, want int32
	}{
		{1, 2, 2},
		{-1, -2, -2},
		{2, 2, 2},
		{math.MaxInt32, math.MaxInt32, math.MaxInt32},
		{math.MinInt32, math.MinInt32, math.MinInt32},
		{math.MinInt32, math.MaxInt32, -1},
	}
	for _, tt := range tests {
		if got := RoundingHalfSum(tt.a, tt.b); got != tt.want {
			t.Errorf("RoundingHalfSum(%d, %d): got %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFixedPointConversions(t *testing.T) {
	if got := FromDouble(1.0, 0).Raw; got != math.MaxInt32 {
		t.Errorf("FromDouble(1.0, 0): got %d, want MaxInt32", got)
	}
	if got := FromDouble(-1.0, 0).Raw; got != math.MinInt32 {
		t.Errorf("FromDouble(-1.0, 0): got %d, want MinInt32", got)
	}
	if got := FromDouble(0.5, 0).Raw; got != 1<<30 {
		t.Errorf("FromDouble(0.5, 0): got %d, want %d", got, 1<<30)
	}
	if got := One(3).Float64(); got != 1.0 {
		t.Errorf("One(3): got %v, want 1", got)
	}
	if got := ConstantPOT(-2, 5).Float64(); got != 0.25 {
		t.Errorf("ConstantPOT(-2, 5): got %v, want 0.25", got)
	}

	half := FromDouble(0.5, 0)
	quarter := half.Mul(half)
	if quarter.IntegerBits != 0 || quarter.Float64() != 0.25 {
		t.Errorf("0.5*0.5: got %v", quarter)
	}

	x := FromDouble(3.25, 4)
	if got := x.Rescale(2).Float64(); got != 3.25 {
		t.Errorf("Rescale(4->2): got %v, want 3.25", got)
	}
	if got := x.Rescale(1).Raw; got != math.MaxInt32 {
		t.Errorf("Rescale(4->1) should saturate, got raw %d", got)
	}
	if got := x.ExactMulByPOT(1).Float64(); got != 6.5 {
		t.Errorf("ExactMulByPOT(1): got %v, want 6.5", got)
	}
}

func TestConstantPOTPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ConstantPOT(1, 0) should panic")
		}
	}()
	ConstantPOT(1, 0)
}

func TestExpOnNegativeValues(t *testing.T) {
	for _, integerBits := range []int{3, 5, 6} {
		maxMagnitude := math.Ldexp(1, integerBits)
		for x := 0.0; x > -maxMagnitude; x -= maxMagnitude / 97 {
			got := ExpOnNegativeValues(FromDouble(x, integerBits)).Float64()
			want := math.Exp(x)
			if math.Abs(got-want) > 1e-5 {
				t.Errorf("ExpOnNegativeValues(%v, Q%d): got %v, want %v", x, integerBits, got, want)
			}
		}
	}

	if got := ExpOnNegativeValues(FixedPoint{IntegerBits: 5}).Raw; got != math.MaxInt32 {
		t.Errorf("exp(0): got raw %d, want MaxInt32", got)
	}
	if got := ExpOnNegativeValues(FromDouble(-40, 6)).Raw; got != 0 {
		t.Errorf("exp(-40) with clamp: got raw %d, want 0", got)
	}
}

func TestOneMinusXOverOnePlusX(t *testing.T) {
	for _, x := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 0.999} {
		got := OneMinusXOverOnePlusXForXIn01(FromDouble(x, 0)).Float64()
		want := (1 - x) / (1 + x)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("OneMinusXOverOnePlusX(%v): got %v, want %v", x, got, want)
		}
	}
}

func TestTanh(t *testing.T) {
	const integerBits = 3
	prev := int32(math.MinInt32)
	for x := -7.9; x < 7.9; x += 0.05 {
		got := Tanh(FromDouble(x, integerBits))
		if got.IntegerBits != 0 {
			t.Fatalf("Tanh result should be Q0.31, got %v", got)
		}
		if math.Abs(got.Float64()-math.Tanh(x)) > 1e-5 {
			t.Errorf("Tanh(%v): got %v, want %v", x, got.Float64(), math.Tanh(x))
		}
		if got.Raw < prev {
			t.Errorf("Tanh not monotonic at %v: %d < %d", x, got.Raw, prev)
		}
		prev = got.Raw
	}

	if got := Tanh(FixedPoint{IntegerBits: integerBits}).Raw; got != 0 {
		t.Errorf("Tanh(0): got %d, want 0", got)
	}
	for _, raw := range sampleInputs {
		if raw == math.MinInt32 {
			continue
		}
		pos := Tanh(FromRaw(raw, integerBits)).Raw
		neg := Tanh(FromRaw(-raw, integerBits)).Raw
		if pos != -neg {
			t.Errorf("Tanh not odd for raw %d: %d vs %d", raw, pos, neg)
		}
	}
}

func TestInt32x4MatchesScalar(t *testing.T) {
	for i := 0; i+4 <= len(sampleInputs); i++ {
		a := hwy.LoadInt32x4Slice(sampleInputs[i:])
		b := hwy.LoadInt32x4Slice(sampleInputs[len(sampleInputs)-4-i:])

		mul := SaturatingRoundingDoublingHighMulInt32x4(a, b)
		tanh := TanhInt32x4(a, 3)
		for lane := range 4 {
			if want := SaturatingRoundingDoublingHighMul(a[lane], b[lane]); mul[lane] != want {
				t.Errorf("SRDHM lane %d: got %d, want %d", lane, mul[lane], want)
			}
			if want := Tanh(FromRaw(a[lane], 3)).Raw; tanh[lane] != want {
				t.Errorf("Tanh lane %d: got %d, want %d", lane, tanh[lane], want)
			}
		}
	}
}

func TestVecMatchesScalar(t *testing.T) {
	a := hwy.FromSlice(sampleInputs)
	reversed := make([]int32, len(sampleInputs))
	for i, v := range sampleInputs {
		reversed[len(reversed)-1-i] = v
	}
	b := hwy.FromSlice(reversed)

	mul := SaturatingRoundingDoublingHighMulVec(a, b).Data()
	for i := range sampleInputs {
		if want := SaturatingRoundingDoublingHighMul(sampleInputs[i], reversed[i]); mul[i] != want {
			t.Errorf("SRDHM lane %d: got %d, want %d", i, mul[i], want)
		}
	}

	tanh := TanhVec(a, 3).Data()
	for i, x := range sampleInputs {
		if want := Tanh(FromRaw(x, 3)).Raw; tanh[i] != want {
			t.Errorf("TanhVec(%d): got %d, want %d", x, tanh[i], want)
		}
	}
}

func BenchmarkTanh(b *testing.B) {
	x := FromDouble(-1.5, 3)
	for b.Loop() {
		_ = Tanh(x)
	}
}
