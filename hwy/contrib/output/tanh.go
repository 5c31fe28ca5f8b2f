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

package output

import (
	"github.com/chenkaiidy/gemmlowp/hwy"
	"github.com/chenkaiidy/gemmlowp/hwy/contrib/fixedpoint"
)

// tanhInputIntegerBits is the Q-format of the centered, normalized input.
// Inputs past ±8 amplitudes are handled by the cutoffs, so three integer
// bits cover the rest.
const tanhInputIntegerBits = 3

// tanhKernel holds the constants derived from a Tanh stage.
type tanhKernel struct {
	zero int32

	cutoffMin, cutoffMax int32
	outputMin, outputMax int32

	// 1/amplitude = inverseAmplitude * 2^-inverseAmplitudeNegExponent,
	// with inverseAmplitude a Q0.31 value in [0.5, 1].
	inverseAmplitude            int32
	inverseAmplitudeNegExponent int

	// amplitude = amplitudeNormalized * 2^amplitudeExponent,
	// with amplitudeNormalized a Q0.31 value in [0.5, 1).
	amplitudeNormalized int32
	amplitudeExponent   int
}

func newTanhKernel(t Tanh) tanhKernel {
	zero := int64(t.RealZero)
	amp := int64(t.RealAmplitude)
	k := tanhKernel{
		zero:      t.RealZero,
		cutoffMin: hwy.SaturateInt64[int32](zero - 8*amp),
		cutoffMax: hwy.SaturateInt64[int32](zero + 8*amp),
		outputMin: hwy.SaturateInt64[int32](zero - amp),
		outputMax: hwy.SaturateInt64[int32](zero + amp),
	}
	if amp <= 0 {
		// Unusable stage: every input maps to the zero point.
		k.cutoffMin, k.cutoffMax = t.RealZero, t.RealZero
		k.outputMin, k.outputMax = t.RealZero, t.RealZero
		return k
	}

	inv := 1.0 / float64(amp)
	for inv < 0.5 {
		inv *= 2
		k.inverseAmplitudeNegExponent++
	}
	k.inverseAmplitude = fixedpoint.FromDouble(inv, 0).Raw

	a := float64(amp)
	for a >= 1.0 {
		a *= 0.5
		k.amplitudeExponent++
	}
	k.amplitudeNormalized = fixedpoint.FromDouble(a, 0).Raw
	return k
}

// inputShift is the left shift that turns centered*inverseAmplitude into a
// Q3.28 value. It is negative only for amplitudes above 2^29.
func (k tanhKernel) inputShift() int {
	return 28 - k.inverseAmplitudeNegExponent
}

func (k tanhKernel) outputShift() int {
	return 31 - k.amplitudeExponent
}

// scaleInput returns (x - zero) / amplitude as a Q3.28 raw value. The
// centering and the doubling high multiply are done in int64, since x - zero
// overflows int32 when the zero point sits far from x.
func (k tanhKernel) scaleInput(x int32) int32 {
	prod := (int64(x) - int64(k.zero)) * int64(k.inverseAmplitude)
	nudge := int64(1) << 30
	if prod < 0 {
		nudge = 1 - nudge
	}
	scaled := (prod + nudge) / (1 << 31)
	if s := k.inputShift(); s >= 0 {
		scaled <<= uint(s)
	} else {
		scaled >>= uint(-s)
	}
	return hwy.SaturateInt64[int32](scaled)
}

// finish maps the amplitude-scaled tanh back around the zero point.
func (k tanhKernel) finish(out int32) int32 {
	return hwy.SaturateInt64[int32](int64(k.zero) + int64(out>>uint(k.outputShift())))
}

// eval is the scalar form, shared by the reference.
func (k tanhKernel) eval(x int32) int32 {
	if x <= k.cutoffMin {
		return k.outputMin
	}
	if x >= k.cutoffMax {
		return k.outputMax
	}
	t := fixedpoint.Tanh(fixedpoint.FromRaw(k.scaleInput(x), tanhInputIntegerBits))
	return k.finish(fixedpoint.SaturatingRoundingDoublingHighMul(t.Raw, k.amplitudeNormalized))
}

func (k tanhKernel) evalInt32x4(x hwy.Int32x4) hwy.Int32x4 {
	var scaled hwy.Int32x4
	for i := range scaled {
		scaled[i] = k.scaleInput(x[i])
	}
	t := fixedpoint.TanhInt32x4(scaled, tanhInputIntegerBits)
	out := fixedpoint.SaturatingRoundingDoublingHighMulInt32x4(t, hwy.BroadcastInt32x4(k.amplitudeNormalized))
	for i := range out {
		switch {
		case x[i] <= k.cutoffMin:
			out[i] = k.outputMin
		case x[i] >= k.cutoffMax:
			out[i] = k.outputMax
		default:
			out[i] = k.finish(out[i])
		}
	}
	return out
}

func (k tanhKernel) evalVec(x hwy.Vec[int32]) hwy.Vec[int32] {
	n := x.NumLanes()
	lanes := make([]int32, n)
	for i := range lanes {
		lanes[i] = k.scaleInput(hwy.GetLane(x, i))
	}
	t := fixedpoint.TanhVec(hwy.LoadN(lanes, n), tanhInputIntegerBits)
	out := fixedpoint.SaturatingRoundingDoublingHighMulVec(t, hwy.SetN(k.amplitudeNormalized, n))
	for i := range lanes {
		lanes[i] = k.finish(hwy.GetLane(out, i))
	}
	out = hwy.FromSlice(lanes)

	below := hwy.LessEqual(x, hwy.SetN(k.cutoffMin, n))
	above := hwy.GreaterEqual(x, hwy.SetN(k.cutoffMax, n))
	if above.AnyTrue() {
		out = hwy.IfThenElse(above, hwy.SetN(k.outputMax, n), out)
	}
	if below.AnyTrue() {
		out = hwy.IfThenElse(below, hwy.SetN(k.outputMin, n), out)
	}
	return out
}
