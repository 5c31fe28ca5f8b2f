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

// This file holds the Int32x4x1 kernels. Every stage has one; the 16-wide
// bindings fall back to running these four times.

// rescaleInt32x4 computes ((x + offset) * mult + round(shift)) >> shift.
func rescaleInt32x4(x, offset, mult hwy.Int32x4, shift int32) hwy.Int32x4 {
	v := x.Add(offset).Mul(mult)
	if shift < 1 {
		return v
	}
	return v.Add(hwy.BroadcastInt32x4(roundingTerm(shift))).ShiftAllRight(int(shift))
}

type uniformRescaleInt32x4 struct {
	offset, mult hwy.Int32x4
	shift        int32
}

func (e uniformRescaleInt32x4) Eval(in Int32x4x1, _, _ int) Int32x4x1 {
	return Int32x4x1{Data: rescaleInt32x4(in.Data, e.offset, e.mult, e.shift)}
}

// BindInt32x4 returns the four-row kernel.
func (s UniformRescale) BindInt32x4() Evaluator[Int32x4x1, Int32x4x1] {
	return uniformRescaleInt32x4{
		offset: hwy.BroadcastInt32x4(s.Offset),
		mult:   hwy.BroadcastInt32x4(s.Multiplier),
		shift:  s.Shift,
	}
}

type perChannelRescaleInt32x4 struct {
	s PerChannelRescale
}

func (e perChannelRescaleInt32x4) Eval(in Int32x4x1, row, col int) Int32x4x1 {
	offset := e.s.Offset.lanes(row, col)
	mult := e.s.Multiplier.lanes(row, col)
	return Int32x4x1{Data: rescaleInt32x4(in.Data, offset, mult, e.s.Shift)}
}

// BindInt32x4 returns the four-row kernel. Col-shaped parameters are loaded
// from entries row..row+3; Row-shaped ones broadcast entry col.
func (s PerChannelRescale) BindInt32x4() Evaluator[Int32x4x1, Int32x4x1] {
	return perChannelRescaleInt32x4{s: s}
}

type fixedPointRescaleInt32x4 struct {
	mult, round, offset hwy.Int32x4
	shift               int32
}

func (e fixedPointRescaleInt32x4) Eval(in Int32x4x1, _, _ int) Int32x4x1 {
	v := fixedpoint.SaturatingRoundingDoublingHighMulInt32x4(in.Data, e.mult)
	if e.shift >= 1 {
		v = v.Add(e.round).ShiftAllRight(int(e.shift))
	}
	return Int32x4x1{Data: v.Add(e.offset)}
}

// BindInt32x4 returns the four-row kernel.
func (s FixedPointRescale) BindInt32x4() Evaluator[Int32x4x1, Int32x4x1] {
	return fixedPointRescaleInt32x4{
		mult:   hwy.BroadcastInt32x4(s.FixedPointMultiplier),
		round:  hwy.BroadcastInt32x4(roundingTerm(s.Shift)),
		offset: hwy.BroadcastInt32x4(s.OffsetAfterShift),
		shift:  s.Shift,
	}
}

type saturatingNarrowInt32x4 struct{}

func (saturatingNarrowInt32x4) Eval(in Int32x4x1, _, _ int) Uint8x4x1 {
	var zero hwy.Int32x4
	q16 := hwy.PackSaturatedInt32x4(in.Data, zero)
	q8 := hwy.PackUnsignedSaturatedInt16x8(q16, hwy.Int16x8{})
	return Uint8x4x1{Data: q8.Low32()}
}

// BindInt32x4 returns the four-row kernel: a signed pack to int16 followed by
// an unsigned pack to uint8, keeping the low four bytes.
func (SaturatingNarrow) BindInt32x4() Evaluator[Int32x4x1, Uint8x4x1] {
	return saturatingNarrowInt32x4{}
}

type biasAddInt32x4 struct {
	bias VectorMap
}

func (e biasAddInt32x4) Eval(in Int32x4x1, row, col int) Int32x4x1 {
	return Int32x4x1{Data: in.Data.Add(e.bias.lanes(row, col))}
}

// BindInt32x4 returns the four-row kernel.
func (s BiasAdd) BindInt32x4() Evaluator[Int32x4x1, Int32x4x1] {
	return biasAddInt32x4{bias: s.Bias}
}

type clampInt32x4 struct {
	lo, hi hwy.Int32x4
}

func (e clampInt32x4) Eval(in Int32x4x1, _, _ int) Int32x4x1 {
	return Int32x4x1{Data: in.Data.Max(e.lo).Min(e.hi)}
}

// BindInt32x4 returns the four-row kernel.
func (s Clamp) BindInt32x4() Evaluator[Int32x4x1, Int32x4x1] {
	return clampInt32x4{lo: hwy.BroadcastInt32x4(s.Min), hi: hwy.BroadcastInt32x4(s.Max)}
}

type tanhInt32x4 struct {
	k tanhKernel
}

func (e tanhInt32x4) Eval(in Int32x4x1, _, _ int) Int32x4x1 {
	return Int32x4x1{Data: e.k.evalInt32x4(in.Data)}
}

// BindInt32x4 returns the four-row kernel.
func (t Tanh) BindInt32x4() Evaluator[Int32x4x1, Int32x4x1] {
	return tanhInt32x4{k: newTanhKernel(t)}
}
