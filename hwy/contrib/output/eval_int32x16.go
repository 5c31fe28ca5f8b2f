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

import "github.com/chenkaiidy/gemmlowp/hwy"

// Hand-tuned Int32x16x1 kernels. Each one must produce exactly what
// Decompose16 over the matching Int32x4x1 kernel produces. They step the four
// registers through every operation together (4x4 interleaving) so the four
// dependency chains overlap, and the narrowing kernel fills a whole Uint8x16
// instead of four quarter-used registers.

type uniformRescaleInt32x16 struct {
	offset, mult, round hwy.Int32x4
	shift               int32
}

func newUniformRescaleInt32x16(s UniformRescale) uniformRescaleInt32x16 {
	return uniformRescaleInt32x16{
		offset: hwy.BroadcastInt32x4(s.Offset),
		mult:   hwy.BroadcastInt32x4(s.Multiplier),
		round:  hwy.BroadcastInt32x4(roundingTerm(s.Shift)),
		shift:  s.Shift,
	}
}

func (e uniformRescaleInt32x16) Eval(in Int32x16x1, _, _ int) Int32x16x1 {
	d := in.Data
	d[0], d[1], d[2], d[3] = d[0].Add(e.offset), d[1].Add(e.offset), d[2].Add(e.offset), d[3].Add(e.offset)
	d[0], d[1], d[2], d[3] = d[0].Mul(e.mult), d[1].Mul(e.mult), d[2].Mul(e.mult), d[3].Mul(e.mult)
	if e.shift >= 1 {
		s := int(e.shift)
		d[0], d[1], d[2], d[3] = d[0].Add(e.round), d[1].Add(e.round), d[2].Add(e.round), d[3].Add(e.round)
		d[0], d[1], d[2], d[3] = d[0].ShiftAllRight(s), d[1].ShiftAllRight(s), d[2].ShiftAllRight(s), d[3].ShiftAllRight(s)
	}
	return Int32x16x1{Data: d}
}

type clampInt32x16 struct {
	lo, hi hwy.Int32x4
}

func newClampInt32x16(s Clamp) clampInt32x16 {
	return clampInt32x16{lo: hwy.BroadcastInt32x4(s.Min), hi: hwy.BroadcastInt32x4(s.Max)}
}

func (e clampInt32x16) Eval(in Int32x16x1, _, _ int) Int32x16x1 {
	d := in.Data
	d[0], d[1], d[2], d[3] = d[0].Max(e.lo), d[1].Max(e.lo), d[2].Max(e.lo), d[3].Max(e.lo)
	d[0], d[1], d[2], d[3] = d[0].Min(e.hi), d[1].Min(e.hi), d[2].Min(e.hi), d[3].Min(e.hi)
	return Int32x16x1{Data: d}
}

type biasAddInt32x16 struct {
	bias VectorMap
}

func newBiasAddInt32x16(s BiasAdd) biasAddInt32x16 {
	return biasAddInt32x16{bias: s.Bias}
}

func (e biasAddInt32x16) Eval(in Int32x16x1, row, col int) Int32x16x1 {
	d := in.Data
	if e.bias.Shape == Row {
		// One bias per column: a single broadcast serves all sixteen rows.
		b := hwy.BroadcastInt32x4(e.bias.Value(col))
		d[0], d[1], d[2], d[3] = d[0].Add(b), d[1].Add(b), d[2].Add(b), d[3].Add(b)
		return Int32x16x1{Data: d}
	}
	s := e.bias.Slice(row)
	if len(s) < 16 {
		panic("output: Col bias vector too short for a 16-row fragment")
	}
	b0, b1, b2, b3 := hwy.LoadInt32x4Slice(s), hwy.LoadInt32x4Slice(s[4:]), hwy.LoadInt32x4Slice(s[8:]), hwy.LoadInt32x4Slice(s[12:])
	d[0], d[1], d[2], d[3] = d[0].Add(b0), d[1].Add(b1), d[2].Add(b2), d[3].Add(b3)
	return Int32x16x1{Data: d}
}

type saturatingNarrowInt32x16 struct{}

func newSaturatingNarrowInt32x16(SaturatingNarrow) saturatingNarrowInt32x16 {
	return saturatingNarrowInt32x16{}
}

func (saturatingNarrowInt32x16) Eval(in Int32x16x1, _, _ int) Uint8x16x1 {
	lo := hwy.PackSaturatedInt32x4(in.Data[0], in.Data[1])
	hi := hwy.PackSaturatedInt32x4(in.Data[2], in.Data[3])
	return Uint8x16x1{Data: hwy.PackUnsignedSaturatedInt16x8(lo, hi)}
}
