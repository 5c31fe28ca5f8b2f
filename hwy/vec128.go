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

package hwy

import "encoding/binary"

// This file models a single 128-bit register split into fixed lanes.
// The method set mirrors the SSE4/NEON instructions the output kernels are
// written against, so a kernel reads the same as its intrinsic version:
//
//	Add         PADDD   / ADD.4S
//	Sub         PSUBD   / SUB.4S
//	Mul         PMULLD  / MUL.4S
//	Min, Max    PMINSD  / SMIN.4S, PMAXSD / SMAX.4S
//	ShiftAll*   PSRAD, PSLLD / SSHL.4S
//	Pack*       PACKSSDW / SQXTN, PACKUSWB / SQXTUN
//
// Arithmetic wraps on overflow exactly like the hardware.

// Int32x4 is a 128-bit register holding four int32 lanes.
type Int32x4 [4]int32

// Int16x8 is a 128-bit register holding eight int16 lanes.
type Int16x8 [8]int16

// Uint8x16 is a 128-bit register holding sixteen uint8 lanes.
type Uint8x16 [16]uint8

// LoadInt32x4Slice loads four lanes from s, which must hold at least four
// elements. No alignment is required.
func LoadInt32x4Slice(s []int32) Int32x4 {
	_ = s[3]
	return Int32x4{s[0], s[1], s[2], s[3]}
}

// BroadcastInt32x4 returns a register with every lane set to x.
func BroadcastInt32x4(x int32) Int32x4 {
	return Int32x4{x, x, x, x}
}

// StoreSlice writes the four lanes to s[0:4].
func (v Int32x4) StoreSlice(s []int32) {
	_ = s[3]
	s[0], s[1], s[2], s[3] = v[0], v[1], v[2], v[3]
}

// GetElem returns lane i.
func (v Int32x4) GetElem(i int) int32 {
	return v[i]
}

// Add returns v + w lane-wise, wrapping on overflow.
func (v Int32x4) Add(w Int32x4) Int32x4 {
	return Int32x4{v[0] + w[0], v[1] + w[1], v[2] + w[2], v[3] + w[3]}
}

// Sub returns v - w lane-wise, wrapping on overflow.
func (v Int32x4) Sub(w Int32x4) Int32x4 {
	return Int32x4{v[0] - w[0], v[1] - w[1], v[2] - w[2], v[3] - w[3]}
}

// Mul returns the low 32 bits of v * w lane-wise.
func (v Int32x4) Mul(w Int32x4) Int32x4 {
	return Int32x4{v[0] * w[0], v[1] * w[1], v[2] * w[2], v[3] * w[3]}
}

// Min returns the lane-wise signed minimum.
func (v Int32x4) Min(w Int32x4) Int32x4 {
	return Int32x4{min(v[0], w[0]), min(v[1], w[1]), min(v[2], w[2]), min(v[3], w[3])}
}

// Max returns the lane-wise signed maximum.
func (v Int32x4) Max(w Int32x4) Int32x4 {
	return Int32x4{max(v[0], w[0]), max(v[1], w[1]), max(v[2], w[2]), max(v[3], w[3])}
}

// And returns the lane-wise bitwise AND.
func (v Int32x4) And(w Int32x4) Int32x4 {
	return Int32x4{v[0] & w[0], v[1] & w[1], v[2] & w[2], v[3] & w[3]}
}

// ShiftAllRight shifts every lane right arithmetically by n bits.
// Counts of 32 or more behave like 31, leaving only the sign; counts of zero
// or less leave v unchanged.
func (v Int32x4) ShiftAllRight(n int) Int32x4 {
	if n <= 0 {
		return v
	}
	s := uint(min(n, 31))
	return Int32x4{v[0] >> s, v[1] >> s, v[2] >> s, v[3] >> s}
}

// ShiftAllLeft shifts every lane left by n bits, discarding the high bits.
// Counts of 32 or more produce zero.
func (v Int32x4) ShiftAllLeft(n int) Int32x4 {
	if n <= 0 {
		return v
	}
	if n >= 32 {
		return Int32x4{}
	}
	s := uint(n)
	return Int32x4{v[0] << s, v[1] << s, v[2] << s, v[3] << s}
}

// Vec returns the register as a width-agnostic vector.
func (v Int32x4) Vec() Vec[int32] {
	return Vec[int32]{data: []int32{v[0], v[1], v[2], v[3]}}
}

// PackSaturatedInt32x4 packs a into the low four lanes and b into the high
// four lanes of the result, saturating each value to the int16 range.
func PackSaturatedInt32x4(a, b Int32x4) Int16x8 {
	var r Int16x8
	for i := range 4 {
		r[i] = saturateI32ToI16(a[i])
		r[4+i] = saturateI32ToI16(b[i])
	}
	return r
}

// PackUnsignedSaturatedInt16x8 packs a into the low eight lanes and b into
// the high eight lanes of the result, saturating each signed value to [0, 255].
func PackUnsignedSaturatedInt16x8(a, b Int16x8) Uint8x16 {
	var r Uint8x16
	for i := range 8 {
		r[i] = saturateI16ToU8(a[i])
		r[8+i] = saturateI16ToU8(b[i])
	}
	return r
}

// Low32 returns the low four bytes as a little-endian uint32, the way MOVD
// extracts them.
func (v Uint8x16) Low32() uint32 {
	return binary.LittleEndian.Uint32(v[:4])
}

// GetElem returns lane i.
func (v Uint8x16) GetElem(i int) uint8 {
	return v[i]
}
