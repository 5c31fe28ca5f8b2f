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

import (
	"math"
	"unsafe"
)

// This file provides saturated arithmetic and related operations.
// Saturated operations clamp results to the type's valid range instead of wrapping.

// NarrowSigned is the set of signed lane types that fit in an int64
// intermediate with room to spare.
type NarrowSigned interface {
	~int8 | ~int16 | ~int32
}

// Clamp clamps each element to the range [lo, hi].
// Elements less than lo become lo, elements greater than hi become hi.
func Clamp[T Lanes](v, lo, hi Vec[T]) Vec[T] {
	return Min(Max(v, lo), hi)
}

// SaturateInt64 clamps x to the range of T.
func SaturateInt64[T NarrowSigned](x int64) T {
	return saturate[T](x)
}

func saturate[T NarrowSigned](x int64) T {
	lo, hi := signedBounds[T]()
	if x < lo {
		return T(lo)
	}
	if x > hi {
		return T(hi)
	}
	return T(x)
}

func signedBounds[T NarrowSigned]() (int64, int64) {
	switch sizeInBits[T]() {
	case 8:
		return math.MinInt8, math.MaxInt8
	case 16:
		return math.MinInt16, math.MaxInt16
	default:
		return math.MinInt32, math.MaxInt32
	}
}

func sizeInBits[T NarrowSigned]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero)) * 8
}
