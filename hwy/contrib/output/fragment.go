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
	"encoding/binary"
	"fmt"

	"github.com/chenkaiidy/gemmlowp/hwy"
)

// MapOrder is the storage order of a fragment or a destination matrix.
type MapOrder int

const (
	// ColMajor stores consecutive rows of one column next to each other.
	ColMajor MapOrder = iota
	// RowMajor stores consecutive columns of one row next to each other.
	RowMajor
)

func (o MapOrder) String() string {
	switch o {
	case ColMajor:
		return "ColMajor"
	case RowMajor:
		return "RowMajor"
	default:
		return fmt.Sprintf("MapOrder(%d)", int(o))
	}
}

// Element is the set of scalar types a fragment can hold.
type Element interface {
	int32 | uint8
}

// Fragment is a small tile of scalar values held in registers. Its shape and
// order define the scalar ordering returned by Elements.
type Fragment interface {
	Rows() int
	Cols() int
	Order() MapOrder
}

// Int32x4x1 is four consecutive rows of one column in a single 128-bit register.
type Int32x4x1 struct {
	Data hwy.Int32x4
}

func (Int32x4x1) Rows() int       { return 4 }
func (Int32x4x1) Cols() int       { return 1 }
func (Int32x4x1) Order() MapOrder { return ColMajor }

// Elements returns the four values in row order.
func (f Int32x4x1) Elements() []int32 {
	return []int32{f.Data[0], f.Data[1], f.Data[2], f.Data[3]}
}

// NewInt32x4x1 builds a fragment from four values in row order.
func NewInt32x4x1(elems []int32) Int32x4x1 {
	checkLen("Int32x4x1", len(elems), 4)
	return Int32x4x1{Data: hwy.LoadInt32x4Slice(elems)}
}

// Int32x16x1 is sixteen consecutive rows of one column held as four 128-bit
// registers. Register i holds rows 4i..4i+3.
type Int32x16x1 struct {
	Data [4]hwy.Int32x4
}

func (Int32x16x1) Rows() int       { return 16 }
func (Int32x16x1) Cols() int       { return 1 }
func (Int32x16x1) Order() MapOrder { return ColMajor }

// Elements returns the sixteen values in row order.
func (f Int32x16x1) Elements() []int32 {
	out := make([]int32, 0, 16)
	for _, reg := range f.Data {
		out = append(out, reg[:]...)
	}
	return out
}

// NewInt32x16x1 builds a fragment from sixteen values in row order.
func NewInt32x16x1(elems []int32) Int32x16x1 {
	checkLen("Int32x16x1", len(elems), 16)
	var f Int32x16x1
	for i := range f.Data {
		f.Data[i] = hwy.LoadInt32x4Slice(elems[4*i:])
	}
	return f
}

// Uint8x4x1 is four consecutive rows of one column packed into 32 bits.
// Row i is byte i in little-endian order.
type Uint8x4x1 struct {
	Data uint32
}

func (Uint8x4x1) Rows() int       { return 4 }
func (Uint8x4x1) Cols() int       { return 1 }
func (Uint8x4x1) Order() MapOrder { return ColMajor }

// Elements returns the four bytes in row order.
func (f Uint8x4x1) Elements() []uint8 {
	return binary.LittleEndian.AppendUint32(make([]uint8, 0, 4), f.Data)
}

// NewUint8x4x1 builds a fragment from four bytes in row order.
func NewUint8x4x1(elems []uint8) Uint8x4x1 {
	checkLen("Uint8x4x1", len(elems), 4)
	return Uint8x4x1{Data: binary.LittleEndian.Uint32(elems)}
}

// Uint8x16x1 is sixteen consecutive rows of one column in a single 128-bit register.
type Uint8x16x1 struct {
	Data hwy.Uint8x16
}

func (Uint8x16x1) Rows() int       { return 16 }
func (Uint8x16x1) Cols() int       { return 1 }
func (Uint8x16x1) Order() MapOrder { return ColMajor }

// Elements returns the sixteen bytes in row order.
func (f Uint8x16x1) Elements() []uint8 {
	out := make([]uint8, 16)
	copy(out, f.Data[:])
	return out
}

// NewUint8x16x1 builds a fragment from sixteen bytes in row order.
func NewUint8x16x1(elems []uint8) Uint8x16x1 {
	checkLen("Uint8x16x1", len(elems), 16)
	var f Uint8x16x1
	copy(f.Data[:], elems)
	return f
}

// VecFragment is a portable fragment of any shape and order, evaluated with
// width-agnostic hwy.Vec operations. It backs tiles that do not fit the
// fixed 128-bit fragments, such as the ragged edge of a matrix.
type VecFragment[T Element] struct {
	data  []T
	rows  int
	cols  int
	order MapOrder
}

// NewVecFragment wraps data, laid out in the given order, as a rows x cols
// fragment. data is not copied.
func NewVecFragment[T Element](data []T, rows, cols int, order MapOrder) VecFragment[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("output: invalid fragment shape %dx%d", rows, cols))
	}
	checkLen("VecFragment", len(data), rows*cols)
	return VecFragment[T]{data: data[:rows*cols], rows: rows, cols: cols, order: order}
}

func (f VecFragment[T]) Rows() int       { return f.rows }
func (f VecFragment[T]) Cols() int       { return f.cols }
func (f VecFragment[T]) Order() MapOrder { return f.order }

// Len returns rows * cols.
func (f VecFragment[T]) Len() int { return len(f.data) }

// Elements returns the backing values in the fragment's order.
func (f VecFragment[T]) Elements() []T { return f.data }

// At returns the value at (r, c) relative to the fragment origin.
func (f VecFragment[T]) At(r, c int) T {
	return f.data[f.index(r, c)]
}

func (f VecFragment[T]) index(r, c int) int {
	if f.order == ColMajor {
		return r + c*f.rows
	}
	return c + r*f.cols
}

// coords is the inverse of index.
func (f VecFragment[T]) coords(i int) (r, c int) {
	if f.order == ColMajor {
		return i % f.rows, i / f.rows
	}
	return i / f.cols, i % f.cols
}

// withData returns a fragment of the same shape backed by data.
func withData[T, U Element](f VecFragment[T], data []U) VecFragment[U] {
	return VecFragment[U]{data: data, rows: f.rows, cols: f.cols, order: f.order}
}

func checkLen(what string, got, want int) {
	if got < want {
		panic(fmt.Sprintf("output: %s needs %d elements, got %d", what, want, got))
	}
}
