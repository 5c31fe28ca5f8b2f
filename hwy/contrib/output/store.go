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
)

// Destination is a matrix that fragments can be stored into.
type Destination[T Element] interface {
	Rows() int
	Cols() int
	Order() MapOrder
	// Data returns the backing storage starting at element (row, col).
	// Along the major axis the elements that follow are contiguous.
	Data(row, col int) []T
}

// MatrixMap is a strided row- or column-major matrix over a slice.
type MatrixMap[T Element] struct {
	data   []T
	rows   int
	cols   int
	stride int
	order  MapOrder
}

// NewMatrixMap returns a densely packed rows x cols matrix over data.
func NewMatrixMap[T Element](data []T, rows, cols int, order MapOrder) *MatrixMap[T] {
	stride := rows
	if order == RowMajor {
		stride = cols
	}
	return NewMatrixMapWithStride(data, rows, cols, stride, order)
}

// NewMatrixMapWithStride returns a rows x cols matrix over data whose
// consecutive columns (ColMajor) or rows (RowMajor) start stride elements
// apart.
func NewMatrixMapWithStride[T Element](data []T, rows, cols, stride int, order MapOrder) *MatrixMap[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("output: invalid matrix shape %dx%d", rows, cols))
	}
	inner, outer := rows, cols
	if order == RowMajor {
		inner, outer = cols, rows
	}
	if stride < inner {
		panic(fmt.Sprintf("output: stride %d smaller than %s extent %d", stride, order, inner))
	}
	if outer > 0 && inner > 0 && len(data) < (outer-1)*stride+inner {
		panic("output: matrix data slice too short")
	}
	return &MatrixMap[T]{data: data, rows: rows, cols: cols, stride: stride, order: order}
}

func (m *MatrixMap[T]) Rows() int       { return m.rows }
func (m *MatrixMap[T]) Cols() int       { return m.cols }
func (m *MatrixMap[T]) Order() MapOrder { return m.order }
func (m *MatrixMap[T]) Stride() int     { return m.stride }

func (m *MatrixMap[T]) offset(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("output: (%d,%d) outside %dx%d matrix", row, col, m.rows, m.cols))
	}
	if m.order == ColMajor {
		return row + col*m.stride
	}
	return col + row*m.stride
}

// Data returns the backing slice starting at (row, col).
func (m *MatrixMap[T]) Data(row, col int) []T {
	return m.data[m.offset(row, col):]
}

// At returns the element at (row, col).
func (m *MatrixMap[T]) At(row, col int) T {
	return m.data[m.offset(row, col)]
}

// Set stores v at (row, col).
func (m *MatrixMap[T]) Set(row, col int, v T) {
	m.data[m.offset(row, col)] = v
}

// checkTile panics unless a rows x cols tile at (row, col) lies inside dst.
func checkTile[T Element](dst Destination[T], row, col, rows, cols int) {
	if row < 0 || col < 0 || row+rows > dst.Rows() || col+cols > dst.Cols() {
		panic(fmt.Sprintf("output: %dx%d tile at (%d,%d) outside %dx%d destination",
			rows, cols, row, col, dst.Rows(), dst.Cols()))
	}
}

// storeColumn writes vals to rows row.. of column col.
func storeColumn[T Element](dst Destination[T], row, col int, vals []T) {
	checkTile(dst, row, col, len(vals), 1)
	if dst.Order() == ColMajor {
		copy(dst.Data(row, col)[:len(vals)], vals)
		return
	}
	for i, v := range vals {
		dst.Data(row+i, col)[0] = v
	}
}

// StoreTo writes the four values to rows row..row+3 of column col.
func (f Int32x4x1) StoreTo(dst Destination[int32], row, col int) {
	if dst.Order() != ColMajor {
		storeColumn(dst, row, col, f.Elements())
		return
	}
	checkTile(dst, row, col, 4, 1)
	f.Data.StoreSlice(dst.Data(row, col))
}

// StoreTo writes register i to rows row+4i..row+4i+3 of column col.
func (f Int32x16x1) StoreTo(dst Destination[int32], row, col int) {
	checkTile(dst, row, col, 16, 1)
	for i, reg := range f.Data {
		Int32x4x1{Data: reg}.StoreTo(dst, row+4*i, col)
	}
}

// StoreTo writes exactly four bytes to rows row..row+3 of column col.
func (f Uint8x4x1) StoreTo(dst Destination[uint8], row, col int) {
	if dst.Order() != ColMajor {
		storeColumn(dst, row, col, f.Elements())
		return
	}
	checkTile(dst, row, col, 4, 1)
	binary.LittleEndian.PutUint32(dst.Data(row, col)[:4], f.Data)
}

// StoreTo writes the sixteen bytes to rows row..row+15 of column col.
func (f Uint8x16x1) StoreTo(dst Destination[uint8], row, col int) {
	storeColumn(dst, row, col, f.Data[:])
}

// StoreTo writes element (r, c) of f to (row+r, col+c) of dst.
func (f VecFragment[T]) StoreTo(dst Destination[T], row, col int) {
	checkTile(dst, row, col, f.rows, f.cols)
	if f.order == ColMajor && dst.Order() == ColMajor {
		for c := range f.cols {
			copy(dst.Data(row, col+c)[:f.rows], f.data[c*f.rows:(c+1)*f.rows])
		}
		return
	}
	for r := range f.rows {
		for c := range f.cols {
			dst.Data(row+r, col+c)[0] = f.At(r, c)
		}
	}
}
