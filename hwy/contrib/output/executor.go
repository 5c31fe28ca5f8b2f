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
	"fmt"

	"github.com/chenkaiidy/gemmlowp/hwy/contrib/workerpool"
)

// Executor runs one stage list over whole int32 result matrices. It holds
// the stage list bound to every fragment kind: Int32x16x1 for full 16-row
// tiles, Int32x4x1 for 4-row tiles and VecFragment for what is left of each
// column.
type Executor[T Element, F4, F16 Storer[T]] struct {
	stages  []Int32Stage
	four    Pipeline[T, Int32x4x1, F4]
	sixteen Pipeline[T, Int32x16x1, F16]
	vec     Pipeline[T, VecFragment[int32], VecFragment[T]]
}

// NewUint8Executor validates stages and binds them followed by a
// SaturatingNarrow.
func NewUint8Executor(stages ...Int32Stage) (*Executor[uint8, Uint8x4x1, Uint8x16x1], error) {
	if err := validateStages(stages); err != nil {
		return nil, err
	}
	var narrow SaturatingNarrow
	return &Executor[uint8, Uint8x4x1, Uint8x16x1]{
		stages:  stages,
		four:    NewPipeline[uint8](Chain(Int32x4Stages(stages), narrow.BindInt32x4())),
		sixteen: NewPipeline[uint8](Chain(Int32x16Stages(stages), narrow.BindInt32x16())),
		vec:     NewPipeline[uint8](Chain(VecStages(stages), narrow.BindVec())),
	}, nil
}

// NewInt32Executor validates stages and binds them with an int32 output.
func NewInt32Executor(stages ...Int32Stage) (*Executor[int32, Int32x4x1, Int32x16x1], error) {
	if err := validateStages(stages); err != nil {
		return nil, err
	}
	return &Executor[int32, Int32x4x1, Int32x16x1]{
		stages:  stages,
		four:    NewPipeline[int32](Int32x4Stages(stages)),
		sixteen: NewPipeline[int32](Int32x16Stages(stages)),
		vec:     NewPipeline[int32](VecStages(stages)),
	}, nil
}

func validateStages(stages []Int32Stage) error {
	for i, s := range stages {
		if s == nil {
			return fmt.Errorf("%w: stage %d is nil", ErrInvalidStage, i)
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("stage %d: %w", i, err)
		}
	}
	return nil
}

// NumStages returns the number of int32 stages, not counting the final
// narrowing of a uint8 executor.
func (e *Executor[T, F4, F16]) NumStages() int { return len(e.stages) }

// Unpack evaluates every element of src and stores it at the same
// coordinates of dst. Each column is cut into 16-row tiles, then 4-row
// tiles, then one VecFragment for the remaining rows.
//
// Columns are spread over pool. When there are fewer columns than workers,
// the rows of each column are split instead, on 16-row boundaries. A nil
// pool runs on the calling goroutine.
func (e *Executor[T, F4, F16]) Unpack(src *MatrixMap[int32], dst Destination[T], pool *workerpool.Pool) {
	if src.Rows() != dst.Rows() || src.Cols() != dst.Cols() {
		panic(fmt.Sprintf("output: cannot unpack %dx%d result into %dx%d destination",
			src.Rows(), src.Cols(), dst.Rows(), dst.Cols()))
	}
	rows, cols := src.Rows(), src.Cols()
	if rows == 0 || cols == 0 {
		return
	}
	if cols >= pool.NumWorkers() {
		pool.ParallelFor(cols, func(c0, c1 int) {
			for c := c0; c < c1; c++ {
				e.unpackRows(src, dst, 0, rows, c)
			}
		})
		return
	}
	for c := range cols {
		pool.ParallelForAligned(rows, 16, func(r0, r1 int) {
			e.unpackRows(src, dst, r0, r1, c)
		})
	}
}

// unpackRows handles rows [r0, r1) of column c.
func (e *Executor[T, F4, F16]) unpackRows(src *MatrixMap[int32], dst Destination[T], r0, r1, c int) {
	var buf [16]int32
	r := r0
	for ; r+16 <= r1; r += 16 {
		in := NewInt32x16x1(readColumn(src, r, c, buf[:16]))
		e.sixteen.EvaluateAndStore(in, dst, r, c)
	}
	for ; r+4 <= r1; r += 4 {
		in := NewInt32x4x1(readColumn(src, r, c, buf[:4]))
		e.four.EvaluateAndStore(in, dst, r, c)
	}
	if n := r1 - r; n > 0 {
		vals := make([]int32, n)
		copy(vals, readColumn(src, r, c, buf[:n]))
		e.vec.EvaluateAndStore(NewVecFragment(vals, n, 1, ColMajor), dst, r, c)
	}
}

// readColumn returns len(buf) values of column c starting at row r, aliasing
// src when it is column-major.
func readColumn(src *MatrixMap[int32], r, c int, buf []int32) []int32 {
	if src.Order() == ColMajor {
		return src.Data(r, c)[:len(buf)]
	}
	for i := range buf {
		buf[i] = src.At(r+i, c)
	}
	return buf
}
