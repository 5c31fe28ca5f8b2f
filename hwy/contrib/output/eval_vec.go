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

	"github.com/chenkaiidy/gemmlowp/hwy"
	"github.com/chenkaiidy/gemmlowp/hwy/contrib/fixedpoint"
)

// This file holds the portable kernels over VecFragment. They walk the
// fragment's backing slice in chunks of hwy.MaxLanes[int32]() lanes, so they
// handle any shape and either order.

// mapVec applies fn to each chunk of f and collects the results in a new
// fragment of the same shape. fn receives the chunk and the offset of its
// first element in f.
func mapVec[U Element](f VecFragment[int32], fn func(v hwy.Vec[int32], offset int) hwy.Vec[U]) VecFragment[U] {
	out := make([]U, f.Len())
	hwy.ProcessWithTail[int32](f.Len(),
		func(offset int) {
			hwy.Store(fn(hwy.Load(f.data[offset:]), offset), out[offset:])
		},
		func(offset, count int) {
			hwy.Store(fn(hwy.LoadN(f.data[offset:], count), offset), out[offset:])
		},
	)
	return withData(f, out)
}

// gatherParams loads the per-channel parameter for each lane of a chunk
// starting at element offset of a fragment placed at (row, col).
func gatherParams(m VectorMap, f VecFragment[int32], offset, lanes, row, col int) hwy.Vec[int32] {
	idx := hwy.IndicesFromFunc(lanes, func(lane int) int32 {
		r, c := f.coords(offset + lane)
		return int32(m.index(row+r, col+c))
	})
	return hwy.GatherIndex(m.Data, idx)
}

// checkCoverage panics if m has no entry for some element of a rows x cols
// fragment at (row, col).
func checkCoverage(m VectorMap, f VecFragment[int32], row, col int) {
	first, extent := row, f.Rows()
	if m.Shape == Row {
		first, extent = col, f.Cols()
	}
	if extent > 0 && (first < 0 || first+extent > len(m.Data)) {
		panic(fmt.Sprintf("output: %s vector of length %d does not cover [%d,%d)", m.Shape, len(m.Data), first, first+extent))
	}
}

func rescaleVec(x, offset, mult hwy.Vec[int32], shift int32) hwy.Vec[int32] {
	v := hwy.Mul(hwy.Add(x, offset), mult)
	if shift < 1 {
		return v
	}
	v = hwy.Add(v, hwy.SetN(roundingTerm(shift), v.NumLanes()))
	return hwy.ShiftRight(v, int(min(shift, 31)))
}

// BindVec returns the portable kernel.
func (s UniformRescale) BindVec() Evaluator[VecFragment[int32], VecFragment[int32]] {
	return EvalFunc[VecFragment[int32], VecFragment[int32]](func(in VecFragment[int32], _, _ int) VecFragment[int32] {
		return mapVec(in, func(v hwy.Vec[int32], _ int) hwy.Vec[int32] {
			n := v.NumLanes()
			return rescaleVec(v, hwy.SetN(s.Offset, n), hwy.SetN(s.Multiplier, n), s.Shift)
		})
	})
}

// BindVec returns the portable kernel. Parameters are gathered per lane from
// the absolute coordinates of each element.
func (s PerChannelRescale) BindVec() Evaluator[VecFragment[int32], VecFragment[int32]] {
	return EvalFunc[VecFragment[int32], VecFragment[int32]](func(in VecFragment[int32], row, col int) VecFragment[int32] {
		checkCoverage(s.Offset, in, row, col)
		checkCoverage(s.Multiplier, in, row, col)
		return mapVec(in, func(v hwy.Vec[int32], offset int) hwy.Vec[int32] {
			n := v.NumLanes()
			off := gatherParams(s.Offset, in, offset, n, row, col)
			mult := gatherParams(s.Multiplier, in, offset, n, row, col)
			return rescaleVec(v, off, mult, s.Shift)
		})
	})
}

// BindVec returns the portable kernel.
func (s FixedPointRescale) BindVec() Evaluator[VecFragment[int32], VecFragment[int32]] {
	return EvalFunc[VecFragment[int32], VecFragment[int32]](func(in VecFragment[int32], _, _ int) VecFragment[int32] {
		return mapVec(in, func(v hwy.Vec[int32], _ int) hwy.Vec[int32] {
			n := v.NumLanes()
			m := fixedpoint.SaturatingRoundingDoublingHighMulVec(v, hwy.SetN(s.FixedPointMultiplier, n))
			if s.Shift >= 1 {
				m = hwy.Add(m, hwy.SetN(roundingTerm(s.Shift), n))
				m = hwy.ShiftRight(m, int(min(s.Shift, 31)))
			}
			return hwy.Add(m, hwy.SetN(s.OffsetAfterShift, n))
		})
	})
}

// BindVec returns the portable kernel.
func (SaturatingNarrow) BindVec() Evaluator[VecFragment[int32], VecFragment[uint8]] {
	return EvalFunc[VecFragment[int32], VecFragment[uint8]](func(in VecFragment[int32], _, _ int) VecFragment[uint8] {
		out := make([]uint8, in.Len())
		n := hwy.MaxLanes[int32]()
		part := func(from int) hwy.Vec[int32] {
			from = min(from, in.Len())
			return hwy.LoadN(in.data[from:], n)
		}
		// Four int32 chunks pack to two int16 vectors, then to one of bytes.
		hwy.ProcessInChunks(in.Len(), 4*n, func(offset, _ int) {
			lo := hwy.DemoteTwoI32ToI16(part(offset), part(offset+n))
			hi := hwy.DemoteTwoI32ToI16(part(offset+2*n), part(offset+3*n))
			hwy.Store(hwy.DemoteTwoI16ToU8(lo, hi), out[offset:])
		})
		return withData(in, out)
	})
}

// BindVec returns the portable kernel.
func (s BiasAdd) BindVec() Evaluator[VecFragment[int32], VecFragment[int32]] {
	return EvalFunc[VecFragment[int32], VecFragment[int32]](func(in VecFragment[int32], row, col int) VecFragment[int32] {
		checkCoverage(s.Bias, in, row, col)
		return mapVec(in, func(v hwy.Vec[int32], offset int) hwy.Vec[int32] {
			return hwy.Add(v, gatherParams(s.Bias, in, offset, v.NumLanes(), row, col))
		})
	})
}

// BindVec returns the portable kernel.
func (s Clamp) BindVec() Evaluator[VecFragment[int32], VecFragment[int32]] {
	return EvalFunc[VecFragment[int32], VecFragment[int32]](func(in VecFragment[int32], _, _ int) VecFragment[int32] {
		return mapVec(in, func(v hwy.Vec[int32], _ int) hwy.Vec[int32] {
			n := v.NumLanes()
			return hwy.Clamp(v, hwy.SetN(s.Min, n), hwy.SetN(s.Max, n))
		})
	})
}

// BindVec returns the portable kernel.
func (t Tanh) BindVec() Evaluator[VecFragment[int32], VecFragment[int32]] {
	k := newTanhKernel(t)
	return EvalFunc[VecFragment[int32], VecFragment[int32]](func(in VecFragment[int32], _, _ int) VecFragment[int32] {
		return mapVec(in, func(v hwy.Vec[int32], _ int) hwy.Vec[int32] {
			return k.evalVec(v)
		})
	})
}
