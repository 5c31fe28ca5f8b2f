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

	"github.com/chenkaiidy/gemmlowp/hwy/contrib/fixedpoint"
)

// ReferenceEval applies stage to the single value v located at (row, col) of
// the destination, one scalar at a time. Every kernel in this package agrees
// with it bit for bit. SaturatingNarrow returns the narrowed value widened
// back to int32.
func ReferenceEval(stage Stage, v int32, row, col int) int32 {
	switch s := stage.(type) {
	case UniformRescale:
		return referenceRescale(v, s.Offset, s.Multiplier, s.Shift)
	case PerChannelRescale:
		i := s.Offset.index(row, col)
		return referenceRescale(v, s.Offset.Value(i), s.Multiplier.Value(i), s.Shift)
	case FixedPointRescale:
		m := fixedpoint.SaturatingRoundingDoublingHighMul(v, s.FixedPointMultiplier)
		if s.Shift >= 1 {
			m = (m + roundingTerm(s.Shift)) >> uint(min(s.Shift, 31))
		}
		return m + s.OffsetAfterShift
	case SaturatingNarrow:
		return min(max(v, 0), 255)
	case BiasAdd:
		return v + s.Bias.Value(s.Bias.index(row, col))
	case Clamp:
		return min(max(v, s.Min), s.Max)
	case Tanh:
		return newTanhKernel(s).eval(v)
	default:
		panic(fmt.Sprintf("output: no reference for stage %T", stage))
	}
}

func referenceRescale(v, offset, mult, shift int32) int32 {
	x := (v + offset) * mult
	if shift < 1 {
		return x
	}
	return (x + roundingTerm(shift)) >> uint(min(shift, 31))
}

// ReferenceEvalStages applies stages in order to v.
func ReferenceEvalStages(stages []Int32Stage, v int32, row, col int) int32 {
	for _, s := range stages {
		v = ReferenceEval(s, v, row, col)
	}
	return v
}
