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

// decomposed evaluates a wide fragment as independent narrow sub-fragments.
type decomposed[W, N, NOut, WOut Fragment] struct {
	narrow Evaluator[N, NOut]
	split  func(W) []N
	join   func([]NOut) WOut
}

func (d decomposed[W, N, NOut, WOut]) Eval(in W, row, col int) WOut {
	parts := d.split(in)
	outs := make([]NOut, len(parts))
	for i, p := range parts {
		// Sub-fragments stack along the row axis.
		outs[i] = d.narrow.Eval(p, row+i*p.Rows(), col)
	}
	return d.join(outs)
}

// Decompose builds a wide evaluator out of a narrow one. split breaks the
// wide input into sub-fragments stacked along rows; each is evaluated at its
// own absolute row, and join reassembles the results in the same order.
// Any stage with a narrow binding thereby works on the wide fragment, and
// the result matches evaluating each sub-fragment separately.
func Decompose[W, N, NOut, WOut Fragment](narrow Evaluator[N, NOut], split func(W) []N, join func([]NOut) WOut) Evaluator[W, WOut] {
	return decomposed[W, N, NOut, WOut]{narrow: narrow, split: split, join: join}
}

// Decompose16 is the default 16-wide binding of an int32 stage: four
// Int32x4x1 evaluations at rows row, row+4, row+8 and row+12.
func Decompose16(narrow Evaluator[Int32x4x1, Int32x4x1]) Evaluator[Int32x16x1, Int32x16x1] {
	return Decompose(narrow, splitInt32x16, joinInt32x16)
}

// Decompose16Narrow is the default 16-wide binding of a narrowing stage.
func Decompose16Narrow(narrow Evaluator[Int32x4x1, Uint8x4x1]) Evaluator[Int32x16x1, Uint8x16x1] {
	return Decompose(narrow, splitInt32x16, joinUint8x16)
}

func splitInt32x16(f Int32x16x1) []Int32x4x1 {
	return []Int32x4x1{{f.Data[0]}, {f.Data[1]}, {f.Data[2]}, {f.Data[3]}}
}

func joinInt32x16(parts []Int32x4x1) Int32x16x1 {
	var out Int32x16x1
	for i, p := range parts {
		out.Data[i] = p.Data
	}
	return out
}

func joinUint8x16(parts []Uint8x4x1) Uint8x16x1 {
	var out Uint8x16x1
	for i, p := range parts {
		copy(out.Data[4*i:], p.Elements())
	}
	return out
}
