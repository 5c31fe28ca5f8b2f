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

// Storer is a final fragment that can be written to a destination of T.
type Storer[T Element] interface {
	Fragment
	StoreTo(dst Destination[T], row, col int)
}

// Pipeline pairs an evaluator with the store of its output fragment. It is
// immutable and safe for concurrent use when its stages are.
type Pipeline[T Element, In Fragment, Out Storer[T]] struct {
	eval Evaluator[In, Out]
}

// NewPipeline returns a pipeline around eval. Only the destination element
// type needs to be given:
//
//	p := output.NewPipeline[uint8](output.Chain(output.Int32x4Stages(stages), output.SaturatingNarrow{}.BindInt32x4()))
func NewPipeline[T Element, In Fragment, Out Storer[T]](eval Evaluator[In, Out]) Pipeline[T, In, Out] {
	return Pipeline[T, In, Out]{eval: eval}
}

// Evaluate runs the stages on a fragment whose top-left element is at
// (row, col) of the destination.
func (p Pipeline[T, In, Out]) Evaluate(in In, row, col int) Out {
	return p.eval.Eval(in, row, col)
}

// Store writes an evaluated fragment at (row, col) of dst.
func (p Pipeline[T, In, Out]) Store(out Out, dst Destination[T], row, col int) {
	out.StoreTo(dst, row, col)
}

// EvaluateAndStore runs the stages and stores the result at (row, col).
func (p Pipeline[T, In, Out]) EvaluateAndStore(in In, dst Destination[T], row, col int) {
	p.Store(p.Evaluate(in, row, col), dst, row, col)
}
