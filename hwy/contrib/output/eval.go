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

// Evaluator applies one stage, or a chain of stages, to a fragment whose
// top-left element sits at absolute destination coordinates (row, col).
type Evaluator[In, Out Fragment] interface {
	Eval(in In, row, col int) Out
}

// EvalFunc adapts a function to the Evaluator interface.
type EvalFunc[In, Out Fragment] func(in In, row, col int) Out

// Eval calls f(in, row, col).
func (f EvalFunc[In, Out]) Eval(in In, row, col int) Out {
	return f(in, row, col)
}

// Stage is the part every output stage shares.
type Stage interface {
	Validate() error
}

// Int32Stage is an int32 -> int32 stage bound to every int32 fragment kind.
// A type that lacks one of the bindings does not satisfy the interface, so a
// pipeline cannot be built from it.
type Int32Stage interface {
	Stage
	BindInt32x4() Evaluator[Int32x4x1, Int32x4x1]
	BindInt32x16() Evaluator[Int32x16x1, Int32x16x1]
	BindVec() Evaluator[VecFragment[int32], VecFragment[int32]]
}

// NarrowingStage is an int32 -> uint8 stage bound to every int32 fragment kind.
type NarrowingStage interface {
	Stage
	BindInt32x4() Evaluator[Int32x4x1, Uint8x4x1]
	BindInt32x16() Evaluator[Int32x16x1, Uint8x16x1]
	BindVec() Evaluator[VecFragment[int32], VecFragment[uint8]]
}

// Compile-time checks that every stage carries all of its bindings.
var (
	_ Int32Stage     = UniformRescale{}
	_ Int32Stage     = PerChannelRescale{}
	_ Int32Stage     = FixedPointRescale{}
	_ Int32Stage     = BiasAdd{}
	_ Int32Stage     = Clamp{}
	_ Int32Stage     = Tanh{}
	_ NarrowingStage = SaturatingNarrow{}
)

type chain[A, B, C Fragment] struct {
	first  Evaluator[A, B]
	second Evaluator[B, C]
}

func (c chain[A, B, C]) Eval(in A, row, col int) C {
	return c.second.Eval(c.first.Eval(in, row, col), row, col)
}

// Chain returns an evaluator that runs first and feeds its result to second
// at the same coordinates. The intermediate fragment type must match.
func Chain[A, B, C Fragment](first Evaluator[A, B], second Evaluator[B, C]) Evaluator[A, C] {
	return chain[A, B, C]{first: first, second: second}
}

type identity[F Fragment] struct{}

func (identity[F]) Eval(in F, _, _ int) F { return in }

// Identity returns an evaluator that returns its input unchanged.
func Identity[F Fragment]() Evaluator[F, F] {
	return identity[F]{}
}

// Int32x4Stages folds stages, in order, into one evaluator over Int32x4x1.
func Int32x4Stages(stages []Int32Stage) Evaluator[Int32x4x1, Int32x4x1] {
	return fold(stages, Int32Stage.BindInt32x4)
}

// Int32x16Stages folds stages, in order, into one evaluator over Int32x16x1.
func Int32x16Stages(stages []Int32Stage) Evaluator[Int32x16x1, Int32x16x1] {
	return fold(stages, Int32Stage.BindInt32x16)
}

// VecStages folds stages, in order, into one evaluator over VecFragment[int32].
func VecStages(stages []Int32Stage) Evaluator[VecFragment[int32], VecFragment[int32]] {
	return fold(stages, Int32Stage.BindVec)
}

func fold[F Fragment](stages []Int32Stage, bind func(Int32Stage) Evaluator[F, F]) Evaluator[F, F] {
	if len(stages) == 0 {
		return Identity[F]()
	}
	eval := bind(stages[0])
	for _, s := range stages[1:] {
		eval = Chain(eval, bind(s))
	}
	return eval
}
