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
	"math"
	"math/rand"
	"testing"
)

var sampleInputs = []int32{
	math.MinInt32, math.MinInt32 + 1, -1 << 24, -70000, -65536, -256, -255, -1,
	0, 1, 100, 128, 255, 256, 32768, 65535, 70000, 1 << 24, math.MaxInt32 - 1, math.MaxInt32,
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func ramp(n int, start, step int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = start + int32(i)*step
	}
	return out
}

// setWideKernels forces the 16-row bindings for the duration of the test.
func setWideKernels(t *testing.T, on bool) {
	t.Helper()
	old := wideKernels
	wideKernels = on
	t.Cleanup(func() { wideKernels = old })
}

type namedStage struct {
	name  string
	stage Int32Stage
}

// testStages covers every int32 stage and both vector shapes. Per-channel
// vectors have 64 entries so fragments up to row or column 48 are covered.
func testStages() []namedStage {
	return []namedStage{
		{"UniformRescale", UniformRescale{Offset: 3, Multiplier: 5, Shift: 3}},
		{"UniformRescale/shift0", UniformRescale{Offset: -7, Multiplier: 11, Shift: 0}},
		{"UniformRescale/shift31", UniformRescale{Offset: 1, Multiplier: 1, Shift: 31}},
		{"PerChannelRescale/Col", PerChannelRescale{
			Offset:     ColVector(ramp(64, -32, 1)),
			Multiplier: ColVector(ramp(64, 1, 3)),
			Shift:      2,
		}},
		{"PerChannelRescale/Row", PerChannelRescale{
			Offset:     RowVector(ramp(64, 5, -2)),
			Multiplier: RowVector(ramp(64, 2, 1)),
			Shift:      5,
		}},
		{"FixedPointRescale", FixedPointRescale{FixedPointMultiplier: 1 << 30, Shift: 2, OffsetAfterShift: 7}},
		{"FixedPointRescale/shift0", FixedPointRescale{FixedPointMultiplier: 1234567890, OffsetAfterShift: -3}},
		{"BiasAdd/Col", BiasAdd{Bias: ColVector(ramp(64, -100, 7))}},
		{"BiasAdd/Row", BiasAdd{Bias: RowVector(ramp(64, 1000, -31))}},
		{"Clamp", Clamp{Min: -100, Max: 100000}},
		{"Tanh", Tanh{RealZero: 128, RealAmplitude: 64}},
		{"Tanh/wide", Tanh{RealZero: -5, RealAmplitude: 1 << 20}},
	}
}

// Int32x4x1 kernels must agree with the scalar reference.
func TestInt32x4MatchesReference(t *testing.T) {
	for _, ns := range testStages() {
		eval := ns.stage.BindInt32x4()
		for _, pos := range [][2]int{{0, 0}, {4, 3}, {44, 17}} {
			row, col := pos[0], pos[1]
			for start := 0; start+4 <= len(sampleInputs); start++ {
				in := sampleInputs[start : start+4]
				got := eval.Eval(NewInt32x4x1(in), row, col).Elements()
				for i := range got {
					want := ReferenceEval(ns.stage, in[i], row+i, col)
					if got[i] != want {
						t.Errorf("%s at (%d,%d): lane %d input %d: got %d, want %d",
							ns.name, row, col, i, in[i], got[i], want)
					}
				}
			}
		}
	}
}

// The 16-row binding, with and without the hand-tuned kernels, equals four
// Int32x4x1 evaluations at rows row, row+4, row+8 and row+12.
func TestInt32x16MatchesDecomposition(t *testing.T) {
	rng := newTestRand()
	for _, wide := range []bool{false, true} {
		setWideKernels(t, wide)
		for _, ns := range testStages() {
			wideEval := ns.stage.BindInt32x16()
			narrowEval := ns.stage.BindInt32x4()
			for trial := range 20 {
				in := make([]int32, 16)
				for i := range in {
					if trial < 4 {
						in[i] = sampleInputs[(i+trial*5)%len(sampleInputs)]
					} else {
						in[i] = int32(rng.Uint32())
					}
				}
				row, col := 16*(trial%3), trial%5
				got := wideEval.Eval(NewInt32x16x1(in), row, col).Elements()
				for p := range 4 {
					part := narrowEval.Eval(NewInt32x4x1(in[4*p:]), row+4*p, col).Elements()
					for i, want := range part {
						if got[4*p+i] != want {
							t.Errorf("%s (wide=%v) at (%d,%d): row %d input %d: got %d, want %d",
								ns.name, wide, row, col, 4*p+i, in[4*p+i], got[4*p+i], want)
						}
					}
				}
			}
		}
	}
}

func TestDecomposeGeneric(t *testing.T) {
	var rows []int
	probe := EvalFunc[Int32x4x1, Int32x4x1](func(in Int32x4x1, row, _ int) Int32x4x1 {
		rows = append(rows, row)
		return in
	})
	in := NewInt32x16x1(ramp(16, 0, 1))
	got := Decompose16(probe).Eval(in, 8, 2).Elements()
	for i, v := range got {
		if v != int32(i) {
			t.Errorf("element %d: got %d, want %d", i, v, i)
		}
	}
	wantRows := []int{8, 12, 16, 20}
	if len(rows) != len(wantRows) {
		t.Fatalf("got %d sub-evaluations, want %d", len(rows), len(wantRows))
	}
	for i := range rows {
		if rows[i] != wantRows[i] {
			t.Errorf("sub-fragment %d evaluated at row %d, want %d", i, rows[i], wantRows[i])
		}
	}
}

func TestUniformRescaleRounding(t *testing.T) {
	tests := []struct {
		name  string
		stage UniformRescale
		in    int32
		want  int32
	}{
		{"shift0", UniformRescale{Offset: 2, Multiplier: 3, Shift: 0}, 5, 21},
		{"negativeShift", UniformRescale{Offset: 2, Multiplier: 3, Shift: -4}, 5, 21},
		{"shift4", UniformRescale{Offset: 0, Multiplier: 3, Shift: 4}, 1000, 187},
		{"shift4/negative", UniformRescale{Offset: 0, Multiplier: 3, Shift: 4}, -1000, -187},
		{"shift1/halfUp", UniformRescale{Multiplier: 1, Shift: 1}, 7, 4},
		{"shift1/negativeHalf", UniformRescale{Multiplier: 1, Shift: 1}, -7, -3},
		{"shift1/even", UniformRescale{Multiplier: 1, Shift: 1}, 6, 3},
		{"offset", UniformRescale{Offset: 10, Multiplier: 2, Shift: 2}, 3, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.stage.BindInt32x4().Eval(NewInt32x4x1([]int32{tt.in, tt.in, tt.in, tt.in}), 0, 0)
			for i, got := range f.Elements() {
				if got != tt.want {
					t.Errorf("lane %d: got %d, want %d", i, got, tt.want)
				}
			}
			if got := ReferenceEval(tt.stage, tt.in, 0, 0); got != tt.want {
				t.Errorf("ReferenceEval: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSaturatingNarrow(t *testing.T) {
	in := []int32{
		-1000, -1, 0, 1, 254, 255, 256, 1 << 20,
		math.MinInt32, math.MaxInt32, 32767, 32768, 65535, 128, 100, 70000,
	}
	want := []uint8{0, 0, 0, 1, 254, 255, 255, 255, 0, 255, 255, 255, 255, 128, 100, 255}

	var s SaturatingNarrow
	for p := range 4 {
		got := s.BindInt32x4().Eval(NewInt32x4x1(in[4*p:]), 4*p, 0).Elements()
		for i := range got {
			if got[i] != want[4*p+i] {
				t.Errorf("Int32x4x1: input %d: got %d, want %d", in[4*p+i], got[i], want[4*p+i])
			}
		}
	}
	for _, wide := range []bool{false, true} {
		setWideKernels(t, wide)
		got := s.BindInt32x16().Eval(NewInt32x16x1(in), 0, 0).Elements()
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("Int32x16x1 (wide=%v): input %d: got %d, want %d", wide, in[i], got[i], want[i])
			}
		}
	}
	// Every prefix length, so the packing sees partial and empty chunks.
	for n := 1; n <= len(in); n++ {
		got := s.BindVec().Eval(NewVecFragment(in[:n], n, 1, ColMajor), 0, 0).Elements()
		if len(got) != n {
			t.Fatalf("VecFragment of %d: got %d elements", n, len(got))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("VecFragment of %d: input %d: got %d, want %d", n, in[i], got[i], want[i])
			}
		}
	}
}

func TestPerChannelIndexing(t *testing.T) {
	mults := ramp(32, 1, 1)
	offsets := make([]int32, 32)
	in := NewInt32x4x1([]int32{10, 10, 10, 10})

	perRow := PerChannelRescale{Offset: ColVector(offsets), Multiplier: ColVector(mults)}
	got := perRow.BindInt32x4().Eval(in, 4, 7).Elements()
	for i := range got {
		// Rows 4..7 use multipliers 5..8.
		if want := 10 * int32(5+i); got[i] != want {
			t.Errorf("Col shape: lane %d: got %d, want %d", i, got[i], want)
		}
	}

	perCol := PerChannelRescale{Offset: RowVector(offsets), Multiplier: RowVector(mults)}
	got = perCol.BindInt32x4().Eval(in, 4, 2).Elements()
	for i := range got {
		if got[i] != 30 {
			t.Errorf("Row shape: lane %d: got %d, want 30", i, got[i])
		}
	}
}

func TestClampBoundary(t *testing.T) {
	c := Clamp{Min: 10, Max: 20}
	got := c.BindInt32x4().Eval(NewInt32x4x1([]int32{-5, 15, 25, 20}), 0, 0).Elements()
	want := []int32{10, 15, 20, 20}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("lane %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBiasAddShape(t *testing.T) {
	bias := []int32{5, 10, 15, 20}
	in := NewInt32x4x1([]int32{1, 2, 3, 4})

	// One entry per column: every row of column 0 gets bias[0].
	got := BiasAdd{Bias: RowVector(bias)}.BindInt32x4().Eval(in, 0, 0).Elements()
	for i, want := range []int32{6, 7, 8, 9} {
		if got[i] != want {
			t.Errorf("Row shape: lane %d: got %d, want %d", i, got[i], want)
		}
	}

	// One entry per row: lanes follow the vector.
	got = BiasAdd{Bias: ColVector(bias)}.BindInt32x4().Eval(in, 0, 3).Elements()
	for i, want := range []int32{6, 12, 18, 24} {
		if got[i] != want {
			t.Errorf("Col shape: lane %d: got %d, want %d", i, got[i], want)
		}
	}
}

func TestShortColVectorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a Col vector shorter than the fragment")
		}
	}()
	b := BiasAdd{Bias: ColVector([]int32{1, 2, 3, 4, 5, 6})}
	b.BindInt32x4().Eval(NewInt32x4x1(make([]int32, 4)), 4, 0)
}

func TestTanhStage(t *testing.T) {
	tanh, err := NewTanh(128, 64)
	if err != nil {
		t.Fatalf("NewTanh: %v", err)
	}
	eval := tanh.BindInt32x4()
	at := func(x int32) int32 {
		return eval.Eval(NewInt32x4x1([]int32{x, x, x, x}), 0, 0).Data[0]
	}

	if got := at(128); got != 128 {
		t.Errorf("tanh(zero): got %d, want 128", got)
	}
	// Saturation at and beyond zero ± 8*amplitude.
	for _, x := range []int32{128 + 8*64, 128 + 8*64 + 1, math.MaxInt32} {
		if got := at(x); got != 192 {
			t.Errorf("tanh(%d): got %d, want 192", x, got)
		}
	}
	for _, x := range []int32{128 - 8*64, 128 - 8*64 - 1, math.MinInt32} {
		if got := at(x); got != 64 {
			t.Errorf("tanh(%d): got %d, want 64", x, got)
		}
	}

	prev := at(128 - 8*64)
	for x := int32(128 - 8*64); x <= 128+8*64; x++ {
		got := at(x)
		if got < prev {
			t.Fatalf("not monotonic at %d: %d < %d", x, got, prev)
		}
		prev = got
		want := 128 + 64*math.Tanh(float64(x-128)/64)
		if math.Abs(float64(got)-want) > 2 {
			t.Errorf("tanh(%d): got %d, want about %.2f", x, got, want)
		}
	}
}

// Amplitudes this large put x - zero outside int32 for inputs between the
// cutoffs, and the ones above 2^29 shift the normalized input right.
func TestTanhLargeAmplitude(t *testing.T) {
	params := []struct{ zero, amp int32 }{
		{-1 << 30, 1 << 29},
		{-1 << 30, 1 << 30},
		{1 << 29, 3 << 29},
		{0, math.MaxInt32},
	}
	for _, p := range params {
		tanh, err := NewTanh(p.zero, p.amp)
		if err != nil {
			t.Fatalf("NewTanh(%d, %d): %v", p.zero, p.amp, err)
		}
		eval := tanh.BindInt32x4()
		var inputs []int32
		for i := range 4096 {
			inputs = append(inputs, int32(int64(math.MinInt32)+int64(i)<<20))
		}
		inputs = append(inputs, math.MaxInt32-1, math.MaxInt32)
		vec := tanh.BindVec().Eval(NewVecFragment(inputs, len(inputs), 1, ColMajor), 0, 0)

		tol := float64(p.amp)*2e-5 + 8
		prev := int32(math.MinInt32)
		for i, x := range inputs {
			got := eval.Eval(NewInt32x4x1([]int32{x, x, x, x}), 0, 0).Data[0]
			if ref := ReferenceEval(tanh, x, 0, 0); got != ref {
				t.Errorf("zero=%d amp=%d: tanh(%d): got %d, reference %d", p.zero, p.amp, x, got, ref)
			}
			if v := vec.At(i, 0); v != got {
				t.Errorf("zero=%d amp=%d: tanh(%d): Vec got %d, Int32x4 got %d", p.zero, p.amp, x, v, got)
			}
			if got < prev {
				t.Fatalf("zero=%d amp=%d: not monotonic at %d: %d < %d", p.zero, p.amp, x, got, prev)
			}
			prev = got
			want := float64(p.zero) + float64(p.amp)*math.Tanh((float64(x)-float64(p.zero))/float64(p.amp))
			if math.Abs(float64(got)-want) > tol {
				t.Errorf("zero=%d amp=%d: tanh(%d): got %d, want about %.0f", p.zero, p.amp, x, got, want)
			}
		}
	}
}

func TestVecMatchesReference(t *testing.T) {
	rng := newTestRand()
	shapes := []struct{ rows, cols int }{{1, 1}, {3, 5}, {7, 2}, {5, 9}, {16, 1}}
	for _, ns := range testStages() {
		eval := ns.stage.BindVec()
		for _, shape := range shapes {
			for _, order := range []MapOrder{ColMajor, RowMajor} {
				data := make([]int32, shape.rows*shape.cols)
				for i := range data {
					data[i] = int32(rng.Uint32())
				}
				in := NewVecFragment(data, shape.rows, shape.cols, order)
				row, col := 9, 13
				got := eval.Eval(in, row, col)
				for r := range shape.rows {
					for c := range shape.cols {
						want := ReferenceEval(ns.stage, in.At(r, c), row+r, col+c)
						if got.At(r, c) != want {
							t.Errorf("%s %dx%d %s: (%d,%d): got %d, want %d",
								ns.name, shape.rows, shape.cols, order, r, c, got.At(r, c), want)
						}
					}
				}
			}
		}
	}
}

func TestChainAndIdentity(t *testing.T) {
	in := NewInt32x4x1([]int32{1, 2, 3, 4})
	if got := Int32x4Stages(nil).Eval(in, 0, 0); got != in {
		t.Errorf("empty stage list: got %v, want %v", got, in)
	}
	stages := []Int32Stage{
		UniformRescale{Multiplier: 10},
		BiasAdd{Bias: RowVector([]int32{0, 5})},
		Clamp{Min: 0, Max: 30},
	}
	got := Int32x4Stages(stages).Eval(in, 0, 1).Elements()
	for i, want := range []int32{15, 25, 30, 30} {
		if got[i] != want {
			t.Errorf("lane %d: got %d, want %d", i, got[i], want)
		}
	}
}

func BenchmarkInt32x16(b *testing.B) {
	stages := []Int32Stage{
		UniformRescale{Offset: 3, Multiplier: 5, Shift: 3},
		BiasAdd{Bias: ColVector(ramp(16, 0, 1))},
		Clamp{Min: 0, Max: 255},
	}
	in := NewInt32x16x1(ramp(16, -1000, 137))
	for _, wide := range []bool{false, true} {
		old := wideKernels
		wideKernels = wide
		eval := Chain(Int32x16Stages(stages), SaturatingNarrow{}.BindInt32x16())
		wideKernels = old
		name := "Decompose16"
		if wide {
			name = "Wide"
		}
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				_ = eval.Eval(in, 0, 0)
			}
		})
	}
}
