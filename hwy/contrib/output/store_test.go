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

import "testing"

func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", what)
		}
	}()
	fn()
}

func TestMatrixMapIndexing(t *testing.T) {
	data := make([]int32, 12)
	m := NewMatrixMapWithStride(data, 2, 3, 4, ColMajor)
	m.Set(1, 2, 7)
	if data[1+2*4] != 7 {
		t.Errorf("ColMajor stride 4: (1,2) stored at wrong offset: %v", data)
	}
	if got := m.At(1, 2); got != 7 {
		t.Errorf("At(1,2): got %d, want 7", got)
	}

	data = make([]int32, 6)
	r := NewMatrixMap(data, 2, 3, RowMajor)
	r.Set(1, 0, 9)
	if data[3] != 9 {
		t.Errorf("RowMajor: (1,0) stored at wrong offset: %v", data)
	}
	if r.Stride() != 3 {
		t.Errorf("Stride: got %d, want 3", r.Stride())
	}

	expectPanic(t, "At out of range", func() { r.At(2, 0) })
	expectPanic(t, "short data", func() { NewMatrixMap(make([]int32, 5), 2, 3, RowMajor) })
	expectPanic(t, "small stride", func() { NewMatrixMapWithStride(make([]int32, 8), 4, 2, 3, ColMajor) })
}

// Each register of a 16-row fragment lands on its own group of four rows.
func TestInt32x16StoreDistinctAddresses(t *testing.T) {
	f := NewInt32x16x1(ramp(16, 100, 1))
	for _, order := range []MapOrder{ColMajor, RowMajor} {
		dst := NewMatrixMap(make([]int32, 40), 20, 2, order)
		f.StoreTo(dst, 2, 1)
		for r := range 20 {
			want := int32(0)
			if r >= 2 && r < 18 {
				want = int32(100 + r - 2)
			}
			if got := dst.At(r, 1); got != want {
				t.Errorf("%s: (%d,1): got %d, want %d", order, r, got, want)
			}
			if got := dst.At(r, 0); got != 0 {
				t.Errorf("%s: column 0 row %d overwritten with %d", order, r, got)
			}
		}
	}
}

func TestUint8x4StoreWritesFourBytes(t *testing.T) {
	data := make([]uint8, 8)
	for i := range data {
		data[i] = 0xAA
	}
	dst := NewMatrixMap(data, 8, 1, ColMajor)
	NewUint8x4x1([]uint8{1, 2, 3, 4}).StoreTo(dst, 2, 0)

	want := []uint8{0xAA, 0xAA, 1, 2, 3, 4, 0xAA, 0xAA}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("byte %d: got %#x, want %#x", i, data[i], want[i])
		}
	}

	expectPanic(t, "store past the last row", func() {
		NewUint8x4x1([]uint8{1, 2, 3, 4}).StoreTo(dst, 5, 0)
	})
}

func TestUint8StoreRowMajor(t *testing.T) {
	dst := NewMatrixMap(make([]uint8, 16*3), 16, 3, RowMajor)
	in := make([]uint8, 16)
	for i := range in {
		in[i] = uint8(i + 1)
	}
	NewUint8x16x1(in).StoreTo(dst, 0, 2)
	NewUint8x4x1(in[:4]).StoreTo(dst, 12, 0)
	for r := range 16 {
		if got := dst.At(r, 2); got != uint8(r+1) {
			t.Errorf("(%d,2): got %d, want %d", r, got, r+1)
		}
		want := uint8(0)
		if r >= 12 {
			want = uint8(r - 11)
		}
		if got := dst.At(r, 0); got != want {
			t.Errorf("(%d,0): got %d, want %d", r, got, want)
		}
	}
}

func TestVecFragmentStore(t *testing.T) {
	for _, fragOrder := range []MapOrder{ColMajor, RowMajor} {
		for _, dstOrder := range []MapOrder{ColMajor, RowMajor} {
			// 2x3 fragment holding 10*r + c.
			f := NewVecFragment(make([]int32, 6), 2, 3, fragOrder)
			for r := range 2 {
				for c := range 3 {
					f.data[f.index(r, c)] = int32(10*r + c)
				}
			}
			dst := NewMatrixMap(make([]int32, 5*5), 5, 5, dstOrder)
			f.StoreTo(dst, 3, 1)
			for r := range 5 {
				for c := range 5 {
					want := int32(0)
					if r >= 3 && c >= 1 && c < 4 {
						want = int32(10*(r-3) + c - 1)
					}
					if got := dst.At(r, c); got != want {
						t.Errorf("%s into %s: (%d,%d): got %d, want %d", fragOrder, dstOrder, r, c, got, want)
					}
				}
			}
		}
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	in := ramp(16, -8, 3)
	if got := NewInt32x4x1(in).Elements(); len(got) != 4 || got[3] != in[3] {
		t.Errorf("Int32x4x1: got %v", got)
	}
	got16 := NewInt32x16x1(in).Elements()
	for i := range in {
		if got16[i] != in[i] {
			t.Errorf("Int32x16x1: element %d: got %d, want %d", i, got16[i], in[i])
		}
	}
	b := []uint8{9, 8, 7, 6}
	f := NewUint8x4x1(b)
	if f.Data != 0x06070809 {
		t.Errorf("Uint8x4x1 packing: got %#x, want 0x06070809", f.Data)
	}
	for i, v := range f.Elements() {
		if v != b[i] {
			t.Errorf("Uint8x4x1: byte %d: got %d, want %d", i, v, b[i])
		}
	}
	expectPanic(t, "short Int32x4x1", func() { NewInt32x4x1([]int32{1, 2, 3}) })
}
