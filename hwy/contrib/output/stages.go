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
	"errors"
	"fmt"

	"github.com/chenkaiidy/gemmlowp/hwy"
)

// ErrInvalidStage is wrapped by every error returned from Validate.
var ErrInvalidStage = errors.New("output: invalid stage")

// VectorShape selects which destination axis a per-channel vector follows.
type VectorShape int

const (
	// Col shape: one entry per destination row, indexed by the absolute row.
	// Within a column fragment the entries vary lane by lane.
	Col VectorShape = iota
	// Row shape: one entry per destination column, indexed by the absolute
	// column. Within a column fragment the entry is broadcast to every lane.
	Row
)

func (s VectorShape) String() string {
	switch s {
	case Col:
		return "Col"
	case Row:
		return "Row"
	default:
		return fmt.Sprintf("VectorShape(%d)", int(s))
	}
}

// VectorMap is a per-channel parameter vector.
type VectorMap struct {
	Data  []int32
	Shape VectorShape
}

// ColVector returns a Col-shaped map over data (one entry per row).
func ColVector(data []int32) VectorMap { return VectorMap{Data: data, Shape: Col} }

// RowVector returns a Row-shaped map over data (one entry per column).
func RowVector(data []int32) VectorMap { return VectorMap{Data: data, Shape: Row} }

// Len returns the number of entries.
func (m VectorMap) Len() int { return len(m.Data) }

// Value returns entry i.
func (m VectorMap) Value(i int) int32 {
	if i < 0 || i >= len(m.Data) {
		panic(fmt.Sprintf("output: %s vector index %d out of range [0,%d)", m.Shape, i, len(m.Data)))
	}
	return m.Data[i]
}

// Slice returns the entries starting at i.
func (m VectorMap) Slice(i int) []int32 {
	if i < 0 || i > len(m.Data) {
		panic(fmt.Sprintf("output: %s vector index %d out of range [0,%d]", m.Shape, i, len(m.Data)))
	}
	return m.Data[i:]
}

// index returns the entry position for the element at (row, col).
func (m VectorMap) index(row, col int) int {
	if m.Shape == Row {
		return col
	}
	return row
}

// lanes returns the parameter register for a four-row column fragment at
// (row, col): four consecutive entries for Col shape, one broadcast entry
// for Row shape.
func (m VectorMap) lanes(row, col int) hwy.Int32x4 {
	if m.Shape == Row {
		return hwy.BroadcastInt32x4(m.Value(col))
	}
	s := m.Slice(row)
	if len(s) < 4 {
		panic(fmt.Sprintf("output: Col vector of length %d too short for rows %d..%d", len(m.Data), row, row+3))
	}
	return hwy.LoadInt32x4Slice(s)
}

func (m VectorMap) validate(name string) error {
	if len(m.Data) == 0 {
		return fmt.Errorf("%w: %s vector is empty", ErrInvalidStage, name)
	}
	if m.Shape != Row && m.Shape != Col {
		return fmt.Errorf("%w: %s has unknown shape %d", ErrInvalidStage, name, int(m.Shape))
	}
	return nil
}

// UniformRescale computes ((x + Offset) * Multiplier + r) >> Shift with
// r = 2^(Shift-1) for Shift >= 1. A Shift of zero or less neither rounds
// nor shifts. Arithmetic wraps like int32.
type UniformRescale struct {
	Offset     int32
	Multiplier int32
	Shift      int32
}

// Validate reports whether s can be evaluated.
func (s UniformRescale) Validate() error {
	if s.Shift > 31 {
		return fmt.Errorf("%w: UniformRescale shift %d exceeds 31", ErrInvalidStage, s.Shift)
	}
	return nil
}

// PerChannelRescale is UniformRescale with a multiplier and an offset per
// row (Col shape) or per column (Row shape). Both vectors share one shape
// and are indexed by absolute destination coordinates.
type PerChannelRescale struct {
	Offset     VectorMap
	Multiplier VectorMap
	Shift      int32
}

// Validate reports whether s can be evaluated.
func (s PerChannelRescale) Validate() error {
	if err := s.Offset.validate("PerChannelRescale offset"); err != nil {
		return err
	}
	if err := s.Multiplier.validate("PerChannelRescale multiplier"); err != nil {
		return err
	}
	if s.Offset.Shape != s.Multiplier.Shape {
		return fmt.Errorf("%w: PerChannelRescale offset is %s-shaped but multiplier is %s-shaped",
			ErrInvalidStage, s.Offset.Shape, s.Multiplier.Shape)
	}
	if s.Offset.Len() != s.Multiplier.Len() {
		return fmt.Errorf("%w: PerChannelRescale offset has %d entries, multiplier %d",
			ErrInvalidStage, s.Offset.Len(), s.Multiplier.Len())
	}
	if s.Shift > 31 {
		return fmt.Errorf("%w: PerChannelRescale shift %d exceeds 31", ErrInvalidStage, s.Shift)
	}
	return nil
}

// FixedPointRescale multiplies by a Q0.31 multiplier with
// SaturatingRoundingDoublingHighMul, then rounds and shifts right by Shift,
// then adds OffsetAfterShift.
type FixedPointRescale struct {
	FixedPointMultiplier int32
	Shift                int32
	OffsetAfterShift     int32
}

// Validate reports whether s can be evaluated.
func (s FixedPointRescale) Validate() error {
	if s.Shift > 31 {
		return fmt.Errorf("%w: FixedPointRescale shift %d exceeds 31", ErrInvalidStage, s.Shift)
	}
	return nil
}

// SaturatingNarrow narrows int32 lanes to uint8 lanes, saturating to [0, 255].
type SaturatingNarrow struct{}

// Validate always succeeds.
func (SaturatingNarrow) Validate() error { return nil }

// BiasAdd adds a per-row (Col shape) or per-column (Row shape) bias.
type BiasAdd struct {
	Bias VectorMap
}

// Validate reports whether s can be evaluated.
func (s BiasAdd) Validate() error {
	return s.Bias.validate("BiasAdd bias")
}

// Clamp bounds each value to [Min, Max]. Min must not exceed Max.
type Clamp struct {
	Min int32
	Max int32
}

// Validate reports whether s can be evaluated.
func (s Clamp) Validate() error {
	if s.Min > s.Max {
		return fmt.Errorf("%w: Clamp min %d > max %d", ErrInvalidStage, s.Min, s.Max)
	}
	return nil
}

// Tanh applies a saturating fixed-point tanh. RealZero is the int32 value
// that represents the real number 0 and RealAmplitude is the int32 distance
// that represents the real number 1, on both input and output.
//
// Inputs at or below RealZero - 8*RealAmplitude return RealZero - RealAmplitude;
// inputs at or above RealZero + 8*RealAmplitude return RealZero + RealAmplitude.
type Tanh struct {
	RealZero      int32
	RealAmplitude int32
}

// NewTanh returns a validated Tanh stage.
func NewTanh(realZero, realAmplitude int32) (Tanh, error) {
	t := Tanh{RealZero: realZero, RealAmplitude: realAmplitude}
	if err := t.Validate(); err != nil {
		return Tanh{}, err
	}
	return t, nil
}

// Validate reports whether t can be evaluated.
func (t Tanh) Validate() error {
	if t.RealAmplitude <= 0 {
		return fmt.Errorf("%w: Tanh amplitude %d must be positive", ErrInvalidStage, t.RealAmplitude)
	}
	return nil
}

// roundingTerm returns 2^(shift-1), or 0 when shift < 1.
func roundingTerm(shift int32) int32 {
	if shift < 1 {
		return 0
	}
	return int32(1) << uint(min(shift, 31)-1)
}
