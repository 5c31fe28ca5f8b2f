// Package hwy provides the lane layer used by the output pipeline: portable
// vector operations with runtime CPU dispatch, and a fixed 128-bit register
// model for kernels written against a four-int32-lane target.
//
// Two families of types live here:
//
//   - Vec[T] and Mask[T] are width-agnostic. Their lane count follows the
//     detected SIMD width (MaxLanes), so code written against them works for
//     any element width and any register size.
//   - Int32x4, Int16x8 and Uint8x16 model one 128-bit register. They carry
//     the saturating pack operations that the narrowing kernels rely on.
//
// Basic usage:
//
//	import "github.com/chenkaiidy/gemmlowp/hwy"
//
//	a := hwy.Load(acc)
//	b := hwy.Set[int32](offset)
//	hwy.Store(hwy.Add(a, b), out)
package hwy

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
// The output pipeline only ever works on integer lanes.
type Lanes interface {
	Integers
}

// Vec is a portable vector handle.
// In base (scalar) mode, it wraps a slice.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	return v.data
}

// Store writes the vector's data to a slice.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Mask represents the result of a comparison operation.
// It can be used with IfThenElse, MaskLoad, and MaskStore to perform
// conditional operations.
type Mask[T Lanes] struct {
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit {
			return true
		}
	}
	return false
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}
