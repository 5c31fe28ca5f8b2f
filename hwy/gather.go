package hwy

// This file provides pure Go (scalar) implementations of gather operations.
// The per-channel output stages use them to fetch one parameter per row.

// GatherIndex loads elements from non-contiguous memory locations specified by indices.
// For each lane i in the index vector, it loads src[indices[i]].
// If an index is out of bounds (negative or >= len(src)), the result for that lane is zero.
func GatherIndex[T Lanes, I ~int32 | ~int64](src []T, indices Vec[I]) Vec[T] {
	n := len(indices.data)
	result := make([]T, n)
	for i := range n {
		idx := int(indices.data[i])
		if idx >= 0 && idx < len(src) {
			result[i] = src[idx]
		}
		// else: leave as zero value
	}
	return Vec[T]{data: result}
}

// IndicesFromFunc creates an index vector by calling a function for each lane.
// This is useful for creating custom gather patterns.
func IndicesFromFunc[I ~int32 | ~int64](numLanes int, f func(lane int) I) Vec[I] {
	result := make([]I, numLanes)
	for i := range numLanes {
		result[i] = f(i)
	}
	return Vec[I]{data: result}
}
