package hwy

// This file provides pure Go implementations of the demotion operations used
// when narrowing accumulators to bytes. They follow the x86 pack semantics:
// a signed int32 -> int16 pack (PACKSSDW) followed by a signed-to-unsigned
// int16 -> uint8 pack (PACKUSWB).
//
// Note: Go generics don't support type relationships like "T is narrower than U",
// so we provide concrete type-specific functions.

// DemoteI32ToI16 narrows int32 to int16 (saturating).
// Values outside int16 range are clamped to [-32768, 32767].
func DemoteI32ToI16(v Vec[int32]) Vec[int16] {
	result := make([]int16, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = saturateI32ToI16(v.data[i])
	}
	return Vec[int16]{data: result}
}

// DemoteTwoI32ToI16 demotes two int32 vectors to a single int16 vector (saturating).
func DemoteTwoI32ToI16(lo, hi Vec[int32]) Vec[int16] {
	n := len(lo.data) + len(hi.data)
	result := make([]int16, n)
	for i := 0; i < len(lo.data); i++ {
		result[i] = saturateI32ToI16(lo.data[i])
	}
	for i := 0; i < len(hi.data); i++ {
		result[len(lo.data)+i] = saturateI32ToI16(hi.data[i])
	}
	return Vec[int16]{data: result}
}

// DemoteI16ToU8 narrows signed int16 to uint8 (saturating).
// Negative values become 0, values > 255 become 255.
func DemoteI16ToU8(v Vec[int16]) Vec[uint8] {
	result := make([]uint8, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = saturateI16ToU8(v.data[i])
	}
	return Vec[uint8]{data: result}
}

// DemoteTwoI16ToU8 demotes two int16 vectors to a single uint8 vector (saturating).
func DemoteTwoI16ToU8(lo, hi Vec[int16]) Vec[uint8] {
	n := len(lo.data) + len(hi.data)
	result := make([]uint8, n)
	for i := 0; i < len(lo.data); i++ {
		result[i] = saturateI16ToU8(lo.data[i])
	}
	for i := 0; i < len(hi.data); i++ {
		result[len(lo.data)+i] = saturateI16ToU8(hi.data[i])
	}
	return Vec[uint8]{data: result}
}

// DemoteI32ToU8 narrows int32 to uint8 through the two-step pack.
// The result equals min(max(x, 0), 255) for every int32 x.
func DemoteI32ToU8(v Vec[int32]) Vec[uint8] {
	return DemoteI16ToU8(DemoteI32ToI16(v))
}

func saturateI32ToI16(val int32) int16 {
	if val > 32767 {
		return 32767
	} else if val < -32768 {
		return -32768
	}
	return int16(val)
}

func saturateI16ToU8(val int16) uint8 {
	if val > 255 {
		return 255
	} else if val < 0 {
		return 0
	}
	return uint8(val)
}
