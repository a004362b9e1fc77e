package align

import (
	"math"

	"github.com/wippyai/gpu-layout/errors"
)

// To rounds v up to the next multiple of a: ceil(v/a) * a.
// A zero alignment is a malformed layout and is rejected.
func To(v, a uint32) (uint32, error) {
	if a == 0 {
		return 0, errors.InvalidAlignment(errors.PhaseLayout, a)
	}
	rem := v % a
	if rem == 0 {
		return v, nil
	}
	out, ok := SafeAdd(v, a-rem)
	if !ok {
		return 0, errors.Overflow(errors.PhaseLayout, nil, "aligned offset")
	}
	return out, nil
}

func SafeMul(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAdd(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

func Max(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
