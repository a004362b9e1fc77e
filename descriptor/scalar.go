package descriptor

import (
	"fmt"

	"github.com/wippyai/gpu-layout/errors"
)

// Scalar describes one of the six leaf types. Size, alignment and pitch are
// fixed and do not depend on packing.
type Scalar struct {
	kind Kind
}

var (
	Bool = &Scalar{kind: KindBool}
	I32  = &Scalar{kind: KindI32}
	U32  = &Scalar{kind: KindU32}
	F16  = &Scalar{kind: KindF16}
	F32  = &Scalar{kind: KindF32}
	F64  = &Scalar{kind: KindF64}
)

// ScalarOf returns the shared descriptor for a scalar kind.
func ScalarOf(k Kind) (*Scalar, error) {
	switch k {
	case KindBool:
		return Bool, nil
	case KindI32:
		return I32, nil
	case KindU32:
		return U32, nil
	case KindF16:
		return F16, nil
	case KindF32:
		return F32, nil
	case KindF64:
		return F64, nil
	default:
		return nil, errors.InvalidInput(errors.PhaseLayout, fmt.Sprintf("%s is not a scalar kind", k))
	}
}

func (s *Scalar) Kind() Kind         { return s.kind }
func (s *Scalar) ByteSize() uint32   { return s.kind.ScalarSize() }
func (s *Scalar) Alignment() uint32  { return s.kind.ScalarSize() }
func (s *Scalar) ArrayPitch() uint32 { return s.kind.ScalarSize() }
func (s *Scalar) String() string     { return s.kind.String() }

// View returns a one-element view. Bool is stored as a 32-bit integer.
func (s *Scalar) View(buf []byte, off uint32) (View, error) {
	data, err := span(buf, off, s.ByteSize())
	if err != nil {
		return View{}, err
	}
	return View{Elem: s.kind, Data: data}, nil
}

func (*Scalar) descriptor() {}
