package descriptor

import (
	"fmt"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/align"
)

// Vec is a vector of 2, 3 or 4 scalars.
type Vec struct {
	scalar  *Scalar
	n       uint32
	packing Packing
	size    uint32
	align   uint32
	pitch   uint32
}

// NewVec computes the layout of an n-component vector.
//
// Dense vectors align to their scalar. Uniform vectors align to twice the
// scalar for n=2 and four times otherwise (at least 8 and 16 bytes), so a
// vec3 occupies the footprint of a vec4.
func NewVec(scalar *Scalar, n int, packing Packing) (*Vec, error) {
	if scalar == nil {
		return nil, errors.InvalidInput(errors.PhaseLayout, "vector scalar is nil")
	}
	if n < 2 || n > 4 {
		return nil, errors.InvalidInput(errors.PhaseLayout, fmt.Sprintf("vector length %d not in [2, 4]", n))
	}

	ss := scalar.ByteSize()
	v := &Vec{scalar: scalar, n: uint32(n), packing: packing}

	var err error
	switch packing {
	case Dense:
		v.align = ss
		v.size = v.n * ss
		v.pitch, err = align.To(v.size, v.align)
	case Uniform:
		if n == 2 {
			v.align = align.Max(8, 2*ss)
		} else {
			v.align = align.Max(16, 4*ss)
		}
		if v.size, err = align.To(v.n*ss, v.align); err != nil {
			return nil, err
		}
		var p uint32
		p, err = align.To(v.size, v.align)
		v.pitch = align.Max(16, p)
	default:
		return nil, errors.InvalidInput(errors.PhaseLayout, fmt.Sprintf("unknown packing %d", packing))
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vec) Kind() Kind         { return KindVec2 + Kind(v.n-2) }
func (v *Vec) ByteSize() uint32   { return v.size }
func (v *Vec) Alignment() uint32  { return v.align }
func (v *Vec) ArrayPitch() uint32 { return v.pitch }
func (v *Vec) Scalar() *Scalar    { return v.scalar }
func (v *Vec) Len() int           { return int(v.n) }
func (v *Vec) Packing() Packing   { return v.packing }

func (v *Vec) String() string {
	return fmt.Sprintf("vec%d<%s>", v.n, v.scalar)
}

// View covers the n components only; trailing padding is not part of it.
func (v *Vec) View(buf []byte, off uint32) (View, error) {
	data, err := span(buf, off, v.n*v.scalar.ByteSize())
	if err != nil {
		return View{}, err
	}
	return View{Elem: v.scalar.kind, Data: data}, nil
}

// ComponentOffset returns the byte offset of component i relative to the
// vector start.
func (v *Vec) ComponentOffset(i int) (uint32, error) {
	if i < 0 || i >= int(v.n) {
		return 0, errors.OutOfBounds(errors.PhaseView, nil, i, int(v.n))
	}
	return uint32(i) * v.scalar.ByteSize(), nil
}

func (*Vec) descriptor() {}
