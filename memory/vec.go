package memory

import (
	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

// VecBuffer holds a 2, 3 or 4 component vector.
type VecBuffer struct {
	base
	vec *descriptor.Vec
}

func (b *VecBuffer) Len() int { return b.vec.Len() }

// Get returns the components as a typed slice such as []float32 or []bool.
func (b *VecBuffer) Get() any {
	return b.view.Values()
}

// Set writes every component from a slice or array of matching length.
// Nothing is written if any component fails to encode.
func (b *VecBuffer) Set(tuple any) error {
	xs, err := elements(tuple, b.desc)
	if err != nil {
		return err
	}
	if len(xs) != b.vec.Len() {
		return errors.LengthMismatch(errors.PhaseWrite, nil, len(xs), b.vec.Len())
	}
	return b.view.StoreAll(xs)
}

// At returns component i as a scalar or bool buffer sharing this buffer's
// bytes.
func (b *VecBuffer) At(i int) (Buffer, error) {
	co, err := b.vec.ComponentOffset(i)
	if err != nil {
		return nil, err
	}
	return Wrap(b.vec.Scalar(), b.buf, b.off+co)
}
