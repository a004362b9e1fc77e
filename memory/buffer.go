package memory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

// Buffer is a typed window into a backing byte slice.
type Buffer interface {
	Descriptor() descriptor.Descriptor
	// Bytes returns the whole backing slice, not just this buffer's range.
	Bytes() []byte
	Offset() uint32
	// View returns the descriptor's typed view at this buffer's offset.
	View() descriptor.View
	// Range returns the ByteSize bytes starting at Offset.
	Range() []byte
}

type base struct {
	desc descriptor.Descriptor
	buf  []byte
	view descriptor.View
	off  uint32
}

func (b *base) Descriptor() descriptor.Descriptor { return b.desc }
func (b *base) Bytes() []byte                     { return b.buf }
func (b *base) Offset() uint32                    { return b.off }
func (b *base) View() descriptor.View             { return b.view }

func (b *base) Range() []byte {
	end := b.off + b.desc.ByteSize()
	return b.buf[b.off:end:end]
}

// Allocate creates a zeroed backing slice of d.ByteSize() bytes and wraps it
// at offset 0.
func Allocate(d descriptor.Descriptor) (Buffer, error) {
	if d == nil {
		return nil, errors.InvalidInput(errors.PhaseView, "descriptor is nil")
	}
	Logger().Debug("allocate",
		zap.Stringer("type", d),
		zap.Uint32("size", d.ByteSize()),
		zap.Uint32("align", d.Alignment()),
	)
	return Wrap(d, make([]byte, d.ByteSize()), 0)
}

// AllocateAs is Allocate with the concrete buffer type asserted.
func AllocateAs[T Buffer](d descriptor.Descriptor) (T, error) {
	b, err := Allocate(d)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](b)
}

// Wrap views buf at off as d. The range [off, off+d.ByteSize()) must lie
// inside buf.
func Wrap(d descriptor.Descriptor, buf []byte, off uint32) (Buffer, error) {
	if d == nil {
		return nil, errors.InvalidInput(errors.PhaseView, "descriptor is nil")
	}
	if uint64(off)+uint64(d.ByteSize()) > uint64(len(buf)) {
		return nil, errors.Overrun(errors.PhaseView, nil, off, d.ByteSize(), len(buf))
	}
	view, err := d.View(buf, off)
	if err != nil {
		return nil, err
	}
	b := base{desc: d, buf: buf, off: off, view: view}

	switch t := d.(type) {
	case *descriptor.Scalar:
		if t.Kind() == descriptor.KindBool {
			return &BoolBuffer{base: b}, nil
		}
		return &ScalarBuffer{base: b}, nil
	case *descriptor.Vec:
		return &VecBuffer{base: b, vec: t}, nil
	case *descriptor.Mat:
		return &MatBuffer{base: b, mat: t}, nil
	case *descriptor.Array:
		return &ArrayBuffer{base: b, arr: t}, nil
	case *descriptor.Struct:
		return &StructBuffer{base: b, st: t}, nil
	default:
		return nil, errors.Unsupported(errors.PhaseView, fmt.Sprintf("descriptor %T", d))
	}
}

// WrapAs is Wrap with the concrete buffer type asserted.
func WrapAs[T Buffer](d descriptor.Descriptor, buf []byte, off uint32) (T, error) {
	b, err := Wrap(d, buf, off)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](b)
}

func as[T Buffer](b Buffer) (T, error) {
	t, ok := b.(T)
	if !ok {
		var zero T
		return zero, errors.TypeMismatch(errors.PhaseView, nil, fmt.Sprintf("%T", zero), b.Descriptor().String())
	}
	return t, nil
}

// stage runs fn against a scratch copy of b's range and commits the bytes
// only when fn succeeds, so a failed bulk write leaves b untouched.
func stage(b Buffer, fn func(scratch Buffer) error) error {
	tmp := append([]byte(nil), b.Range()...)
	scratch, err := Wrap(b.Descriptor(), tmp, 0)
	if err != nil {
		return err
	}
	if err := fn(scratch); err != nil {
		return err
	}
	copy(b.Range(), tmp)
	return nil
}
