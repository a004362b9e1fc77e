package descriptor

import (
	"github.com/wippyai/gpu-layout/errors"
)

// Descriptor is an immutable layout blueprint. The set of implementations is
// closed: *Scalar, *Vec, *Mat, *Array and *Struct.
type Descriptor interface {
	Kind() Kind
	ByteSize() uint32
	Alignment() uint32
	// ArrayPitch is the stride between consecutive elements when this type
	// is the item of an array. Always >= ByteSize.
	ArrayPitch() uint32
	// View materializes a typed window over buf starting at off.
	View(buf []byte, off uint32) (View, error)
	String() string

	descriptor()
}

// Field declares one struct member.
type Field struct {
	Type Descriptor
	Name string
}

// Must panics if err is non-nil. Intended for package-level descriptor trees.
func Must[T Descriptor](d T, err error) T {
	if err != nil {
		panic(err)
	}
	return d
}

// ElemKind returns the scalar kind shared by every scalar in d, recursing
// through vectors, matrices and arrays. Structs have no single element kind.
func ElemKind(d Descriptor) (Kind, bool) {
	switch t := d.(type) {
	case *Scalar:
		return t.kind, true
	case *Vec:
		return t.scalar.kind, true
	case *Mat:
		return t.column.scalar.kind, true
	case *Array:
		return ElemKind(t.item)
	default:
		return 0, false
	}
}

// span checks that [off, off+size) lies inside buf and returns it with its
// capacity clipped so appends cannot spill into neighbouring data.
func span(buf []byte, off, size uint32) ([]byte, error) {
	end := uint64(off) + uint64(size)
	if end > uint64(len(buf)) {
		return nil, errors.Overrun(errors.PhaseView, nil, off, size, len(buf))
	}
	return buf[off:end:end], nil
}
