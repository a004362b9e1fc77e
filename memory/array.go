package memory

import (
	"fmt"
	"iter"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

// ArrayBuffer holds a fixed-length array of items.
type ArrayBuffer struct {
	base
	arr *descriptor.Array
}

func (b *ArrayBuffer) Len() int { return b.arr.Len() }

// At wraps element i at offset + i*pitch.
func (b *ArrayBuffer) At(i int) (Buffer, error) {
	o, err := b.arr.OffsetAt(i)
	if err != nil {
		return nil, err
	}
	return Wrap(b.arr.Item(), b.buf, b.off+o)
}

// All yields every element in index order.
func (b *ArrayBuffer) All() iter.Seq2[int, Buffer] {
	return func(yield func(int, Buffer) bool) {
		for i := 0; i < b.arr.Len(); i++ {
			el, err := b.At(i)
			if err != nil {
				return
			}
			if !yield(i, el) {
				return
			}
		}
	}
}

// Set writes every element from a slice or array of matching length. Each
// value is assigned the same way StructBuffer.Set assigns a member. Nothing
// is written if any element fails.
func (b *ArrayBuffer) Set(values any) error {
	return stage(b, func(scratch Buffer) error {
		return scratch.(*ArrayBuffer).set(values)
	})
}

func (b *ArrayBuffer) set(values any) error {
	xs, err := elements(values, b.desc)
	if err != nil {
		return err
	}
	if len(xs) != b.arr.Len() {
		return errors.LengthMismatch(errors.PhaseWrite, nil, len(xs), b.arr.Len())
	}
	for i, x := range xs {
		el, err := b.At(i)
		if err != nil {
			return err
		}
		if err := assign(el, x); err != nil {
			return errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
	}
	return nil
}
