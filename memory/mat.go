package memory

import (
	"fmt"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

// MatBuffer holds a square matrix addressed by column.
type MatBuffer struct {
	base
	mat *descriptor.Mat
}

func (b *MatBuffer) Len() int { return b.mat.Len() }

// At returns column col as a vector buffer at offset + col*columnStride.
func (b *MatBuffer) At(col int) (*VecBuffer, error) {
	co, err := b.mat.ColumnOffset(col)
	if err != nil {
		return nil, err
	}
	return WrapAs[*VecBuffer](b.mat.Column(), b.buf, b.off+co)
}

// Get returns column col as a typed slice.
func (b *MatBuffer) Get(col int) (any, error) {
	v, err := b.At(col)
	if err != nil {
		return nil, err
	}
	return v.Get(), nil
}

// Set writes column col from a slice or array of n components.
func (b *MatBuffer) Set(col int, tuple any) error {
	v, err := b.At(col)
	if err != nil {
		return err
	}
	return v.Set(tuple)
}

// SetColumns writes all n columns at once, for example from [][]float32 or
// [4][4]float32. Nothing is written if any column fails.
func (b *MatBuffer) SetColumns(cols any) error {
	return stage(b, func(scratch Buffer) error {
		return scratch.(*MatBuffer).setColumns(cols)
	})
}

func (b *MatBuffer) setColumns(cols any) error {
	xs, err := elements(cols, b.desc)
	if err != nil {
		return err
	}
	if len(xs) != b.mat.Len() {
		return errors.LengthMismatch(errors.PhaseWrite, nil, len(xs), b.mat.Len())
	}
	for i, x := range xs {
		if err := b.Set(i, x); err != nil {
			return errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
	}
	return nil
}
