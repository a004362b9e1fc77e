package descriptor

import (
	"fmt"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/align"
)

// Mat is a square matrix stored as n column vectors.
type Mat struct {
	column  *Vec
	n       uint32
	packing Packing
	stride  uint32
	size    uint32
	align   uint32
	pitch   uint32
}

// NewMat computes the layout of an n x n matrix. Under Uniform packing every
// column starts on a 16-byte boundary.
func NewMat(scalar *Scalar, n int, packing Packing) (*Mat, error) {
	column, err := NewVec(scalar, n, packing)
	if err != nil {
		return nil, err
	}

	m := &Mat{column: column, n: uint32(n), packing: packing}
	ss := scalar.ByteSize()

	switch packing {
	case Dense:
		m.align = ss
		m.stride = m.n * ss
		m.size = m.n * m.stride
		m.pitch = m.size
	case Uniform:
		if m.align, err = align.To(column.Alignment(), 16); err != nil {
			return nil, err
		}
		if m.stride, err = align.To(column.ByteSize(), 16); err != nil {
			return nil, err
		}
		m.size = m.n * m.stride
		if m.pitch, err = align.To(m.size, 16); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Mat) Kind() Kind           { return KindMat2 + Kind(m.n-2) }
func (m *Mat) ByteSize() uint32     { return m.size }
func (m *Mat) Alignment() uint32    { return m.align }
func (m *Mat) ArrayPitch() uint32   { return m.pitch }
func (m *Mat) ColumnStride() uint32 { return m.stride }
func (m *Mat) Column() *Vec         { return m.column }
func (m *Mat) Len() int             { return int(m.n) }
func (m *Mat) Packing() Packing     { return m.packing }

func (m *Mat) String() string {
	return fmt.Sprintf("mat%dx%d<%s>", m.n, m.n, m.column.scalar)
}

// View returns one flat view over every column, padding included, for bulk
// upload.
func (m *Mat) View(buf []byte, off uint32) (View, error) {
	data, err := span(buf, off, m.size)
	if err != nil {
		return View{}, err
	}
	return View{Elem: m.column.scalar.kind, Data: data}, nil
}

// ColumnOffset returns the byte offset of column i relative to the matrix
// start.
func (m *Mat) ColumnOffset(i int) (uint32, error) {
	if i < 0 || i >= int(m.n) {
		return 0, errors.OutOfBounds(errors.PhaseView, nil, i, int(m.n))
	}
	return uint32(i) * m.stride, nil
}

// Col returns a view of column i of the matrix stored at off.
func (m *Mat) Col(buf []byte, off uint32, i int) (View, error) {
	co, err := m.ColumnOffset(i)
	if err != nil {
		return View{}, err
	}
	return m.column.View(buf, off+co)
}

func (*Mat) descriptor() {}
