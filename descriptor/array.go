package descriptor

import (
	"fmt"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/align"
)

// Array repeats an item descriptor at a stride of the item's array pitch.
type Array struct {
	item   Descriptor
	length uint32
	size   uint32
}

func NewArray(item Descriptor, length int) (*Array, error) {
	if item == nil {
		return nil, errors.InvalidInput(errors.PhaseLayout, "array item is nil")
	}
	if length < 0 || uint64(length) > uint64(^uint32(0)) {
		return nil, errors.InvalidInput(errors.PhaseLayout, fmt.Sprintf("array length %d out of range", length))
	}
	size, ok := align.SafeMul(uint32(length), item.ArrayPitch())
	if !ok {
		return nil, errors.Overflow(errors.PhaseLayout, nil, "array size")
	}
	return &Array{item: item, length: uint32(length), size: size}, nil
}

func (a *Array) Kind() Kind        { return KindArray }
func (a *Array) ByteSize() uint32  { return a.size }
func (a *Array) Alignment() uint32 { return a.item.Alignment() }
func (a *Array) Item() Descriptor  { return a.item }
func (a *Array) Len() int          { return int(a.length) }

// ArrayPitch is the whole span of the array, so arrays nested in arrays
// never overlap. For a single-element array it equals the item pitch.
func (a *Array) ArrayPitch() uint32 { return a.size }

func (a *Array) String() string {
	return fmt.Sprintf("array<%s, %d>", a.item, a.length)
}

// OffsetAt returns i * pitch for i in [0, length).
func (a *Array) OffsetAt(i int) (uint32, error) {
	if i < 0 || i >= int(a.length) {
		return 0, errors.OutOfBounds(errors.PhaseView, nil, i, int(a.length))
	}
	return uint32(i) * a.item.ArrayPitch(), nil
}

// At returns the item view of element i of the array stored at off.
func (a *Array) At(buf []byte, off uint32, i int) (View, error) {
	o, err := a.OffsetAt(i)
	if err != nil {
		return View{}, err
	}
	return a.item.View(buf, off+o)
}

// View collapses the array into one typed view when every scalar in it has
// the same kind. Arrays involving structs get a raw byte view. The view spans
// the whole byte size, so its element count includes padding lanes.
func (a *Array) View(buf []byte, off uint32) (View, error) {
	data, err := span(buf, off, a.size)
	if err != nil {
		return View{}, err
	}
	elem, ok := ElemKind(a.item)
	if !ok {
		elem = KindStruct
	}
	return View{Elem: elem, Data: data}, nil
}

func (*Array) descriptor() {}
