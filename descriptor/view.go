package descriptor

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/x448/float16"

	"github.com/wippyai/gpu-layout/errors"
)

// View is a typed window over bytes laid out by a descriptor. Data aliases
// the backing buffer; writes through a View are visible to every other view
// over the same bytes.
//
// Elem is the scalar kind of every element, or KindStruct for a raw byte
// view. Values are stored little-endian, matching GPU buffer layout.
type View struct {
	Data []byte
	Elem Kind
}

// Raw reports whether the view has no single element type.
func (v View) Raw() bool {
	return !v.Elem.IsScalar()
}

// Len returns the number of elements, or the number of bytes for a raw view.
func (v View) Len() int {
	if v.Raw() {
		return len(v.Data)
	}
	return len(v.Data) / int(v.Elem.ScalarSize())
}

// Load decodes element i. Bool yields bool, F16 and F32 yield float32, the
// rest their natural Go type.
func (v View) Load(i int) (any, error) {
	if v.Raw() {
		return nil, errors.Unsupported(errors.PhaseRead, "load from raw view")
	}
	if i < 0 || i >= v.Len() {
		return nil, errors.OutOfBounds(errors.PhaseRead, nil, i, v.Len())
	}
	ss := int(v.Elem.ScalarSize())
	return decode(v.Elem, v.Data[i*ss:(i+1)*ss]), nil
}

// Store encodes x into element i.
func (v View) Store(i int, x any) error {
	if v.Raw() {
		return errors.Unsupported(errors.PhaseWrite, "store into raw view")
	}
	if i < 0 || i >= v.Len() {
		return errors.OutOfBounds(errors.PhaseWrite, nil, i, v.Len())
	}
	ss := int(v.Elem.ScalarSize())
	return encode(v.Elem, v.Data[i*ss:(i+1)*ss], x)
}

// StoreAll writes xs starting at element 0. Nothing is written unless every
// value encodes.
func (v View) StoreAll(xs []any) error {
	if v.Raw() {
		return errors.Unsupported(errors.PhaseWrite, "store into raw view")
	}
	if len(xs) > v.Len() {
		return errors.LengthMismatch(errors.PhaseWrite, nil, len(xs), v.Len())
	}
	ss := int(v.Elem.ScalarSize())
	tmp := make([]byte, len(xs)*ss)
	for i, x := range xs {
		if err := encode(v.Elem, tmp[i*ss:(i+1)*ss], x); err != nil {
			return errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
	}
	copy(v.Data, tmp)
	return nil
}

// Values decodes every element into a fresh slice: []bool, []int32,
// []uint32, []float32 (for F16 and F32) or []float64. Raw views return a
// copy of their bytes.
func (v View) Values() any {
	n := v.Len()
	switch v.Elem {
	case KindBool:
		out := make([]bool, n)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(v.Data[i*4:]) != 0
		}
		return out
	case KindI32:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(v.Data[i*4:]))
		}
		return out
	case KindU32:
		out := make([]uint32, n)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(v.Data[i*4:])
		}
		return out
	case KindF16:
		out := make([]float32, n)
		for i := range out {
			out[i] = float16.Frombits(binary.LittleEndian.Uint16(v.Data[i*2:])).Float32()
		}
		return out
	case KindF32:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(v.Data[i*4:]))
		}
		return out
	case KindF64:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(v.Data[i*8:]))
		}
		return out
	default:
		return append([]byte(nil), v.Data...)
	}
}

func decode(k Kind, b []byte) any {
	switch k {
	case KindBool:
		return binary.LittleEndian.Uint32(b) != 0
	case KindI32:
		return int32(binary.LittleEndian.Uint32(b))
	case KindU32:
		return binary.LittleEndian.Uint32(b)
	case KindF16:
		return float16.Frombits(binary.LittleEndian.Uint16(b)).Float32()
	case KindF32:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	case KindF64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return nil
}

func encode(k Kind, b []byte, x any) error {
	switch k {
	case KindBool:
		bv, ok := x.(bool)
		if !ok {
			break
		}
		var u uint32
		if bv {
			u = 1
		}
		binary.LittleEndian.PutUint32(b, u)
		return nil
	case KindI32:
		iv, ok := toInt[int32](x)
		if !ok {
			break
		}
		binary.LittleEndian.PutUint32(b, uint32(iv))
		return nil
	case KindU32:
		uv, ok := toInt[uint32](x)
		if !ok {
			break
		}
		binary.LittleEndian.PutUint32(b, uv)
		return nil
	case KindF16:
		if h, ok := x.(float16.Float16); ok {
			binary.LittleEndian.PutUint16(b, h.Bits())
			return nil
		}
		fv, ok := toFloat[float32](x)
		if !ok {
			break
		}
		binary.LittleEndian.PutUint16(b, float16.Fromfloat32(fv).Bits())
		return nil
	case KindF32:
		fv, ok := toFloat[float32](x)
		if !ok {
			break
		}
		binary.LittleEndian.PutUint32(b, math.Float32bits(fv))
		return nil
	case KindF64:
		fv, ok := toFloat[float64](x)
		if !ok {
			break
		}
		binary.LittleEndian.PutUint64(b, math.Float64bits(fv))
		return nil
	}
	return errors.New(errors.PhaseWrite, errors.KindTypeMismatch).
		GoType(fmt.Sprintf("%T", x)).
		GPUType(k.String()).
		Value(x).
		Build()
}

// Element is a Go type whose in-memory representation matches a scalar kind.
type Element interface {
	int32 | uint32 | float32 | float64 | float16.Float16
}

// Slice reinterprets the view's bytes as []T without copying. T must match
// the element kind (bool views read as uint32). It fails on big-endian hosts
// and when the data is not aligned for T.
func Slice[T Element](v View) ([]T, error) {
	var zero T
	want, ok := elemKindOf(zero)
	if !ok || (want != v.Elem && !(want == KindU32 && v.Elem == KindBool)) {
		return nil, errors.TypeMismatch(errors.PhaseView, nil, fmt.Sprintf("%T", zero), v.Elem.String())
	}
	if len(v.Data) == 0 {
		return nil, nil
	}
	if !littleEndian() {
		return nil, errors.Unsupported(errors.PhaseView, "zero-copy slice on big-endian host")
	}
	if uintptr(unsafe.Pointer(&v.Data[0]))%unsafe.Alignof(zero) != 0 {
		return nil, errors.New(errors.PhaseView, errors.KindInvalidAlignment).
			GoType(fmt.Sprintf("%T", zero)).
			Detail("view data is not aligned for zero-copy access").
			Build()
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&v.Data[0])), len(v.Data)/int(unsafe.Sizeof(zero))), nil
}

func elemKindOf(x any) (Kind, bool) {
	switch x.(type) {
	case int32:
		return KindI32, true
	case uint32:
		return KindU32, true
	case float16.Float16:
		return KindF16, true
	case float32:
		return KindF32, true
	case float64:
		return KindF64, true
	}
	return 0, false
}

func littleEndian() bool {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	return probe[0] == 1
}
