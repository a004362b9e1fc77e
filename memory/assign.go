package memory

import (
	"fmt"
	"reflect"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

// assign writes v into b, dispatching on the same buffer kinds Wrap
// produces so the two recursions follow one descriptor tree.
func assign(b Buffer, v any) error {
	switch t := b.(type) {
	case *StructBuffer:
		m, ok := v.(map[string]any)
		if !ok {
			return typeMismatch(v, t.desc)
		}
		return t.set(m)
	case *ArrayBuffer:
		return t.set(v)
	case *MatBuffer:
		return t.setColumns(v)
	case *VecBuffer:
		return t.Set(v)
	case *BoolBuffer:
		return t.set(v)
	case *ScalarBuffer:
		return t.Set(v)
	default:
		return errors.Unsupported(errors.PhaseWrite, fmt.Sprintf("buffer %T", b))
	}
}

// elements spreads a slice or array into its elements.
func elements(v any, d descriptor.Descriptor) ([]any, error) {
	if xs, ok := v.([]any); ok {
		return xs, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, typeMismatch(v, d)
	}
	xs := make([]any, rv.Len())
	for i := range xs {
		xs[i] = rv.Index(i).Interface()
	}
	return xs, nil
}

func typeMismatch(v any, d descriptor.Descriptor) error {
	return errors.New(errors.PhaseWrite, errors.KindTypeMismatch).
		GoType(fmt.Sprintf("%T", v)).
		GPUType(d.String()).
		Value(v).
		Build()
}
