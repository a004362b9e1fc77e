// Package witschema derives descriptors from WIT component-model types, so a
// host can lay out shader data declared once in a .wit interface.
package witschema

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

// Mapper converts WIT types under one packing. Type definitions are cached
// by identity, so a record referenced twice maps to one descriptor.
type Mapper struct {
	cache   map[*wit.TypeDef]descriptor.Descriptor
	packing descriptor.Packing
}

func NewMapper(packing descriptor.Packing) *Mapper {
	return &Mapper{
		cache:   make(map[*wit.TypeDef]descriptor.Descriptor),
		packing: packing,
	}
}

// FromWIT maps t with a fresh Mapper.
func FromWIT(t wit.Type, packing descriptor.Packing) (descriptor.Descriptor, error) {
	return NewMapper(packing).Map(t)
}

// Map converts t:
//
//   - bool, s32, u32, f32, f64 map to scalars
//   - a record maps to a struct with the same field order
//   - a tuple of 2 to 4 equal scalars maps to a vector
//   - a tuple of n vectors of length n maps to a matrix
//   - any other tuple of equal types maps to an array
//   - a mixed tuple maps to a struct with members f0, f1, ...
//   - a type alias maps to its target
func (m *Mapper) Map(t wit.Type) (descriptor.Descriptor, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return descriptor.Bool, nil
	case wit.S32:
		return descriptor.I32, nil
	case wit.U32:
		return descriptor.U32, nil
	case wit.F32:
		return descriptor.F32, nil
	case wit.F64:
		return descriptor.F64, nil
	case *wit.TypeDef:
		return m.mapTypeDef(typ)
	default:
		return nil, unsupported(t)
	}
}

func (m *Mapper) mapTypeDef(t *wit.TypeDef) (descriptor.Descriptor, error) {
	if cached, ok := m.cache[t]; ok {
		return cached, nil
	}

	var (
		d   descriptor.Descriptor
		err error
	)
	switch kind := t.Kind.(type) {
	case *wit.Record:
		d, err = m.mapRecord(kind)
	case *wit.Tuple:
		d, err = m.mapTuple(kind)
	case wit.Type:
		d, err = m.Map(kind)
	default:
		err = unsupported(t)
	}
	if err != nil {
		if t.Name != nil {
			return nil, errors.WithPath(err, *t.Name)
		}
		return nil, err
	}

	m.cache[t] = d
	return d, nil
}

func (m *Mapper) mapRecord(r *wit.Record) (descriptor.Descriptor, error) {
	fields := make([]descriptor.Field, len(r.Fields))
	for i, f := range r.Fields {
		d, err := m.Map(f.Type)
		if err != nil {
			return nil, errors.WithPath(err, f.Name)
		}
		fields[i] = descriptor.Field{Name: f.Name, Type: d}
	}
	return newStruct(m.packing, fields)
}

func (m *Mapper) mapTuple(t *wit.Tuple) (descriptor.Descriptor, error) {
	if len(t.Types) == 0 {
		return nil, errors.Unsupported(errors.PhaseSchema, "empty tuple")
	}

	elems := make([]descriptor.Descriptor, len(t.Types))
	for i, et := range t.Types {
		d, err := m.Map(et)
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("f%d", i))
		}
		elems[i] = d
	}

	n := len(elems)
	if !homogeneous(elems) {
		fields := make([]descriptor.Field, n)
		for i, d := range elems {
			fields[i] = descriptor.Field{Name: fmt.Sprintf("f%d", i), Type: d}
		}
		return newStruct(m.packing, fields)
	}

	switch first := elems[0].(type) {
	case *descriptor.Scalar:
		if n >= 2 && n <= 4 {
			v, err := descriptor.NewVec(first, n, m.packing)
			if err != nil {
				return nil, err
			}
			return v, nil
		}
	case *descriptor.Vec:
		if first.Len() == n {
			mat, err := descriptor.NewMat(first.Scalar(), n, m.packing)
			if err != nil {
				return nil, err
			}
			return mat, nil
		}
	}

	a, err := descriptor.NewArray(elems[0], n)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func homogeneous(ds []descriptor.Descriptor) bool {
	for _, d := range ds[1:] {
		if d != ds[0] && d.String() != ds[0].String() {
			return false
		}
	}
	return true
}

func newStruct(packing descriptor.Packing, fields []descriptor.Field) (descriptor.Descriptor, error) {
	s, err := descriptor.NewStruct(packing, fields...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func unsupported(t wit.Type) error {
	return errors.New(errors.PhaseSchema, errors.KindUnsupported).
		GoType(fmt.Sprintf("%T", t)).
		Detail("no GPU layout for this WIT type").
		Build()
}
