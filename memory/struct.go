package memory

import (
	"slices"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

// StructBuffer holds a struct addressed by member name.
type StructBuffer struct {
	base
	st *descriptor.Struct
}

// Get wraps the named member at offset + offsetOf(name).
func (b *StructBuffer) Get(name string) (Buffer, error) {
	m, err := b.st.Lookup(name)
	if err != nil {
		return nil, err
	}
	return Wrap(m.Type, b.buf, b.off+m.Offset)
}

// Names returns the member names in declaration order.
func (b *StructBuffer) Names() []string {
	members := b.st.Members()
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names
}

// Set assigns members from values, recursing into nested structs, arrays
// and matrices. Members absent from values keep their bytes; keys naming no
// member are rejected. Nothing is written unless every member succeeds.
func (b *StructBuffer) Set(values map[string]any) error {
	return stage(b, func(scratch Buffer) error {
		return scratch.(*StructBuffer).set(values)
	})
}

func (b *StructBuffer) set(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := b.st.Lookup(k); err != nil {
			return errors.FieldUnknown(errors.PhaseWrite, nil, k)
		}
	}

	for _, m := range b.st.Members() {
		v, ok := values[m.Name]
		if !ok {
			continue
		}
		mb, err := Wrap(m.Type, b.buf, b.off+m.Offset)
		if err != nil {
			return errors.WithPath(err, m.Name)
		}
		if err := assign(mb, v); err != nil {
			return errors.WithPath(err, m.Name)
		}
	}
	return nil
}
