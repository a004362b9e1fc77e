package descriptor

import (
	"fmt"
	"strings"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/align"
)

// Member is a struct member with its computed offset.
type Member struct {
	Type   Descriptor
	Name   string
	Offset uint32
}

// Struct packs members in declaration order.
type Struct struct {
	index   map[string]int
	members []Member
	packing Packing
	size    uint32
	align   uint32
	pitch   uint32
}

// NewStruct lays out fields in order: each offset is rounded up to the
// member's alignment, then advanced by its byte size. The aggregate alignment
// is the largest member alignment, raised to a multiple of 16 under Uniform.
func NewStruct(packing Packing, fields ...Field) (*Struct, error) {
	if packing != Dense && packing != Uniform {
		return nil, errors.InvalidInput(errors.PhaseLayout, fmt.Sprintf("unknown packing %d", packing))
	}

	s := &Struct{
		index:   make(map[string]int, len(fields)),
		members: make([]Member, 0, len(fields)),
		packing: packing,
	}

	maxAlign := uint32(1)
	offset := uint32(0)

	for _, f := range fields {
		if f.Name == "" {
			return nil, errors.InvalidInput(errors.PhaseLayout, "struct member has empty name")
		}
		if f.Type == nil {
			return nil, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
				Path(f.Name).
				Detail("member type is nil").
				Build()
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
				Path(f.Name).
				Detail("duplicate member %q", f.Name).
				Build()
		}

		var err error
		if offset, err = align.To(offset, f.Type.Alignment()); err != nil {
			return nil, errors.WithPath(err, f.Name)
		}
		s.index[f.Name] = len(s.members)
		s.members = append(s.members, Member{Name: f.Name, Type: f.Type, Offset: offset})

		var ok bool
		if offset, ok = align.SafeAdd(offset, f.Type.ByteSize()); !ok {
			return nil, errors.Overflow(errors.PhaseLayout, []string{f.Name}, "struct size")
		}
		maxAlign = align.Max(maxAlign, f.Type.Alignment())
	}

	var err error
	s.align = maxAlign
	if packing == Uniform {
		if s.align, err = align.To(s.align, 16); err != nil {
			return nil, err
		}
	}
	if s.size, err = align.To(offset, s.align); err != nil {
		return nil, err
	}
	s.pitch = s.size
	if packing == Uniform {
		if s.pitch, err = align.To(s.size, 16); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Struct) Kind() Kind         { return KindStruct }
func (s *Struct) ByteSize() uint32   { return s.size }
func (s *Struct) Alignment() uint32  { return s.align }
func (s *Struct) ArrayPitch() uint32 { return s.pitch }
func (s *Struct) Packing() Packing   { return s.packing }
func (s *Struct) Len() int           { return len(s.members) }

// Members returns the members in declaration order.
func (s *Struct) Members() []Member {
	out := make([]Member, len(s.members))
	copy(out, s.members)
	return out
}

// Lookup returns the named member or a no-such-member error.
func (s *Struct) Lookup(name string) (Member, error) {
	i, ok := s.index[name]
	if !ok {
		return Member{}, errors.FieldUnknown(errors.PhaseView, nil, name)
	}
	return s.members[i], nil
}

func (s *Struct) OffsetOf(name string) (uint32, error) {
	m, err := s.Lookup(name)
	if err != nil {
		return 0, err
	}
	return m.Offset, nil
}

// Member returns the view of the named member of the struct stored at off.
func (s *Struct) Member(buf []byte, off uint32, name string) (View, error) {
	m, err := s.Lookup(name)
	if err != nil {
		return View{}, err
	}
	v, err := m.Type.View(buf, off+m.Offset)
	if err != nil {
		return View{}, errors.WithPath(err, name)
	}
	return v, nil
}

// View returns a raw byte view over the whole struct.
func (s *Struct) View(buf []byte, off uint32) (View, error) {
	data, err := span(buf, off, s.size)
	if err != nil {
		return View{}, err
	}
	return View{Elem: KindStruct, Data: data}, nil
}

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString("struct{")
	for i, m := range s.members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Name)
		b.WriteString(": ")
		b.WriteString(m.Type.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (*Struct) descriptor() {}
