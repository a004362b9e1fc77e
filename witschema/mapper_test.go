package witschema

import (
	stderrors "errors"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

func tuple(types ...wit.Type) *wit.TypeDef {
	return &wit.TypeDef{Kind: &wit.Tuple{Types: types}}
}

func TestMapPrimitives(t *testing.T) {
	tests := []struct {
		typ  wit.Type
		want *descriptor.Scalar
	}{
		{wit.Bool{}, descriptor.Bool},
		{wit.S32{}, descriptor.I32},
		{wit.U32{}, descriptor.U32},
		{wit.F32{}, descriptor.F32},
		{wit.F64{}, descriptor.F64},
	}

	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			d, err := FromWIT(tc.typ, descriptor.Dense)
			if err != nil {
				t.Fatal(err)
			}
			if d != tc.want {
				t.Errorf("got %v, want %v", d, tc.want)
			}
		})
	}
}

func TestMapTuples(t *testing.T) {
	vec4 := tuple(wit.F32{}, wit.F32{}, wit.F32{}, wit.F32{})

	tests := []struct {
		name string
		typ  wit.Type
		want string
		size uint32
	}{
		{"vec2", tuple(wit.F32{}, wit.F32{}), "vec2<f32>", 8},
		{"vec3", tuple(wit.U32{}, wit.U32{}, wit.U32{}), "vec3<u32>", 16},
		{"mat4", tuple(vec4, vec4, vec4, vec4), "mat4x4<f32>", 64},
		{"array", tuple(wit.F32{}, wit.F32{}, wit.F32{}, wit.F32{}, wit.F32{}), "array<f32, 5>", 20},
		{"single", tuple(wit.S32{}), "array<i32, 1>", 4},
		{"array_of_vec", tuple(vec4, vec4), "array<vec4<f32>, 2>", 32},
		{"mixed", tuple(wit.F32{}, wit.U32{}), "struct{f0: f32, f1: u32}", 16},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := FromWIT(tc.typ, descriptor.Uniform)
			if err != nil {
				t.Fatal(err)
			}
			if d.String() != tc.want {
				t.Errorf("got %s, want %s", d, tc.want)
			}
			if d.ByteSize() != tc.size {
				t.Errorf("size: got %d, want %d", d.ByteSize(), tc.size)
			}
		})
	}
}

func TestMapRecord(t *testing.T) {
	vec3 := tuple(wit.F32{}, wit.F32{}, wit.F32{})
	name := "light"
	light := &wit.TypeDef{
		Name: &name,
		Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "color", Type: vec3},
				{Name: "intensity", Type: wit.F32{}},
			},
		},
	}
	scene := &wit.TypeDef{
		Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "key", Type: light},
				{Name: "fill", Type: light},
				{Name: "enabled", Type: wit.Bool{}},
			},
		},
	}

	m := NewMapper(descriptor.Uniform)
	d, err := m.Map(scene)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := d.(*descriptor.Struct)
	if !ok {
		t.Fatalf("got %T, want *descriptor.Struct", d)
	}

	key, _ := s.Lookup("key")
	fill, _ := s.Lookup("fill")
	if key.Type != fill.Type {
		t.Error("a record referenced twice should map to one descriptor")
	}

	tests := []struct {
		member string
		offset uint32
	}{
		{"key", 0},
		{"fill", 32},
		{"enabled", 64},
	}
	for _, tc := range tests {
		off, err := s.OffsetOf(tc.member)
		if err != nil {
			t.Fatal(err)
		}
		if off != tc.offset {
			t.Errorf("%s: got %d, want %d", tc.member, off, tc.offset)
		}
	}
	if s.ByteSize() != 80 {
		t.Errorf("size: got %d, want 80", s.ByteSize())
	}
}

func TestMapAlias(t *testing.T) {
	alias := &wit.TypeDef{Kind: wit.F32{}}
	d, err := FromWIT(alias, descriptor.Dense)
	if err != nil {
		t.Fatal(err)
	}
	if d != descriptor.F32 {
		t.Errorf("got %v, want f32", d)
	}
}

func TestMapUnsupported(t *testing.T) {
	name := "bad"
	tests := []struct {
		name string
		typ  wit.Type
		path string
	}{
		{"string", wit.String{}, ""},
		{"u8", wit.U8{}, ""},
		{"list", &wit.TypeDef{Kind: &wit.List{Type: wit.F32{}}}, ""},
		{"empty_tuple", tuple(), ""},
		{
			"record_field",
			&wit.TypeDef{Name: &name, Kind: &wit.Record{Fields: []wit.Field{{Name: "label", Type: wit.String{}}}}},
			"bad.label",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromWIT(tc.typ, descriptor.Dense)
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseSchema, Kind: errors.KindUnsupported}) {
				t.Fatalf("got %v, want schema unsupported", err)
			}
			if tc.path != "" {
				var e *errors.Error
				if !stderrors.As(err, &e) || errors.JoinPath(e.Path) != tc.path {
					t.Errorf("path: got %v, want %s", err, tc.path)
				}
			}
		})
	}
}
