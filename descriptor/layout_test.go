package descriptor

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/gpu-layout/errors"
)

type layout struct {
	size  uint32
	align uint32
	pitch uint32
}

func checkLayout(t *testing.T, d Descriptor, want layout) {
	t.Helper()
	if d.ByteSize() != want.size {
		t.Errorf("size: got %d, want %d", d.ByteSize(), want.size)
	}
	if d.Alignment() != want.align {
		t.Errorf("align: got %d, want %d", d.Alignment(), want.align)
	}
	if d.ArrayPitch() != want.pitch {
		t.Errorf("pitch: got %d, want %d", d.ArrayPitch(), want.pitch)
	}
}

func TestScalarLayout(t *testing.T) {
	tests := []struct {
		s    *Scalar
		want layout
	}{
		{Bool, layout{4, 4, 4}},
		{I32, layout{4, 4, 4}},
		{U32, layout{4, 4, 4}},
		{F16, layout{2, 2, 2}},
		{F32, layout{4, 4, 4}},
		{F64, layout{8, 8, 8}},
	}

	for _, tc := range tests {
		t.Run(tc.s.String(), func(t *testing.T) {
			checkLayout(t, tc.s, tc.want)
		})
	}
}

func TestScalarOf(t *testing.T) {
	s, err := ScalarOf(KindF16)
	if err != nil {
		t.Fatal(err)
	}
	if s != F16 {
		t.Errorf("got %v, want shared F16 descriptor", s)
	}
	if _, err := ScalarOf(KindVec3); !stderrors.Is(err, &errors.Error{Kind: errors.KindInvalidInput}) {
		t.Errorf("ScalarOf(vec3): got %v, want invalid_input", err)
	}
}

func TestVecLayout(t *testing.T) {
	tests := []struct {
		name    string
		scalar  *Scalar
		n       int
		packing Packing
		want    layout
	}{
		{"dense_vec2_f32", F32, 2, Dense, layout{8, 4, 8}},
		{"dense_vec3_f32", F32, 3, Dense, layout{12, 4, 12}},
		{"dense_vec4_f32", F32, 4, Dense, layout{16, 4, 16}},
		{"dense_vec3_f16", F16, 3, Dense, layout{6, 2, 6}},
		{"uniform_vec2_f32", F32, 2, Uniform, layout{8, 8, 16}},
		{"uniform_vec3_f32", F32, 3, Uniform, layout{16, 16, 16}},
		{"uniform_vec4_f32", F32, 4, Uniform, layout{16, 16, 16}},
		{"uniform_vec2_f16", F16, 2, Uniform, layout{8, 8, 16}},
		{"uniform_vec2_f64", F64, 2, Uniform, layout{16, 16, 16}},
		{"uniform_vec3_f64", F64, 3, Uniform, layout{32, 32, 32}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := NewVec(tc.scalar, tc.n, tc.packing)
			if err != nil {
				t.Fatal(err)
			}
			checkLayout(t, v, tc.want)
			if v.Kind() != KindVec2+Kind(tc.n-2) {
				t.Errorf("kind: got %v", v.Kind())
			}
		})
	}
}

func TestVecInvalidLength(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		if _, err := NewVec(F32, n, Dense); !stderrors.Is(err, &errors.Error{Kind: errors.KindInvalidInput}) {
			t.Errorf("NewVec(n=%d): got %v, want invalid_input", n, err)
		}
	}
}

func TestMatLayout(t *testing.T) {
	tests := []struct {
		name    string
		scalar  *Scalar
		n       int
		packing Packing
		want    layout
		stride  uint32
	}{
		{"dense_mat2_f32", F32, 2, Dense, layout{16, 4, 16}, 8},
		{"dense_mat3_f32", F32, 3, Dense, layout{36, 4, 36}, 12},
		{"dense_mat4_f32", F32, 4, Dense, layout{64, 4, 64}, 16},
		{"uniform_mat2_f32", F32, 2, Uniform, layout{32, 16, 32}, 16},
		{"uniform_mat3_f32", F32, 3, Uniform, layout{48, 16, 48}, 16},
		{"uniform_mat4_f32", F32, 4, Uniform, layout{64, 16, 64}, 16},
		{"uniform_mat3_f64", F64, 3, Uniform, layout{96, 32, 96}, 32},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMat(tc.scalar, tc.n, tc.packing)
			if err != nil {
				t.Fatal(err)
			}
			checkLayout(t, m, tc.want)
			if m.ColumnStride() != tc.stride {
				t.Errorf("stride: got %d, want %d", m.ColumnStride(), tc.stride)
			}
		})
	}
}

func TestMatCol(t *testing.T) {
	m := Must(NewMat(F32, 3, Uniform))
	buf := make([]byte, m.ByteSize())

	col, err := m.Col(buf, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if col.Len() != 3 {
		t.Errorf("len: got %d, want 3", col.Len())
	}
	if err := col.Store(2, float32(9)); err != nil {
		t.Fatal(err)
	}
	flat, _ := m.View(buf, 0)
	got, _ := flat.Load(4 + 2)
	if got != float32(9) {
		t.Errorf("flat[6]: got %v, want 9", got)
	}

	for _, i := range []int{-1, 3} {
		_, err := m.Col(buf, 0, i)
		if !stderrors.Is(err, &errors.Error{Kind: errors.KindOutOfBounds}) {
			t.Errorf("Col(%d): got %v, want out_of_bounds", i, err)
		}
	}
}

func TestArrayLayout(t *testing.T) {
	vec3 := Must(NewVec(F32, 3, Uniform))

	t.Run("scalars", func(t *testing.T) {
		a := Must(NewArray(F32, 4))
		checkLayout(t, a, layout{16, 4, 16})
	})

	t.Run("uniform_vec3", func(t *testing.T) {
		a := Must(NewArray(vec3, 3))
		checkLayout(t, a, layout{48, 16, 48})
	})

	t.Run("empty", func(t *testing.T) {
		a := Must(NewArray(vec3, 0))
		checkLayout(t, a, layout{0, 16, 0})
	})

	t.Run("nested", func(t *testing.T) {
		inner := Must(NewArray(F32, 4))
		outer := Must(NewArray(inner, 2))
		checkLayout(t, outer, layout{32, 4, 32})
		off, err := outer.OffsetAt(1)
		if err != nil {
			t.Fatal(err)
		}
		if off != 16 {
			t.Errorf("offset of [1]: got %d, want 16", off)
		}
	})

	t.Run("negative_length", func(t *testing.T) {
		if _, err := NewArray(F32, -1); err == nil {
			t.Error("expected error for negative length")
		}
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := NewArray(F64, 1<<30)
		if !stderrors.Is(err, &errors.Error{Kind: errors.KindOverflow}) {
			t.Errorf("got %v, want overflow", err)
		}
	})
}

func TestArrayOffsetLaw(t *testing.T) {
	items := []Descriptor{
		F32,
		F64,
		Must(NewVec(F32, 3, Dense)),
		Must(NewVec(F32, 3, Uniform)),
		Must(NewMat(F32, 4, Uniform)),
		Must(NewStruct(Uniform, Field{Name: "a", Type: F32})),
	}

	for _, item := range items {
		t.Run(item.String(), func(t *testing.T) {
			const n = 5
			a := Must(NewArray(item, n))
			for i := 0; i < n; i++ {
				off, err := a.OffsetAt(i)
				if err != nil {
					t.Fatal(err)
				}
				if want := uint32(i) * item.ArrayPitch(); off != want {
					t.Errorf("OffsetAt(%d): got %d, want %d", i, off, want)
				}
			}
			for _, i := range []int{-1, n} {
				_, err := a.OffsetAt(i)
				if !stderrors.Is(err, &errors.Error{Kind: errors.KindOutOfBounds}) {
					t.Errorf("OffsetAt(%d): got %v, want out_of_bounds", i, err)
				}
			}
		})
	}
}

func TestStructLayout(t *testing.T) {
	vec3u := Must(NewVec(F32, 3, Uniform))
	vec3d := Must(NewVec(F32, 3, Dense))
	vec2u := Must(NewVec(F32, 2, Uniform))

	tests := []struct {
		name    string
		packing Packing
		fields  []Field
		offsets []uint32
		want    layout
	}{
		{
			name:    "dense_two_floats",
			packing: Dense,
			fields:  []Field{{Name: "a", Type: F32}, {Name: "b", Type: F32}},
			offsets: []uint32{0, 4},
			want:    layout{8, 4, 8},
		},
		{
			name:    "uniform_two_floats",
			packing: Uniform,
			fields:  []Field{{Name: "a", Type: F32}, {Name: "b", Type: F32}},
			offsets: []uint32{0, 4},
			want:    layout{16, 16, 16},
		},
		{
			name:    "uniform_vec3_then_float",
			packing: Uniform,
			fields:  []Field{{Name: "a", Type: vec3u}, {Name: "b", Type: F32}},
			offsets: []uint32{0, 16},
			want:    layout{32, 16, 32},
		},
		{
			name:    "dense_vec3_then_float",
			packing: Dense,
			fields:  []Field{{Name: "a", Type: vec3d}, {Name: "b", Type: F32}},
			offsets: []uint32{0, 12},
			want:    layout{16, 4, 16},
		},
		{
			name:    "uniform_float_then_vec2",
			packing: Uniform,
			fields:  []Field{{Name: "a", Type: F32}, {Name: "b", Type: vec2u}},
			offsets: []uint32{0, 8},
			want:    layout{16, 16, 16},
		},
		{
			name:    "dense_mixed_widths",
			packing: Dense,
			fields:  []Field{{Name: "h", Type: F16}, {Name: "d", Type: F64}, {Name: "u", Type: U32}},
			offsets: []uint32{0, 8, 16},
			want:    layout{24, 8, 24},
		},
		{
			name:    "empty_dense",
			packing: Dense,
			want:    layout{0, 1, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewStruct(tc.packing, tc.fields...)
			if err != nil {
				t.Fatal(err)
			}
			checkLayout(t, s, tc.want)
			for i, f := range tc.fields {
				off, err := s.OffsetOf(f.Name)
				if err != nil {
					t.Fatal(err)
				}
				if off != tc.offsets[i] {
					t.Errorf("offset of %s: got %d, want %d", f.Name, off, tc.offsets[i])
				}
			}
		})
	}
}

func TestStructNested(t *testing.T) {
	inner := Must(NewStruct(Uniform, Field{Name: "a", Type: F32}))
	outer := Must(NewStruct(Uniform,
		Field{Name: "x", Type: F32},
		Field{Name: "inner", Type: inner},
	))

	off, err := outer.OffsetOf("inner")
	if err != nil {
		t.Fatal(err)
	}
	if off != 16 {
		t.Errorf("offset of inner: got %d, want 16", off)
	}
	if outer.ByteSize() != 32 {
		t.Errorf("size: got %d, want 32", outer.ByteSize())
	}
}

func TestStructErrors(t *testing.T) {
	s := Must(NewStruct(Dense, Field{Name: "a", Type: F32}))

	t.Run("unknown_member", func(t *testing.T) {
		_, err := s.OffsetOf("missing")
		if !stderrors.Is(err, &errors.Error{Kind: errors.KindFieldUnknown}) {
			t.Errorf("got %v, want no_such_member", err)
		}
		if stderrors.Is(err, &errors.Error{Kind: errors.KindOutOfBounds}) {
			t.Error("unknown member must not be reported as a range error")
		}
		if _, err := s.Member(make([]byte, 4), 0, "missing"); !stderrors.Is(err, &errors.Error{Kind: errors.KindFieldUnknown}) {
			t.Errorf("Member: got %v, want no_such_member", err)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := NewStruct(Dense, Field{Name: "a", Type: F32}, Field{Name: "a", Type: U32})
		if !stderrors.Is(err, &errors.Error{Kind: errors.KindInvalidInput}) {
			t.Errorf("got %v, want invalid_input", err)
		}
	})

	t.Run("nil_type", func(t *testing.T) {
		if _, err := NewStruct(Dense, Field{Name: "a"}); err == nil {
			t.Error("expected error for nil member type")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		if _, err := NewStruct(Dense, Field{Type: F32}); err == nil {
			t.Error("expected error for empty member name")
		}
	})
}

func TestDescriptorInvariants(t *testing.T) {
	var all []Descriptor
	var uniform []Descriptor

	for _, s := range []*Scalar{Bool, I32, U32, F16, F32, F64} {
		all = append(all, s)
		for n := 2; n <= 4; n++ {
			for _, p := range []Packing{Dense, Uniform} {
				v := Must(NewVec(s, n, p))
				m := Must(NewMat(s, n, p))
				all = append(all, v, m, Must(NewArray(v, 3)), Must(NewArray(m, 2)))
				if p == Uniform {
					uniform = append(uniform, v, m, Must(NewArray(v, 3)), Must(NewArray(m, 2)))
				}
			}
		}
	}
	for _, p := range []Packing{Dense, Uniform} {
		light := Must(NewStruct(p,
			Field{Name: "color", Type: Must(NewVec(F32, 3, p))},
			Field{Name: "intensity", Type: F32},
			Field{Name: "flags", Type: Must(NewArray(U32, 3))},
		))
		scene := Must(NewStruct(p,
			Field{Name: "view", Type: Must(NewMat(F32, 4, p))},
			Field{Name: "lights", Type: Must(NewArray(light, 4))},
			Field{Name: "enabled", Type: Bool},
		))
		all = append(all, light, scene)
		if p == Uniform {
			uniform = append(uniform, light, scene, Must(NewArray(scene, 2)))
		}
	}

	for _, d := range all {
		if d.Alignment() == 0 {
			t.Errorf("%s: zero alignment", d)
		}
		if d.ArrayPitch() < d.ByteSize() {
			t.Errorf("%s: pitch %d < size %d", d, d.ArrayPitch(), d.ByteSize())
		}
	}
	for _, d := range uniform {
		if d.ArrayPitch()%16 != 0 {
			t.Errorf("%s: uniform pitch %d not a multiple of 16", d, d.ArrayPitch())
		}
	}
}

func TestStructMemberOffsetsAreOrdered(t *testing.T) {
	s := Must(NewStruct(Uniform,
		Field{Name: "a", Type: F16},
		Field{Name: "b", Type: Must(NewVec(F32, 3, Uniform))},
		Field{Name: "c", Type: F32},
		Field{Name: "d", Type: Must(NewMat(F32, 2, Uniform))},
		Field{Name: "e", Type: F64},
	))

	var end uint32
	for _, m := range s.Members() {
		if m.Offset < end {
			t.Errorf("%s at %d overlaps previous member ending at %d", m.Name, m.Offset, end)
		}
		if m.Offset%m.Type.Alignment() != 0 {
			t.Errorf("%s at %d not aligned to %d", m.Name, m.Offset, m.Type.Alignment())
		}
		end = m.Offset + m.Type.ByteSize()
	}
}

func TestDescriptorString(t *testing.T) {
	tests := []struct {
		d    Descriptor
		want string
	}{
		{F32, "f32"},
		{Must(NewVec(F32, 3, Uniform)), "vec3<f32>"},
		{Must(NewMat(F16, 4, Dense)), "mat4x4<f16>"},
		{Must(NewArray(U32, 8)), "array<u32, 8>"},
		{Must(NewStruct(Dense, Field{Name: "a", Type: F32}, Field{Name: "b", Type: Bool})), "struct{a: f32, b: bool}"},
	}

	for _, tc := range tests {
		if got := tc.d.String(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(NewVec(F32, 7, Dense))
}
