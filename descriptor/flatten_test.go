package descriptor

import "testing"

func TestFlatten(t *testing.T) {
	light := Must(NewStruct(Uniform,
		Field{Name: "color", Type: Must(NewVec(F32, 3, Uniform))},
		Field{Name: "intensity", Type: F32},
	))
	scene := Must(NewStruct(Uniform,
		Field{Name: "lights", Type: Must(NewArray(light, 2))},
		Field{Name: "time", Type: F32},
	))

	want := []struct {
		path   string
		kind   Kind
		offset uint32
		size   uint32
	}{
		{"", KindStruct, 0, 80},
		{"lights", KindArray, 0, 64},
		{"lights[0]", KindStruct, 0, 32},
		{"lights[0].color", KindVec3, 0, 16},
		{"lights[0].intensity", KindF32, 16, 4},
		{"lights[1]", KindStruct, 32, 32},
		{"lights[1].color", KindVec3, 32, 16},
		{"lights[1].intensity", KindF32, 48, 4},
		{"time", KindF32, 64, 4},
	}

	got := Flatten(scene)
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Path != w.path || g.Kind != w.kind || g.Offset != w.offset || g.Size != w.size {
			t.Errorf("[%d]: got %s %v @%d size %d, want %s %v @%d size %d",
				i, g.Path, g.Kind, g.Offset, g.Size, w.path, w.kind, w.offset, w.size)
		}
	}
}

func TestFlattenLeaf(t *testing.T) {
	got := Flatten(Must(NewMat(F32, 4, Uniform)))
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Type != "mat4x4<f32>" || got[0].Align != 16 || got[0].Pitch != 64 {
		t.Errorf("got %+v", got[0])
	}
}
