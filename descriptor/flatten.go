package descriptor

import "strconv"

// FieldInfo describes one node of a descriptor tree at its absolute offset.
type FieldInfo struct {
	Path   string
	Type   string
	Kind   Kind
	Offset uint32
	Size   uint32
	Align  uint32
	Pitch  uint32
}

// Flatten walks d depth-first and returns every node in byte order. The root
// has an empty path; members are joined with dots and array elements use
// "[i]", as in "lights[2].color". Vectors and matrices are leaves.
func Flatten(d Descriptor) []FieldInfo {
	var out []FieldInfo
	flatten(&out, d, "", 0)
	return out
}

func flatten(out *[]FieldInfo, d Descriptor, path string, off uint32) {
	*out = append(*out, FieldInfo{
		Path:   path,
		Type:   d.String(),
		Kind:   d.Kind(),
		Offset: off,
		Size:   d.ByteSize(),
		Align:  d.Alignment(),
		Pitch:  d.ArrayPitch(),
	})

	switch t := d.(type) {
	case *Struct:
		for _, m := range t.members {
			p := m.Name
			if path != "" {
				p = path + "." + m.Name
			}
			flatten(out, m.Type, p, off+m.Offset)
		}
	case *Array:
		pitch := t.item.ArrayPitch()
		for i := uint32(0); i < t.length; i++ {
			flatten(out, t.item, path+"["+strconv.FormatUint(uint64(i), 10)+"]", off+i*pitch)
		}
	}
}
