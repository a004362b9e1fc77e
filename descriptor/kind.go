package descriptor

// Kind is the type tag shared by descriptors and the buffers wrapping them.
type Kind uint8

const (
	KindBool Kind = iota
	KindI32
	KindU32
	KindF16
	KindF32
	KindF64
	KindVec2
	KindVec3
	KindVec4
	KindMat2
	KindMat3
	KindMat4
	KindArray
	KindStruct
)

var kindNames = [...]string{
	KindBool:   "bool",
	KindI32:    "i32",
	KindU32:    "u32",
	KindF16:    "f16",
	KindF32:    "f32",
	KindF64:    "f64",
	KindVec2:   "vec2",
	KindVec3:   "vec3",
	KindVec4:   "vec4",
	KindMat2:   "mat2x2",
	KindMat3:   "mat3x3",
	KindMat4:   "mat4x4",
	KindArray:  "array",
	KindStruct: "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsScalar() bool {
	return k <= KindF64
}

func (k Kind) IsVec() bool {
	return k >= KindVec2 && k <= KindVec4
}

func (k Kind) IsMat() bool {
	return k >= KindMat2 && k <= KindMat4
}

// ScalarSize returns the byte width of a scalar kind, or 0 for composites.
func (k Kind) ScalarSize() uint32 {
	switch k {
	case KindBool, KindI32, KindU32, KindF32:
		return 4
	case KindF16:
		return 2
	case KindF64:
		return 8
	default:
		return 0
	}
}

// Packing selects the layout discipline baked into a descriptor.
type Packing uint8

const (
	// Dense mirrors a tightly packed native struct.
	Dense Packing = iota
	// Uniform follows std140-style uniform buffer rules.
	Uniform
)

func (p Packing) String() string {
	switch p {
	case Dense:
		return "dense"
	case Uniform:
		return "uniform"
	default:
		return "unknown"
	}
}
