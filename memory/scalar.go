package memory

// ScalarBuffer holds one numeric scalar.
type ScalarBuffer struct {
	base
}

// Get returns int32, uint32, float32 (for f16 and f32) or float64.
func (b *ScalarBuffer) Get() any {
	v, _ := b.view.Load(0) // a wrapped scalar view always holds element 0
	return v
}

// Set stores any Go number that fits the scalar kind.
func (b *ScalarBuffer) Set(v any) error {
	return b.view.Store(0, v)
}

// BoolBuffer holds a bool stored as a 32-bit word.
type BoolBuffer struct {
	base
}

func (b *BoolBuffer) Get() bool {
	v, _ := b.view.Load(0)
	bv, _ := v.(bool)
	return bv
}

func (b *BoolBuffer) Set(v bool) {
	_ = b.view.Store(0, v)
}

func (b *BoolBuffer) set(v any) error {
	bv, ok := v.(bool)
	if !ok {
		return typeMismatch(v, b.desc)
	}
	b.Set(bv)
	return nil
}
