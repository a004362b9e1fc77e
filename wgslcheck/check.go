// Package wgslcheck compares descriptor layouts against the struct layouts a
// WGSL shader declares, as computed by the naga front end.
//
// A descriptor tree is normally written by hand to match a shader. Check
// catches drift between the two before it turns into silently corrupted
// uniforms:
//
//	report, err := wgslcheck.Check(src, "Camera", camera)
//	if err != nil {
//		return err
//	}
//	if err := report.Err(); err != nil {
//		log.Fatal(err) // [verify] layout_mismatch at Camera.time: ...
//	}
package wgslcheck

import (
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/align"
)

// Mismatch is one difference between host and shader layouts.
type Mismatch struct {
	// Path is the dotted member path; empty for the struct itself.
	Path   string
	What   string // member, offset, type, length, stride, size or members
	Host   string
	Shader string
}

func (m Mismatch) String() string {
	if m.Path == "" {
		return fmt.Sprintf("%s: host %s, shader %s", m.What, m.Host, m.Shader)
	}
	return fmt.Sprintf("%s %s: host %s, shader %s", m.Path, m.What, m.Host, m.Shader)
}

// Report lists every difference found for one struct.
type Report struct {
	Struct     string
	Mismatches []Mismatch
	HostSize   uint32
	ShaderSpan uint32
}

func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

// Err returns a layout mismatch error naming the first difference, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	first := r.Mismatches[0]
	path := []string{r.Struct}
	if first.Path != "" {
		path = append(path, strings.Split(first.Path, ".")...)
	}
	detail := fmt.Sprintf("%s: host %s, shader %s", first.What, first.Host, first.Shader)
	if n := len(r.Mismatches); n > 1 {
		detail += fmt.Sprintf(" (and %d more)", n-1)
	}
	return errors.LayoutMismatch(path, detail)
}

// Parse parses and lowers WGSL source to naga IR.
func Parse(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, errors.ParseFailed(errors.PhaseVerify, "wgsl", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, errors.ParseFailed(errors.PhaseVerify, "wgsl", err)
	}
	return module, nil
}

// Check parses source and compares the struct named structName with s.
func Check(source, structName string, s *descriptor.Struct) (*Report, error) {
	module, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return CheckModule(module, structName, s)
}

// CheckModule compares s with a struct in an already lowered module.
func CheckModule(module *ir.Module, structName string, s *descriptor.Struct) (*Report, error) {
	if s == nil {
		return nil, errors.InvalidInput(errors.PhaseVerify, "descriptor is nil")
	}
	st, ok := findStruct(module, structName)
	if !ok {
		return nil, errors.NotFound(errors.PhaseVerify, "struct", structName)
	}

	r := &Report{Struct: structName, HostSize: s.ByteSize(), ShaderSpan: st.Span}
	compare(r, module, "", s, st)
	return r, nil
}

func findStruct(module *ir.Module, name string) (ir.StructType, bool) {
	for _, t := range module.Types {
		if t.Name != name {
			continue
		}
		if st, ok := t.Inner.(ir.StructType); ok {
			return st, true
		}
	}
	return ir.StructType{}, false
}

func compare(r *Report, module *ir.Module, prefix string, host *descriptor.Struct, shader ir.StructType) {
	members := host.Members()
	if len(members) != len(shader.Members) {
		r.Mismatches = append(r.Mismatches, Mismatch{
			Path:   prefix,
			What:   "members",
			Host:   fmt.Sprint(len(members)),
			Shader: fmt.Sprint(len(shader.Members)),
		})
	}

	for i := 0; i < len(members) && i < len(shader.Members); i++ {
		hm, sm := members[i], shader.Members[i]
		path := join(prefix, hm.Name)

		if hm.Name != sm.Name {
			r.Mismatches = append(r.Mismatches, Mismatch{
				Path:   path,
				What:   "member",
				Host:   hm.Name,
				Shader: sm.Name,
			})
			continue
		}
		if hm.Offset != sm.Offset {
			r.Mismatches = append(r.Mismatches, Mismatch{
				Path:   path,
				What:   "offset",
				Host:   fmt.Sprintf("%d (%s)", hm.Offset, hm.Type),
				Shader: fmt.Sprintf("%d (%s)", sm.Offset, typeName(module, sm.Type)),
			})
		}

		if int(sm.Type) < len(module.Types) {
			compareType(r, module, path, host.Packing(), hm.Type, sm.Type)
		}
	}

	if host.ByteSize() != shader.Span {
		r.Mismatches = append(r.Mismatches, Mismatch{
			Path:   prefix,
			What:   "size",
			Host:   fmt.Sprint(host.ByteSize()),
			Shader: fmt.Sprint(shader.Span),
		})
	}
}

// compareType checks one member's type. Structs recurse, arrays compare
// their element stride and then their item, everything else compares by its
// WGSL spelling.
func compareType(r *Report, module *ir.Module, path string, packing descriptor.Packing, host descriptor.Descriptor, h ir.TypeHandle) {
	switch inner := module.Types[h].Inner.(type) {
	case ir.StructType:
		if nested, ok := host.(*descriptor.Struct); ok {
			compare(r, module, path, nested, inner)
			return
		}
	case ir.ArrayType:
		if arr, ok := host.(*descriptor.Array); ok {
			compareArray(r, module, path, packing, arr, inner)
			return
		}
	default:
		if host.String() == typeName(module, h) {
			return
		}
	}
	r.Mismatches = append(r.Mismatches, Mismatch{
		Path:   path,
		What:   "type",
		Host:   host.String(),
		Shader: typeName(module, h),
	})
}

// compareArray checks length, element stride and item type. naga lowers
// arrays with their storage stride; in the uniform address space WGSL rounds
// every array stride up to 16, so that rule is applied here for
// uniform-packed hosts.
func compareArray(r *Report, module *ir.Module, path string, packing descriptor.Packing, host *descriptor.Array, shader ir.ArrayType) {
	if shader.Size.Constant == nil || int(*shader.Size.Constant) != host.Len() {
		r.Mismatches = append(r.Mismatches, Mismatch{
			Path:   path,
			What:   "length",
			Host:   fmt.Sprint(host.Len()),
			Shader: arrayLen(shader),
		})
		return
	}

	stride := shader.Stride
	if packing == descriptor.Uniform {
		if s, err := align.To(stride, 16); err == nil {
			stride = s
		}
	}
	if pitch := host.Item().ArrayPitch(); pitch != stride {
		r.Mismatches = append(r.Mismatches, Mismatch{
			Path:   path,
			What:   "stride",
			Host:   fmt.Sprint(pitch),
			Shader: fmt.Sprint(stride),
		})
	}

	if int(shader.Base) < len(module.Types) {
		compareType(r, module, path+"[]", packing, host.Item(), shader.Base)
	}
}

func arrayLen(a ir.ArrayType) string {
	if a.Size.Constant == nil {
		return "runtime"
	}
	return fmt.Sprint(*a.Size.Constant)
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// typeName renders a naga type the way WGSL spells it.
func typeName(module *ir.Module, h ir.TypeHandle) string {
	if int(h) >= len(module.Types) {
		return "?"
	}
	t := module.Types[h]
	switch inner := t.Inner.(type) {
	case ir.ScalarType:
		return scalarName(inner)
	case ir.VectorType:
		return fmt.Sprintf("vec%d<%s>", inner.Size, scalarName(inner.Scalar))
	case ir.MatrixType:
		return fmt.Sprintf("mat%dx%d<%s>", inner.Columns, inner.Rows, scalarName(inner.Scalar))
	case ir.ArrayType:
		if inner.Size.Constant == nil {
			return fmt.Sprintf("array<%s>", typeName(module, inner.Base))
		}
		return fmt.Sprintf("array<%s, %d>", typeName(module, inner.Base), *inner.Size.Constant)
	default:
		if t.Name != "" {
			return t.Name
		}
		return "?"
	}
}

func scalarName(s ir.ScalarType) string {
	switch s.Kind {
	case ir.ScalarBool:
		return "bool"
	case ir.ScalarSint:
		return fmt.Sprintf("i%d", s.Width*8)
	case ir.ScalarUint:
		return fmt.Sprintf("u%d", s.Width*8)
	case ir.ScalarFloat:
		return fmt.Sprintf("f%d", s.Width*8)
	}
	return "?"
}
