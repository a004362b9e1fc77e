// Package vertex turns descriptors into WebGPU vertex-buffer and
// buffer-binding layouts.
package vertex

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

type formatKey struct {
	scalar descriptor.Kind
	n      int
}

var formats = map[formatKey]gputypes.VertexFormat{
	{descriptor.KindF32, 1}: gputypes.VertexFormatFloat32,
	{descriptor.KindF32, 2}: gputypes.VertexFormatFloat32x2,
	{descriptor.KindF32, 3}: gputypes.VertexFormatFloat32x3,
	{descriptor.KindF32, 4}: gputypes.VertexFormatFloat32x4,
	{descriptor.KindU32, 1}: gputypes.VertexFormatUint32,
	{descriptor.KindU32, 2}: gputypes.VertexFormatUint32x2,
	{descriptor.KindU32, 3}: gputypes.VertexFormatUint32x3,
	{descriptor.KindU32, 4}: gputypes.VertexFormatUint32x4,
	{descriptor.KindI32, 1}: gputypes.VertexFormatSint32,
	{descriptor.KindI32, 2}: gputypes.VertexFormatSint32x2,
	{descriptor.KindI32, 3}: gputypes.VertexFormatSint32x3,
	{descriptor.KindI32, 4}: gputypes.VertexFormatSint32x4,
	{descriptor.KindF16, 2}: gputypes.VertexFormatFloat16x2,
	{descriptor.KindF16, 4}: gputypes.VertexFormatFloat16x4,
}

// Format returns the vertex format for a scalar or vector descriptor.
func Format(d descriptor.Descriptor) (gputypes.VertexFormat, error) {
	var key formatKey
	switch t := d.(type) {
	case *descriptor.Scalar:
		key = formatKey{t.Kind(), 1}
	case *descriptor.Vec:
		key = formatKey{t.Scalar().Kind(), t.Len()}
	}
	f, ok := formats[key]
	if !ok || d == nil {
		return 0, errors.New(errors.PhaseSchema, errors.KindUnsupported).
			GPUType(fmt.Sprint(d)).
			Detail("no vertex format").
			Build()
	}
	return f, nil
}

// BufferLayout describes one vertex per instance of s: one attribute per
// member at the member offset, numbered from firstLocation, and a stride of
// the struct's array pitch.
func BufferLayout(s *descriptor.Struct, step gputypes.VertexStepMode, firstLocation uint32) (gputypes.VertexBufferLayout, error) {
	if s == nil {
		return gputypes.VertexBufferLayout{}, errors.InvalidInput(errors.PhaseSchema, "descriptor is nil")
	}

	members := s.Members()
	attrs := make([]gputypes.VertexAttribute, len(members))
	for i, m := range members {
		f, err := Format(m.Type)
		if err != nil {
			return gputypes.VertexBufferLayout{}, errors.WithPath(err, m.Name)
		}
		attrs[i] = gputypes.VertexAttribute{
			Format:         f,
			Offset:         uint64(m.Offset),
			ShaderLocation: firstLocation + uint32(i),
		}
	}

	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(s.ArrayPitch()),
		StepMode:    step,
		Attributes:  attrs,
	}, nil
}

// BindingLayout describes a buffer binding holding one instance of d.
// Uniform bindings require uniform-packed structs.
func BindingLayout(d descriptor.Descriptor, typ gputypes.BufferBindingType) (gputypes.BufferBindingLayout, error) {
	if d == nil {
		return gputypes.BufferBindingLayout{}, errors.InvalidInput(errors.PhaseSchema, "descriptor is nil")
	}
	if s, ok := d.(*descriptor.Struct); ok && typ == gputypes.BufferBindingTypeUniform && s.Packing() != descriptor.Uniform {
		return gputypes.BufferBindingLayout{}, errors.New(errors.PhaseSchema, errors.KindInvalidInput).
			GPUType(s.String()).
			Detail("uniform binding needs a uniform-packed struct").
			Build()
	}
	return gputypes.BufferBindingLayout{
		Type:           typ,
		MinBindingSize: uint64(d.ByteSize()),
	}, nil
}
