// Package descriptor computes byte-exact layouts for GPU shader data.
//
// A Descriptor is an immutable blueprint built bottom-up from the six scalar
// kinds. Each one reports its byte size, alignment and array pitch, and can
// materialize a typed View over a byte slice at a given offset. Two packing
// disciplines are supported:
//
//   - Dense mirrors a tightly packed native struct
//   - Uniform follows std140-style rules for uniform buffers
//
// Building a descriptor tree:
//
//	vec3 := descriptor.Must(descriptor.NewVec(descriptor.F32, 3, descriptor.Uniform))
//	light := descriptor.Must(descriptor.NewStruct(descriptor.Uniform,
//		descriptor.Field{Name: "color", Type: vec3},
//		descriptor.Field{Name: "intensity", Type: descriptor.F32},
//	))
//	off, _ := light.OffsetOf("intensity") // 16
//
// Scalars report the same pitch under both packings. An array of bare scalars
// therefore does not get the 16-byte element stride strict std140 asks for;
// wrap scalars in a vec4 or a struct when a shader expects that stride.
package descriptor
