// Package schema declares descriptor trees in TOML.
//
// A schema file lists struct types in dependency order. Each member type is a
// WGSL-like expression:
//
//	[[type]]
//	name = "Light"
//	packing = "uniform"
//
//	  [[type.member]]
//	  name = "color"
//	  type = "vec3<f32>"
//
//	  [[type.member]]
//	  name = "intensity"
//	  type = "f32"
//
//	[[type]]
//	name = "Scene"
//	packing = "uniform"
//
//	  [[type.member]]
//	  name = "lights"
//	  type = "array<Light, 4>"
//
// Supported expressions:
//
//   - scalars: bool, i32, u32, f16, f32, f64
//   - vectors: vec2<T>, vec3<T>, vec4<T> and the shorthands vec3f, vec4i, vec2u, vec3h
//   - matrices: mat2x2<T>, mat3x3<T>, mat4x4<T> and mat4x4f, mat3x3h
//   - arrays: array<T, N>
//   - any type declared earlier in the file
//
// Vectors and matrices take the packing of the enclosing type.
package schema
