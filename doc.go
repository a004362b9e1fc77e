// Package gpulayout describes GPU shader data layouts and reads and writes
// Go values through zero-copy views over byte buffers laid out that way.
//
// # Architecture Overview
//
//	gpulayout/           Root package with the Uploader interface
//	├── descriptor/      Layout descriptors (scalar, vec, mat, array, struct) and typed views
//	├── memory/          Typed buffers over descriptors, Allocate and Wrap
//	├── schema/          TOML layout declarations and a type-expression parser
//	├── witschema/       WIT types mapped to descriptors
//	├── wgslcheck/       Descriptor layouts verified against WGSL via naga
//	├── vertex/          WebGPU vertex-buffer and binding layouts
//	├── staging/         Buffers staged in wasm linear memory (wazero)
//	├── errors/          Structured error types
//	└── cmd/layoutview/  Layout inspection CLI
//
// # Quick Start
//
// Describe a uniform block and write it:
//
//	light := descriptor.Must(descriptor.NewStruct(descriptor.Uniform,
//	    descriptor.Field{Name: "color", Type: descriptor.Must(descriptor.NewVec(descriptor.F32, 3, descriptor.Uniform))},
//	    descriptor.Field{Name: "intensity", Type: descriptor.F32},
//	))
//
//	buf, err := memory.AllocateAs[*memory.StructBuffer](light)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = buf.Set(map[string]any{
//	    "color":     []float32{1, 0.5, 0},
//	    "intensity": 2,
//	})
//
// The finished bytes are buf.Range(); hand them to any Uploader with Upload.
//
// # Packing
//
// Dense packing aligns every value to its scalar size. Uniform packing rounds
// vectors of three or more components, matrix columns, and structs up to
// 16 bytes. Scalars keep their natural pitch under both packings, so an
// array of bare scalars inside a uniform block is not padded to 16 bytes.
package gpulayout
