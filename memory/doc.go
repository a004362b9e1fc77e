// Package memory provides mutable typed windows over GPU-bound byte buffers.
//
// A Buffer is a non-owning (descriptor, backing bytes, offset) triple. The
// concrete type always mirrors the descriptor kind:
//
//   - *ScalarBuffer and *BoolBuffer for scalars
//   - *VecBuffer for vectors
//   - *MatBuffer for matrices
//   - *ArrayBuffer for arrays
//   - *StructBuffer for structs
//
// # Allocation
//
// Allocate creates a zeroed backing slice sized to the descriptor and wraps
// it at offset 0. Wrap views an existing slice at any offset:
//
//	buf, err := memory.AllocateAs[*memory.StructBuffer](camera)
//	pos, err := buf.Get("position")
//	err = buf.Set(map[string]any{"time": 1.5})
//
// # Aliasing
//
// Buffers derived through Get, At or Wrap share the backing bytes. A write
// through one is visible through every other buffer covering the same
// range. The package does no locking; callers sharing a backing slice across
// goroutines must synchronize externally.
//
// # Upload
//
// Range returns exactly the bytes an uploader should copy: the descriptor's
// byte size starting at the buffer offset.
package memory
