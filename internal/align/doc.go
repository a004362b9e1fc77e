// Package align provides the shared alignment and overflow-checked arithmetic
// used by the descriptor layer.
//
// # Contents
//
//   - To: round a value up to a multiple of an alignment
//   - SafeMul, SafeAdd: uint32 arithmetic that reports overflow
//   - Max: the larger of two uint32 values
//
// This package is internal to the module.
package align
