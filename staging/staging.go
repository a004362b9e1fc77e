// Package staging places layout buffers in wazero linear memory.
//
// Arena hands out a slice that aliases linear memory, so buffers wrapped over
// it are written in place. Stage copies a buffer built elsewhere. Slices from
// Arena are invalidated when the memory grows.
package staging

import (
	"fmt"
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/internal/align"
	"github.com/wippyai/gpu-layout/memory"
)

// Arena returns size bytes of mem starting at offset without copying.
func Arena(mem api.Memory, offset, size uint32) ([]byte, error) {
	if mem == nil {
		return nil, errors.InvalidInput(errors.PhaseStage, "memory is nil")
	}
	data, ok := mem.Read(offset, size)
	if !ok {
		return nil, errors.Overrun(errors.PhaseStage, nil, offset, size, int(mem.Size()))
	}
	return data[:size:size], nil
}

// Stage copies the byte range of buf into mem at dst.
func Stage(mem api.Memory, dst uint32, buf memory.Buffer) error {
	if mem == nil {
		return errors.InvalidInput(errors.PhaseStage, "memory is nil")
	}
	if buf == nil {
		return errors.InvalidInput(errors.PhaseStage, "buffer is nil")
	}
	return write(mem, dst, buf.Range())
}

func write(mem api.Memory, dst uint32, data []byte) error {
	if !mem.Write(dst, data) {
		Logger().Warn("staging write rejected",
			zap.Uint32("dst", dst),
			zap.Int("size", len(data)),
			zap.Uint32("memory_size", mem.Size()),
		)
		return errors.Overrun(errors.PhaseStage, nil, dst, uint32(len(data)), int(mem.Size()))
	}
	return nil
}

// Memory adapts a wazero api.Memory for uploads and in-place allocation.
type Memory struct {
	Mem api.Memory
}

// New wraps mem. It returns nil for a nil memory.
func New(mem api.Memory) *Memory {
	if mem == nil {
		return nil
	}
	return &Memory{Mem: mem}
}

// Upload writes data at dst.
func (m *Memory) Upload(dst uint32, data []byte) error {
	return write(m.Mem, dst, data)
}

// Wrap views d in place at offset in linear memory.
func (m *Memory) Wrap(d descriptor.Descriptor, offset uint32) (memory.Buffer, error) {
	if d == nil {
		return nil, errors.InvalidInput(errors.PhaseStage, "descriptor is nil")
	}
	data, err := Arena(m.Mem, offset, d.ByteSize())
	if err != nil {
		return nil, err
	}
	return memory.Wrap(d, data, 0)
}

// Allocate reserves room for d from a and wraps it in place.
func (m *Memory) Allocate(a *Bump, d descriptor.Descriptor) (memory.Buffer, uint32, error) {
	if d == nil {
		return nil, 0, errors.InvalidInput(errors.PhaseStage, "descriptor is nil")
	}
	ptr, err := a.Alloc(d.ByteSize(), d.Alignment())
	if err != nil {
		return nil, 0, err
	}
	b, err := m.Wrap(d, ptr)
	if err != nil {
		return nil, 0, err
	}
	Logger().Debug("staged allocation",
		zap.Stringer("type", d),
		zap.Uint32("ptr", ptr),
		zap.Uint32("size", d.ByteSize()),
	)
	return b, ptr, nil
}

// Bump hands out aligned ranges from [Base, Base+Size) in order. It never
// frees; call Reset to reuse the region.
type Bump struct {
	Base uint32
	Size uint32
	next uint32
}

// Alloc returns the offset of size bytes aligned to alignment.
func (b *Bump) Alloc(size, alignment uint32) (uint32, error) {
	cur, ok := align.SafeAdd(b.Base, b.next)
	if !ok {
		return 0, errors.Overflow(errors.PhaseStage, nil, "bump offset")
	}
	start, err := align.To(cur, alignment)
	if err != nil {
		return 0, err
	}
	limit, ok := align.SafeAdd(b.Base, b.Size)
	if !ok {
		limit = math.MaxUint32
	}
	end, ok := align.SafeAdd(start, size)
	if !ok || end > limit {
		return 0, errors.New(errors.PhaseStage, errors.KindOverrun).
			Detail("bump region full: need %d bytes at %d, region ends at %d", size, start, limit).
			Build()
	}
	b.next = end - b.Base
	return start, nil
}

// Used returns the bytes consumed so far, including padding.
func (b *Bump) Used() uint32 { return b.next }

// Reset makes the whole region available again.
func (b *Bump) Reset() { b.next = 0 }

func (b *Bump) String() string {
	return fmt.Sprintf("bump[%d, %d) used %d", b.Base, b.Base+b.Size, b.next)
}
