package gpulayout

import (
	"github.com/wippyai/gpu-layout/memory"
)

// Uploader receives finished buffer ranges, e.g. a GPU queue or a wasm
// linear memory used as a staging area.
type Uploader interface {
	Upload(dst uint32, data []byte) error
}

// UploaderFunc adapts a plain function to Uploader.
type UploaderFunc func(dst uint32, data []byte) error

func (f UploaderFunc) Upload(dst uint32, data []byte) error { return f(dst, data) }

// Upload sends the byte range of b to u at dst.
func Upload(u Uploader, dst uint32, b memory.Buffer) error {
	return u.Upload(dst, b.Range())
}
