package compress

import (
	"bytes"
	"io"

	"github.com/ulikunitz/xz"
)

// XZ compresses with the xz/LZMA2 frame format (CRC64 integrity check).
// Slowest of the built-ins, best ratio.
type XZ struct{}

// Compress returns data as a single xz frame.
func (XZ) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress reads back a frame produced by Compress.
func (XZ) Decompress(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// Name returns the unique name of the compressor ("xz").
func (XZ) Name() string { return "xz" }
