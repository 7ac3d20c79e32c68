// Package compress provides the lossless compression applied to each encoded
// record before it is stored.
//
// The workload is write-once read-many, so the default favors compression
// ratio over encode speed. Like the codec, the compressor is a breaking-change
// boundary: blobs only decompress with the algorithm that wrote them.
package compress

// Compressor compresses and decompresses byte slices.
// Implementations must be safe for concurrent use.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// ByName returns a built-in compressor by its stable name.
func ByName(name string) (Compressor, bool) {
	switch name {
	case "xz":
		return XZ{}, true
	case "zstd":
		return defaultZstd, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// Default is the compressor used when none is configured.
//
// xz gives the best ratio of the built-ins and matches the frame format the
// tool has historically written.
var Default Compressor = XZ{}
