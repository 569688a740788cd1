package snapshot

import "errors"

const (
	// MagicNumber identifies vecgraph snapshot files (ASCII: "VGR0")
	MagicNumber = 0x56475230
	// Version is the current file format version (v1.0.0)
	Version = 0x00010000

	// maxCodecNameLen bounds the codec name stored in the header.
	maxCodecNameLen = 32
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCodec       = errors.New("unknown codec")
	ErrUnknownCompression = errors.New("unknown compression type")
	ErrTruncated          = errors.New("truncated snapshot")
	ErrNodeCountMismatch  = errors.New("node count mismatch")
)

// fileHeader is the fixed-size part of the snapshot header. The codec
// name follows it as CodecNameLen bytes, then the payload.
//
// Layout (little-endian):
//
//	Magic        uint32
//	Version      uint32
//	Compression  uint8
//	CodecNameLen uint8
//	Reserved     [2]byte
//	NodeCount    uint64
//	PayloadLen   uint32
type fileHeader struct {
	Magic        uint32
	Version      uint32
	Compression  uint8
	CodecNameLen uint8
	Reserved     [2]byte
	NodeCount    uint64
	PayloadLen   uint32
}
