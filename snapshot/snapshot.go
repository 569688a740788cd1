package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vecgraph/vecgraph/codec"
	"github.com/vecgraph/vecgraph/core"
)

// State is the serializable form of an adjacency graph.
type State struct {
	MMax  int
	Nodes map[core.ElementID][]core.ElementID
}

// Options configures how a snapshot is written.
type Options struct {
	// Codec encodes the payload. Nil means codec.Default.
	Codec codec.Codec

	// Compression selects the payload compression.
	Compression CompressionType
}

// Write encodes state to w as a self-describing snapshot.
func Write(w io.Writer, state *State, opts Options) error {
	c := opts.Codec
	if c == nil {
		c = codec.Default
	}
	if !opts.Compression.valid() {
		return ErrUnknownCompression
	}
	name := c.Name()
	if len(name) == 0 || len(name) > maxCodecNameLen {
		return fmt.Errorf("codec name %q out of range", name)
	}

	raw, err := c.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot payload: %w", err)
	}
	payload, err := compressBlock(raw, opts.Compression)
	if err != nil {
		return fmt.Errorf("compress snapshot payload: %w", err)
	}

	hdr := fileHeader{
		Magic:        MagicNumber,
		Version:      Version,
		Compression:  uint8(opts.Compression),
		CodecNameLen: uint8(len(name)),
		NodeCount:    uint64(len(state.Nodes)),
		PayloadLen:   uint32(len(payload)),
	}

	cw := NewChecksumWriter(w)
	if err := binary.Write(cw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	if _, err := cw.Write([]byte(name)); err != nil {
		return err
	}
	if _, err := cw.Write(payload); err != nil {
		return err
	}

	// CRC32 trailer over everything written so far.
	return binary.Write(w, binary.LittleEndian, cw.Sum())
}

// Read decodes a snapshot previously produced by Write.
func Read(r io.Reader) (*State, error) {
	cr := NewChecksumReader(r)

	var hdr fileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	if hdr.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if hdr.Version != Version {
		return nil, ErrInvalidVersion
	}
	if hdr.CodecNameLen == 0 || hdr.CodecNameLen > maxCodecNameLen {
		return nil, ErrUnknownCodec
	}
	compression := CompressionType(hdr.Compression)
	if !compression.valid() {
		return nil, ErrUnknownCompression
	}

	nameBuf := make([]byte, hdr.CodecNameLen)
	if _, err := io.ReadFull(cr, nameBuf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	c, ok := codec.ByName(string(nameBuf))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, nameBuf)
	}

	payload, err := readPayload(cr, int(hdr.PayloadLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}

	var expected uint32
	if err := binary.Read(r, binary.LittleEndian, &expected); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	if err := cr.Verify(expected); err != nil {
		return nil, err
	}

	raw, err := decompressBlock(payload, compression)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot payload: %w", err)
	}

	var state State
	if err := c.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot payload: %w", err)
	}
	if uint64(len(state.Nodes)) != hdr.NodeCount {
		return nil, fmt.Errorf("%w: header %d, payload %d", ErrNodeCountMismatch, hdr.NodeCount, len(state.Nodes))
	}
	return &state, nil
}

// payloadChunkSize bounds how much memory a single allocation commits
// before the corresponding payload bytes have actually arrived. The
// header's length field is read before the checksum is verified, so it
// must not be trusted with an up-front allocation.
const payloadChunkSize = 1 << 20

func readPayload(r io.Reader, size int) ([]byte, error) {
	buf := make([]byte, 0, min(size, payloadChunkSize))
	for len(buf) < size {
		n := min(size-len(buf), payloadChunkSize)
		start := len(buf)
		buf = append(buf, make([]byte, n)...)
		if _, err := io.ReadFull(r, buf[start:]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// Encode is a convenience wrapper returning the snapshot as bytes.
func Encode(state *State, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, state, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode is a convenience wrapper reading a snapshot from bytes.
func Decode(data []byte) (*State, error) {
	return Read(bytes.NewReader(data))
}
