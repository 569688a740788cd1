package snapshot_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecgraph/vecgraph/snapshot"
)

func TestChecksumWriterMatchesChecksum(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	var buf bytes.Buffer
	cw := snapshot.NewChecksumWriter(&buf)
	_, err := cw.Write(data[:10])
	require.NoError(t, err)
	_, err = cw.Write(data[10:])
	require.NoError(t, err)

	// Incremental writes produce the same sum as the one-shot helper.
	assert.Equal(t, snapshot.Checksum(data), cw.Sum())
	assert.Equal(t, data, buf.Bytes())
}

func TestChecksumReaderVerify(t *testing.T) {
	data := []byte("payload bytes")

	cr := snapshot.NewChecksumReader(bytes.NewReader(data))
	_, err := io.Copy(io.Discard, cr)
	require.NoError(t, err)

	require.NoError(t, cr.Verify(snapshot.Checksum(data)))

	err = cr.Verify(snapshot.Checksum(data) + 1)
	require.Error(t, err)
	assert.True(t, snapshot.IsChecksumMismatch(err))

	var mismatch *snapshot.ChecksumMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, snapshot.Checksum(data), mismatch.Actual)
}
