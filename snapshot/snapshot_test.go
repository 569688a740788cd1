package snapshot_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecgraph/vecgraph/codec"
	"github.com/vecgraph/vecgraph/core"
	"github.com/vecgraph/vecgraph/snapshot"
)

func testState() *snapshot.State {
	return &snapshot.State{
		MMax: 4,
		Nodes: map[core.ElementID][]core.ElementID{
			0: {1, 2},
			1: {0},
			2: {0, 3},
			3: {2},
			4: {},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	codecs := []codec.Codec{codec.JSON{}, codec.Gob{}}
	compressions := []snapshot.CompressionType{
		snapshot.CompressionNone,
		snapshot.CompressionLZ4,
		snapshot.CompressionZSTD,
	}

	for _, c := range codecs {
		for _, comp := range compressions {
			t.Run(c.Name()+"/"+comp.String(), func(t *testing.T) {
				state := testState()

				data, err := snapshot.Encode(state, snapshot.Options{Codec: c, Compression: comp})
				require.NoError(t, err)

				got, err := snapshot.Decode(data)
				require.NoError(t, err)

				assert.Equal(t, state.MMax, got.MMax)
				require.Len(t, got.Nodes, len(state.Nodes))
				for id, edges := range state.Nodes {
					assert.ElementsMatch(t, edges, got.Nodes[id], "node %d", id)
				}
			})
		}
	}
}

func TestDecodeDefaultsCodec(t *testing.T) {
	data, err := snapshot.Encode(testState(), snapshot.Options{})
	require.NoError(t, err)

	got, err := snapshot.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 4, got.MMax)
}

func TestDecodeInvalidMagic(t *testing.T) {
	data, err := snapshot.Encode(testState(), snapshot.Options{})
	require.NoError(t, err)

	data[0] ^= 0xFF
	_, err = snapshot.Decode(data)
	require.ErrorIs(t, err, snapshot.ErrInvalidMagic)
}

func TestDecodeUnknownCompression(t *testing.T) {
	data, err := snapshot.Encode(testState(), snapshot.Options{})
	require.NoError(t, err)

	// Compression byte sits right after the magic and version words.
	data[8] = 0xEE
	_, err = snapshot.Decode(data)
	require.ErrorIs(t, err, snapshot.ErrUnknownCompression)
}

func TestDecodeChecksumMismatch(t *testing.T) {
	data, err := snapshot.Encode(testState(), snapshot.Options{Compression: snapshot.CompressionZSTD})
	require.NoError(t, err)

	// Flip a payload byte just before the CRC trailer.
	data[len(data)-5] ^= 0xFF
	_, err = snapshot.Decode(data)
	require.Error(t, err)
	assert.True(t, snapshot.IsChecksumMismatch(err))
}

func TestDecodeTruncated(t *testing.T) {
	data, err := snapshot.Encode(testState(), snapshot.Options{})
	require.NoError(t, err)

	for _, n := range []int{0, 4, 20, len(data) - 1} {
		_, err := snapshot.Decode(data[:n])
		require.ErrorIs(t, err, snapshot.ErrTruncated, "truncated at %d", n)
	}
}

func TestDecodeOverstatedPayloadLen(t *testing.T) {
	data, err := snapshot.Encode(testState(), snapshot.Options{})
	require.NoError(t, err)

	// The payload length field sits at the end of the fixed header. A
	// corrupt 4 GiB value must fail as truncated input, not be trusted
	// with an up-front allocation.
	for i := 20; i < 24; i++ {
		data[i] = 0xFF
	}
	_, err = snapshot.Decode(data)
	require.ErrorIs(t, err, snapshot.ErrTruncated)
}

func TestWriteRejectsUnknownCompression(t *testing.T) {
	err := snapshot.Write(nil, testState(), snapshot.Options{Compression: snapshot.CompressionType(7)})
	require.ErrorIs(t, err, snapshot.ErrUnknownCompression)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphs", "adjacency.vgr")

	state := testState()
	opts := snapshot.Options{Codec: codec.Gob{}, Compression: snapshot.CompressionLZ4}
	require.NoError(t, snapshot.WriteFile(path, state, opts))

	// Overwrites go through a temp file and rename, so a second write
	// must succeed and fully replace the first.
	state.Nodes[5] = []core.ElementID{}
	require.NoError(t, snapshot.WriteFile(path, state, opts))

	got, err := snapshot.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, got.MMax)
	assert.Len(t, got.Nodes, 6)
}
