package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRoundTrip(t *testing.T) {
	original := &Entry{
		Key:         "reports/q3/summary.pdf",
		ContentHash: 0xdeadbeefcafef00d,
		ChunkCount:  42,
		ProcessedAt: time.Date(2025, 6, 15, 10, 30, 0, 123000, time.UTC),
	}

	data := MarshalEntry(original)
	decoded, err := UnmarshalEntry(data)
	require.NoError(t, err)

	assert.Equal(t, original.Key, decoded.Key)
	assert.Equal(t, original.ContentHash, decoded.ContentHash)
	assert.Equal(t, original.ChunkCount, decoded.ChunkCount)
	assert.True(t, original.ProcessedAt.Equal(decoded.ProcessedAt))
}

func TestEntryRoundTripZeroValues(t *testing.T) {
	original := &Entry{ProcessedAt: time.Unix(0, 0)}

	decoded, err := UnmarshalEntry(MarshalEntry(original))
	require.NoError(t, err)

	assert.Empty(t, decoded.Key)
	assert.Zero(t, decoded.ContentHash)
	assert.Zero(t, decoded.ChunkCount)
}

func TestUnmarshalTruncated(t *testing.T) {
	entry := &Entry{
		Key:         "a-reasonably-long-key.pdf",
		ContentHash: 12345,
		ChunkCount:  7,
		ProcessedAt: time.Now().UTC(),
	}
	data := MarshalEntry(entry)

	for _, cut := range []int{0, 1, len(data) / 2, len(data) - 1} {
		_, err := UnmarshalEntry(data[:cut])
		assert.ErrorIs(t, err, ErrSerializationFailed, "cut at %d", cut)
	}
}
