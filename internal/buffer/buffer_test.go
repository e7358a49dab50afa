package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vrope/vrope/internal/rope"
	"github.com/vrope/vrope/internal/scanner"
)

func testOracle() scanner.Oracle {
	return scanner.OracleFor(scanner.WidthMethodUnicode, scanner.NewUnicodeConfig())
}

func TestNewStartsWithSingleEmptyLine(t *testing.T) {
	b := New(testOracle())
	require.Equal(t, 1, b.GetLineCount())
	require.Equal(t, 0, b.GetTotalWidth())
}

func TestCreateChunkComputesWidthAndAscii(t *testing.T) {
	b := New(testOracle())
	id, err := b.RegisterMemBuffer([]byte("hello"), false)
	require.NoError(t, err)

	chunk, err := b.CreateChunk(id, 0, 5)
	require.NoError(t, err)
	require.Equal(t, 5, chunk.DisplayWidth)
	require.True(t, chunk.AsciiOnly)
}

func TestCreateChunkRejectsUnknownMemID(t *testing.T) {
	b := New(testOracle())
	_, err := b.CreateChunk(99, 0, 1)
	require.Error(t, err)
}

func TestViewDirtyBitsTrackMutation(t *testing.T) {
	b := New(testOracle())
	id := b.RegisterView()
	require.True(t, b.IsViewDirty(id))

	b.ClearViewDirty(id)
	require.False(t, b.IsViewDirty(id))

	b.MarkViewsDirty()
	require.True(t, b.IsViewDirty(id))

	b.UnregisterView(id)
	require.False(t, b.IsViewDirty(id))
}

func TestGetPlainTextIntoRoundTrips(t *testing.T) {
	b := New(testOracle())
	id, err := b.RegisterMemBuffer([]byte("hello"), false)
	require.NoError(t, err)
	chunk, err := b.CreateChunk(id, 0, 5)
	require.NoError(t, err)
	b.Rope.Append(rope.NewTextSegment(chunk))

	out := make([]byte, 32)
	n, err := b.GetPlainTextInto(out)
	require.NoError(t, err)
	require.Equal(t, "hello", string(out[:n]))
}

func TestSplitterDividesTextLeafAtWeight(t *testing.T) {
	b := New(testOracle())
	id, err := b.RegisterMemBuffer([]byte("hello"), false)
	require.NoError(t, err)
	chunk, err := b.CreateChunk(id, 0, 5)
	require.NoError(t, err)

	left, right, err := b.Splitter().Split(rope.NewTextSegment(chunk), 2)
	require.NoError(t, err)
	require.Equal(t, 2, left.Chunk.DisplayWidth)
	require.Equal(t, 3, right.Chunk.DisplayWidth)
	require.Equal(t, chunk.ByteStart+2, left.Chunk.ByteEnd)
	require.Equal(t, left.Chunk.ByteEnd, right.Chunk.ByteStart)
}
