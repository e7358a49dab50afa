package edit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vrope/vrope/internal/buffer"
	"github.com/vrope/vrope/internal/iter"
	"github.com/vrope/vrope/internal/scanner"
)

func newEditBuffer(t *testing.T) *EditBuffer {
	t.Helper()
	oracle := scanner.OracleFor(scanner.WidthMethodUnicode, scanner.NewUnicodeConfig())
	buf := buffer.New(oracle)
	eb, err := New(buf)
	require.NoError(t, err)
	return eb
}

func plainText(t *testing.T, eb *EditBuffer) string {
	t.Helper()
	out := make([]byte, 4096)
	n, err := eb.Buf.GetPlainTextInto(out)
	require.NoError(t, err)
	return string(out[:n])
}

func TestInsertTextBasicLineCount(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("hello\nworld")))

	require.Equal(t, 2, eb.Buf.GetLineCount())
	w0, ok := iter.LineWidthAt(eb.Buf.Rope, 0)
	require.True(t, ok)
	require.Equal(t, 5, w0)
	w1, ok := iter.LineWidthAt(eb.Buf.Rope, 1)
	require.True(t, ok)
	require.Equal(t, 5, w1)

	cur := eb.PrimaryCursor()
	require.Equal(t, Cursor{Row: 1, Col: 5, DesiredCol: 5}, cur)
	require.Equal(t, "hello\nworld", plainText(t, eb))
}

func TestInsertTextCRLFNormalization(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("a\r\nb\rc\nd")))

	require.Equal(t, 4, eb.Buf.GetLineCount())
	require.Equal(t, "a\nb\nc\nd", plainText(t, eb))
	require.Equal(t, Cursor{Row: 3, Col: 1, DesiredCol: 1}, eb.PrimaryCursor())
}

func TestBackspaceAcrossLine(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("hello\nworld")))
	require.NoError(t, eb.SetCursor(1, 0))
	require.NoError(t, eb.Backspace())

	require.Equal(t, 1, eb.Buf.GetLineCount())
	require.Equal(t, Cursor{Row: 0, Col: 5, DesiredCol: 5}, eb.PrimaryCursor())
	require.Equal(t, "helloworld", plainText(t, eb))
}

func TestBackspaceAtOriginIsNoop(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("x")))
	require.NoError(t, eb.SetCursor(0, 0))
	require.NoError(t, eb.Backspace())
	require.Equal(t, "x", plainText(t, eb))
}

func TestDeleteForwardJoinsNextLine(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("ab\ncd")))
	require.NoError(t, eb.SetCursor(0, 2))
	require.NoError(t, eb.DeleteForward())

	require.Equal(t, 1, eb.Buf.GetLineCount())
	require.Equal(t, "abcd", plainText(t, eb))
	require.Equal(t, Cursor{Row: 0, Col: 2, DesiredCol: 2}, eb.PrimaryCursor())
}

func TestDeleteRangeIsNoOpWhenEqual(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("hello")))
	before := plainText(t, eb)
	require.NoError(t, eb.DeleteRange(Cursor{Row: 0, Col: 2}, Cursor{Row: 0, Col: 2}))
	require.Equal(t, before, plainText(t, eb))
}

func TestDeleteRangeNormalizesOrder(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("hello world")))
	require.NoError(t, eb.DeleteRange(Cursor{Row: 0, Col: 11}, Cursor{Row: 0, Col: 5}))
	require.Equal(t, "hello", plainText(t, eb))
	require.Equal(t, Cursor{Row: 0, Col: 5, DesiredCol: 5}, eb.PrimaryCursor())
}

func TestCursorVerticalStickiness(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("short\nlonger line\nx")))
	require.NoError(t, eb.SetCursor(1, 8))

	eb.MoveDown()
	require.Equal(t, Cursor{Row: 2, Col: 1, DesiredCol: 8}, eb.PrimaryCursor())

	eb.MoveUp()
	require.Equal(t, Cursor{Row: 1, Col: 8, DesiredCol: 8}, eb.PrimaryCursor())

	eb.MoveUp()
	require.Equal(t, Cursor{Row: 0, Col: 5, DesiredCol: 8}, eb.PrimaryCursor())
}

func TestMoveLeftRightWrapsLines(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("ab\ncd")))
	require.NoError(t, eb.SetCursor(1, 0))

	eb.MoveLeft()
	require.Equal(t, Cursor{Row: 0, Col: 2, DesiredCol: 2}, eb.PrimaryCursor())

	eb.MoveRight()
	require.Equal(t, Cursor{Row: 1, Col: 0, DesiredCol: 0}, eb.PrimaryCursor())
}

func TestMultiCursorInsert(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("aa\nbb")))
	require.NoError(t, eb.SetCursor(0, 2))
	require.NoError(t, eb.AddCursor(1, 2))

	require.NoError(t, eb.InsertText([]byte("X")))
	require.Equal(t, "aaX\nbbX", plainText(t, eb))
}

func TestMultiCursorBackspace(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("aa\nbb")))
	require.NoError(t, eb.SetCursor(0, 2))
	require.NoError(t, eb.AddCursor(1, 2))

	require.NoError(t, eb.Backspace())
	require.Equal(t, "a\nb", plainText(t, eb))
}

func TestWordMotion(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("hello  world")))
	require.NoError(t, eb.SetCursor(0, 0))

	eb.MoveWordRight()
	require.Equal(t, 7, eb.PrimaryCursor().Col)

	eb.MoveWordRight()
	require.Equal(t, 12, eb.PrimaryCursor().Col)

	eb.MoveWordLeft()
	require.Equal(t, 7, eb.PrimaryCursor().Col)
}

func TestKillAndYank(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("hello world")))
	require.NoError(t, eb.SetCursor(0, 5))

	require.NoError(t, eb.KillToLineEnd())
	require.Equal(t, "hello", plainText(t, eb))

	require.NoError(t, eb.SetCursor(0, 0))
	require.NoError(t, eb.Yank())
	require.Equal(t, " worldhello", plainText(t, eb))
}

func TestGetSelectedTextAndDeleteSelection(t *testing.T) {
	eb := newEditBuffer(t)
	require.NoError(t, eb.InsertText([]byte("hello world")))

	text, err := eb.GetSelectedText(Cursor{Row: 0, Col: 6}, Cursor{Row: 0, Col: 11})
	require.NoError(t, err)
	require.Equal(t, "world", text)

	require.NoError(t, eb.DeleteSelection(Cursor{Row: 0, Col: 5}, Cursor{Row: 0, Col: 11}))
	require.Equal(t, "hello", plainText(t, eb))
}

func TestAddBufferGrowthAcrossMultipleInserts(t *testing.T) {
	eb := newEditBuffer(t)
	chunk := make([]byte, 1024)
	for i := range chunk {
		chunk[i] = 'a'
	}
	for i := 0; i < 80; i++ { // forces growAddBuffer past the 64KiB default
		require.NoError(t, eb.SetCursor(eb.PrimaryCursor().Row, eb.PrimaryCursor().Col))
		require.NoError(t, eb.InsertText(chunk))
	}
	require.Equal(t, 1, eb.Buf.GetLineCount())
	require.Equal(t, 80*1024, eb.Buf.GetTotalWidth())
}
