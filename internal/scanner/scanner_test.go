package scanner

import "testing"

func asciiOracle() Oracle {
	return OracleFor(WidthMethodUnicode, NewUnicodeConfig())
}

func TestFindLineBreaks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []LineBreak
	}{
		{"lf", "a\nb", []LineBreak{{Pos: 1, Kind: LF}}},
		{"cr", "a\rb", []LineBreak{{Pos: 1, Kind: CR}}},
		{"crlf", "a\r\nb", []LineBreak{{Pos: 2, Kind: CRLF}}},
		{"mixed", "a\r\nb\rc\nd", []LineBreak{
			{Pos: 2, Kind: CRLF},
			{Pos: 4, Kind: CR},
			{Pos: 6, Kind: LF},
		}},
		{"none", "abc", nil},
		{"trailing-cr-no-lf", "a\r", []LineBreak{{Pos: 1, Kind: CR}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FindLineBreaks([]byte(tc.input))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("break %d: got %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestFindWrapBreaks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"space", "ab cd", []int{3}},
		{"hyphen", "well-known", []int{5}},
		{"punct", "a, b. c", []int{2, 5}},
		{"no-breaks", "abcdef", nil},
		{"nbsp", "a b", []int{3}},
		{"ideographic-space", "a　b", []int{4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FindWrapBreaks([]byte(tc.input))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("break %d: got %d, want %d", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestDecodeGraphemeAt(t *testing.T) {
	oracle := asciiOracle()

	bl, w := DecodeGraphemeAt([]byte("hello"), 0, oracle)
	if bl != 1 || w != 1 {
		t.Errorf("ascii: got (%d,%d), want (1,1)", bl, w)
	}

	emoji := "👋🏻x"
	bl, w = DecodeGraphemeAt([]byte(emoji), 0, oracle)
	if w != 2 {
		t.Errorf("emoji+modifier width: got %d, want 2", w)
	}
	if bl != len(emoji)-1 {
		t.Errorf("emoji+modifier byte len: got %d, want %d", bl, len(emoji)-1)
	}
}

func TestFindPosByWidth(t *testing.T) {
	oracle := asciiOracle()
	b := []byte("hello world")

	off, cols := FindPosByWidth(b, 5, 4, true, false, oracle)
	if off != 5 || cols != 5 {
		t.Errorf("exact boundary: got (%d,%d), want (5,5)", off, cols)
	}

	// CJK straddle: "中" (width 2) starting at byte 0; targetCol 1 lands mid-grapheme.
	cjk := []byte("中x")
	off, cols = FindPosByWidth(cjk, 1, 4, false, false, oracle)
	if off != 0 || cols != 0 {
		t.Errorf("round down into straddle: got (%d,%d), want (0,0)", off, cols)
	}
	off, cols = FindPosByWidth(cjk, 1, 4, false, true, oracle)
	if cols < 1 {
		t.Errorf("round up into straddle: columnsUsed %d should be >= requested 1", cols)
	}
}

func TestFindWrapPosByWidth(t *testing.T) {
	oracle := asciiOracle()
	b := []byte("abcdefghij")

	count, off, cols := FindWrapPosByWidth(b, 4, 4, true, oracle)
	if count != 4 || off != 4 || cols != 4 {
		t.Errorf("got (%d,%d,%d), want (4,4,4)", count, off, cols)
	}

	// A single wide grapheme wider than maxCols fits nothing (caller forces).
	cjk := []byte("中")
	count, off, cols = FindWrapPosByWidth(cjk, 1, 4, false, oracle)
	if count != 0 || off != 0 || cols != 0 {
		t.Errorf("oversized grapheme: got (%d,%d,%d), want (0,0,0)", count, off, cols)
	}
}

func TestGetPrevGraphemeStart(t *testing.T) {
	oracle := asciiOracle()
	b := []byte("abc")

	off, w, ok := GetPrevGraphemeStart(b, 3, oracle)
	if !ok || off != 2 || w != 1 {
		t.Errorf("got (%d,%d,%v), want (2,1,true)", off, w, ok)
	}

	_, _, ok = GetPrevGraphemeStart(b, 0, oracle)
	if ok {
		t.Errorf("before=0 should report ok=false")
	}
}

func TestOracleForWCWidth(t *testing.T) {
	oracle := OracleFor(WidthMethodWCWidth, NewUnicodeConfig())
	if w := oracle([]byte("中")); w != 2 {
		t.Errorf("wcwidth CJK: got %d, want 2", w)
	}
	if w := oracle([]byte("a")); w != 1 {
		t.Errorf("wcwidth ascii: got %d, want 1", w)
	}
}

func TestStringWidth(t *testing.T) {
	oracle := asciiOracle()
	if w := StringWidth("Hello 👋 World", oracle); w != 14 {
		t.Errorf("got %d, want 14", w)
	}
}
