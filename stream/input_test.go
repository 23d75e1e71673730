package stream

import "testing"

func TestInputStreamReadAdvancesCursor(t *testing.T) {
	s := New("ab")

	c, ok := s.Read()
	if !ok || c != 'a' {
		t.Fatalf("Read() = %q, %v, want 'a', true", c, ok)
	}
	c, ok = s.Read()
	if !ok || c != 'b' {
		t.Fatalf("Read() = %q, %v, want 'b', true", c, ok)
	}
	if _, ok := s.Read(); ok {
		t.Fatal("Read() at EOF returned ok=true")
	}
}

func TestInputStreamReadLatchesEOFUntilUnread(t *testing.T) {
	s := New("a")
	s.Read()
	if _, ok := s.Read(); ok {
		t.Fatal("expected EOF latch on second Read()")
	}
	if _, ok := s.Read(); ok {
		t.Fatal("expected EOF latch to persist across repeated Read() calls")
	}

	s.Unread()
	c, ok := s.Read()
	if !ok || c != 'a' {
		t.Fatalf("Read() after Unread() past EOF = %q, %v, want 'a', true", c, ok)
	}
}

func TestInputStreamUnreadRedeliversLastChar(t *testing.T) {
	s := New("xy")
	s.Read()
	c, _ := s.Read()
	if c != 'y' {
		t.Fatalf("second Read() = %q, want 'y'", c)
	}
	s.Unread()
	c, ok := s.Read()
	if !ok || c != 'y' {
		t.Fatalf("Read() after Unread() = %q, %v, want 'y', true", c, ok)
	}
}

func TestInputStreamNormalizesCRAndCRLF(t *testing.T) {
	s := New("a\r\nb\rc\n")
	var got []rune
	for {
		c, ok := s.Read()
		if !ok {
			break
		}
		got = append(got, c)
	}
	want := []rune{'a', '\n', 'b', '\n', 'c', '\n'}
	if string(got) != string(want) {
		t.Fatalf("normalized input = %q, want %q", string(got), string(want))
	}
}

func TestInputStreamLookAheadDoesNotConsume(t *testing.T) {
	s := New("abc")
	c, ok := s.LookAhead(1)
	if !ok || c != 'b' {
		t.Fatalf("LookAhead(1) = %q, %v, want 'b', true", c, ok)
	}
	first, _ := s.Read()
	if first != 'a' {
		t.Fatalf("Read() after LookAhead = %q, want 'a' (LookAhead must not advance the cursor)", first)
	}
}

func TestInputStreamLookAheadOutOfBoundsIsEOF(t *testing.T) {
	s := New("a")
	if _, ok := s.LookAhead(5); ok {
		t.Fatal("LookAhead past end returned ok=true")
	}
	if _, ok := s.LookAhead(-1); ok {
		t.Fatal("LookAhead before start returned ok=true")
	}
}

func TestInputStreamLookAheadSlice(t *testing.T) {
	s := New("script")
	got := s.LookAheadSlice(6)
	if string(got) != "script" {
		t.Fatalf("LookAheadSlice(6) = %q, want %q", string(got), "script")
	}
	// Still unconsumed.
	c, _ := s.Read()
	if c != 's' {
		t.Fatalf("Read() after LookAheadSlice = %q, want 's'", c)
	}
}

func TestInputStreamLookAheadSliceTruncatesNearEOF(t *testing.T) {
	s := New("ab")
	got := s.LookAheadSlice(10)
	if string(got) != "ab" {
		t.Fatalf("LookAheadSlice(10) on 2-char input = %q, want %q", string(got), "ab")
	}
}

func TestInputStreamSeekAndTell(t *testing.T) {
	s := New("hello")
	s.Read()
	s.Read()
	if got := s.Tell(); got != 2 {
		t.Fatalf("Tell() = %d, want 2", got)
	}
	s.Seek(0)
	if got := s.Tell(); got != 0 {
		t.Fatalf("Tell() after Seek(0) = %d, want 0", got)
	}
	c, _ := s.Read()
	if c != 'h' {
		t.Fatalf("Read() after Seek(0) = %q, want 'h'", c)
	}
}

func TestInputStreamSeekClampsToBounds(t *testing.T) {
	s := New("hi")
	s.Seek(-5)
	if got := s.Tell(); got != 0 {
		t.Fatalf("Tell() after Seek(-5) = %d, want 0", got)
	}
	s.Seek(100)
	if got := s.Tell(); got != 2 {
		t.Fatalf("Tell() after Seek(100) = %d, want 2 (clamped to length)", got)
	}
}

func TestInputStreamPositionTracksLineAndColumn(t *testing.T) {
	s := New("ab\ncd\nef")
	var positions []Position
	for {
		_, ok := s.Read()
		if !ok {
			break
		}
		positions = append(positions, s.Here())
	}

	want := []Position{
		{Offset: 1, Line: 1, Column: 2},
		{Offset: 2, Line: 1, Column: 3},
		{Offset: 3, Line: 2, Column: 1},
		{Offset: 4, Line: 2, Column: 2},
		{Offset: 5, Line: 2, Column: 3},
		{Offset: 6, Line: 3, Column: 1},
		{Offset: 7, Line: 3, Column: 2},
		{Offset: 8, Line: 3, Column: 3},
	}
	if len(positions) != len(want) {
		t.Fatalf("got %d positions, want %d", len(positions), len(want))
	}
	for i, p := range positions {
		if p != want[i] {
			t.Errorf("positions[%d] = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestInputStreamConfidenceStartsTentativeAndLocks(t *testing.T) {
	s := New("x")
	if s.Confidence() != Tentative {
		t.Fatalf("Confidence() = %v, want Tentative", s.Confidence())
	}
	s.Lock()
	if s.Confidence() != Certain {
		t.Fatalf("Confidence() after Lock() = %v, want Certain", s.Confidence())
	}
}

func TestInputStreamLoadResetsCursorAndLineOffsets(t *testing.T) {
	s := New("ab\ncd")
	s.Read()
	s.Read()
	s.Read()
	s.Load("xyz")
	if got := s.Tell(); got != 0 {
		t.Fatalf("Tell() after Load = %d, want 0", got)
	}
	if got := s.Here(); got != (Position{Offset: 0, Line: 1, Column: 1}) {
		t.Fatalf("Here() after Load = %+v, want {0 1 1}", got)
	}
}

func TestInputStreamLoadBytesDecodesUTF8(t *testing.T) {
	s := &InputStream{}
	enc, err := s.LoadBytes([]byte("<p>hi</p>"), "utf-8")
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	if enc == "" {
		t.Fatal("LoadBytes() returned an empty resolved encoding name")
	}
	c, ok := s.Read()
	if !ok || c != '<' {
		t.Fatalf("Read() after LoadBytes = %q, %v, want '<', true", c, ok)
	}
}
