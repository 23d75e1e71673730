// Package stream implements the HTML standard's input stream: a decoded,
// positioned character sequence that sits between the raw bytes (see the
// sibling encoding package) and the Tokenizer.
package stream

import (
	"sort"

	"github.com/arnovandermerwe/html5kit/encoding"
)

// Confidence tracks whether the stream's encoding may still change.
// Re-decoding is only permitted while Tentative; Certain locks it.
type Confidence int

const (
	// Tentative means the encoding was guessed (default, BOM sniff, or a
	// declared-but-unconfirmed <meta charset>) and may still be revised.
	Tentative Confidence = iota
	// Certain means the encoding is authoritative (explicit caller-supplied
	// encoding, or a confirmed <meta charset>) and Relock is a no-op.
	Certain
)

// Position identifies a cursor location: an absolute rune offset plus the
// 1-based line/column pair it resolves to.
type Position struct {
	Offset int
	Line   int
	Column int
}

// InputStream presents decoded input as a random-access character sequence
// with positional metadata, per spec ยง4.1. Only the Tokenizer drives it
// during a parse; the Tree Constructor never advances the cursor directly.
type InputStream struct {
	buf []rune
	pos int

	reconsume bool
	ignoreLF  bool

	confidence Confidence

	// lineOffsets[i] is the buffer offset where line i+1 (1-based) begins.
	// It grows monotonically as Read crosses line breaks; Position resolves
	// an offset into line/column by binary search over this list.
	lineOffsets []int
}

// New returns an InputStream already loaded with input.
func New(input string) *InputStream {
	s := &InputStream{}
	s.Load(input)
	return s
}

// Load decodes input (already a character sequence) into the stream,
// discarding any prior cursor and line-offset state. Newline normalization
// (CR and CRLF collapsed to LF) happens lazily in Read, not here, so look-ahead
// operations before the first Read still see raw '\r' bytes; this matches the
// Tokenizer's historic behavior of peeking into an unnormalized buffer.
func (s *InputStream) Load(input string) {
	s.buf = []rune(input)
	s.pos = 0
	s.reconsume = false
	s.ignoreLF = false
	s.lineOffsets = []int{0}
}

// LoadBytes decodes raw bytes via the encoding package's detection/decoding
// rules and loads the result, implementing spec ยง4.1's load(bytes, encoding?).
// The resolved encoding name is returned alongside any decode error.
func (s *InputStream) LoadBytes(data []byte, declaredEncoding string) (string, error) {
	decoded, enc, err := encoding.Decode(data, declaredEncoding)
	if err != nil {
		return "", err
	}
	s.Load(decoded)
	return enc.Name, nil
}

// Read returns the character at the cursor and advances past it, normalizing
// CR and CRLF to LF. It returns (0, false) once past the end; subsequent
// reads keep returning false until an Unread occurs.
func (s *InputStream) Read() (rune, bool) {
	if s.reconsume {
		s.reconsume = false
		if s.pos == 0 {
			return 0, false
		}
		s.pos--
	}

	for {
		if s.pos >= len(s.buf) {
			return 0, false
		}

		c := s.buf[s.pos]
		s.pos++

		if c == '\r' {
			s.ignoreLF = true
			s.recordLineBreak()
			return '\n', true
		}
		if c == '\n' {
			if s.ignoreLF {
				s.ignoreLF = false
				continue
			}
			s.recordLineBreak()
			return '\n', true
		}

		s.ignoreLF = false
		return c, true
	}
}

// Unread moves the cursor back one character. If the prior Read returned EOF,
// Unread clears the EOF latch so the next Read re-delivers the last real
// character rather than EOF again. Only one level of pushback is supported,
// matching the single "reconsume" step every HTML5 tokenizer state uses.
func (s *InputStream) Unread() {
	s.reconsume = true
}

// LookAhead returns the character at cursor+offset without advancing;
// it returns (0, false) for any offset landing outside the buffer.
func (s *InputStream) LookAhead(offset int) (rune, bool) {
	i := s.pos + offset
	if s.reconsume {
		i--
	}
	if i < 0 || i >= len(s.buf) {
		return 0, false
	}
	return s.buf[i], true
}

// LookAheadSlice returns up to n characters starting at the cursor without
// advancing, for matching multi-character sequences such as named character
// references. The result is shorter than n once it runs into EOF.
func (s *InputStream) LookAheadSlice(n int) []rune {
	start := s.pos
	if s.reconsume {
		start--
	}
	if start < 0 {
		start = 0
	}
	end := start + n
	if end > len(s.buf) {
		end = len(s.buf)
	}
	if start >= end {
		return nil
	}
	return s.buf[start:end]
}

// Tell returns the current cursor offset into the decoded sequence.
func (s *InputStream) Tell() int {
	if s.reconsume {
		return s.pos - 1
	}
	return s.pos
}

// Seek moves the cursor to an absolute offset, clearing any pending pushback
// and the CR/LF collapsing latch. offset is clamped to [0, len(input)].
func (s *InputStream) Seek(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.buf) {
		offset = len(s.buf)
	}
	s.pos = offset
	s.reconsume = false
	s.ignoreLF = false
}

func (s *InputStream) recordLineBreak() {
	s.lineOffsets = append(s.lineOffsets, s.pos)
}

// Position resolves an absolute rune offset into {offset, line, column} by
// binary search over the memoized line-start offsets.
func (s *InputStream) Position(offset int) Position {
	i := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > offset
	}) - 1
	if i < 0 {
		i = 0
	}
	return Position{
		Offset: offset,
		Line:   i + 1,
		Column: offset - s.lineOffsets[i] + 1,
	}
}

// Here returns Position(s.Tell()), the cursor's current position.
func (s *InputStream) Here() Position {
	return s.Position(s.Tell())
}

// Confidence reports whether the stream's encoding is still open to revision.
func (s *InputStream) Confidence() Confidence {
	return s.confidence
}

// Lock raises the stream's confidence to Certain. Once Certain, callers must
// not attempt to re-decode and reload the stream with a different encoding.
func (s *InputStream) Lock() {
	s.confidence = Certain
}
