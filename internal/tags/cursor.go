package tags

import (
	"fmt"

	"fortio.org/safecast"

	"taglist/internal/source"
)

// Cursor is a byte position inside the input being parsed.
type Cursor struct {
	src string
	Off uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src string) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("tag input length overflow: %w", err))
	}
	return Cursor{src: src, Limit: limit}
}

// EOF проверяет, достигнут ли конец ввода
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// Bump moves one byte forward and returns the byte it passed.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// SkipSpace advances past ASCII whitespace.
func (c *Cursor) SkipSpace() {
	for !c.EOF() && isSpace(c.src[c.Off]) {
		c.Off++
	}
}

// IndexFrom returns the absolute offset of the first b at or after c.Off,
// or Limit when there is none.
func (c *Cursor) IndexFrom(b byte) uint32 {
	for i := c.Off; i < c.Limit; i++ {
		if c.src[i] == b {
			return i
		}
	}
	return c.Limit
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// SpanFrom returns the span from m to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.Off}
}

// Slice returns src[from:to] clamped to the input.
func (c *Cursor) Slice(from, to uint32) string {
	if to > c.Limit {
		to = c.Limit
	}
	if from > to {
		return ""
	}
	return c.src[from:to]
}
