package source

import (
	"fmt"
)

// Span is a half-open byte range inside one File.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// ShiftRight moves the span n bytes forward. Used to lift line-relative spans into
// file coordinates.
func (s Span) ShiftRight(n uint32) Span {
	return Span{
		File:  s.File,
		Start: s.Start + n,
		End:   s.End + n,
	}
}

// InFile returns a copy of s attributed to id.
func (s Span) InFile(id FileID) Span {
	s.File = id
	return s
}
