package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// tag list grammar
	TagUnterminatedQuote        Code = 1001
	TagUnexpectedTrailingText   Code = 1002
	TagUnexpectedQuoteCharacter Code = 1003
	TagTooManyTags              Code = 1004
	TagInputTooLarge            Code = 1005

	// input / output
	IOReadFailed Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		TagUnterminatedQuote:        "No ending quote character found",
		TagUnexpectedTrailingText:   "Unexpected text after quoted tag",
		TagUnexpectedQuoteCharacter: "Unexpected quote character",
		TagTooManyTags:              "Too many tags",
		TagInputTooLarge:            "Input too large",
		IOReadFailed:                "Input could not be read",
	}

	// message templates, filled from the diagnostic payload by Diagnostic.Args
	codeTemplate = map[Code]string{
		TagUnterminatedQuote:        "No ending quote character found.",
		TagUnexpectedTrailingText:   `Unexpected text after "%s". Expected comma or end of text. Found %s.`,
		TagUnexpectedQuoteCharacter: `Unexpected quote character found after "%s".`,
		TagTooManyTags:              "Too many tags, only the first %d were kept.",
		TagInputTooLarge:            "Input is larger than %d bytes and was not parsed.",
	}

	// stable kind names, used by JSON output and message catalogs
	codeName = map[Code]string{
		UnknownCode:                 "Unknown",
		TagUnterminatedQuote:        "UnterminatedQuote",
		TagUnexpectedTrailingText:   "UnexpectedTrailingText",
		TagUnexpectedQuoteCharacter: "UnexpectedQuoteCharacter",
		TagTooManyTags:              "TooManyTags",
		TagInputTooLarge:            "InputTooLarge",
		IOReadFailed:                "ReadFailed",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("TAG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// Name returns the kind name of the code, e.g. "UnterminatedQuote".
func (c Code) Name() string {
	name, ok := codeName[c]
	if !ok {
		return codeName[UnknownCode]
	}
	return name
}

// Template returns the printf-style message template of the code, or "" when
// the code carries a free-form message.
func (c Code) Template() string {
	return codeTemplate[c]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
