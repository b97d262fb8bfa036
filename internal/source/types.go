package source

type (
	// FileID uniquely identifies an input within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about an input.
	FileFlags uint8
)

const (
	// FileVirtual marks input that did not come from disk (argv, stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileTransformed marks content rewritten by a LoadTransformed hook.
	FileTransformed
	// FileUnreadable marks an empty stand-in for a path that could not be read.
	FileUnreadable
)

// File holds one tag-list input: a single line typed by a user or a batch file
// with one tag list per line.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// Line is one line of a File together with its byte offset.
type Line struct {
	Num  uint32 // 1-based
	Off  uint32
	Text string
}
