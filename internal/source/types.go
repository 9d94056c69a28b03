package source

// FileFlags encodes metadata about how a file's content was obtained.
type FileFlags uint8

const (
	// FileVirtual indicates the content came from memory (editor buffer, test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures the content of a single manifest together with its line index.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in a file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
