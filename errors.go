package mad

import "errors"

// Sentinel errors for the mad package. Returned errors wrap these;
// match with errors.Is.
var (
	// ErrTruncated is returned when the archive ends before a complete
	// header or a member's declared data.
	ErrTruncated = errors.New("mad: truncated archive")

	// ErrCorrupt is returned when a header is structurally invalid,
	// such as a member name outside the allowed character set or a data
	// offset pointing past the end of the archive.
	ErrCorrupt = errors.New("mad: corrupt archive")

	// ErrNotFound is returned when a requested member is not in the index.
	ErrNotFound = errors.New("mad: file not found in archive")

	// ErrNoFiles is returned when archive creation finds no eligible
	// input files. A zero-member archive is not representable.
	ErrNoFiles = errors.New("mad: no files to archive")

	// ErrInvalidName is returned when a caller passes a member name the
	// format cannot store.
	ErrInvalidName = errors.New("mad: invalid member name")

	// ErrSizeOverflow is returned when member sizes or offsets exceed
	// the format's 32-bit limits.
	ErrSizeOverflow = errors.New("mad: size overflow")
)
