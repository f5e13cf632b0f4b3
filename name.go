package mad

import "strings"

// namePunct is the punctuation the format permits in member names, the
// set the original DOS tooling accepted. Everything else, notably path
// separators and control bytes, is rejected so a stored name can never
// escape the output directory on extraction.
const namePunct = "!#$%&'()-@^_`{}~. "

// ValidName reports whether name can be stored in an archive header and
// safely used as an output filename on extraction.
//
// Valid names are 1-12 bytes of ASCII letters, digits, space, and the
// punctuation in namePunct. The same predicate gates both index parsing
// and archive creation, so anything create accepts, list and extract
// will later tolerate.
func ValidName(name string) bool {
	if len(name) == 0 || len(name) > MaxNameLen {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case strings.IndexByte(namePunct, c) >= 0:
		default:
			return false
		}
	}
	return true
}
