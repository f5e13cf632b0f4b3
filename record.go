package mad

import (
	"bytes"
	"encoding/binary"
)

const (
	// HeaderSize is the on-disk size of one index header.
	HeaderSize = 24

	// MaxNameLen is the widest member name a header can hold.
	MaxNameLen = 12

	// dataAlign is the required alignment of each member's data offset.
	dataAlign = 4
)

// Record describes one member of a MAD archive.
//
// Records read from an existing archive carry index fields only; content
// is fetched lazily through [Archive.ReadFile]. Records built for
// writing carry their content in Data, and Offset/Length are assigned
// during layout.
type Record struct {
	// Name is the stored member name, 1-12 bytes from the allowed
	// character set (see ValidName).
	Name string

	// Offset is the absolute byte offset of the member's data.
	Offset uint32

	// Length is the byte length of the member's data.
	Length uint32

	// Data holds the member content on the write path. Nil for records
	// decoded from an existing archive.
	Data []byte
}

// Header wire layout, little-endian:
//
//	[0,12)  name, NUL-padded
//	[12,16) reserved, written as zero and ignored on read
//	[16,20) data offset, uint32
//	[20,24) data length, uint32

// decodeHeader parses one 24-byte index header. buf must be at least
// HeaderSize bytes; the name is not validated here.
func decodeHeader(buf []byte) Record {
	return Record{
		Name:   string(bytes.TrimRight(buf[:MaxNameLen], "\x00")),
		Offset: binary.LittleEndian.Uint32(buf[16:20]),
		Length: binary.LittleEndian.Uint32(buf[20:24]),
	}
}

// encodeHeader serializes r into buf, which must be at least HeaderSize
// bytes. The caller guarantees the name fits; reserved bytes are zeroed.
func encodeHeader(buf []byte, r Record) {
	n := copy(buf[:MaxNameLen], r.Name)
	for i := n; i < 16; i++ {
		buf[i] = 0
	}
	binary.LittleEndian.PutUint32(buf[16:20], r.Offset)
	binary.LittleEndian.PutUint32(buf[20:24], r.Length)
}
