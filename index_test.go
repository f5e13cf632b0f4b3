package mad

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// putHeader appends one hand-built 24-byte header to buf.
func putHeader(buf *bytes.Buffer, name string, offset, length uint32) {
	var h [HeaderSize]byte
	copy(h[:MaxNameLen], name)
	binary.LittleEndian.PutUint32(h[16:20], offset)
	binary.LittleEndian.PutUint32(h[20:24], length)
	buf.Write(h[:])
}

func TestReadIndex_ReadsExactlyNHeaders(t *testing.T) {
	// Three headers; the smallest offset equals the header block size,
	// so the walk must stop after exactly three records.
	var buf bytes.Buffer
	putHeader(&buf, "ONE", 72, 4)
	putHeader(&buf, "TWO", 76, 8)
	putHeader(&buf, "THREE", 84, 2)
	buf.WriteString("aaaabbbbbbbbcc")

	records, err := ReadIndex(&buf)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Record{Name: "ONE", Offset: 72, Length: 4}, records[0])
	assert.Equal(t, Record{Name: "TWO", Offset: 76, Length: 8}, records[1])
	assert.Equal(t, Record{Name: "THREE", Offset: 84, Length: 2}, records[2])
}

func TestReadIndex_StopsAtSmallestOffsetSeen(t *testing.T) {
	// The second header's offset is smaller than the first's and caps
	// the walk at two records; bytes after it belong to data.
	var buf bytes.Buffer
	putHeader(&buf, "LATE", 96, 4)
	putHeader(&buf, "EARLY", 48, 40)
	buf.WriteString("this is data, not a header, and is never parsed as one!")

	records, err := ReadIndex(&buf)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "LATE", records[0].Name)
	assert.Equal(t, "EARLY", records[1].Name)
}

func TestReadIndex_SingleRecord(t *testing.T) {
	var buf bytes.Buffer
	putHeader(&buf, "ONLY.DAT", 24, 5)
	buf.WriteString("hello")

	records, err := ReadIndex(&buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Record{Name: "ONLY.DAT", Offset: 24, Length: 5}, records[0])
}

func TestReadIndex_ReservedBytesIgnored(t *testing.T) {
	var buf bytes.Buffer
	putHeader(&buf, "X", 24, 0)
	b := buf.Bytes()
	copy(b[12:16], []byte{0xde, 0xad, 0xbe, 0xef})

	records, err := ReadIndex(bytes.NewReader(b))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "X", records[0].Name)
}

func TestReadIndex_EmptyInput(t *testing.T) {
	_, err := ReadIndex(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReadIndex_PartialHeader(t *testing.T) {
	_, err := ReadIndex(bytes.NewReader(make([]byte, HeaderSize-1)))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReadIndex_OffsetsPastEOF(t *testing.T) {
	// Every offset points far past the end of input. The walk must be
	// bounded by EOF and fail, not read headers forever.
	var buf bytes.Buffer
	putHeader(&buf, "GHOST", 1<<30, 4)
	putHeader(&buf, "PHANTOM", 1<<30, 4)

	_, err := ReadIndex(&buf)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReadIndex_RejectsBadNames(t *testing.T) {
	tests := []struct {
		name   string
		member string
	}{
		{"path separator", "a/b"},
		{"backslash", `a\b`},
		{"control byte", "a\x01b"},
		{"high byte", "\xff"},
		{"embedded nul", "a\x00b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			putHeader(&buf, tt.member, 24, 0)

			_, err := ReadIndex(&buf)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestReadIndex_BadNameIsReported(t *testing.T) {
	var buf bytes.Buffer
	putHeader(&buf, "a/b", 24, 0)

	_, err := ReadIndex(&buf)
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "a/b")
}

func TestReadIndex_AllNulNameRejected(t *testing.T) {
	// Twelve NULs trim to an empty name, which is not a valid member.
	var buf bytes.Buffer
	putHeader(&buf, "", 24, 0)

	_, err := ReadIndex(&buf)
	assert.ErrorIs(t, err, ErrCorrupt)
}
