package mad

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// ReadIndex parses the header block from r, which must be positioned at
// the start of an archive. It returns the records in physical header
// order, index fields only; no member data is read.
//
// The format has no record count. Headers are read at a fixed 24-byte
// stride while the read position stays below the smallest data offset
// seen so far; reading further would run into a known data region, so
// that boundary is the termination signal. The smallest offset only
// decreases as headers arrive, which keeps the walk finite, and the end
// of input bounds it besides: an archive whose offsets all point past
// the end of the file fails with ErrTruncated instead of looping.
//
// An empty or sub-header-size input fails with ErrTruncated; a header
// whose name falls outside the allowed character set fails with
// ErrCorrupt. A zero-member archive is not representable.
func ReadIndex(r io.Reader) ([]Record, error) {
	var (
		records   []Record
		pos       uint64
		minOffset uint64 = math.MaxUint64 // no offset seen yet
	)
	buf := make([]byte, HeaderSize)
	for pos < minOffset {
		if _, err := io.ReadFull(r, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: header at offset %d runs past end of input", ErrTruncated, pos)
			}
			return nil, fmt.Errorf("read header at offset %d: %w", pos, err)
		}
		rec := decodeHeader(buf)
		if !ValidName(rec.Name) {
			return nil, fmt.Errorf("%w: invalid member name %q in header at offset %d", ErrCorrupt, rec.Name, pos)
		}
		records = append(records, rec)
		if uint64(rec.Offset) < minOffset {
			minOffset = uint64(rec.Offset)
		}
		pos += HeaderSize
	}
	return records, nil
}
