package mad

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Interface compliance.
var (
	_ fs.FS         = (*Archive)(nil)
	_ fs.ReadFileFS = (*Archive)(nil)
)

// Archive provides read access to the members of a MAD archive.
//
// The index is parsed once at Open; member data is fetched on demand
// through ReadFile or Extract. Archive implements fs.FS and
// fs.ReadFileFS for standard library compatibility. Close must be
// called to release the underlying file handle.
type Archive struct {
	file  *os.File
	size  int64
	index []Record
}

// Open opens the archive at path and parses its index.
//
// The returned Archive holds an open file handle and must be closed.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	index, err := ReadIndex(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Archive{file: f, size: info.Size(), index: index}, nil
}

// Close closes the underlying archive file. Safe to call twice.
func (a *Archive) Close() error {
	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}

// Index returns the archive's records in physical header order. The
// returned slice is the Archive's own; callers must not modify it.
func (a *Archive) Index() []Record {
	return a.index
}

// Lookup returns the first record named name, in header order.
// Duplicate names are legal in the format; the first match wins.
func (a *Archive) Lookup(name string) (Record, bool) {
	for _, rec := range a.index {
		if rec.Name == name {
			return rec, true
		}
	}
	return Record{}, false
}

// ReadFile returns the content of the first member named name.
//
// The read is all or nothing: a member whose data region ends early
// fails with ErrTruncated rather than returning short data. A missing
// member fails with ErrNotFound.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	rec, ok := a.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return a.readRecord(rec)
}

// readRecord fetches exactly rec.Length bytes at rec.Offset.
func (a *Archive) readRecord(rec Record) ([]byte, error) {
	if int64(rec.Offset) > a.size {
		return nil, fmt.Errorf("%w: cannot seek to data for %s at offset %d", ErrCorrupt, rec.Name, rec.Offset)
	}

	buf := make([]byte, rec.Length)
	if _, err := a.file.ReadAt(buf, int64(rec.Offset)); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: unexpected end of data for %s", ErrTruncated, rec.Name)
		}
		return nil, fmt.Errorf("read data for %s: %w", rec.Name, err)
	}
	return buf, nil
}

// Extract writes every member of the archive into dir using its stored
// name, creating dir as needed. Member names cannot carry path
// separators (see ValidName), so output never leaves dir.
//
// The first failed member aborts the extraction; files already written
// are left in place.
func (a *Archive) Extract(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, rec := range a.index {
		data, err := a.readRecord(rec)
		if err != nil {
			return err
		}
		dest := filepath.Join(dir, rec.Name)
		if err := os.WriteFile(dest, data, 0o644); err != nil { //nolint:gosec // Extracted files are world-readable by design
			return fmt.Errorf("write %s: %w", rec.Name, err)
		}
	}
	return nil
}

// Open implements fs.FS. The returned file is backed by the member's
// fully fetched content.
func (a *Archive) Open(name string) (fs.File, error) {
	rec, ok := a.Lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	data, err := a.readRecord(rec)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &memberFile{info: memberInfo{rec: rec}, Reader: bytes.NewReader(data)}, nil
}

// memberFile adapts a fetched member to fs.File.
type memberFile struct {
	info memberInfo
	*bytes.Reader
}

func (f *memberFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memberFile) Close() error               { return nil }

// memberInfo adapts a Record to fs.FileInfo. The format stores no
// modes or timestamps, so those report zero values.
type memberInfo struct {
	rec Record
}

func (i memberInfo) Name() string       { return i.rec.Name }
func (i memberInfo) Size() int64        { return int64(i.rec.Length) }
func (i memberInfo) Mode() fs.FileMode  { return 0o444 }
func (i memberInfo) ModTime() time.Time { return time.Time{} }
func (i memberInfo) IsDir() bool        { return false }
func (i memberInfo) Sys() any           { return nil }
