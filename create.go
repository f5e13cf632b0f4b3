package mad

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
)

// createConfig holds configuration for archive creation.
type createConfig struct {
	logger *slog.Logger
}

// CreateOption configures archive creation.
type CreateOption func(*createConfig)

// CreateWithLogger routes creation diagnostics (skipped files, summary)
// to logger. A nil logger discards them.
func CreateWithLogger(logger *slog.Logger) CreateOption {
	return func(cfg *createConfig) {
		cfg.logger = logger
	}
}

// log returns the logger, falling back to a discard logger if nil.
func (cfg *createConfig) log() *slog.Logger {
	if cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.logger
}

// Layout assigns each record's Offset from its Length and returns the
// total archive size.
//
// The header block occupies 24*len(records) bytes from offset 0. Each
// member's data starts at the first 4-byte-aligned offset at or after
// the end of the previous member (or the header block, for the first).
// The total carries no trailing padding. Exceeding the format's 32-bit
// offsets fails with ErrSizeOverflow.
func Layout(records []Record) (uint32, error) {
	pos := uint64(len(records)) * HeaderSize
	for i := range records {
		if rem := pos % dataAlign; rem != 0 {
			pos += dataAlign - rem
		}
		if pos > math.MaxUint32 {
			return 0, fmt.Errorf("layout %s: %w", records[i].Name, ErrSizeOverflow)
		}
		records[i].Offset = uint32(pos)
		pos += uint64(records[i].Length)
	}
	if pos > math.MaxUint32 {
		return 0, ErrSizeOverflow
	}
	return uint32(pos), nil
}

// WriteArchive lays out records and serializes a complete archive to w:
// the full header block, then each member's data at its aligned offset
// with zero padding in the gaps.
//
// Each record's Length is taken from its Data; Offset is assigned in
// place by Layout. Records must carry names accepted by ValidName —
// creation filters its inputs, so an invalid name here is a caller
// error and fails with ErrInvalidName before any bytes are written.
func WriteArchive(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return ErrNoFiles
	}
	for i := range records {
		if !ValidName(records[i].Name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, records[i].Name)
		}
		if uint64(len(records[i].Data)) > math.MaxUint32 {
			return fmt.Errorf("%s: %w", records[i].Name, ErrSizeOverflow)
		}
		records[i].Length = uint32(len(records[i].Data))
	}
	if _, err := Layout(records); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, HeaderSize)
	for _, rec := range records {
		encodeHeader(buf, rec)
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write header for %s: %w", rec.Name, err)
		}
	}

	pos := uint32(len(records)) * HeaderSize
	var pad [dataAlign - 1]byte
	for _, rec := range records {
		if rec.Offset > pos {
			if _, err := bw.Write(pad[:rec.Offset-pos]); err != nil {
				return fmt.Errorf("write padding before %s: %w", rec.Name, err)
			}
			pos = rec.Offset
		}
		if _, err := bw.Write(rec.Data); err != nil {
			return fmt.Errorf("write data for %s: %w", rec.Name, err)
		}
		pos += rec.Length
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush archive: %w", err)
	}
	return nil
}

// Create scans dir for regular files and writes them to w as a complete
// archive, in directory enumeration order.
//
// The scan is not recursive: member names cannot carry path separators,
// so nested files could never round-trip. Files whose names the format
// cannot store are skipped and reported through the configured logger,
// never silently written as unextractable records. Finding no eligible
// files fails with ErrNoFiles.
//
// The context is checked between files and can cancel a long scan.
func Create(ctx context.Context, dir string, w io.Writer, opts ...CreateOption) error {
	cfg := createConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.log()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scan input directory: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !ValidName(name) {
			log.Warn("skipping file with unsupported name", "name", name)
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name)) //nolint:gosec // Scanned names passed ValidName
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		records = append(records, Record{Name: name, Data: data})
	}
	if len(records) == 0 {
		return ErrNoFiles
	}

	log.Info("creating archive", "dir", dir, "file_count", len(records))
	return WriteArchive(w, records)
}

// CreateFile archives the regular files in dir into a new archive at
// path.
//
// The archive is written to a temporary file in path's directory and
// renamed into place on success, so a failed run never leaves a partial
// archive at path and never clobbers an existing one.
func CreateFile(ctx context.Context, path, dir string, opts ...CreateOption) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mad-*")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	tmpPath := tmp.Name()

	if err := Create(ctx, dir, tmp, opts...); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp archive: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename archive into place: %w", err)
	}
	return nil
}
