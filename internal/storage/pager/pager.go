// Package pager maps a table file to an array of fixed-size pages with a
// write-back page cache, mirroring the pager/get_page/pager_flush/db_close
// design of the classic db_tutorial C program this store is descended from.
package pager

import (
	"os"

	"github.com/pkg/errors"
)

const (
	// PageSize is the fixed width of every page, in bytes.
	PageSize = 4096

	// TableMaxPages bounds how many pages a single table file may grow to.
	TableMaxPages = 100
)

// Backend is the byte-addressable file a Pager reads and writes through.
// The real backend is an *os.File; tests use an in-memory MemBackend so
// pager/engine behavior can be exercised without touching the filesystem.
type Backend interface {
	ReadAt(b []byte, off int64) (int, error)
	WriteAt(b []byte, off int64) (int, error)
	Close() error
}

// page is one cached 4KB slot. A nil *page means the slot has never been
// touched this session.
type page [PageSize]byte

// Pager owns one table's backing file and its page cache. It is not safe
// for concurrent use — per spec, the whole engine is single-threaded.
type Pager struct {
	backend    Backend
	fileLength int64
	pages      [TableMaxPages]*page
}

// FatalError marks a storage condition spec.md §7 classifies as fatal:
// the process should abort with a diagnostic rather than continue. It
// carries a stack trace (via github.com/pkg/errors) so the diagnostic is
// actually actionable; callers propagate it instead of calling os.Exit
// themselves (spec.md §9's redesign note on process-wide exit()).
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return "pager: " + e.Op + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error { return e.Err }

func fatalf(op string, err error) error {
	return &FatalError{Op: op, Err: errors.WithStack(err)}
}

// Open opens filename read-write, creating it if absent, and records its
// current length for use by GetPage's demand-load decision.
func Open(filename string) (*Pager, error) {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "pager: open %s", filename)
	}

	length, err := f.Seek(0, os.SEEK_END)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "pager: seek end of %s", filename)
	}

	return &Pager{backend: f, fileLength: length}, nil
}

// OpenBackend wraps an already-open Backend (used by tests to avoid the
// filesystem) with the given initial length, exactly as Open does for a
// real file.
func OpenBackend(backend Backend, fileLength int64) *Pager {
	return &Pager{backend: backend, fileLength: fileLength}
}

// FileLength returns the length recorded when the pager was opened.
func (p *Pager) FileLength() int64 {
	return p.fileLength
}

// GetPage returns the buffered page for pageNum as a PageSize-length
// slice, demand-loading it from disk on first access if it falls within
// the file's recorded length, or zero-initializing it otherwise. The
// returned slice aliases the pager's internal cache and is writable;
// the pager is write-through only at Flush/Close time.
func (p *Pager) GetPage(pageNum uint32) ([]byte, error) {
	if pageNum >= TableMaxPages {
		return nil, fatalf("get_page", errors.Errorf("page number %d out of bounds (max %d)", pageNum, TableMaxPages))
	}

	if p.pages[pageNum] == nil {
		pg := &page{}

		start := int64(pageNum) * PageSize
		if start < p.fileLength {
			n, err := p.backend.ReadAt(pg[:], start)
			// A short/EOF read at the tail of the file is expected for a
			// partial last page; anything else is fatal.
			if err != nil && n == 0 {
				return nil, fatalf("get_page", errors.Wrapf(err, "read page %d", pageNum))
			}
		}

		p.pages[pageNum] = pg
	}

	return p.pages[pageNum][:], nil
}

// Flush writes size bytes of the buffered page back to disk at its page
// offset. size is PageSize for full pages, or the live-row prefix for the
// last partial page — never the unused page tail.
func (p *Pager) Flush(pageNum uint32, size int) error {
	pg := p.pages[pageNum]
	if pg == nil {
		return fatalf("flush", errors.Errorf("tried to flush null page %d", pageNum))
	}

	off := int64(pageNum) * PageSize
	if _, err := p.backend.WriteAt(pg[:size], off); err != nil {
		return fatalf("flush", errors.Wrapf(err, "write page %d", pageNum))
	}

	return nil
}

// Close flushes every non-empty page — full pages below numFullPages,
// then the partial tail if partialRows > 0 — frees the buffers, and
// closes the backend.
func (p *Pager) Close(numFullPages uint32, partialRows uint32, rowSize uint32) error {
	for i := uint32(0); i < numFullPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.Flush(i, PageSize); err != nil {
			return err
		}
		p.pages[i] = nil
	}

	if partialRows > 0 {
		pageNum := numFullPages
		if p.pages[pageNum] != nil {
			if err := p.Flush(pageNum, int(partialRows*rowSize)); err != nil {
				return err
			}
			p.pages[pageNum] = nil
		}
	}

	for i := range p.pages {
		p.pages[i] = nil
	}

	if err := p.backend.Close(); err != nil {
		return fatalf("close", errors.Wrap(err, "close backend"))
	}

	return nil
}
