package gnucash

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// OpenMode controls how a session opens its file.
type OpenMode int

const (
	// OpenNormal opens read-write and holds the file lock for the
	// session's lifetime.
	OpenNormal OpenMode = iota

	// OpenReadOnly opens without taking the lock; Save is refused.
	OpenReadOnly
)

// lockSuffix matches the lock files GnuCash itself leaves next to open books.
const lockSuffix = ".LCK"

// Session is a file-backed handle on a book. At most one read-write
// session can hold a given file; the lock is released by End, which is
// idempotent and safe in a defer.
type Session struct {
	path     string
	mode     OpenMode
	book     *Book
	gzipped  bool
	lockPath string
	ended    bool
}

// OpenSession opens the GnuCash file at path and decodes its book. In
// OpenNormal mode the lock file is acquired first and released again if
// the decode fails, so a failed open leaves nothing behind.
func OpenSession(path string, mode OpenMode) (*Session, error) {
	s := &Session{path: path, mode: mode}

	if mode == OpenNormal {
		lockPath := path + lockSuffix
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			if os.IsExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
			}
			return nil, fmt.Errorf("gnucash: acquire lock %s: %w", lockPath, err)
		}
		fmt.Fprintf(f, "%d\n", os.Getpid())
		_ = f.Close()
		s.lockPath = lockPath
	}

	f, err := os.Open(path)
	if err != nil {
		_ = s.End()
		return nil, fmt.Errorf("gnucash: open %s: %w", path, err)
	}
	defer f.Close()

	book, gzipped, err := Read(f)
	if err != nil {
		_ = s.End()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.book = book
	s.gzipped = gzipped
	return s, nil
}

// Book returns the session's decoded book.
func (s *Session) Book() *Book { return s.book }

// Path returns the file the session is bound to.
func (s *Session) Path() string { return s.path }

// ReadOnly reports whether the session was opened read-only.
func (s *Session) ReadOnly() bool { return s.mode == OpenReadOnly }

// Save persists the book back to the session's file. The write goes to a
// temporary file in the same directory followed by a rename, so a failed
// save never truncates the original. Compression matches the source file.
func (s *Session) Save() error {
	if s.mode == OpenReadOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, s.path)
	}
	if s.ended {
		return fmt.Errorf("gnucash: session for %s already ended", s.path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("gnucash: save %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	var w io.Writer = tmp
	var gz *gzip.Writer
	if s.gzipped {
		gz = gzip.NewWriter(tmp)
		w = gz
	}

	if err := Write(w, s.book); err != nil {
		_ = tmp.Close()
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("gnucash: save %s: %w", s.path, err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("gnucash: save %s: %w", s.path, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("gnucash: save %s: %w", s.path, err)
	}
	return nil
}

// End releases the session's lock. Calling End more than once is a no-op.
func (s *Session) End() error {
	if s.ended {
		return nil
	}
	s.ended = true

	if s.lockPath != "" {
		if err := os.Remove(s.lockPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("gnucash: release lock %s: %w", s.lockPath, err)
		}
	}
	return nil
}
