package migrate

import (
	"fmt"
	"io"
	"os"

	"github.com/robinvdvleuten/rollover/gnucash"
)

// CopyFile duplicates the previous year's file byte for byte. It runs
// before any session opens, so a failed copy aborts the migration without
// leaving a partially opened state behind.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()

	// Creating dst truncates it, so refuse before touching anything when
	// both paths resolve to the same file.
	srcInfo, err := in.Stat()
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return fmt.Errorf("copy %s to %s: source and destination are the same file", src, dst)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return nil
}

// PurgeTransactions destroys every transaction reachable from any account
// in the book, leaving the account tree intact. It returns the number of
// transactions destroyed.
func PurgeTransactions(book *gnucash.Book) int {
	purged := 0
	for _, account := range book.Accounts {
		// Destroy mutates the account's split list, so walk a snapshot.
		splits := append([]*gnucash.Split(nil), account.Splits()...)
		for _, split := range splits {
			tx := split.Transaction()
			if tx == nil || tx.Destroyed() {
				continue
			}
			tx.Destroy()
			purged++
		}
	}
	return purged
}
