// Package gnucash implements an in-memory object model for GnuCash XML
// books, together with a file-backed session API for reading and writing
// them. It models the subset of the format needed for bookkeeping
// migrations: commodities, the price database, the account tree (including
// slots such as the placeholder flag) and transactions with their splits.
//
// Books are plain object graphs. All mutation happens in memory; file I/O
// only occurs at the session boundary:
//
//	session, err := gnucash.OpenSession("2024.gnucash", gnucash.OpenNormal)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.End()
//
//	book := session.Book()
//	// ... mutate the book ...
//
//	if err := session.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// Transactions follow the GnuCash edit bracket: they are created detached,
// populated between BeginEdit and CommitEdit, and only become part of the
// book on commit.
//
// Elements outside the modelled subset (budgets, scheduled transactions,
// business features) are not preserved across a load/save cycle.
package gnucash

import "errors"

var (
	// ErrLocked is returned when opening a file whose lock is held by
	// another session.
	ErrLocked = errors.New("gnucash: file is locked by another session")

	// ErrReadOnly is returned when saving through a read-only session.
	ErrReadOnly = errors.New("gnucash: session is read-only")

	// ErrNoSuchCurrency is returned when a currency lookup fails.
	ErrNoSuchCurrency = errors.New("gnucash: no such currency")

	// ErrNoPrice is returned when the price database holds no usable
	// price for a conversion.
	ErrNoPrice = errors.New("gnucash: no price for conversion")
)
