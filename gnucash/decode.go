package gnucash

import (
	"bufio"
	"compress/gzip"
	nxml "encoding/xml"
	"fmt"
	"io"
)

// document matches the <gnc-v2> wrapper. Decoding matches on local element
// names, so namespace prefixes in the file are irrelevant here.
type document struct {
	Books []*Book `xml:"book"`
}

// Read decodes a GnuCash book from r, transparently unwrapping gzip (the
// format GnuCash uses when "compress files" is enabled). It returns the
// linked book and whether the stream was gzipped, so writers can preserve
// the on-disk representation.
func Read(r io.Reader) (*Book, bool, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(2)
	if err != nil {
		return nil, false, fmt.Errorf("gnucash: read: %w", err)
	}

	var src io.Reader = br
	gzipped := head[0] == 0x1f && head[1] == 0x8b
	if gzipped {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, false, fmt.Errorf("gnucash: gunzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	var doc document
	if err := nxml.NewDecoder(src).Decode(&doc); err != nil {
		return nil, gzipped, fmt.Errorf("gnucash: decode: %w", err)
	}
	if len(doc.Books) == 0 {
		return nil, gzipped, fmt.Errorf("gnucash: file contains no book")
	}

	// Multi-book files are long deprecated; take the first.
	book := doc.Books[0]
	if err := book.link(); err != nil {
		return nil, gzipped, err
	}

	return book, gzipped, nil
}
