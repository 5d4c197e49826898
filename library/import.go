package library

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ImportResult summarises a bulk import.
type ImportResult struct {
	Imported []string // IDs of the books added, in file order
	Skipped  []error  // one entry per rejected row
}

var importHeader = []string{"title", "author", "isbn", "year", "category"}

// ImportBooks reads CSV rows of title,author,isbn,year,category from r and
// catalogues each through lb. A header row is optional. Malformed rows are
// skipped and reported; only a read failure aborts the import.
func (lb *Librarian) ImportBooks(lib *Library, r io.Reader) (ImportResult, error) {
	var res ImportResult

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Skipped = append(res.Skipped, fmt.Errorf("row %d: %w", row, err))
				continue
			}
			return res, fmt.Errorf("read import: %w", err)
		}
		if row == 1 && isImportHeader(rec) {
			continue
		}

		in, err := parseBookRecord(rec)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Errorf("row %d: %w", row, err))
			continue
		}
		id, err := lb.AddBook(lib, in)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Errorf("row %d: %w", row, err))
			continue
		}
		res.Imported = append(res.Imported, id)
	}
	return res, nil
}

func isImportHeader(rec []string) bool {
	if len(rec) != len(importHeader) {
		return false
	}
	for i, col := range rec {
		if !strings.EqualFold(strings.TrimSpace(col), importHeader[i]) {
			return false
		}
	}
	return true
}

func parseBookRecord(rec []string) (BookInput, error) {
	if len(rec) != len(importHeader) {
		return BookInput{}, fmt.Errorf("%w: want %d fields, got %d", ErrInvalidInput, len(importHeader), len(rec))
	}
	year, err := strconv.Atoi(strings.TrimSpace(rec[3]))
	if err != nil {
		return BookInput{}, fmt.Errorf("%w: publication year %q", ErrInvalidInput, rec[3])
	}
	return BookInput{
		Title:           strings.TrimSpace(rec[0]),
		Author:          strings.TrimSpace(rec[1]),
		ISBN:            strings.TrimSpace(rec[2]),
		PublicationYear: year,
		Category:        strings.TrimSpace(rec[4]),
	}, nil
}
