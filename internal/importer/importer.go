package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookstore-api/internal/domain"
)

type BookWriter interface {
	Upsert(ctx context.Context, book domain.Book) (*domain.Book, error)
}

// CSVImporter bulk-loads a catalog export into the books table. Prices in the
// export are decimal amounts (e.g. "29.99") and are stored as cents.
type CSVImporter struct {
	reader   *csv.Reader
	bookRepo BookWriter
}

func NewCSVImporter(r io.Reader, repo BookWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		bookRepo: repo,
	}
}

// Run parses CSV rows and upserts one book per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		book, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if book == nil {
			continue
		}

		if _, err := i.bookRepo.Upsert(ctx, *book); err != nil {
			return imported, fmt.Errorf("upsert book %q: %w", book.Title, err)
		}
		imported++
	}

	return imported, nil
}

func parseRow(record []string, index map[string]int) (*domain.Book, error) {
	title := pick(record, index, "title")
	if title == "" {
		return nil, nil
	}

	id := pick(record, index, "id")
	if id != "" && len(id) != 36 {
		return nil, fmt.Errorf("invalid id for title %q: %s", title, id)
	}

	newPrice, err := parsePriceCents(pick(record, index, "newPrice"))
	if err != nil {
		return nil, fmt.Errorf("invalid newPrice for title %q: %w", title, err)
	}
	oldPrice, err := parsePriceCents(pick(record, index, "oldPrice"))
	if err != nil {
		return nil, fmt.Errorf("invalid oldPrice for title %q: %w", title, err)
	}

	return &domain.Book{
		ID:            id,
		Title:         title,
		Author:        pick(record, index, "author"),
		Description:   pick(record, index, "description"),
		Category:      pick(record, index, "category"),
		Trending:      strings.EqualFold(pick(record, index, "trending"), "true"),
		CoverImage:    pick(record, index, "coverImage"),
		NewPriceCents: newPrice,
		OldPriceCents: oldPrice,
	}, nil
}

// parsePriceCents converts a decimal price string into cents without going
// through floats.
func parsePriceCents(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	var cents int64
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, err
		}
	}
	return units*100 + cents, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
