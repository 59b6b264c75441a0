package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BookIDString is a type alias for string, representing a book identifier in the format "B###".
type BookIDString = string

// Books is an alias type for a slice of Book.
type Books = []Book

// Book is a catalog entry.
//
// Availability is the single source of truth for "is this book currently lent";
// it is mutated only by the transaction ledger. While its properties are
// exported, a Book should only be constructed with BuildBook or BookFromRow so
// that text fields are normalized.
type Book struct {
	ID        BookIDString
	Title     string
	Author    string
	Genre     string
	Year      int
	Available bool
}

// BuildBook is a factory method for Book.
// Title, author, and genre are trimmed and title-cased.
func BuildBook(id BookIDString, title string, author string, genre string, year int, available bool) Book {
	return Book{
		ID:        id,
		Title:     TitleCase(title),
		Author:    TitleCase(author),
		Genre:     TitleCase(genre),
		Year:      year,
		Available: available,
	}
}

// NextBookID returns the identifier assigned to the next registered book,
// given the current number of books in the catalog.
func NextBookID(count int) BookIDString {
	return fmt.Sprintf("B%03d", count+1)
}

// ToRow maps the book onto the BooksTable schema.
// The availability flag is persisted as the literal "True" or "False".
func (b Book) ToRow() Row {
	available := "False"
	if b.Available {
		available = "True"
	}

	return Row{
		"book_id":   b.ID,
		"title":     b.Title,
		"author":    b.Author,
		"genre":     b.Genre,
		"year":      strconv.Itoa(b.Year),
		"available": available,
	}
}

// BookFromRow builds a Book from a BooksTable row.
// Returns an error joined with ErrMalformedRow for a non-numeric year or an
// availability value other than "True"/"False" (case-insensitive).
func BookFromRow(row Row) (Book, error) {
	year, err := strconv.Atoi(row["year"])
	if err != nil {
		return Book{}, errors.Join(ErrMalformedRow, err)
	}

	available, err := parseBool(row["available"])
	if err != nil {
		return Book{}, err
	}

	return Book{
		ID:        row["book_id"],
		Title:     row["title"],
		Author:    row["author"],
		Genre:     row["genre"],
		Year:      year,
		Available: available,
	}, nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errors.Join(ErrMalformedRow, fmt.Errorf("invalid boolean %q", value))
	}
}
