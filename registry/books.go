package registry

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"librarium/catalog"
)

const (
	logMsgBookRegistered      = "book registered"
	logMsgAvailabilityFlipped = "book availability changed"
	logAttrBookID             = "book_id"
	logAttrTitle              = "title"
	logAttrAvailable          = "available"
)

// ListFilter selects which books a List call returns.
type ListFilter int

const (
	// FilterAll returns every book in the catalog.
	FilterAll ListFilter = iota
	// FilterAvailableOnly returns only books that are not currently lent out.
	FilterAvailableOnly
)

// BookRegistry manages the book catalog on top of a TableStore.
type BookRegistry struct {
	store TableStore
	settings
}

// NewBookRegistry creates a BookRegistry with optional configuration.
func NewBookRegistry(store TableStore, options ...Option) (BookRegistry, error) {
	if store == nil {
		return BookRegistry{}, catalog.ErrNilStoreSupplied
	}

	r := BookRegistry{
		store:    store,
		settings: defaultSettings(),
	}

	for _, option := range options {
		option(&r.settings)
	}

	return r, nil
}

// Register adds a new book to the catalog and persists it.
// The year arrives as text from the input boundary; a non-numeric value fails
// with catalog.ErrMalformedInput before anything is written. There is no
// further validation on the year or author beyond that coercion.
func (r BookRegistry) Register(ctx context.Context, title string, author string, genre string, year string) (catalog.Book, error) {
	parsedYear, convErr := strconv.Atoi(strings.TrimSpace(year))
	if convErr != nil {
		return catalog.Book{}, errors.Join(catalog.ErrMalformedInput, convErr)
	}

	books, err := r.loadBooks(ctx)
	if err != nil {
		return catalog.Book{}, err
	}

	book := catalog.BuildBook(catalog.NextBookID(len(books)), title, author, genre, parsedYear, true)
	books = append(books, book)

	if err := r.saveBooks(ctx, books); err != nil {
		return catalog.Book{}, err
	}

	r.logInfo(logMsgBookRegistered, logAttrBookID, book.ID, logAttrTitle, book.Title)

	return book, nil
}

// FindByID returns the book with the given identifier,
// or catalog.ErrBookNotFound if it is absent.
func (r BookRegistry) FindByID(ctx context.Context, id catalog.BookIDString) (catalog.Book, error) {
	books, err := r.loadBooks(ctx)
	if err != nil {
		return catalog.Book{}, err
	}

	for _, book := range books {
		if book.ID == id {
			return book, nil
		}
	}

	return catalog.Book{}, catalog.ErrBookNotFound
}

// Search returns all books whose title or author contains the keyword,
// case-insensitive. An empty result is a valid, non-error outcome.
func (r BookRegistry) Search(ctx context.Context, keyword string) (catalog.Books, error) {
	books, err := r.loadBooks(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	matches := catalog.Books{}

	for _, book := range books {
		if strings.Contains(strings.ToLower(book.Title), needle) ||
			strings.Contains(strings.ToLower(book.Author), needle) {
			matches = append(matches, book)
		}
	}

	return matches, nil
}

// List returns books in catalog order, optionally narrowed to available ones.
func (r BookRegistry) List(ctx context.Context, filter ListFilter) (catalog.Books, error) {
	books, err := r.loadBooks(ctx)
	if err != nil {
		return nil, err
	}

	if filter == FilterAll {
		return books, nil
	}

	available := catalog.Books{}
	for _, book := range books {
		if book.Available {
			available = append(available, book)
		}
	}

	return available, nil
}

// SetAvailability flips the availability flag of the given book and persists
// the catalog. The ledger is the only intended caller; availability is how the
// "at most one open transaction per book" invariant is enforced.
func (r BookRegistry) SetAvailability(ctx context.Context, id catalog.BookIDString, available bool) error {
	books, err := r.loadBooks(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range books {
		if books[i].ID == id {
			books[i].Available = available
			found = true

			break
		}
	}

	if !found {
		return catalog.ErrBookNotFound
	}

	if err := r.saveBooks(ctx, books); err != nil {
		return err
	}

	r.logInfo(logMsgAvailabilityFlipped, logAttrBookID, id, logAttrAvailable, available)

	return nil
}

func (r BookRegistry) loadBooks(ctx context.Context) (catalog.Books, error) {
	rows, err := r.store.ReadAll(ctx, catalog.BooksTable)
	if err != nil {
		return nil, err
	}

	books := make(catalog.Books, 0, len(rows))
	for _, row := range rows {
		book, rowErr := catalog.BookFromRow(row)
		if rowErr != nil {
			return nil, rowErr
		}

		books = append(books, book)
	}

	return books, nil
}

func (r BookRegistry) saveBooks(ctx context.Context, books catalog.Books) error {
	rows := make(catalog.Rows, 0, len(books))
	for _, book := range books {
		rows = append(rows, book.ToRow())
	}

	return r.store.WriteAll(ctx, catalog.BooksTable, rows)
}
