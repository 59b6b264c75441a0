package report

import (
	"context"
	"io"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"librarium/catalog"
)

// DefaultTopN is the ranking size MostBorrowed falls back to
// when the caller passes zero or a negative value.
const DefaultTopN = 5

// UnknownReference is rendered in place of a member name or book title
// whose record no longer resolves.
const UnknownReference = "Unknown"

const logMsgSummaryExported = "summary report exported"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TableReader is the read side of the storage collaborator.
type TableReader interface {
	ReadAll(ctx context.Context, table catalog.Table) (catalog.Rows, error)
}

// TableWriter is the write side used by ExportSummary; the export may target a
// different store than the one the reports are computed from.
type TableWriter interface {
	WriteAll(ctx context.Context, table catalog.Table, rows catalog.Rows) error
}

// Summary holds the overall counts of the library.
type Summary struct {
	TotalBooks        int `json:"total_books"`
	TotalMembers      int `json:"total_members"`
	TotalTransactions int `json:"total_transactions"`
	CurrentlyBorrowed int `json:"currently_borrowed"`
	TotalReturned     int `json:"total_returned"`
}

// RankedBook is one entry of the MostBorrowed ranking.
type RankedBook struct {
	BookID catalog.BookIDString `json:"book_id"`
	Title  string               `json:"title"`
	Count  int                  `json:"count"`
}

// OverdueEntry describes one overdue transaction with its references resolved.
type OverdueEntry struct {
	Transaction catalog.Transaction
	MemberName  string
	BookTitle   string
	DaysOverdue int
}

// Generator computes reports over a TableReader.
type Generator struct {
	store  TableReader
	logger catalog.Logger
	now    catalog.Clock
}

// Option defines a functional option for configuring a Generator.
type Option func(*Generator)

// WithLogger sets the logger for the Generator.
func WithLogger(logger catalog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithClock sets the clock used for overdue day calculations, default time.Now.
func WithClock(clock catalog.Clock) Option {
	return func(g *Generator) {
		g.now = clock
	}
}

// NewGenerator creates a Generator with optional configuration.
func NewGenerator(store TableReader, options ...Option) (Generator, error) {
	if store == nil {
		return Generator{}, catalog.ErrNilStoreSupplied
	}

	g := Generator{
		store: store,
		now:   catalog.SystemClock,
	}

	for _, option := range options {
		option(&g)
	}

	return g, nil
}

// Summary computes the overall library counts.
//
// TotalReturned is derived as TotalTransactions minus CurrentlyBorrowed rather
// than counted from transaction statuses; the two agree as long as every
// unavailable book has exactly one open transaction.
func (g Generator) Summary(ctx context.Context) (Summary, error) {
	books, err := g.loadBooks(ctx)
	if err != nil {
		return Summary{}, err
	}

	members, err := g.loadMembers(ctx)
	if err != nil {
		return Summary{}, err
	}

	transactions, err := g.loadTransactions(ctx)
	if err != nil {
		return Summary{}, err
	}

	borrowed := 0
	for _, book := range books {
		if !book.Available {
			borrowed++
		}
	}

	return Summary{
		TotalBooks:        len(books),
		TotalMembers:      len(members),
		TotalTransactions: len(transactions),
		CurrentlyBorrowed: borrowed,
		TotalReturned:     len(transactions) - borrowed,
	}, nil
}

// MostBorrowed ranks books by how often they appear in the ledger, regardless
// of transaction status, and returns the topN entries in descending order.
// Ties keep the order in which the books first appear in the ledger. A book
// whose catalog record is missing is listed with the title "Unknown".
func (g Generator) MostBorrowed(ctx context.Context, topN int) ([]RankedBook, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	transactions, err := g.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[catalog.BookIDString]int)
	order := make([]catalog.BookIDString, 0)

	for _, transaction := range transactions {
		if _, seen := counts[transaction.BookID]; !seen {
			order = append(order, transaction.BookID)
		}

		counts[transaction.BookID]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}

	books, err := g.loadBooks(ctx)
	if err != nil {
		return nil, err
	}

	titles := make(map[catalog.BookIDString]string, len(books))
	for _, book := range books {
		titles[book.ID] = book.Title
	}

	ranking := make([]RankedBook, 0, len(order))
	for _, bookID := range order {
		title, found := titles[bookID]
		if !found {
			title = UnknownReference
		}

		ranking = append(ranking, RankedBook{BookID: bookID, Title: title, Count: counts[bookID]})
	}

	return ranking, nil
}

// ActiveMembers returns all members that currently hold at least one borrowed
// book, in member registration order.
func (g Generator) ActiveMembers(ctx context.Context) (catalog.Members, error) {
	transactions, err := g.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	activeIDs := make(map[catalog.MemberIDString]struct{})
	for _, transaction := range transactions {
		if transaction.Status == catalog.StatusBorrowed {
			activeIDs[transaction.MemberID] = struct{}{}
		}
	}

	members, err := g.loadMembers(ctx)
	if err != nil {
		return nil, err
	}

	active := catalog.Members{}
	for _, member := range members {
		if _, found := activeIDs[member.ID]; found {
			active = append(active, member)
		}
	}

	return active, nil
}

// OverdueReport lists every open transaction borrowed more than daysLimit whole
// days ago, with member name and book title resolved. DaysOverdue is the whole
// number of days since the borrow date. Missing references render as "Unknown"
// and do not fail the report.
func (g Generator) OverdueReport(ctx context.Context, daysLimit int) ([]OverdueEntry, error) {
	transactions, err := g.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	books, err := g.loadBooks(ctx)
	if err != nil {
		return nil, err
	}

	members, err := g.loadMembers(ctx)
	if err != nil {
		return nil, err
	}

	titles := make(map[catalog.BookIDString]string, len(books))
	for _, book := range books {
		titles[book.ID] = book.Title
	}

	names := make(map[catalog.MemberIDString]string, len(members))
	for _, member := range members {
		names[member.ID] = member.Name
	}

	now := g.now()
	entries := []OverdueEntry{}

	for _, transaction := range transactions {
		if transaction.Status != catalog.StatusBorrowed {
			continue
		}

		daysPassed := catalog.DaysBetween(transaction.BorrowDate, now)
		if daysPassed <= daysLimit {
			continue
		}

		memberName, found := names[transaction.MemberID]
		if !found {
			memberName = UnknownReference
		}

		bookTitle, found := titles[transaction.BookID]
		if !found {
			bookTitle = UnknownReference
		}

		entries = append(entries, OverdueEntry{
			Transaction: transaction,
			MemberName:  memberName,
			BookTitle:   bookTitle,
			DaysOverdue: daysPassed,
		})
	}

	return entries, nil
}

// ExportSummary writes the summary counts as a single-row record set to the
// given writer. Unlike Summary, the returned-books column is the exact count
// of transactions with status Returned.
func (g Generator) ExportSummary(ctx context.Context, out TableWriter) error {
	if out == nil {
		return catalog.ErrNilStoreSupplied
	}

	summary, err := g.Summary(ctx)
	if err != nil {
		return err
	}

	transactions, err := g.loadTransactions(ctx)
	if err != nil {
		return err
	}

	returned := 0
	for _, transaction := range transactions {
		if transaction.Status == catalog.StatusReturned {
			returned++
		}
	}

	row := catalog.Row{
		"Total_Books":        strconv.Itoa(summary.TotalBooks),
		"Total_Members":      strconv.Itoa(summary.TotalMembers),
		"Total_Transactions": strconv.Itoa(summary.TotalTransactions),
		"Borrowed_Books":     strconv.Itoa(summary.CurrentlyBorrowed),
		"Returned_Books":     strconv.Itoa(returned),
	}

	if err := out.WriteAll(ctx, catalog.ReportSummaryTable, catalog.Rows{row}); err != nil {
		return err
	}

	if g.logger != nil {
		g.logger.Info(logMsgSummaryExported)
	}

	return nil
}

// ExportSummaryJSON writes the summary counts as a JSON document.
func (g Generator) ExportSummaryJSON(ctx context.Context, w io.Writer) error {
	summary, err := g.Summary(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(summary)
}

func (g Generator) loadBooks(ctx context.Context) (catalog.Books, error) {
	rows, err := g.store.ReadAll(ctx, catalog.BooksTable)
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

func (g Generator) loadMembers(ctx context.Context) (catalog.Members, error) {
	rows, err := g.store.ReadAll(ctx, catalog.MembersTable)
	if err != nil {
		return nil, err
	}

	members := make(catalog.Members, 0, len(rows))
	for _, row := range rows {
		member, rowErr := catalog.MemberFromRow(row)
		if rowErr != nil {
			return nil, rowErr
		}

		members = append(members, member)
	}

	return members, nil
}

func (g Generator) loadTransactions(ctx context.Context) (catalog.Transactions, error) {
	rows, err := g.store.ReadAll(ctx, catalog.TransactionsTable)
	if err != nil {
		return nil, err
	}

	transactions := make(catalog.Transactions, 0, len(rows))
	for _, row := range rows {
		transaction, rowErr := catalog.TransactionFromRow(row)
		if rowErr != nil {
			return nil, rowErr
		}

		transactions = append(transactions, transaction)
	}

	return transactions, nil
}
