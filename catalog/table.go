package catalog

// ColumnNameString is a type alias for string, representing a column name in a table schema.
type ColumnNameString = string

// Row is an alias type for one record keyed by column name.
// Column order is carried by the Table schema, not by the Row itself.
type Row = map[ColumnNameString]string

// Rows is an alias type for a slice of Row.
type Rows = []Row

// Table describes a named record set with a fixed, ordered column schema.
// Storage engines derive their physical layout from it: the CSV engine maps it
// to a delimited file with a header row, the SQL engine to a table of the same name.
type Table struct {
	Name    string
	Columns []ColumnNameString
}

// BooksTable is the persisted schema for the book catalog.
var BooksTable = Table{
	Name:    "books",
	Columns: []ColumnNameString{"book_id", "title", "author", "genre", "year", "available"},
}

// MembersTable is the persisted schema for registered members.
var MembersTable = Table{
	Name:    "members",
	Columns: []ColumnNameString{"member_id", "name", "email", "phone", "department", "join_date"},
}

// TransactionsTable is the persisted schema for borrow/return transactions.
var TransactionsTable = Table{
	Name:    "transactions",
	Columns: []ColumnNameString{"transaction_id", "member_id", "book_id", "borrow_date", "return_date", "status"},
}

// ReportSummaryTable is the persisted schema for the exported summary report.
var ReportSummaryTable = Table{
	Name:    "report_summary",
	Columns: []ColumnNameString{"Total_Books", "Total_Members", "Total_Transactions", "Borrowed_Books", "Returned_Books"},
}
