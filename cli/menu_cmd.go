package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"librarium/catalog"
	"librarium/registry"
)

// domainErrors are expected operational failures: the menu reports them and
// keeps running. Anything else is a storage or programming fault and
// terminates the loop.
var domainErrors = []error{
	catalog.ErrBookNotFound,
	catalog.ErrMemberNotFound,
	catalog.ErrDuplicateEmail,
	catalog.ErrBookUnavailable,
	catalog.ErrNoActiveBorrowRecord,
	catalog.ErrAlreadyReturned,
	catalog.ErrMalformedInput,
	catalog.ErrMalformedRow,
}

func isDomainError(err error) bool {
	for _, domainErr := range domainErrors {
		if errors.Is(err, domainErr) {
			return true
		}
	}

	return false
}

func newMenuCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive library menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			menu := menuLoop{
				app: a,
				in:  bufio.NewScanner(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}

			return menu.run(cmd)
		},
	}

	return cmd
}

type menuLoop struct {
	app *app
	in  *bufio.Scanner
	out io.Writer
}

func (m menuLoop) run(cmd *cobra.Command) error {
	for {
		m.printMenu()

		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return nil
		}

		if choice == "0" {
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		}

		if err := m.dispatch(cmd, choice); err != nil {
			if !isDomainError(err) {
				return err
			}

			fmt.Fprintf(m.out, "Operation failed: %v\n", err)
		}
	}
}

func (m menuLoop) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "========== LIBRARY CATALOG MANAGER ==========")
	fmt.Fprintln(m.out, " 1. Display All Books")
	fmt.Fprintln(m.out, " 2. Display Available Books")
	fmt.Fprintln(m.out, " 3. Display All Members")
	fmt.Fprintln(m.out, " 4. Search Books")
	fmt.Fprintln(m.out, " 5. Borrow a Book")
	fmt.Fprintln(m.out, " 6. Return a Book")
	fmt.Fprintln(m.out, " 7. View Member's Borrowed Books")
	fmt.Fprintln(m.out, " 8. View Overdue Books")
	fmt.Fprintln(m.out, " 9. Library Report")
	fmt.Fprintln(m.out, "10. Add New Book")
	fmt.Fprintln(m.out, "11. Register New Member")
	fmt.Fprintln(m.out, " 0. Exit")
	fmt.Fprintln(m.out, "=============================================")
}

func (m menuLoop) dispatch(cmd *cobra.Command, choice string) error {
	ctx := cmd.Context()

	switch choice {
	case "1":
		books, err := m.app.books.List(ctx, registry.FilterAll)
		if err != nil {
			return err
		}

		printBooks(m.out, books)

	case "2":
		books, err := m.app.books.List(ctx, registry.FilterAvailableOnly)
		if err != nil {
			return err
		}

		printBooks(m.out, books)

	case "3":
		members, err := m.app.members.List(ctx)
		if err != nil {
			return err
		}

		printMembers(m.out, members)

	case "4":
		keyword, ok := m.prompt("Enter title or author keyword: ")
		if !ok {
			return nil
		}

		books, err := m.app.books.Search(ctx, keyword)
		if err != nil {
			return err
		}

		printBooks(m.out, books)

	case "5":
		memberID, ok := m.prompt("Enter Member ID: ")
		if !ok {
			return nil
		}

		bookID, ok := m.prompt("Enter Book ID: ")
		if !ok {
			return nil
		}

		transaction, err := m.app.ledger.Borrow(ctx, memberID, bookID)
		if err != nil {
			return err
		}

		fmt.Fprintf(m.out, "Book %s borrowed successfully (transaction %s).\n", bookID, transaction.ID)

	case "6":
		memberID, ok := m.prompt("Enter Member ID: ")
		if !ok {
			return nil
		}

		bookID, ok := m.prompt("Enter Book ID: ")
		if !ok {
			return nil
		}

		transaction, err := m.app.ledger.Return(ctx, memberID, bookID)
		if err != nil {
			return err
		}

		fmt.Fprintf(m.out, "Book %s returned successfully (transaction %s).\n", bookID, transaction.ID)

	case "7":
		memberID, ok := m.prompt("Enter Member ID: ")
		if !ok {
			return nil
		}

		borrowed, err := m.app.ledger.BorrowedByMember(ctx, memberID)
		if err != nil {
			return err
		}

		fmt.Fprintf(m.out, "Books borrowed by %s:\n", memberID)
		printTransactions(m.out, borrowed)

	case "8":
		answer, ok := m.prompt(fmt.Sprintf("Enter overdue limit (default %d): ", m.app.cfg.Lending.OverdueDays))
		if !ok {
			return nil
		}

		limit := m.app.cfg.Lending.OverdueDays
		if answer != "" {
			parsed, err := strconv.Atoi(answer)
			if err != nil {
				return errors.Join(catalog.ErrMalformedInput, err)
			}

			limit = parsed
		}

		entries, err := m.app.reports.OverdueReport(ctx, limit)
		if err != nil {
			return err
		}

		fmt.Fprintf(m.out, "OVERDUE BOOKS (>%d days)\n", limit)
		printOverdueEntries(m.out, entries)

	case "9":
		summary, err := m.app.reports.Summary(ctx)
		if err != nil {
			return err
		}

		printSummary(m.out, summary)

	case "10":
		title, ok := m.prompt("Enter title: ")
		if !ok {
			return nil
		}

		author, ok := m.prompt("Enter author: ")
		if !ok {
			return nil
		}

		genre, ok := m.prompt("Enter genre: ")
		if !ok {
			return nil
		}

		year, ok := m.prompt("Enter year: ")
		if !ok {
			return nil
		}

		book, err := m.app.books.Register(ctx, title, author, genre, year)
		if err != nil {
			return err
		}

		fmt.Fprintf(m.out, "Book '%s' added successfully with ID %s.\n", book.Title, book.ID)

	case "11":
		name, ok := m.prompt("Enter name: ")
		if !ok {
			return nil
		}

		email, ok := m.prompt("Enter email: ")
		if !ok {
			return nil
		}

		phone, ok := m.prompt("Enter phone: ")
		if !ok {
			return nil
		}

		department, ok := m.prompt("Enter department: ")
		if !ok {
			return nil
		}

		member, err := m.app.members.Register(ctx, name, email, phone, department)
		if err != nil {
			return err
		}

		fmt.Fprintf(m.out, "Member '%s' registered successfully with ID %s.\n", member.Name, member.ID)

	default:
		fmt.Fprintln(m.out, "Invalid choice, please try again.")
	}

	return nil
}

// prompt reads one trimmed input line; ok is false when the input stream ends.
func (m menuLoop) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)

	if !m.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(m.in.Text()), true
}
