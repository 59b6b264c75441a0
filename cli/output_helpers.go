package cli

import (
	"fmt"
	"io"

	"librarium/catalog"
	"librarium/report"
)

const tableRule = "---------------------------------------------------------------"

func printBooks(w io.Writer, books catalog.Books) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books found.")
		return
	}

	fmt.Fprintf(w, "%-6s %-30s %-22s %-12s %-6s %s\n", "ID", "Title", "Author", "Genre", "Year", "Available")
	fmt.Fprintln(w, tableRule)

	for _, book := range books {
		availability := "Yes"
		if !book.Available {
			availability = "No"
		}

		fmt.Fprintf(w, "%-6s %-30s %-22s %-12s %-6d %s\n",
			book.ID, book.Title, book.Author, book.Genre, book.Year, availability)
	}
}

func printMembers(w io.Writer, members catalog.Members) {
	if len(members) == 0 {
		fmt.Fprintln(w, "No members found.")
		return
	}

	fmt.Fprintf(w, "%-6s %-22s %-28s %-14s %-18s %s\n", "ID", "Name", "Email", "Phone", "Department", "Joined")
	fmt.Fprintln(w, tableRule)

	for _, member := range members {
		fmt.Fprintf(w, "%-6s %-22s %-28s %-14s %-18s %s\n",
			member.ID, member.Name, member.Email, member.Phone, member.Department,
			catalog.FormatDate(member.JoinDate))
	}
}

func printTransactions(w io.Writer, transactions catalog.Transactions) {
	if len(transactions) == 0 {
		fmt.Fprintln(w, "No transactions found.")
		return
	}

	fmt.Fprintf(w, "%-7s %-8s %-8s %-12s %-12s %s\n", "ID", "Member", "Book", "Borrowed", "Returned", "Status")
	fmt.Fprintln(w, tableRule)

	for _, transaction := range transactions {
		fmt.Fprintf(w, "%-7s %-8s %-8s %-12s %-12s %s\n",
			transaction.ID, transaction.MemberID, transaction.BookID,
			catalog.FormatDate(transaction.BorrowDate),
			catalog.FormatDate(transaction.ReturnDate),
			transaction.Status)
	}
}

func printSummary(w io.Writer, summary report.Summary) {
	fmt.Fprintln(w, "LIBRARY SUMMARY REPORT")
	fmt.Fprintln(w, tableRule)
	fmt.Fprintf(w, "Total Books:            %d\n", summary.TotalBooks)
	fmt.Fprintf(w, "Total Members:          %d\n", summary.TotalMembers)
	fmt.Fprintf(w, "Total Transactions:     %d\n", summary.TotalTransactions)
	fmt.Fprintf(w, "Currently Borrowed:     %d\n", summary.CurrentlyBorrowed)
	fmt.Fprintf(w, "Total Returned Books:   %d\n", summary.TotalReturned)
}

func printRanking(w io.Writer, ranking []report.RankedBook) {
	if len(ranking) == 0 {
		fmt.Fprintln(w, "No transaction data found.")
		return
	}

	fmt.Fprintf(w, "TOP %d MOST BORROWED BOOKS\n", len(ranking))
	fmt.Fprintln(w, tableRule)

	for _, entry := range ranking {
		fmt.Fprintf(w, "%s - %-25s | Borrowed %d times\n", entry.BookID, entry.Title, entry.Count)
	}
}

func printOverdueEntries(w io.Writer, entries []report.OverdueEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No overdue books.")
		return
	}

	for _, entry := range entries {
		fmt.Fprintf(w, "%s | %-15s | %-20s | %d days overdue\n",
			entry.Transaction.ID, entry.MemberName, entry.BookTitle, entry.DaysOverdue)
	}
}
