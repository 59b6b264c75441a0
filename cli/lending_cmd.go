package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newBorrowCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "borrow <member-id> <book-id>",
		Short: "Borrow a book for a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			transaction, err := a.ledger.Borrow(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			cmd.Printf("Book %s borrowed by %s (transaction %s).\n",
				transaction.BookID, transaction.MemberID, transaction.ID)
			return nil
		},
	}

	return cmd
}

func newReturnCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "return <member-id> <book-id>",
		Short: "Return a borrowed book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			transaction, err := a.ledger.Return(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			cmd.Printf("Book %s returned by %s (transaction %s).\n",
				transaction.BookID, transaction.MemberID, transaction.ID)
			return nil
		},
	}

	return cmd
}

func newTransactionsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Inspect the transaction ledger",
	}

	cmd.AddCommand(newTransactionsListCmd(configPath))
	cmd.AddCommand(newTransactionsOverdueCmd(configPath))
	cmd.AddCommand(newTransactionsMemberCmd(configPath))

	return cmd
}

func newTransactionsListCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Display all transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			transactions, err := a.ledger.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			printTransactions(os.Stdout, transactions)
			return nil
		},
	}

	return cmd
}

func newTransactionsOverdueCmd(configPath *string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Display books borrowed for longer than the day limit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			limit := days
			if limit <= 0 {
				limit = a.cfg.Lending.OverdueDays
			}

			overdue, err := a.ledger.Overdue(cmd.Context(), limit)
			if err != nil {
				return err
			}

			printTransactions(os.Stdout, overdue)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Overdue day limit (defaults to the configured value)")

	return cmd
}

func newTransactionsMemberCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member <member-id>",
		Short: "Display a member's currently borrowed books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			borrowed, err := a.ledger.BorrowedByMember(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printTransactions(os.Stdout, borrowed)
			return nil
		},
	}

	return cmd
}
