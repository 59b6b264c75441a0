package cli

import (
	"os"

	"github.com/spf13/cobra"

	"librarium/registry"
)

func newBooksCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book catalog",
	}

	cmd.AddCommand(newBooksAddCmd(configPath))
	cmd.AddCommand(newBooksListCmd(configPath))
	cmd.AddCommand(newBooksSearchCmd(configPath))

	return cmd
}

func newBooksAddCmd(configPath *string) *cobra.Command {
	var (
		title  string
		author string
		genre  string
		year   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new book to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			book, err := a.books.Register(cmd.Context(), title, author, genre, year)
			if err != nil {
				return err
			}

			cmd.Printf("Book '%s' added successfully with ID %s.\n", book.Title, book.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Book title")
	cmd.Flags().StringVar(&author, "author", "", "Book author")
	cmd.Flags().StringVar(&genre, "genre", "", "Book genre")
	cmd.Flags().StringVar(&year, "year", "", "Publication year")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("genre")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func newBooksListCmd(configPath *string) *cobra.Command {
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Display books in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			filter := registry.FilterAll
			if availableOnly {
				filter = registry.FilterAvailableOnly
			}

			books, err := a.books.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			printBooks(os.Stdout, books)
			return nil
		},
	}

	cmd.Flags().BoolVar(&availableOnly, "available", false, "Show only available books")

	return cmd
}

func newBooksSearchCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search books by title or author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			books, err := a.books.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printBooks(os.Stdout, books)
			return nil
		},
	}

	return cmd
}
