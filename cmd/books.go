package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/bookcat/internal/books"
	"github.com/ziadkadry99/bookcat/internal/page"
)

var (
	bookTitle     string
	bookAuthor    string
	reviewContent string
	reviewRating  int
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List and edit books in the catalog",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every book",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := newManager()
		if err != nil {
			return err
		}
		if m.Load(cmd.Context()) != page.Done {
			return fmt.Errorf("could not load books (are you logged in? try `bookcat login`)")
		}
		return nil
	},
}

var booksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book",
	Long:  `Adds a book. Missing --title or --author values are asked for interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, p, err := newManager()
		if err != nil {
			return err
		}
		form := books.Form{Title: bookTitle, Author: bookAuthor}
		if form.Title == "" {
			form.Title, _ = p.Prompt("Title:")
		}
		if form.Author == "" {
			form.Author, _ = p.Prompt("Author:")
		}
		return outcomeErr(m.Submit(cmd.Context(), &form))
	},
}

var booksViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := newManager()
		if err != nil {
			return err
		}
		return outcomeErr(m.View(cmd.Context(), args[0]))
	},
}

var booksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a book's title and author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := newManager()
		if err != nil {
			return err
		}
		return outcomeErr(m.Update(cmd.Context(), args[0]))
	},
}

var booksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a book after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := newManager()
		if err != nil {
			return err
		}
		return outcomeErr(m.Delete(cmd.Context(), args[0]))
	},
}

var booksReviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Add a review to a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, p, err := newManager()
		if err != nil {
			return err
		}
		content := reviewContent
		if content == "" {
			content, _ = p.Prompt("Review:")
		}
		rating := reviewRating
		if !cmd.Flags().Changed("rating") {
			text, _ := p.Prompt("Rating (1-5):")
			if rating, err = strconv.Atoi(strings.TrimSpace(text)); err != nil {
				return fmt.Errorf("rating must be a number: %q", text)
			}
		}
		return outcomeErr(m.Review(cmd.Context(), args[0], content, rating))
	},
}

// newManager builds a books manager on a terminal page.
func newManager() (*books.Manager, page.Page, error) {
	client, err := newClient()
	if err != nil {
		return nil, nil, err
	}
	p := newPage(page.PathBooks)
	return books.NewManager(client, p, logger), p, nil
}

func init() {
	booksAddCmd.Flags().StringVar(&bookTitle, "title", "", "book title")
	booksAddCmd.Flags().StringVar(&bookAuthor, "author", "", "book author")
	booksReviewCmd.Flags().StringVar(&reviewContent, "content", "", "review text")
	booksReviewCmd.Flags().IntVar(&reviewRating, "rating", 0, "rating from 1 to 5")

	booksCmd.AddCommand(booksListCmd, booksAddCmd, booksViewCmd, booksUpdateCmd, booksDeleteCmd, booksReviewCmd)
	rootCmd.AddCommand(booksCmd)
}
