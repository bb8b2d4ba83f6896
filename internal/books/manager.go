// Package books drives the book management page: listing, adding, viewing,
// updating and deleting catalog entries.
package books

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/bookcat/internal/catalog"
	"github.com/ziadkadry99/bookcat/internal/page"
)

// UnexpectedError is shown when a request fails before any response arrives.
const UnexpectedError = "An unexpected error occurred. Please try again later."

// API is the part of the catalog client the manager needs.
type API interface {
	ListBooks(ctx context.Context) ([]catalog.Book, error)
	CreateBook(ctx context.Context, in catalog.BookInput) (*catalog.Book, error)
	GetBook(ctx context.Context, id string) (*catalog.Book, error)
	UpdateBook(ctx context.Context, id string, in catalog.BookInput) (*catalog.Book, error)
	DeleteBook(ctx context.Context, id string) error
	AddReview(ctx context.Context, bookID string, in catalog.ReviewInput) (*catalog.Review, error)
}

// Form is the add-book form.
type Form struct {
	Title  string
	Author string
}

// Reset clears the form fields.
func (f *Form) Reset() {
	f.Title = ""
	f.Author = ""
}

// Manager handles the actions of the books page.
type Manager struct {
	api    API
	page   page.Page
	logger *zap.Logger
}

// NewManager returns a Manager rendering into p.
func NewManager(api API, p page.Page, logger *zap.Logger) *Manager {
	return &Manager{api: api, page: p, logger: logger}
}

// Load fetches the list and re-renders it. Failures are only logged and
// leave the current list in place.
func (m *Manager) Load(ctx context.Context) page.Outcome {
	books, err := m.api.ListBooks(ctx)
	if err != nil {
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) {
			m.logger.Error("Failed to load books", zap.Int("status", apiErr.StatusCode), zap.String("detail", apiErr.Detail))
		} else {
			m.logger.Error("Error loading books", zap.Error(err))
		}
		return page.Failed
	}

	entries := make([]page.Entry, 0, len(books))
	for _, b := range books {
		entries = append(entries, page.Entry{ID: b.ID, Label: fmt.Sprintf("%s by %s", b.Title, b.Author)})
	}
	m.page.RenderList(entries)
	return page.Done
}

// Submit creates a book from the form, then resets the form whatever the
// result.
func (m *Manager) Submit(ctx context.Context, form *Form) page.Outcome {
	defer form.Reset()

	_, err := m.api.CreateBook(ctx, catalog.BookInput{Title: form.Title, Author: form.Author})
	if err != nil {
		return m.fail("Failed to add book", "Error adding book", err)
	}

	m.page.Alert("Book added successfully!")
	m.Load(ctx)
	return page.Done
}

// View fetches one book into the details pane.
func (m *Manager) View(ctx context.Context, id string) page.Outcome {
	book, err := m.api.GetBook(ctx, id)
	if err != nil {
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) {
			m.page.Alert("Failed to fetch book details")
			return page.Failed
		}
		m.logger.Error("Error fetching book details", zap.Error(err))
		m.page.Alert(UnexpectedError)
		return page.Failed
	}

	m.page.RenderDetails(page.Details{
		ID:      book.ID,
		Title:   book.Title,
		Author:  book.Author,
		Reviews: len(book.Reviews),
	})
	return page.Done
}

// Update asks for a new title and author and saves them. Both are asked
// before either is checked; an empty answer aborts without a request.
func (m *Manager) Update(ctx context.Context, id string) page.Outcome {
	title, _ := m.page.Prompt("Enter new title:")
	author, _ := m.page.Prompt("Enter new author:")

	if title == "" || author == "" {
		m.page.Alert("Title and author cannot be empty.")
		return page.Aborted
	}

	if _, err := m.api.UpdateBook(ctx, id, catalog.BookInput{Title: title, Author: author}); err != nil {
		return m.fail("Failed to update book", "Error updating book", err)
	}

	m.page.Alert("Book updated successfully!")
	m.Load(ctx)
	return page.Done
}

// Delete removes a book after confirmation. Declining makes no request.
func (m *Manager) Delete(ctx context.Context, id string) page.Outcome {
	if !m.page.Confirm("Are you sure you want to delete this book?") {
		return page.Aborted
	}

	if err := m.api.DeleteBook(ctx, id); err != nil {
		return m.fail("Failed to delete book", "Error deleting book", err)
	}

	m.page.Alert("Book deleted successfully!")
	m.Load(ctx)
	return page.Done
}

// Review attaches a review to a book and refreshes its details.
func (m *Manager) Review(ctx context.Context, id, content string, rating int) page.Outcome {
	if content == "" {
		m.page.Alert("Review cannot be empty.")
		return page.Aborted
	}

	if _, err := m.api.AddReview(ctx, id, catalog.ReviewInput{Content: content, Rating: rating}); err != nil {
		return m.fail("Failed to add review", "Error adding review", err)
	}

	m.page.Alert("Review added successfully!")
	m.View(ctx, id)
	return page.Done
}

// fail alerts the server's detail for API errors and the generic text for
// transport errors.
func (m *Manager) fail(prefix, logMsg string, err error) page.Outcome {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		m.logger.Error(prefix, zap.Int("status", apiErr.StatusCode), zap.String("detail", apiErr.Detail))
		m.page.Alert(fmt.Sprintf("%s: %s", prefix, apiErr.Detail))
		return page.Failed
	}
	m.logger.Error(logMsg, zap.Error(err))
	m.page.Alert(UnexpectedError)
	return page.Failed
}
