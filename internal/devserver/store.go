package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ziadkadry99/bookcat/internal/db"
)

// Store is the devserver's persistence layer.
type Store struct {
	db *db.DB
}

// NewStore returns a Store over database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// CreateUser inserts an inactive user.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (*User, error) {
	if _, err := s.UserByUsername(ctx, username); err == nil {
		return nil, errUsernameTaken
	} else if !errors.Is(err, errNotFound) {
		return nil, err
	}
	if _, err := s.userBy(ctx, "email", email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, errNotFound) {
		return nil, err
	}

	u := &User{ID: uuid.NewString(), Username: username, Email: email, PasswordHash: passwordHash}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, is_active) VALUES (?, ?, ?, ?, 0)`,
		u.ID, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

// UserByUsername looks a user up by name.
func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.userBy(ctx, "username", username)
}

// ActivateByEmail marks the user with email active. It reports whether the
// user was already active.
func (s *Store) ActivateByEmail(ctx context.Context, email string) (alreadyActive bool, err error) {
	u, err := s.userBy(ctx, "email", email)
	if err != nil {
		return false, err
	}
	if u.IsActive {
		return true, nil
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE users SET is_active = 1 WHERE id = ?`, u.ID); err != nil {
		return false, fmt.Errorf("activating user: %w", err)
	}
	return false, nil
}

func (s *Store) userBy(ctx context.Context, column, value string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, is_active, is_admin FROM users WHERE `+column+` = ?`, value,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// CreateBook inserts a book.
func (s *Store) CreateBook(ctx context.Context, in BookInput) (*Book, error) {
	b := &Book{ID: uuid.NewString(), Title: in.Title, Author: in.Author, Reviews: []Review{}}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO books (id, title, author) VALUES (?, ?, ?)`, b.ID, b.Title, b.Author); err != nil {
		return nil, fmt.Errorf("inserting book: %w", err)
	}
	return b, nil
}

// ListBooks returns every book with its reviews, oldest first.
func (s *Store) ListBooks(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, author FROM books ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []Book
	index := make(map[string]int)
	for rows.Next() {
		b := Book{Reviews: []Review{}}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		index[b.ID] = len(books)
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reviews, err := s.reviews(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, r := range reviews {
		if i, ok := index[r.BookID]; ok {
			books[i].Reviews = append(books[i].Reviews, r)
		}
	}
	return books, nil
}

// GetBook returns one book with its reviews.
func (s *Store) GetBook(ctx context.Context, id string) (*Book, error) {
	b := Book{}
	err := s.db.QueryRowContext(ctx, `SELECT id, title, author FROM books WHERE id = ?`, id).
		Scan(&b.ID, &b.Title, &b.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying book: %w", err)
	}

	reviews, err := s.reviews(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Reviews = reviews
	return &b, nil
}

// UpdateBook replaces title and author.
func (s *Store) UpdateBook(ctx context.Context, id string, in BookInput) (*Book, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, updated_at = datetime('now') WHERE id = ?`, in.Title, in.Author, id)
	if err != nil {
		return nil, fmt.Errorf("updating book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errNotFound
	}
	return s.GetBook(ctx, id)
}

// DeleteBook removes a book and its reviews.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE book_id = ?`, id); err != nil {
		return fmt.Errorf("deleting reviews: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errNotFound
	}
	return tx.Commit()
}

// CreateReview attaches a review by userID to bookID.
func (s *Store) CreateReview(ctx context.Context, bookID, userID string, in ReviewInput) (*Review, error) {
	if _, err := s.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	r := &Review{ID: uuid.NewString(), BookID: bookID, Content: in.Content, Rating: in.Rating}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, book_id, user_id, content, rating) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.BookID, userID, r.Content, r.Rating); err != nil {
		return nil, fmt.Errorf("inserting review: %w", err)
	}
	return r, nil
}

// GetReview returns one review.
func (s *Store) GetReview(ctx context.Context, id string) (*Review, error) {
	var r Review
	err := s.db.QueryRowContext(ctx, `SELECT id, book_id, content, rating FROM reviews WHERE id = ?`, id).
		Scan(&r.ID, &r.BookID, &r.Content, &r.Rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying review: %w", err)
	}
	return &r, nil
}

// UpdateReview replaces content and rating.
func (s *Store) UpdateReview(ctx context.Context, id string, in ReviewInput) (*Review, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE reviews SET content = ?, rating = ? WHERE id = ?`, in.Content, in.Rating, id)
	if err != nil {
		return nil, fmt.Errorf("updating review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errNotFound
	}
	return s.GetReview(ctx, id)
}

// DeleteReview removes one review.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errNotFound
	}
	return nil
}

// ListReviews returns every review.
func (s *Store) ListReviews(ctx context.Context) ([]Review, error) {
	return s.reviews(ctx, "")
}

func (s *Store) reviews(ctx context.Context, bookID string) ([]Review, error) {
	query := `SELECT id, book_id, content, rating FROM reviews`
	var args []any
	if bookID != "" {
		query += ` WHERE book_id = ?`
		args = append(args, bookID)
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.BookID, &r.Content, &r.Rating); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func normalize(s string) string { return strings.TrimSpace(s) }
