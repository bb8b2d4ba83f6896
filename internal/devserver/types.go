package devserver

import "errors"

// Book is the response shape for a single catalog entry.
type Book struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Reviews []Review `json:"reviews"`
}

// Review is the response shape for a review.
type Review struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
	BookID  string `json:"book_id"`
}

// BookInput is the body accepted by create and update.
type BookInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// ReviewInput is the body accepted when reviewing a book.
type ReviewInput struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// UserInput is the registration body.
type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is a stored account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
}

// Token is returned by registration.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

var (
	errNotFound      = errors.New("not found")
	errUsernameTaken = errors.New("Username already registered")
	errEmailTaken    = errors.New("Email already registered")
)
