// Package shell runs the interactive catalog session: one screen at a time,
// switching screens when a handler navigates.
package shell

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/bookcat/internal/books"
	"github.com/ziadkadry99/bookcat/internal/catalog"
	"github.com/ziadkadry99/bookcat/internal/login"
	"github.com/ziadkadry99/bookcat/internal/page"
	"github.com/ziadkadry99/bookcat/internal/register"
)

// API is the catalog client the shell drives.
type API interface {
	books.API
	login.API
	register.API
	Forget() error
}

// Shell wires the three page handlers to a single Page.
type Shell struct {
	api      API
	page     page.Page
	logger   *zap.Logger
	books    *books.Manager
	login    *login.Handler
	register *register.Handler
}

// New returns a Shell rendering into p.
func New(api API, p page.Page, logger *zap.Logger) *Shell {
	return &Shell{
		api:      api,
		page:     p,
		logger:   logger,
		books:    books.NewManager(api, p, logger),
		login:    login.NewHandler(api, p, logger),
		register: register.NewHandler(api, p, logger),
	}
}

// Run shows screens until the user quits or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch s.page.Path() {
		case page.PathLogin:
			s.loginScreen(ctx)
		case page.PathRegister:
			s.registerScreen(ctx)
		case page.PathBooks:
			err = s.booksScreen(ctx)
		case "":
			return nil
		default:
			s.logger.Warn("Unknown page, returning to login", zap.String("path", s.page.Path()))
			s.page.Navigate(page.PathLogin)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) loginScreen(ctx context.Context) {
	idx, ok := s.page.Choose("Login", []string{"Sign in", "Create an account", "Quit"})
	if !ok || idx == 2 {
		s.page.Navigate("")
		return
	}
	if idx == 1 {
		s.page.Navigate(page.PathRegister)
		return
	}

	username, _ := s.page.Prompt("Username:")
	password, _ := s.page.Secret("Password:")
	s.login.Submit(ctx, catalog.Credentials{Username: username, Password: password})
}

func (s *Shell) registerScreen(ctx context.Context) {
	idx, ok := s.page.Choose("Register", []string{"Create account", "Back to login", "Quit"})
	if !ok || idx == 2 {
		s.page.Navigate("")
		return
	}
	if idx == 1 {
		s.page.Navigate(page.PathLogin)
		return
	}

	var form register.Form
	form.Username, _ = s.page.Prompt("Username:")
	form.Email, _ = s.page.Prompt("Email:")
	form.Password, _ = s.page.Secret("Password:")
	s.register.Submit(ctx, &form)
}

const (
	addBook = "Add a book"
	logOut  = "Log out"
	quit    = "Quit"
)

func (s *Shell) booksScreen(ctx context.Context) error {
	s.books.Load(ctx)

	for s.page.Path() == page.PathBooks {
		entries := s.page.List()
		options := make([]string, 0, len(entries)+3)
		for _, e := range entries {
			options = append(options, e.Label+" · View Details")
		}
		options = append(options, addBook, logOut, quit)

		idx, ok := s.page.Choose("Books", options)
		if !ok {
			s.page.Navigate("")
			return nil
		}

		switch {
		case idx < len(entries):
			s.detailsScreen(ctx, entries[idx].ID)
		case options[idx] == addBook:
			var form books.Form
			form.Title, _ = s.page.Prompt("Title:")
			form.Author, _ = s.page.Prompt("Author:")
			s.books.Submit(ctx, &form)
		case options[idx] == logOut:
			if err := s.api.Forget(); err != nil {
				return err
			}
			s.page.Navigate(page.PathLogin)
		default:
			s.page.Navigate("")
		}
	}
	return nil
}

func (s *Shell) detailsScreen(ctx context.Context, id string) {
	if s.books.View(ctx, id) != page.Done {
		return
	}

	idx, ok := s.page.Choose("Book", []string{"Update Book", "Delete Book", "Add Review", "Back"})
	if !ok {
		return
	}
	switch idx {
	case 0:
		s.books.Update(ctx, id)
	case 1:
		s.books.Delete(ctx, id)
	case 2:
		content, _ := s.page.Prompt("Review:")
		ratingText, _ := s.page.Prompt("Rating (1-5):")
		rating, err := strconv.Atoi(strings.TrimSpace(ratingText))
		if err != nil {
			s.page.Alert("Rating must be a number.")
			return
		}
		s.books.Review(ctx, id, content, rating)
	}
}
