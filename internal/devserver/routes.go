package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey struct{}

// RegisterRoutes mounts the catalog API routes.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Book Catalog API"})
	})
	r.Head("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Get("/verify", s.handleVerify)
	})

	r.Route("/books", func(r chi.Router) {
		r.Use(s.requireUser)
		r.Post("/books/", s.handleCreateBook)
		r.Get("/books/books/", s.handleListBooks)
		r.Get("/read/books/", s.handleListBooks)
		r.Get("/books/{id}", s.handleGetBook)
		r.Put("/books/{id}", s.handleUpdateBook)
		r.Delete("/books/{id}", s.handleDeleteBook)
		r.Post("/books/{id}/reviews/", s.handleCreateReview)
		r.Get("/reviews/", s.handleListReviews)
		r.Get("/reviews/{id}", s.handleGetReview)
		r.Put("/reviews/{id}", s.handleUpdateReview)
		r.Delete("/reviews/{id}", s.handleDeleteReview)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// requireUser resolves the access_token cookie to a user.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("access_token")
		if err != nil || ck.Value == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		username, err := s.tokens.Subject(ck.Value)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		user, err := s.store.UserByUsername(r.Context(), username)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
	})
}

func currentUser(r *http.Request) *User {
	u, _ := r.Context().Value(ctxKey{}).(*User)
	return u
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	in.Username, in.Email = normalize(in.Username), normalize(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "username, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		s.logger.Error("Registration error", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user, err := s.store.CreateUser(r.Context(), in.Username, in.Email, string(hash))
	if errors.Is(err, errUsernameTaken) || errors.Is(err, errEmailTaken) {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("Registration error", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	verification, err := s.tokens.Issue(user.Email, "", 24*time.Hour)
	if err != nil {
		s.logger.Error("Registration error", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.logger.Info("Verification link issued",
		zap.String("username", user.Username),
		zap.String("link", "/auth/verify?token="+verification))

	access, err := s.tokens.Issue(user.Username, "user", 0)
	if err != nil {
		s.logger.Error("Registration error", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusCreated, Token{AccessToken: access, TokenType: "bearer"})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	email, err := s.tokens.Subject(r.URL.Query().Get("token"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid verification token")
		return
	}

	already, err := s.store.ActivateByEmail(r.Context(), email)
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.logger.Error("Verification error", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if already {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Email already verified"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid form body")
		return
	}
	username := normalize(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	user, err := s.store.UserByUsername(r.Context(), username)
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	}
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	token, err := s.tokens.Issue(user.Username, role, 0)
	if err != nil {
		s.logger.Error("Login error", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

func decodeBook(w http.ResponseWriter, r *http.Request) (BookInput, bool) {
	var in BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return in, false
	}
	in.Title, in.Author = normalize(in.Title), normalize(in.Author)
	if in.Title == "" || in.Author == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "title and author are required")
		return in, false
	}
	return in, true
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBook(w, r)
	if !ok {
		return
	}
	book, err := s.store.CreateBook(r.Context(), in)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.ListBooks(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	if books == nil {
		books = []Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.store.GetBook(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "Book not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBook(w, r)
	if !ok {
		return
	}
	book, err := s.store.UpdateBook(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "Book not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteBook(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "Book not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "book is deleted successfully")
}

func decodeReview(w http.ResponseWriter, r *http.Request) (ReviewInput, bool) {
	var in ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return in, false
	}
	if normalize(in.Content) == "" || in.Rating < 1 || in.Rating > 5 {
		writeDetail(w, http.StatusUnprocessableEntity, "content is required and rating must be between 1 and 5")
		return in, false
	}
	return in, true
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeReview(w, r)
	if !ok {
		return
	}

	review, err := s.store.CreateReview(r.Context(), chi.URLParam(r, "id"), currentUser(r).ID, in)
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "Book not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.store.ListReviews(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	review, err := s.store.GetReview(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "Review not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeReview(w, r)
	if !ok {
		return
	}
	review, err := s.store.UpdateReview(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "Review not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// handleDeleteReview answers 200 with a null body, as the catalog backend does.
func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteReview(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "Review not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("Request failed", zap.Error(err))
	writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}
