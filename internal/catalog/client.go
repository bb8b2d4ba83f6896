// Package catalog is a client for the book catalog REST API.
//
// The client behaves like the browser the catalog pages were written for:
// it issues exactly one request per call, never retries, and replays the
// cookies the backend sets (notably access_token) on every later request.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ziadkadry99/bookcat/internal/progress"
)

const (
	createPath   = "/books/books/"
	bookPath     = "/books/books/"
	loginPath    = "/auth/login"
	registerPath = "/auth/register"

	// DefaultListPath is the list endpoint used unless WithListPath is given.
	DefaultListPath = "/books/read/books/"
)

// CookieStore persists the cookies the backend hands out.
type CookieStore interface {
	Load() ([]*http.Cookie, error)
	Save(cookies []*http.Cookie) error
}

// Client talks to one catalog backend. It is not safe for concurrent use.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	listPath string
	store    CookieStore
	reporter progress.Reporter
	cookies  map[string]*http.Cookie
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithListPath sets the endpoint used by ListBooks.
func WithListPath(path string) Option {
	return func(c *Client) { c.listPath = path }
}

// WithCookieStore loads cookies from store and saves them back whenever the
// backend changes them.
func WithCookieStore(store CookieStore) Option {
	return func(c *Client) { c.store = store }
}

// WithReporter shows progress while each request is in flight.
func WithReporter(r progress.Reporter) Option {
	return func(c *Client) { c.reporter = r }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	c := &Client{
		baseURL:  u,
		http:     &http.Client{},
		listPath: DefaultListPath,
		reporter: progress.Nop{},
		cookies:  make(map[string]*http.Cookie),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store != nil {
		stored, err := c.store.Load()
		if err != nil {
			return nil, fmt.Errorf("loading cookies: %w", err)
		}
		for _, ck := range stored {
			c.cookies[ck.Name] = ck
		}
	}
	return c, nil
}

// ListBooks fetches every book in the catalog.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, c.listPath, nil, "", &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook adds a book. The returned book is empty when the backend
// acknowledges the create without a JSON body.
func (c *Client) CreateBook(ctx context.Context, in BookInput) (*Book, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding book: %w", err)
	}
	var book Book
	if err := c.do(ctx, http.MethodPost, createPath, bytes.NewReader(body), "application/json", optional{&book}); err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBook fetches one book with its reviews.
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodGet, bookPath+url.PathEscape(id), nil, "", &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook replaces a book's title and author.
func (c *Client) UpdateBook(ctx context.Context, id string, in BookInput) (*Book, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding book: %w", err)
	}
	var book Book
	if err := c.do(ctx, http.MethodPut, bookPath+url.PathEscape(id), bytes.NewReader(body), "application/json", &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, bookPath+url.PathEscape(id), nil, "", nil)
}

// AddReview attaches a review to a book.
func (c *Client) AddReview(ctx context.Context, bookID string, in ReviewInput) (*Review, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding review: %w", err)
	}
	var review Review
	path := bookPath + url.PathEscape(bookID) + "/reviews/"
	if err := c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Login submits credentials form-encoded. On success the backend's session
// cookie is kept for later requests.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)
	return c.do(ctx, http.MethodPost, loginPath, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)
}

// Register creates a new user. Like CreateBook, any 2xx counts as success
// whether or not the body holds a token.
func (c *Client) Register(ctx context.Context, reg Registration) (*Token, error) {
	body, err := json.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("encoding registration: %w", err)
	}
	var token Token
	if err := c.do(ctx, http.MethodPost, registerPath, bytes.NewReader(body), "application/json", optional{&token}); err != nil {
		return nil, err
	}
	return &token, nil
}

// Authenticated reports whether an access token cookie is held.
func (c *Client) Authenticated() bool {
	ck, ok := c.cookies["access_token"]
	return ok && ck.Value != ""
}

// Forget drops every held cookie and persists the empty set.
func (c *Client) Forget() error {
	c.cookies = make(map[string]*http.Cookie)
	return c.persist()
}

// optional marks a success body the caller does not depend on; a body that
// fails to decode leaves the target untouched instead of failing the call.
type optional struct{ v any }

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	c.reporter.Start(method + " " + path)
	resp, err := c.http.Do(req)
	c.reporter.Finish()
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := c.absorb(resp.Cookies()); err != nil {
		return err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if opt, ok := out.(optional); ok {
		_ = json.Unmarshal(data, opt.v)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// absorb applies Set-Cookie headers the way a browser would: a cookie with
// an empty value or a negative MaxAge is removed.
func (c *Client) absorb(set []*http.Cookie) error {
	if len(set) == 0 {
		return nil
	}
	for _, ck := range set {
		if ck.Value == "" || ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return c.persist()
}

func (c *Client) persist() error {
	if c.store == nil {
		return nil
	}
	cookies := make([]*http.Cookie, 0, len(c.cookies))
	for _, ck := range c.cookies {
		cookies = append(cookies, ck)
	}
	if err := c.store.Save(cookies); err != nil {
		return fmt.Errorf("saving cookies: %w", err)
	}
	return nil
}
