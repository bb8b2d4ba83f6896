package books

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ziadkadry99/bookcat/internal/catalog"
	"github.com/ziadkadry99/bookcat/internal/page"
)

type fakeAPI struct {
	books  []catalog.Book
	calls  []string
	errs   map[string]error
	inputs []catalog.BookInput
}

func (f *fakeAPI) record(call string) error {
	f.calls = append(f.calls, call)
	return f.errs[call]
}

func (f *fakeAPI) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	return f.books, nil
}

func (f *fakeAPI) CreateBook(ctx context.Context, in catalog.BookInput) (*catalog.Book, error) {
	f.inputs = append(f.inputs, in)
	if err := f.record("create"); err != nil {
		return nil, err
	}
	b := catalog.Book{ID: "new", Title: in.Title, Author: in.Author}
	f.books = append(f.books, b)
	return &b, nil
}

func (f *fakeAPI) GetBook(ctx context.Context, id string) (*catalog.Book, error) {
	if err := f.record("get " + id); err != nil {
		return nil, err
	}
	for _, b := range f.books {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, &catalog.APIError{StatusCode: 404, Detail: "Book not found"}
}

func (f *fakeAPI) UpdateBook(ctx context.Context, id string, in catalog.BookInput) (*catalog.Book, error) {
	f.inputs = append(f.inputs, in)
	if err := f.record("update " + id); err != nil {
		return nil, err
	}
	return &catalog.Book{ID: id, Title: in.Title, Author: in.Author}, nil
}

func (f *fakeAPI) DeleteBook(ctx context.Context, id string) error {
	return f.record("delete " + id)
}

func (f *fakeAPI) AddReview(ctx context.Context, bookID string, in catalog.ReviewInput) (*catalog.Review, error) {
	if err := f.record("review " + bookID); err != nil {
		return nil, err
	}
	return &catalog.Review{ID: "r1", BookID: bookID, Content: in.Content, Rating: in.Rating}, nil
}

func newManager(api *fakeAPI) (*Manager, *page.Script) {
	p := page.NewScript(page.PathBooks)
	return NewManager(api, p, zap.NewNop()), p
}

var errNetwork = errors.New("dial tcp 127.0.0.1:8080: connection refused")

func TestLoadRendersEntries(t *testing.T) {
	api := &fakeAPI{books: []catalog.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert"},
		{ID: "2", Title: "Emma", Author: "Jane Austen"},
	}}
	m, p := newManager(api)

	assert.Equal(t, page.Done, m.Load(context.Background()))
	assert.Equal(t, []page.Entry{
		{ID: "1", Label: "Dune by Frank Herbert"},
		{ID: "2", Label: "Emma by Jane Austen"},
	}, p.List())
	assert.Empty(t, p.Alerts)
}

func TestLoadFailureKeepsListAndOnlyLogs(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	api := &fakeAPI{books: []catalog.Book{{ID: "1", Title: "Dune", Author: "Frank Herbert"}}}
	p := page.NewScript(page.PathBooks)
	m := NewManager(api, p, zap.New(core))

	require.Equal(t, page.Done, m.Load(context.Background()))

	api.errs = map[string]error{"list": &catalog.APIError{StatusCode: 500, Detail: "boom"}}
	assert.Equal(t, page.Failed, m.Load(context.Background()))
	assert.Len(t, p.List(), 1)
	assert.Equal(t, 1, p.ListRenders)
	assert.Empty(t, p.Alerts)
	assert.Equal(t, 1, logs.FilterMessage("Failed to load books").Len())

	api.errs = map[string]error{"list": errNetwork}
	m.Load(context.Background())
	assert.Equal(t, 1, logs.FilterMessage("Error loading books").Len())
}

func TestSubmitCreatesOnceAndRefreshes(t *testing.T) {
	api := &fakeAPI{}
	m, p := newManager(api)
	form := &Form{Title: "Dune", Author: "Frank Herbert"}

	assert.Equal(t, page.Done, m.Submit(context.Background(), form))
	assert.Equal(t, []string{"create", "list"}, api.calls)
	assert.Equal(t, []catalog.BookInput{{Title: "Dune", Author: "Frank Herbert"}}, api.inputs)
	assert.Equal(t, []string{"Book added successfully!"}, p.Alerts)
	assert.Equal(t, 1, p.ListRenders)
	assert.Equal(t, Form{}, *form)
}

func TestSubmitAcceptsNonJSONCreatedBody(t *testing.T) {
	var created, listed int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/books/books/":
			created++
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, "created")
		case r.Method == http.MethodGet && r.URL.Path == catalog.DefaultListPath:
			listed++
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[{"id":"1","title":"Dune","author":"Frank Herbert","reviews":[]}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client, err := catalog.New(srv.URL)
	require.NoError(t, err)
	p := page.NewScript(page.PathBooks)
	m := NewManager(client, p, zap.NewNop())

	assert.Equal(t, page.Done, m.Submit(context.Background(), &Form{Title: "Dune", Author: "Frank Herbert"}))
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, listed)
	assert.Equal(t, []string{"Book added successfully!"}, p.Alerts)
	assert.Equal(t, 1, p.ListRenders)
	assert.Equal(t, []page.Entry{{ID: "1", Label: "Dune by Frank Herbert"}}, p.List())
}

func TestSubmitServerErrorAlertsDetailAndResetsForm(t *testing.T) {
	api := &fakeAPI{errs: map[string]error{"create": &catalog.APIError{StatusCode: 401, Detail: "Not authenticated"}}}
	m, p := newManager(api)
	form := &Form{Title: "Dune", Author: "Frank Herbert"}

	assert.Equal(t, page.Failed, m.Submit(context.Background(), form))
	assert.Equal(t, []string{"Failed to add book: Not authenticated"}, p.Alerts)
	assert.Equal(t, []string{"create"}, api.calls)
	assert.Equal(t, Form{}, *form)
}

func TestSubmitNetworkErrorAlertsGenericText(t *testing.T) {
	api := &fakeAPI{errs: map[string]error{"create": errNetwork}}
	m, p := newManager(api)
	form := &Form{Title: "Dune", Author: "Frank Herbert"}

	assert.Equal(t, page.Failed, m.Submit(context.Background(), form))
	assert.Equal(t, []string{UnexpectedError}, p.Alerts)
	assert.Equal(t, Form{}, *form)
}

func TestViewRendersDetails(t *testing.T) {
	api := &fakeAPI{books: []catalog.Book{{
		ID: "1", Title: "Dune", Author: "Frank Herbert",
		Reviews: []catalog.Review{{ID: "r1"}, {ID: "r2"}},
	}}}
	m, p := newManager(api)

	assert.Equal(t, page.Done, m.View(context.Background(), "1"))
	require.NotNil(t, p.Details)
	assert.Equal(t, page.Details{ID: "1", Title: "Dune", Author: "Frank Herbert", Reviews: 2}, *p.Details)
}

func TestViewFailures(t *testing.T) {
	m, p := newManager(&fakeAPI{})
	assert.Equal(t, page.Failed, m.View(context.Background(), "missing"))
	assert.Equal(t, "Failed to fetch book details", p.LastAlert())

	m, p = newManager(&fakeAPI{errs: map[string]error{"get 1": errNetwork}})
	assert.Equal(t, page.Failed, m.View(context.Background(), "1"))
	assert.Equal(t, UnexpectedError, p.LastAlert())
}

func TestUpdatePromptsThenSaves(t *testing.T) {
	api := &fakeAPI{}
	m, p := newManager(api)
	p.Answers = []string{"Dune Messiah", "Frank Herbert"}

	assert.Equal(t, page.Done, m.Update(context.Background(), "1"))
	assert.Equal(t, []string{"Enter new title:", "Enter new author:"}, p.Prompts)
	assert.Equal(t, []string{"update 1", "list"}, api.calls)
	assert.Equal(t, []catalog.BookInput{{Title: "Dune Messiah", Author: "Frank Herbert"}}, api.inputs)
	assert.Equal(t, []string{"Book updated successfully!"}, p.Alerts)
}

func TestUpdateEmptyInputAborts(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{"empty title", []string{"", "Frank Herbert"}},
		{"empty author", []string{"Dune", ""}},
		{"cancelled", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			m, p := newManager(api)
			p.Answers = tt.answers

			assert.Equal(t, page.Aborted, m.Update(context.Background(), "1"))
			assert.Empty(t, api.calls)
			assert.Len(t, p.Prompts, 2, "both dialogs are shown before validation")
			assert.Equal(t, []string{"Title and author cannot be empty."}, p.Alerts)
		})
	}
}

func TestUpdateServerError(t *testing.T) {
	api := &fakeAPI{errs: map[string]error{"update 9": &catalog.APIError{StatusCode: 404, Detail: "Book not found"}}}
	m, p := newManager(api)
	p.Answers = []string{"t", "a"}

	assert.Equal(t, page.Failed, m.Update(context.Background(), "9"))
	assert.Equal(t, []string{"Failed to update book: Book not found"}, p.Alerts)
	assert.Equal(t, []string{"update 9"}, api.calls)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	api := &fakeAPI{}
	m, p := newManager(api)
	p.Confirms = []bool{false}

	assert.Equal(t, page.Aborted, m.Delete(context.Background(), "1"))
	assert.Empty(t, api.calls)
	assert.Empty(t, p.Alerts)
	assert.Equal(t, []string{"Are you sure you want to delete this book?"}, p.Prompts)
}

func TestDeleteConfirmed(t *testing.T) {
	api := &fakeAPI{}
	m, p := newManager(api)
	p.Confirms = []bool{true}

	assert.Equal(t, page.Done, m.Delete(context.Background(), "1"))
	assert.Equal(t, []string{"delete 1", "list"}, api.calls)
	assert.Equal(t, []string{"Book deleted successfully!"}, p.Alerts)
}

func TestDeleteServerError(t *testing.T) {
	api := &fakeAPI{errs: map[string]error{"delete 1": &catalog.APIError{StatusCode: 404, Detail: "Book not found"}}}
	m, p := newManager(api)
	p.Confirms = []bool{true}

	assert.Equal(t, page.Failed, m.Delete(context.Background(), "1"))
	assert.Equal(t, []string{"Failed to delete book: Book not found"}, p.Alerts)
}

func TestReview(t *testing.T) {
	api := &fakeAPI{books: []catalog.Book{{ID: "1", Title: "Dune", Author: "Frank Herbert"}}}
	m, p := newManager(api)

	assert.Equal(t, page.Aborted, m.Review(context.Background(), "1", "", 5))
	assert.Empty(t, api.calls)

	assert.Equal(t, page.Done, m.Review(context.Background(), "1", "Spice!", 5))
	assert.Equal(t, []string{"review 1", "get 1"}, api.calls)
	assert.Equal(t, "Review added successfully!", p.LastAlert())
}
