package register

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

	"github.com/ziadkadry99/bookcat/internal/catalog"
	"github.com/ziadkadry99/bookcat/internal/page"
)

type fakeAPI struct {
	err   error
	calls []catalog.Registration
}

func (f *fakeAPI) Register(ctx context.Context, reg catalog.Registration) (*catalog.Token, error) {
	f.calls = append(f.calls, reg)
	if f.err != nil {
		return nil, f.err
	}
	return &catalog.Token{AccessToken: "tok", TokenType: "bearer"}, nil
}

func TestSubmitSuccessNavigatesToLogin(t *testing.T) {
	api := &fakeAPI{}
	p := page.NewScript(page.PathRegister)
	h := NewHandler(api, p, zap.NewNop())
	form := &Form{Username: "ada", Email: "ada@example.com", Password: "pw"}

	assert.Equal(t, page.Done, h.Submit(context.Background(), form))
	assert.Equal(t, []catalog.Registration{{Username: "ada", Email: "ada@example.com", Password: "pw"}}, api.calls)
	assert.Equal(t, []string{"Registration successful!!"}, p.Alerts)
	assert.Equal(t, page.PathLogin, p.Path())
	assert.Equal(t, Form{}, *form)
}

func TestSubmitServerErrorWritesMessage(t *testing.T) {
	api := &fakeAPI{err: &catalog.APIError{StatusCode: 400, Detail: "Username already registered"}}
	p := page.NewScript(page.PathRegister)
	h := NewHandler(api, p, zap.NewNop())
	form := &Form{Username: "ada", Email: "ada@example.com", Password: "pw"}

	assert.Equal(t, page.Failed, h.Submit(context.Background(), form))
	assert.Equal(t, []string{"Username already registered"}, p.Messages)
	assert.Empty(t, p.Alerts)
	assert.Equal(t, page.PathRegister, p.Path())
	assert.Equal(t, "ada", form.Username, "form is kept on failure")
}

func TestSubmitNetworkErrorWritesGenericMessage(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	p := page.NewScript(page.PathRegister)
	h := NewHandler(api, p, zap.NewNop())

	assert.Equal(t, page.Failed, h.Submit(context.Background(), &Form{}))
	assert.Equal(t, []string{"An error occurred during registration."}, p.Messages)
	assert.Empty(t, p.Alerts)
}

func TestSubmitAcceptsNonJSONCreatedBody(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, "created")
	}))
	defer srv.Close()

	client, err := catalog.New(srv.URL)
	require.NoError(t, err)
	p := page.NewScript(page.PathRegister)
	h := NewHandler(client, p, zap.NewNop())
	form := &Form{Username: "ada", Email: "ada@example.com", Password: "pw"}

	assert.Equal(t, page.Done, h.Submit(context.Background(), form))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"Registration successful!!"}, p.Alerts)
	assert.Empty(t, p.Messages)
	assert.Equal(t, page.PathLogin, p.Path())
	assert.Equal(t, Form{}, *form)
}
