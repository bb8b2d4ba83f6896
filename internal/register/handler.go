// Package register handles the registration page.
package register

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ziadkadry99/bookcat/internal/catalog"
	"github.com/ziadkadry99/bookcat/internal/page"
)

// API is the part of the catalog client the registration page needs.
type API interface {
	Register(ctx context.Context, reg catalog.Registration) (*catalog.Token, error)
}

// Form is the registration form.
type Form struct {
	Username string
	Email    string
	Password string
}

// Reset clears the form fields.
func (f *Form) Reset() {
	*f = Form{}
}

// Handler submits the registration form.
type Handler struct {
	api    API
	page   page.Page
	logger *zap.Logger
}

// NewHandler returns a Handler rendering into p.
func NewHandler(api API, p page.Page, logger *zap.Logger) *Handler {
	return &Handler{api: api, page: p, logger: logger}
}

// Submit posts the form. Success alerts and navigates to the login page;
// failures are written to the message element instead of an alert.
func (h *Handler) Submit(ctx context.Context, form *Form) page.Outcome {
	_, err := h.api.Register(ctx, catalog.Registration{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) {
			h.page.SetMessage(apiErr.Detail)
			return page.Failed
		}
		h.logger.Error("Registration request failed", zap.Error(err))
		h.page.SetMessage("An error occurred during registration.")
		return page.Failed
	}

	h.page.Alert("Registration successful!!")
	h.page.Navigate(page.PathLogin)
	form.Reset()
	return page.Done
}
