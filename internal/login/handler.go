// Package login handles the login page.
package login

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/bookcat/internal/catalog"
	"github.com/ziadkadry99/bookcat/internal/page"
)

// API is the part of the catalog client the login page needs.
type API interface {
	Login(ctx context.Context, creds catalog.Credentials) error
}

// Handler submits the login form.
type Handler struct {
	api    API
	page   page.Page
	logger *zap.Logger
}

// NewHandler returns a Handler rendering into p.
func NewHandler(api API, p page.Page, logger *zap.Logger) *Handler {
	return &Handler{api: api, page: p, logger: logger}
}

// Submit posts the credentials. Success navigates to the books page;
// failure alerts and stays put.
func (h *Handler) Submit(ctx context.Context, creds catalog.Credentials) page.Outcome {
	if err := h.api.Login(ctx, creds); err != nil {
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) {
			h.logger.Error("Error during login", zap.String("detail", apiErr.Detail))
			h.page.Alert(fmt.Sprintf("Error during login: %s", apiErr.Detail))
			return page.Failed
		}
		h.logger.Error("Error during login", zap.Error(err))
		h.page.Alert("An unexpected error occurred. Please try again later.")
		return page.Failed
	}

	h.logger.Info("Login successful, redirecting to books page...")
	h.page.Alert("Login successful!")
	h.page.Navigate(page.PathBooks)
	return page.Done
}
