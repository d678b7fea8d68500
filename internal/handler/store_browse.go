// Package handler exposes HTTP handlers for the platform's endpoints. This
// file defines the store listing available to every authenticated user:
// stores filtered by a free-text query, annotated with the overall average
// rating and the caller's own rating.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/repository"
)

// StoreHandler serves the authenticated store browse endpoint.
type StoreHandler struct {
	Stores *repository.StoreRepo
}

func NewStoreHandler(s *repository.StoreRepo) *StoreHandler {
	return &StoreHandler{Stores: s}
}

// listQueryFrom builds the explicit per-request listing parameters from the
// query string. Validation of sort field/order happens in the repository
// against its whitelist; nothing from here reaches SQL as raw text.
func listQueryFrom(c echo.Context) repository.ListQuery {
	return repository.ListQuery{
		Filter:    c.QueryParam("q"),
		SortField: c.QueryParam("sort"),
		SortOrder: c.QueryParam("order"),
	}
}

// ListStores handles GET /api/stores. Matching is a case-insensitive
// substring test against name or address; rows come back sorted by the
// requested whitelisted field and carry overallRating (null when unrated)
// plus the caller's own userRating (null when they never rated the store).
func (h *StoreHandler) ListStores(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	rows, err := h.Stores.Browse(c.Request().Context(), ident.ID, listQueryFrom(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}
	return c.JSON(http.StatusOK, rows)
}
