package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/repository"
)

// OwnerHandler serves the STORE_OWNER dashboard.
type OwnerHandler struct {
	Stores  *repository.StoreRepo
	Ratings *repository.RatingRepo
}

func NewOwnerHandler(s *repository.StoreRepo, r *repository.RatingRepo) *OwnerHandler {
	return &OwnerHandler{Stores: s, Ratings: r}
}

type ownerStorePart struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ownerDashboardResp struct {
	Store   ownerStorePart           `json:"store"`
	Average *float64                 `json:"average"`
	Ratings []repository.StoreRating `json:"ratings"`
}

// Dashboard handles GET /api/owner/ratings. It resolves the caller's single
// store (earliest-created wins if data holds more than one) and returns its
// identity, its average rating (null when unrated) and every rating on it
// with the author's id/name/email, newest first. 404 when the caller has no
// store assigned.
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	ctx := c.Request().Context()

	store, err := h.Stores.FindByOwner(ctx, ident.ID)
	if err != nil {
		if err == repository.ErrNoStoreForOwner {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no store assigned to owner"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}

	avg, err := h.Ratings.AverageForStore(ctx, store.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}
	ratings, err := h.Ratings.ListForStore(ctx, store.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}

	return c.JSON(http.StatusOK, ownerDashboardResp{
		Store:   ownerStorePart{ID: store.ID, Name: store.Name},
		Average: avg,
		Ratings: ratings,
	})
}
