package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/queue"
	"github.com/iliyamo/store-rating-platform/internal/repository"
	queue_publisher "github.com/iliyamo/store-rating-platform/internal/service"
	"github.com/iliyamo/store-rating-platform/internal/utils"
)

// RatingHandler serves rating submission for USER callers. The handler is
// role-agnostic — the router gates it behind RequireRole(USER).
type RatingHandler struct {
	Stores  *repository.StoreRepo
	Ratings *repository.RatingRepo
}

func NewRatingHandler(s *repository.StoreRepo, r *repository.RatingRepo) *RatingHandler {
	return &RatingHandler{Stores: s, Ratings: r}
}

type submitRatingReq struct {
	StoreID string `json:"storeId"`
	Value   int    `json:"value"`
}

type ratingResp struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StoreID   string    `json:"storeId"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubmitRating handles POST /api/ratings. One rating per (user, store):
// submitting again overwrites the previous value in place, so the call is
// safe to retry. A rating.submitted event goes out after the write; losing
// it only costs a log line, so publish failures are swallowed.
func (h *RatingHandler) SubmitRating(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req submitRatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.StoreID = strings.TrimSpace(req.StoreID)
	if req.StoreID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "storeId is required"})
	}
	if err := utils.ValidateRatingValue(req.Value); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	store, err := h.Stores.GetByID(ctx, req.StoreID)
	if err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}

	rating, err := h.Ratings.Upsert(ctx, ident.ID, store.ID, req.Value)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "save rating failed"})
	}

	_ = queue_publisher.PublishRatingSubmitted(ctx, queue.RatingSubmittedEvent{
		RatingID:    rating.ID,
		UserID:      ident.ID,
		UserName:    ident.Name,
		StoreID:     store.ID,
		StoreName:   store.Name,
		Value:       rating.Value,
		Updated:     rating.UpdatedAt.After(rating.CreatedAt),
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, ratingResp{
		ID:        rating.ID,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		Value:     rating.Value,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	})
}
