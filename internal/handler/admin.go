package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/config"
	"github.com/iliyamo/store-rating-platform/internal/model"
	"github.com/iliyamo/store-rating-platform/internal/repository"
	"github.com/iliyamo/store-rating-platform/internal/utils"
)

// AdminHandler bundles the repositories behind the ADMIN-only endpoints:
// user/store creation, filtered listings and platform metrics.
type AdminHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Stores  *repository.StoreRepo
	Ratings *repository.RatingRepo
}

func NewAdminHandler(cfg config.Config, u *repository.UserRepo, s *repository.StoreRepo, r *repository.RatingRepo) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Users: u, Stores: s, Ratings: r}
}

// ----- DTOs -----

type addUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type addStoreReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID string `json:"ownerId"`
}

type userResp struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

type adminUserRow struct {
	userResp
	StoreOwnerAverageRating *float64 `json:"storeOwnerAverageRating"`
}

type metricsResp struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// AddUser handles POST /api/admin/users. Unlike self-registration the role
// is explicit, so an admin can mint other admins and store owners. The same
// field policy and 409-on-duplicate-email apply.
func (h *AdminHandler) AddUser(c echo.Context) error {
	var req addUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if err := validateProfile(req.Name, req.Email, req.Address, req.Password); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	if !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "role must be one of ADMIN, USER, STORE_OWNER"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, req.Address, req.Password, req.Role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create user failed"})
	}
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address, Role: u.Role})
}

// ListUsers handles GET /api/admin/users. The substring filter spans
// name/email/address; ?role= narrows to an exact role. STORE_OWNER rows are
// annotated with the average rating of their store via one batched query —
// never a lookup per row. Everyone else gets null.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))

	users, err := h.Users.Search(ctx, listQueryFrom(c), role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}

	averages, err := h.Ratings.OwnerAverages(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}

	out := make([]adminUserRow, 0, len(users))
	for _, u := range users {
		row := adminUserRow{userResp: userResp{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address, Role: u.Role}}
		if u.Role == model.RoleStoreOwner {
			if avg, ok := averages[u.ID]; ok {
				v := avg
				row.StoreOwnerAverageRating = &v
			}
		}
		out = append(out, row)
	}
	return c.JSON(http.StatusOK, out)
}

// AddStore handles POST /api/admin/stores. ownerId is a weak reference: one
// that does not resolve to a user is dropped silently and the store is
// created unowned, mirroring how the column itself carries no foreign key.
func (h *AdminHandler) AddStore(c echo.Context) error {
	var req addStoreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if err := utils.ValidateStoreName(req.Name); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	if err := utils.ValidateAddress(req.Address); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ownerID := strings.TrimSpace(req.OwnerID)
	if ownerID != "" {
		if _, err := h.Users.GetByID(ctx, ownerID); err != nil {
			ownerID = "" // nonexistent owner: create the store unowned
		}
	}

	store, err := h.Stores.Create(ctx, strings.TrimSpace(req.Name), req.Email, req.Address, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create store failed"})
	}

	resp := echo.Map{
		"id":      store.ID,
		"name":    store.Name,
		"address": store.Address,
		"email":   nil,
		"ownerId": nil,
	}
	if store.Email.Valid {
		resp["email"] = store.Email.String
	}
	if store.OwnerID.Valid {
		resp["ownerId"] = store.OwnerID.String
	}
	return c.JSON(http.StatusOK, resp)
}

// ListStores handles GET /api/admin/stores: the admin variant of the store
// listing, with the filter extended to the store email and the owning
// user's identity joined in.
func (h *AdminHandler) ListStores(c echo.Context) error {
	rows, err := h.Stores.SearchAdmin(c.Request().Context(), listQueryFrom(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Metrics handles GET /api/admin/metrics: plain totals, no filtering.
func (h *AdminHandler) Metrics(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Users.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}
	stores, err := h.Stores.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}
	ratings, err := h.Ratings.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database error"})
	}

	return c.JSON(http.StatusOK, metricsResp{TotalUsers: users, TotalStores: stores, TotalRatings: ratings})
}
