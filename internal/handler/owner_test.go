package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/repository"
)

func newOwnerHandler(t *testing.T) (*OwnerHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	h := NewOwnerHandler(repository.NewStoreRepo(db), repository.NewRatingRepo(db))
	return h, mock, func() { db.Close() }
}

func TestOwnerDashboardNoStore(t *testing.T) {
	h, mock, done := newOwnerHandler(t)
	defer done()

	mock.ExpectQuery("FROM stores WHERE owner_id=").
		WithArgs("u-7").
		WillReturnError(sql.ErrNoRows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/owner/ratings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", middleware.Identity{ID: "u-7", Role: "STORE_OWNER"})

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestOwnerDashboardAggregates(t *testing.T) {
	h, mock, done := newOwnerHandler(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM stores WHERE owner_id=").
		WithArgs("u-7").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "created_at", "updated_at"}).
			AddRow("s-1", "Green Grocery", nil, "12 Market Road", "u-7", now, now))
	mock.ExpectQuery(`SELECT AVG\(value\) FROM ratings`).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(3.0))
	mock.ExpectQuery("JOIN users u ON u.id = r.user_id").
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "value", "created_at", "uid", "uname", "uemail"}).
			AddRow("r-2", 2, "2025-06-02T10:00:00Z", "u-2", "Bob", "b@x.com").
			AddRow("r-1", 4, "2025-06-01T10:00:00Z", "u-1", "Alice", "a@x.com"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/owner/ratings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", middleware.Identity{ID: "u-7", Role: "STORE_OWNER"})

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Store   struct{ ID, Name string }
		Average *float64
		Ratings []struct {
			ID    string
			Value int
			User  struct{ Name string }
		}
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Store.ID != "s-1" || resp.Average == nil || *resp.Average != 3.0 {
		t.Errorf("store/average wrong: %+v", resp)
	}
	// Newest first.
	if len(resp.Ratings) != 2 || resp.Ratings[0].ID != "r-2" || resp.Ratings[0].User.Name != "Bob" {
		t.Errorf("ratings wrong: %+v", resp.Ratings)
	}
}
