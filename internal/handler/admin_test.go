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

	"github.com/iliyamo/store-rating-platform/internal/repository"
)

func newAdminHandler(t *testing.T) (*AdminHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	h := NewAdminHandler(testCfg,
		repository.NewUserRepo(db),
		repository.NewStoreRepo(db),
		repository.NewRatingRepo(db))
	return h, mock, func() { db.Close() }
}

func TestAdminMetrics(t *testing.T) {
	h, mock, done := newAdminHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(12))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM stores`).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ratings`).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(40))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
	rec := httptest.NewRecorder()
	if err := h.Metrics(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		TotalUsers   int64 `json:"totalUsers"`
		TotalStores  int64 `json:"totalStores"`
		TotalRatings int64 `json:"totalRatings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalUsers != 12 || resp.TotalStores != 3 || resp.TotalRatings != 40 {
		t.Errorf("metrics = %+v", resp)
	}
}

func TestAdminAddUserRejectsUnknownRole(t *testing.T) {
	h, _, done := newAdminHandler(t)
	defer done()

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/admin/users",
		`{"name":"Alice Example","email":"a@b.com","address":"Some Street 1","password":"Valid@123","role":"SUPERADMIN"}`)
	if err := h.AddUser(e.NewContext(req, rec)); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAdminListUsersOwnerAverages(t *testing.T) {
	h, mock, done := newAdminHandler(t)
	defer done()

	now := time.Now().UTC()
	users := sqlmock.NewRows([]string{"id", "name", "email", "address", "password_hash", "role", "created_at", "updated_at"}).
		AddRow("u-1", "Olive Owner", "o@b.com", "Addr", "h", "STORE_OWNER", now, now).
		AddRow("u-2", "Storeless Owner", "s@b.com", "Addr", "h", "STORE_OWNER", now, now)
	mock.ExpectQuery("FROM users WHERE").
		WithArgs("%%", "%%", "%%", "STORE_OWNER").
		WillReturnRows(users)
	// Ratings [4,4,2] on u-1's store; u-2 owns nothing and is absent.
	mock.ExpectQuery("GROUP BY s.owner_id").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "avg"}).
			AddRow("u-1", 10.0/3.0))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?role=STORE_OWNER", nil)
	rec := httptest.NewRecorder()
	if err := h.ListUsers(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp []struct {
		ID                      string   `json:"id"`
		StoreOwnerAverageRating *float64 `json:"storeOwnerAverageRating"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("len = %d, want 2", len(resp))
	}
	if resp[0].StoreOwnerAverageRating == nil {
		t.Fatal("owner with rated store should carry an average")
	}
	if got := *resp[0].StoreOwnerAverageRating; got < 3.33 || got > 3.34 {
		t.Errorf("average = %v, want 3.333…", got)
	}
	if resp[1].StoreOwnerAverageRating != nil {
		t.Error("owner without a store must carry null, not zero")
	}
}

func TestAdminAddStoreDropsUnknownOwner(t *testing.T) {
	h, mock, done := newAdminHandler(t)
	defer done()

	now := time.Now().UTC()
	// Owner lookup misses; the store must still be created, unowned.
	mock.ExpectQuery("FROM users WHERE id=").
		WithArgs("ghost-owner").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO stores").
		WithArgs(sqlmock.AnyArg(), "Corner Shop", nil, "5 Side St", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM stores WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "created_at", "updated_at"}).
			AddRow("s-1", "Corner Shop", nil, "5 Side St", nil, now, now))

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/admin/stores",
		`{"name":"Corner Shop","address":"5 Side St","ownerId":"ghost-owner"}`)
	if err := h.AddStore(e.NewContext(req, rec)); err != nil {
		t.Fatalf("AddStore: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["ownerId"] != nil {
		t.Errorf("ownerId = %v, want null", resp["ownerId"])
	}
}
