package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreFindByOwnerNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM stores WHERE owner_id=").
		WithArgs("u-1").
		WillReturnError(sql.ErrNoRows)

	r := NewStoreRepo(db)
	if _, err := r.FindByOwner(context.Background(), "u-1"); err != ErrNoStoreForOwner {
		t.Errorf("got %v, want ErrNoStoreForOwner", err)
	}
}

func TestStoreGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM stores WHERE id=").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	r := NewStoreRepo(db)
	if _, err := r.GetByID(context.Background(), "nope"); err != ErrStoreNotFound {
		t.Errorf("got %v, want ErrStoreNotFound", err)
	}
}

func TestStoreBrowseAnnotations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "address", "overall_rating", "user_rating"}).
		AddRow("s-1", "Green Grocery", "12 Market Road", 3.0, 4).
		AddRow("s-2", "Unrated Corner", "9 Quiet Lane", nil, nil)
	mock.ExpectQuery("LEFT JOIN ratings r ON r.store_id = s.id").
		WithArgs("u-1", "%%", "%%").
		WillReturnRows(rows)

	r := NewStoreRepo(db)
	out, err := r.Browse(context.Background(), "u-1", ListQuery{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].OverallRating == nil || *out[0].OverallRating != 3.0 {
		t.Errorf("rated store overall = %v, want 3.0", out[0].OverallRating)
	}
	if out[0].UserRating == nil || *out[0].UserRating != 4 {
		t.Errorf("caller rating = %v, want 4", out[0].UserRating)
	}
	// An unrated store surfaces nulls, never zeroes.
	if out[1].OverallRating != nil || out[1].UserRating != nil {
		t.Errorf("unrated store should have nil annotations: %+v", out[1])
	}
}

func TestStoreSearchAdminOwnerJoin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "owner_name", "owner_email", "rating"}).
		AddRow("s-1", "Green Grocery", "green@store.com", "12 Market Road", "u-7", "Olive Owner", "o@b.com", 4.5).
		AddRow("s-2", "Orphan Store", nil, "1 Nowhere", nil, nil, nil, nil)
	mock.ExpectQuery("LEFT JOIN users u ON u.id = s.owner_id").
		WithArgs("%gro%", "%gro%", "%gro%").
		WillReturnRows(rows)

	r := NewStoreRepo(db)
	out, err := r.SearchAdmin(context.Background(), ListQuery{Filter: "gro"})
	if err != nil {
		t.Fatalf("SearchAdmin: %v", err)
	}
	if out[0].Owner == nil || out[0].Owner.Name != "Olive Owner" {
		t.Errorf("owner join missing: %+v", out[0])
	}
	if out[1].Owner != nil || out[1].Email != nil || out[1].Rating != nil {
		t.Errorf("orphan store should carry nils: %+v", out[1])
	}
}

func TestStoreCreateNullableFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO stores").
		WithArgs(sqlmock.AnyArg(), "Corner Shop", nil, "5 Side St", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM stores WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "created_at", "updated_at"}).
			AddRow("s-1", "Corner Shop", nil, "5 Side St", nil, now, now))

	r := NewStoreRepo(db)
	s, err := r.Create(context.Background(), "Corner Shop", "", "5 Side St", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Email.Valid || s.OwnerID.Valid {
		t.Errorf("empty email/owner should be NULL: %+v", s)
	}
}
