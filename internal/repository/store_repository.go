package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/store-rating-platform/internal/model"
)

type StoreRepo struct{ DB *sql.DB }

func NewStoreRepo(db *sql.DB) *StoreRepo { return &StoreRepo{DB: db} }

// BrowseRow is one entry of the user-facing store listing: the store plus
// its overall average and the caller's own rating. Both annotations are nil
// when absent — an unrated store has no average, not a zero one.
type BrowseRow struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	OverallRating *float64 `json:"overallRating"`
	UserRating    *int     `json:"userRating"`
}

// OwnerInfo identifies the user a store is assigned to in admin listings.
type OwnerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminStoreRow is one entry of the admin store listing. Owner is nil when
// the store is unowned or its owner id dangles.
type AdminStoreRow struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Email   *string    `json:"email"`
	Address string     `json:"address"`
	Owner   *OwnerInfo `json:"owner"`
	Rating  *float64   `json:"rating"`
}

// Create inserts a store with a fresh UUID. email and ownerID may be empty,
// in which case NULL is stored.
func (r *StoreRepo) Create(ctx context.Context, name, email, address, ownerID string) (model.Store, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO stores (id, name, email, address, owner_id) VALUES (?,?,?,?,?)",
		id, name, nullable(email), address, nullable(ownerID))
	if err != nil {
		return model.Store{}, err
	}
	return r.GetByID(ctx, id)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: strings.TrimSpace(s) != ""}
}

// GetByID fetches a store row, mapping sql.ErrNoRows to ErrStoreNotFound.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (model.Store, error) {
	var s model.Store
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,address,owner_id,created_at,updated_at FROM stores WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Name, &s.Email, &s.Address, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Store{}, ErrStoreNotFound
	}
	return s, err
}

// FindByOwner resolves the single store assigned to a user. The schema does
// not forbid assigning several stores to one owner, so the earliest-created
// store (id as tie-break) wins deterministically. Returns ErrNoStoreForOwner
// when none exists.
func (r *StoreRepo) FindByOwner(ctx context.Context, ownerID string) (model.Store, error) {
	var s model.Store
	err := r.DB.QueryRowContext(ctx,
		`SELECT id,name,email,address,owner_id,created_at,updated_at
		 FROM stores WHERE owner_id=?
		 ORDER BY created_at ASC, id ASC LIMIT 1`,
		ownerID).Scan(&s.ID, &s.Name, &s.Email, &s.Address, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Store{}, ErrNoStoreForOwner
	}
	return s, err
}

// Browse returns the store listing every authenticated user sees: a
// substring filter over name and address, rating aggregates joined in a
// single query, and the caller's own rating pulled out of the same join.
func (r *StoreRepo) Browse(ctx context.Context, callerID string, q ListQuery) ([]BrowseRow, error) {
	col, dir := q.orderBy()
	like := q.like()

	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.name, s.address,
		        AVG(r.value) AS overall_rating,
		        MAX(CASE WHEN r.user_id = ? THEN r.value END) AS user_rating
		 FROM stores s
		 LEFT JOIN ratings r ON r.store_id = s.id
		 WHERE (LOWER(s.name) LIKE ? OR LOWER(s.address) LIKE ?)
		 GROUP BY s.id, s.name, s.email, s.address
		 ORDER BY s.`+col+` `+dir,
		callerID, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BrowseRow, 0)
	for rows.Next() {
		var (
			row     BrowseRow
			overall sql.NullFloat64
			own     sql.NullInt64
		)
		if err := rows.Scan(&row.ID, &row.Name, &row.Address, &overall, &own); err != nil {
			return nil, err
		}
		if overall.Valid {
			v := overall.Float64
			row.OverallRating = &v
		}
		if own.Valid {
			v := int(own.Int64)
			row.UserRating = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SearchAdmin returns the admin store listing: the filter additionally
// matches the store email, and each row joins the owning user's identity.
func (r *StoreRepo) SearchAdmin(ctx context.Context, q ListQuery) ([]AdminStoreRow, error) {
	col, dir := q.orderBy()
	like := q.like()

	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.name, s.email, s.address,
		        u.id AS owner_id, u.name AS owner_name, u.email AS owner_email,
		        AVG(r.value) AS rating
		 FROM stores s
		 LEFT JOIN users u ON u.id = s.owner_id
		 LEFT JOIN ratings r ON r.store_id = s.id
		 WHERE (LOWER(s.name) LIKE ? OR LOWER(COALESCE(s.email,'')) LIKE ? OR LOWER(s.address) LIKE ?)
		 GROUP BY s.id, s.name, s.email, s.address, u.id, u.name, u.email
		 ORDER BY s.`+col+` `+dir,
		like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AdminStoreRow, 0)
	for rows.Next() {
		var (
			row        AdminStoreRow
			email      sql.NullString
			oID, oName sql.NullString
			oEmail     sql.NullString
			rating     sql.NullFloat64
		)
		if err := rows.Scan(&row.ID, &row.Name, &email, &row.Address, &oID, &oName, &oEmail, &rating); err != nil {
			return nil, err
		}
		if email.Valid {
			v := email.String
			row.Email = &v
		}
		if oID.Valid {
			row.Owner = &OwnerInfo{ID: oID.String, Name: oName.String, Email: oEmail.String}
		}
		if rating.Valid {
			v := rating.Float64
			row.Rating = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CountAll reports the total number of stores for the metrics endpoint.
func (r *StoreRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM stores").Scan(&n)
	return n, err
}
