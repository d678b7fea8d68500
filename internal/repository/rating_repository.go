package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/store-rating-platform/internal/model"
)

type RatingRepo struct{ DB *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{DB: db} }

// RatedBy identifies the author of a rating on the owner dashboard.
type RatedBy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoreRating is one rating on a store together with its author.
type StoreRating struct {
	ID        string  `json:"id"`
	Value     int     `json:"value"`
	CreatedAt string  `json:"createdAt"`
	User      RatedBy `json:"user"`
}

// Upsert writes the caller's rating for a store. The unique key on
// (user_id, store_id) makes this atomic: two concurrent submissions for the
// same pair race on the key, one inserts and the other degrades to the
// UPDATE arm, never leaving two rows. On overwrite only value changes —
// created_at keeps the time of the first rating, because a re-rate is a
// correction, not a new event. The resulting row is read back so callers
// get the surviving id and timestamps rather than the candidate ones.
func (r *RatingRepo) Upsert(ctx context.Context, userID, storeID string, value int) (model.Rating, error) {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO ratings (id, user_id, store_id, value) VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE value = VALUES(value)`,
		uuid.NewString(), userID, storeID, value)
	if err != nil {
		return model.Rating{}, err
	}

	var out model.Rating
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,store_id,value,created_at,updated_at FROM ratings WHERE user_id=? AND store_id=? LIMIT 1",
		userID, storeID).Scan(&out.ID, &out.UserID, &out.StoreID, &out.Value, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

// AverageForStore returns the arithmetic mean of a store's ratings, or nil
// when it has none. AVG over the empty set is NULL in SQL, which maps
// straight onto the nullable result — no division by zero, no coercion to 0.
func (r *RatingRepo) AverageForStore(ctx context.Context, storeID string) (*float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		"SELECT AVG(value) FROM ratings WHERE store_id=?", storeID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	v := avg.Float64
	return &v, nil
}

// ListForStore returns every rating on a store with its author's identity,
// newest first.
func (r *RatingRepo) ListForStore(ctx context.Context, storeID string) ([]StoreRating, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.value, DATE_FORMAT(r.created_at, '%Y-%m-%dT%TZ') AS created_at,
		        u.id, u.name, u.email
		 FROM ratings r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.store_id = ?
		 ORDER BY r.created_at DESC, r.id DESC`,
		storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoreRating, 0)
	for rows.Next() {
		var sr StoreRating
		if err := rows.Scan(&sr.ID, &sr.Value, &sr.CreatedAt, &sr.User.ID, &sr.User.Name, &sr.User.Email); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// OwnerAverages computes, in one query, the average rating of each owner's
// store. Owners with several assigned stores are resolved the same way the
// dashboard resolves them — the earliest-created store counts, everything
// else is ignored — so the two views can never disagree. Owners whose store
// has no ratings simply do not appear in the map.
func (r *RatingRepo) OwnerAverages(ctx context.Context) (map[string]float64, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.owner_id, AVG(r.value)
		 FROM stores s
		 JOIN ratings r ON r.store_id = s.id
		 WHERE s.owner_id IS NOT NULL
		   AND NOT EXISTS (
		     SELECT 1 FROM stores s2
		     WHERE s2.owner_id = s.owner_id
		       AND (s2.created_at < s.created_at
		            OR (s2.created_at = s.created_at AND s2.id < s.id))
		   )
		 GROUP BY s.owner_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var (
			owner string
			avg   float64
		)
		if err := rows.Scan(&owner, &avg); err != nil {
			return nil, err
		}
		out[owner] = avg
	}
	return out, rows.Err()
}

// CountAll reports the total number of ratings for the metrics endpoint.
func (r *RatingRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM ratings").Scan(&n)
	return n, err
}
