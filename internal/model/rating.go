package model

import "time"

// Rating links one user to one store with an integer value between 1 and 5.
// The `ratings` table carries a unique key over (user_id, store_id), so a
// user re-rating the same store overwrites the previous value instead of
// inserting a second row. CreatedAt survives overwrites; UpdatedAt moves.
//
// Fields:
//  ID        – opaque UUID primary key.
//  UserID    – author of the rating.
//  StoreID   – rated store.
//  Value     – integer score in [1,5].
//  CreatedAt – when the pair was first rated.
//  UpdatedAt – when the value was last written.
type Rating struct {
	ID        string    // ratings.id
	UserID    string    // ratings.user_id
	StoreID   string    // ratings.store_id
	Value     int       // ratings.value
	CreatedAt time.Time // ratings.created_at
	UpdatedAt time.Time // ratings.updated_at
}
