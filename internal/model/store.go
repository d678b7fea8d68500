package model

import (
	"database/sql"
	"time"
)

// Store represents a retail store that users can rate. A store may be
// assigned to a STORE_OWNER through OwnerID; the column carries no foreign
// key, so a NULL or dangling owner id simply means the store is unowned.
// This struct corresponds to a row in the `stores` table.
//
// Fields:
//  ID        – opaque UUID primary key.
//  Name      – store name (2–120 characters).
//  Email     – optional contact email (nullable).
//  Address   – postal address (up to 400 characters).
//  OwnerID   – user ID of the assigned owner (nullable weak reference).
//  CreatedAt – timestamp when the store was created.
//  UpdatedAt – timestamp of last update.
type Store struct {
	ID        string         // stores.id
	Name      string         // stores.name
	Email     sql.NullString // stores.email
	Address   string         // stores.address
	OwnerID   sql.NullString // stores.owner_id
	CreatedAt time.Time      // stores.created_at
	UpdatedAt time.Time      // stores.updated_at
}
