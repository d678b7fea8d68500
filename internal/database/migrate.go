package database

import (
	"context"
	"database/sql"
)

// Schema statements executed in order by Migrate. The unique key on
// ratings(user_id, store_id) is what makes the rating upsert atomic across
// concurrent server processes; users.email carries the registration
// uniqueness. stores.owner_id is a weak reference on purpose: no foreign
// key, NULL or dangling means unowned.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36)     NOT NULL,
		name          VARCHAR(60)  NOT NULL,
		email         VARCHAR(255) NOT NULL,
		address       VARCHAR(400) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role          ENUM('ADMIN','USER','STORE_OWNER') NOT NULL DEFAULT 'USER',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS stores (
		id         CHAR(36)     NOT NULL,
		name       VARCHAR(120) NOT NULL,
		email      VARCHAR(255) NULL,
		address    VARCHAR(400) NOT NULL,
		owner_id   CHAR(36)     NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_stores_owner (owner_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS ratings (
		id         CHAR(36) NOT NULL,
		user_id    CHAR(36) NOT NULL,
		store_id   CHAR(36) NOT NULL,
		value      TINYINT  NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_ratings_user_store (user_id, store_id),
		KEY idx_ratings_store (store_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the users, stores and ratings tables when they do not
// already exist. Statements are idempotent so the command can run on every
// deploy.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
