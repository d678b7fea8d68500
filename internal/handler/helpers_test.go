package handler

import "errors"

// sqlErrDuplicate mimics the MySQL duplicate-key error the driver returns
// when the unique email index rejects an insert.
func sqlErrDuplicate() error {
	return errors.New("Error 1062 (23000): Duplicate entry 'a@b.com' for key 'users.uq_users_email'")
}
