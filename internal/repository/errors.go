// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios: ErrStoreNotFound maps
// to a 404 when a rating targets an unknown store, and ErrNoStoreForOwner
// maps to a 404 on the owner dashboard when the caller has no store
// assigned to them.
package repository

import "errors"

// ErrStoreNotFound is returned when a store id does not resolve to a row.
var ErrStoreNotFound = errors.New("store not found")

// ErrNoStoreForOwner is returned when an owner-scoped lookup finds no store
// assigned to the given user.
var ErrNoStoreForOwner = errors.New("no store assigned to owner")
