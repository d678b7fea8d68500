// Package queue defines message payloads exchanged over the message broker.
package queue

// RatingSubmittedEvent is published after a rating upsert succeeds. It
// carries enough information for downstream consumers to log or notify the
// store owner without querying the primary database. Updated is true when
// the submission overwrote a previous value instead of creating a new row.
type RatingSubmittedEvent struct {
	RatingID    string `json:"rating_id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	StoreID     string `json:"store_id"`
	StoreName   string `json:"store_name"`
	Value       int    `json:"value"`
	Updated     bool   `json:"updated"`
	SubmittedAt string `json:"submitted_at"`
}
