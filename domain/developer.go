package domain

import "time"

// Developer is the elevated record created when a user redeems an
// admin-scoped grant. At most one developer record exists per user; the
// store enforces this with a unique index on user_id so that concurrent
// promotions collapse to one record.
type Developer struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id"       json:"user_id"`
	AppIDs    []string  `bson:"apps"          json:"apps"`
	CreatedAt time.Time `bson:"created_at"    json:"created_at"`
}
