package domain

import "time"

// App represents a registered third-party application (OAuth client).
//
// The client secret is stored and compared verbatim; the client id is
// unique and immutable after creation. Apps are provisioned outside the
// issuance core and are read-only to it.
type App struct {
	ID           string    `bson:"_id,omitempty"  json:"id"`
	Name         string    `bson:"name"           json:"name"`
	ClientID     string    `bson:"client_id"      json:"client_id"`
	ClientSecret string    `bson:"client_secret"  json:"-"`
	OwnerID      string    `bson:"owner_id"       json:"owner_id"`
	CreatedAt    time.Time `bson:"created_at"     json:"created_at"`
}
