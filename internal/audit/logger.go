// Package audit records security-relevant issuance events as structured
// log entries. The trail shares the process log stream; shipping it to a
// separate sink is a deployment concern.
package audit

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Event is one entry in the audit trail.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	UserID    string    `json:"user_id,omitempty"`
	ClientID  string    `json:"client_id,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// Actions recorded in the trail.
const (
	ActionAuthorize     = "authorize"
	ActionExchangeCode  = "exchange_code"
	ActionLogin         = "login"
	ActionRegister      = "register"
	ActionDevPromotion  = "dev_promotion"
	ActionTokenValidate = "token_validate"
)

// Log records an audit event. A nil err marks the event successful.
func Log(action, userID, clientID string, err error) {
	event := Event{
		Timestamp: time.Now().UTC(),
		Action:    action,
		UserID:    userID,
		ClientID:  clientID,
		Success:   err == nil,
	}
	if err != nil {
		event.Error = err.Error()
	}

	level := zerolog.InfoLevel
	if err != nil {
		level = zerolog.WarnLevel
	}
	log.WithLevel(level).
		Interface("audit", event).
		Msg("audit event")
}
