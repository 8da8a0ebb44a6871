package domain

import "time"

// StatusCheck records that a client checked in with the admin service.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// StatusCheckCreate is the input for a new status check. An empty client
// name is allowed.
type StatusCheckCreate struct {
	ClientName string `json:"client_name" validate:"max=255"`
}
