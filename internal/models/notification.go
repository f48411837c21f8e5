package models

import "time"

// Notification is emitted after a wallet change commits.
type Notification struct {
	UserID      int64       `json:"userId"`
	Transaction Transaction `json:"transaction"`
	CreatedAt   time.Time   `json:"createdAt"`
}
