package models

import "time"

// Friend mirrors a row in the friends table.
type Friend struct {
	ConnectionID   string    `json:"connectionID"`
	UserID         string    `json:"userID"`
	FriendID       string    `json:"friendID"`
	Status         string    `json:"status"`
	ConnectionDate time.Time `json:"connectionDate"`
}
