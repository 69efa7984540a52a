package domain

import "time"

// FriendStatus is the state of a friendship connection.
type FriendStatus string

const (
	FriendPending  FriendStatus = "PENDING"
	FriendAccepted FriendStatus = "ACCEPTED"
	FriendRejected FriendStatus = "REJECTED"
)

// Friend links two users. UserID is the requester, FriendID the recipient.
type Friend struct {
	ConnectionID   string       `json:"connectionID"`
	UserID         string       `json:"userID"`
	FriendID       string       `json:"friendID"`
	Status         FriendStatus `json:"status"`
	ConnectionDate time.Time    `json:"connectionDate"`
}
