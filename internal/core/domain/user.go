package domain

import "time"

// User represents an account holder.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete marker
}
