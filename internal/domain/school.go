package domain

import "time"

// School is the tenant-owned record for a dance school. DisplayName and
// Email mirror the owning User and are kept in sync by profile dual-writes.
type School struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Address     string    `json:"address,omitempty"`
	IBAN        string    `json:"iban,omitempty"`
	PaymentInfo string    `json:"payment_info,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Instructor is a separate record from the User holding the same person's
// tenant-facing data. Profile edits dual-write both records.
type Instructor struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Specialties []string  `json:"specialties"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
