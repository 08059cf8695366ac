package repository

import (
	"encoding/json"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every table the
// repositories own. Used by cmd/seed and by sqlite-backed tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRow{},
		&identityRow{},
		&membershipRow{},
		&schoolRow{},
		&instructorRow{},
		&courseRow{},
		&bookingRow{},
		&ticketRow{},
	)
}

// rowFor maps a table name to an empty row model for batch application.
func rowFor(table string) any {
	switch table {
	case "users":
		return &userRow{}
	case "identities":
		return &identityRow{}
	case "memberships":
		return &membershipRow{}
	case "schools":
		return &schoolRow{}
	case "instructors":
		return &instructorRow{}
	case "courses":
		return &courseRow{}
	case "bookings":
		return &bookingRow{}
	case "tickets":
		return &ticketRow{}
	}
	return nil
}

// Set-valued fields persist as JSON arrays in text columns.

func encodeIDs(ids []int64) string {
	if len(ids) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

func encodeJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
