package domain

import "time"

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleSchool     Role = "school"
	RoleAdmin      Role = "admin"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelProfessional Level = "professional"
)

// User is the profile record for every participant in the marketplace.
// The relational fields exist in two generations: a legacy scalar
// (SchoolID, InstructorID) and the current set form (SchoolIDs, CourseIDs).
// The scalar school pointer is a derived mirror of the set, never a second
// source of truth.
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Roles       []Role `json:"roles"`
	Level       Level  `json:"level,omitempty"`

	SchoolID     *int64  `json:"school_id,omitempty"`
	SchoolIDs    []int64 `json:"school_ids"`
	InstructorID *int64  `json:"instructor_id,omitempty"`
	CourseIDs    []int64 `json:"course_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// MemberOfSchool reports membership against the normalized school set,
// folding in the legacy scalar pointer for records the migration has not
// touched yet.
func (u *User) MemberOfSchool(schoolID int64) bool {
	if ContainsID(u.SchoolIDs, schoolID) {
		return true
	}
	return u.SchoolID != nil && *u.SchoolID == schoolID
}

// Identity is the credential record behind a User. It lives in its own
// table so that profile deletion and credential deletion are separate,
// ordered steps.
type Identity struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Membership is one row of the user/school join journal. The composite
// unique index on (user_id, school_id) is what makes concurrent duplicate
// links fail at the store instead of racing past the read-then-check.
type Membership struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	SchoolID  int64     `json:"school_id"`
	CreatedAt time.Time `json:"created_at"`
}
