package membership

// TenantRef names the tenant a user is being linked into: a school, an
// instructor, or both at once.
type TenantRef struct {
	SchoolID     *int64 `json:"school_id,omitempty"`
	InstructorID *int64 `json:"instructor_id,omitempty"`
}

type LinkRequest struct {
	Email     string    `json:"email" validate:"required,email"`
	Tenant    TenantRef `json:"tenant"`
	CourseIDs []int64   `json:"course_ids"`
}

type DetachRequest struct {
	SchoolID int64 `json:"school_id" validate:"required"`
}

type AssignCoursesRequest struct {
	CourseIDs []int64 `json:"course_ids"`
}
