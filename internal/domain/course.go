package domain

import "time"

// ScheduleSlot is one recurring meeting of a course.
type ScheduleSlot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

type Course struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name" validate:"required"`
	SchoolID     int64          `json:"school_id"`
	InstructorID int64          `json:"instructor_id"`
	Schedule     []ScheduleSlot `json:"schedule"`
	StudentIDs   []int64        `json:"student_ids"`
	// CurrentParticipants is derivable from StudentIDs but persisted for
	// listing queries; decrements floor at 0.
	CurrentParticipants int       `json:"current_participants"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
