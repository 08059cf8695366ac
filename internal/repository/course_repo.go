package repository

import (
	"context"
	"encoding/json"
	"time"

	"dancehub/internal/domain"

	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

type courseRow struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	SchoolID     int64     `gorm:"column:school_id;index"`
	InstructorID int64     `gorm:"column:instructor_id;index"`
	Schedule     string    `gorm:"column:schedule"`
	StudentIDs   string    `gorm:"column:student_ids"`
	Participants int       `gorm:"column:current_participants"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (courseRow) TableName() string { return "courses" }

func toDomainCourse(m courseRow) *domain.Course {
	var schedule []domain.ScheduleSlot
	if m.Schedule != "" {
		_ = json.Unmarshal([]byte(m.Schedule), &schedule)
	}

	return &domain.Course{
		ID:                  m.ID,
		Name:                m.Name,
		SchoolID:            m.SchoolID,
		InstructorID:        m.InstructorID,
		Schedule:            schedule,
		StudentIDs:          decodeIDs(m.StudentIDs),
		CurrentParticipants: m.Participants,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toCourseRow(c *domain.Course) courseRow {
	return courseRow{
		ID:           c.ID,
		Name:         c.Name,
		SchoolID:     c.SchoolID,
		InstructorID: c.InstructorID,
		Schedule:     encodeJSON(c.Schedule),
		StudentIDs:   encodeIDs(c.StudentIDs),
		Participants: c.CurrentParticipants,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	m := toCourseRow(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCourse(m)
	return nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	var m courseRow
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCourse(m), nil
}

func (r *CourseRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []courseRow
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCourses(rows), nil
}

func (r *CourseRepository) GetBySchoolID(ctx context.Context, schoolID int64) ([]domain.Course, error) {
	var rows []courseRow
	tx := r.db.WithContext(ctx).Where("school_id = ?", schoolID).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCourses(rows), nil
}

func (r *CourseRepository) GetByInstructorID(ctx context.Context, instructorID int64) ([]domain.Course, error) {
	var rows []courseRow
	tx := r.db.WithContext(ctx).Where("instructor_id = ?", instructorID).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCourses(rows), nil
}

// GetAll exists for the cascade paths that must scan student membership,
// which lives inside a JSON column and cannot be filtered server-side.
func (r *CourseRepository) GetAll(ctx context.Context) ([]domain.Course, error) {
	var rows []courseRow
	tx := r.db.WithContext(ctx).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCourses(rows), nil
}

func toDomainCourses(rows []courseRow) []domain.Course {
	out := make([]domain.Course, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCourse(m))
	}
	return out
}

// CourseRosterOp stages the student-side rewrite of a course: the student
// set and the derived participant count.
func CourseRosterOp(c *domain.Course) BatchOp {
	participants := c.CurrentParticipants
	if participants < 0 {
		participants = 0
	}
	return BatchOp{
		Table: "courses",
		ID:    c.ID,
		Op:    OpUpdate,
		Fields: map[string]any{
			"student_ids":          encodeIDs(c.StudentIDs),
			"current_participants": participants,
			"updated_at":           time.Now(),
		},
	}
}

// CourseInstructorOp stages clearing or reassigning a course's instructor.
func CourseInstructorOp(courseID, instructorID int64) BatchOp {
	return BatchOp{
		Table: "courses",
		ID:    courseID,
		Op:    OpUpdate,
		Fields: map[string]any{
			"instructor_id": instructorID,
			"updated_at":    time.Now(),
		},
	}
}
