package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result is a course result for a student, unique per (student, course).
type Result struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	StudentID uuid.UUID `json:"student_id" gorm:"type:char(36);not null;uniqueIndex:idx_student_course"`
	CourseID  uuid.UUID `json:"course_id" gorm:"type:char(36);not null;uniqueIndex:idx_student_course"`
	Score     float64   `json:"score" gorm:"not null"`
	Grade     string    `json:"grade" gorm:"size:2"`
	Semester  string    `json:"semester" gorm:"size:20"`
	Session   string    `json:"session" gorm:"size:20"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
