package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admission states of a student application.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// PlaceholderIDPrefix marks a student number that has not been minted yet.
const PlaceholderIDPrefix = "PENDING"

// Student represents an applicant or admitted student.
//
// Password may hold a bcrypt hash or a plain-text value depending on which
// code path last wrote it; see the credential package.
type Student struct {
	ID              uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FullName        string    `json:"full_name" gorm:"size:255;not null"`
	Email           string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone           string    `json:"phone" gorm:"size:50;not null"`
	Program         string    `json:"program" gorm:"size:255;not null"`
	StudentNumber   string    `json:"student_id" gorm:"column:student_no;uniqueIndex;size:50"`
	Password        string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	ProfilePic      string    `json:"profile_pic" gorm:"size:512"`
	AdmissionStatus string    `json:"admission_status" gorm:"size:20;default:'Pending';index"`
	DateApplied     time.Time `json:"date_applied"`

	// Present only between reset-request and reset-redemption.
	ResetTokenDigest string     `json:"-" gorm:"size:64;index"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID and application date before creating the record.
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.DateApplied.IsZero() {
		s.DateApplied = time.Now()
	}
	return nil
}

// HasPlaceholderID reports whether the student number has not been durably
// minted yet.
func (s *Student) HasPlaceholderID() bool {
	return s.StudentNumber == "" || strings.HasPrefix(s.StudentNumber, PlaceholderIDPrefix)
}

// ValidStatus reports whether status is one of the admission states.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}
