package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff represents an academic or administrative staff member.
type Staff struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FullName    string    `json:"full_name" gorm:"size:255;not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone       string    `json:"phone" gorm:"size:50"`
	StaffNumber string    `json:"staff_id" gorm:"column:staff_no;uniqueIndex;size:50"`
	Department  string    `json:"department" gorm:"size:255;not null"`
	Password    string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	ProfilePic  string    `json:"profile_pic" gorm:"size:512"`
	Role        string    `json:"role" gorm:"size:50;default:'staff'"`

	ResetTokenDigest string     `json:"-" gorm:"size:64;index"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
