package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is a catalogue entry that staff enter results against.
type Course struct {
	ID              uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Code            string     `json:"code" gorm:"uniqueIndex;size:20;not null"`
	Title           string     `json:"title" gorm:"size:255;not null"`
	UnitLoad        int        `json:"unit_load" gorm:"default:3"`
	Program         string     `json:"program" gorm:"size:255"`
	AssignedStaffID *uuid.UUID `json:"assigned_staff_id" gorm:"type:char(36);index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
