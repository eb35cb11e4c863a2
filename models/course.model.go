package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	Title       string       `json:"title" gorm:"size:255;not null;index"`
	Description string       `json:"description" gorm:"type:text;not null"`
	Level       Level        `json:"level" gorm:"size:20;not null;default:'beginner'"`
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:CourseID"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Level == "" {
		c.Level = LevelBeginner
	}
	return nil
}

// CoursePatch is a merge-patch for a Course: nil fields are left untouched.
type CoursePatch struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,notblank,max=255"`
	Description *string `json:"description,omitempty" validate:"omitnil,max=5000"`
	Level       *string `json:"level,omitempty" validate:"omitnil,oneof=beginner intermediate advanced"`
}

func (p CoursePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Level == nil
}

// Columns returns the column assignments for the fields present in the patch.
func (p CoursePatch) Columns() map[string]interface{} {
	columns := make(map[string]interface{}, 3)
	if p.Title != nil {
		columns["title"] = *p.Title
	}
	if p.Description != nil {
		columns["description"] = *p.Description
	}
	if p.Level != nil {
		columns["level"] = *p.Level
	}
	return columns
}
