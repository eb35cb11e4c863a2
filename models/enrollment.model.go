package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment links one User to one Course. The composite unique index is what
// keeps concurrent enrollments for the same pair down to a single row.
type Enrollment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID  string    `json:"course_id" gorm:"size:36;not null;uniqueIndex:idx_enrollments_user_course;index"`
	Role      Role      `json:"role" gorm:"size:20;not null;default:'student'"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course    *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Role == "" {
		e.Role = RoleStudent
	}
	return nil
}
