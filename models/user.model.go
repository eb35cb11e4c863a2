package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is used both as a user's informational default and as the per-course
// role carried by an Enrollment. Only the latter grants anything.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleProfessor
}

type User struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	Name        string       `json:"name" gorm:"size:255;not null;default:''"`
	Email       string       `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Role        Role         `json:"role" gorm:"size:20;not null;default:'student'"`
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	return nil
}
