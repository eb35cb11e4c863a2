// Package testhelpers provides an isolated, migrated sqlite database and
// fixtures for package tests.
package testhelpers

import (
	"context"
	"testing"

	"campus/database"
	"campus/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a fresh in-memory database with the schema migrated.
// Every call gets its own database; it is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	log := zap.NewNop()
	db, err := database.Open(sqlite.Open(database.SQLiteDSN(":memory:")), log, logger.Silent)
	require.NoError(t, err, "open sqlite")
	require.NoError(t, database.ConfigurePool(db, "sqlite", 1, 1))
	require.NoError(t, database.RunMigrations(db, log))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Fixture is the small directory used by service and transport tests:
// Alice is professor of DB101, John and Bob are plain students, Carol has a
// professor global role but only a student enrollment on DB101.
type Fixture struct {
	Alice   *models.User
	Bob     *models.User
	Carol   *models.User
	John    *models.User
	DB101   *models.Course
	JSIntro *models.Course
}

func Seed(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()
	ctx := context.Background()

	f := &Fixture{
		Alice: &models.User{Name: "Dr. Alice Johnson", Email: "alice.johnson@example.com", Role: models.RoleProfessor},
		Bob:   &models.User{Name: "Bob Stone", Email: "bob.stone@example.com", Role: models.RoleStudent},
		Carol: &models.User{Name: "Dr. Carol White", Email: "carol.white@example.com", Role: models.RoleProfessor},
		John:  &models.User{Name: "John Doe", Email: "john.doe@example.com", Role: models.RoleStudent},
		DB101: &models.Course{
			Title:       "Database Design with PostgreSQL",
			Description: "Learn database design principles and PostgreSQL administration.",
			Level:       models.LevelIntermediate,
		},
		JSIntro: &models.Course{
			Title:       "Introduction to JavaScript",
			Description: "Learn the fundamentals of JavaScript programming language.",
			Level:       models.LevelBeginner,
		},
	}

	for _, u := range []*models.User{f.Alice, f.Bob, f.Carol, f.John} {
		require.NoError(t, db.WithContext(ctx).Create(u).Error, "create user %s", u.Email)
	}
	for _, c := range []*models.Course{f.DB101, f.JSIntro} {
		require.NoError(t, db.WithContext(ctx).Create(c).Error, "create course %s", c.Title)
	}

	Enroll(t, db, f.Alice, f.DB101, models.RoleProfessor)
	Enroll(t, db, f.Carol, f.DB101, models.RoleStudent)

	return f
}

// Enroll writes an enrollment row directly, bypassing service rules.
func Enroll(t *testing.T, db *gorm.DB, user *models.User, course *models.Course, role models.Role) *models.Enrollment {
	t.Helper()
	e := &models.Enrollment{UserID: user.ID, CourseID: course.ID, Role: role}
	require.NoError(t, db.Create(e).Error, "enroll %s in %s", user.Email, course.Title)
	return e
}

// CountEnrollments counts rows for the pair straight from the table.
func CountEnrollments(t *testing.T, db *gorm.DB, userID, courseID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error)
	return n
}
