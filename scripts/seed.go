package main

import (
	"context"
	"fmt"
	"log"

	"campus/config"
	"campus/database"
	"campus/models"
	"campus/repositories"
	"campus/utils"
	courseValidator "campus/validators/course"

	"go.uber.org/zap"
)

var seedUsers = []models.User{
	{Name: "John Doe", Email: "john.doe@example.com", Role: models.RoleStudent},
	{Name: "Jane Smith", Email: "jane.smith@example.com", Role: models.RoleStudent},
	{Name: "Dr. Alice Johnson", Email: "alice.johnson@example.com", Role: models.RoleProfessor},
}

var seedCourses = []models.Course{
	{Title: "Introduction to JavaScript", Description: "Learn the fundamentals of JavaScript programming language.", Level: models.LevelBeginner},
	{Title: "Advanced React Development", Description: "Master advanced React concepts including hooks, context, and performance optimization.", Level: models.LevelAdvanced},
	{Title: "Node.js Backend Development", Description: "Build scalable backend applications using Node.js and Express.", Level: models.LevelIntermediate},
	{Title: "Database Design with PostgreSQL", Description: "Learn database design principles and PostgreSQL administration.", Level: models.LevelIntermediate},
}

// seedEnrollments indexes into seedUsers and seedCourses.
var seedEnrollments = []struct {
	user   int
	course int
	role   models.Role
}{
	{user: 0, course: 0, role: models.RoleStudent},
	{user: 0, course: 2, role: models.RoleStudent},
	{user: 1, course: 1, role: models.RoleStudent},
	{user: 1, course: 3, role: models.RoleStudent},
	{user: 2, course: 1, role: models.RoleProfessor},
	{user: 2, course: 3, role: models.RoleProfessor},
}

type seedResult struct {
	Users       int
	Courses     int
	Enrollments int
}

// seed loads the demo directory. Running it again leaves existing rows in
// place.
func seed(ctx context.Context, dir *repositories.Directory, log *zap.Logger) (*seedResult, error) {
	result := &seedResult{}

	err := dir.Transaction(ctx, func(tx *repositories.Directory) error {
		users := make([]*models.User, len(seedUsers))
		for i := range seedUsers {
			user := seedUsers[i]
			if err := courseValidator.ValidateUser(&user); err != nil {
				return fmt.Errorf("user %s: %w", user.Email, err)
			}
			if err := tx.UpsertUserByEmail(ctx, &user); err != nil {
				return fmt.Errorf("user %s: %w", user.Email, err)
			}
			users[i] = &user
			result.Users++
		}

		courses := make([]*models.Course, len(seedCourses))
		for i := range seedCourses {
			course := seedCourses[i]
			if err := courseValidator.ValidateCourse(&course); err != nil {
				return fmt.Errorf("course %q: %w", course.Title, err)
			}
			if err := tx.FirstOrCreateCourseByTitle(ctx, &course); err != nil {
				return fmt.Errorf("course %q: %w", course.Title, err)
			}
			courses[i] = &course
			result.Courses++
		}

		for _, e := range seedEnrollments {
			enrollment := &models.Enrollment{
				UserID:   users[e.user].ID,
				CourseID: courses[e.course].ID,
				Role:     e.role,
			}
			if err := tx.EnsureEnrollment(ctx, enrollment); err != nil {
				return fmt.Errorf("enrollment %s in %q: %w", users[e.user].Email, courses[e.course].Title, err)
			}
			result.Enrollments++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Database seeded successfully!",
		zap.Int("users", result.Users),
		zap.Int("courses", result.Courses),
		zap.Int("enrollments", result.Enrollments),
	)
	return result, nil
}

func main() {
	// Load config and connect to database
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.ConnectDb(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to the database", zap.Error(err))
	}

	if _, err := seed(context.Background(), repositories.NewDirectory(db), logger); err != nil {
		logger.Fatal("Error during seed", zap.Error(err))
	}
}
