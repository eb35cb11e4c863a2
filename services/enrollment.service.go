package services

import (
	"context"
	"strings"

	"campus/apperrors"
	"campus/models"
	"campus/repositories"
	courseValidator "campus/validators/course"

	"go.uber.org/zap"
)

// EnrollmentService enforces the enrollment and course-editing rules on top
// of the Directory. The acting user is always an explicit argument.
type EnrollmentService struct {
	directory *repositories.Directory
	log       *zap.Logger
}

func NewEnrollmentService(directory *repositories.Directory, log *zap.Logger) *EnrollmentService {
	return &EnrollmentService{directory: directory, log: log.Named("enrollment")}
}

// HasRole is the course capability check: true only when userID holds an
// enrollment with exactly role on courseID. The user's global role is not
// consulted.
func (s *EnrollmentService) HasRole(ctx context.Context, userID, courseID string, role models.Role) (bool, error) {
	if !role.Valid() {
		return false, apperrors.InvalidArgument("Role must be one of student, professor!", map[string]string{"role": string(role)})
	}
	return s.directory.HasEnrollmentRole(ctx, userID, courseID, role)
}

// Enroll creates a student enrollment for the pair. A second call for the
// same pair fails with AlreadyEnrolled, even when both race.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	var enrollment *models.Enrollment

	err := s.directory.Transaction(ctx, func(tx *repositories.Directory) error {
		// Check that both sides exist
		ok, err := tx.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NotFound("User not found")
		}

		ok, err = tx.CourseExists(ctx, courseID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NotFound("Course not found")
		}

		// Check if user is already enrolled
		ok, err = tx.EnrollmentExists(ctx, userID, courseID)
		if err != nil {
			return err
		}
		if ok {
			return apperrors.AlreadyEnrolled("User is already enrolled in this course")
		}

		created := &models.Enrollment{
			UserID:   userID,
			CourseID: courseID,
			Role:     models.RoleStudent,
		}
		if err := tx.CreateEnrollment(ctx, created); err != nil {
			return err
		}

		enrollment, err = tx.FindEnrollmentByID(ctx, created.ID)
		return err
	})
	if err != nil {
		s.logFailure("Enrollment rejected", err, zap.String("userId", userID), zap.String("courseId", courseID))
		return nil, err
	}

	s.log.Info("User enrolled in course",
		zap.String("enrollmentId", enrollment.ID),
		zap.String("userId", userID),
		zap.String("courseId", courseID),
	)
	return enrollment, nil
}

// UpdateCourse applies patch to the course on behalf of actingUserID, who
// must be enrolled in it as professor. Fields absent from patch keep their
// values.
func (s *EnrollmentService) UpdateCourse(ctx context.Context, courseID, actingUserID string, patch models.CoursePatch) (*models.Course, error) {
	var course *models.Course

	err := s.directory.Transaction(ctx, func(tx *repositories.Directory) error {
		ok, err := tx.CourseExists(ctx, courseID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NotFound("Course not found")
		}

		// Verify professor role for this course
		ok, err = tx.HasEnrollmentRole(ctx, actingUserID, courseID, models.RoleProfessor)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NotAuthorized("Only professors of this course can edit it")
		}

		if err := courseValidator.ValidateCoursePatch(patch); err != nil {
			return err
		}

		if err := tx.UpdateCourseColumns(ctx, courseID, patch.Columns()); err != nil {
			return err
		}

		course, err = tx.FindCourseByID(ctx, courseID)
		return err
	})
	if err != nil {
		s.logFailure("Course update rejected", err, zap.String("courseId", courseID), zap.String("userId", actingUserID))
		return nil, err
	}

	s.log.Info("Course updated",
		zap.String("courseId", courseID),
		zap.String("userId", actingUserID),
		zap.Strings("fields", patchFields(patch)),
	)
	return course, nil
}

func (s *EnrollmentService) Courses(ctx context.Context) ([]models.Course, error) {
	return s.directory.ListCourses(ctx)
}

func (s *EnrollmentService) Course(ctx context.Context, id string) (*models.Course, error) {
	return s.directory.FindCourseByID(ctx, id)
}

func (s *EnrollmentService) Users(ctx context.Context) ([]models.User, error) {
	return s.directory.ListUsers(ctx)
}

func (s *EnrollmentService) User(ctx context.Context, id string) (*models.User, error) {
	return s.directory.FindUserByID(ctx, id)
}

func (s *EnrollmentService) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.directory.FindUserByEmail(ctx, strings.TrimSpace(email))
}

// logFailure logs caller mistakes at warn and store failures at error.
func (s *EnrollmentService) logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("kind", string(apperrors.KindOf(err))), zap.Error(err))
	if apperrors.KindOf(err) == apperrors.KindPersistence {
		s.log.Error(msg, fields...)
		return
	}
	s.log.Warn(msg, fields...)
}

func patchFields(patch models.CoursePatch) []string {
	fields := make([]string, 0, 3)
	if patch.Title != nil {
		fields = append(fields, "title")
	}
	if patch.Description != nil {
		fields = append(fields, "description")
	}
	if patch.Level != nil {
		fields = append(fields, "level")
	}
	return fields
}
