package repositories

import (
	"context"
	"errors"

	"campus/apperrors"
	"campus/models"

	"gorm.io/gorm"
)

// CreateEnrollment inserts enrollment. The unique (user_id, course_id) index
// turns a duplicate pair, including one lost to a concurrent insert, into an
// AlreadyEnrolled error.
func (d *Directory) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	err := d.conn(ctx).Create(enrollment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.AlreadyEnrolled("User is already enrolled in this course")
	}
	return translate(err, "Enrollment not found", "Failed to enroll user in course")
}

// EnsureEnrollment returns the existing enrollment for the pair, or creates
// enrollment when there is none. An existing row keeps its role.
func (d *Directory) EnsureEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	err := d.conn(ctx).
		Where(models.Enrollment{UserID: enrollment.UserID, CourseID: enrollment.CourseID}).
		Attrs(models.Enrollment{Role: enrollment.Role}).
		FirstOrCreate(enrollment).Error
	return translate(err, "Enrollment not found", "Failed to save enrollment")
}

// EnrollmentExists reports whether the pair has an enrollment of any role.
func (d *Directory) EnrollmentExists(ctx context.Context, userID, courseID string) (bool, error) {
	ok, err := d.exists(ctx, &models.Enrollment{}, "user_id = ? AND course_id = ?", userID, courseID)
	if err != nil {
		return false, apperrors.Persistence("Failed to fetch enrollment", err)
	}
	return ok, nil
}

// HasEnrollmentRole reports whether an enrollment with exactly role exists
// for the pair.
func (d *Directory) HasEnrollmentRole(ctx context.Context, userID, courseID string, role models.Role) (bool, error) {
	ok, err := d.exists(ctx, &models.Enrollment{}, "user_id = ? AND course_id = ? AND role = ?", userID, courseID, role)
	if err != nil {
		return false, apperrors.Persistence("Failed to verify course role", err)
	}
	return ok, nil
}

func (d *Directory) FindEnrollmentByID(ctx context.Context, id string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := d.conn(ctx).Preload("User").Preload("Course").Where("id = ?", id).First(&enrollment).Error
	if err != nil {
		return nil, translate(err, "Enrollment not found", "Failed to fetch enrollment")
	}
	return &enrollment, nil
}

func (d *Directory) CountEnrollments(ctx context.Context, userID, courseID string) (int64, error) {
	var count int64
	err := d.conn(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Persistence("Failed to count enrollments", err)
	}
	return count, nil
}
