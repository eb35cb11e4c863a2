package repositories

import (
	"context"

	"campus/apperrors"
	"campus/models"

	"gorm.io/gorm"
)

func preloadCourseEnrollments(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Enrollments", orderEnrollments).
		Preload("Enrollments.User").
		Preload("Enrollments.Course")
}

func (d *Directory) CreateCourse(ctx context.Context, course *models.Course) error {
	err := d.conn(ctx).Create(course).Error
	return translate(err, "Course not found", "Failed to create course")
}

// FirstOrCreateCourseByTitle returns the course with course.Title, creating
// it from course when none exists.
func (d *Directory) FirstOrCreateCourseByTitle(ctx context.Context, course *models.Course) error {
	err := d.conn(ctx).
		Where(models.Course{Title: course.Title}).
		Attrs(models.Course{Description: course.Description, Level: course.Level}).
		FirstOrCreate(course).Error
	return translate(err, "Course not found", "Failed to save course")
}

func (d *Directory) CourseExists(ctx context.Context, id string) (bool, error) {
	ok, err := d.exists(ctx, &models.Course{}, "id = ?", id)
	if err != nil {
		return false, apperrors.Persistence("Failed to fetch course", err)
	}
	return ok, nil
}

func (d *Directory) FindCourseByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	err := preloadCourseEnrollments(d.conn(ctx)).Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, translate(err, "Course not found", "Failed to fetch course")
	}
	return &course, nil
}

func (d *Directory) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	err := preloadCourseEnrollments(d.conn(ctx)).Order("created_at ASC, id ASC").Find(&courses).Error
	if err != nil {
		return nil, apperrors.Persistence("Failed to fetch courses", err)
	}
	return courses, nil
}

// UpdateCourseColumns writes only the given columns of one course. Callers
// check that the course exists first; a missing id writes nothing.
func (d *Directory) UpdateCourseColumns(ctx context.Context, id string, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}
	err := d.conn(ctx).Model(&models.Course{}).Where("id = ?", id).Updates(columns).Error
	if err != nil {
		return apperrors.Persistence("Failed to update course", err)
	}
	return nil
}
