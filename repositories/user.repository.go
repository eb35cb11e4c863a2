package repositories

import (
	"context"
	"errors"

	"campus/apperrors"
	"campus/models"

	"gorm.io/gorm"
)

func preloadUserEnrollments(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Enrollments", orderEnrollments).
		Preload("Enrollments.Course").
		Preload("Enrollments.User")
}

// CreateUser inserts a new user. A duplicate email is a constraint violation
// and surfaces as a persistence error.
func (d *Directory) CreateUser(ctx context.Context, user *models.User) error {
	err := d.conn(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Persistence("A user with this email already exists", err)
	}
	return translate(err, "User not found", "Failed to create user")
}

// UpsertUserByEmail creates the user if the email is unknown, otherwise it
// overwrites name and role on the existing row. user is filled with the
// stored record.
func (d *Directory) UpsertUserByEmail(ctx context.Context, user *models.User) error {
	err := d.conn(ctx).
		Where(models.User{Email: user.Email}).
		Assign(models.User{Name: user.Name, Role: user.Role}).
		FirstOrCreate(user).Error
	return translate(err, "User not found", "Failed to save user")
}

func (d *Directory) UserExists(ctx context.Context, id string) (bool, error) {
	ok, err := d.exists(ctx, &models.User{}, "id = ?", id)
	if err != nil {
		return false, apperrors.Persistence("Failed to fetch user", err)
	}
	return ok, nil
}

func (d *Directory) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := preloadUserEnrollments(d.conn(ctx)).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err, "User not found", "Failed to fetch user")
	}
	return &user, nil
}

func (d *Directory) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := preloadUserEnrollments(d.conn(ctx)).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err, "User not found", "Failed to fetch user")
	}
	return &user, nil
}

func (d *Directory) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := preloadUserEnrollments(d.conn(ctx)).Order("created_at ASC, id ASC").Find(&users).Error
	if err != nil {
		return nil, apperrors.Persistence("Failed to fetch users", err)
	}
	return users, nil
}
