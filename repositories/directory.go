package repositories

import (
	"context"
	"errors"

	"campus/apperrors"

	"gorm.io/gorm"
)

// Directory is the data-access layer for users, courses and enrollments.
// It is the only component that writes persisted records.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// Transaction runs fn against a Directory bound to a single database
// transaction. Any error from fn rolls the transaction back; untyped errors
// (including a failed commit) come back as persistence errors.
func (d *Directory) Transaction(ctx context.Context, fn func(tx *Directory) error) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Directory{db: tx})
	})
	return apperrors.Ensure(err, "Failed to complete transaction")
}

func (d *Directory) conn(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

// translate maps gorm errors onto the application taxonomy. notFound is used
// for gorm.ErrRecordNotFound, failure for everything else.
func translate(err error, notFound, failure string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(notFound)
	default:
		return apperrors.Persistence(failure, err)
	}
}

func (d *Directory) exists(ctx context.Context, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := d.conn(ctx).Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func orderEnrollments(db *gorm.DB) *gorm.DB {
	return db.Order("enrollments.created_at ASC, enrollments.id ASC")
}
