package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"admissions/internal/model"
)

// ResultRepository defines persistence operations for course results.
type ResultRepository interface {
	Create(ctx context.Context, result *model.Result) error
	Save(ctx context.Context, result *model.Result) error
	FindByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*model.Result, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository builds a GORM-backed repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, result *model.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *resultRepository) Save(ctx context.Context, result *model.Result) error {
	return r.db.WithContext(ctx).Save(result).Error
}

func (r *resultRepository) FindByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*model.Result, error) {
	var result model.Result
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Result, error) {
	var results []model.Result
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
