package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"admissions/internal/model"
)

// CourseRepository defines persistence operations for the course catalogue.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByCode(ctx context.Context, code string) (*model.Course, error)
	ListByAssignedStaff(ctx context.Context, staffID uuid.UUID) ([]model.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository builds a GORM-backed repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) ListByAssignedStaff(ctx context.Context, staffID uuid.UUID) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Where("assigned_staff_id = ?", staffID).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}
