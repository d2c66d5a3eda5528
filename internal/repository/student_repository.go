package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "admissions/internal/errors"
	"admissions/internal/model"
)

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	Save(ctx context.Context, student *model.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	FindByEmail(ctx context.Context, email string) (*model.Student, error)
	// FindByIdentifier matches email or assigned student number.
	FindByIdentifier(ctx context.Context, identifier string) (*model.Student, error)
	FindByStudentNumber(ctx context.Context, number string) (*model.Student, error)
	// FindByResetDigest matches a stored reset-token digest that has not expired.
	FindByResetDigest(ctx context.Context, digest string, now time.Time) (*model.Student, error)
	ListByDateApplied(ctx context.Context) ([]model.Student, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	// UpdateAdmission persists the approval fields only while the stored
	// status still equals expectedStatus. A concurrent update surfaces as
	// apperrors.ErrApprovalConflict instead of a second mint.
	UpdateAdmission(ctx context.Context, student *model.Student, expectedStatus string) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository builds a GORM-backed repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Save(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("email = ? OR student_no = ?", identifier, identifier).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByStudentNumber(ctx context.Context, number string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("student_no = ?", number).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByResetDigest(ctx context.Context, digest string, now time.Time) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("reset_token_digest = ? AND reset_token_expiry > ?", digest, now).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) ListByDateApplied(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := r.db.WithContext(ctx).Order("date_applied DESC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *studentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("admission_status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *studentRepository) UpdateAdmission(ctx context.Context, student *model.Student, expectedStatus string) error {
	res := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("id = ? AND admission_status = ?", student.ID, expectedStatus).
		Updates(map[string]interface{}{
			"admission_status": student.AdmissionStatus,
			"student_no":       student.StudentNumber,
			"password":         student.Password,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrApprovalConflict
	}
	return nil
}
