package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"admissions/internal/model"
)

// StaffRepository defines persistence operations for staff.
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	Save(ctx context.Context, staff *model.Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	FindByEmail(ctx context.Context, email string) (*model.Staff, error)
	// FindByIdentifier matches email or assigned staff number.
	FindByIdentifier(ctx context.Context, identifier string) (*model.Staff, error)
	FindByResetDigest(ctx context.Context, digest string, now time.Time) (*model.Staff, error)
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository builds a GORM-backed repository.
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) Save(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var staff model.Staff
	if err := r.db.WithContext(ctx).First(&staff, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*model.Staff, error) {
	var staff model.Staff
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Where("email = ? OR staff_no = ?", identifier, identifier).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) FindByResetDigest(ctx context.Context, digest string, now time.Time) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Where("reset_token_digest = ? AND reset_token_expiry > ?", digest, now).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}
