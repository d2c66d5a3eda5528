package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "admissions/internal/errors"
	"admissions/internal/model"
	"admissions/internal/repository"
)

// UpdateStudentProfileInput carries the mutable profile fields. Empty fields
// are left unchanged.
type UpdateStudentProfileInput struct {
	Email      string
	Phone      string
	ProfilePic string
}

// StudentService exposes student self-service operations.
type StudentService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Student, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateStudentProfileInput) (*model.Student, error)
	ListResults(ctx context.Context, id uuid.UUID) ([]model.Result, error)
}

type studentService struct {
	students repository.StudentRepository
	results  repository.ResultRepository
}

// NewStudentService creates a new student service.
func NewStudentService(students repository.StudentRepository, results repository.ResultRepository) StudentService {
	return &studentService{students: students, results: results}
}

func (s *studentService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return student, nil
}

func (s *studentService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateStudentProfileInput) (*model.Student, error) {
	student, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		student.Email = input.Email
	}
	if input.Phone != "" {
		student.Phone = input.Phone
	}
	if input.ProfilePic != "" {
		student.ProfilePic = input.ProfilePic
	}

	if err := s.students.Save(ctx, student); err != nil {
		return nil, fmt.Errorf("save student: %w", err)
	}
	return student, nil
}

func (s *studentService) ListResults(ctx context.Context, id uuid.UUID) ([]model.Result, error) {
	return s.results.ListByStudent(ctx, id)
}
