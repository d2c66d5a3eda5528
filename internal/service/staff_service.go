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

const defaultSession = "2026/2027"

// UpdateStaffProfileInput carries the mutable staff profile fields.
type UpdateStaffProfileInput struct {
	Phone      string
	ProfilePic string
}

// ResultEntryInput is a manual result entry keyed by student number and
// course code.
type ResultEntryInput struct {
	StudentNumber string
	CourseCode    string
	Score         float64
	Semester      string
	Session       string
}

// StaffService exposes staff self-service and records-entry operations.
type StaffService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateStaffProfileInput) (*model.Staff, error)
	ListCourses(ctx context.Context, staffID uuid.UUID) ([]model.Course, error)
	// EnterResult upserts the result for (student, course) and derives the grade.
	EnterResult(ctx context.Context, input ResultEntryInput) (*model.Result, error)
}

type staffService struct {
	staff    repository.StaffRepository
	students repository.StudentRepository
	courses  repository.CourseRepository
	results  repository.ResultRepository
}

// NewStaffService creates a new staff service.
func NewStaffService(
	staff repository.StaffRepository,
	students repository.StudentRepository,
	courses repository.CourseRepository,
	results repository.ResultRepository,
) StaffService {
	return &staffService{
		staff:    staff,
		students: students,
		courses:  courses,
		results:  results,
	}
}

func (s *staffService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	staff, err := s.staff.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, fmt.Errorf("find staff: %w", err)
	}
	return staff, nil
}

func (s *staffService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateStaffProfileInput) (*model.Staff, error) {
	staff, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Phone != "" {
		staff.Phone = input.Phone
	}
	if input.ProfilePic != "" {
		staff.ProfilePic = input.ProfilePic
	}

	if err := s.staff.Save(ctx, staff); err != nil {
		return nil, fmt.Errorf("save staff: %w", err)
	}
	return staff, nil
}

func (s *staffService) ListCourses(ctx context.Context, staffID uuid.UUID) ([]model.Course, error) {
	return s.courses.ListByAssignedStaff(ctx, staffID)
}

func (s *staffService) EnterResult(ctx context.Context, input ResultEntryInput) (*model.Result, error) {
	student, err := s.students.FindByStudentNumber(ctx, input.StudentNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}

	course, err := s.courses.FindByCode(ctx, input.CourseCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	session := input.Session
	if session == "" {
		session = defaultSession
	}

	result, err := s.results.FindByStudentAndCourse(ctx, student.ID, course.ID)
	switch {
	case err == nil:
		result.Score = input.Score
		result.Grade = gradeFor(input.Score)
		if input.Semester != "" {
			result.Semester = input.Semester
		}
		if input.Session != "" {
			result.Session = input.Session
		}
		if err := s.results.Save(ctx, result); err != nil {
			return nil, fmt.Errorf("save result: %w", err)
		}
		return result, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		result = &model.Result{
			StudentID: student.ID,
			CourseID:  course.ID,
			Score:     input.Score,
			Grade:     gradeFor(input.Score),
			Semester:  input.Semester,
			Session:   session,
		}
		if err := s.results.Create(ctx, result); err != nil {
			return nil, fmt.Errorf("create result: %w", err)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("find result: %w", err)
	}
}

// gradeFor maps a score to the institutional grade scale.
func gradeFor(score float64) string {
	switch {
	case score >= 70:
		return "A"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
