package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"admissions/internal/cache"
	"admissions/internal/config"
	apperrors "admissions/internal/errors"
	"admissions/internal/mail"
	"admissions/internal/model"
	"admissions/internal/repository"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 30 * time.Second

	// mintAttempts bounds re-minting when a random student number collides
	// with an existing one.
	mintAttempts = 3
)

// AdmissionStats are the dashboard counters.
type AdmissionStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
}

// AdmissionService handles the application review workflow.
type AdmissionService interface {
	ListApplications(ctx context.Context) ([]model.Student, error)
	// UpdateStatus moves an application between Pending, Approved and
	// Rejected. The first transition into Approved mints the durable student
	// number and a temporary password and emails both to the applicant.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Student, error)
	Stats(ctx context.Context) (*AdmissionStats, error)
}

type admissionService struct {
	cfg      *config.Config
	students repository.StudentRepository
	mailer   mail.Mailer
	cache    *cache.Client
	logger   *zap.Logger
}

// NewAdmissionService creates a new admission service.
func NewAdmissionService(
	cfg *config.Config,
	students repository.StudentRepository,
	mailer mail.Mailer,
	cacheClient *cache.Client,
	logger *zap.Logger,
) AdmissionService {
	return &admissionService{
		cfg:      cfg,
		students: students,
		mailer:   mailer,
		cache:    cacheClient,
		logger:   logger,
	}
}

// ListApplications returns all applications, newest first.
func (s *admissionService) ListApplications(ctx context.Context) ([]model.Student, error) {
	return s.students.ListByDateApplied(ctx)
}

func (s *admissionService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Student, error) {
	if !model.ValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}

	prev := student.AdmissionStatus
	student.AdmissionStatus = status

	// Mint only on the transition into Approved. Re-approving an already
	// approved application must not re-issue the ID or the password, or the
	// applicant would be spammed with fresh credentials.
	if status == model.StatusApproved && prev != model.StatusApproved {
		return s.approve(ctx, student, prev)
	}

	if err := s.students.Save(ctx, student); err != nil {
		return nil, fmt.Errorf("save student: %w", err)
	}
	_ = s.cache.Delete(ctx, statsCacheKey)
	return student, nil
}

// approve mints credentials for a newly approved application and notifies the
// applicant. The notification is strictly best effort: a failed dispatch is
// logged and the approval stands.
func (s *admissionService) approve(ctx context.Context, student *model.Student, prevStatus string) (*model.Student, error) {
	tempPassword := mintTempPassword()
	// Stored plain on purpose: the temp password is emailed and typed back by
	// the applicant, then flagged for a forced change at login.
	student.Password = tempPassword

	minted := false
	if student.HasPlaceholderID() {
		student.StudentNumber = s.mintStudentNumber()
		minted = true
	}

	var err error
	for attempt := 0; attempt < mintAttempts; attempt++ {
		err = s.students.UpdateAdmission(ctx, student, prevStatus)
		if err == nil {
			break
		}
		// A colliding random suffix hits the unique index; draw again.
		if minted && errors.Is(err, gorm.ErrDuplicatedKey) {
			student.StudentNumber = s.mintStudentNumber()
			continue
		}
		break
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrApprovalConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("persist approval: %w", err)
	}

	if mailErr := s.mailer.Send(approvalMessage(student, tempPassword)); mailErr != nil {
		s.logger.Error("approval notification failed",
			zap.String("email", student.Email),
			zap.String("student_id", student.StudentNumber),
			zap.Error(mailErr))
	}

	_ = s.cache.Delete(ctx, statsCacheKey)
	return student, nil
}

// Stats returns the dashboard counters, cached briefly in Redis.
func (s *admissionService) Stats(ctx context.Context) (*AdmissionStats, error) {
	var cached AdmissionStats
	if s.cache.GetJSON(ctx, statsCacheKey, &cached) {
		return &cached, nil
	}

	total, err := s.students.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	pending, err := s.students.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	approved, err := s.students.CountByStatus(ctx, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("count approved: %w", err)
	}

	stats := &AdmissionStats{Total: total, Pending: pending, Approved: approved}
	s.cache.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL)
	return stats, nil
}

// mintTempPassword draws a 5-digit numeric password in [10000, 99999].
func mintTempPassword() string {
	return strconv.Itoa(rand.Intn(90000) + 10000)
}

// mintStudentNumber builds a durable ID of the form PREFIX/<year>/<3-digit>.
func (s *admissionService) mintStudentNumber() string {
	return fmt.Sprintf("%s/%d/%d", s.cfg.StudentIDPrefix, time.Now().Year(), rand.Intn(900)+100)
}

func approvalMessage(student *model.Student, tempPassword string) mail.Message {
	html := fmt.Sprintf(`
		<h1>Admission Approved</h1>
		<p>Dear %s,</p>
		<p>Congratulations! Your application has been approved.</p>
		<p>Your student ID is <strong>%s</strong>.</p>
		<p>Your temporary password is <strong>%s</strong>. Please log in and change it immediately.</p>
	`, student.FullName, student.StudentNumber, tempPassword)
	return mail.Message{
		To:      student.Email,
		Subject: "Admission Approved",
		HTML:    html,
	}
}
