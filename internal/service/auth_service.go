package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"admissions/internal/auth"
	"admissions/internal/config"
	"admissions/internal/credential"
	"admissions/internal/mail"
	"admissions/internal/model"
	"admissions/internal/repository"
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
)

var (
	// ErrInvalidCredentials is returned when the identifier or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidOrExpiredToken is returned when a reset token does not match or has expired.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	// ErrMailDispatchFailed is returned when a reset email could not be sent.
	ErrMailDispatchFailed = errors.New("email could not be sent")
)

// Session is the payload returned on successful authentication.
type Session struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`

	StudentID  string `json:"student_id,omitempty"`
	StaffID    string `json:"staff_id,omitempty"`
	Program    string `json:"program,omitempty"`
	Department string `json:"department,omitempty"`
	ProfilePic string `json:"profile_pic,omitempty"`

	// IsTempPassword is set when the plain-text verification path matched so
	// the client can prompt a forced change.
	IsTempPassword bool `json:"is_temp_password,omitempty"`
}

// RegisterStudentInput carries the registration fields.
type RegisterStudentInput struct {
	FullName string
	Email    string
	Phone    string
	Program  string
	Password string
}

// AuthService handles login, registration and the password-reset lifecycle.
type AuthService interface {
	// Login authenticates by email or assigned ID. kind narrows the lookup to
	// "student" or "staff"; empty tries student first, then staff.
	Login(ctx context.Context, identifier, password, kind string) (*Session, error)
	RegisterStudent(ctx context.Context, input RegisterStudentInput) (*Session, error)
	// ForgotPassword issues a reset token. It succeeds silently when the email
	// has no account, so responses never leak existence.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

type authService struct {
	cfg        *config.Config
	students   repository.StudentRepository
	staff      repository.StaffRepository
	jwtService *auth.JWTService
	mailer     mail.Mailer
	policy     credential.Policy
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	cfg *config.Config,
	students repository.StudentRepository,
	staff repository.StaffRepository,
	jwtService *auth.JWTService,
	mailer mail.Mailer,
	policy credential.Policy,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:        cfg,
		students:   students,
		staff:      staff,
		jwtService: jwtService,
		mailer:     mailer,
		policy:     policy,
		logger:     logger,
	}
}

// Login authenticates an identifier/password pair and returns a session.
func (s *authService) Login(ctx context.Context, identifier, password, kind string) (*Session, error) {
	// Bootstrap superuser: a configured pair with no backing record.
	if identifier == s.cfg.AdminEmail && password == s.cfg.AdminPassword {
		token, err := s.jwtService.GenerateToken(auth.AdminSubject)
		if err != nil {
			return nil, fmt.Errorf("generate token: %w", err)
		}
		return &Session{
			ID:       auth.AdminSubject,
			FullName: "Admin",
			Email:    s.cfg.AdminEmail,
			Role:     "admin",
			Token:    token,
		}, nil
	}

	student, staff, err := s.resolve(ctx, identifier, kind)
	if err != nil {
		return nil, err
	}

	switch {
	case student != nil:
		provenance, ok := credential.Parse(student.Password).Verify(password)
		if !ok {
			return nil, ErrInvalidCredentials
		}
		token, err := s.jwtService.GenerateToken(student.ID.String())
		if err != nil {
			return nil, fmt.Errorf("generate token: %w", err)
		}
		return &Session{
			ID:             student.ID.String(),
			FullName:       student.FullName,
			Email:          student.Email,
			Role:           "student",
			Token:          token,
			StudentID:      student.StudentNumber,
			Program:        student.Program,
			ProfilePic:     student.ProfilePic,
			IsTempPassword: provenance == credential.ProvenancePlain,
		}, nil

	case staff != nil:
		provenance, ok := credential.Parse(staff.Password).Verify(password)
		if !ok {
			return nil, ErrInvalidCredentials
		}
		token, err := s.jwtService.GenerateToken(staff.ID.String())
		if err != nil {
			return nil, fmt.Errorf("generate token: %w", err)
		}
		return &Session{
			ID:             staff.ID.String(),
			FullName:       staff.FullName,
			Email:          staff.Email,
			Role:           "staff",
			Token:          token,
			StaffID:        staff.StaffNumber,
			Department:     staff.Department,
			ProfilePic:     staff.ProfilePic,
			IsTempPassword: provenance == credential.ProvenancePlain,
		}, nil

	default:
		return nil, ErrInvalidCredentials
	}
}

// resolve locates at most one record whose email or assigned ID equals
// identifier. Not found is not an error; both returns are nil.
func (s *authService) resolve(ctx context.Context, identifier, kind string) (*model.Student, *model.Staff, error) {
	if kind == "" || kind == "student" {
		student, err := s.students.FindByIdentifier(ctx, identifier)
		if err == nil {
			return student, nil, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("resolve student: %w", err)
		}
	}
	if kind == "" || kind == "staff" {
		staff, err := s.staff.FindByIdentifier(ctx, identifier)
		if err == nil {
			return nil, staff, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("resolve staff: %w", err)
		}
	}
	return nil, nil, nil
}

// RegisterStudent creates a Pending application with a placeholder ID.
func (s *authService) RegisterStudent(ctx context.Context, input RegisterStudentInput) (*Session, error) {
	existing, err := s.students.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check student existence: %w", err)
	}

	encoded, err := credential.Encode(input.Password, s.policy)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		FullName:        input.FullName,
		Email:           input.Email,
		Phone:           input.Phone,
		Program:         input.Program,
		Password:        encoded,
		StudentNumber:   placeholderStudentNumber(),
		AdmissionStatus: model.StatusPending,
	}

	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create student: %w", err)
	}

	token, err := s.jwtService.GenerateToken(student.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &Session{
		ID:        student.ID.String(),
		FullName:  student.FullName,
		Email:     student.Email,
		Role:      "student",
		Token:     token,
		StudentID: student.StudentNumber,
		Program:   student.Program,
	}, nil
}

// ForgotPassword issues a single-use reset token and emails the raw token.
// The stored side is only the sha256 digest plus a one-hour expiry. A mail
// failure clears the issued token before reporting, so no valid token is
// left dangling without a deliverable notification.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	student, staff, err := s.resolveByEmail(ctx, email)
	if err != nil {
		return err
	}
	if student == nil && staff == nil {
		return nil
	}

	raw, digest, err := generateResetToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(resetTokenTTL)
	resetURL := fmt.Sprintf("%s/reset-password.html?token=%s", s.cfg.FrontendURL, raw)

	if student != nil {
		student.ResetTokenDigest = digest
		student.ResetTokenExpiry = &expiry
		if err := s.students.Save(ctx, student); err != nil {
			return fmt.Errorf("store reset token: %w", err)
		}
		if err := s.mailer.Send(resetMessage(student.Email, resetURL)); err != nil {
			s.logger.Error("reset mail dispatch failed", zap.String("email", student.Email), zap.Error(err))
			student.ResetTokenDigest = ""
			student.ResetTokenExpiry = nil
			if saveErr := s.students.Save(ctx, student); saveErr != nil {
				s.logger.Error("clear reset token failed", zap.Error(saveErr))
			}
			return ErrMailDispatchFailed
		}
		return nil
	}

	staff.ResetTokenDigest = digest
	staff.ResetTokenExpiry = &expiry
	if err := s.staff.Save(ctx, staff); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	if err := s.mailer.Send(resetMessage(staff.Email, resetURL)); err != nil {
		s.logger.Error("reset mail dispatch failed", zap.String("email", staff.Email), zap.Error(err))
		staff.ResetTokenDigest = ""
		staff.ResetTokenExpiry = nil
		if saveErr := s.staff.Save(ctx, staff); saveErr != nil {
			s.logger.Error("clear reset token failed", zap.Error(saveErr))
		}
		return ErrMailDispatchFailed
	}
	return nil
}

// ResetPassword redeems a reset token and overwrites the credential.
func (s *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	digest := digestResetToken(rawToken)
	now := time.Now()

	encoded, err := credential.Encode(newPassword, s.policy)
	if err != nil {
		return err
	}

	student, err := s.students.FindByResetDigest(ctx, digest, now)
	if err == nil {
		student.Password = encoded
		student.ResetTokenDigest = ""
		student.ResetTokenExpiry = nil
		if err := s.students.Save(ctx, student); err != nil {
			return fmt.Errorf("save student: %w", err)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup reset token: %w", err)
	}

	staff, err := s.staff.FindByResetDigest(ctx, digest, now)
	if err == nil {
		staff.Password = encoded
		staff.ResetTokenDigest = ""
		staff.ResetTokenExpiry = nil
		if err := s.staff.Save(ctx, staff); err != nil {
			return fmt.Errorf("save staff: %w", err)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup reset token: %w", err)
	}

	return ErrInvalidOrExpiredToken
}

func (s *authService) resolveByEmail(ctx context.Context, email string) (*model.Student, *model.Staff, error) {
	student, err := s.students.FindByEmail(ctx, email)
	if err == nil {
		return student, nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("resolve student: %w", err)
	}
	staff, err := s.staff.FindByEmail(ctx, email)
	if err == nil {
		return nil, staff, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("resolve staff: %w", err)
	}
	return nil, nil, nil
}

// generateResetToken draws a cryptographically strong token and returns the
// raw hex form plus its sha256 digest.
func generateResetToken() (raw, digest string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, digestResetToken(raw), nil
}

func digestResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func placeholderStudentNumber() string {
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return model.PlaceholderIDPrefix + "-" + ms[len(ms)-6:]
}

func resetMessage(to, resetURL string) mail.Message {
	html := fmt.Sprintf(`
		<h1>Password Reset Request</h1>
		<p>You are receiving this email because you (or someone else) requested a password reset for your account.</p>
		<p>Please click on the link below to reset your password:</p>
		<a href="%s" clicktracking=off>%s</a>
		<p>If you did not request this, please ignore this email.</p>
		<p>This link will expire in 1 hour.</p>
	`, resetURL, resetURL)
	return mail.Message{
		To:      to,
		Subject: "Password Reset Request",
		HTML:    html,
	}
}
