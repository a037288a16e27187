package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/repository"
	"github.com/dhbw-mensa/backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 6
	resetCodeLength   = 8
)

// AuthService handles register, login and password reset.
type AuthService struct {
	users    *repository.UserRepository
	roles    *repository.RoleRepository
	sessions *SessionService
	mailer   Mailer
	resetTTL time.Duration
	log      *logger.Logger
}

func NewAuthService(users *repository.UserRepository, roles *repository.RoleRepository, sessions *SessionService, mailer Mailer, resetTTL time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		sessions: sessions,
		mailer:   mailer,
		resetTTL: resetTTL,
		log:      log.With("service", "AuthService"),
	}
}

type RegisterInput struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"passwordRepeat"`
}

type LoginResult struct {
	Token   string       `json:"token"`
	User    *entity.User `json:"user"`
	Role    entity.Role  `json:"role"`
	Area    Area         `json:"area"`
	Expires time.Time    `json:"expiresAt"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if err := forms.Required("email", email); err != nil {
		return err
	}
	if at := strings.Index(email, "@"); at <= 0 || at == len(email)-1 {
		return forms.Invalid("email", "is not a valid address")
	}
	return nil
}

func validatePassword(field, password, repeat string) error {
	if len(password) < minPasswordLength {
		return forms.Invalid(field, fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if password != repeat {
		return forms.Invalid(field+"Repeat", "passwords do not match")
	}
	return nil
}

// Register creates the identity and its role row. It does not sign in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, entity.Role, error) {
	email := normalizeEmail(in.Email)
	if err := forms.First(
		validateEmail(email),
		validatePassword("password", in.Password, in.PasswordRepeat),
	); err != nil {
		return nil, "", err
	}

	count, err := s.users.CountByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.New("hash password failed")
	}

	user := &entity.User{Email: email, Password: string(hashed)}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	role := RoleForEmail(email)
	if _, err := s.roles.EnsureRole(ctx, user.ID, role); err != nil {
		return nil, "", fmt.Errorf("store role: %w", err)
	}
	s.log.Info("user registered", "user_id", user.ID, "role", role)
	return user, role, nil
}

// Login checks the password and opens a session. Identities without a role
// row get the inferred one first.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if err := forms.First(forms.Required("email", email), forms.Required("password", password)); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if inserted, err := s.roles.EnsureRole(ctx, user.ID, RoleForEmail(email)); err != nil {
		return nil, fmt.Errorf("store role: %w", err)
	} else if inserted {
		s.log.Info("role backfilled on login", "user_id", user.ID)
	}
	row, err := s.roles.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, lookupErr("role", err)
	}

	token, sess, err := s.sessions.Open(ctx, user, row.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:   token,
		User:    user,
		Role:    row.Role,
		Area:    AreaFor(row.Role),
		Expires: sess.ExpiresAt,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Close(ctx, token)
}

// CurrentUser returns the signed-in identity and its stored role.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, *entity.UserRole, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, lookupErr("user", err)
	}
	row, err := s.roles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, lookupErr("role", err)
	}
	return user, row, nil
}

// ForgotPassword mails a reset code. Unknown addresses succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Info("reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	code, err := utils.GenerateResetCode(resetCodeLength)
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, user.ID, code, time.Now().Add(s.resetTTL)); err != nil {
		return err
	}
	return s.mailer.SendResetCode(ctx, user.Email, code)
}

type ResetPasswordInput struct {
	Code           string `json:"code"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"passwordRepeat"`
}

func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if err := forms.First(
		forms.Required("code", code),
		validatePassword("password", in.Password, in.PasswordRepeat),
	); err != nil {
		return err
	}

	user, err := s.users.FindByResetToken(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidResetCode
	}
	if err != nil {
		return err
	}
	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return ErrInvalidResetCode
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("hash password failed")
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hashed))
}
