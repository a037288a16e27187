package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type roleReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserRole, error)
}

// SessionService is the one place that knows who is signed in.
// Tokens are JWTs; the token id keys a cached Session that sign-out deletes.
type SessionService struct {
	store  SessionStore
	roles  roleReader
	secret string
	ttl    time.Duration
	log    *logger.Logger
}

func NewSessionService(store SessionStore, roles roleReader, secret string, ttl time.Duration, log *logger.Logger) *SessionService {
	return &SessionService{
		store:  store,
		roles:  roles,
		secret: secret,
		ttl:    ttl,
		log:    log.With("service", "SessionService"),
	}
}

// Open issues a token for the user and caches its session.
func (s *SessionService) Open(ctx context.Context, user *entity.User, role entity.Role) (string, *Session, error) {
	token, claims, err := utils.GenerateToken(user.ID, string(role), s.secret, s.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("cannot generate token: %w", err)
	}
	sess := &Session{
		ID:        claims.ID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return "", nil, err
	}
	return token, sess, nil
}

// Authenticate returns the live session behind token.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := utils.ParseToken(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	sess, err := s.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if sess.UserID.String() != claims.UserID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close revokes the session. Closing an unknown session is not an error.
func (s *SessionService) Close(ctx context.Context, token string) error {
	claims, err := utils.ParseToken(token, s.secret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return s.store.Delete(ctx, claims.ID)
}

// StoredRole reads the user's current role row. A missing row yields "".
func (s *SessionService) StoredRole(ctx context.Context, userID uuid.UUID) (entity.Role, error) {
	row, err := s.roles.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Role, nil
}

// Resolve decides the landing area. Without a session that is the login
// screen. Otherwise the stored role decides, and lookup failures land on home.
func (s *SessionService) Resolve(ctx context.Context, token string) Area {
	sess, err := s.Authenticate(ctx, token)
	if err != nil {
		return AreaLogin
	}
	role, err := s.StoredRole(ctx, sess.UserID)
	if err != nil {
		s.log.Warn("role lookup failed", "user_id", sess.UserID, "error", err)
		return AreaHome
	}
	return AreaFor(role)
}
