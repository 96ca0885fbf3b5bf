// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/studynotes/internal/common"
	"github.com/dmitrijs2005/studynotes/internal/dbx"
	"github.com/dmitrijs2005/studynotes/internal/logging"
	"github.com/dmitrijs2005/studynotes/internal/server/auth"
	"github.com/dmitrijs2005/studynotes/internal/server/config"
	"github.com/dmitrijs2005/studynotes/internal/server/models"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the register/login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session identifies a logged-in user. Token is the signed value stored in
// the session cookie.
type Session struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// UserService provides authentication-related operations:
// - Register: create users and start a session
// - Login: verify credentials and start a session
// - Authenticate: turn a session token back into a Session
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	sessionValidity time.Duration
	validate        *validator.Validate
	log             logging.Logger

	// dummyHash is compared against when the email is unknown, so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("studynotes"), bcrypt.MinCost)
	return &UserService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		log:             log.With("module", "users"),
		dummyHash:       dummy,
	}
}

func (s *UserService) validateCredentials(c *Credentials) error {
	c.Email = strings.TrimSpace(c.Email)
	if err := s.validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// Register creates a user and starts a session. An email that is already
// taken yields common.ErrorAlreadyExists and leaves the table untouched.
func (s *UserService) Register(ctx context.Context, c Credentials) (*Session, error) {
	if err := s.validateCredentials(&c); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return nil, common.ErrorInternal
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.ExistsByEmail(ctx, c.Email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		user, err = repo.Create(ctx, &models.User{Email: c.Email, PasswordHash: string(hash)})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.log.Error(ctx, "register failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return s.newSession(user.ID, user.Email)
}

// Login checks the password. Unknown emails and wrong passwords both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, c Credentials) (*Session, error) {
	if err := s.validateCredentials(&c); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, c.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(c.Password))
			return nil, common.ErrorUnauthorized
		}
		s.log.Error(ctx, "login lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(c.Password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.newSession(user.ID, user.Email)
}

// Authenticate verifies a session token.
func (s *UserService) Authenticate(token string) (*Session, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	sess := &Session{UserID: claims.UserID, Email: claims.Email, Token: token}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

func (s *UserService) newSession(userID, email string) (*Session, error) {
	token, err := auth.GenerateToken(userID, email, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{
		UserID:    userID,
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(s.sessionValidity),
	}, nil
}
