package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"threadapi/internal/auth"
	apperrors "threadapi/internal/errors"
	"threadapi/internal/model"
	"threadapi/internal/repository"
)

const bcryptCost = 10

// AuthService owns credentials: registration, login, password verification.
type AuthService interface {
	Register(ctx context.Context, username, email, password, confirmPassword string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	log        *logrus.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, log *logrus.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		log:        log,
	}
}

// NormalizeEmail maps equivalent email inputs onto one canonical form:
// surrounding whitespace is stripped and the address is lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// VerifyPassword reports whether candidate matches the user's stored hash.
// bcrypt recomputes with the stored salt and compares in constant time.
func VerifyPassword(user *model.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(candidate)) == nil
}

// Register creates a new user. The cleartext password is hashed here and
// only the hash is ever stored; rehydrated records are never rehashed.
func (s *authService) Register(ctx context.Context, username, email, password, confirmPassword string) (*model.User, error) {
	email = NormalizeEmail(email)

	if username == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, apperrors.ErrMissingFields
	}
	if password != confirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Infof("user registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and issues a session token. An unknown email
// and a wrong password fail identically so callers cannot enumerate users.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !VerifyPassword(user, password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Infof("user logged in: %s", user.Email)
	return token, user, nil
}
