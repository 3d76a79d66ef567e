package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/model"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// TokenSigner issues the session token returned on signup and login.
type TokenSigner func(userID, email, name string) (string, error)

type AuthResult struct {
	UserID string
	Name   string
	Token  string
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	IsDiagnosed(ctx context.Context, userID string) (bool, error)
}

type authService struct {
	users     repository.UserRepository
	signToken TokenSigner
	now       func() time.Time
}

func NewAuthService(users repository.UserRepository, signToken TokenSigner) AuthService {
	return &authService{
		users:     users,
		signToken: signToken,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, storageErr(err)
	}

	user := &model.User{
		Name:        name,
		Email:       email,
		Password:    string(hash),
		IsDiagnosed: false,
		CreatedAt:   s.now(),
	}
	// The unique index on users.email makes this an atomic conditional
	// insert; concurrent signups for the same handle can't both win.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, translate(err, ErrUserNotFound)
	}

	token, err := s.signToken(user.ID.Hex(), user.Email, user.Name)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to sign token after signup")
		return nil, storageErr(err)
	}
	return &AuthResult{UserID: user.ID.Hex(), Name: user.Name, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingField
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(user.ID.Hex(), user.Email, user.Name)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to sign token after login")
		return nil, storageErr(err)
	}
	return &AuthResult{UserID: user.ID.Hex(), Name: user.Name, Token: token}, nil
}

func (s *authService) IsDiagnosed(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, translate(err, ErrUserNotFound)
	}
	return user.IsDiagnosed, nil
}

// NewJWTSigner builds the HS256 signer used in production wiring.
func NewJWTSigner(secret string) TokenSigner {
	return func(userID, email, name string) (string, error) {
		claims := jwt.MapClaims{
			"user_id": userID,
			"email":   email,
			"name":    name,
			"exp":     time.Now().Add(24 * time.Hour).Unix(),
		}
		return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	}
}
