package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"personalportal/internal/auth/model"
	"personalportal/internal/auth/repository"
	"personalportal/pkg/logger"
	"personalportal/pkg/validation"
	"personalportal/store"
)

const (
	msgInvalidCredentials = "Invalid username or password"
	msgLoginOK            = "Login successful"
	tokenTTL              = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type AuthService struct {
	Repo      *repository.UserRepository
	Validator *validation.Validator
	Secret    []byte
	// VerifyTokens switches Validate from the presence check to a full
	// signature and expiry check.
	VerifyTokens bool
	Now          func() time.Time
}

// NewAuthService signs tokens with secret. An empty secret is replaced by a
// random one, so tokens do not survive a restart.
func NewAuthService(repo *repository.UserRepository, secret string, verify bool) *AuthService {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		rand.Read(key)
		logger.Sugar.Warn("AUTH_TOKEN_SECRET not set, using a random per-process secret")
	}
	return &AuthService{
		Repo:         repo,
		Validator:    validation.New(),
		Secret:       key,
		VerifyTokens: verify,
		Now:          time.Now,
	}
}

// Login checks the credentials. Wrong credentials are a normal outcome and
// come back as an unsuccessful response; only store failures are errors.
func (s *AuthService) Login(req model.LoginRequest) (*model.LoginResponse, error) {
	if err := s.Validator.Validate(req); err != nil {
		return &model.LoginResponse{Message: msgInvalidCredentials}, nil
	}
	user, err := s.Repo.GetByUsername(req.Username)
	if errors.Is(err, store.ErrNotFound) {
		return &model.LoginResponse{Message: msgInvalidCredentials}, nil
	}
	if err != nil {
		return nil, err
	}
	if !passwordMatches(user, req.Password) {
		return &model.LoginResponse{Message: msgInvalidCredentials}, nil
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{
		Success: true,
		Message: msgLoginOK,
		Token:   token,
		User: &model.UserInfo{
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Role:        user.Role,
		},
	}, nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func passwordMatches(u *model.User, password string) bool {
	if isBcryptHash(u.Password) {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
	}
	logger.Sugar.Warnf("User %q has a plaintext password; store a bcrypt hash instead", u.Username)
	return u.Password == password
}

// IssueToken returns an HS256 token naming the user and role.
func (s *AuthService) IssueToken(u *model.User) (string, error) {
	now := s.Now()
	claims := jwt.MapClaims{
		"sub":  u.Username,
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the username.
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.Now))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return sub, nil
}

// Validate reports whether token is acceptable. Without VerifyTokens any
// non-empty token passes.
func (s *AuthService) Validate(token string) bool {
	if !s.VerifyTokens {
		return token != ""
	}
	_, err := s.ParseToken(token)
	return err == nil
}
