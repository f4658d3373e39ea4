package services

import (
	"fmt"
	"time"

	"restaurant/entity"
	"restaurant/utils"
)

// AuthService handles login, registration and session tokens.
type AuthService struct {
	Users     *UserService
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(users *UserService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		Users:     users,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Register creates a staff account.
func (s *AuthService) Register(username, email, password string) (*entity.User, error) {
	return s.Users.Create(UserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     entity.RoleStaff,
	})
}

// Login verifies the credentials and issues a session token.
func (s *AuthService) Login(username, password string) (string, *entity.User, error) {
	user, err := s.Users.Authenticate(username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) ParseToken(token string) (*utils.Claims, error) {
	return utils.ParseToken(token, s.jwtSecret)
}

func (s *AuthService) TTL() time.Duration {
	return s.jwtTTL
}
