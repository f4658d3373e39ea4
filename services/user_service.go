package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"restaurant/entity"
	"restaurant/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 6

// UserService provisions staff accounts for the web app and the CLI.
type UserService struct {
	Repo *repository.UserRepository
	DB   *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{Repo: repository.NewUserRepository(db), DB: db}
}

type UserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Create validates uniqueness, hashes the password and stores the user.
func (s *UserService) Create(in UserInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}

	verr := &ValidationError{Fields: map[string]string{}}
	if n := utf8.RuneCountInString(username); n < 2 || n > 20 {
		verr.Fields["username"] = "Field must be between 2 and 20 characters long."
	}
	if email == "" {
		verr.Fields["email"] = "This field is required."
	}
	if len(in.Password) < minPasswordLen {
		verr.Fields["password"] = fmt.Sprintf("Field must be at least %d characters long.", minPasswordLen)
	}
	if !entity.ValidRole(role) {
		verr.Fields["role"] = "Not a valid choice."
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	count, err := s.Repo.CountByUsername(username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		verr.Fields["username"] = "Username is already taken. Please choose a different one."
	}
	count, err = s.Repo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		verr.Fields["email"] = "Email is already registered. Please use a different one."
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) FindByUsername(username string) (*entity.User, error) {
	u, err := s.Repo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, lookup("user", err)
	}
	return u, nil
}

func (s *UserService) Get(id uint) (*entity.User, error) {
	u, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, lookup("user", err)
	}
	return u, nil
}

func (s *UserService) List() ([]entity.User, error) {
	return s.Repo.List()
}

// SetPassword replaces the password and role of an existing user.
func (s *UserService) SetPassword(userID uint, password, role string) error {
	if len(password) < minPasswordLen {
		return fieldError("password", fmt.Sprintf("Field must be at least %d characters long.", minPasswordLen))
	}
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.ValidRole(role) {
		return fieldError("role", "Not a valid choice.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	n, err := s.Repo.Update(userID, map[string]any{
		"password_hash": string(hashed),
		"role":          role,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}

// Delete refuses users that served orders; the order history keeps them.
func (s *UserService) Delete(userID uint) error {
	var orders int64
	if err := s.DB.Model(&entity.Order{}).Where("user_id = ?", userID).Count(&orders).Error; err != nil {
		return err
	}
	if orders > 0 {
		return ErrInUse
	}
	n, err := s.Repo.Delete(userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(username, password string) (*entity.User, error) {
	user, err := s.Repo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
