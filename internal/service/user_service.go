package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/gito/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// UserService owns account creation, authentication and profile edits.
type UserService struct {
	db *gorm.DB
}

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	City     string
	Country  string
}

// ProfileInput is a partial update; nil fields are left untouched.
type ProfileInput struct {
	Name    *string
	City    *string
	Country *string
}

func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*db.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidUserInput)
	}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, fmt.Errorf("%w: email is invalid", ErrInvalidUserInput)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidUserInput, minPasswordLength)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		City:     strings.TrimSpace(input.City),
		Country:  strings.TrimSpace(input.Country),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// a concurrent sign-up won the unique index after our count
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate returns the user for matching credentials. Unknown emails and
// wrong passwords produce the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get loads a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields of input.
func (s *UserService) UpdateProfile(ctx context.Context, id string, input ProfileInput) (*db.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidUserInput)
		}
		user.Name = name
	}
	if input.City != nil {
		user.City = strings.TrimSpace(*input.City)
	}
	if input.Country != nil {
		user.Country = strings.TrimSpace(*input.Country)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// EnsureUser returns the account for email, creating it when missing.
func (s *UserService) EnsureUser(ctx context.Context, input RegisterInput) (*db.User, bool, error) {
	var existing db.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(input.Email)).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find user: %w", err)
	}

	user, err := s.Register(ctx, input)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
