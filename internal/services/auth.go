package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
)

var (
	ErrNameTaken          = errors.New("name already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidName        = errors.New("name must be between 2 and 64 characters")
)

const minPasswordLength = 8

type authStore interface {
	CreateUser(user *models.User) error
	FindUserByName(name string) (models.User, error)
	CountUsers() (int64, error)
}

type AuthService struct {
	store authStore
}

func NewAuthService(store authStore) *AuthService {
	return &AuthService{store: store}
}

// Register creates a user with a bcrypt password hash. The very first
// registered user becomes the admin.
func (service *AuthService) Register(name string, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 64 {
		return models.User{}, ErrInvalidName
	}
	if len(password) < minPasswordLength {
		return models.User{}, ErrWeakPassword
	}

	if _, err := service.store.FindUserByName(name); err == nil {
		return models.User{}, ErrNameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, fmt.Errorf("check existing user: %w", err)
	}

	userCount, err := service.store.CountUsers()
	if err != nil {
		return models.User{}, fmt.Errorf("count users: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: string(hash),
		IsAdmin:      userCount == 0,
		CreatedAt:    time.Now(),
	}
	if err := service.store.CreateUser(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate checks a name and password pair. The same error covers both
// unknown names and wrong passwords.
func (service *AuthService) Authenticate(name string, password string) (models.User, error) {
	user, err := service.store.FindUserByName(strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
