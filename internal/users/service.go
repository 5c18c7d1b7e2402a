package users

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	Repo          Repo
	AdminUsername string
	AdminPassword string
}

func NewService(repo Repo, adminUsername, adminPassword string) *Service {
	return &Service{Repo: repo, AdminUsername: adminUsername, AdminPassword: adminPassword}
}

// Registration is the input to Register. Web clients send the date of birth
// as Secret.
type Registration struct {
	Role           string
	Name           string
	Username       string
	Secret         string
	Phone          string
	AssignedMentor string
}

// Register creates a student or mentor account.
func (s *Service) Register(ctx context.Context, reg Registration) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	role := strings.ToLower(strings.TrimSpace(reg.Role))
	username := strings.TrimSpace(reg.Username)
	name := strings.TrimSpace(reg.Name)
	if role == "" || name == "" || username == "" || reg.Secret == "" {
		return User{}, ErrMissingFields
	}
	if role != RoleStudent && role != RoleMentor {
		return User{}, ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Secret), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash secret: %w", err)
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         name,
		Phone:        strings.TrimSpace(reg.Phone),
		Role:         role,
		PasswordHash: string(hash),
	}
	if role == RoleStudent {
		user.AssignedMentor = strings.TrimSpace(reg.AssignedMentor)
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate checks credentials for the given role.
func (s *Service) Authenticate(ctx context.Context, role, username, secret string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	role = strings.ToLower(strings.TrimSpace(role))
	username = strings.TrimSpace(username)
	if role == "" || username == "" || secret == "" {
		return User{}, ErrMissingFields
	}

	if role == RoleAdmin {
		if s.AdminPassword == "" ||
			subtle.ConstantTimeCompare([]byte(username), []byte(s.AdminUsername)) != 1 ||
			subtle.ConstantTimeCompare([]byte(secret), []byte(s.AdminPassword)) != 1 {
			return User{}, ErrInvalidCredentials
		}
		return s.adminUser(), nil
	}

	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.Role != role {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Get returns a stored user by username.
func (s *Service) Get(ctx context.Context, username string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(username) == "" {
		return User{}, errors.New("username is required")
	}
	return s.Repo.GetByUsername(ctx, username)
}

// StudentsForMentor lists the students assigned to mentor.
func (s *Service) StudentsForMentor(ctx context.Context, mentor string) ([]User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("users service not configured")
	}
	return s.Repo.ListByMentor(ctx, mentor)
}

func (s *Service) adminUser() User {
	return User{ID: RoleAdmin, Username: s.AdminUsername, Name: "Admin", Role: RoleAdmin}
}
