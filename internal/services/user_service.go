package services

import (
	"fmt"
	"log"
	"strings"

	"afrisoutien/internal/authz"
	"afrisoutien/internal/models"
	"afrisoutien/internal/repositories"
	"afrisoutien/internal/tokens"
)

type UserService interface {
	Register(name, email, password string, role authz.Role) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateProfile(userID int, name string) (*models.User, error)
	List(limit, offset int) ([]*models.User, error)
	ChangeRole(userID int, role authz.Role) error
	Delete(id int) error
}

type userService struct {
	repo     repositories.UserRepository
	emails   EmailService
	auth     AuthService
	notifier Notifier
}

func NewUserService(repo repositories.UserRepository, emails EmailService, auth AuthService, notifier Notifier) UserService {
	return &userService{
		repo:     repo,
		emails:   emails,
		auth:     auth,
		notifier: notifier,
	}
}

// Register creates an unverified account and mails the verification link.
// The mail is best effort: a broken SMTP relay must not block signups.
func (s *userService) Register(name, email, password string, role authz.Role) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("password is required")
	}
	if role == authz.RoleAdmin || !role.Valid() {
		// admin accounts are promoted by an existing admin, never self-assigned
		role = authz.RoleDonor
	}

	if existing, err := s.repo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	verifToken, err := tokens.NewMailToken(32)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:                   strings.TrimSpace(name),
		Email:                  email,
		PasswordHash:           hash,
		Role:                   role,
		IsVerified:             false,
		EmailVerificationToken: &verifToken,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendVerificationEmail(user.Email, user.Name, verifToken); err != nil {
			log.Printf("[user][register] warning: failed to send verification email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

func (s *userService) GetByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
}

func (s *userService) UpdateProfile(userID int, name string) (*models.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user not found")
	}
	if strings.TrimSpace(name) != "" {
		user.Name = strings.TrimSpace(name)
	}
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *userService) ChangeRole(userID int, role authz.Role) error {
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}
	return s.repo.UpdateRole(userID, role)
}

func (s *userService) Delete(id int) error {
	return s.repo.Delete(id)
}
