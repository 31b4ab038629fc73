package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"afrisoutien/internal/repositories"
	"afrisoutien/internal/tokens"
)

var ErrResetTokenInvalid = errors.New("invalid or expired token")

const resetTokenTTL = time.Hour

type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(token, newPassword string) error
}

type passwordResetService struct {
	users  repositories.UserRepository
	emails EmailService
	auth   AuthService
}

func NewPasswordResetService(users repositories.UserRepository, emails EmailService, auth AuthService) PasswordResetService {
	return &passwordResetService{
		users:  users,
		emails: emails,
		auth:   auth,
	}
}

func (s *passwordResetService) RequestReset(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}
	user, err := s.users.GetByEmail(email)
	if err != nil || user == nil {
		// don't leak existence
		log.Printf("[password-reset] request for %q: user not found or error: %v", email, err)
		return nil
	}

	token, err := tokens.NewMailToken(32)
	if err != nil {
		return err
	}
	// overwrites any previous token: at most one outstanding reset per user
	if err := s.users.SetResetToken(user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendPasswordResetEmail(user.Email, token); err != nil {
			log.Printf("[password-reset] failed to send email to %s: %v", user.Email, err)
		}
	}
	return nil
}

func (s *passwordResetService) ResetPassword(token, newPassword string) error {
	token = strings.TrimSpace(token)
	newPassword = strings.TrimSpace(newPassword)
	if token == "" || newPassword == "" {
		return fmt.Errorf("token and password are required")
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	user, err := s.users.GetByResetToken(token)
	if err != nil || user == nil {
		return ErrResetTokenInvalid
	}
	if user.PasswordResetExpiresAt == nil || time.Now().After(*user.PasswordResetExpiresAt) {
		return ErrResetTokenInvalid
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	return s.users.ClearResetToken(user.ID)
}
