package services

import (
	"errors"
	"log"
	"strings"

	"afrisoutien/internal/repositories"
	"afrisoutien/internal/tokens"
)

var (
	ErrVerifTokenInvalid = errors.New("invalid verification token")
	ErrAlreadyVerified   = errors.New("account already verified")
)

type VerificationService interface {
	Confirm(token string) error
	Resend(email string) error
}

type verificationService struct {
	users  repositories.UserRepository
	emails EmailService
}

func NewVerificationService(users repositories.UserRepository, emails EmailService) VerificationService {
	return &verificationService{users: users, emails: emails}
}

// Confirm flips is_verified exactly once and clears the token.
func (s *verificationService) Confirm(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrVerifTokenInvalid
	}
	user, err := s.users.GetByVerificationToken(token)
	if err != nil || user == nil {
		return ErrVerifTokenInvalid
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	return s.users.MarkVerified(user.ID)
}

// Resend overwrites any outstanding token; a user never holds two.
func (s *verificationService) Resend(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.GetByEmail(email)
	if err != nil || user == nil {
		// don't leak account existence
		log.Printf("[verify][resend] request for %q: user not found or error: %v", email, err)
		return nil
	}
	if user.IsVerified {
		return nil
	}

	token, err := tokens.NewMailToken(32)
	if err != nil {
		return err
	}
	if err := s.users.SetVerificationToken(user.ID, token); err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendVerificationEmail(user.Email, user.Name, token); err != nil {
			log.Printf("[verify][resend] failed to send email to %s: %v", user.Email, err)
		}
	}
	return nil
}
