package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendVerificationEmail(email, name, token string) error
	SendPasswordResetEmail(email, token string) error
	SendDonationReceiptEmail(email, name, reference string, amount int64, pdfPath string) error
}

type emailService struct {
	dialer    *gomail.Dialer
	from      string
	publicURL string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, publicURL string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer:    dialer,
		from:      fromEmail,
		publicURL: publicURL,
	}
}

func (s *emailService) SendVerificationEmail(email, name, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Confirmez votre adresse e-mail — Afri Soutien")

	body := fmt.Sprintf(`
		<h2>Bienvenue sur Afri Soutien, %s !</h2>
		<p>Merci de votre inscription. Veuillez confirmer votre adresse e-mail en cliquant sur le lien ci-dessous :</p>
		<p><a href="%s/verify-email?token=%s">Confirmer mon adresse</a></p>
		<p>Si vous n'êtes pas à l'origine de cette inscription, ignorez ce message.</p>
		<p>L'équipe Afri Soutien</p>
	`, name, s.publicURL, token)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordResetEmail(email, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Réinitialisation de votre mot de passe — Afri Soutien")

	body := fmt.Sprintf(`
		<h3>Réinitialisation de mot de passe</h3>
		<p>Nous avons reçu une demande de réinitialisation du mot de passe de votre compte.</p>
		<p><a href="%s/reset-password?token=%s">Choisir un nouveau mot de passe</a></p>
		<p>Ce lien expire dans une heure. Si vous n'avez rien demandé, ignorez ce message.</p>
	`, s.publicURL, token)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

func (s *emailService) SendDonationReceiptEmail(email, name, reference string, amount int64, pdfPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Reçu de votre don — Afri Soutien")

	body := fmt.Sprintf(`
		<h3>Merci pour votre générosité, %s !</h3>
		<p>Votre don de %d FCFA (référence %s) a été validé.</p>
		<p>Vous trouverez votre reçu en pièce jointe.</p>
		<p>L'équipe Afri Soutien</p>
	`, name, amount, reference)

	m.SetBody("text/html", body)
	if pdfPath != "" {
		m.Attach(pdfPath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send donation receipt email: %w", err)
	}
	return nil
}
