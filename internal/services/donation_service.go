package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"afrisoutien/internal/models"
	"afrisoutien/internal/pdf"
	"afrisoutien/internal/repositories"
)

var (
	ErrDonationNotFound   = errors.New("donation not found")
	ErrDonationNotPending = errors.New("donation already processed")
	ErrAmountRequired     = errors.New("amount must be positive")
)

type DonationService struct {
	Repo      repositories.DonationRepository
	Campaigns *CampaignService
	Emails    EmailService
	Receipts  pdf.ReceiptGenerator
	Notifier  Notifier
}

func NewDonationService(
	repo repositories.DonationRepository,
	campaigns *CampaignService,
	emails EmailService,
	receipts pdf.ReceiptGenerator,
	notifier Notifier,
) *DonationService {
	return &DonationService{
		Repo:      repo,
		Campaigns: campaigns,
		Emails:    emails,
		Receipts:  receipts,
		Notifier:  notifier,
	}
}

// Record registers a pending donation. Anonymous donations carry no donor id;
// a donor email, when given, is only used for the receipt.
func (s *DonationService) Record(d *models.Donation) error {
	if d.Amount <= 0 {
		return ErrAmountRequired
	}
	campaign, err := s.Campaigns.GetByID(d.CampaignID)
	if err != nil || campaign == nil {
		return ErrCampaignNotFound
	}
	if campaign.Status != models.CampaignActive {
		return ErrCampaignNotActive
	}

	d.Reference = uuid.NewString()
	d.Status = models.DonationPending
	if err := s.Repo.Create(d); err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.DonationRecorded(d.Reference, d.Amount)
	}
	return nil
}

// Approve credits the campaign, generates the PDF receipt and mails it when a
// donor email is known. Approving twice is an error, the campaign is never
// credited twice.
func (s *DonationService) Approve(id int) (*models.Donation, error) {
	d, err := s.Repo.GetByID(id)
	if err != nil || d == nil {
		return nil, ErrDonationNotFound
	}
	if d.Status != models.DonationPending {
		return nil, ErrDonationNotPending
	}

	if err := s.Campaigns.CreditDonation(d.CampaignID, d.Amount); err != nil {
		return nil, fmt.Errorf("credit campaign: %w", err)
	}
	if err := s.Repo.UpdateStatus(d.ID, models.DonationApproved); err != nil {
		return nil, err
	}
	d.Status = models.DonationApproved

	// receipt is best effort, approval already happened
	var receiptPath string
	if s.Receipts != nil {
		receiptPath, err = s.Receipts.GenerateReceipt(pdf.ReceiptData{
			Reference: d.Reference,
			DonorName: d.DonorName,
			Amount:    d.Amount,
			CreatedAt: d.CreatedAt,
		})
		if err != nil {
			log.Printf("[donation][approve] receipt generation failed for %s: %v", d.Reference, err)
		}
	}
	if s.Emails != nil && d.DonorEmail != "" {
		if err := s.Emails.SendDonationReceiptEmail(d.DonorEmail, d.DonorName, d.Reference, d.Amount, receiptPath); err != nil {
			log.Printf("[donation][approve] receipt mail failed for %s: %v", d.Reference, err)
		}
	}

	return d, nil
}

func (s *DonationService) Reject(id int) (*models.Donation, error) {
	d, err := s.Repo.GetByID(id)
	if err != nil || d == nil {
		return nil, ErrDonationNotFound
	}
	if d.Status != models.DonationPending {
		return nil, ErrDonationNotPending
	}
	if err := s.Repo.UpdateStatus(d.ID, models.DonationRejected); err != nil {
		return nil, err
	}
	d.Status = models.DonationRejected
	return d, nil
}

func (s *DonationService) List(status string, campaignID, limit, offset int) ([]*models.Donation, error) {
	return s.Repo.Filter(status, campaignID, 0, limit, offset)
}

func (s *DonationService) ListByDonor(donorID, limit, offset int) ([]*models.Donation, error) {
	return s.Repo.Filter("", 0, donorID, limit, offset)
}
