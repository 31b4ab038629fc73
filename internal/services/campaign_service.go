package services

import (
	"errors"
	"fmt"

	"afrisoutien/internal/models"
	"afrisoutien/internal/repositories"
)

var (
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrCampaignNotActive  = errors.New("campaign is not accepting donations")
	ErrGoalAmountRequired = errors.New("goal amount must be positive")
)

type CampaignService struct {
	Repo     repositories.CampaignRepository
	Notifier Notifier
}

func NewCampaignService(repo repositories.CampaignRepository, notifier Notifier) *CampaignService {
	return &CampaignService{Repo: repo, Notifier: notifier}
}

// Create registers a new campaign in pending status; it becomes visible to
// the public only after an admin approves it.
func (s *CampaignService) Create(c *models.Campaign) error {
	if c.GoalAmount <= 0 {
		return ErrGoalAmountRequired
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	c.Status = models.CampaignPending
	c.CurrentAmount = 0
	if err := s.Repo.Create(c); err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.CampaignSubmitted(c.ID, c.Title)
	}
	return nil
}

func (s *CampaignService) GetByID(id int) (*models.Campaign, error) {
	return s.Repo.GetByID(id)
}

// ListPublic returns active campaigns only.
func (s *CampaignService) ListPublic(category string, limit, offset int) ([]*models.Campaign, error) {
	return s.Repo.Filter(models.CampaignActive, category, 0, limit, offset)
}

// ListAll is the admin view across all statuses.
func (s *CampaignService) ListAll(status string, limit, offset int) ([]*models.Campaign, error) {
	return s.Repo.Filter(status, "", 0, limit, offset)
}

func (s *CampaignService) ListByOwner(ownerID, limit, offset int) ([]*models.Campaign, error) {
	return s.Repo.Filter("", "", ownerID, limit, offset)
}

// ChangeStatus applies an admin moderation decision against the transition
// table.
func (s *CampaignService) ChangeStatus(id int, to string) (*models.Campaign, error) {
	c, err := s.Repo.GetByID(id)
	if err != nil || c == nil {
		return nil, ErrCampaignNotFound
	}
	if !canTransition(c.Status, to, CampaignTransitions) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, to)
	}
	if err := s.Repo.UpdateStatus(id, to); err != nil {
		return nil, err
	}
	c.Status = to
	return c, nil
}

// CreditDonation adds an approved donation amount and completes the campaign
// once the goal is reached.
func (s *CampaignService) CreditDonation(campaignID int, amount int64) error {
	c, err := s.Repo.GetByID(campaignID)
	if err != nil || c == nil {
		return ErrCampaignNotFound
	}
	if c.Status != models.CampaignActive {
		return ErrCampaignNotActive
	}
	total, err := s.Repo.AddAmount(campaignID, amount)
	if err != nil {
		return err
	}
	if total >= c.GoalAmount {
		if err := s.Repo.UpdateStatus(campaignID, models.CampaignCompleted); err != nil {
			return err
		}
	}
	return nil
}
