package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"afrisoutien/internal/models"
	"afrisoutien/internal/repositories"
)

var ErrOperatorUnknown = errors.New("unknown mobile money operator")

// operators we know how to route; the provider integration itself is a stub
var knownOperators = map[string]bool{
	"orange_money": true,
	"mtn_momo":     true,
	"moov_money":   true,
	"wave":         true,
}

// ProviderClient is the outbound leg of a mobile-money payment. The real
// integration does not exist yet; the dry-run client logs and succeeds.
type ProviderClient struct {
	Operator string
	APIKey   string
	DryRun   bool
}

func NewProviderClient(operator, apiKey string, dryRun bool) *ProviderClient {
	return &ProviderClient{Operator: operator, APIKey: apiKey, DryRun: dryRun}
}

func (c *ProviderClient) InitiateCharge(phone string, amount int64, reference string) error {
	if c.DryRun || c.APIKey == "" {
		log.Printf("[payment][dry-run] operator=%s phone=%s amount=%d ref=%s", c.Operator, phone, amount, reference)
		return nil
	}
	// TODO: wire the aggregator API once the contract with the operator is signed
	return fmt.Errorf("payment provider %s not configured", c.Operator)
}

type PaymentService struct {
	Repo      *repositories.PaymentRepository
	Campaigns *CampaignService
	Provider  *ProviderClient
}

func NewPaymentService(repo *repositories.PaymentRepository, campaigns *CampaignService, provider *ProviderClient) *PaymentService {
	return &PaymentService{Repo: repo, Campaigns: campaigns, Provider: provider}
}

// Initiate records an intent and asks the provider to start the charge. The
// intent stays "initiated" until an operator callback flow exists.
func (s *PaymentService) Initiate(campaignID int, amount int64, operator, phone string) (*models.PaymentIntent, error) {
	if amount <= 0 {
		return nil, ErrAmountRequired
	}
	if !knownOperators[operator] {
		return nil, ErrOperatorUnknown
	}
	campaign, err := s.Campaigns.GetByID(campaignID)
	if err != nil || campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != models.CampaignActive {
		return nil, ErrCampaignNotActive
	}

	intent := &models.PaymentIntent{
		CampaignID: campaignID,
		Amount:     amount,
		Operator:   operator,
		Phone:      phone,
		Status:     models.PaymentInitiated,
		Reference:  uuid.NewString(),
	}
	if err := s.Repo.Create(intent); err != nil {
		return nil, err
	}

	if err := s.Provider.InitiateCharge(phone, amount, intent.Reference); err != nil {
		if uerr := s.Repo.UpdateStatus(intent.ID, models.PaymentFailed); uerr != nil {
			log.Printf("[payment][initiate] mark failed error for %s: %v", intent.Reference, uerr)
		}
		intent.Status = models.PaymentFailed
		return intent, fmt.Errorf("initiate charge: %w", err)
	}
	return intent, nil
}

func (s *PaymentService) List(limit, offset int) ([]*models.PaymentIntent, error) {
	return s.Repo.List(limit, offset)
}
