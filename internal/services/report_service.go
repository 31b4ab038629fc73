package services

import (
	"afrisoutien/internal/authz"
	"afrisoutien/internal/models"
	"afrisoutien/internal/repositories"
)

// DashboardSummary feeds the admin back-office landing page.
type DashboardSummary struct {
	Users            int   `json:"users"`
	Donors           int   `json:"donors"`
	Beneficiaries    int   `json:"beneficiaries"`
	CampaignsTotal   int   `json:"campaigns_total"`
	CampaignsPending int   `json:"campaigns_pending"`
	CampaignsActive  int   `json:"campaigns_active"`
	DonationsPending int   `json:"donations_pending"`
	ItemsPending     int   `json:"items_pending"`
	TotalCollected   int64 `json:"total_collected"`
}

type ReportService struct {
	Users     repositories.UserRepository
	Campaigns repositories.CampaignRepository
	Donations repositories.DonationRepository
	Items     repositories.BoutiqueItemRepository
}

func NewReportService(
	users repositories.UserRepository,
	campaigns repositories.CampaignRepository,
	donations repositories.DonationRepository,
	items repositories.BoutiqueItemRepository,
) *ReportService {
	return &ReportService{Users: users, Campaigns: campaigns, Donations: donations, Items: items}
}

func (s *ReportService) Summary() (*DashboardSummary, error) {
	sum := &DashboardSummary{}
	var err error

	if sum.Users, err = s.Users.Count(); err != nil {
		return nil, err
	}
	if sum.Donors, err = s.Users.CountByRole(authz.RoleDonor); err != nil {
		return nil, err
	}
	if sum.Beneficiaries, err = s.Users.CountByRole(authz.RoleBeneficiary); err != nil {
		return nil, err
	}
	if sum.CampaignsTotal, err = s.Campaigns.Count(); err != nil {
		return nil, err
	}
	if sum.CampaignsPending, err = s.Campaigns.CountByStatus(models.CampaignPending); err != nil {
		return nil, err
	}
	if sum.CampaignsActive, err = s.Campaigns.CountByStatus(models.CampaignActive); err != nil {
		return nil, err
	}
	if sum.DonationsPending, err = s.Donations.CountByStatus(models.DonationPending); err != nil {
		return nil, err
	}
	if sum.ItemsPending, err = s.Items.CountByStatus(models.ItemPendingReview); err != nil {
		return nil, err
	}
	if sum.TotalCollected, err = s.Campaigns.TotalCollected(); err != nil {
		return nil, err
	}
	return sum, nil
}
