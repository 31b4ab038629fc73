package services

import (
	"errors"
	"fmt"

	"afrisoutien/internal/models"
	"afrisoutien/internal/repositories"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrItemNotAvailable  = errors.New("item is not available")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNotPending   = errors.New("order already processed")
	ErrOwnItemOrder      = errors.New("cannot request your own item")
	ErrDuplicateOrder    = errors.New("a request for this item is already pending")
	ErrTitleRequired     = errors.New("title is required")
	ErrMotivationMissing = errors.New("motivation is required")
)

type BoutiqueService struct {
	Items    repositories.BoutiqueItemRepository
	Orders   repositories.BoutiqueOrderRepository
	Notifier Notifier
}

func NewBoutiqueService(items repositories.BoutiqueItemRepository, orders repositories.BoutiqueOrderRepository, notifier Notifier) *BoutiqueService {
	return &BoutiqueService{Items: items, Orders: orders, Notifier: notifier}
}

// ProposeItem registers a donated good for moderation.
func (s *BoutiqueService) ProposeItem(item *models.BoutiqueItem) error {
	if item.Title == "" {
		return ErrTitleRequired
	}
	item.Status = models.ItemPendingReview
	if err := s.Items.Create(item); err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.ItemSubmitted(item.ID, item.Title)
	}
	return nil
}

func (s *BoutiqueService) GetItem(id int) (*models.BoutiqueItem, error) {
	return s.Items.GetByID(id)
}

// ListPublished is the public boutique catalogue.
func (s *BoutiqueService) ListPublished(category string, limit, offset int) ([]*models.BoutiqueItem, error) {
	return s.Items.Filter(models.ItemPublished, category, limit, offset)
}

// ListItems is the admin view, any status.
func (s *BoutiqueService) ListItems(status string, limit, offset int) ([]*models.BoutiqueItem, error) {
	return s.Items.Filter(status, "", limit, offset)
}

// ModerateItem applies an admin decision against the item transition table.
func (s *BoutiqueService) ModerateItem(id int, to string) (*models.BoutiqueItem, error) {
	item, err := s.Items.GetByID(id)
	if err != nil || item == nil {
		return nil, ErrItemNotFound
	}
	if !canTransition(item.Status, to, ItemTransitions) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, to)
	}
	if err := s.Items.UpdateStatus(id, to); err != nil {
		return nil, err
	}
	item.Status = to
	return item, nil
}

// RequestItem files a pickup request for a published item.
func (s *BoutiqueService) RequestItem(itemID, beneficiaryID int, motivation string) (*models.BoutiqueOrder, error) {
	if motivation == "" {
		return nil, ErrMotivationMissing
	}
	item, err := s.Items.GetByID(itemID)
	if err != nil || item == nil {
		return nil, ErrItemNotFound
	}
	if item.Status != models.ItemPublished {
		return nil, ErrItemNotAvailable
	}
	if item.DonorID != nil && *item.DonorID == beneficiaryID {
		return nil, ErrOwnItemOrder
	}

	pending, err := s.Orders.PendingForItem(itemID)
	if err != nil {
		return nil, err
	}
	for _, o := range pending {
		if o.BeneficiaryID == beneficiaryID {
			return nil, ErrDuplicateOrder
		}
	}

	order := &models.BoutiqueOrder{
		ItemID:        itemID,
		BeneficiaryID: beneficiaryID,
		Motivation:    motivation,
		Status:        models.OrderPending,
	}
	if err := s.Orders.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ApproveOrder reserves the item for the beneficiary and rejects the other
// pending requests for it.
func (s *BoutiqueService) ApproveOrder(orderID int) (*models.BoutiqueOrder, error) {
	order, err := s.Orders.GetByID(orderID)
	if err != nil || order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != models.OrderPending {
		return nil, ErrOrderNotPending
	}
	item, err := s.Items.GetByID(order.ItemID)
	if err != nil || item == nil {
		return nil, ErrItemNotFound
	}
	if item.Status != models.ItemPublished {
		return nil, ErrItemNotAvailable
	}

	if err := s.Items.UpdateStatus(item.ID, models.ItemReserved); err != nil {
		return nil, err
	}
	if err := s.Orders.UpdateStatus(order.ID, models.OrderApproved); err != nil {
		return nil, err
	}
	order.Status = models.OrderApproved

	pending, err := s.Orders.PendingForItem(order.ItemID)
	if err != nil {
		return order, nil // approval already done, listing others is best effort
	}
	for _, o := range pending {
		if o.ID != order.ID {
			_ = s.Orders.UpdateStatus(o.ID, models.OrderRejected)
		}
	}
	return order, nil
}

func (s *BoutiqueService) RejectOrder(orderID int) (*models.BoutiqueOrder, error) {
	order, err := s.Orders.GetByID(orderID)
	if err != nil || order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != models.OrderPending {
		return nil, ErrOrderNotPending
	}
	if err := s.Orders.UpdateStatus(order.ID, models.OrderRejected); err != nil {
		return nil, err
	}
	order.Status = models.OrderRejected
	return order, nil
}

func (s *BoutiqueService) ListOrders(status string, limit, offset int) ([]*models.BoutiqueOrder, error) {
	if status == "" {
		status = models.OrderPending
	}
	return s.Orders.ListByStatus(status, limit, offset)
}
