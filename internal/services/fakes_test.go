package services

import (
	"database/sql"
	"time"

	"afrisoutien/internal/authz"
	"afrisoutien/internal/models"
	"afrisoutien/internal/pdf"
)

// In-memory repositories for service tests. They apply the same "not found"
// convention as the SQL ones: sql.ErrNoRows.

type memCampaignRepo struct {
	nextID    int
	campaigns map[int]*models.Campaign
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{nextID: 1, campaigns: map[int]*models.Campaign{}}
}

func (r *memCampaignRepo) Create(c *models.Campaign) error {
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now()
	cp := *c
	r.campaigns[c.ID] = &cp
	return nil
}

func (r *memCampaignRepo) GetByID(id int) (*models.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *memCampaignRepo) Update(c *models.Campaign) error {
	if _, ok := r.campaigns[c.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *c
	r.campaigns[c.ID] = &cp
	return nil
}

func (r *memCampaignRepo) UpdateStatus(id int, status string) error {
	c, ok := r.campaigns[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.Status = status
	return nil
}

func (r *memCampaignRepo) AddAmount(id int, delta int64) (int64, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return 0, sql.ErrNoRows
	}
	c.CurrentAmount += delta
	return c.CurrentAmount, nil
}

func (r *memCampaignRepo) Filter(status, category string, ownerID, limit, offset int) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, c := range r.campaigns {
		if status != "" && c.Status != status {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		if ownerID != 0 && c.OwnerID != ownerID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCampaignRepo) Count() (int, error) { return len(r.campaigns), nil }

func (r *memCampaignRepo) CountByStatus(status string) (int, error) {
	n := 0
	for _, c := range r.campaigns {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memCampaignRepo) TotalCollected() (int64, error) {
	var total int64
	for _, c := range r.campaigns {
		total += c.CurrentAmount
	}
	return total, nil
}

type memDonationRepo struct {
	nextID    int
	donations map[int]*models.Donation
}

func newMemDonationRepo() *memDonationRepo {
	return &memDonationRepo{nextID: 1, donations: map[int]*models.Donation{}}
}

func (r *memDonationRepo) Create(d *models.Donation) error {
	d.ID = r.nextID
	r.nextID++
	d.CreatedAt = time.Now()
	cp := *d
	r.donations[d.ID] = &cp
	return nil
}

func (r *memDonationRepo) GetByID(id int) (*models.Donation, error) {
	d, ok := r.donations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (r *memDonationRepo) GetByReference(ref string) (*models.Donation, error) {
	for _, d := range r.donations {
		if d.Reference == ref {
			cp := *d
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memDonationRepo) UpdateStatus(id int, status string) error {
	d, ok := r.donations[id]
	if !ok {
		return sql.ErrNoRows
	}
	d.Status = status
	return nil
}

func (r *memDonationRepo) Filter(status string, campaignID, donorID, limit, offset int) ([]*models.Donation, error) {
	var out []*models.Donation
	for _, d := range r.donations {
		if status != "" && d.Status != status {
			continue
		}
		if campaignID != 0 && d.CampaignID != campaignID {
			continue
		}
		if donorID != 0 && (d.DonorID == nil || *d.DonorID != donorID) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memDonationRepo) CountByStatus(status string) (int, error) {
	n := 0
	for _, d := range r.donations {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

type memItemRepo struct {
	nextID int
	items  map[int]*models.BoutiqueItem
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{nextID: 1, items: map[int]*models.BoutiqueItem{}}
}

func (r *memItemRepo) Create(item *models.BoutiqueItem) error {
	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = time.Now()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id int) (*models.BoutiqueItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *item
	return &cp, nil
}

func (r *memItemRepo) UpdateStatus(id int, status string) error {
	item, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	item.Status = status
	return nil
}

func (r *memItemRepo) Filter(status, category string, limit, offset int) ([]*models.BoutiqueItem, error) {
	var out []*models.BoutiqueItem
	for _, item := range r.items {
		if status != "" && item.Status != status {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memItemRepo) CountByStatus(status string) (int, error) {
	n := 0
	for _, item := range r.items {
		if item.Status == status {
			n++
		}
	}
	return n, nil
}

type memOrderRepo struct {
	nextID int
	orders map[int]*models.BoutiqueOrder
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{nextID: 1, orders: map[int]*models.BoutiqueOrder{}}
}

func (r *memOrderRepo) Create(order *models.BoutiqueOrder) error {
	order.ID = r.nextID
	r.nextID++
	order.CreatedAt = time.Now()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(id int) (*models.BoutiqueOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) UpdateStatus(id int, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.Status = status
	return nil
}

func (r *memOrderRepo) ListByStatus(status string, limit, offset int) ([]*models.BoutiqueOrder, error) {
	var out []*models.BoutiqueOrder
	for _, o := range r.orders {
		if o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) PendingForItem(itemID int) ([]*models.BoutiqueOrder, error) {
	var out []*models.BoutiqueOrder
	for _, o := range r.orders {
		if o.ItemID == itemID && o.Status == models.OrderPending {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memUserRepo struct {
	nextID int
	users  map[int]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int]*models.User{}}
}

func (r *memUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(id int) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) Count() (int, error) { return len(r.users), nil }

func (r *memUserRepo) CountByRole(role authz.Role) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) UpdateRole(userID int, role authz.Role) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.Role = role
	return nil
}

func (r *memUserRepo) UpdatePassword(userID int, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) SetVerificationToken(userID int, token string) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.EmailVerificationToken = &token
	return nil
}

func (r *memUserRepo) GetByVerificationToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memUserRepo) MarkVerified(userID int) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsVerified = true
	u.EmailVerificationToken = nil
	return nil
}

func (r *memUserRepo) SetResetToken(userID int, token string, expiresAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordResetToken = &token
	u.PasswordResetExpiresAt = &expiresAt
	return nil
}

func (r *memUserRepo) GetByResetToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memUserRepo) ClearResetToken(userID int) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordResetToken = nil
	u.PasswordResetExpiresAt = nil
	return nil
}

// recordingEmails captures outgoing mail instead of hitting SMTP.
type recordingEmails struct {
	verifications []string // tokens
	resets        []string // tokens
	receipts      []string // references
}

func (e *recordingEmails) SendVerificationEmail(email, name, token string) error {
	e.verifications = append(e.verifications, token)
	return nil
}

func (e *recordingEmails) SendPasswordResetEmail(email, token string) error {
	e.resets = append(e.resets, token)
	return nil
}

func (e *recordingEmails) SendDonationReceiptEmail(email, name, reference string, amount int64, pdfPath string) error {
	e.receipts = append(e.receipts, reference)
	return nil
}

type recordingNotifier struct {
	campaigns []int
	items     []int
	donations []string
}

func (n *recordingNotifier) CampaignSubmitted(campaignID int, title string) {
	n.campaigns = append(n.campaigns, campaignID)
}

func (n *recordingNotifier) ItemSubmitted(itemID int, title string) {
	n.items = append(n.items, itemID)
}

func (n *recordingNotifier) DonationRecorded(reference string, amount int64) {
	n.donations = append(n.donations, reference)
}

type fakeReceipts struct {
	generated []string
}

func (f *fakeReceipts) GenerateReceipt(data pdf.ReceiptData) (string, error) {
	f.generated = append(f.generated, data.Reference)
	return "/tmp/" + data.Reference + ".pdf", nil
}
