package repositories

import (
	"database/sql"
	"fmt"

	"afrisoutien/internal/models"
)

type CampaignRepository interface {
	Create(c *models.Campaign) error
	GetByID(id int) (*models.Campaign, error)
	Update(c *models.Campaign) error
	UpdateStatus(id int, status string) error
	// AddAmount atomically increments current_amount and returns the new total.
	AddAmount(id int, delta int64) (int64, error)
	Filter(status, category string, ownerID, limit, offset int) ([]*models.Campaign, error)
	Count() (int, error)
	CountByStatus(status string) (int, error)
	TotalCollected() (int64, error)
}

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(c *models.Campaign) error {
	const query = `
		INSERT INTO campaigns (owner_id, title, description, category, goal_amount, current_amount, status, created_at)
		VALUES ($1,$2,$3,$4,$5,0,$6,NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(query,
		c.OwnerID, c.Title, c.Description, c.Category, c.GoalAmount, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *campaignRepository) GetByID(id int) (*models.Campaign, error) {
	const query = `
		SELECT id, owner_id, title, description, category, goal_amount, current_amount, status, created_at
		FROM campaigns
		WHERE id=$1
	`
	c := &models.Campaign{}
	err := r.db.QueryRow(query, id).Scan(
		&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.Category,
		&c.GoalAmount, &c.CurrentAmount, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *campaignRepository) Update(c *models.Campaign) error {
	const query = `
		UPDATE campaigns
		SET title=$1, description=$2, category=$3, goal_amount=$4, status=$5
		WHERE id=$6
	`
	_, err := r.db.Exec(query, c.Title, c.Description, c.Category, c.GoalAmount, c.Status, c.ID)
	return err
}

func (r *campaignRepository) UpdateStatus(id int, status string) error {
	_, err := r.db.Exec(`UPDATE campaigns SET status=$1 WHERE id=$2`, status, id)
	return err
}

func (r *campaignRepository) AddAmount(id int, delta int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(`
		UPDATE campaigns
		SET current_amount = current_amount + $1
		WHERE id=$2
		RETURNING current_amount
	`, delta, id).Scan(&total)
	return total, err
}

func (r *campaignRepository) Filter(status, category string, ownerID, limit, offset int) ([]*models.Campaign, error) {
	query := `
		SELECT id, owner_id, title, description, category, goal_amount, current_amount, status, created_at
		FROM campaigns WHERE 1=1`
	args := []interface{}{}
	i := 1

	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, status)
		i++
	}
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", i)
		args = append(args, category)
		i++
	}
	if ownerID > 0 {
		query += fmt.Sprintf(" AND owner_id = $%d", i)
		args = append(args, ownerID)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Campaign
	for rows.Next() {
		c := &models.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.Category,
			&c.GoalAmount, &c.CurrentAmount, &c.Status, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *campaignRepository) Count() (int, error) {
	var c int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM campaigns`).Scan(&c)
	return c, err
}

func (r *campaignRepository) CountByStatus(status string) (int, error) {
	var c int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM campaigns WHERE status=$1`, status).Scan(&c)
	return c, err
}

func (r *campaignRepository) TotalCollected() (int64, error) {
	var total int64
	err := r.db.QueryRow(`SELECT COALESCE(SUM(current_amount),0) FROM campaigns`).Scan(&total)
	return total, err
}
