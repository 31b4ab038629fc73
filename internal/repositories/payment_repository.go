package repositories

import (
	"database/sql"

	"afrisoutien/internal/models"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.PaymentIntent) error {
	const query = `
		INSERT INTO payment_intents (campaign_id, amount, operator, phone, status, reference, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(query,
		p.CampaignID, p.Amount, p.Operator, p.Phone, p.Status, p.Reference,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PaymentRepository) UpdateStatus(id int, status string) error {
	_, err := r.db.Exec(`UPDATE payment_intents SET status=$1 WHERE id=$2`, status, id)
	return err
}

func (r *PaymentRepository) List(limit, offset int) ([]*models.PaymentIntent, error) {
	const query = `
		SELECT id, campaign_id, amount, operator, phone, status, reference, created_at
		FROM payment_intents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PaymentIntent
	for rows.Next() {
		p := &models.PaymentIntent{}
		if err := rows.Scan(&p.ID, &p.CampaignID, &p.Amount, &p.Operator, &p.Phone, &p.Status, &p.Reference, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
