package repositories

import (
	"database/sql"
	"fmt"

	"afrisoutien/internal/models"
)

type DonationRepository interface {
	Create(d *models.Donation) error
	GetByID(id int) (*models.Donation, error)
	GetByReference(ref string) (*models.Donation, error)
	UpdateStatus(id int, status string) error
	Filter(status string, campaignID, donorID, limit, offset int) ([]*models.Donation, error)
	CountByStatus(status string) (int, error)
}

type donationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) DonationRepository {
	return &donationRepository{db: db}
}

const donationColumns = `id, campaign_id, donor_id, donor_name, donor_email, amount, reference, status, created_at`

func (r *donationRepository) Create(d *models.Donation) error {
	const query = `
		INSERT INTO donations (campaign_id, donor_id, donor_name, donor_email, amount, reference, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(query,
		d.CampaignID, d.DonorID, d.DonorName, d.DonorEmail, d.Amount, d.Reference, d.Status,
	).Scan(&d.ID, &d.CreatedAt)
}

func scanDonation(scan func(dest ...interface{}) error) (*models.Donation, error) {
	d := &models.Donation{}
	var (
		donorID    sql.NullInt64
		donorName  sql.NullString
		donorEmail sql.NullString
	)
	err := scan(
		&d.ID, &d.CampaignID, &donorID, &donorName, &donorEmail,
		&d.Amount, &d.Reference, &d.Status, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if donorID.Valid {
		id := int(donorID.Int64)
		d.DonorID = &id
	}
	if donorName.Valid {
		d.DonorName = donorName.String
	}
	if donorEmail.Valid {
		d.DonorEmail = donorEmail.String
	}
	return d, nil
}

func (r *donationRepository) GetByID(id int) (*models.Donation, error) {
	row := r.db.QueryRow(`SELECT `+donationColumns+` FROM donations WHERE id=$1`, id)
	return scanDonation(row.Scan)
}

func (r *donationRepository) GetByReference(ref string) (*models.Donation, error) {
	row := r.db.QueryRow(`SELECT `+donationColumns+` FROM donations WHERE reference=$1`, ref)
	return scanDonation(row.Scan)
}

func (r *donationRepository) UpdateStatus(id int, status string) error {
	_, err := r.db.Exec(`UPDATE donations SET status=$1 WHERE id=$2`, status, id)
	return err
}

func (r *donationRepository) Filter(status string, campaignID, donorID, limit, offset int) ([]*models.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE 1=1`
	args := []interface{}{}
	i := 1

	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, status)
		i++
	}
	if campaignID > 0 {
		query += fmt.Sprintf(" AND campaign_id = $%d", i)
		args = append(args, campaignID)
		i++
	}
	if donorID > 0 {
		query += fmt.Sprintf(" AND donor_id = $%d", i)
		args = append(args, donorID)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Donation
	for rows.Next() {
		d, err := scanDonation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *donationRepository) CountByStatus(status string) (int, error) {
	var c int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM donations WHERE status=$1`, status).Scan(&c)
	return c, err
}
