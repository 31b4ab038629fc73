package repositories

import (
	"database/sql"
	"fmt"

	"afrisoutien/internal/models"
)

type BoutiqueItemRepository interface {
	Create(item *models.BoutiqueItem) error
	GetByID(id int) (*models.BoutiqueItem, error)
	UpdateStatus(id int, status string) error
	Filter(status, category string, limit, offset int) ([]*models.BoutiqueItem, error)
	CountByStatus(status string) (int, error)
}

type BoutiqueOrderRepository interface {
	Create(order *models.BoutiqueOrder) error
	GetByID(id int) (*models.BoutiqueOrder, error)
	UpdateStatus(id int, status string) error
	ListByStatus(status string, limit, offset int) ([]*models.BoutiqueOrder, error)
	// PendingForItem guards against approving two orders for the same item.
	PendingForItem(itemID int) ([]*models.BoutiqueOrder, error)
}

type boutiqueItemRepository struct {
	db *sql.DB
}

func NewBoutiqueItemRepository(db *sql.DB) BoutiqueItemRepository {
	return &boutiqueItemRepository{db: db}
}

func (r *boutiqueItemRepository) Create(item *models.BoutiqueItem) error {
	const query = `
		INSERT INTO boutique_items (donor_id, title, description, category, status, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(query,
		item.DonorID, item.Title, item.Description, item.Category, item.Status,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *boutiqueItemRepository) GetByID(id int) (*models.BoutiqueItem, error) {
	const query = `
		SELECT id, donor_id, title, description, category, status, created_at
		FROM boutique_items
		WHERE id=$1
	`
	item := &models.BoutiqueItem{}
	var donorID sql.NullInt64
	err := r.db.QueryRow(query, id).Scan(
		&item.ID, &donorID, &item.Title, &item.Description, &item.Category, &item.Status, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if donorID.Valid {
		v := int(donorID.Int64)
		item.DonorID = &v
	}
	return item, nil
}

func (r *boutiqueItemRepository) UpdateStatus(id int, status string) error {
	_, err := r.db.Exec(`UPDATE boutique_items SET status=$1 WHERE id=$2`, status, id)
	return err
}

func (r *boutiqueItemRepository) Filter(status, category string, limit, offset int) ([]*models.BoutiqueItem, error) {
	query := `
		SELECT id, donor_id, title, description, category, status, created_at
		FROM boutique_items WHERE 1=1`
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
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.BoutiqueItem
	for rows.Next() {
		item := &models.BoutiqueItem{}
		var donorID sql.NullInt64
		if err := rows.Scan(
			&item.ID, &donorID, &item.Title, &item.Description, &item.Category, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if donorID.Valid {
			v := int(donorID.Int64)
			item.DonorID = &v
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *boutiqueItemRepository) CountByStatus(status string) (int, error) {
	var c int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM boutique_items WHERE status=$1`, status).Scan(&c)
	return c, err
}

type boutiqueOrderRepository struct {
	db *sql.DB
}

func NewBoutiqueOrderRepository(db *sql.DB) BoutiqueOrderRepository {
	return &boutiqueOrderRepository{db: db}
}

func (r *boutiqueOrderRepository) Create(order *models.BoutiqueOrder) error {
	const query = `
		INSERT INTO boutique_orders (item_id, beneficiary_id, motivation, status, created_at)
		VALUES ($1,$2,$3,$4,NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(query,
		order.ItemID, order.BeneficiaryID, order.Motivation, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
}

func (r *boutiqueOrderRepository) GetByID(id int) (*models.BoutiqueOrder, error) {
	const query = `
		SELECT id, item_id, beneficiary_id, motivation, status, created_at
		FROM boutique_orders
		WHERE id=$1
	`
	o := &models.BoutiqueOrder{}
	err := r.db.QueryRow(query, id).Scan(
		&o.ID, &o.ItemID, &o.BeneficiaryID, &o.Motivation, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *boutiqueOrderRepository) UpdateStatus(id int, status string) error {
	_, err := r.db.Exec(`UPDATE boutique_orders SET status=$1 WHERE id=$2`, status, id)
	return err
}

func (r *boutiqueOrderRepository) ListByStatus(status string, limit, offset int) ([]*models.BoutiqueOrder, error) {
	const query = `
		SELECT id, item_id, beneficiary_id, motivation, status, created_at
		FROM boutique_orders
		WHERE status=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.BoutiqueOrder
	for rows.Next() {
		o := &models.BoutiqueOrder{}
		if err := rows.Scan(&o.ID, &o.ItemID, &o.BeneficiaryID, &o.Motivation, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *boutiqueOrderRepository) PendingForItem(itemID int) ([]*models.BoutiqueOrder, error) {
	const query = `
		SELECT id, item_id, beneficiary_id, motivation, status, created_at
		FROM boutique_orders
		WHERE item_id=$1 AND status='pending'
		ORDER BY created_at
	`
	rows, err := r.db.Query(query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.BoutiqueOrder
	for rows.Next() {
		o := &models.BoutiqueOrder{}
		if err := rows.Scan(&o.ID, &o.ItemID, &o.BeneficiaryID, &o.Motivation, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
