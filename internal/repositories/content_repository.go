package repositories

import (
	"database/sql"

	"afrisoutien/internal/models"
)

type ContentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) GetBySlug(slug string) (*models.ContentPage, error) {
	const query = `
		SELECT id, slug, title, body, updated_at
		FROM content_pages
		WHERE slug=$1
	`
	p := &models.ContentPage{}
	err := r.db.QueryRow(query, slug).Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ContentRepository) List() ([]*models.ContentPage, error) {
	rows, err := r.db.Query(`SELECT id, slug, title, body, updated_at FROM content_pages ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ContentPage
	for rows.Next() {
		p := &models.ContentPage{}
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ContentRepository) Create(p *models.ContentPage) error {
	const query = `
		INSERT INTO content_pages (slug, title, body, updated_at)
		VALUES ($1,$2,$3,NOW())
		RETURNING id, updated_at
	`
	return r.db.QueryRow(query, p.Slug, p.Title, p.Body).Scan(&p.ID, &p.UpdatedAt)
}

func (r *ContentRepository) Update(p *models.ContentPage) error {
	const query = `
		UPDATE content_pages
		SET title=$1, body=$2, updated_at=NOW()
		WHERE slug=$3
		RETURNING id, updated_at
	`
	return r.db.QueryRow(query, p.Title, p.Body, p.Slug).Scan(&p.ID, &p.UpdatedAt)
}
