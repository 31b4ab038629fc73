package services

import (
	"errors"
	"strings"

	"afrisoutien/internal/models"
	"afrisoutien/internal/repositories"
)

var ErrPageNotFound = errors.New("page not found")

type ContentService struct {
	Repo *repositories.ContentRepository
}

func NewContentService(repo *repositories.ContentRepository) *ContentService {
	return &ContentService{Repo: repo}
}

func (s *ContentService) GetBySlug(slug string) (*models.ContentPage, error) {
	p, err := s.Repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil || p == nil {
		return nil, ErrPageNotFound
	}
	return p, nil
}

func (s *ContentService) List() ([]*models.ContentPage, error) {
	return s.Repo.List()
}

// Upsert creates the page or overwrites its content, keyed by slug.
func (s *ContentService) Upsert(p *models.ContentPage) error {
	p.Slug = strings.TrimSpace(strings.ToLower(p.Slug))
	if p.Slug == "" || p.Title == "" {
		return errors.New("slug and title are required")
	}
	if _, err := s.Repo.GetBySlug(p.Slug); err == nil {
		return s.Repo.Update(p)
	}
	return s.Repo.Create(p)
}
