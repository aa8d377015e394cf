package services

import (
	"strings"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/app/repositories"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
	"github.com/shashiranjanraj/allthebeans/pkg/logger"
)

// BeanService owns catalogue reads and writes. Reads decorate each bean with
// its isBOTD flag against today's committed selection; writes invalidate the
// cached selection so the storefront never serves a stale bean of the day.
type BeanService struct {
	repo *repositories.BeanRepository
	botd *BOTDService
}

func NewBeanService(repo *repositories.BeanRepository, botd *BOTDService) *BeanService {
	return &BeanService{repo: repo, botd: botd}
}

// List returns the full catalogue in display order.
func (s *BeanService) List() ([]models.Bean, error) {
	beans, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	s.decorate(beans)
	return beans, nil
}

// Get returns a single bean by id.
func (s *BeanService) Get(id string) (models.Bean, error) {
	bean, err := s.repo.Find(id)
	if err != nil {
		return models.Bean{}, err
	}
	if bean.ID == s.botd.CurrentID() {
		bean.IsBOTD = true
	}
	return bean, nil
}

// Search returns beans matching term. An empty or whitespace-only term is
// rejected rather than treated as "match everything".
func (s *BeanService) Search(term string) ([]models.Bean, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperr.InvalidArgumentf("search term must not be empty")
	}
	beans, err := s.repo.Search(term)
	if err != nil {
		return nil, err
	}
	s.decorate(beans)
	return beans, nil
}

// Create adds a bean to the catalogue and returns it with its assigned id
// and display index.
func (s *BeanService) Create(bean models.Bean) (models.Bean, error) {
	if err := s.repo.Create(&bean); err != nil {
		return models.Bean{}, err
	}
	logger.Info("bean: created", "id", bean.ID, "name", bean.Name, "index", bean.Index)
	return bean, nil
}

// Update replaces the mutable fields of an existing bean and returns the
// stored result.
func (s *BeanService) Update(id string, bean models.Bean) (models.Bean, error) {
	bean.ID = id
	if err := s.repo.Update(&bean); err != nil {
		return models.Bean{}, err
	}
	s.botd.Invalidate()
	return s.Get(id)
}

// Delete removes a bean and today's selection cache.
func (s *BeanService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.botd.Invalidate()
	logger.Info("bean: deleted", "id", id)
	return nil
}

// decorate sets IsBOTD on whichever bean in beans is today's committed
// selection. No fresh selection is triggered by a catalogue read.
func (s *BeanService) decorate(beans []models.Bean) {
	current := s.botd.CurrentID()
	if current == "" {
		return
	}
	for i := range beans {
		if beans[i].ID == current {
			beans[i].IsBOTD = true
		}
	}
}
