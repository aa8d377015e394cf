package repositories

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
)

// BeanRepository handles database operations for Bean.
type BeanRepository struct {
	db *gorm.DB
}

func NewBeanRepository(db *gorm.DB) *BeanRepository {
	return &BeanRepository{db: db}
}

// All returns the full catalogue ordered by display index.
func (r *BeanRepository) All() ([]models.Bean, error) {
	var beans []models.Bean
	if err := r.db.Order("position asc").Find(&beans).Error; err != nil {
		return nil, apperr.Storage("list beans", err)
	}
	return beans, nil
}

// Find looks up a bean by its UUID primary key.
func (r *BeanRepository) Find(id string) (models.Bean, error) {
	var bean models.Bean
	err := r.db.Where("id = ?", id).First(&bean).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bean{}, apperr.NotFoundf("bean %s not found", id)
		}
		return models.Bean{}, apperr.Storage("find bean", err)
	}
	return bean, nil
}

// Search returns beans whose name, country, colour or description contains
// term, case-insensitively, ordered by display index.
func (r *BeanRepository) Search(term string) ([]models.Bean, error) {
	like := "%" + strings.ToLower(term) + "%"
	var beans []models.Bean
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(country) LIKE ? OR LOWER(colour) LIKE ? OR LOWER(description) LIKE ?",
			like, like, like, like).
		Order("position asc").
		Find(&beans).Error
	if err != nil {
		return nil, apperr.Storage("search beans", err)
	}
	return beans, nil
}

// Create persists a new bean. The ID is assigned here if empty, and the
// display index is always assigned as max(index)+1 inside a transaction so
// indices stay dense and unique under a single writer.
func (r *BeanRepository) Create(bean *models.Bean) error {
	if bean.ID == "" {
		bean.ID = uuid.NewString()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var next struct{ Next int }
		if err := tx.Model(&models.Bean{}).
			Select("COALESCE(MAX(position), -1) + 1 as next").
			Scan(&next).Error; err != nil {
			return err
		}
		bean.Index = next.Next
		return tx.Create(bean).Error
	})
	if err != nil {
		return apperr.Storage("create bean", err)
	}
	return nil
}

// Update overwrites the mutable fields of an existing bean. The ID and
// display index are never changed by an update.
func (r *BeanRepository) Update(bean *models.Bean) error {
	result := r.db.Model(&models.Bean{}).
		Where("id = ?", bean.ID).
		Updates(map[string]interface{}{
			"cost":        bean.Cost,
			"image":       bean.Image,
			"colour":      bean.Colour,
			"name":        bean.Name,
			"description": bean.Description,
			"country":     bean.Country,
		})
	if result.Error != nil {
		return apperr.Storage("update bean", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("bean %s not found", bean.ID)
	}
	return nil
}

// Delete removes a bean and any bean-of-the-day rows that reference it.
func (r *BeanRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bean_id = ?", id).Delete(&models.BeanOfTheDay{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Bean{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFoundf("bean %s not found", id)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return apperr.Storage("delete bean", err)
	}
	return nil
}

// Count returns the number of beans in the catalogue.
func (r *BeanRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Bean{}).Count(&n).Error; err != nil {
		return 0, apperr.Storage("count beans", err)
	}
	return n, nil
}
