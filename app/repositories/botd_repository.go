package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
)

// BOTDRepository handles database operations for the bean-of-the-day table.
type BOTDRepository struct {
	db *gorm.DB
}

func NewBOTDRepository(db *gorm.DB) *BOTDRepository {
	return &BOTDRepository{db: db}
}

// ForDate returns the selection recorded for date ("2006-01-02"), or
// apperr.ErrNotFound when no selection exists yet.
func (r *BOTDRepository) ForDate(date string) (models.BeanOfTheDay, error) {
	var rec models.BeanOfTheDay
	err := r.db.Where("selected_date = ?", date).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BeanOfTheDay{}, apperr.NotFoundf("no selection for %s", date)
		}
		return models.BeanOfTheDay{}, apperr.Storage("find selection", err)
	}
	return rec, nil
}

// Insert records a selection for its date. The unique index on
// selected_date makes this first-writer-wins: a concurrent insert for the
// same date is silently ignored, and callers are expected to re-read the
// winning row afterwards.
func (r *BOTDRepository) Insert(rec *models.BeanOfTheDay) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "selected_date"}},
		DoNothing: true,
	}).Create(rec).Error
	if err != nil {
		return apperr.Storage("record selection", err)
	}
	return nil
}

// ReplaceForDate deletes any existing selection for date and records beanID
// instead, atomically. Used by the admin override.
func (r *BOTDRepository) ReplaceForDate(date, beanID string) (models.BeanOfTheDay, error) {
	rec := models.BeanOfTheDay{SelectedDate: date, BeanID: beanID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("selected_date = ?", date).Delete(&models.BeanOfTheDay{}).Error; err != nil {
			return err
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return models.BeanOfTheDay{}, apperr.Storage("replace selection", err)
	}
	return rec, nil
}
