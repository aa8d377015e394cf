package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/app/repositories"
	"github.com/shashiranjanraj/allthebeans/config"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
	"github.com/shashiranjanraj/allthebeans/pkg/cache"
	"github.com/shashiranjanraj/allthebeans/pkg/logger"
	"github.com/shashiranjanraj/allthebeans/pkg/metrics"
)

const dateLayout = "2006-01-02"

func botdCacheKey(date string) string { return "allthebeans:botd:" + date }

// BOTDService owns bean-of-the-day selection.
//
// The selection is lazy: nothing is chosen until the first read of a new
// calendar day. The first reader picks a bean at random (excluding the
// previous day's pick) and commits it with a conflict-ignoring insert on the
// unique date column, so concurrent first readers all converge on whichever
// row won.
type BOTDService struct {
	beans *repositories.BeanRepository
	botd  *repositories.BOTDRepository
	now   func() time.Time // swappable in tests
}

func NewBOTDService(beans *repositories.BeanRepository, botd *repositories.BOTDRepository) *BOTDService {
	return &BOTDService{beans: beans, botd: botd, now: time.Now}
}

// Today returns the bean of the day, selecting one first if no selection
// exists yet for the current date.
func (s *BOTDService) Today() (models.Bean, error) {
	today := s.now().Format(dateLayout)

	var cached models.Bean
	if cache.Get(botdCacheKey(today), &cached) {
		metrics.BOTDSelections.WithLabelValues("hit").Inc()
		cached.IsBOTD = true
		return cached, nil
	}

	rec, err := s.botd.ForDate(today)
	switch {
	case err == nil:
		metrics.BOTDSelections.WithLabelValues("hit").Inc()
	case errors.Is(err, apperr.ErrNotFound):
		rec, err = s.selectFresh(today)
		if err != nil {
			return models.Bean{}, err
		}
		metrics.BOTDSelections.WithLabelValues("fresh").Inc()
	default:
		return models.Bean{}, err
	}

	bean, err := s.beans.Find(rec.BeanID)
	if err != nil {
		return models.Bean{}, fmt.Errorf("botd: load selected bean: %w", err)
	}
	bean.IsBOTD = true

	s.cacheFor(today, bean)
	return bean, nil
}

// Set overrides today's selection with the given bean and returns it.
func (s *BOTDService) Set(beanID string) (models.Bean, error) {
	bean, err := s.beans.Find(beanID)
	if err != nil {
		return models.Bean{}, err
	}

	today := s.now().Format(dateLayout)
	if _, err := s.botd.ReplaceForDate(today, bean.ID); err != nil {
		return models.Bean{}, err
	}

	cache.Del(botdCacheKey(today))
	metrics.BOTDSelections.WithLabelValues("forced").Inc()
	logger.Info("botd: selection overridden", "date", today, "bean_id", bean.ID, "name", bean.Name)

	bean.IsBOTD = true
	s.cacheFor(today, bean)
	return bean, nil
}

// CurrentID returns today's committed bean id without triggering a fresh
// selection. Returns "" when no selection exists yet.
func (s *BOTDService) CurrentID() string {
	rec, err := s.botd.ForDate(s.now().Format(dateLayout))
	if err != nil {
		return ""
	}
	return rec.BeanID
}

// Invalidate drops today's cached selection. Called after bean mutations so
// stale copies of a renamed or deleted bean are not served.
func (s *BOTDService) Invalidate() {
	cache.Del(botdCacheKey(s.now().Format(dateLayout)))
}

// selectFresh picks a bean at random for today, commits it, and re-reads the
// committed row so concurrent selectors agree.
func (s *BOTDService) selectFresh(today string) (models.BeanOfTheDay, error) {
	all, err := s.beans.All()
	if err != nil {
		return models.BeanOfTheDay{}, err
	}
	if len(all) == 0 {
		return models.BeanOfTheDay{}, apperr.ErrNoBeansAvailable
	}

	yesterday := s.now().AddDate(0, 0, -1).Format(dateLayout)
	var excludeID string
	if prev, err := s.botd.ForDate(yesterday); err == nil {
		excludeID = prev.BeanID
	}

	candidates := all[:0:0]
	for _, b := range all {
		if b.ID != excludeID {
			candidates = append(candidates, b)
		}
	}

	if len(candidates) == 0 {
		// Single-bean catalogue where that bean was yesterday's pick.
		if !config.BOTDAllowRepeat() {
			return models.BeanOfTheDay{}, apperr.ErrNoBeansAvailable
		}
		candidates = all
	}

	pick := candidates[rand.Intn(len(candidates))]
	if err := s.botd.Insert(&models.BeanOfTheDay{SelectedDate: today, BeanID: pick.ID}); err != nil {
		return models.BeanOfTheDay{}, err
	}

	// Re-read: a concurrent selector may have won the insert.
	rec, err := s.botd.ForDate(today)
	if err != nil {
		return models.BeanOfTheDay{}, fmt.Errorf("botd: re-read after insert: %w", err)
	}

	logger.Info("botd: selected", "date", today, "bean_id", rec.BeanID)
	return rec, nil
}

func (s *BOTDService) cacheFor(today string, bean models.Bean) {
	midnight := s.now().Truncate(24 * time.Hour).Add(24 * time.Hour)
	ttl := time.Until(midnight)
	if ttl <= 0 {
		ttl = time.Minute
	}
	cache.Set(botdCacheKey(today), bean, ttl) //nolint:errcheck
}
