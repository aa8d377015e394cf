package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/app/repositories"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
	"github.com/shashiranjanraj/allthebeans/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := database.ConnectWith("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Bean{}, &models.BeanOfTheDay{}, &models.User{}))
	return db
}

func newBOTDService(t *testing.T) (*BOTDService, *repositories.BeanRepository, *repositories.BOTDRepository) {
	t.Helper()
	db := newTestDB(t)
	beans := repositories.NewBeanRepository(db)
	botd := repositories.NewBOTDRepository(db)
	svc := NewBOTDService(beans, botd)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	}
	return svc, beans, botd
}

func seedBean(t *testing.T, repo *repositories.BeanRepository, name string) models.Bean {
	t.Helper()
	bean := models.Bean{
		Cost:    12.50,
		Name:    name,
		Colour:  "medium roast",
		Country: "Colombia",
	}
	require.NoError(t, repo.Create(&bean))
	return bean
}

func TestTodayIsIdempotent(t *testing.T) {
	svc, beans, _ := newBOTDService(t)
	seedBean(t, beans, "Guatemalan Blend")
	seedBean(t, beans, "Kenyan Peaberry")
	seedBean(t, beans, "Brazilian Santos")

	first, err := svc.Today()
	require.NoError(t, err)
	assert.True(t, first.IsBOTD)

	for i := 0; i < 5; i++ {
		again, err := svc.Today()
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID, "repeat reads on the same day must return the committed pick")
	}
}

func TestTodayExcludesYesterdaysPick(t *testing.T) {
	svc, beans, botd := newBOTDService(t)
	a := seedBean(t, beans, "Guatemalan Blend")
	b := seedBean(t, beans, "Kenyan Peaberry")

	yesterday := svc.now().AddDate(0, 0, -1).Format(dateLayout)
	require.NoError(t, botd.Insert(&models.BeanOfTheDay{SelectedDate: yesterday, BeanID: a.ID}))

	// With two beans and one excluded, the pick is fully determined.
	pick, err := svc.Today()
	require.NoError(t, err)
	assert.Equal(t, b.ID, pick.ID)
	assert.True(t, pick.IsBOTD)
}

func TestSingleBeanCatalogueRepeats(t *testing.T) {
	svc, beans, botd := newBOTDService(t)
	only := seedBean(t, beans, "Sumatra Mandheling")

	yesterday := svc.now().AddDate(0, 0, -1).Format(dateLayout)
	require.NoError(t, botd.Insert(&models.BeanOfTheDay{SelectedDate: yesterday, BeanID: only.ID}))

	// Default policy: falling back to the full set is allowed.
	pick, err := svc.Today()
	require.NoError(t, err)
	assert.Equal(t, only.ID, pick.ID)
}

func TestSingleBeanCatalogueNoRepeatPolicy(t *testing.T) {
	t.Setenv("BOTD_ALLOW_REPEAT", "false")

	svc, beans, botd := newBOTDService(t)
	only := seedBean(t, beans, "Sumatra Mandheling")

	yesterday := svc.now().AddDate(0, 0, -1).Format(dateLayout)
	require.NoError(t, botd.Insert(&models.BeanOfTheDay{SelectedDate: yesterday, BeanID: only.ID}))

	_, err := svc.Today()
	assert.ErrorIs(t, err, apperr.ErrNoBeansAvailable)
}

func TestEmptyCatalogue(t *testing.T) {
	svc, _, _ := newBOTDService(t)

	_, err := svc.Today()
	assert.ErrorIs(t, err, apperr.ErrNoBeansAvailable)
}

func TestSetOverridesToday(t *testing.T) {
	svc, beans, _ := newBOTDService(t)
	a := seedBean(t, beans, "Guatemalan Blend")
	b := seedBean(t, beans, "Kenyan Peaberry")

	first, err := svc.Today()
	require.NoError(t, err)

	var target models.Bean
	if first.ID == a.ID {
		target = b
	} else {
		target = a
	}

	forced, err := svc.Set(target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, forced.ID)
	assert.True(t, forced.IsBOTD)

	// Subsequent reads stick with the override.
	again, err := svc.Today()
	require.NoError(t, err)
	assert.Equal(t, target.ID, again.ID)
}

func TestSetUnknownBean(t *testing.T) {
	svc, beans, _ := newBOTDService(t)
	seedBean(t, beans, "Guatemalan Blend")

	_, err := svc.Set("3c6a9d1e-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
