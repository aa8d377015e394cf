package repositories_test

import (
	"strings"
	"testing"

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

func TestCreateAssignsDenseIndices(t *testing.T) {
	repo := repositories.NewBeanRepository(newTestDB(t))

	names := []string{"Guatemalan Blend", "Kenyan Peaberry", "Brazilian Santos"}
	for i, name := range names {
		bean := models.Bean{Name: name, Country: "Kenya", Cost: 10}
		require.NoError(t, repo.Create(&bean))
		assert.Equal(t, i, bean.Index)
		assert.NotEmpty(t, bean.ID)
	}

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, len(names))
	for i, b := range all {
		assert.Equal(t, i, b.Index, "All() returns beans in display order")
	}
}

func TestFindRoundTrip(t *testing.T) {
	repo := repositories.NewBeanRepository(newTestDB(t))

	bean := models.Bean{
		Name:        "Ethiopian Yirgacheffe",
		Country:     "Ethiopia",
		Colour:      "light roast",
		Description: "Floral washed coffee.",
		Image:       "https://images.allthebeans.test/yirgacheffe.png",
		Cost:        23.95,
	}
	require.NoError(t, repo.Create(&bean))

	got, err := repo.Find(bean.ID)
	require.NoError(t, err)
	assert.Equal(t, bean.Name, got.Name)
	assert.Equal(t, bean.Cost, got.Cost)
	assert.Equal(t, bean.Description, got.Description)
}

func TestFindUnknown(t *testing.T) {
	repo := repositories.NewBeanRepository(newTestDB(t))

	_, err := repo.Find("9b1deb4d-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	repo := repositories.NewBeanRepository(newTestDB(t))

	beans := []models.Bean{
		{Name: "Guatemalan Blend", Country: "Guatemala", Colour: "dark roast", Description: "cocoa and almond"},
		{Name: "Kenyan Peaberry", Country: "Kenya", Colour: "medium roast", Description: "blackcurrant acidity"},
		{Name: "Sumatra Mandheling", Country: "Indonesia", Colour: "dark roast", Description: "earthy and syrupy"},
	}
	for i := range beans {
		require.NoError(t, repo.Create(&beans[i]))
	}

	byCountry, err := repo.Search("KENYA")
	require.NoError(t, err)
	require.Len(t, byCountry, 1)
	assert.Equal(t, "Kenyan Peaberry", byCountry[0].Name)

	byColour, err := repo.Search("dark")
	require.NoError(t, err)
	assert.Len(t, byColour, 2)

	byDescription, err := repo.Search("syrupy")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Sumatra Mandheling", byDescription[0].Name)

	none, err := repo.Search("decaf")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateUnknown(t *testing.T) {
	repo := repositories.NewBeanRepository(newTestDB(t))

	err := repo.Update(&models.Bean{ID: "9b1deb4d-0000-0000-0000-000000000000", Name: "Ghost"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteCascadesSelection(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewBeanRepository(db)
	botd := repositories.NewBOTDRepository(db)

	bean := models.Bean{Name: "Costa Rican Tarrazú", Country: "Costa Rica"}
	require.NoError(t, repo.Create(&bean))
	require.NoError(t, botd.Insert(&models.BeanOfTheDay{SelectedDate: "2026-03-14", BeanID: bean.ID}))

	require.NoError(t, repo.Delete(bean.ID))

	_, err := repo.Find(bean.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = botd.ForDate("2026-03-14")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Deleting again reports not found rather than succeeding silently.
	assert.ErrorIs(t, repo.Delete(bean.ID), apperr.ErrNotFound)
}

func TestInsertIsFirstWriterWins(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewBeanRepository(db)
	botd := repositories.NewBOTDRepository(db)

	a := models.Bean{Name: "Guatemalan Blend", Country: "Guatemala"}
	b := models.Bean{Name: "Kenyan Peaberry", Country: "Kenya"}
	require.NoError(t, repo.Create(&a))
	require.NoError(t, repo.Create(&b))

	require.NoError(t, botd.Insert(&models.BeanOfTheDay{SelectedDate: "2026-03-14", BeanID: a.ID}))
	// Second insert for the same date is ignored, not an error.
	require.NoError(t, botd.Insert(&models.BeanOfTheDay{SelectedDate: "2026-03-14", BeanID: b.ID}))

	rec, err := botd.ForDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, a.ID, rec.BeanID)
}

func TestReplaceForDate(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewBeanRepository(db)
	botd := repositories.NewBOTDRepository(db)

	a := models.Bean{Name: "Guatemalan Blend", Country: "Guatemala"}
	b := models.Bean{Name: "Kenyan Peaberry", Country: "Kenya"}
	require.NoError(t, repo.Create(&a))
	require.NoError(t, repo.Create(&b))

	require.NoError(t, botd.Insert(&models.BeanOfTheDay{SelectedDate: "2026-03-14", BeanID: a.ID}))

	rec, err := botd.ReplaceForDate("2026-03-14", b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, rec.BeanID)

	got, err := botd.ForDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.BeanID)
}
