package seeders

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/config"
	"github.com/shashiranjanraj/allthebeans/pkg/auth"
)

func adminPassword() string {
	return config.Get("ADMIN_PASSWORD", "changeme-now")
}

func init() {
	Register("beans", SeedBeans)
	Register("admin-user", SeedAdminUser)
}

// catalogue is the starter storefront inventory. Seeding is idempotent:
// an already-populated beans table is left untouched.
var catalogue = []models.Bean{
	{
		Cost:        17.45,
		Image:       "https://images.allthebeans.test/guatemalan-blend.png",
		Colour:      "dark roast",
		Name:        "Guatemalan Blend",
		Description: "A full-bodied blend from the Antigua valley with notes of cocoa and toasted almond.",
		Country:     "Guatemala",
	},
	{
		Cost:        21.10,
		Image:       "https://images.allthebeans.test/kenyan-peaberry.png",
		Colour:      "medium roast",
		Name:        "Kenyan Peaberry",
		Description: "Bright and juicy single-origin peaberry with blackcurrant acidity and a long finish.",
		Country:     "Kenya",
	},
	{
		Cost:        14.80,
		Image:       "https://images.allthebeans.test/colombian-supremo.png",
		Colour:      "medium roast",
		Name:        "Colombian Supremo",
		Description: "A balanced everyday cup with caramel sweetness and a soft nutty body.",
		Country:     "Colombia",
	},
	{
		Cost:        23.95,
		Image:       "https://images.allthebeans.test/ethiopian-yirgacheffe.png",
		Colour:      "light roast",
		Name:        "Ethiopian Yirgacheffe",
		Description: "Floral and tea-like washed coffee with jasmine aromatics and citrus zest.",
		Country:     "Ethiopia",
	},
	{
		Cost:        16.30,
		Image:       "https://images.allthebeans.test/sumatra-mandheling.png",
		Colour:      "dark roast",
		Name:        "Sumatra Mandheling",
		Description: "Earthy, syrupy wet-hulled coffee with cedar and dark chocolate depth.",
		Country:     "Indonesia",
	},
	{
		Cost:        19.75,
		Image:       "https://images.allthebeans.test/costa-rican-tarrazu.png",
		Colour:      "medium roast",
		Name:        "Costa Rican Tarrazú",
		Description: "Clean high-altitude cup with honey sweetness and crisp apple acidity.",
		Country:     "Costa Rica",
	},
	{
		Cost:        26.50,
		Image:       "https://images.allthebeans.test/jamaican-blue-mountain.png",
		Colour:      "medium roast",
		Name:        "Jamaican Blue Mountain Blend",
		Description: "Famously smooth and mild, with a creamy body and no bitterness to speak of.",
		Country:     "Jamaica",
	},
	{
		Cost:        15.20,
		Image:       "https://images.allthebeans.test/brazilian-santos.png",
		Colour:      "golden roast",
		Name:        "Brazilian Santos",
		Description: "Low-acid comfort coffee with peanut butter body and a milk-chocolate finish.",
		Country:     "Brazil",
	},
}

// SeedBeans inserts the starter catalogue with dense display indices.
func SeedBeans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Bean{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // already populated
	}

	for i := range catalogue {
		bean := catalogue[i]
		bean.ID = uuid.NewString()
		bean.Index = i
		if err := db.Create(&bean).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedAdminUser creates the default admin account if none exists.
// The password comes from ADMIN_PASSWORD when set; the fallback is for
// local development only.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(adminPassword())
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Storefront Admin",
		Email:    "admin@allthebeans.test",
		Password: hash,
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
