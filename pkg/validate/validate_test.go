package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/allthebeans/pkg/validate"
)

type beanForm struct {
	Name    string  `json:"name" validate:"required,max=10"`
	Email   string  `json:"email" validate:"nullable,email"`
	Image   string  `json:"image" validate:"nullable,url"`
	BeanID  string  `json:"beanId" validate:"nullable,uuid"`
	Cost    float64 `json:"cost" validate:"gte=0"`
	Qty     int     `json:"qty" validate:"nullable,integer,gte=1,lte=100"`
	Roast   string  `json:"roast" validate:"nullable,in=light,medium,dark"`
	Country string  `json:"country" validate:"required"`
}

func TestValidStruct(t *testing.T) {
	errs := validate.Struct(beanForm{
		Name:    "Peaberry",
		Email:   "dana@example.com",
		Image:   "https://images.allthebeans.test/p.png",
		BeanID:  "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		Cost:    18.40,
		Qty:     2,
		Roast:   "medium",
		Country: "Kenya",
	})
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
}

func TestRequired(t *testing.T) {
	errs := validate.Struct(beanForm{Country: "Kenya"})
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(beanForm{Name: "X", Country: "Kenya"})
	assert.False(t, validate.HasErrors(errs), "empty nullable fields must pass: %v", errs)
}

func TestEmail(t *testing.T) {
	errs := validate.Struct(beanForm{Name: "X", Country: "Kenya", Email: "not-an-email"})
	assert.Contains(t, errs["email"], "valid email")
}

func TestURL(t *testing.T) {
	errs := validate.Struct(beanForm{Name: "X", Country: "Kenya", Image: "ftp://nope"})
	assert.Contains(t, errs["image"], "valid URL")
}

func TestUUID(t *testing.T) {
	errs := validate.Struct(beanForm{Name: "X", Country: "Kenya", BeanID: "1234"})
	assert.Contains(t, errs["beanId"], "valid UUID")
}

func TestMaxLength(t *testing.T) {
	errs := validate.Struct(beanForm{Name: "this name is far too long", Country: "Kenya"})
	assert.Contains(t, errs["name"], "not exceed 10")
}

func TestNumericBounds(t *testing.T) {
	errs := validate.Struct(beanForm{Name: "X", Country: "Kenya", Cost: -1})
	assert.Contains(t, errs["cost"], "greater than or equal to 0")

	errs = validate.Struct(beanForm{Name: "X", Country: "Kenya", Qty: 500})
	assert.Contains(t, errs["qty"], "less than or equal to 100")
}

func TestInList(t *testing.T) {
	errs := validate.Struct(beanForm{Name: "X", Country: "Kenya", Roast: "burnt"})
	assert.Equal(t, "The selected roast is invalid.", errs["roast"])

	errs = validate.Struct(beanForm{Name: "X", Country: "Kenya", Roast: "dark"})
	assert.False(t, validate.HasErrors(errs))
}

func TestFirstFailingRuleWins(t *testing.T) {
	errs := validate.Struct(beanForm{Country: "Kenya", Email: "bad"})
	assert.Len(t, errs, 2) // name required, email invalid — one message per field
}
