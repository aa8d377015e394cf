package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/internal/kernel"
	"github.com/shashiranjanraj/allthebeans/pkg/auth"
	"github.com/shashiranjanraj/allthebeans/pkg/database"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := database.ConnectWith("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Bean{}, &models.BeanOfTheDay{}, &models.User{}))
	return kernel.NewHandler(db)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(1, models.RoleAdmin)
	require.NoError(t, err)
	return token
}

func customerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(2, models.RoleCustomer)
	require.NoError(t, err)
	return token
}

func createBean(t *testing.T, h http.Handler, token, name string) map[string]interface{} {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/beans", token, map[string]interface{}{
		"name":        name,
		"country":     "Kenya",
		"colour":      "medium roast",
		"cost":        18.40,
		"description": "Bright and juicy.",
		"image":       "https://images.allthebeans.test/test.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var bean map[string]interface{}
	decodeBody(t, rec, &bean)
	return bean
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["message"])
}

func TestListBeansEmpty(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/beans", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var beans []map[string]interface{}
	decodeBody(t, rec, &beans)
	assert.Empty(t, beans)
}

func TestCreateRequiresToken(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/beans", "", map[string]interface{}{"name": "X", "country": "Kenya"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Access token required", body["error"])
}

func TestCreateRejectsBadToken(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/beans", "not-a-jwt", map[string]interface{}{"name": "X", "country": "Kenya"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Invalid or expired token", body["error"])
}

func TestCreateRejectsCustomerRole(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/beans", customerToken(t), map[string]interface{}{"name": "X", "country": "Kenya"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Admin access required", body["error"])
}

func TestBeanCRUD(t *testing.T) {
	h := newTestHandler(t)
	token := adminToken(t)

	created := createBean(t, h, token, "Guatemalan Blend")
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, float64(0), created["index"])
	assert.Equal(t, false, created["isBOTD"])

	id := created["id"].(string)

	rec := doJSON(t, h, http.MethodGet, "/api/beans/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]interface{}
	decodeBody(t, rec, &got)
	assert.Equal(t, "Guatemalan Blend", got["name"])

	rec = doJSON(t, h, http.MethodPut, "/api/beans/"+id, token, map[string]interface{}{
		"name": "Renamed Blend", "country": "Guatemala", "cost": 19.99,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeBody(t, rec, &got)
	assert.Equal(t, "Renamed Blend", got["name"])
	assert.Equal(t, float64(0), got["index"], "index survives updates")

	rec = doJSON(t, h, http.MethodDelete, "/api/beans/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/beans/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Bean not found", body["error"])
}

func TestUpdateUnknownBean(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPut, "/api/beans/9b1deb4d-0000-0000-0000-000000000000", adminToken(t),
		map[string]interface{}{"name": "Ghost", "country": "Nowhere"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Bean not found", body["error"])
}

func TestSearchRequiresQuery(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/beans/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, `Search query parameter "q" is required`, body["error"])
}

func TestSearch(t *testing.T) {
	h := newTestHandler(t)
	token := adminToken(t)
	createBean(t, h, token, "Guatemalan Blend")
	createBean(t, h, token, "Kenyan Peaberry")

	rec := doJSON(t, h, http.MethodGet, "/api/beans/search?q=peaberry", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var hits []map[string]interface{}
	decodeBody(t, rec, &hits)
	require.Len(t, hits, 1)
	assert.Equal(t, "Kenyan Peaberry", hits[0]["name"])
}

func TestBOTDEndpoint(t *testing.T) {
	h := newTestHandler(t)
	token := adminToken(t)
	createBean(t, h, token, "Guatemalan Blend")
	createBean(t, h, token, "Kenyan Peaberry")

	rec := doJSON(t, h, http.MethodGet, "/api/beans/botd", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var first map[string]interface{}
	decodeBody(t, rec, &first)
	assert.Equal(t, true, first["isBOTD"])

	// Stable within the day.
	rec = doJSON(t, h, http.MethodGet, "/api/beans/botd", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var second map[string]interface{}
	decodeBody(t, rec, &second)
	assert.Equal(t, first["id"], second["id"])
}

func TestBOTDEmptyCatalogue(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/beans/botd", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "No beans available", body["error"])
}

func TestBOTDOverride(t *testing.T) {
	h := newTestHandler(t)
	token := adminToken(t)
	a := createBean(t, h, token, "Guatemalan Blend")
	b := createBean(t, h, token, "Kenyan Peaberry")

	rec := doJSON(t, h, http.MethodGet, "/api/beans/botd", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var current map[string]interface{}
	decodeBody(t, rec, &current)

	target := a
	if current["id"] == a["id"] {
		target = b
	}

	rec = doJSON(t, h, http.MethodPut, "/api/beans/botd", token, map[string]interface{}{"id": target["id"]})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/api/beans/botd", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after map[string]interface{}
	decodeBody(t, rec, &after)
	assert.Equal(t, target["id"], after["id"])
}

func TestAuthStubGrantsAdmin(t *testing.T) {
	t.Setenv("AUTH_STUB", "true")

	h := newTestHandler(t)
	created := createBean(t, h, "", "Stubbed Bean")
	assert.NotEmpty(t, created["id"])
}

func TestPlaceOrder(t *testing.T) {
	h := newTestHandler(t)
	bean := createBean(t, h, adminToken(t), "Guatemalan Blend")

	rec := doJSON(t, h, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"name":    "Dana Brewer",
		"email":   "dana@example.com",
		"address": "1 Roastery Lane",
		"items": []map[string]interface{}{
			{"beanId": bean["id"], "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Thank you for your order", body["message"])
	assert.NotEmpty(t, body["orderId"])
	assert.InDelta(t, 36.80, body["total"].(float64), 0.001)
}

func TestPlaceOrderUnknownBean(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"name":    "Dana Brewer",
		"email":   "dana@example.com",
		"address": "1 Roastery Lane",
		"items": []map[string]interface{}{
			{"beanId": "9b1deb4d-0000-0000-0000-000000000000", "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterLoginProfile(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Dana Brewer", "email": "dana@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var reg map[string]string
	decodeBody(t, rec, &reg)
	assert.NotEmpty(t, reg["token"])

	// Duplicate registration is rejected.
	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Dana Again", "email": "dana@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong password.
	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "dana@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Right password.
	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "dana@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login map[string]string
	decodeBody(t, rec, &login)
	require.NotEmpty(t, login["token"])

	rec = doJSON(t, h, http.MethodGet, "/api/auth/profile", login["token"], nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile map[string]interface{}
	decodeBody(t, rec, &profile)
	assert.Equal(t, "dana@example.com", profile["email"])
	assert.Nil(t, profile["Password"], "password hash never serialised")
}
