package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mobilebiz/gps-message/internal/registry"
)

// TestPurpose: Validates tenant registration through the admin API.
// Scope: Unit Test
// Expected: Returns HTTP 201 with the stored tenant; the tenant resolves
// afterwards.
func TestUsers_Upsert(t *testing.T) {
	f := newRouterFixture(t)

	body := `{"subdomain":"acme","phoneNumber":"+819011112222","isActive":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var tenant registry.Tenant
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tenant))
	assert.Equal(t, "acme", tenant.Subdomain)
	assert.Equal(t, "+819011112222", tenant.PhoneNumber)
	assert.True(t, tenant.IsActive)

	stored, ok := f.service.Resolve(context.Background(), "acme")
	assert.True(t, ok)
	assert.Equal(t, "+819011112222", stored.PhoneNumber)
}

// TestPurpose: Validates registration rejection when required fields are
// missing.
// Scope: Unit Test
// Expected: Returns HTTP 400 and nothing is stored.
func TestUsers_Upsert_MissingFields(t *testing.T) {
	f := newRouterFixture(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing phone", `{"subdomain":"acme","isActive":true}`},
		{"missing subdomain", `{"phoneNumber":"+819011112222","isActive":true}`},
		{"malformed json", `{"subdomain":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	_, ok := f.service.Resolve(context.Background(), "acme")
	assert.False(t, ok)
	assert.Empty(t, f.service.ListAll(context.Background()))
}

// TestPurpose: Validates the tenant listing endpoint.
// Scope: Unit Test
// Expected: Returns HTTP 200 with every registered tenant.
func TestUsers_List(t *testing.T) {
	f := newRouterFixture(t)
	f.addUser(t, "acme", "+819011112222", true)
	f.addUser(t, "globex", "+819033334444", false)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var tenants []registry.Tenant
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tenants))
	assert.Len(t, tenants, 2)
}

// TestPurpose: Validates tenant removal through the admin API.
// Scope: Unit Test
// Expected: Returns HTTP 200; the tenant no longer resolves; deleting an
// unknown subdomain is also HTTP 200.
func TestUsers_Delete(t *testing.T) {
	f := newRouterFixture(t)
	f.addUser(t, "acme", "+819011112222", true)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/acme", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	_, ok := f.service.Resolve(context.Background(), "acme")
	assert.False(t, ok)

	req = httptest.NewRequest(http.MethodDelete, "/api/users/ghost", nil)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
