//go:build e2e

// Package e2e exercises a running gps-message instance over HTTP.
//
// Test Execution:
//
//	GPSMESSAGE_API_URL=http://127.0.0.1:3000 go test -tags e2e -v ./tests/e2e/...
//
// The scenarios below avoid coordinates inside the fence so no real SMS is
// ever dispatched against the configured provider.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseURL = getEnv("GPSMESSAGE_API_URL", "http://127.0.0.1:3000")

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

type TestClient struct {
	httpClient *http.Client
}

func NewTestClient() *TestClient {
	return &TestClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *TestClient) Do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, baseURL+path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func TestE2E_Workflows(t *testing.T) {
	client := NewTestClient()
	subdomain := fmt.Sprintf("e2e-%d", time.Now().UnixNano())

	// 1. Health
	t.Run("HealthAliases", func(t *testing.T) {
		for _, path := range []string{"/health", "/_health", "/_/health"} {
			res, err := client.Do(http.MethodGet, path, nil)
			require.NoError(t, err, path)
			assert.Equal(t, http.StatusOK, res.StatusCode, path)
			assert.Equal(t, "OK", readBody(t, res), path)
		}
	})

	// 2. Tenant lifecycle
	t.Run("UserLifecycle", func(t *testing.T) {
		res, err := client.Do(http.MethodPost, "/api/users", map[string]any{
			"subdomain":   subdomain,
			"phoneNumber": "+819011112222",
			"isActive":    false,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		res.Body.Close()

		res, err = client.Do(http.MethodGet, "/api/users", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var tenants []struct {
			Subdomain   string `json:"subdomain"`
			PhoneNumber string `json:"phoneNumber"`
			IsActive    bool   `json:"isActive"`
		}
		require.NoError(t, json.Unmarshal([]byte(readBody(t, res)), &tenants))

		found := false
		for _, tenant := range tenants {
			if tenant.Subdomain == subdomain {
				found = true
				assert.Equal(t, "+819011112222", tenant.PhoneNumber)
				assert.False(t, tenant.IsActive)
			}
		}
		assert.True(t, found, "registered tenant missing from listing")
	})

	// 3. Registration validation
	t.Run("UserValidation", func(t *testing.T) {
		res, err := client.Do(http.MethodPost, "/api/users", map[string]any{
			"subdomain": "e2e-invalid",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		res.Body.Close()
	})

	// 4. Webhook for the inactive tenant; acknowledged without sending.
	t.Run("WebhookInactiveTenant", func(t *testing.T) {
		res, err := client.Do(http.MethodPost, "/webhook/location", map[string]any{
			"url": fmt.Sprintf("https://%s.cybozu.com/k/1/", subdomain),
			"record": map[string]any{
				"lat": map[string]any{"value": "35.0"},
				"lon": map[string]any{"value": "139.0"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "User not configured or inactive", readBody(t, res))
	})

	// 5. Webhook rejections
	t.Run("WebhookRejections", func(t *testing.T) {
		res, err := client.Do(http.MethodPost, "/webhook/location", map[string]any{
			"url": "https://example.org/k/1/",
			"record": map[string]any{
				"lat": map[string]any{"value": "35.0"},
				"lon": map[string]any{"value": "139.0"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Could not extract subdomain", readBody(t, res))

		res, err = client.Do(http.MethodPost, "/webhook/location", map[string]any{
			"url": fmt.Sprintf("https://%s.cybozu.com/k/1/", subdomain),
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid Payload", readBody(t, res))
	})

	// 6. Cleanup; deletion is idempotent.
	t.Run("UserDeletion", func(t *testing.T) {
		res, err := client.Do(http.MethodDelete, "/api/users/"+subdomain, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()

		res, err = client.Do(http.MethodDelete, "/api/users/"+subdomain, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()
	})
}
