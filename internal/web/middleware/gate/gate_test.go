package gate

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
	"github.com/CryptoYield/CryptoYield/internal/testutil"
)

func TestGate(t *testing.T) {
	db := testutil.NewDB(t)

	app := fiber.New(fiber.Config{CaseSensitive: true})
	app.Use(New(Config{DB: db, Exempt: []string{"/functions/v1/system_setup", "/checkalive"}}))

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Post("/functions/v1/system_setup", ok)
	app.Get("/checkalive", ok)
	app.Get("/api/plans", ok)
	app.Get("/checkalive-extra", ok)
	app.Post("/functions/v1/System_Setup", ok)

	do := func(method, target string) int {
		resp, err := app.Test(httptest.NewRequest(method, target, nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		return resp.StatusCode
	}

	tests := []struct {
		name    string
		method  string
		target  string
		blocked bool
	}{
		{"setup exempt", http.MethodPost, "/functions/v1/system_setup", false},
		{"health exempt", http.MethodGet, "/checkalive", false},
		{"exempt match is case sensitive", http.MethodGet, "/CheckAlive", true},
		{"differently cased route blocked", http.MethodPost, "/functions/v1/System_Setup", true},
		{"preflight passes", http.MethodOptions, "/api/plans", false},
		{"other route blocked", http.MethodGet, "/api/plans", true},
		{"prefix match is per segment", http.MethodGet, "/checkalive-extra", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status := do(tc.method, tc.target)
			if tc.blocked {
				assert.Equal(t, http.StatusServiceUnavailable, status)
				return
			}

			assert.NotEqual(t, http.StatusServiceUnavailable, status)
		})
	}

	require.NoError(t, system.Initialized.Save(db))
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/plans"))

	// the initialized state is cached
	require.NoError(t, system.Uninitialized.Save(db))
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/plans"))
}

func TestGateBody(t *testing.T) {
	db := testutil.NewDB(t)

	app := fiber.New()
	app.Use(New(Config{DB: db}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"System is not initialized"}`, string(body))
}
