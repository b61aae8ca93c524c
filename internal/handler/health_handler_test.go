package handler_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-assessment-intake/internal/config"
	"github.com/noah-isme/gema-assessment-intake/internal/handler"
)

func TestHealthCheck(t *testing.T) {
	cfg := config.Config{
		AppName:       "Assessment Intake",
		AppEnv:        "test",
		FirebaseDBURL: "https://demo.firebaseio.com",
	}

	app := fiber.New()
	app.Get("/api/health", handler.HealthCheck(cfg))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload handler.HealthResponse
	decodeResponse(t, resp, &payload)
	require.Equal(t, "ok", payload.Status)
	require.Equal(t, cfg.AppName, payload.Service)
	require.Equal(t, cfg.AppEnv, payload.Environment)
	require.True(t, payload.RelayEnabled)
	require.WithinDuration(t, time.Now().UTC(), payload.Timestamp, 2*time.Second)
}
