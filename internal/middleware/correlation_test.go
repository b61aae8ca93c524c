package middleware

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDGeneratesWhenMissing(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())

	var fromContext string
	app.Get("/", func(c *fiber.Ctx) error {
		fromContext = CorrelationIDFromContext(c.UserContext())
		return c.SendString(GetCorrelationID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)

	header := resp.Header.Get(HeaderCorrelationID)
	require.Len(t, header, 36)
	require.Equal(t, header, fromContext)
}

func TestCorrelationIDFallsBackToRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "req-42", resp.Header.Get(HeaderCorrelationID))
}

func TestCorrelationIDTruncatesLongValues(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderCorrelationID, strings.Repeat("a", 300))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Len(t, resp.Header.Get(HeaderCorrelationID), maxCorrelationIDLength)
}

func TestContextWithCorrelation(t *testing.T) {
	ctx := ContextWithCorrelation(context.Background(), "  abc ")
	require.Equal(t, "abc", CorrelationIDFromContext(ctx))

	require.Empty(t, CorrelationIDFromContext(ContextWithCorrelation(context.Background(), " ")))
}

func TestCorrelationIDTruncatesOnRuneBoundary(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	// 127 ASCII bytes followed by a two byte rune straddling the limit.
	incoming := strings.Repeat("a", maxCorrelationIDLength-1) + "çç"
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderCorrelationID, incoming)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	echoed := resp.Header.Get(HeaderCorrelationID)
	require.True(t, utf8.ValidString(echoed))
	require.Equal(t, strings.Repeat("a", maxCorrelationIDLength-1), echoed)
}

func TestTruncateCorrelationID(t *testing.T) {
	require.Equal(t, "abc", truncateCorrelationID("abc"))

	exact := strings.Repeat("é", maxCorrelationIDLength/2)
	require.Equal(t, exact, truncateCorrelationID(exact))

	long := strings.Repeat("é", maxCorrelationIDLength)
	got := truncateCorrelationID(long)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, exact, got)
}
