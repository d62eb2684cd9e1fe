package response

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c fiber.Ctx) error {
		c.Set(HeaderRequestID, "rid-1")
		return Success(c, fiber.StatusCreated, "", map[string]int{"n": 1})
	})
	app.Get("/bad", func(c fiber.Ctx) error {
		return Error(c, 999, "", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, http.StatusCreated, env.Status)
	assert.Equal(t, MessageCreated, env.Message)
	assert.Equal(t, "rid-1", env.RequestID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestMessageFor(t *testing.T) {
	assert.Equal(t, MessageNotFound, MessageFor(http.StatusNotFound))
	assert.Equal(t, MessageInternalServerError, MessageFor(http.StatusBadGateway))
	assert.Equal(t, MessageError, MessageFor(http.StatusTeapot))
}
