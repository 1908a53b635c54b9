package jwtware_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/go-bearer/middleware/jwtware"
)

func acceptToken(raw string) (any, error) {
	return map[string]string{"raw": raw}, nil
}

func TestGuardRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	app.Get("/secure", jwtware.New(jwtware.Config{
		Decoder: jwtware.TokenDecoderFunc(acceptToken),
	}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/secure", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGuardRejectsDecoderFailure(t *testing.T) {
	app := fiber.New()
	app.Get("/secure", jwtware.New(jwtware.Config{
		Decoder: jwtware.TokenDecoderFunc(func(string) (any, error) {
			return nil, errors.New("rejected")
		}),
	}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/secure", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer some-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGuardStoresValidatedToken(t *testing.T) {
	app := fiber.New()
	app.Get("/secure", jwtware.New(jwtware.Config{
		Decoder: jwtware.TokenDecoderFunc(acceptToken),
	}), func(c *fiber.Ctx) error {
		token, ok := jwtware.TokenFromContext(c, jwtware.DefaultContextKey)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(token.Raw)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/secure", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer some-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardSchemeHandling(t *testing.T) {
	newApp := func() *fiber.App {
		app := fiber.New()
		app.Get("/secure", jwtware.New(jwtware.Config{
			Decoder: jwtware.TokenDecoderFunc(acceptToken),
		}), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run("scheme match is case insensitive", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/secure", nil)
		req.Header.Set(fiber.HeaderAuthorization, "bearer some-token")

		resp, err := newApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong scheme is rejected", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/secure", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Basic some-token")

		resp, err := newApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGuardQueryLookup(t *testing.T) {
	app := fiber.New()
	app.Get("/secure", jwtware.New(jwtware.Config{
		Decoder:     jwtware.TokenDecoderFunc(acceptToken),
		TokenLookup: "query:access_token",
	}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/secure?access_token=some-token", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardFilterSkips(t *testing.T) {
	app := fiber.New()
	app.Get("/secure", jwtware.New(jwtware.Config{
		Decoder: jwtware.TokenDecoderFunc(acceptToken),
		Filter: func(c *fiber.Ctx) bool {
			return c.Query("public") == "1"
		},
	}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/secure?public=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTokenFromContextEmptyKeyFallsBack(t *testing.T) {
	app := fiber.New()
	app.Get("/secure", jwtware.New(jwtware.Config{
		Decoder: jwtware.TokenDecoderFunc(acceptToken),
	}), func(c *fiber.Ctx) error {
		if _, ok := jwtware.TokenFromContext(c, ""); !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/secure", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer some-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
