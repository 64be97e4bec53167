package serverutils

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type captureLogger struct {
	errors []map[string]interface{}
}

func (l *captureLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *captureLogger) Info(module, message string, details map[string]interface{})  {}
func (l *captureLogger) Warn(module, message string, details map[string]interface{})  {}
func (l *captureLogger) Error(module, message string, details map[string]interface{}) {
	l.errors = append(l.errors, details)
}
func (l *captureLogger) Sync() error { return nil }

func TestErrorHandlerMiddleware(t *testing.T) {
	log := &captureLogger{}
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(log))
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("database exploded")
	})
	app.Get("/teapot", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	t.Run("unhandled error becomes opaque 500 and is logged", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "Internal server error")
		assert.NotContains(t, string(body), "database exploded")

		if assert.Len(t, log.errors, 1) {
			assert.Equal(t, "database exploded", log.errors[0]["error"])
			assert.Equal(t, "/boom", log.errors[0]["path"])
		}
	})

	t.Run("fiber error passes its code through without logging", func(t *testing.T) {
		before := len(log.errors)
		resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
		assert.Len(t, log.errors, before)
	})
}
