package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/observability"
	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestErrorMiddlewareDomainEnvelope(t *testing.T) {
	app := newTestApp()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("tramite", nil)
	})

	status, body := doRequest(t, app, "/missing")
	if status != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", status)
	}
	if !strings.Contains(body, "NOT_FOUND") {
		t.Errorf("Expected NOT_FOUND code in body, got %s", body)
	}
}

func TestErrorMiddlewareKeepsFiberStatus(t *testing.T) {
	app := newTestApp()
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	})

	status, body := doRequest(t, app, "/bad")
	if status != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", status)
	}
	if !strings.Contains(body, "VALIDATION_FAILED") {
		t.Errorf("Expected VALIDATION_FAILED code, got %s", body)
	}
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	app := newTestApp()
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	status, body := doRequest(t, app, "/panic")
	if status != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", status)
	}
	if !strings.Contains(body, "INTERNAL_ERROR") {
		t.Errorf("Expected INTERNAL_ERROR code, got %s", body)
	}
}
