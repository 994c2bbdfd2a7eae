package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"studyflow-be/internal/dto"
	"studyflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passthroughProtect(string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}

type fakeImportService struct {
	req *dto.SecureImportRequest
	err error
}

func (f *fakeImportService) SecureImport(ctx context.Context, req *dto.SecureImportRequest) (*dto.SecureImportResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SecureImportResponse{Success: true}, nil
}

func importApp(svc service.IImportService) *fiber.App {
	app := fiber.New()
	NewImportController(svc).RegisterRoutes(app.Group("/api"), passthroughProtect)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSecureImportMapsOversizedFileTo413(t *testing.T) {
	svc := &fakeImportService{err: service.ErrImportTooLarge}
	app := importApp(svc)

	status := postJSON(t, app, "/api/import/v1/secure-import",
		`{"file": "YQ==", "filename": "tasks.csv", "format": "csv"}`)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, status)
}

func TestSecureImportMapsRejectionTo400(t *testing.T) {
	svc := &fakeImportService{err: service.ErrImportRejected}
	app := importApp(svc)

	status := postJSON(t, app, "/api/import/v1/secure-import",
		`{"file": "YQ==", "filename": "tasks.csv", "format": "csv"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSecureImportBindsContentTypeField(t *testing.T) {
	svc := &fakeImportService{}
	app := importApp(svc)

	status := postJSON(t, app, "/api/import/v1/secure-import",
		`{"file": "YQ==", "filename": "week.ics", "contentType": "text/calendar", "format": "ics"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "text/calendar", svc.req.ContentType)
}
