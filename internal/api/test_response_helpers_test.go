package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/SageDevelopmentCode/dine-web/internal/db"
	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/SageDevelopmentCode/dine-web/internal/seed"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func newSeededTestApp(t *testing.T) (*fiber.App, models.User) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "dine-api.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("access sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	document, err := seed.Load()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	ctx := context.Background()
	if _, err := seed.Apply(ctx, database, document); err != nil {
		t.Fatalf("apply defaults: %v", err)
	}
	user, err := seed.SeedDemoUser(ctx, database, document, "Maya Chen")
	if err != nil {
		t.Fatalf("seed demo user: %v", err)
	}

	handler, err := NewHandler(NewProfileService(database, time.Minute, nil), zap.NewNop())
	if err != nil {
		t.Fatalf("create handler: %v", err)
	}
	return NewApp(handler), user
}

func performGet(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response.StatusCode, body
}

func decodeJSONObject(t *testing.T, body []byte) map[string]any {
	t.Helper()

	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", body, err)
	}
	return payload
}

func readAPIError(t *testing.T, body []byte) string {
	t.Helper()

	payload := map[string]string{}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", body, err)
	}
	return payload["error"]
}
