package localization

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"locale-manager/core/exchange"
	"locale-manager/core/reconcile"
	"locale-manager/core/record"
	"locale-manager/core/storage/mocks"
	"locale-manager/core/store"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *Service, *mocks.Client) {
	app := fiber.New()
	svc, mockClient := setupService(t)
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, svc, mockClient
}

const syncBody = `{"items":[{"key":"greeting","text":"Hello"},{"key":"farewell","text":"Goodbye"}]}`

func postJSON(t *testing.T, app *fiber.App, url, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHandleSync(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	status, body := postJSON(t, app, "/localization/shop/sync", syncBody)
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(4), body["merged"])
	assert.Equal(t, float64(4), body["pending"])

	report := body["report"].(map[string]any)
	summary := report["summary"].(map[string]any)
	assert.Equal(t, float64(4), summary["new"])

	assert.Len(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}), 4)
}

func TestHandleSync_DryRun(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	status, body := postJSON(t, app, "/localization/shop/sync?dry_run=true", syncBody)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["dry_run"])
	assert.Empty(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}))
}

func TestHandleSync_DuplicateKey(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status, body := postJSON(t, app, "/localization/shop/sync",
		`{"items":[{"key":"a","text":"A"},{"key":"a","text":"B"}]}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["error"], "duplicate key")
}

func TestHandleSync_BadBody(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status, _ := postJSON(t, app, "/localization/shop/sync", `{"items":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleRecords(t *testing.T) {
	app, _, _ := setupTestApp(t)
	postJSON(t, app, "/localization/shop/sync", syncBody)

	resp, err := app.Test(httptest.NewRequest("GET", "/localization/shop/records?lang=fr&territory=CA", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var records []record.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, "CA", records[0].Territory)

	resp, err = app.Test(httptest.NewRequest("GET", "/localization/shop/records?lang=fr&territory=", nil))
	require.NoError(t, err)
	records = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	assert.Empty(t, records)
}

func TestHandleStats(t *testing.T) {
	app, _, _ := setupTestApp(t)
	postJSON(t, app, "/localization/shop/sync", syncBody)

	resp, err := app.Test(httptest.NewRequest("GET", "/localization/shop/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var stats []store.PartitionStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Len(t, stats, 2)
}

func TestHandleExportAndImport(t *testing.T) {
	app, svc, _ := setupTestApp(t)
	postJSON(t, app, "/localization/shop/sync", syncBody)

	resp, err := app.Test(httptest.NewRequest("GET", "/localization/shop/export", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	rows, err := exchange.ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	records := mustRecords(t, svc, reconcile.Filter{AppID: "shop", Lang: "de"})
	records[0].TextLocalized = "Tschüss"
	var buf bytes.Buffer
	require.NoError(t, exchange.WriteCSV(&buf, records[:1]))

	req := httptest.NewRequest("POST", "/localization/shop/import", &buf)
	req.Header.Set("Content-Type", "text/csv")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, float64(1), body["applied"])
	assert.Equal(t, float64(1), body["written"])

	resp, err = app.Test(httptest.NewRequest("GET", "/localization/shop/export", nil))
	require.NoError(t, err)
	data, _ = io.ReadAll(resp.Body)
	rows, err = exchange.ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	resp, err = app.Test(httptest.NewRequest("GET", "/localization/shop/export?all=true", nil))
	require.NoError(t, err)
	data, _ = io.ReadAll(resp.Body)
	rows, err = exchange.ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestHandleImport_InvalidHeader(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/localization/shop/import", strings.NewReader("x,y\n1,2\n"))
	req.Header.Set("Content-Type", "text/csv")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandlePublish(t *testing.T) {
	app, _, mockClient := setupTestApp(t)
	postJSON(t, app, "/localization/shop/sync", syncBody)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	status, body := postJSON(t, app, "/localization/shop/publish", "")
	assert.Equal(t, 200, status)
	assert.Len(t, body["objects"], 2)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, statusFor(exchange.ErrInvalidHeader))
	assert.Equal(t, fiber.StatusUnprocessableEntity, statusFor(&reconcile.DuplicateKeyError{}))
	assert.Equal(t, fiber.StatusConflict, statusFor(&store.KeyConflictError{AppID: "shop"}))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(assert.AnError))
}
