package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"stockroom/pkg/logger"
	"stockroom/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(buf *bytes.Buffer, m *metrics.HTTPMetrics) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
		},
	})
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	app.Use(requestid.New())
	app.Use(Logging(logg))
	app.Use(Metrics(m))
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		logg.Info(c.UserContext(), "handler.ran")
		return c.SendString("ok")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	return app
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestLoggingAttachesRequestFields(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf, metrics.NewHTTPMetrics(nil))

	resp, err := app.Test(httptest.NewRequest("GET", "/items/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "handler.ran", lines[0]["message"])
	assert.Equal(t, "/items/42", lines[0]["path"])
	assert.NotEmpty(t, lines[0]["request_id"])

	assert.Equal(t, "request.complete", lines[1]["message"])
	assert.Equal(t, "GET", lines[1]["method"])
	assert.Equal(t, float64(200), lines[1]["status"])
	assert.Equal(t, lines[0]["request_id"], lines[1]["request_id"])
}

func TestLoggingSeesErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf, metrics.NewHTTPMetrics(nil))

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	lines := decodeLines(t, &buf)
	require.NotEmpty(t, lines)
	assert.Equal(t, float64(fiber.StatusTeapot), lines[len(lines)-1]["status"])
}

func TestMetricsLabelsMatchedRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	app := newTestApp(&buf, metrics.NewHTTPMetrics(reg))

	for _, path := range []string{"/items/1", "/items/2", "/nowhere"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "http_requests_total"))
	expected := `
# HELP http_requests_total Handled HTTP requests.
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/items/:id",status="200"} 2
http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, bytes.NewBufferString(expected), "http_requests_total"))
}
