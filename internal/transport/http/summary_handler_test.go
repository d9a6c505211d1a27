package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescope/internal/config"
	"salescope/internal/services"
)

const datasetHeader = "Order ID,Order Date,Ship Date,Customer Name,Segment,Country,City,State,Postal Code,Region,Category,Sub-Category,Product Name,Sales,Quantity,Discount,Profit"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales.csv")
	content := datasetHeader + "\n" +
		`CA-1,1/5/2023,1/9/2023,Alice,Consumer,United States,Austin,Texas,78701,Central,Furniture,Chairs,Desk Chair,261.96,2,0,41.91` + "\n" +
		`CA-2,2/6/2023,2/8/2023,Bob,Corporate,United States,Dallas,Texas,75201,Central,Technology,Phones,Smartphone,900.00,1,0.1,120.50` + "\n" +
		`CA-3,3/1/2023,3/4/2023,Carol,Consumer,United States,Toledo,Ohio,43604,East,Furniture,Tables,Dining Table,-50.00,1,0.4,-20.00` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc, err := services.NewAnalysisService(config.DatasetConfig{Path: path, Encoding: "latin1"}, testLogger())
	require.NoError(t, err)

	router := NewRouter(svc, config.ServerConfig{}, testLogger())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestListSummaries(t *testing.T) {
	srv := newTestServer(t)

	code, body := getJSON(t, srv, "/api/summaries")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])

	names, ok := body["summaries"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, names, "sales_performance")
	assert.Contains(t, names, "discount_impact")
	assert.Equal(t, float64(len(names)), body["count"])
}

func TestGetSummary(t *testing.T) {
	srv := newTestServer(t)

	code, body := getJSON(t, srv, "/api/summaries/sales_performance")
	require.Equal(t, http.StatusOK, code)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sales_performance", data["name"])
	assert.NotEmpty(t, data["rows"])
}

func TestGetSummary_TopN(t *testing.T) {
	srv := newTestServer(t)

	code, body := getJSON(t, srv, "/api/summaries/top_sales_products?top_n=1")
	require.Equal(t, http.StatusOK, code)

	data := body["data"].(map[string]interface{})
	rows, ok := data["rows"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)

	row := rows[0].([]interface{})
	assert.Equal(t, "Smartphone", row[1])
}

func TestGetSummary_NotFound(t *testing.T) {
	srv := newTestServer(t)

	code, body := getJSON(t, srv, "/api/summaries/nope")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "SUMMARY_NOT_FOUND", body["error_code"])
}

func TestGetSummary_InvalidTopN(t *testing.T) {
	srv := newTestServer(t)

	for _, q := range []string{"top_n=0", "top_n=-3", "top_n=abc", "top_n=101"} {
		code, _ := getJSON(t, srv, "/api/summaries/top_sales_products?"+q)
		assert.Equal(t, http.StatusBadRequest, code, q)
	}
}

func TestGetValidation(t *testing.T) {
	srv := newTestServer(t)

	code, body := getJSON(t, srv, "/api/validation")
	require.Equal(t, http.StatusOK, code)

	issues, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, issues, 4)

	byKind := map[string]map[string]interface{}{}
	for _, raw := range issues {
		issue := raw.(map[string]interface{})
		byKind[issue["kind"].(string)] = issue
	}

	// CA-3 is the only flagged row, with negative sales.
	assert.Equal(t, float64(1), byKind["negative_sales"]["count"])
	assert.Equal(t, float64(0), byKind["invalid_quantity"]["count"])
	assert.Equal(t, float64(1), body["total"])
}

func TestGetStats(t *testing.T) {
	srv := newTestServer(t)

	code, body := getJSON(t, srv, "/api/dataset/stats")
	require.Equal(t, http.StatusOK, code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["raw_rows"])
	assert.Equal(t, float64(3), data["canonical_rows"])
	assert.NotEmpty(t, data["run_id"])
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	code, body := getJSON(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// Generate one request so the counter exists.
	code, _ := getJSON(t, srv, "/api/summaries")
	require.Equal(t, http.StatusOK, code)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "salescope_http_requests_total")
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
