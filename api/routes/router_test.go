package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/internal/storefront"
	"github.com/angelmondragon/scentshop/pkg/config"
	"github.com/angelmondragon/scentshop/pkg/logger"
	"github.com/angelmondragon/scentshop/pkg/metrics"
)

type panickingSession struct {
	*storefront.Session
}

func (panickingSession) Search(context.Context, string) ([]catalog.RankedItem, error) {
	panic("render exploded")
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: config.AppEnvDev},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func newTestSession(t *testing.T, reg prometheus.Registerer) *storefront.Session {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	sess, err := storefront.NewSession(storefront.Params{Catalog: cat, Metrics: metrics.NewStorefrontMetrics(reg)})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return sess
}

func newTestServer(t *testing.T, sess Session, gatherer prometheus.Gatherer) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(testConfig(), logger.Nop(), sess, gatherer))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode %s %s: %v", method, target, err)
	}
	return resp.StatusCode, payload
}

func data(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	d, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data envelope in %v", payload)
	}
	return d
}

func itemNames(t *testing.T, d map[string]any) []string {
	t.Helper()
	items, _ := d["items"].([]any)
	out := make([]string, 0, len(items))
	for _, raw := range items {
		out = append(out, raw.(map[string]any)["name"].(string))
	}
	return out
}

func TestHealthLive(t *testing.T) {
	srv := newTestServer(t, newTestSession(t, nil), nil)

	resp, err := http.Get(srv.URL + "/health/live")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Scentshop-Env"); got != config.AppEnvDev {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestCatalogSearch(t *testing.T) {
	srv := newTestServer(t, newTestSession(t, nil), nil)

	status, payload := do(t, http.MethodGet, srv.URL+"/api/v1/catalog", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	d := data(t, payload)
	if d["count"].(float64) != 5 {
		t.Fatalf("expected full catalog, got %v", d["count"])
	}
	if terms := d["terms"].([]any); len(terms) != 0 {
		t.Fatalf("expected no terms, got %v", terms)
	}

	_, payload = do(t, http.MethodGet, srv.URL+"/api/v1/catalog?q="+url.QueryEscape("vainilla, almizcle"), "")
	got := itemNames(t, data(t, payload))
	want := []string{"Chanel No. 5", "Eternity for Women", "J'adore by Dior"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected ranking %v", got)
	}

	_, payload = do(t, http.MethodGet, srv.URL+"/api/v1/catalog?q=oud", "")
	d = data(t, payload)
	if d["message"] != "No perfumes found matching your search." {
		t.Fatalf("expected empty-result message, got %v", d)
	}
	if items := d["items"].([]any); len(items) != 0 {
		t.Fatalf("expected no items, got %v", items)
	}
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t, newTestSession(t, nil), nil)
	itemURL := srv.URL + "/api/v1/cart/items/" + url.PathEscape("Acqua di Gio")

	do(t, http.MethodPost, srv.URL+"/api/v1/cart/items", `{"name":"Acqua di Gio"}`)
	do(t, http.MethodPost, srv.URL+"/api/v1/cart/items", `{"name":"Acqua di Gio"}`)
	status, payload := do(t, http.MethodPut, itemURL, `{"quantity":3}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}

	_, payload = do(t, http.MethodGet, srv.URL+"/api/v1/cart", "")
	d := data(t, payload)
	lines := d["lines"].([]any)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %v", lines)
	}
	line := lines[0].(map[string]any)
	if line["quantity"].(float64) != 3 || line["name"] != "Acqua di Gio" {
		t.Fatalf("unexpected line %v", line)
	}
	if d["item_count"].(float64) != 3 {
		t.Fatalf("unexpected item count %v", d["item_count"])
	}

	status, payload = do(t, http.MethodDelete, itemURL, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if lines := data(t, payload)["lines"].([]any); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %v", lines)
	}

	_, payload = do(t, http.MethodGet, srv.URL+"/api/v1/notifications", "")
	notes := data(t, payload)["notifications"].([]any)
	var messages []string
	for _, n := range notes {
		messages = append(messages, n.(map[string]any)["message"].(string))
	}
	want := []string{"Added Acqua di Gio to cart", "Added Acqua di Gio to cart", "Removed Acqua di Gio from cart"}
	if strings.Join(messages, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected notifications %v", messages)
	}
}

func TestCartValidation(t *testing.T) {
	srv := newTestServer(t, newTestSession(t, nil), nil)

	status, payload := do(t, http.MethodPut, srv.URL+"/api/v1/cart/items/Chanel", `{"quantity":-1}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if payload["error"].(map[string]any)["code"] != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error %v", payload)
	}

	status, _ = do(t, http.MethodPost, srv.URL+"/api/v1/cart/items", `{}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", status)
	}
}

func TestPanicFailsSession(t *testing.T) {
	sess := newTestSession(t, nil)
	srv := newTestServer(t, panickingSession{Session: sess}, nil)

	status, payload := do(t, http.MethodGet, srv.URL+"/api/v1/catalog?q=rosa", "")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
	if payload["error"].(map[string]any)["code"] != "APP_FAILED" {
		t.Fatalf("unexpected error %v", payload)
	}

	status, _ = do(t, http.MethodGet, srv.URL+"/api/v1/cart", "")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected gated cart, got %d", status)
	}
	status, _ = do(t, http.MethodGet, srv.URL+"/health/ready", "")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected not ready, got %d", status)
	}

	status, payload = do(t, http.MethodGet, srv.URL+"/api/v1/state", "")
	if status != http.StatusOK {
		t.Fatalf("expected state to stay readable, got %d", status)
	}
	st := data(t, payload)["status"].(map[string]any)
	if st["state"] != "failed" || st["message"] != "render exploded" {
		t.Fatalf("unexpected status %v", st)
	}

	_, payload = do(t, http.MethodGet, srv.URL+"/api/v1/notifications", "")
	notes := data(t, payload)["notifications"].([]any)
	if len(notes) != 1 || notes[0].(map[string]any)["message"] != "An error occurred. Please try again." {
		t.Fatalf("unexpected notifications %v", notes)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv := newTestServer(t, newTestSession(t, reg), reg)

	do(t, http.MethodPost, srv.URL+"/api/v1/cart/items", `{"name":"Chanel No. 5"}`)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `scentshop_cart_operations_total{operation="add",outcome="success"} 1`) {
		t.Fatalf("expected cart metric in exposition:\n%s", body)
	}
}
