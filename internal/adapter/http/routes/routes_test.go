package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"milling_aggregator/internal/infrastructure/auth"
	"milling_aggregator/internal/infrastructure/config"
	"milling_aggregator/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Name: "milling-aggregator", Env: "test", Port: "0"},
		JWT:  config.JWTConfig{Secret: "test-secret-test-secret-test-secret", Issuer: "milling-aggregator", AccessTokenExpiration: time.Hour},
		HTTP: config.HTTPConfig{CORSAllowOrigins: []string{"https://app.example.com"}, MaxUploadBytes: 1 << 20},
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	deps := MemoryDependencies()
	deps.Identity = auth.NewJWTService(cfg.JWTSecret(), cfg.JWT)
	reg := prometheus.NewRegistry()
	deps.Metrics = metrics.NewWithRegistry(reg, reg)
	return NewRouter(cfg, deps, zap.NewNop())
}

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *client) json(method, path string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(raw)
	}
	w := c.do(method, path, body, "application/json")
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func signUp(t *testing.T, r *gin.Engine, email string) *client {
	t.Helper()
	c := &client{t: t, router: r}
	w, _ := c.json(http.MethodPost, "/api/auth/register", map[string]string{"email": email, "password": "s3cret-pass"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body := c.json(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	c.token, _ = body["access_token"].(string)
	require.NotEmpty(t, c.token)
	return c
}

func TestRouter_PublicRoutes(t *testing.T) {
	r := newTestRouter(t)
	anon := &client{t: t, router: r}

	w := anon.do(http.MethodGet, "/api/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = anon.do(http.MethodGet, "/api/rfqs", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = anon.do(http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/rfqs", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_FullLifecycle(t *testing.T) {
	r := newTestRouter(t)
	buyer := signUp(t, r, "buyer@example.com")
	acme := signUp(t, r, "acme@example.com")
	bolt := signUp(t, r, "bolt@example.com")

	// RFQ with a CAD attachment
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("material", "Aluminum 6061"))
	require.NoError(t, mw.WriteField("quantity", "10"))
	fw, err := mw.CreateFormFile("cad_file", "bracket.step")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("ISO-10303-21;"))
	require.NoError(t, mw.Close())

	w := buyer.do(http.MethodPost, "/api/rfqs", buf, mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rfq map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rfq))
	rfqID := rfq["id"].(string)
	assert.Equal(t, "bracket.step", rfq["cad_filename"])
	assert.NotEmpty(t, rfq["cad_file_id"])

	// Two suppliers quote
	w, q1 := acme.json(http.MethodPost, "/api/rfqs/"+rfqID+"/quotes", map[string]any{"supplier_name": "Acme", "price": "120.00", "lead_time_days": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, q2 := bolt.json(http.MethodPost, "/api/rfqs/"+rfqID+"/quotes", map[string]any{"supplier_name": "Bolt", "price": "99.50", "lead_time_days": 14})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Cheapest first for the buyer; suppliers cannot see the RFQ's quotes
	w = buyer.do(http.MethodGet, "/api/quotes?rfq_id="+rfqID, nil, "")
	var quotes []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quotes))
	require.Len(t, quotes, 2)
	assert.Equal(t, "99.50", quotes[0]["price"])

	w = acme.do(http.MethodGet, "/api/rfqs/"+rfqID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Only the owner can accept
	w, _ = acme.json(http.MethodPost, "/api/quotes/"+q2["id"].(string)+"/accept", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, order := buyer.json(http.MethodPost, "/api/quotes/"+q2["id"].(string)+"/accept", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "pending_payment", order["status"])
	orderID := order["id"].(string)

	// Superseded sibling can no longer be accepted, and no new quotes arrive
	w, _ = buyer.json(http.MethodPost, "/api/quotes/"+q1["id"].(string)+"/accept", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w, _ = acme.json(http.MethodPost, "/api/rfqs/"+rfqID+"/quotes", map[string]any{"supplier_name": "Acme", "price": "90"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, payment := buyer.json(http.MethodPost, "/api/orders/"+orderID+"/pay", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "99.50", payment["amount"])
	assert.Equal(t, "EUR", payment["currency"])

	w, _ = buyer.json(http.MethodPost, "/api/orders/"+orderID+"/pay", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, order = buyer.json(http.MethodGet, "/api/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", order["status"])

	w = buyer.do(http.MethodGet, "/api/orders?status=paid", nil, "")
	var orders []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)

	w = buyer.do(http.MethodGet, "/api/payments", nil, "")
	var payments []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payments))
	assert.Len(t, payments, 1)

	w, _ = buyer.json(http.MethodPost, "/api/orders/does-not-exist/pay", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, me := buyer.json(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "buyer@example.com", me["email"])
}
