// README: Handler tests for request validation and URL parsing paths.
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"farelink/internal/http/handlers"
)

// buildTestRouter wires a minimal Gin engine. The nil service is safe because
// every test here fails request validation (or parses a URL) before any
// service method is called.
func buildTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	ch := handlers.NewConversationHandler(nil)
	lh := handlers.NewLinkHandler(nil)
	r.POST("/api/conversations", ch.Create)
	r.POST("/api/conversations/:id/messages", ch.Message)
	r.GET("/api/conversations/:id/links", lh.Link)
	r.POST("/api/links/parse", lh.Parse)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_MissingUserID(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodPost, "/api/conversations", map[string]any{"user_id": "  "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestMessage_MissingBody(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodPost, "/api/conversations/c1/messages", map[string]any{"message": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestLink_UnknownFormat(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodGet, "/api/conversations/c1/links?format=carrierpigeon", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestParse_MissingURL(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodPost, "/api/links/parse", map[string]any{"url": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestParse_BookingURL(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodPost, "/api/links/parse", map[string]any{
		"url": "https://book.partner.example.com/flights?from=SYD&to=NRT&depart=05032025&type=O&adults=1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Empty         bool    `json:"empty"`
		OriginCode    *string `json:"origin_code"`
		DepartureDate *string `json:"departure_date"`
		TripKind      *string `json:"trip_kind"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Empty {
		t.Fatal("a well-formed booking URL must not decode to an empty partial")
	}
	if resp.OriginCode == nil || *resp.OriginCode != "SYD" {
		t.Errorf("origin: %v", resp.OriginCode)
	}
	if resp.DepartureDate == nil || *resp.DepartureDate != "2025-03-05" {
		t.Errorf("departure: %v", resp.DepartureDate)
	}
	if resp.TripKind == nil || *resp.TripKind != "oneway" {
		t.Errorf("trip kind: %v", resp.TripKind)
	}
}

func TestParse_MalformedURLDegradesToEmpty(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodPost, "/api/links/parse", map[string]any{"url": "not a partner url"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Empty bool `json:"empty"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Empty {
		t.Fatal("a malformed URL must decode to an empty partial")
	}
}
