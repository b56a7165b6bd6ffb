package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuote(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	tests := []struct {
		query  string
		status int
		net    string
		known  bool
	}{
		{"plan=vip&amount=1000", http.StatusOK, "980", true},
		{"plan=starter&amount=1000", http.StatusOK, "900", true},
		{"plan=PRO&amount=1000", http.StatusOK, "950", true},
		{"plan=basic&amount=1000", http.StatusOK, "1000", false},
		{"amount=1000", http.StatusBadRequest, "", false},
		{"plan=vip&amount=lots", http.StatusBadRequest, "", false},
	}

	for _, tt := range tests {
		resp, err := http.Get(ts.URL + "/v1/quote?" + tt.query)
		if err != nil {
			t.Fatalf("GET /v1/quote?%s: %v", tt.query, err)
		}
		var body quoteResponse
		json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()

		if resp.StatusCode != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.query, resp.StatusCode, tt.status)
			continue
		}
		if tt.status != http.StatusOK {
			continue
		}
		if !body.Net.Equal(decimal.RequireFromString(tt.net)) {
			t.Errorf("%s: net = %s, want %s", tt.query, body.Net, tt.net)
		}
		if body.Known != tt.known {
			t.Errorf("%s: known = %v, want %v", tt.query, body.Known, tt.known)
		}
	}
}
