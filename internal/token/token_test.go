package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestIssueHasThreeSegments(t *testing.T) {
	iss := NewIssuer()

	tests := []struct {
		subject string
		plan    string
	}{
		{"lucas", "pro"},
		{"acme-corp", "VIP"},
		{"user with spaces", "Starter"},
		{"x", ""},
	}

	for _, tt := range tests {
		cred, err := iss.Issue(tt.subject, tt.plan)
		if err != nil {
			t.Fatalf("Issue(%q, %q): %v", tt.subject, tt.plan, err)
		}

		parts := strings.Split(string(cred), ".")
		if len(parts) != 3 {
			t.Fatalf("Issue(%q, %q) = %q, want 3 segments, got %d", tt.subject, tt.plan, cred, len(parts))
		}
		if parts[2] != Placeholder {
			t.Errorf("signature segment = %q, want %q", parts[2], Placeholder)
		}

		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		if err != nil {
			t.Fatalf("decode payload segment: %v", err)
		}
		var claims map[string]any
		if err := json.Unmarshal(payload, &claims); err != nil {
			t.Fatalf("payload is not JSON: %v", err)
		}
		if claims["user"] != tt.subject {
			t.Errorf("user claim = %v, want %q", claims["user"], tt.subject)
		}
		if claims["plan"] != strings.ToUpper(tt.plan) {
			t.Errorf("plan claim = %v, want %q", claims["plan"], strings.ToUpper(tt.plan))
		}
	}
}

func TestIssueFixedHeader(t *testing.T) {
	a, _ := NewIssuer().Issue("a", "pro")
	b, _ := NewIssuer().Issue("b", "vip")

	ha := strings.SplitN(string(a), ".", 2)[0]
	hb := strings.SplitN(string(b), ".", 2)[0]
	if ha != hb {
		t.Errorf("header segments differ: %q vs %q", ha, hb)
	}
	if ha != "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9" {
		t.Errorf("header = %q, want encoded {\"alg\":\"HS256\",\"typ\":\"JWT\"}", ha)
	}
}

func TestIssueEmptySubject(t *testing.T) {
	_, err := NewIssuer().Issue("", "PRO")
	if !errors.Is(err, ErrEmptySubject) {
		t.Errorf("Issue(\"\") error = %v, want ErrEmptySubject", err)
	}
}

func TestInspectRoundTrip(t *testing.T) {
	cred, err := NewIssuer().Issue("lucas", "pro")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := Inspect(cred)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if claims.User != "lucas" || claims.Plan != "PRO" {
		t.Errorf("claims = %+v, want user=lucas plan=PRO", claims)
	}
}

func TestInspectMalformed(t *testing.T) {
	for _, raw := range []string{"", "abc", "a.b", "a.!!!.c"} {
		if _, err := Inspect(Credential(raw)); err == nil {
			t.Errorf("Inspect(%q) succeeded, want error", raw)
		}
	}
}

func TestBearer(t *testing.T) {
	cred := Credential("h.p.s")
	if got := cred.Bearer(); got != "Bearer h.p.s" {
		t.Errorf("Bearer() = %q", got)
	}

	got, ok := FromBearer("Bearer h.p.s")
	if !ok || got != cred {
		t.Errorf("FromBearer = %q, %v; want %q, true", got, ok, cred)
	}
	if _, ok := FromBearer("Basic dXNlcg=="); ok {
		t.Error("FromBearer accepted Basic scheme")
	}
	if _, ok := FromBearer("Bearer "); ok {
		t.Error("FromBearer accepted empty token")
	}
}
