package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	carrier := NewCarrier("accessToken", 3600, false)

	tests := []struct {
		name      string
		cookies   []*http.Cookie
		wantToken string
		wantOK    bool
	}{
		{
			name:      "token present",
			cookies:   []*http.Cookie{{Name: "accessToken", Value: "abc123"}},
			wantToken: "abc123",
			wantOK:    true,
		},
		{
			name:   "no cookies",
			wantOK: false,
		},
		{
			name:    "other cookie only",
			cookies: []*http.Cookie{{Name: "theme", Value: "dark"}},
			wantOK:  false,
		},
		{
			name:    "empty value",
			cookies: []*http.Cookie{{Name: "accessToken", Value: ""}},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			for _, ck := range tt.cookies {
				req.AddCookie(ck)
			}

			got, ok := carrier.FromRequest(req)
			if ok != tt.wantOK {
				t.Fatalf("FromRequest ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.wantToken {
				t.Errorf("FromRequest token = %q, want %q", got, tt.wantToken)
			}
		})
	}
}

func TestWriteSetsPositiveMaxAge(t *testing.T) {
	carrier := NewCarrier("accessToken", 3600, false)
	rec := httptest.NewRecorder()

	carrier.Write(rec, "abc123")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != "accessToken" || ck.Value != "abc123" {
		t.Errorf("cookie = %s=%s, want accessToken=abc123", ck.Name, ck.Value)
	}
	if ck.MaxAge <= 0 {
		t.Errorf("MaxAge = %d, want positive", ck.MaxAge)
	}
	if ck.Path != "/" {
		t.Errorf("Path = %q, want /", ck.Path)
	}
}

func TestClearExpiresCookie(t *testing.T) {
	carrier := NewCarrier("accessToken", 3600, false)
	rec := httptest.NewRecorder()

	carrier.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("Value = %q, want empty", cookies[0].Value)
	}
}

func TestDefaultCookieName(t *testing.T) {
	carrier := NewCarrier("", 60, false)
	if carrier.CookieName() != DefaultCookieName {
		t.Errorf("CookieName = %q, want %q", carrier.CookieName(), DefaultCookieName)
	}
}
