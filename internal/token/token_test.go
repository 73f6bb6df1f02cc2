package token

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignParse_RoundTrip(t *testing.T) {
	iss, err := NewIssuer("test-secret", time.Hour, false)
	if err != nil {
		t.Fatal(err)
	}
	tok, exp, err := iss.Sign("session-1")
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v is in the past", exp)
	}
	sid, err := iss.Parse(tok)
	if err != nil {
		t.Fatal(err)
	}
	if sid != "session-1" {
		t.Fatalf("sid = %q", sid)
	}
}

func TestParse_RejectsOtherSecret(t *testing.T) {
	a, _ := NewIssuer("secret-a", time.Hour, false)
	b, _ := NewIssuer("secret-b", time.Hour, false)
	tok, _, _ := a.Sign("s")
	if _, err := b.Parse(tok); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Minute, false)
	tok, _, _ := iss.Sign("s")
	iss.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := iss.Parse(tok); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for expired token, got %v", err)
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	iss, _ := NewIssuer("", 0, false)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := iss.Parse(tok); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q): expected ErrInvalid, got %v", tok, err)
		}
	}
}

func TestRandomSecretsDiffer(t *testing.T) {
	a, _ := NewIssuer("", time.Hour, false)
	b, _ := NewIssuer("", time.Hour, false)
	tok, _, _ := a.Sign("s")
	if _, err := b.Parse(tok); err == nil {
		t.Fatal("issuers with random secrets must not accept each other's tokens")
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := FromRequest(r); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	if got := FromRequest(r); got != "from-cookie" {
		t.Fatalf("cookie token = %q", got)
	}

	r.Header.Set("Authorization", "Bearer from-header")
	if got := FromRequest(r); got != "from-header" {
		t.Fatalf("header should win over cookie, got %q", got)
	}
}

func TestSetCookie(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour, true)
	w := httptest.NewRecorder()
	iss.SetCookie(w, "tok", time.Now().Add(time.Hour))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "tok" || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteNoneMode {
		t.Fatalf("unexpected cookie %+v", c)
	}
}
