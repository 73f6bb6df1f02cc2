// internal/token/token.go
//
// Session tokens for the HTTP transport.
// Responsibilities:
//   - Sign HS256 JWTs that carry a session ID ("sid") with a configurable expiry.
//   - Verify tokens and return the session ID.
//   - Read/write the token from an Authorization header or a cookie.
//
// Notes:
//   - The HMAC key is derived from the configured secret with HKDF-SHA256, so
//     the raw SESSION_SECRET is never used directly as a signing key.
//   - An empty secret makes the Issuer generate a random one; tokens then stop
//     verifying after a restart, which matches sessions living in memory.

package token

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// CookieName is the cookie that carries the session token.
const CookieName = "bullscows_session"

const hkdfInfo = "bullscows session token"

// ErrInvalid is returned for missing, malformed, expired or forged tokens.
var ErrInvalid = errors.New("invalid session token")

// Issuer signs and verifies session tokens.
type Issuer struct {
	key    []byte
	ttl    time.Duration
	secure bool // Secure cookies (production)
	now    func() time.Time
}

// NewIssuer derives a signing key from secret. ttl <= 0 defaults to 24h.
func NewIssuer(secret string, ttl time.Duration, secure bool) (*Issuer, error) {
	ikm := []byte(secret)
	if secret == "" {
		ikm = make([]byte, 32)
		if _, err := rand.Read(ikm); err != nil {
			return nil, fmt.Errorf("token: random secret: %w", err)
		}
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("token: derive key: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{key: key, ttl: ttl, secure: secure, now: time.Now}, nil
}

// Sign creates a token for sessionID and returns it with its expiry.
func (i *Issuer) Sign(sessionID string) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	})
	ss, err := t.SignedString(i.key)
	return ss, exp, err
}

// Parse verifies tok and returns its session ID.
func (i *Issuer) Parse(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !t.Valid {
		return "", ErrInvalid
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", ErrInvalid
	}
	return sid, nil
}

// SetCookie writes the token cookie with appropriate security attributes.
func (i *Issuer) SetCookie(w http.ResponseWriter, tok string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if i.secure {
		sameSite = http.SameSiteNoneMode // required for cross-site use when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   i.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// FromRequest extracts a bearer token from the Authorization header or the cookie.
func FromRequest(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
