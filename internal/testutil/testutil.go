package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/robalobadob/bullscows/internal/game"
)

// FixedGenerator hands out the same secret for every round.
type FixedGenerator struct {
	Numeric string
	Word    string
}

// Generate implements game.SecretGenerator.
func (f FixedGenerator) Generate(mode game.Mode) (string, int, error) {
	switch mode {
	case game.ModeNumeric:
		return f.Numeric, mode.MaxGuesses(), nil
	case game.ModeWord:
		return f.Word, mode.MaxGuesses(), nil
	}
	return "", 0, game.ErrInvalidMode
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns an Authorization header map for tok.
func Bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
