package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariefcatur/go-shop-orders.git/internal/users"
)

func authedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, okID := UserID(r.Context())
		if !okID {
			t.Fatal("user id missing from context inside authenticated handler")
		}
		_, _ = w.Write([]byte(id))
	})
}

func TestAuthenticator(t *testing.T) {
	tokens := &users.TokenIssuer{Secret: []byte("test-secret"), TTL: time.Hour}
	h := Authenticator(tokens)(authedEcho(t))

	// no token
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 without token, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "fail" || body["error"] == "" {
		t.Fatalf("want fail envelope, got %v", body)
	}

	// garbage token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 for bad token, got %d", rec.Code)
	}

	// valid token reaches the handler with the user id attached
	token, err := tokens.Issue("u42")
	if err != nil {
		t.Fatal(err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "u42" {
		t.Fatalf("want 200/u42, got %d/%q", rec.Code, rec.Body.String())
	}
}

func TestTotalPageNum(t *testing.T) {
	cases := []struct{ total, pageSize, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{21, 5, 5},
	}
	for _, c := range cases {
		if got := totalPageNum(c.total, c.pageSize); got != c.want {
			t.Errorf("totalPageNum(%d,%d)=%d, want %d", c.total, c.pageSize, got, c.want)
		}
	}
}
