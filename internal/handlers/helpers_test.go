package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte(strings.Repeat("t", 32))

func newAuthService() *auth.Service {
	return auth.NewService(testSecret, bcrypt.MinCost)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// requestWithChiURLParams creates a request with chi route context so chi.URLParam works.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func withUser(r *http.Request, id int) *http.Request {
	return r.WithContext(middleware.WithClaims(r.Context(), &auth.Claims{ID: id, Username: "u"}))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

// bcryptOf matches a driver value that is a bcrypt hash of plain, and is
// therefore never plain itself.
type bcryptOf string

func (b bcryptOf) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || s == string(b) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s), []byte(b)) == nil
}

var userColumns = []string{"id", "username", "email", "password_hash", "role", "created_at"}

func userRow(t *testing.T, id int, username, email, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := newAuthService().HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return sqlmock.NewRows(userColumns).AddRow(id, username, email, hash, "", time.Now())
}
