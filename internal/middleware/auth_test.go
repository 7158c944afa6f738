package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"labcatalog-api/internal/model"
	"labcatalog-api/pkg/apierror"
)

type stubVerifier struct {
	claims model.Claims
	err    error
	seen   string
}

func (s *stubVerifier) VerifyToken(tokenString string) (model.Claims, error) {
	s.seen = tokenString
	return s.claims, s.err
}

func TestRequireAuthPassesClaimsThrough(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{claims: model.Claims{
		Subject:   "admin@example.com",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	mw := NewAuthMiddleware(verifier)

	var gotClaims model.Claims
	var found bool
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, found = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/admin/quotes", nil)
	req.Header.Set("Authorization", "Bearer some.jwt.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "some.jwt.token", verifier.seen)
	require.True(t, found)
	require.Equal(t, "admin@example.com", gotClaims.Subject)
}

func TestRequireAuthRejectsMissingOrInvalidTokens(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	})

	cases := map[string]struct {
		header   string
		verifier *stubVerifier
	}{
		"no header":      {"", &stubVerifier{}},
		"not bearer":     {"Basic dXNlcjpwYXNz", &stubVerifier{}},
		"rejected token": {"Bearer bad.token", &stubVerifier{err: apierror.New(apierror.KindUnauthorized, "expired")}},
		"empty bearer":   {"Bearer ", &stubVerifier{err: apierror.New(apierror.KindUnauthorized, "empty")}},
	}

	for name, tc := range cases {
		mw := NewAuthMiddleware(tc.verifier)
		handler := mw.RequireAuth(next)

		req := httptest.NewRequest("GET", "/api/admin/quotes", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
		require.Contains(t, rec.Body.String(), "UNAUTHORIZED", name)
	}
}
