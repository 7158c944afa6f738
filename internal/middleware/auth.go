package middleware

import (
	"context"
	"net/http"
	"strings"

	"labcatalog-api/internal/model"
	"labcatalog-api/pkg/apierror"
)

type tokenVerifier interface {
	VerifyToken(tokenString string) (model.Claims, error)
}

type contextKey string

const claimsContextKey contextKey = "session_claims"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth rejects requests without a valid bearer token. Missing
// header, malformed token and expired token all produce the same
// unauthorized response.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAPIError(w, apierror.New(apierror.KindUnauthorized, "missing bearer token"))
			return
		}

		claims, err := m.verifier.VerifyToken(strings.TrimSpace(header[7:]))
		if err != nil {
			writeAPIError(w, apierror.New(apierror.KindUnauthorized, ""))
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromContext(ctx context.Context) (model.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(model.Claims)
	return claims, ok
}

func writeAPIError(w http.ResponseWriter, apiErr *apierror.APIError) {
	writeJSON(w, apiErr.HTTPStatus, model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
}
