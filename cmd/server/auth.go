package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"net/http"
	"strings"

	apperrors "github.com/Simplici0/sanquote/internal/errors"
)

// adminGuard protects config editing with a shared bearer token. Without a
// token, admin routes are only open in development.
type adminGuard struct {
	digest []byte
	open   bool
}

func newAdminGuard(token string, dev bool) *adminGuard {
	if token == "" {
		return &adminGuard{open: dev}
	}
	return &adminGuard{digest: digest(token)}
}

func digest(v string) []byte {
	sum := sha256.Sum256([]byte(v))
	return sum[:]
}

func (g *adminGuard) allows(r *http.Request) bool {
	if g.digest == nil {
		return g.open
	}
	provided, ok := bearerToken(r)
	if !ok {
		return false
	}
	return hmac.Equal(digest(provided), g.digest)
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func (s *server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.admin.allows(r) {
			s.writeError(w, r, apperrors.New(apperrors.TypeForbidden, "admin token required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
