package middleware

import (
	"context"
	"net/http"
	"strings"

	"pawsense/internal/platform/logger"
	"pawsense/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader inyecta el usuario cuando no hay verifier (modo dev).
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext:
// - verifier != nil y viene Bearer token => Verify() y setea claims.
// - verifier == nil => modo dev: X-Debug-User-ID setea claims.
// - Sin claims el request sigue igual; cada handler decide el 401.
// En todos los casos deja en el contexto un logger con request_id (y user_id si hay).
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := log
			if rid := chimw.GetReqID(r.Context()); rid != "" {
				l = l.With(map[string]any{"request_id": rid})
			}

			claims, ok := resolveClaims(r, verifier, l)
			ctx := r.Context()
			if ok {
				ctx = context.WithValue(ctx, claimsKey, claims)
				l = l.With(map[string]any{"user_id": claims.UserID})
			}
			ctx = logger.WithContext(ctx, l)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.AuthVerifier, l logger.Logger) (auth.Claims, bool) {
	if verifier == nil {
		if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
			return auth.Claims{UserID: uid}, true
		}
		return auth.Claims{}, false
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		l.Debug("bearer token rejected", map[string]any{"error": err})
		return auth.Claims{}, false
	}
	return claims, true
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
