package middlewares

import (
	"crypto/subtle"
	"net/http"

	"cert-inventory/internal/utils"
)

// RequireToken rejects requests whose bearer token differs from the configured receiver token.
// With no token configured every request passes.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		expected := appCtx.Config.Receiver.Token
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := utils.ExtractBearerToken(r)
		if err != nil {
			appCtx.Logger.Debug("rejected upload", "remote_addr", r.RemoteAddr, "error", err)
			appCtx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			appCtx.Logger.Debug("rejected upload: token mismatch", "remote_addr", r.RemoteAddr)
			appCtx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			return
		}

		next.ServeHTTP(w, r)
	})
}
