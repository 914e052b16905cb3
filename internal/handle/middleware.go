package handle

import (
	"net/http"
	"strings"
	"time"

	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/samber/lo"
)

func withCORS(origins []string, next http.Handler) http.Handler {
	allowAll := lo.Contains(origins, "*")
	allowed := func(origin string) bool {
		return allowAll || lo.Contains(origins, origin)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", lo.Ternary(allowAll, "*", origin))
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger := log.FromContextOrDiscard(r.Context())
		logger.Info("request",
			"method", r.Method,
			"path", strings.SplitN(r.RequestURI, "?", 2)[0],
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
