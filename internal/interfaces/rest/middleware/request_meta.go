package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/DanielPopoola/walletgate/internal/application"
)

// RequestMeta creates middleware that captures the caller's IP and user agent
// so the audit trail can record who initiated each transfer.
func RequestMeta() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			meta := application.RequestMeta{
				ClientIP:  clientIP(r),
				UserAgent: r.UserAgent(),
			}

			ctx := application.WithRequestMeta(r.Context(), meta)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// the first entry is the originating client
		ip, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(ip)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
