package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	"github.com/m04kA/TableReservationService/internal/infra/ratelimit"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// Limiter счетчик запросов
type Limiter interface {
	Allow(ctx context.Context, key string) (*ratelimit.Decision, error)
}

// RateLimitObserver метрика отклоненных запросов
type RateLimitObserver interface {
	ObserveRateLimited()
}

// RateLimit ограничивает число запросов с одного IP в окне.
// При недоступности хранилища счетчиков запрос пропускается.
func RateLimit(limiter Limiter, scope string, observer RateLimitObserver, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			decision, err := limiter.Allow(r.Context(), scope+":"+ip)
			if err != nil {
				logger.Error("%s %s - Rate limiter unavailable: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				observer.ObserveRateLimited()
				logger.Warn("%s %s - Rate limited: ip=%s", r.Method, r.URL.Path, ip)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP первый адрес из X-Forwarded-For, иначе адрес соединения
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
