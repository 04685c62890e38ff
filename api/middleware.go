package api

import (
	"net"
	"net/http"

	"entsearch/metrics"

	"golang.org/x/time/rate"
)

// rateLimitMiddleware provides rate limiting per client IP. Limiters live in
// an LRU cache so idle clients are evicted instead of swept.
func (a *API) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.limiterFor(clientIP(r)).Allow() {
			metrics.RateLimitedRequests.Inc()
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) limiterFor(ip string) *rate.Limiter {
	if limiter, ok := a.limiters.Get(ip); ok {
		return limiter
	}
	limiter := rate.NewLimiter(rate.Limit(a.config.API.RateLimit.RequestsPerSecond), a.config.API.RateLimit.Burst)
	// Another request may have raced us here; keep whichever got in first
	if previous, found, _ := a.limiters.PeekOrAdd(ip, limiter); found {
		return previous
	}
	return limiter
}

// corsMiddleware adds CORS headers
func (a *API) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range a.config.API.AllowedOrigins {
			if origin == allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", MountIDHeader)
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the address of the direct peer.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
