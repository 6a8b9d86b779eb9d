package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// OriginPolicy decides which browser origins may call the server.
type OriginPolicy struct {
	any     bool
	allowed map[string]struct{}
}

// NewOriginPolicy accepts exact origins such as "https://app.example". A "*"
// entry allows every origin.
func NewOriginPolicy(origins []string) *OriginPolicy {
	normalized := lo.FilterMap(origins, func(o string, _ int) (string, bool) {
		return normalizeOrigin(o)
	})
	return &OriginPolicy{
		any:     lo.Contains(normalized, "*"),
		allowed: lo.SliceToMap(normalized, func(o string) (string, struct{}) { return o, struct{}{} }),
	}
}

func (p *OriginPolicy) Allows(origin string) bool {
	if p.any {
		return true
	}
	o, ok := normalizeOrigin(origin)
	if !ok {
		return false
	}
	_, ok = p.allowed[o]
	return ok
}

// normalizeOrigin lowercases scheme and host and strips a trailing slash.
func normalizeOrigin(origin string) (string, bool) {
	origin = strings.TrimSpace(origin)
	if origin == "*" {
		return origin, true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	if u.Path != "" && u.Path != "/" {
		return "", false
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), true
}

func corsMiddleware(policy *OriginPolicy) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && policy.Allows(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if origin != "" && policy.Allows(origin) {
					h := w.Header()
					h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
					h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
					h.Set("Access-Control-Max-Age", "600")
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
