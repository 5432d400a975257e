package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/SttarkMax/sistema/api/responses"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimitPolicy throttles one credential endpoint per client IP and per
// username. A zero limit disables that dimension.
type AuthRateLimitPolicy struct {
	name          string
	window        time.Duration
	ipLimit       int64
	usernameLimit int64
}

func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, usernameLimit int) AuthRateLimitPolicy {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "auth"
	}
	return AuthRateLimitPolicy{
		name:          name,
		window:        window,
		ipLimit:       int64(ipLimit),
		usernameLimit: int64(usernameLimit),
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.usernameLimit > 0)
}

// windowCheck is one counter consulted before the handler runs.
type windowCheck struct {
	dimension string
	key       string
	limit     int64
	logField  string
	logValue  string
}

// checks lists the counters that apply to r. Usernames are matched ignoring
// case and surrounding spaces, and only their hash reaches redis or the logs.
func (p AuthRateLimitPolicy) checks(r *http.Request, body []byte) []windowCheck {
	var out []windowCheck
	if ip := clientIP(r); p.ipLimit > 0 && ip != "" {
		out = append(out, windowCheck{"ip", "ip:" + p.name + ":" + ip, p.ipLimit, "ip", ip})
	}
	if p.usernameLimit > 0 {
		if username := usernameFrom(body); username != "" {
			sum := sha256.Sum256([]byte(username))
			hash := hex.EncodeToString(sum[:])
			out = append(out, windowCheck{"username", "user:" + p.name + ":" + hash, p.usernameLimit, "username_hash", hash})
		}
	}
	return out
}

// AuthRateLimit rejects login attempts over the policy's limits with
// RATE_LIMIT_EXCEEDED. The request body is buffered so the handler can still
// decode it.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var body []byte
			if policy.usernameLimit > 0 && r.Body != nil {
				var err error
				if body, err = io.ReadAll(io.LimitReader(r.Body, 1<<16)); err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Corpo da requisição inválido."))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			for _, check := range policy.checks(r, body) {
				allowed, count, err := store.FixedWindowAllow(ctx, check.key, check.limit, policy.window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "Serviço de sessão indisponível. Tente novamente."))
					return
				}
				if !allowed {
					rejectAttempt(ctx, logg, w, policy, check, count)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectAttempt(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy AuthRateLimitPolicy, check windowCheck, count int64) {
	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"policy":         policy.name,
			"scope":          check.dimension,
			check.logField:   check.logValue,
			"attempts":       count,
			"limit":          check.limit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(ctx, "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Muitas tentativas de login. Tente novamente em instantes."))
}

// clientIP trusts the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func usernameFrom(body []byte) string {
	var creds struct {
		Username string `json:"username"`
	}
	if len(body) == 0 || json.Unmarshal(body, &creds) != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(creds.Username))
}
