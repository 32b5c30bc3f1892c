package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/ratelimit"
)

// RateLimitPolicy defines the throttling parameters for an endpoint.
type RateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

func NewRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) RateLimitPolicy {
	return RateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// LoginRateLimit counts attempts per client IP and per hashed email. With no
// store configured it lets everything through.
func LoginRateLimit(policy RateLimitPolicy, store ratelimit.Store, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.enabled() || store == nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		if policy.ipLimit > 0 {
			if ip := c.ClientIP(); ip != "" {
				key := fmt.Sprintf("rl:ip:%s:%s", policy.name, ip)
				allowed, count, err := ratelimit.Allow(ctx, store, key, policy.window, int64(policy.ipLimit))
				if err != nil {
					httperr.Respond(c, log, err)
					return
				}
				if !allowed {
					blocked(c, log, policy, "ip", count)
					return
				}
			}
		}

		if policy.emailLimit > 0 {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				respondBodyError(c, log, err)
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))

			if email := extractEmail(body); email != "" {
				key := fmt.Sprintf("rl:email:%s:%s", policy.name, hashValue(email))
				allowed, count, err := ratelimit.Allow(ctx, store, key, policy.window, int64(policy.emailLimit))
				if err != nil {
					httperr.Respond(c, log, err)
					return
				}
				if !allowed {
					blocked(c, log, policy, "email", count)
					return
				}
			}
		}

		c.Next()
	}
}

func blocked(c *gin.Context, log *logger.Logger, policy RateLimitPolicy, scope string, count int64) {
	if log != nil {
		ctx := log.WithFields(c.Request.Context(), map[string]any{
			"scope":          scope,
			"policy":         policy.name,
			"attempts":       count,
			"window_seconds": int(policy.window.Seconds()),
		})
		log.Warn(ctx, "auth.rate_limit.blocked")
	}
	httperr.Respond(c, log, httperr.New(httperr.CodeRateLimited, ""))
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Email))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
