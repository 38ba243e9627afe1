// Package middleware contains the Gin middleware shared by the booking API.
//
// This file validates the Idempotency-Key header on unsafe requests and
// stashes the key and its scope (the client identity) in the Gin context. The
// booking handler hands both to the service, which owns the stored record and
// decides whether the request is a replay. When a lookup reports a live record
// the request is flagged so the rate limiter lets the retry through.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the client's key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed is set to "true" on responses served from a
// stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemScope  = "idem.scope"
	ctxKeyRateBypass = "rate.bypass"
)

var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stashed by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IdempotencyScope returns the scope the key was validated under. It falls
// back to the client-IP scope when the validator did not run.
func IdempotencyScope(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyIdemScope); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ClientScope(c)
}

// ClientScope namespaces idempotency keys per client IP.
func ClientScope(c *gin.Context) string { return "ip:" + c.ClientIP() }

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil uses ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
	// Scope derives the key namespace from the request; nil uses ClientScope.
	Scope func(*gin.Context) string
	// Now supplies the lookup time; nil uses time.Now.
	Now func() time.Time
	// Routes limits the validator to "METHOD /route/template" entries
	// matched against the Gin route (e.g. "POST /api/v1/appointments").
	// Empty means every unsafe method on every route.
	Routes []string
}

// IdempotencyLookup reports whether an unexpired record exists for
// (scope, key) at now. Lookup errors never block the request.
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates Idempotency-Key on POST, PUT, PATCH and
// DELETE requests, restricted to opts.Routes when set. A missing header is a
// no-op; a malformed one is rejected with 400 bad_idempotency_key. Safe
// methods and routes outside opts.Routes ignore the header.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}
	scopeOf := opts.Scope
	if scopeOf == nil {
		scopeOf = ClientScope
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	var routes map[string]struct{}
	if len(opts.Routes) > 0 {
		routes = make(map[string]struct{}, len(opts.Routes))
		for _, rt := range opts.Routes {
			routes[rt] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || !isUnsafe(c.Request.Method) {
			c.Next()
			return
		}
		if routes != nil {
			if _, ok := routes[c.Request.Method+" "+c.FullPath()]; !ok {
				c.Next()
				return
			}
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": RequestIDFrom(c),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
				"field":      "idempotency_key",
			})
			return
		}

		scope := scopeOf(c)
		c.Set(ctxKeyIdemKey, key)
		c.Set(ctxKeyIdemScope, scope)

		if lookup != nil {
			exists, err := lookup(c.Request.Context(), scope, key, now().UTC())
			if err != nil {
				LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
			}
			if exists {
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}

func isUnsafe(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
