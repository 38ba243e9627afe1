// Package middleware contains the Gin middleware shared by the booking API.
//
// This file implements RedactingLogger, the access logger. Booking requests
// carry customer names and phone numbers, so nothing is logged from bodies and
// query strings and headers are scrubbed before they reach the log:
//
//   - values of sensitive query parameters (name and phone by default) are
//     replaced wholesale
//   - anything that still looks like an email, phone number or UUID is
//     pattern-redacted
//   - Authorization, Cookie and Set-Cookie (plus configured headers) are masked
//
// Usage:
//
//	r.Use(middleware.RequestID())
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{"X-Api-Key"},
//	}))
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const redacted = "[REDACTED]"

// defaultMaskParams lists query parameters whose values are always dropped.
var defaultMaskParams = []string{"name", "phone"}

// RedactOptions configures additional scrub behavior for RedactingLogger.
//
// MaskHeaders names extra headers whose values are replaced with "[REDACTED]".
// MaskParams names extra query parameters treated the same way. Matching is
// case-insensitive for both and merged with the built-in sets.
type RedactOptions struct {
	MaskHeaders []string
	MaskParams  []string
}

var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Matches "+90 532 123 45 67", "(532) 123-4567", "05321234567" but not
	// ISO dates such as 2024-06-01.
	phoneRE = regexp.MustCompile(`\+?\(?\d{2,4}\)?(?:[ .\-]?\d{2,4}){2,4}`)
)

// redactPII pattern-scrubs s. UUIDs go first so the phone pattern cannot eat
// their digit groups.
func redactPII(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllStringFunc(s, func(m string) string {
		if countDigits(m) < 10 {
			return m
		}
		return "[REDACTED:phone]"
	})
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

// redactQuery masks the values of params in raw, keeping the original key
// order and encoding of every other pair.
func redactQuery(raw string, params map[string]struct{}) string {
	if raw == "" {
		return raw
	}
	pairs := strings.Split(raw, "&")
	for i, p := range pairs {
		k, _, found := strings.Cut(p, "=")
		if !found {
			continue
		}
		if _, ok := params[strings.ToLower(k)]; ok {
			pairs[i] = k + "=" + redacted
		}
	}
	return redactPII(strings.Join(pairs, "&"))
}

func lowerSet(base []string, extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
				set[v] = struct{}{}
			}
		}
	}
	return set
}

// RedactingLogger returns a Gin middleware that attaches a request-scoped
// logger (request_id, method, path, client_ip) and emits one "http_request"
// line per request with scrubbed query and headers. Level follows the status:
// error for 5xx or when handlers recorded gin errors, warn for 4xx, info
// otherwise.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := lowerSet([]string{"authorization", "cookie", "set-cookie"}, opts.MaskHeaders)
	maskParams := lowerSet(defaultMaskParams, opts.MaskParams)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		reqID := RequestIDFrom(c)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}

		scoped := log.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("client_ip", c.ClientIP()).
			Logger()
		c.Set(loggerKey, &scoped)

		safeQuery := truncate(redactQuery(c.Request.URL.RawQuery, maskParams), maxQueryLogLength)
		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = redacted
				continue
			}
			safeHeaders[k] = redactPII(strings.Join(vv, ", "))
		}

		c.Next()

		status := c.Writer.Status()
		ev := scoped.Info()
		switch {
		case status >= 500 || len(c.Errors) > 0:
			ev = scoped.Error()
		case status >= 400:
			ev = scoped.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}

		ev.
			Str("query", safeQuery).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
