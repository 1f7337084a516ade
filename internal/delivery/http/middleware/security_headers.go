package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets the hardening headers. imageHosts are
// extra origins allowed to serve profile pictures (the S3 public base URL).
// Every response depends on the session cookie, so nothing is cacheable.
func SecurityHeadersMiddleware(imageHosts ...string) gin.HandlerFunc {
	imgSrc := []string{"img-src", "'self'", "data:"}
	for _, h := range imageHosts {
		if h != "" {
			imgSrc = append(imgSrc, h)
		}
	}
	csp := strings.Join([]string{
		"default-src 'self'",
		strings.Join(imgSrc, " "),
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}, "; ")

	headers := [][2]string{
		{"Strict-Transport-Security", "max-age=63072000; includeSubDomains"},
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()"},
		{"Content-Security-Policy", csp},
		{"Cache-Control", "no-store, no-cache, must-revalidate, private"},
		{"Pragma", "no-cache"},
	}

	return func(c *gin.Context) {
		for _, h := range headers {
			c.Header(h[0], h[1])
		}
		c.Next()
	}
}
