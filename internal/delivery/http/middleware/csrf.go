package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"time"

	"mancarijo/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
	csrfTokenBytes = 32
	csrfCookieTTL  = 24 * time.Hour
)

// CSRFMiddleware is a double-submit check. Unsafe requests must echo the
// csrf_token cookie in the X-CSRF-Token header; a cross-site page can make
// the browser send the cookie but cannot read it to build the header.
// The cookie is readable by scripts on purpose.
func CSRFMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookieName)
		if err != nil || token == "" {
			token, err = newCSRFToken()
			if err != nil {
				response.Abort(c, http.StatusInternalServerError, "Failed to generate security token")
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookieName, token, int(csrfCookieTTL.Seconds()), "/", "", secure, false)
		}

		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		header := c.GetHeader(CSRFHeaderName)
		if header == "" || subtle.ConstantTimeCompare([]byte(header), []byte(token)) != 1 {
			response.Abort(c, http.StatusForbidden, "Invalid CSRF token")
			return
		}
		c.Next()
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
