package middleware

import (
	"net/http"

	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionConfig names the cookie that carries the session token.
type SessionConfig struct {
	CookieName string
	Secure     bool
}

// SessionMiddleware resolves the caller's session once per request. A
// browser without a token is issued one; the identity behind it is
// whatever the session store holds, taken on trust.
func SessionMiddleware(sessions domain.SessionUsecase, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err == nil {
			_, err = uuid.Parse(token)
		}
		if err != nil {
			token = uuid.NewString()
			SetSessionCookie(c, cfg, token, false)
		}

		session := sessions.Current(c.Request.Context(), token)
		c.Set(string(domain.KeySession), session)
		c.Next()
	}
}

// CurrentSession returns the session resolved by SessionMiddleware.
func CurrentSession(c *gin.Context) domain.Session {
	if v, ok := c.Get(string(domain.KeySession)); ok {
		if s, ok := v.(domain.Session); ok {
			return s
		}
	}
	return domain.Session{}
}

// RequireSignedIn rejects anonymous callers.
func RequireSignedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).SignedIn() {
			response.Abort(c, http.StatusUnauthorized, "Sign in required")
			return
		}
		c.Next()
	}
}

// RequireRole rejects callers that are not signed in with role.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if !session.SignedIn() {
			response.Abort(c, http.StatusUnauthorized, "Sign in required")
			return
		}
		if session.Identity.Role != role {
			response.Abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// RememberMeMaxAge keeps a durable session's cookie across browser restarts.
const RememberMeMaxAge = 30 * 24 * 60 * 60

// SetSessionCookie issues token to the browser. A persistent cookie
// outlives the browser session; otherwise it is dropped when the browser
// closes.
func SetSessionCookie(c *gin.Context, cfg SessionConfig, token string, persistent bool) {
	maxAge := 0
	if persistent {
		maxAge = RememberMeMaxAge
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, token, maxAge, "/", "", cfg.Secure, true)
}
