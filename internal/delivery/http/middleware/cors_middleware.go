package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = map[string]bool{
	"http://localhost:3000": true,
	"http://127.0.0.1:3000": true,
	"http://localhost:5173": true,
}

// CORSMiddleware adds CORS headers for the browser frontend. Credentials
// are allowed because the session travels in a cookie, so the origin list
// is strict:
// - the configured frontend origin is always allowed
// - localhost origins only outside release mode
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	isProduction := os.Getenv("GIN_MODE") == "release"
	frontend := strings.TrimRight(frontendURL, "/")

	config := cors.DefaultConfig()
	config.AllowOriginFunc = func(origin string) bool {
		if frontend != "" && origin == frontend {
			return true
		}
		return !isProduction && devOrigins[origin]
	}
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding",
		"Cache-Control", "X-Requested-With", "X-CSRF-Token", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	config.MaxAge = 24 * time.Hour

	return cors.New(config)
}
