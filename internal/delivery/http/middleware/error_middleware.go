package middleware

import (
	"errors"
	"net/http"

	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RemoteFailureMessage is all the browser learns about a failed call to the
// remote API. The details stay in the server log.
const RemoteFailureMessage = "The operation did not complete. Please try again."

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(string(domain.KeyRequestID))

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// Never expose internal error details to clients
			logger.Log.Error("Internal Server Error", "request_id", requestID, "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		switch {
		case apperror.IsRemote(appErr):
			logger.Log.Warn("Remote API call failed",
				"request_id", requestID,
				"path", c.FullPath(),
				"kind", appErr.Kind,
				"op", appErr.Message,
				"error", appErr.Err,
			)
			response.Error(c, appErr.Code, RemoteFailureMessage, gin.H{"kind": appErr.Kind})
		case appErr.Kind == apperror.KindInternal:
			logger.Log.Error("Internal Server Error", "request_id", requestID, "path", c.FullPath(), "error", appErr.Err)
			response.Error(c, appErr.Code, appErr.Message, nil)
		default:
			response.Error(c, appErr.Code, appErr.Message, nil)
		}
	}
}
