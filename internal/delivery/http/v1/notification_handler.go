package v1

import (
	"net/http"

	"mancarijo/internal/delivery/http/middleware"
	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

func NewNotificationHandler(seeker *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	seeker.GET("/notifications", handler.Check)
	seeker.POST("/notifications/read", handler.Read)
}

// Check godoc
// @Summary      Check for an acceptance notification
// @Tags         notification
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /notifications [get]
func (h *NotificationHandler) Check(c *gin.Context) {
	status, err := h.notificationUC.Check(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notification status retrieved", status)
}

// Read godoc
// @Summary      Read the acceptance notification
// @Description  Shows the acceptance message once; a second call finds nothing.
// @Tags         notification
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /notifications/read [post]
func (h *NotificationHandler) Read(c *gin.Context) {
	msg, err := h.notificationUC.Read(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Message read", msg)
}
