package v1

import (
	"net/http"

	"mancarijo/internal/delivery/http/middleware"
	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"

	"github.com/gin-gonic/gin"
)

type TestimonyHandler struct {
	testimonyUC domain.TestimonyUsecase
}

func NewTestimonyHandler(signedIn *gin.RouterGroup, testimonyUC domain.TestimonyUsecase) {
	handler := &TestimonyHandler{testimonyUC: testimonyUC}

	signedIn.GET("/testimony", handler.Get)
	signedIn.PUT("/testimony", handler.Set)
}

// Get godoc
// @Summary      Own testimony
// @Tags         testimony
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /testimony [get]
func (h *TestimonyHandler) Get(c *gin.Context) {
	content, err := h.testimonyUC.Get(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Testimony retrieved", gin.H{"content": content})
}

type TestimonyRequest struct {
	Content string `json:"content" binding:"max=1000"`
}

// Set godoc
// @Summary      Write or replace own testimony
// @Tags         testimony
// @Accept       json
// @Produce      json
// @Param        req  body  TestimonyRequest  true  "Testimony"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /testimony [put]
func (h *TestimonyHandler) Set(c *gin.Context) {
	var req TestimonyRequest
	if !bind(c, &req) {
		return
	}

	content, err := h.testimonyUC.Set(c.Request.Context(), middleware.CurrentSession(c), req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Testimony saved", gin.H{"content": content})
}
