package v1

import (
	"net/http"

	"mancarijo/internal/delivery/http/middleware"
	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessions domain.SessionUsecase
}

func NewSessionHandler(public *gin.RouterGroup, sessions domain.SessionUsecase) {
	handler := &SessionHandler{sessions: sessions}

	public.GET("/session", handler.Current)
	public.PUT("/session/search", handler.SetSearch)
}

// Current godoc
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	response.Success(c, http.StatusOK, "Session retrieved", middleware.CurrentSession(c))
}

type SearchRequest struct {
	Query string `json:"query" binding:"max=100"`
}

// SetSearch godoc
// @Summary      Remember the search query
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        req  body  SearchRequest  true  "Query"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /session/search [put]
func (h *SessionHandler) SetSearch(c *gin.Context) {
	var req SearchRequest
	if !bind(c, &req) {
		return
	}

	session := middleware.CurrentSession(c)
	h.sessions.SetSearchQuery(session.Token, req.Query)
	session.SearchQuery = req.Query
	response.Success(c, http.StatusOK, "Search updated", session)
}
