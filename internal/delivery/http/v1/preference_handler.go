package v1

import (
	"net/http"

	"mancarijo/internal/delivery/http/middleware"
	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	prefUC domain.PreferenceUsecase
}

func NewPreferenceHandler(public, seeker *gin.RouterGroup, prefUC domain.PreferenceUsecase) {
	handler := &PreferenceHandler{prefUC: prefUC}

	public.GET("/preferences", handler.List)
	seeker.GET("/me/preferences", handler.Mine)
	seeker.PUT("/me/preferences", handler.Update)
}

// List godoc
// @Summary      Job preference catalogue
// @Tags         preference
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /preferences [get]
func (h *PreferenceHandler) List(c *gin.Context) {
	prefs, err := h.prefUC.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Preferences retrieved", prefs)
}

// Mine godoc
// @Summary      Seeker's preferences
// @Tags         preference
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /me/preferences [get]
func (h *PreferenceHandler) Mine(c *gin.Context) {
	prefs, err := h.prefUC.SeekerPreferences(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Preferences retrieved", prefs)
}

type UpdatePreferencesRequest struct {
	Preferences []domain.PreferenceInput `json:"preferences" binding:"dive"`
}

// Update godoc
// @Summary      Replace the seeker's preferences
// @Tags         preference
// @Accept       json
// @Produce      json
// @Param        req  body  UpdatePreferencesRequest  true  "Preference IDs"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /me/preferences [put]
func (h *PreferenceHandler) Update(c *gin.Context) {
	var req UpdatePreferencesRequest
	if !bind(c, &req) {
		return
	}

	prefs, err := h.prefUC.UpdateSeekerPreferences(c.Request.Context(), middleware.CurrentSession(c), req.Preferences)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Preferences updated", prefs)
}
