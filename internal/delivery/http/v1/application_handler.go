package v1

import (
	"net/http"

	"mancarijo/internal/delivery/http/middleware"
	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(seeker, provider *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	seeker.POST("/jobs/:id/apply", handler.Apply)

	jobs := provider.Group("/jobs/:id")
	{
		jobs.POST("/applicants/:seekerId/accept", handler.Accept)
		jobs.POST("/applicants/:seekerId/decline", handler.Decline)
		jobs.POST("/employees/:seekerId/stop", handler.Stop)
		jobs.POST("/acknowledge", handler.Acknowledge)
	}
	provider.GET("/journal/pending", handler.Pending)
}

// Apply godoc
// @Summary      Apply to a job
// @Tags         application
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	result, err := h.appUC.Apply(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application submitted", result)
}

// Accept godoc
// @Summary      Accept an applicant
// @Tags         application
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Param        seekerId  path  string  true  "Seeker ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /provider/jobs/{id}/applicants/{seekerId}/accept [post]
func (h *ApplicationHandler) Accept(c *gin.Context) {
	result, err := h.appUC.Accept(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), c.Param("seekerId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicant accepted", result)
}

// Decline godoc
// @Summary      Decline an applicant
// @Tags         application
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Param        seekerId  path  string  true  "Seeker ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /provider/jobs/{id}/applicants/{seekerId}/decline [post]
func (h *ApplicationHandler) Decline(c *gin.Context) {
	result, err := h.appUC.Decline(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), c.Param("seekerId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicant declined", result)
}

type StopRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// Stop godoc
// @Summary      Stop an employment
// @Description  Ends a working employment with the provider's rating.
// @Tags         application
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Param        seekerId  path  string  true  "Seeker ID"
// @Param        req  body  StopRequest  true  "Rating"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /provider/jobs/{id}/employees/{seekerId}/stop [post]
func (h *ApplicationHandler) Stop(c *gin.Context) {
	var req StopRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.appUC.Stop(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), c.Param("seekerId"), req.Rating)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employment stopped", result)
}

// Acknowledge godoc
// @Summary      Acknowledge new applicants
// @Description  Clears the job's new-applicant flag.
// @Tags         application
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /provider/jobs/{id}/acknowledge [post]
func (h *ApplicationHandler) Acknowledge(c *gin.Context) {
	job, err := h.appUC.AcknowledgeApplicants(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants acknowledged", job)
}

// Pending godoc
// @Summary      Unfinished transitions
// @Description  Lists the provider's transitions that wrote the seeker but not the job.
// @Tags         application
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /provider/journal/pending [get]
func (h *ApplicationHandler) Pending(c *gin.Context) {
	entries, err := h.appUC.DivergedTransitions(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pending transitions retrieved", entries)
}
