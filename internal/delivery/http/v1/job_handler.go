package v1

import (
	"net/http"

	"mancarijo/internal/delivery/http/middleware"
	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"
	"mancarijo/internal/usecase"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public, seeker, provider *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	public.GET("/jobs", handler.List)
	public.GET("/jobs/:id", middleware.RequireSignedIn(), handler.GetDetails)

	seeker.GET("/applications", handler.Applied)

	providerJobs := provider.Group("/jobs")
	{
		providerJobs.GET("", handler.Posted)
		providerJobs.POST("", handler.Create)
		providerJobs.PUT("/:id/status", handler.ToggleStatus)
		providerJobs.GET("/:id/export", handler.Export)
	}
}

// List godoc
// @Summary      Landing page jobs
// @Description  Builds the landing page: open jobs, newest, recommendations for a seeker, search results and testimonies.
// @Tags         job
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, err := h.jobUC.JobList(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", page)
}

// GetDetails godoc
// @Summary      Job details
// @Description  Serves the seeker or the provider variant of the job page depending on who asks.
// @Tags         job
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	session := middleware.CurrentSession(c)
	id := c.Param("id")

	var (
		detail any
		err    error
	)
	if session.IsProvider() {
		detail, err = h.jobUC.ProviderJobDetail(c.Request.Context(), session, id)
	} else {
		detail, err = h.jobUC.SeekerJobDetail(c.Request.Context(), session, id)
	}
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", detail)
}

// Applied godoc
// @Summary      Seeker's applications
// @Tags         job
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /applications [get]
func (h *JobHandler) Applied(c *gin.Context) {
	page, err := h.jobUC.AppliedJobs(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", page)
}

// Posted godoc
// @Summary      Provider's posted jobs
// @Tags         job
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /provider/jobs [get]
func (h *JobHandler) Posted(c *gin.Context) {
	jobs, err := h.jobUC.PostedJobs(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// Create godoc
// @Summary      Post a new job
// @Tags         job
// @Accept       json
// @Produce      json
// @Param        req  body  domain.PostJobInput  true  "Job"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /provider/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.PostJobInput
	if !bind(c, &req) {
		return
	}

	job, err := h.jobUC.PostJob(c.Request.Context(), middleware.CurrentSession(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// ToggleStatus godoc
// @Summary      Open or close a job
// @Tags         job
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /provider/jobs/{id}/status [put]
func (h *JobHandler) ToggleStatus(c *gin.Context) {
	job, err := h.jobUC.ToggleStatus(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job status updated", job)
}

// Export godoc
// @Summary      Export applicants as a workbook
// @Tags         job
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /provider/jobs/{id}/export [get]
func (h *JobHandler) Export(c *gin.Context) {
	id := c.Param("id")
	data, err := h.jobUC.ExportApplicants(c.Request.Context(), middleware.CurrentSession(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+usecase.ExportFilename(id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
