package v1

import (
	"errors"
	"io"
	"net/http"

	"mancarijo/internal/delivery/http/middleware"
	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// MaxPictureSize bounds a profile picture upload before decoding.
const MaxPictureSize = 5 << 20

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(signedIn *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	signedIn.GET("/profile/:id", handler.Get)
	signedIn.GET("/me/profile", handler.Mine)
	signedIn.PUT("/me/profile", handler.Update)
}

// Get godoc
// @Summary      Public profile
// @Tags         profile
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// Mine godoc
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /me/profile [get]
func (h *ProfileHandler) Mine(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c.Request.Context(), middleware.CurrentSession(c).UserID())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// Update godoc
// @Summary      Edit own profile
// @Description  Accepts JSON, or a multipart form when a new picture is sent in the profilePicture field.
// @Tags         profile
// @Accept       json,mpfd
// @Produce      json
// @Param        req  body  domain.ProfileUpdate  true  "Profile fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /me/profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req domain.ProfileUpdate
	if !bind(c, &req) {
		return
	}

	picture, err := readPicture(c)
	if err != nil {
		c.Error(err)
		return
	}
	req.ProfilePicture = picture

	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), middleware.CurrentSession(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}

func readPicture(c *gin.Context) ([]byte, error) {
	file, err := c.FormFile("profilePicture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperror.BadRequest("Invalid profile picture upload")
	}
	if file.Size > MaxPictureSize {
		return nil, apperror.BadRequest("Profile picture must be at most 5 MB")
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxPictureSize+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return data, nil
}
