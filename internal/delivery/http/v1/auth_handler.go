package v1

import (
	"net/http"

	"mancarijo/internal/delivery/http/middleware"
	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authUC   domain.AuthUsecase
	sessions domain.SessionUsecase
	cookie   middleware.SessionConfig
}

func NewAuthHandler(public *gin.RouterGroup, limited gin.HandlerFunc, authUC domain.AuthUsecase, sessions domain.SessionUsecase, cookie middleware.SessionConfig) {
	handler := &AuthHandler{
		authUC:   authUC,
		sessions: sessions,
		cookie:   cookie,
	}

	auth := public.Group("/auth")
	{
		auth.POST("/sign-in", limited, handler.SignIn)
		auth.POST("/sign-up", handler.SignUp)
		auth.POST("/sign-out", handler.SignOut)
	}

	forgot := auth.Group("/forgot-password", limited)
	{
		forgot.POST("/lookup", handler.LookupUsername)
		forgot.POST("/answer", handler.AnswerSecurityQuestion)
		forgot.POST("/reset", handler.ResetPassword)
	}
}

// SignIn godoc
// @Summary      Sign in
// @Description  Checks the credentials with the remote API and starts a session under a fresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        req  body  domain.SignInRequest  true  "Credentials and role"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req domain.SignInRequest
	if !bind(c, &req) {
		return
	}

	previous := middleware.CurrentSession(c).Token
	token := uuid.NewString()

	session, err := h.authUC.SignIn(c.Request.Context(), token, req)
	if err != nil {
		c.Error(err)
		return
	}
	if previous != "" {
		h.sessions.SignOut(c.Request.Context(), previous)
	}

	middleware.SetSessionCookie(c, h.cookie, token, req.RememberMe)
	response.Success(c, http.StatusOK, "Signed in", session)
}

// SignUp godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        req  body  domain.Registration  true  "Registration form"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/sign-up [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req domain.Registration
	if !bind(c, &req) {
		return
	}

	if err := h.authUC.SignUp(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Account created", nil)
}

// SignOut godoc
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/sign-out [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	h.sessions.SignOut(c.Request.Context(), middleware.CurrentSession(c).Token)
	c.SetCookie(h.cookie.CookieName, "", -1, "/", "", h.cookie.Secure, true)
	response.Success(c, http.StatusOK, "Signed out", nil)
}

type LookupRequest struct {
	Username string      `json:"username" binding:"required"`
	Role     domain.Role `json:"role" binding:"required,role"`
}

// LookupUsername godoc
// @Summary      Find the security question for a username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        req  body  LookupRequest  true  "Username"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/forgot-password/lookup [post]
func (h *AuthHandler) LookupUsername(c *gin.Context) {
	var req LookupRequest
	if !bind(c, &req) {
		return
	}

	lookup, err := h.authUC.LookupUsername(c.Request.Context(), req.Username, req.Role)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Username found", lookup)
}

// AnswerSecurityQuestion godoc
// @Summary      Check a security answer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        req  body  domain.SecurityAnswer  true  "Answer"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/forgot-password/answer [post]
func (h *AuthHandler) AnswerSecurityQuestion(c *gin.Context) {
	var req domain.SecurityAnswer
	if !bind(c, &req) {
		return
	}

	if err := h.authUC.AnswerSecurityQuestion(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Answer accepted", nil)
}

// ResetPassword godoc
// @Summary      Set a new password after a correct answer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        req  body  domain.PasswordReset  true  "New password"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/forgot-password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req domain.PasswordReset
	if !bind(c, &req) {
		return
	}

	if err := h.authUC.ResetPassword(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password changed", nil)
}
