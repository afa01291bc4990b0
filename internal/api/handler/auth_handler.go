package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
)

const refreshCookie = "refresh_token"

type registerRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=32"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register 注册
// @Summary 注册新用户
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.authSvc.Register(c.Request.Context(), req.Username, req.DisplayName, req.Email, req.Password)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	response.Created(c, profile)
}

// Login 登录
// @Summary 登录，签发访问令牌与刷新令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "凭据"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pair, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	setRefreshCookie(c, pair.RefreshToken)
	response.Success(c, pair)
}

// Refresh 轮换刷新令牌
// @Summary 用刷新令牌换新令牌对（旧令牌作废）
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body refreshRequest false "刷新令牌（缺省时取 cookie）"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	token := refreshTokenFrom(c)
	if token == "" {
		response.BadRequest(c, "refresh token required")
		return
	}

	pair, err := h.authSvc.Refresh(c.Request.Context(), token)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	setRefreshCookie(c, pair.RefreshToken)
	response.Success(c, pair)
}

// Logout 登出
// @Summary 登出，撤销刷新令牌并清除 cookie
// @Tags 认证
// @Success 200 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if token := refreshTokenFrom(c); token != "" {
		if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
			response.InternalError(c, err)
			return
		}
	}
	clearRefreshCookie(c)
	response.SuccessMsg(c, "logged out", nil)
}

func refreshTokenFrom(c *gin.Context) string {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if cookie, err := c.Cookie(refreshCookie); err == nil {
		return cookie
	}
	return ""
}

func setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, token, 7*24*3600, "/", "", false, true)
}

func clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshCookie, "", -1, "/", "", false, true)
}
