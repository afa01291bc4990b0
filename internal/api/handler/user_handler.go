package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

type updateProfileRequest struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Email       *string `json:"email" binding:"omitempty,email"`
}

// ListUsers 用户列表
// @Summary 活跃用户分页列表
// @Tags 用户
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, pg, err := h.userSvc.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if len(users) == 0 {
		response.NotFound(c, "no users found")
		return
	}
	response.Success(c, gin.H{"users": users, "pagination": pg})
}

// GetProfile 用户公开资料
// @Summary 用户公开资料
// @Tags 用户
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	profile, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if profile == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, profile)
}

// UpdateProfile 更新当前用户资料
// @Summary 更新资料（仅本人）
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body updateProfileRequest true "资料补丁"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/users/update [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := middleware.CurrentUserID(c)

	profile, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, service.ProfilePatch{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Email:       req.Email,
	})
	if err != nil {
		mapServiceError(c, err)
		return
	}
	if profile == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, profile)
}

// DeleteAccount 注销当前用户
// @Summary 注销账号（级联删除所有归属数据，清除会话 cookie）
// @Tags 用户
// @Success 200 {object} response.Response
// @Router /api/v1/users/delete [delete]
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	deleted, err := h.userSvc.DeleteAccount(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "user not found")
		return
	}
	clearRefreshCookie(c)
	response.SuccessMsg(c, "account deleted", nil)
}
