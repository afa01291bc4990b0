package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/middleware"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Follow 关注用户
// @Summary 关注用户（幂等）
// @Tags 关系链
// @Produce json
// @Param id path int true "被关注用户ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/users/{id}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	userID := middleware.CurrentUserID(c)

	if err := h.relationSvc.Follow(c.Request.Context(), userID, targetID); err != nil {
		mapServiceError(c, err)
		return
	}
	response.SuccessMsg(c, "followed", gin.H{"following": true})
}

// Unfollow 取消关注
// @Summary 取消关注（重复调用为 no-op）
// @Tags 关系链
// @Produce json
// @Param id path int true "被取关用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	userID := middleware.CurrentUserID(c)

	if err := h.relationSvc.Unfollow(c.Request.Context(), userID, targetID); err != nil {
		mapServiceError(c, err)
		return
	}
	response.SuccessMsg(c, "unfollowed", gin.H{"following": false})
}

// ListFollowers 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, pg, err := h.relationSvc.GetFollowers(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"followers": list, "pagination": pg})
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, pg, err := h.relationSvc.GetFollowing(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"following": list, "pagination": pg})
}

// SearchUsers 搜索用户
// @Summary 按用户名/昵称搜索活跃用户
// @Tags 关系链
// @Param q query string true "关键词"
// @Param limit query int false "数量" default(20)
// @Param offset query int false "偏移" default(0)
// @Success 200 {object} response.Response
// @Router /api/v1/users/search [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.relationSvc.SearchUsers(c.Request.Context(), q, limit, offset)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"users": users})
}
