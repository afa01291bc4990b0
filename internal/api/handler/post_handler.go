package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/middleware"
	"github.com/d60-Lab/microblog/pkg/response"
)

type createPostRequest struct {
	Content      string `json:"content" binding:"required"`
	ParentPostID *uint  `json:"parent_post_id"`
}

type updatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreatePost 发帖；parent_post_id 非空时为回复
// @Summary 发帖/回帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body createPostRequest true "帖子内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := middleware.CurrentUserID(c)

	post, err := h.postSvc.CreatePost(c.Request.Context(), userID, req.Content, req.ParentPostID)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	if post == nil {
		// 回复的父帖不存在或已删除
		response.NotFound(c, "parent post not found")
		return
	}
	response.Created(c, post)
}

// GetTimeline 时间线
// @Summary 时间线（顶层帖子，时间倒序）
// @Tags 帖子
// @Param limit query int false "数量" default(20)
// @Param offset query int false "偏移" default(0)
// @Success 200 {object} response.Response
// @Router /api/v1/posts [get]
func (h *Handler) GetTimeline(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	userID := middleware.CurrentUserID(c)

	posts, err := h.postSvc.GetTimeline(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// GetPostDetail 帖子详情
// @Summary 帖子详情（含楼层序评论）
// @Tags 帖子
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPostDetail(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	userID := middleware.CurrentUserID(c)

	detail, err := h.postSvc.GetPostDetail(c.Request.Context(), postID, userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if detail == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.Success(c, detail)
}

// UpdatePost 编辑帖子
// @Summary 编辑帖子（仅作者）
// @Tags 帖子
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param request body updatePostRequest true "新内容"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [patch]
func (h *Handler) UpdatePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := middleware.CurrentUserID(c)

	post, err := h.postSvc.UpdatePost(c.Request.Context(), userID, postID, req.Content)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	if post == nil {
		// 不存在与无权限刻意不区分
		response.NotFound(c, "post not found")
		return
	}
	response.Success(c, post)
}

// DeletePost 删除帖子（软删）
// @Summary 删除帖子（仅作者，软删）
// @Tags 帖子
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	userID := middleware.CurrentUserID(c)

	deleted, err := h.postSvc.DeletePost(c.Request.Context(), userID, postID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "post not found")
		return
	}
	response.SuccessMsg(c, "post deleted", nil)
}
