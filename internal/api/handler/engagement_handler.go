package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/middleware"
	"github.com/d60-Lab/microblog/pkg/response"
)

type quotePostRequest struct {
	QuoteContent string `json:"quote_content" binding:"required"`
}

type addCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ToggleLike 点赞/取消点赞
// @Summary 点赞开关（有则取消，无则点赞）
// @Tags 互动
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	userID := middleware.CurrentUserID(c)

	liked, found, err := h.engagementSvc.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFound(c, "post not found")
		return
	}
	msg := "post liked"
	if !liked {
		msg = "post unliked"
	}
	response.SuccessMsg(c, msg, gin.H{"liked": liked})
}

// ToggleRepost 转发/取消转发
// @Summary 普通转发开关（引用转发不受影响）
// @Tags 互动
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/repost [post]
func (h *Handler) ToggleRepost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	userID := middleware.CurrentUserID(c)

	reposted, found, err := h.engagementSvc.ToggleRepost(c.Request.Context(), userID, postID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFound(c, "post not found")
		return
	}
	msg := "post reposted"
	if !reposted {
		msg = "repost removed"
	}
	response.SuccessMsg(c, msg, gin.H{"reposted": reposted})
}

// QuotePost 引用转发
// @Summary 引用转发（总是新增，可多次引用同一帖）
// @Tags 互动
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param request body quotePostRequest true "引用评论"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/posts/{id}/quote [post]
func (h *Handler) QuotePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req quotePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := middleware.CurrentUserID(c)

	quote, err := h.engagementSvc.QuotePost(c.Request.Context(), userID, postID, req.QuoteContent)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	if quote == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.Created(c, quote)
}

// ListComments 帖子评论
// @Summary 帖子评论（楼层序）
// @Tags 互动
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}

	comments, err := h.engagementSvc.ListComments(c.Request.Context(), postID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if len(comments) == 0 {
		response.SuccessMsg(c, "no comments yet", gin.H{"comments": []interface{}{}})
		return
	}
	response.Success(c, gin.H{"comments": comments})
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags 互动
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param request body addCommentRequest true "评论内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := middleware.CurrentUserID(c)

	comment, err := h.engagementSvc.AddComment(c.Request.Context(), userID, postID, req.Content)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	if comment == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.Created(c, comment)
}
