package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// mapServiceError 业务哨兵错误到状态码的统一映射；
// 未识别的错误一律 500，原始错误只进日志不出响应
func mapServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyContent):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrFollowSelf):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrTokenInvalid):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
