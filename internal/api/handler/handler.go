package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/service"
)

// Handler 聚合各业务服务的 HTTP 入口
type Handler struct {
	authSvc       service.AuthService
	userSvc       service.UserService
	relationSvc   service.RelationshipService
	postSvc       service.PostService
	engagementSvc service.EngagementService
}

func NewHandler(
	authSvc service.AuthService,
	userSvc service.UserService,
	relationSvc service.RelationshipService,
	postSvc service.PostService,
	engagementSvc service.EngagementService,
) *Handler {
	return &Handler{
		authSvc:       authSvc,
		userSvc:       userSvc,
		relationSvc:   relationSvc,
		postSvc:       postSvc,
		engagementSvc: engagementSvc,
	}
}

// pathID 解析路径中的数字 id；非法时返回 (0, false)
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
