package service

import (
	"time"

	"github.com/d60-Lab/microblog/internal/model"
)

// 各端点的显式结果类型，由纯映射函数构造

// PublicProfile 用户公开资料（不含 email/密码等私有字段）
type PublicProfile struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Bio            string    `json:"bio"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	IsVerified     bool      `json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewPublicProfile(u *model.User) PublicProfile {
	return PublicProfile{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Bio:            u.Bio,
		FollowerCount:  u.FollowerCount,
		FollowingCount: u.FollowingCount,
		IsVerified:     u.IsVerified,
		CreatedAt:      u.CreatedAt,
	}
}

// PostView 时间线/详情里的帖子视图，含 viewer 相关的计算字段
type PostView struct {
	ID           uint           `json:"id"`
	Author       *PublicProfile `json:"author,omitempty"`
	Content      string         `json:"content"`
	ParentPostID *uint          `json:"parent_post_id,omitempty"`
	IsEdited     bool           `json:"is_edited"`
	IsPinned     bool           `json:"is_pinned"`
	LikeCount    int64          `json:"like_count"`
	CommentCount int64          `json:"comment_count"`
	RepostCount  int64          `json:"repost_count"`
	IsLiked      bool           `json:"is_liked"`
	IsReposted   bool           `json:"is_reposted"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func NewPostView(p *model.Post, author *model.User, isLiked, isReposted bool) PostView {
	v := PostView{
		ID:           p.ID,
		Content:      p.Content,
		ParentPostID: p.ParentPostID,
		IsEdited:     p.IsEdited,
		IsPinned:     p.IsPinned,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		RepostCount:  p.RepostCount,
		IsLiked:      isLiked,
		IsReposted:   isReposted,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if author != nil {
		a := NewPublicProfile(author)
		v.Author = &a
	}
	return v
}

// CommentView 评论视图，带作者公开资料
type CommentView struct {
	ID        uint           `json:"id"`
	PostID    uint           `json:"post_id"`
	Author    *PublicProfile `json:"author,omitempty"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewCommentView(c *model.Comment, author *model.User) CommentView {
	v := CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if author != nil {
		a := NewPublicProfile(author)
		v.Author = &a
	}
	return v
}

// PostDetail 帖子详情：帖子 + 楼层序评论
type PostDetail struct {
	Post     PostView      `json:"post"`
	Comments []CommentView `json:"comments"`
}

// Pagination 列表响应的分页元数据
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int64 `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	return Pagination{CurrentPage: page, PageSize: pageSize, TotalItems: total, TotalPages: pages}
}
