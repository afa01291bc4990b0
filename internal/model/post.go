package model

import "time"

// Post 内容主体；ParentPostID 非空表示回复
// like/comment/repost 计数为对应关系表的冗余缓存，随变更事务同步维护
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_post_user" json:"user_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ParentPostID *uint     `gorm:"index:idx_post_parent" json:"parent_post_id,omitempty"`
	IsDeleted    bool      `gorm:"not null;default:false;index:idx_post_deleted" json:"is_deleted"`
	IsEdited     bool      `gorm:"not null;default:false" json:"is_edited"`
	IsPinned     bool      `gorm:"not null;default:false" json:"is_pinned"`
	LikeCount    int64     `gorm:"not null;default:0" json:"like_count"`
	CommentCount int64     `gorm:"not null;default:0" json:"comment_count"`
	RepostCount  int64     `gorm:"not null;default:0" json:"repost_count"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
