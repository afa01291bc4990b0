package model

import "time"

// Comment 评论，属于且仅属于一个 Post
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:idx_comment_post" json:"post_id"`
	UserID    uint      `gorm:"not null;index:idx_comment_user" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
