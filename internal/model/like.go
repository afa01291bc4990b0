package model

import "time"

// Like 点赞关系
// 复合唯一键，同一用户对同一帖子至多点赞一次
// idx_like_pair = (user_id, post_id)
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_like_pair,unique" json:"user_id"`
	PostID    uint      `gorm:"not null;index:idx_like_pair,unique;index:idx_like_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }
