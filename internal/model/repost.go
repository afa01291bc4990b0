package model

import "time"

// Repost 转发；IsQuotePost 为 true 时携带 QuoteContent（引用转发）
// 部分唯一索引只约束普通转发：同一用户对同一帖子至多一条普通转发；
// 引用转发不在索引范围内，可多次引用同一帖子
// idx_repost_plain = (user_id, post_id) WHERE is_quote_post = false
type Repost struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_repost_plain,unique,where:is_quote_post = false" json:"user_id"`
	PostID       uint      `gorm:"not null;index:idx_repost_plain,unique,where:is_quote_post = false;index:idx_repost_post" json:"post_id"`
	IsQuotePost  bool      `gorm:"not null;default:false" json:"is_quote_post"`
	QuoteContent *string   `gorm:"type:text" json:"quote_content,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Repost) TableName() string { return "reposts" }
