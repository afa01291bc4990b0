package model

import "time"

// Follower 关注关系（UserID 关注 FollowingID）
// 复合唯一键，避免重复关注；禁止自关注（服务层校验）
// idx_follow_pair = (user_id, following_id)
type Follower struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_follow_pair,unique;index:idx_follow_user" json:"user_id"`
	FollowingID uint      `gorm:"not null;index:idx_follow_pair,unique;index:idx_follow_following" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follower) TableName() string { return "followers" }
