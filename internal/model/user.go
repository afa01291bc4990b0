package model

import "time"

// User 用户主体；Follower/Following 计数为 followers 表基数的冗余缓存
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"username"`
	DisplayName    string    `gorm:"type:varchar(64)" json:"display_name"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Email          string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"type:varchar(128);not null" json:"-"`
	FollowerCount  int64     `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount int64     `gorm:"not null;default:0" json:"following_count"`
	IsVerified     bool      `gorm:"not null;default:false" json:"is_verified"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
