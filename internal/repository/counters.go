package repository

import (
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

// 冗余计数的唯一变更入口。所有点赞/转发/评论/关注计数都经由这里，
// 且必须在调用方的事务内执行，保证计数与关系行同生共死。

// AddPostCounter 调整帖子计数列（like_count / comment_count / repost_count）
func AddPostCounter(tx *gorm.DB, postID uint, column string, delta int) error {
	return tx.Model(&model.Post{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// AddUserCounter 调整用户计数列（follower_count / following_count）
func AddUserCounter(tx *gorm.DB, userID uint, column string, delta int) error {
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}
