package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/microblog/internal/model"
)

// FollowedUser 关注/粉丝列表项（公开资料 + 关注时间）
type FollowedUser struct {
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	IsVerified  bool      `json:"is_verified"`
	FollowedAt  time.Time `json:"followed_at"`
}

type FollowRepository interface {
	// InsertIgnore 借助复合唯一键幂等插入；返回实际插入行数（0 或 1）
	InsertIgnore(tx *gorm.DB, userID, followingID uint) (int64, error)
	// DeletePair 删除关注对；返回实际删除行数
	DeletePair(tx *gorm.DB, userID, followingID uint) (int64, error)
	CountPair(ctx context.Context, userID, followingID uint) (int64, error)
	// ListFollowers 查某用户的粉丝，按关注时间倒序，附带总数
	ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]FollowedUser, int64, error)
	// ListFollowing 查某用户关注的人，按关注时间倒序，附带总数
	ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]FollowedUser, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) InsertIgnore(tx *gorm.DB, userID, followingID uint) (int64, error) {
	f := &model.Follower{UserID: userID, FollowingID: followingID}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(f)
	return res.RowsAffected, res.Error
}

func (r *followRepository) DeletePair(tx *gorm.DB, userID, followingID uint) (int64, error) {
	res := tx.Where("user_id = ? AND following_id = ?", userID, followingID).Delete(&model.Follower{})
	return res.RowsAffected, res.Error
}

func (r *followRepository) CountPair(ctx context.Context, userID, followingID uint) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Count(&cnt).Error
	return cnt, err
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]FollowedUser, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Where("following_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var res []FollowedUser
	err := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Select("users.id AS user_id, users.username, users.display_name, users.bio, users.is_verified, followers.created_at AS followed_at").
		Joins("JOIN users ON users.id = followers.user_id").
		Where("followers.following_id = ?", userID).
		Order("followers.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&res).Error
	return res, total, err
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]FollowedUser, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var res []FollowedUser
	err := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Select("users.id AS user_id, users.username, users.display_name, users.bio, users.is_verified, followers.created_at AS followed_at").
		Joins("JOIN users ON users.id = followers.following_id").
		Where("followers.user_id = ?", userID).
		Order("followers.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&res).Error
	return res, total, err
}
