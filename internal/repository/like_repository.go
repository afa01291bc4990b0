package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/microblog/internal/model"
)

type LikeRepository interface {
	// InsertIgnore 借助 (user_id, post_id) 唯一键幂等插入；返回实际插入行数
	InsertIgnore(tx *gorm.DB, userID, postID uint) (int64, error)
	// DeletePair 删除点赞；返回实际删除行数
	DeletePair(tx *gorm.DB, userID, postID uint) (int64, error)
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	// LikedSet 批量判断 viewer 对一组帖子的点赞状态
	LikedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) InsertIgnore(tx *gorm.DB, userID, postID uint) (int64, error) {
	l := &model.Like{UserID: userID, PostID: postID}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(l)
	return res.RowsAffected, res.Error
}

func (r *likeRepository) DeletePair(tx *gorm.DB, userID, postID uint) (int64, error) {
	res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.Like{})
	return res.RowsAffected, res.Error
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *likeRepository) LikedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).Where("post_id = ?", postID).Count(&cnt).Error
	return cnt, err
}
