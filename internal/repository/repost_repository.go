package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/microblog/internal/model"
)

type RepostRepository interface {
	// InsertPlain 借助部分唯一索引幂等插入普通转发；返回实际插入行数
	InsertPlain(tx *gorm.DB, userID, postID uint) (int64, error)
	// DeletePlain 删除普通转发；不触碰引用转发；返回实际删除行数
	DeletePlain(tx *gorm.DB, userID, postID uint) (int64, error)
	// InsertQuote 引用转发不去重，同一用户可多次引用同一帖子
	InsertQuote(tx *gorm.DB, rp *model.Repost) error
	ExistsPlain(ctx context.Context, userID, postID uint) (bool, error)
	// RepostedSet 批量判断 viewer 对一组帖子的普通转发状态
	RepostedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
}

type repostRepository struct {
	db *gorm.DB
}

func NewRepostRepository(db *gorm.DB) RepostRepository { return &repostRepository{db: db} }

func (r *repostRepository) InsertPlain(tx *gorm.DB, userID, postID uint) (int64, error) {
	rp := &model.Repost{UserID: userID, PostID: postID, IsQuotePost: false}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rp)
	return res.RowsAffected, res.Error
}

func (r *repostRepository) DeletePlain(tx *gorm.DB, userID, postID uint) (int64, error) {
	res := tx.Where("user_id = ? AND post_id = ? AND is_quote_post = ?", userID, postID, false).
		Delete(&model.Repost{})
	return res.RowsAffected, res.Error
}

func (r *repostRepository) InsertQuote(tx *gorm.DB, rp *model.Repost) error {
	rp.IsQuotePost = true
	return tx.Create(rp).Error
}

func (r *repostRepository) ExistsPlain(ctx context.Context, userID, postID uint) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Repost{}).
		Where("user_id = ? AND post_id = ? AND is_quote_post = ?", userID, postID, false).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *repostRepository) RepostedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&model.Repost{}).
		Where("user_id = ? AND post_id IN ? AND is_quote_post = ?", userID, postIDs, false).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *repostRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Repost{}).Where("post_id = ?", postID).Count(&cnt).Error
	return cnt, err
}
