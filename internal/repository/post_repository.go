package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

type PostRepository interface {
	Create(tx *gorm.DB, post *model.Post) error
	// GetActive 取未软删帖子；不存在或已删除返回 (nil, nil)
	GetActive(ctx context.Context, id uint) (*model.Post, error)
	// GetActiveForUpdate 事务内取未软删帖子，供计数联动前校验父帖
	GetActiveForUpdate(tx *gorm.DB, id uint) (*model.Post, error)
	// ListTimeline 顶层（无父帖）、未软删，按创建时间倒序
	ListTimeline(ctx context.Context, offset, limit int) ([]*model.Post, error)
	// UpdateContent 仅作者可改；返回受影响行数（0 表示不存在/非作者/已删除）
	UpdateContent(ctx context.Context, userID, postID uint, content string) (int64, error)
	// SoftDelete 仅作者可删；返回受影响行数
	SoftDelete(ctx context.Context, userID, postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(tx *gorm.DB, post *model.Post) error {
	return tx.Create(post).Error
}

func (r *postRepository) GetActive(ctx context.Context, id uint) (*model.Post, error) {
	return getActivePost(r.db.WithContext(ctx), id)
}

func (r *postRepository) GetActiveForUpdate(tx *gorm.DB, id uint) (*model.Post, error) {
	return getActivePost(tx, id)
}

func getActivePost(db *gorm.DB, id uint) (*model.Post, error) {
	var p model.Post
	err := db.Where("id = ? AND is_deleted = ?", id, false).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) ListTimeline(ctx context.Context, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("parent_post_id IS NULL AND is_deleted = ?", false).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *postRepository) UpdateContent(ctx context.Context, userID, postID uint, content string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", postID, userID, false).
		Updates(map[string]interface{}{
			"content":    content,
			"is_edited":  true,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *postRepository) SoftDelete(ctx context.Context, userID, postID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", postID, userID, false).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}
