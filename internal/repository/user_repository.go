package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// GetByID 不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByIDs 批量取用户，按 ID 索引返回
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*model.User, error)
	// List 活跃用户分页，附带总数
	List(ctx context.Context, offset, limit int) ([]*model.User, int64, error)
	// Search 用户名或昵称的大小写不敏感子串匹配，仅限活跃用户
	Search(ctx context.Context, query string, limit, offset int) ([]*model.User, error)
	// ExistsByUsernameOrEmail 排除 excludeID 自身后查重
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID uint) (bool, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	// DeleteCascade 删除用户及其全部帖子/评论/点赞/转发/令牌，
	// 以及作为任一方的关注关系，单事务完成；
	// 删行前先把这些行对幸存用户/帖子的计数贡献冲回
	DeleteCascade(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*model.User, error) {
	out := make(map[uint]*model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []*model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*model.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_active = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []*model.User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) Search(ctx context.Context, query string, limit, offset int) ([]*model.User, error) {
	// LOWER + LIKE 在 sqlite 与 postgres 下行为一致
	pattern := "%" + strings.ToLower(query) + "%"
	var users []*model.User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("LOWER(username) LIKE ? OR LOWER(display_name) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID uint) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ? OR email = ?", username, email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// counterRef 分组求和的中间结果：ref_id 指向幸存行，cnt 是被删行数
type counterRef struct {
	RefID uint
	Cnt   int
}

// reconcileCounters 把即将删除的行对其他用户/帖子的计数贡献冲回。
// 必须与删行同事务执行，提交后幸存行的冗余计数才仍等于真实行数。
func reconcileCounters(tx *gorm.DB, id uint) error {
	// 此人关注的用户：follower_count 回退
	var followed []counterRef
	if err := tx.Model(&model.Follower{}).
		Select("following_id AS ref_id, COUNT(*) AS cnt").
		Where("user_id = ?", id).
		Group("following_id").
		Scan(&followed).Error; err != nil {
		return err
	}
	for _, rc := range followed {
		if err := AddUserCounter(tx, rc.RefID, "follower_count", -rc.Cnt); err != nil {
			return err
		}
	}

	// 关注此人的用户：following_count 回退
	var followers []counterRef
	if err := tx.Model(&model.Follower{}).
		Select("user_id AS ref_id, COUNT(*) AS cnt").
		Where("following_id = ?", id).
		Group("user_id").
		Scan(&followers).Error; err != nil {
		return err
	}
	for _, rc := range followers {
		if err := AddUserCounter(tx, rc.RefID, "following_count", -rc.Cnt); err != nil {
			return err
		}
	}

	// 此人点过赞的帖子：like_count 回退
	// （此人自己的帖子也会被回退，但随后整行删除，无副作用）
	var liked []counterRef
	if err := tx.Model(&model.Like{}).
		Select("post_id AS ref_id, COUNT(*) AS cnt").
		Where("user_id = ?", id).
		Group("post_id").
		Scan(&liked).Error; err != nil {
		return err
	}
	for _, rc := range liked {
		if err := AddPostCounter(tx, rc.RefID, "like_count", -rc.Cnt); err != nil {
			return err
		}
	}

	// 此人评论过的帖子：comment_count 回退
	var commented []counterRef
	if err := tx.Model(&model.Comment{}).
		Select("post_id AS ref_id, COUNT(*) AS cnt").
		Where("user_id = ?", id).
		Group("post_id").
		Scan(&commented).Error; err != nil {
		return err
	}
	for _, rc := range commented {
		if err := AddPostCounter(tx, rc.RefID, "comment_count", -rc.Cnt); err != nil {
			return err
		}
	}

	// 此人转发过的帖子：repost_count 回退（普通与引用转发都计入）
	var reposted []counterRef
	if err := tx.Model(&model.Repost{}).
		Select("post_id AS ref_id, COUNT(*) AS cnt").
		Where("user_id = ?", id).
		Group("post_id").
		Scan(&reposted).Error; err != nil {
		return err
	}
	for _, rc := range reposted {
		if err := AddPostCounter(tx, rc.RefID, "repost_count", -rc.Cnt); err != nil {
			return err
		}
	}

	// 此人的回帖：父帖 comment_count 回退
	var replies []counterRef
	if err := tx.Model(&model.Post{}).
		Select("parent_post_id AS ref_id, COUNT(*) AS cnt").
		Where("user_id = ? AND parent_post_id IS NOT NULL", id).
		Group("parent_post_id").
		Scan(&replies).Error; err != nil {
		return err
	}
	for _, rc := range replies {
		if err := AddPostCounter(tx, rc.RefID, "comment_count", -rc.Cnt); err != nil {
			return err
		}
	}
	return nil
}

func (r *userRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := reconcileCounters(tx, id); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Repost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR following_id = ?", id, id).Delete(&model.Follower{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
