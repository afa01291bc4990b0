package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/repository"
)

// RelationshipService 关系链服务：关注/取关与用户冗余计数同事务维护
type RelationshipService interface {
	// Follow 幂等：已关注时不报错也不重复加计数
	Follow(ctx context.Context, userID, followingID uint) error
	// Unfollow 只有真正删到行才减计数，重复取关不会把计数减成负数
	Unfollow(ctx context.Context, userID, followingID uint) error
	GetFollowers(ctx context.Context, userID uint, page, limit int) ([]repository.FollowedUser, Pagination, error)
	GetFollowing(ctx context.Context, userID uint, page, limit int) ([]repository.FollowedUser, Pagination, error)
	// SearchUsers 用户名/昵称子串匹配，大小写不敏感，仅活跃用户
	SearchUsers(ctx context.Context, query string, limit, offset int) ([]PublicProfile, error)
}

type relationshipService struct {
	db      *gorm.DB
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewRelationshipService(db *gorm.DB, follows repository.FollowRepository, users repository.UserRepository) RelationshipService {
	return &relationshipService{db: db, follows: follows, users: users}
}

func (s *relationshipService) Follow(ctx context.Context, userID, followingID uint) error {
	if userID == followingID {
		return ErrFollowSelf
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := s.follows.InsertIgnore(tx, userID, followingID)
		if err != nil {
			return err
		}
		if inserted == 0 {
			return nil
		}
		if err := repository.AddUserCounter(tx, userID, "following_count", 1); err != nil {
			return err
		}
		return repository.AddUserCounter(tx, followingID, "follower_count", 1)
	})
}

func (s *relationshipService) Unfollow(ctx context.Context, userID, followingID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted, err := s.follows.DeletePair(tx, userID, followingID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return nil
		}
		if err := repository.AddUserCounter(tx, userID, "following_count", -1); err != nil {
			return err
		}
		return repository.AddUserCounter(tx, followingID, "follower_count", -1)
	})
}

func (s *relationshipService) GetFollowers(ctx context.Context, userID uint, page, limit int) ([]repository.FollowedUser, Pagination, error) {
	page, limit = normalizePage(page, limit)
	list, total, err := s.follows.ListFollowers(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return list, NewPagination(page, limit, total), nil
}

func (s *relationshipService) GetFollowing(ctx context.Context, userID uint, page, limit int) ([]repository.FollowedUser, Pagination, error) {
	page, limit = normalizePage(page, limit)
	list, total, err := s.follows.ListFollowing(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return list, NewPagination(page, limit, total), nil
}

func (s *relationshipService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]PublicProfile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []PublicProfile{}, nil
	}
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.users.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	res := make([]PublicProfile, len(users))
	for i, u := range users {
		res[i] = NewPublicProfile(u)
	}
	return res, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}
