package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/repository"
)

// ProfilePatch 资料更新入参；nil 字段表示不改
type ProfilePatch struct {
	Username    *string
	DisplayName *string
	Bio         *string
	Email       *string
}

// UserService 用户资料
type UserService interface {
	// GetProfile 不存在时返回 (nil, nil)
	GetProfile(ctx context.Context, userID uint) (*PublicProfile, error)
	ListUsers(ctx context.Context, page, limit int) ([]PublicProfile, Pagination, error)
	// UpdateProfile 用户名/邮箱查重，冲突返回 ErrConflict；
	// 用户不存在返回 (nil, nil)
	UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*PublicProfile, error)
	// DeleteAccount 级联清理所有归属行与双向关注关系；返回是否删到了用户
	DeleteAccount(ctx context.Context, userID uint) (bool, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*PublicProfile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	p := NewPublicProfile(u)
	return &p, nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]PublicProfile, Pagination, error) {
	page, limit = normalizePage(page, limit)
	users, total, err := s.users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	res := make([]PublicProfile, len(users))
	for i, u := range users {
		res[i] = NewPublicProfile(u)
	}
	return res, NewPagination(page, limit, total), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*PublicProfile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	username, email := u.Username, u.Email
	if patch.Username != nil {
		username = strings.TrimSpace(*patch.Username)
		if username == "" {
			return nil, ErrEmptyContent
		}
		fields["username"] = username
	}
	if patch.Email != nil {
		email = strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, ErrEmptyContent
		}
		fields["email"] = email
	}
	if patch.DisplayName != nil {
		fields["display_name"] = strings.TrimSpace(*patch.DisplayName)
	}
	if patch.Bio != nil {
		fields["bio"] = *patch.Bio
	}
	if len(fields) == 0 {
		p := NewPublicProfile(u)
		return &p, nil
	}

	if patch.Username != nil || patch.Email != nil {
		taken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrConflict
		}
	}

	// 预查重之外再靠唯一索引兜底，并发改名不会漏网
	if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	updated, err := s.users.GetByID(ctx, userID)
	if err != nil || updated == nil {
		return nil, err
	}
	p := NewPublicProfile(updated)
	return &p, nil
}

func (s *userService) DeleteAccount(ctx context.Context, userID uint) (bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	if err := s.users.DeleteCascade(ctx, userID); err != nil {
		return false, err
	}
	return true, nil
}
