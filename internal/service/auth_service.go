package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// TokenPair 访问令牌 + 刷新令牌
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthService 注册/登录/令牌轮换；下游服务只消费可信的数字 user id
type AuthService interface {
	// Register 用户名/邮箱重复返回 ErrConflict
	Register(ctx context.Context, username, displayName, email, password string) (*PublicProfile, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	// Refresh 旧令牌作废并签发新对（轮换）；无效令牌返回 ErrTokenInvalid
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout 撤销刷新令牌；对已撤销令牌重复调用是 no-op
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users      repository.UserRepository
	tokens     repository.RefreshTokenRepository
	jwtSecret  []byte
	jwtExpiry  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository, jwtSecret string, jwtExpiry, refreshTTL time.Duration) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		jwtSecret:  []byte(jwtSecret),
		jwtExpiry:  jwtExpiry,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) Register(ctx context.Context, username, displayName, email, password string) (*PublicProfile, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrEmptyContent
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:    username,
		DisplayName: strings.TrimSpace(displayName),
		Email:       email,
		Password:    string(hash),
		IsActive:    true,
	}
	// 查重靠唯一索引兜底，并发注册不会漏网
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	p := NewPublicProfile(u)
	return &p, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, u.ID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	rt, err := s.tokens.GetValid(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, ErrTokenInvalid
	}
	if _, err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issue(ctx, rt.UserID)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	_, err := s.tokens.Revoke(ctx, refreshToken)
	return err
}

func (s *authService) issue(ctx context.Context, userID uint) (*TokenPair, error) {
	exp := time.Now().Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	refresh := &model.RefreshToken{
		UserID:    userID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.tokens.Create(ctx, refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh.Token, ExpiresAt: exp}, nil
}
