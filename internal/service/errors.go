package service

import "errors"

// 业务哨兵错误；预期内的"不存在/无操作"用 nil/false 返回值表达，不走 error
var (
	ErrFollowSelf         = errors.New("cannot follow self")
	ErrEmptyContent       = errors.New("content cannot be empty")
	ErrConflict           = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("refresh token invalid or expired")
)
