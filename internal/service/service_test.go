package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

type testEnv struct {
	db         *gorm.DB
	users      repository.UserRepository
	posts      repository.PostRepository
	comments   repository.CommentRepository
	likes      repository.LikeRepository
	reposts    repository.RepostRepository
	follows    repository.FollowRepository
	tokens     repository.RefreshTokenRepository
	engagement EngagementService
	relations  RelationshipService
	postSvc    PostService
	userSvc    UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{},
		&model.Like{}, &model.Repost{}, &model.Follower{}, &model.RefreshToken{},
	))

	env := &testEnv{db: db}
	env.users = repository.NewUserRepository(db)
	env.posts = repository.NewPostRepository(db)
	env.comments = repository.NewCommentRepository(db)
	env.likes = repository.NewLikeRepository(db)
	env.reposts = repository.NewRepostRepository(db)
	env.follows = repository.NewFollowRepository(db)
	env.tokens = repository.NewRefreshTokenRepository(db)
	env.engagement = NewEngagementService(db, env.posts, env.likes, env.reposts, env.comments, env.users)
	env.relations = NewRelationshipService(db, env.follows, env.users)
	env.postSvc = NewPostService(db, env.posts, env.likes, env.reposts, env.comments, env.users)
	env.userSvc = NewUserService(env.users)
	return env
}

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{
		Username:    name,
		DisplayName: "User " + name,
		Email:       name + "@example.com",
		Password:    "x",
		IsActive:    true,
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) createPost(t *testing.T, userID uint, content string) *model.Post {
	t.Helper()
	p, err := e.postSvc.CreatePost(context.Background(), userID, content, nil)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (e *testEnv) reloadUser(t *testing.T, id uint) *model.User {
	t.Helper()
	var u model.User
	require.NoError(t, e.db.First(&u, id).Error)
	return &u
}

func (e *testEnv) reloadPost(t *testing.T, id uint) *model.Post {
	t.Helper()
	var p model.Post
	require.NoError(t, e.db.First(&p, id).Error)
	return &p
}

// 直接数行，校验冗余计数不靠缓存字段自证
func (e *testEnv) countRows(t *testing.T, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, e.db.Model(m).Where(query, args...).Count(&cnt).Error)
	return cnt
}

func (e *testEnv) seedUsers(t *testing.T, n int) []*model.User {
	t.Helper()
	out := make([]*model.User, n)
	for i := range out {
		out[i] = e.createUser(t, fmt.Sprintf("u%03d", i))
	}
	return out
}
