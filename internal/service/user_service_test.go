package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/microblog/internal/model"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	env.createUser(t, "bob")

	got, err := env.userSvc.UpdateProfile(ctx, a.ID, ProfilePatch{
		DisplayName: strPtr("Alice A."),
		Bio:         strPtr("hello world"),
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice A.", got.DisplayName)
	assert.Equal(t, "hello world", got.Bio)

	// 占用他人用户名冲突
	_, err = env.userSvc.UpdateProfile(ctx, a.ID, ProfilePatch{Username: strPtr("bob")})
	assert.ErrorIs(t, err, ErrConflict)

	// 改回自己的用户名不算冲突
	got, err = env.userSvc.UpdateProfile(ctx, a.ID, ProfilePatch{Username: strPtr("alice")})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	// 不存在的用户
	missing, err := env.userSvc.UpdateProfile(ctx, 9999, ProfilePatch{Bio: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := env.seedUsers(t, 5)
	require.NoError(t, env.db.Model(&model.User{}).Where("id = ?", users[0].ID).
		Update("is_active", false).Error)

	list, pg, err := env.userSvc.ListUsers(ctx, 1, 3)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, int64(4), pg.TotalItems)
	assert.Equal(t, int64(2), pg.TotalPages)
}

func TestDeleteAccountCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	b := env.createUser(t, "bob")

	post := env.createPost(t, a.ID, "hello")
	otherPost := env.createPost(t, b.ID, "hi")
	_, err := env.engagement.AddComment(ctx, a.ID, otherPost.ID, "nice")
	require.NoError(t, err)
	_, _, err = env.engagement.ToggleLike(ctx, a.ID, otherPost.ID)
	require.NoError(t, err)
	_, _, err = env.engagement.ToggleRepost(ctx, a.ID, otherPost.ID)
	require.NoError(t, err)
	reply, err := env.postSvc.CreatePost(ctx, a.ID, "replying", &otherPost.ID)
	require.NoError(t, err)
	require.NotNil(t, reply)
	require.NoError(t, env.relations.Follow(ctx, a.ID, b.ID))
	require.NoError(t, env.relations.Follow(ctx, b.ID, a.ID))

	// 删号前 B 的帖子计数：1 赞、1 转、2 评论（评论 + 回帖）
	before := env.reloadPost(t, otherPost.ID)
	require.Equal(t, int64(1), before.LikeCount)
	require.Equal(t, int64(1), before.RepostCount)
	require.Equal(t, int64(2), before.CommentCount)

	deleted, err := env.userSvc.DeleteAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// 归属行与双向关注关系全部清掉
	assert.Equal(t, int64(0), env.countRows(t, &model.User{}, "id = ?", a.ID))
	assert.Equal(t, int64(0), env.countRows(t, &model.Post{}, "id = ?", post.ID))
	assert.Equal(t, int64(0), env.countRows(t, &model.Comment{}, "user_id = ?", a.ID))
	assert.Equal(t, int64(0), env.countRows(t, &model.Like{}, "user_id = ?", a.ID))
	assert.Equal(t, int64(0), env.countRows(t, &model.Repost{}, "user_id = ?", a.ID))
	assert.Equal(t, int64(0), env.countRows(t, &model.Follower{}, "user_id = ? OR following_id = ?", a.ID, a.ID))

	// B 的数据不受影响
	assert.Equal(t, int64(1), env.countRows(t, &model.Post{}, "id = ?", otherPost.ID))

	// 幸存行的冗余计数必须随被删行一并回退，与真实行数一致
	after := env.reloadPost(t, otherPost.ID)
	assert.Equal(t, int64(0), after.LikeCount)
	assert.Equal(t, int64(0), after.RepostCount)
	assert.Equal(t, int64(0), after.CommentCount)
	survivor := env.reloadUser(t, b.ID)
	assert.Equal(t, int64(0), survivor.FollowerCount)
	assert.Equal(t, int64(0), survivor.FollowingCount)
	assertFollowCountsConsistent(t, env, b.ID)

	deleted, err = env.userSvc.DeleteAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
