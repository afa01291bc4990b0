package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/microblog/internal/model"
)

// 每次 follow/unfollow 后，缓存计数必须等于 followers 表的真实行数
func assertFollowCountsConsistent(t *testing.T, env *testEnv, userID uint) {
	t.Helper()
	u := env.reloadUser(t, userID)
	following := env.countRows(t, &model.Follower{}, "user_id = ?", userID)
	followers := env.countRows(t, &model.Follower{}, "following_id = ?", userID)
	assert.Equal(t, following, u.FollowingCount, "following_count drifted for user %d", userID)
	assert.Equal(t, followers, u.FollowerCount, "follower_count drifted for user %d", userID)
}

func TestFollowUnfollowScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	b := env.createUser(t, "bob")

	// A 关注 B
	require.NoError(t, env.relations.Follow(ctx, a.ID, b.ID))
	assert.Equal(t, int64(1), env.reloadUser(t, b.ID).FollowerCount)
	assert.Equal(t, int64(1), env.reloadUser(t, a.ID).FollowingCount)
	assertFollowCountsConsistent(t, env, a.ID)
	assertFollowCountsConsistent(t, env, b.ID)

	// 取关后归零
	require.NoError(t, env.relations.Unfollow(ctx, a.ID, b.ID))
	assert.Equal(t, int64(0), env.reloadUser(t, b.ID).FollowerCount)
	assert.Equal(t, int64(0), env.reloadUser(t, a.ID).FollowingCount)

	// 重复取关不产生负数
	require.NoError(t, env.relations.Unfollow(ctx, a.ID, b.ID))
	assert.Equal(t, int64(0), env.reloadUser(t, b.ID).FollowerCount)
	assert.Equal(t, int64(0), env.reloadUser(t, a.ID).FollowingCount)
	assertFollowCountsConsistent(t, env, a.ID)
	assertFollowCountsConsistent(t, env, b.ID)
}

func TestFollowIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	b := env.createUser(t, "bob")

	require.NoError(t, env.relations.Follow(ctx, a.ID, b.ID))
	require.NoError(t, env.relations.Follow(ctx, a.ID, b.ID))

	assert.Equal(t, int64(1), env.countRows(t, &model.Follower{}, "user_id = ? AND following_id = ?", a.ID, b.ID))
	assert.Equal(t, int64(1), env.reloadUser(t, b.ID).FollowerCount)
	assert.Equal(t, int64(1), env.reloadUser(t, a.ID).FollowingCount)
}

func TestFollowSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	a := env.createUser(t, "alice")

	err := env.relations.Follow(context.Background(), a.ID, a.ID)
	assert.ErrorIs(t, err, ErrFollowSelf)
	assert.Equal(t, int64(0), env.countRows(t, &model.Follower{}, "user_id = ?", a.ID))
	assert.Equal(t, int64(0), env.reloadUser(t, a.ID).FollowerCount)
	assert.Equal(t, int64(0), env.reloadUser(t, a.ID).FollowingCount)
}

func TestGetFollowersPaginated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := env.seedUsers(t, 6)
	target := users[0]
	for _, u := range users[1:] {
		require.NoError(t, env.relations.Follow(ctx, u.ID, target.ID))
	}

	list, pg, err := env.relations.GetFollowers(ctx, target.ID, 1, 3)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, int64(5), pg.TotalItems)
	assert.Equal(t, int64(2), pg.TotalPages)

	list2, _, err := env.relations.GetFollowers(ctx, target.ID, 2, 3)
	require.NoError(t, err)
	assert.Len(t, list2, 2)

	following, pg2, err := env.relations.GetFollowing(ctx, users[1].ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, following, 1)
	assert.Equal(t, target.ID, following[0].UserID)
	assert.Equal(t, int64(1), pg2.TotalItems)
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createUser(t, "carol")
	env.createUser(t, "caroline")
	d := env.createUser(t, "dave")

	// display_name 也参与匹配
	require.NoError(t, env.db.Model(&model.User{}).Where("id = ?", d.ID).
		Update("display_name", "Carl the Dave").Error)
	// 停用用户不出现在结果里
	inactive := env.createUser(t, "carlos")
	require.NoError(t, env.db.Model(&model.User{}).Where("id = ?", inactive.ID).
		Update("is_active", false).Error)

	got, err := env.relations.SearchUsers(ctx, "CAR", 10, 0)
	require.NoError(t, err)
	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Username
	}
	assert.ElementsMatch(t, []string{"carol", "caroline", "dave"}, names)

	empty, err := env.relations.SearchUsers(ctx, "   ", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
