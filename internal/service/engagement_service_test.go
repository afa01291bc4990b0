package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/microblog/internal/model"
)

func TestToggleLikeParity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	b := env.createUser(t, "bob")
	post := env.createPost(t, a.ID, "hello")

	// 奇数次 toggle 后处于已赞态且计数净 +1，偶数次回到原点
	for i := 1; i <= 5; i++ {
		liked, found, err := env.engagement.ToggleLike(ctx, b.ID, post.ID)
		require.NoError(t, err)
		require.True(t, found)

		wantLiked := i%2 == 1
		assert.Equal(t, wantLiked, liked, "toggle %d", i)

		p := env.reloadPost(t, post.ID)
		rows := env.countRows(t, &model.Like{}, "post_id = ?", post.ID)
		assert.Equal(t, rows, p.LikeCount, "counter drifted after toggle %d", i)
		if wantLiked {
			assert.Equal(t, int64(1), p.LikeCount)
		} else {
			assert.Equal(t, int64(0), p.LikeCount)
		}
	}
}

func TestToggleLikeMissingPost(t *testing.T) {
	env := newTestEnv(t)
	a := env.createUser(t, "alice")

	_, found, err := env.engagement.ToggleLike(context.Background(), a.ID, 9999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestToggleRepostScopedToPlain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	b := env.createUser(t, "bob")
	post := env.createPost(t, a.ID, "hello")

	// 引用转发先落两条
	for i := 0; i < 2; i++ {
		q, err := env.engagement.QuotePost(ctx, b.ID, post.ID, "worth a read")
		require.NoError(t, err)
		require.NotNil(t, q)
		require.True(t, q.IsQuotePost)
	}
	assert.Equal(t, int64(2), env.reloadPost(t, post.ID).RepostCount)

	// 普通转发 toggle 不触碰引用转发
	reposted, found, err := env.engagement.ToggleRepost(ctx, b.ID, post.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, reposted)
	assert.Equal(t, int64(3), env.reloadPost(t, post.ID).RepostCount)

	reposted, _, err = env.engagement.ToggleRepost(ctx, b.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, reposted)

	p := env.reloadPost(t, post.ID)
	assert.Equal(t, int64(2), p.RepostCount)
	assert.Equal(t, int64(2), env.countRows(t, &model.Repost{}, "post_id = ? AND is_quote_post = ?", post.ID, true))
	assert.Equal(t, int64(0), env.countRows(t, &model.Repost{}, "post_id = ? AND is_quote_post = ?", post.ID, false))
}

func TestQuotePostValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	post := env.createPost(t, a.ID, "hello")

	_, err := env.engagement.QuotePost(ctx, a.ID, post.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, int64(0), env.countRows(t, &model.Repost{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), env.reloadPost(t, post.ID).RepostCount)

	// 不存在的帖子
	q, err := env.engagement.QuotePost(ctx, a.ID, 9999, "look at this")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestAddCommentScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	b := env.createUser(t, "bob")
	post := env.createPost(t, a.ID, "hello")

	c1, err := env.engagement.AddComment(ctx, b.ID, post.ID, "  nice  ")
	require.NoError(t, err)
	require.NotNil(t, c1)
	assert.Equal(t, "nice", c1.Content)
	require.NotNil(t, c1.Author)
	assert.Equal(t, "bob", c1.Author.Username)
	assert.Equal(t, int64(1), env.reloadPost(t, post.ID).CommentCount)

	// 保证时间序可区分
	time.Sleep(5 * time.Millisecond)
	_, err = env.engagement.AddComment(ctx, a.ID, post.ID, "thanks")
	require.NoError(t, err)

	comments, err := env.engagement.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "nice", comments[0].Content, "oldest first")
	assert.Equal(t, "thanks", comments[1].Content)

	p := env.reloadPost(t, post.ID)
	assert.Equal(t, env.countRows(t, &model.Comment{}, "post_id = ? AND is_deleted = ?", post.ID, false), p.CommentCount)
}

func TestAddCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	post := env.createPost(t, a.ID, "hello")

	_, err := env.engagement.AddComment(ctx, a.ID, post.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, int64(0), env.countRows(t, &model.Comment{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), env.reloadPost(t, post.ID).CommentCount)

	c, err := env.engagement.AddComment(ctx, a.ID, 9999, "hi")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestListCommentsSkipsDeleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createUser(t, "alice")
	post := env.createPost(t, a.ID, "hello")

	c1, err := env.engagement.AddComment(ctx, a.ID, post.ID, "first")
	require.NoError(t, err)
	_, err = env.engagement.AddComment(ctx, a.ID, post.ID, "second")
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&model.Comment{}).Where("id = ?", c1.ID).
		Update("is_deleted", true).Error)

	comments, err := env.engagement.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "second", comments[0].Content)
}
