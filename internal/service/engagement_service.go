package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// EngagementService 点赞/转发/评论及其冗余计数的事务性维护
type EngagementService interface {
	// ToggleLike 有则删并减计数，无则插并加计数；返回新的点赞态；
	// 帖子不存在或已软删时返回 (false, false, nil)
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, found bool, err error)
	// ToggleRepost 同 ToggleLike，仅作用于普通转发（非引用）
	ToggleRepost(ctx context.Context, userID, postID uint) (reposted bool, found bool, err error)
	// QuotePost 引用转发永远新增，不做 toggle；空白正文返回 ErrEmptyContent
	QuotePost(ctx context.Context, userID, postID uint, quoteContent string) (*model.Repost, error)
	// AddComment 去除首尾空白后校验非空；评论与计数同事务落地
	AddComment(ctx context.Context, userID, postID uint, content string) (*CommentView, error)
	// ListComments 楼层序（最早在前）
	ListComments(ctx context.Context, postID uint) ([]CommentView, error)
}

type engagementService struct {
	db       *gorm.DB
	posts    repository.PostRepository
	likes    repository.LikeRepository
	reposts  repository.RepostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

func NewEngagementService(
	db *gorm.DB,
	posts repository.PostRepository,
	likes repository.LikeRepository,
	reposts repository.RepostRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
) EngagementService {
	return &engagementService{db: db, posts: posts, likes: likes, reposts: reposts, comments: comments, users: users}
}

func (s *engagementService) ToggleLike(ctx context.Context, userID, postID uint) (bool, bool, error) {
	var liked bool
	found := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.posts.GetActiveForUpdate(tx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return nil
		}
		found = true

		// 先删后插：删到行说明原本已赞；否则靠唯一键幂等插入，
		// 只有真正插入成功才加计数，并发双插不会双加
		deleted, err := s.likes.DeletePair(tx, userID, postID)
		if err != nil {
			return err
		}
		if deleted > 0 {
			liked = false
			return repository.AddPostCounter(tx, postID, "like_count", -1)
		}
		inserted, err := s.likes.InsertIgnore(tx, userID, postID)
		if err != nil {
			return err
		}
		liked = true
		if inserted > 0 {
			return repository.AddPostCounter(tx, postID, "like_count", 1)
		}
		return nil
	})
	return liked, found, err
}

func (s *engagementService) ToggleRepost(ctx context.Context, userID, postID uint) (bool, bool, error) {
	var reposted bool
	found := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.posts.GetActiveForUpdate(tx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return nil
		}
		found = true

		deleted, err := s.reposts.DeletePlain(tx, userID, postID)
		if err != nil {
			return err
		}
		if deleted > 0 {
			reposted = false
			return repository.AddPostCounter(tx, postID, "repost_count", -1)
		}
		inserted, err := s.reposts.InsertPlain(tx, userID, postID)
		if err != nil {
			return err
		}
		reposted = true
		if inserted > 0 {
			return repository.AddPostCounter(tx, postID, "repost_count", 1)
		}
		return nil
	})
	return reposted, found, err
}

func (s *engagementService) QuotePost(ctx context.Context, userID, postID uint, quoteContent string) (*model.Repost, error) {
	quoteContent = strings.TrimSpace(quoteContent)
	if quoteContent == "" {
		return nil, ErrEmptyContent
	}

	var rp *model.Repost
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.posts.GetActiveForUpdate(tx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return nil
		}
		r := &model.Repost{UserID: userID, PostID: postID, QuoteContent: &quoteContent}
		if err := s.reposts.InsertQuote(tx, r); err != nil {
			return err
		}
		if err := repository.AddPostCounter(tx, postID, "repost_count", 1); err != nil {
			return err
		}
		rp = r
		return nil
	})
	return rp, err
}

func (s *engagementService) AddComment(ctx context.Context, userID, postID uint, content string) (*CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var created *model.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.posts.GetActiveForUpdate(tx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return nil
		}
		c := &model.Comment{PostID: postID, UserID: userID, Content: content}
		if err := s.comments.Create(tx, c); err != nil {
			return err
		}
		if err := repository.AddPostCounter(tx, postID, "comment_count", 1); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil || created == nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := NewCommentView(created, author)
	return &view, nil
}

func (s *engagementService) ListComments(ctx context.Context, postID uint) ([]CommentView, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	authors, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, NewCommentView(c, authors[c.UserID]))
	}
	return views, nil
}
