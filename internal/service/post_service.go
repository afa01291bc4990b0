package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// PostService 帖子 CRUD 与时间线
//
// 计数策略：冗余计数列是唯一事实来源，写路径事务内维护，读路径直接取列，
// 不做读时重算。
type PostService interface {
	// CreatePost 正文去空白后非空校验；带 parentPostID 时为回复，
	// 父帖必须存在且未软删（否则返回 (nil, nil)），其 comment_count
	// 在同一事务内 +1（与 AddComment 共用同一计数入口）
	CreatePost(ctx context.Context, userID uint, content string, parentPostID *uint) (*model.Post, error)
	// GetTimeline 顶层未删帖子，时间倒序，带 viewer 的 is_liked/is_reposted
	GetTimeline(ctx context.Context, currentUserID uint, limit, offset int) ([]PostView, error)
	// GetPostDetail 帖子 + 楼层序评论；不存在或已软删返回 (nil, nil)
	GetPostDetail(ctx context.Context, postID, currentUserID uint) (*PostDetail, error)
	// UpdatePost 仅作者可改；不存在/非作者/已删除统一返回 (nil, nil)，
	// 不区分以免泄露帖子是否存在
	UpdatePost(ctx context.Context, userID, postID uint, content string) (*model.Post, error)
	// DeletePost 软删，作者限定；返回是否真的删到了行
	DeletePost(ctx context.Context, userID, postID uint) (bool, error)
}

type postService struct {
	db       *gorm.DB
	posts    repository.PostRepository
	likes    repository.LikeRepository
	reposts  repository.RepostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

func NewPostService(
	db *gorm.DB,
	posts repository.PostRepository,
	likes repository.LikeRepository,
	reposts repository.RepostRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
) PostService {
	return &postService{db: db, posts: posts, likes: likes, reposts: reposts, comments: comments, users: users}
}

func (s *postService) CreatePost(ctx context.Context, userID uint, content string, parentPostID *uint) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var created *model.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if parentPostID != nil {
			parent, err := s.posts.GetActiveForUpdate(tx, *parentPostID)
			if err != nil {
				return err
			}
			if parent == nil {
				return nil
			}
		}
		p := &model.Post{UserID: userID, Content: content, ParentPostID: parentPostID}
		if err := s.posts.Create(tx, p); err != nil {
			return err
		}
		if parentPostID != nil {
			if err := repository.AddPostCounter(tx, *parentPostID, "comment_count", 1); err != nil {
				return err
			}
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *postService) GetTimeline(ctx context.Context, currentUserID uint, limit, offset int) ([]PostView, error) {
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	posts, err := s.posts.ListTimeline(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	postIDs := make([]uint, len(posts))
	authorIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDs[i] = p.UserID
	}

	liked, err := s.likes.LikedSet(ctx, currentUserID, postIDs)
	if err != nil {
		return nil, err
	}
	reposted, err := s.reposts.RepostedSet(ctx, currentUserID, postIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		views[i] = NewPostView(p, authors[p.UserID], liked[p.ID], reposted[p.ID])
	}
	return views, nil
}

func (s *postService) GetPostDetail(ctx context.Context, postID, currentUserID uint) (*PostDetail, error) {
	post, err := s.posts.GetActive(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	author, err := s.users.GetByID(ctx, post.UserID)
	if err != nil {
		return nil, err
	}
	isLiked, err := s.likes.Exists(ctx, currentUserID, postID)
	if err != nil {
		return nil, err
	}
	isReposted, err := s.reposts.ExistsPlain(ctx, currentUserID, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	commenterIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		commenterIDs = append(commenterIDs, c.UserID)
	}
	commenters, err := s.users.GetByIDs(ctx, commenterIDs)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, NewCommentView(c, commenters[c.UserID]))
	}
	return &PostDetail{Post: NewPostView(post, author, isLiked, isReposted), Comments: views}, nil
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID uint, content string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	affected, err := s.posts.UpdateContent(ctx, userID, postID, content)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.posts.GetActive(ctx, postID)
}

func (s *postService) DeletePost(ctx context.Context, userID, postID uint) (bool, error) {
	affected, err := s.posts.SoftDelete(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
