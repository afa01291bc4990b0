package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/database"
	"github.com/d60-Lab/microblog/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

// 本地演示数据：N 个用户、随机关注图、每人若干帖子与互动。
// 全部经由服务层写入，冗余计数与关系行保持一致。
func main() {
	cfg := must(config.Load())
	mustDo(logger.Init(cfg.LogLevel))
	db := must(database.InitDB(cfg))
	mustDo(db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{},
		&model.Like{}, &model.Repost{}, &model.Follower{}, &model.RefreshToken{},
	))

	N := 50
	if s := os.Getenv("N"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			N = n
		}
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	repostRepo := repository.NewRepostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	ctx := context.Background()
	authSvc := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, 0, 0)
	relSvc := service.NewRelationshipService(db, followRepo, userRepo)
	postSvc := service.NewPostService(db, postRepo, likeRepo, repostRepo, commentRepo, userRepo)
	engSvc := service.NewEngagementService(db, postRepo, likeRepo, repostRepo, commentRepo, userRepo)

	ids := make([]uint, 0, N)
	for i := 0; i < N; i++ {
		name := fmt.Sprintf("user%04d", i)
		p, err := authSvc.Register(ctx, name, "User "+name, name+"@example.com", "password123")
		if err != nil {
			continue // 重复执行时跳过已有用户
		}
		ids = append(ids, p.ID)
	}
	fmt.Printf("seeded %d users\n", len(ids))

	if len(ids) < 2 {
		return
	}

	follows := 0
	for _, from := range ids {
		for k := 0; k < 5; k++ {
			to := ids[rand.Intn(len(ids))]
			if to == from {
				continue
			}
			if err := relSvc.Follow(ctx, from, to); err == nil {
				follows++
			}
		}
	}
	fmt.Printf("seeded %d follows\n", follows)

	var postIDs []uint
	for _, uid := range ids {
		for k := 0; k < 3; k++ {
			p, err := postSvc.CreatePost(ctx, uid, fmt.Sprintf("hello from %d #%d", uid, k), nil)
			if err == nil && p != nil {
				postIDs = append(postIDs, p.ID)
			}
		}
	}
	fmt.Printf("seeded %d posts\n", len(postIDs))

	likes, comments := 0, 0
	for _, uid := range ids {
		for k := 0; k < 10; k++ {
			pid := postIDs[rand.Intn(len(postIDs))]
			if liked, found, err := engSvc.ToggleLike(ctx, uid, pid); err == nil && found && liked {
				likes++
			}
		}
		pid := postIDs[rand.Intn(len(postIDs))]
		if _, err := engSvc.AddComment(ctx, uid, pid, "nice post"); err == nil {
			comments++
		}
	}
	fmt.Printf("seeded %d likes, %d comments\n", likes, comments)
}
