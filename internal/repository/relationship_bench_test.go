package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

func setupRelBenchDB(b *testing.B) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		b.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Follower{}); err != nil {
		b.Fatalf("migrate: %v", err)
	}
	return db
}

func seedBenchUsers(b *testing.B, db *gorm.DB, n int) []model.User {
	users := make([]model.User, n)
	for i := range users {
		name := fmt.Sprintf("u%05d", i)
		users[i] = model.User{Username: name, Email: name + "@example.com", Password: "p", IsActive: true}
	}
	if err := db.Create(&users).Error; err != nil {
		b.Fatalf("seed users: %v", err)
	}
	return users
}

func BenchmarkFollowInsertIgnore(b *testing.B) {
	db := setupRelBenchDB(b)
	repo := NewFollowRepository(db)
	users := seedBenchUsers(b, db, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rand.Intn(len(users))].ID
		to := users[rand.Intn(len(users))].ID
		if from == to { continue }
		_, _ = repo.InsertIgnore(db, from, to)
	}
}

func BenchmarkListFollowersAndFollowing(b *testing.B) {
	db := setupRelBenchDB(b)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	// 构造：u0 有 N 个粉丝，同时 u0 也关注 N 个用户
	const N = 5000
	users := seedBenchUsers(b, db, N+1)
	u0 := users[0]
	for i := 1; i <= N; i++ {
		_, _ = repo.InsertIgnore(db, users[i].ID, u0.ID)
		_, _ = repo.InsertIgnore(db, u0.ID, users[i].ID)
	}

	b.ResetTimer()
	b.Run("ListFollowers", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _, _ = repo.ListFollowers(ctx, u0.ID, 0, 50)
		}
	})

	b.Run("ListFollowing", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _, _ = repo.ListFollowing(ctx, u0.ID, 0, 50)
		}
	})
}
