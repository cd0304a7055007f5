package service

import (
	"gorm.io/gorm"

	"staymarket/internal/domain"
	"staymarket/internal/repo"
)

// NewMemoryRepos 无库模式（测试/演示）的仓储装配。
// email 唯一性对齐关系后端的唯一索引。
func NewMemoryRepos() Repos {
	return Repos{
		Users:     repo.NewMemory[*domain.User](repo.MemoryConfig{Kind: "user", Unique: []string{"email"}}),
		Places:    repo.NewMemory[*domain.Place](repo.MemoryConfig{Kind: "place"}),
		Amenities: repo.NewMemory[*domain.Amenity](repo.MemoryConfig{Kind: "amenity"}),
		Reviews:   repo.NewMemory[*domain.Review](repo.MemoryConfig{Kind: "review"}),
	}
}

// NewGormRepos 关系后端的仓储装配。
// Place 查询带出两个关联集合；Save 时只回写 many2many 的设施，
// 评论行由评论仓储自己增删。
func NewGormRepos(db *gorm.DB) Repos {
	return Repos{
		Users: repo.NewGorm(db, repo.GormConfig[*domain.User]{
			Kind: "user",
			New:  func() *domain.User { return &domain.User{} },
		}),
		Places: repo.NewGorm(db, repo.GormConfig[*domain.Place]{
			Kind:     "place",
			New:      func() *domain.Place { return &domain.Place{} },
			Preloads: []string{"Amenities", "Reviews"},
			Assocs:   []string{"Amenities"},
		}),
		Amenities: repo.NewGorm(db, repo.GormConfig[*domain.Amenity]{
			Kind: "amenity",
			New:  func() *domain.Amenity { return &domain.Amenity{} },
		}),
		Reviews: repo.NewGorm(db, repo.GormConfig[*domain.Review]{
			Kind: "review",
			New:  func() *domain.Review { return &domain.Review{} },
		}),
	}
}
