package service

import (
	"go.uber.org/zap"

	"staymarket/internal/domain"
	"staymarket/internal/repo"
)

// Actor 调用方身份：由上游（JWT 中间件）验证好后传入，
// facade 只做授权判断，不做认证。
type Actor struct {
	ID      string
	IsAdmin bool
}

// CanActAs 管理员或本人
func (a Actor) CanActAs(userID string) bool {
	return a.IsAdmin || (a.ID != "" && a.ID == userID)
}

// PasswordHasher 密码散列协作方（实现见 pkg/utils 的 bcrypt 封装）
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Repos facade 依赖的四个仓储，后端（内存/gorm）在启动期装配
type Repos struct {
	Users     repo.Repository[*domain.User]
	Places    repo.Repository[*domain.Place]
	Amenities repo.Repository[*domain.Amenity]
	Reviews   repo.Repository[*domain.Review]
}

// Facade API 层唯一的入口：跨实体规则在这里，
// 字段规则在实体里，持久化在仓储里。
// 进程启动时构造一次，按引用注入路由层。
type Facade struct {
	repos  Repos
	hasher PasswordHasher
	log    *zap.Logger
}

func NewFacade(repos Repos, hasher PasswordHasher, log *zap.Logger) *Facade {
	if log == nil {
		log = zap.NewNop()
	}
	return &Facade{repos: repos, hasher: hasher, log: log}
}
