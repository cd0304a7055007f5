package repo

import (
	"context"
	"strings"
	"unicode"
)

// Record 可被仓储管理的实体：有标识、能按字段表更新。
// 四种领域实体的 *T 都满足。
type Record interface {
	EntityID() string
	ApplyUpdate(fields map[string]any) error
	Touch()
}

// Repository 统一的 CRUD + 单字段查询契约。
// 两个后端（内存 / gorm）对调用方必须不可区分：
//   - 未命中一律返回 (zero, nil)，不返回错误；
//   - 标识或唯一键冲突翻译成 domain.ConflictError；
//   - GetAll 按插入序且无副作用。
type Repository[T Record] interface {
	Add(ctx context.Context, e T) error
	Get(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, fields map[string]any) (T, error)
	Save(ctx context.Context, e T) error
	Delete(ctx context.Context, id string) (bool, error)
	FindByAttribute(ctx context.Context, name string, value any) (T, error)
	FindAllByAttribute(ctx context.Context, name string, value any) ([]T, error)
}

// toSnake 字段名转列名（CreatedAt -> created_at，OwnerID -> owner_id）。
// 连续大写按缩写词处理，不逐字母加下划线。
func toSnake(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(rs[i-1])
			nextLower := i+1 < len(rs) && !unicode.IsUpper(rs[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
