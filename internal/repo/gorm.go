package repo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staymarket/internal/domain"
)

// GormConfig 关系后端的行为配置。
// New 提供空实体（泛型下拿不到 new(T) 的指针语义），
// Preloads 是查询时要带出的关联，Assocs 是 Save 时要整体回写的关联。
type GormConfig[T Record] struct {
	Kind     string
	New      func() T
	Preloads []string
	Assocs   []string
}

// Gorm 关系后端：每个实体一张表，契约与内存后端一致。
type Gorm[T Record] struct {
	db  *gorm.DB
	cfg GormConfig[T]
}

func NewGorm[T Record](db *gorm.DB, cfg GormConfig[T]) *Gorm[T] {
	return &Gorm[T]{db: db, cfg: cfg}
}

func (r *Gorm[T]) Add(ctx context.Context, e T) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return r.translate(err, e.EntityID())
	}
	return nil
}

func (r *Gorm[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	e := r.cfg.New()
	err := r.query(ctx).First(e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zero, nil
	}
	if err != nil {
		return zero, r.translate(err, id)
	}
	return e, nil
}

// insertionOrder created_at 升序即插入序；同刻回退到 id 保证稳定。
// 列表和关联预载都用它，两个后端的返回顺序才一致。
const insertionOrder = "created_at asc, id asc"

func (r *Gorm[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	err := r.query(ctx).Order(insertionOrder).Find(&out).Error
	if err != nil {
		return nil, r.translate(err, "")
	}
	return out, nil
}

func (r *Gorm[T]) Update(ctx context.Context, id string, fields map[string]any) (T, error) {
	var zero T
	e, err := r.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if isZero(e) {
		return zero, nil
	}
	if err := e.ApplyUpdate(fields); err != nil {
		return zero, err
	}
	if err := r.Save(ctx, e); err != nil {
		return zero, err
	}
	return e, nil
}

// Save 回写已变更的实体：标量列与关联集合各走各的，
// 关联用 Replace 以便摘除的成员真的从连接表消失。
func (r *Gorm[T]) Save(ctx context.Context, e T) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(e).Error; err != nil {
			return err
		}
		for _, name := range r.cfg.Assocs {
			fv := reflect.ValueOf(e).Elem().FieldByName(name)
			if !fv.IsValid() {
				continue
			}
			if err := tx.Model(e).Association(name).Replace(fv.Interface()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return r.translate(err, e.EntityID())
	}
	return nil
}

func (r *Gorm[T]) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(r.cfg.New())
	if res.Error != nil {
		return false, r.translate(res.Error, id)
	}
	return res.RowsAffected > 0, nil
}

func (r *Gorm[T]) FindByAttribute(ctx context.Context, name string, value any) (T, error) {
	var zero T
	col, err := column(name)
	if err != nil {
		return zero, err
	}
	e := r.cfg.New()
	qerr := r.query(ctx).Where(fmt.Sprintf("%s = ?", col), value).First(e).Error
	if errors.Is(qerr, gorm.ErrRecordNotFound) {
		return zero, nil
	}
	if qerr != nil {
		return zero, r.translate(qerr, "")
	}
	return e, nil
}

func (r *Gorm[T]) FindAllByAttribute(ctx context.Context, name string, value any) ([]T, error) {
	col, err := column(name)
	if err != nil {
		return nil, err
	}
	var out []T
	qerr := r.query(ctx).Where(fmt.Sprintf("%s = ?", col), value).
		Order(insertionOrder).Find(&out).Error
	if qerr != nil {
		return nil, r.translate(qerr, "")
	}
	return out, nil
}

func (r *Gorm[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx).Model(r.cfg.New())
	for _, p := range r.cfg.Preloads {
		// 预载行不排序会按主键（随机 UUID）回来
		q = q.Preload(p, orderedPreload)
	}
	return q
}

func orderedPreload(db *gorm.DB) *gorm.DB {
	return db.Order(insertionOrder)
}

// translate 后端错误翻译成统一分类，驱动私有类型不出仓储层
func (r *Gorm[T]) translate(err error, id string) error {
	if isDupKey(err) {
		return domain.NewConflictError(fmt.Sprintf("%s %q conflicts with an existing record", r.cfg.Kind, id))
	}
	return fmt.Errorf("%s repository: %w", r.cfg.Kind, err)
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}

var columnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// column 属性名转列名并做白名单校验，杜绝拼 SQL 注入
func column(name string) (string, error) {
	col := toSnake(name)
	if !columnPattern.MatchString(col) {
		return "", domain.NewValidationError(name, "format", "invalid attribute name")
	}
	return col, nil
}

func isZero[T Record](e T) bool {
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
